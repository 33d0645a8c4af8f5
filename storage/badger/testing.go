package badger

// NewMemoryStore creates an in-memory store for testing.
func NewMemoryStore() (*Store, error) {
	return OpenStore("", true)
}
