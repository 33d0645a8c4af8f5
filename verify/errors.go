package verify

import "errors"

var (
	// ErrSectionSourceRequired is returned when a nil section source is provided.
	ErrSectionSourceRequired = errors.New("section source is required")

	// ErrEmbedderRequired is returned when a nil embedder is provided.
	ErrEmbedderRequired = errors.New("embedder is required")
)
