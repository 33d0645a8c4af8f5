// Package mock provides test doubles for the ai package interfaces.
//
// The mocks default to deterministic behavior: the embedder derives vectors
// from an FNV hash of the input text, and the generator returns a fixed
// well-formed synthesis payload. Custom behavior is injected via the public
// function fields (EmbedTextFunc, GenerateJSONFunc).
package mock
