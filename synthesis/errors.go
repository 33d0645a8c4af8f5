package synthesis

import "errors"

var (
	// ErrGeneratorRequired is returned when a nil generator is provided.
	ErrGeneratorRequired = errors.New("generator is required")

	// ErrUnparsableAnswer is returned internally when the model response
	// cannot be parsed even after repair. Callers never see it: synthesis
	// degrades to a fallback answer instead.
	ErrUnparsableAnswer = errors.New("unparsable answer payload")
)
