package resolver

import "errors"

var (
	// ErrRetrieverRequired is returned when a nil retriever is provided.
	ErrRetrieverRequired = errors.New("retriever is required")

	// ErrClaimSourceRequired is returned when a nil claim source is provided.
	ErrClaimSourceRequired = errors.New("claim source is required")

	// ErrVerifierRequired is returned when a nil verifier is provided.
	ErrVerifierRequired = errors.New("verifier is required")

	// ErrDetectorRequired is returned when a nil conflict detector is provided.
	ErrDetectorRequired = errors.New("conflict detector is required")

	// ErrSynthesizerRequired is returned when a nil synthesizer is provided.
	ErrSynthesizerRequired = errors.New("synthesizer is required")
)
