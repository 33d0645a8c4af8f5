// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package resolver orchestrates the query pipeline: validate the input,
// retrieve and rank sections, gather claims above the confidence threshold,
// optionally verify them against their sources, surface known conflicts,
// synthesize the answer, and assemble the response.
//
// Failure handling is deliberately uneven across stages. Validation,
// embedding, and search failures are hard errors: without candidates there
// is nothing to answer from. Everything downstream degrades instead:
// claim-loading failures drop that section's claims, verification failures
// mark claims unverified, conflict-lookup failures omit annotations, and
// generation failures produce a low-confidence fallback answer.
package resolver

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/poiesic/veridex/core"
)

// Retriever runs the retrieval stage. Satisfied by *retrieval.Retriever.
type Retriever interface {
	Retrieve(ctx context.Context, input *core.QueryInput) ([]core.RetrievedSection, error)
}

// ClaimSource loads the claims extracted from a section. Satisfied by
// storage.ClaimRepository.
type ClaimSource interface {
	GetClaimsForSection(ctx context.Context, sectionID core.ID) ([]*core.Claim, error)
}

// Verifier runs the optional verification stage. Satisfied by
// *verify.Verifier.
type Verifier interface {
	VerifyClaims(ctx context.Context, claims []*core.Claim) map[core.ID]core.Verification
}

// Detector runs the conflict stage. Satisfied by *conflict.Detector.
type Detector interface {
	Resolve(ctx context.Context, supporting []core.SupportingClaim) []core.ResolvedConflict
}

// Synthesizer runs the answer stage. Satisfied by *synthesis.Synthesizer.
type Synthesizer interface {
	Synthesize(ctx context.Context, input *core.QueryInput, sources []core.RetrievedSection, claims []core.SupportingClaim, conflicts []core.ResolvedConflict) *core.SynthesizedAnswer
}

// Resolver wires the pipeline stages together.
type Resolver struct {
	retriever   Retriever
	claims      ClaimSource
	verifier    Verifier
	detector    Detector
	synthesizer Synthesizer
	logger      *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewResolver creates a new resolver over the pipeline stages.
func NewResolver(
	retriever Retriever,
	claims ClaimSource,
	verifier Verifier,
	detector Detector,
	synthesizer Synthesizer,
	opts ...Option,
) (*Resolver, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if claims == nil {
		return nil, ErrClaimSourceRequired
	}
	if verifier == nil {
		return nil, ErrVerifierRequired
	}
	if detector == nil {
		return nil, ErrDetectorRequired
	}
	if synthesizer == nil {
		return nil, ErrSynthesizerRequired
	}

	r := &Resolver{
		retriever:   retriever,
		claims:      claims,
		verifier:    verifier,
		detector:    detector,
		synthesizer: synthesizer,
		logger:      slog.Default().With("component", "resolver"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Resolve runs one query through the full pipeline.
func (r *Resolver) Resolve(ctx context.Context, input *core.QueryInput) (*core.QueryResult, error) {
	if err := core.ValidateQueryInput(input); err != nil {
		return nil, err
	}

	started := time.Now()
	queryID := uuid.NewString()
	logger := r.logger.With("queryId", queryID)

	sources, err := r.retriever.Retrieve(ctx, input)
	if err != nil {
		return nil, err
	}

	claims := r.gatherClaims(ctx, logger, input, sources)

	supporting := make([]core.SupportingClaim, len(claims))
	for i, claim := range claims {
		supporting[i] = core.SupportingClaim{
			Id:         claim.Id,
			Text:       claim.OriginalText,
			Confidence: claim.Confidence,
			DocumentId: claim.DocumentId,
		}
	}

	if input.VerifyClaims && len(claims) > 0 {
		outcomes := r.verifier.VerifyClaims(ctx, claims)
		for i := range supporting {
			outcome := outcomes[supporting[i].Id]
			verified := outcome.Verified
			supporting[i].Verified = &verified
			supporting[i].Signals = outcome.Signals
		}
	}

	conflicts := r.detector.Resolve(ctx, supporting)

	answer := r.synthesizer.Synthesize(ctx, input, sources, supporting, conflicts)

	result := &core.QueryResult{
		QueryId:           queryID,
		Answer:            answer.Answer,
		Confidence:        answer.Confidence,
		Sources:           sources,
		SupportingClaims:  supporting,
		ConflictingClaims: conflicts,
		KnowledgeGaps:     answer.KnowledgeGaps,
		ProcessingTimeMs:  time.Since(started).Milliseconds(),
	}

	// Responses always carry arrays, never null
	if result.Sources == nil {
		result.Sources = []core.RetrievedSection{}
	}
	if result.ConflictingClaims == nil {
		result.ConflictingClaims = []core.ResolvedConflict{}
	}
	if result.KnowledgeGaps == nil {
		result.KnowledgeGaps = []string{}
	}

	logger.Debug("query resolved",
		"sources", len(result.Sources),
		"claims", len(result.SupportingClaims),
		"conflicts", len(result.ConflictingClaims),
		"confidence", result.Confidence,
		"elapsedMs", result.ProcessingTimeMs)

	return result, nil
}

// gatherClaims collects the claims behind the retrieved sections, keeping
// those at or above the confidence threshold. A section whose claims cannot
// be loaded contributes no claims but does not fail the query.
func (r *Resolver) gatherClaims(ctx context.Context, logger *slog.Logger, input *core.QueryInput, sources []core.RetrievedSection) []*core.Claim {
	var kept []*core.Claim
	seen := make(map[core.ID]bool)

	for _, source := range sources {
		sectionClaims, err := r.claims.GetClaimsForSection(ctx, source.SectionId)
		if err != nil {
			logger.Warn("cannot load claims for section, skipping",
				"sectionId", source.SectionId, "err", err)
			continue
		}

		for _, claim := range sectionClaims {
			if claim.Confidence < input.ConfidenceThreshold {
				continue
			}
			if seen[claim.Id] {
				continue
			}
			seen[claim.Id] = true
			kept = append(kept, claim)
		}
	}

	return kept
}
