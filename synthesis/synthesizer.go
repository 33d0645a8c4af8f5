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

// Package synthesis turns retrieved evidence into a confidence-scored
// answer. The model is prompted in JSON mode with the question, sources,
// claims, and known conflicts. Generation failure never fails the query:
// synthesis degrades to a deterministic answer assembled from the evidence,
// marked with low confidence and an explicit knowledge gap.
package synthesis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/veridex/core"
)

const (
	// fallbackConfidence is the answer confidence when the model is
	// unavailable and the answer is assembled from evidence directly.
	fallbackConfidence = 0.3

	// noEvidenceConfidence is the answer confidence when retrieval found
	// nothing to answer from.
	noEvidenceConfidence = 0.1

	// FallbackGap is the knowledge gap reported when synthesis degrades.
	FallbackGap = "Unable to generate comprehensive answer"
)

// Generator produces the structured completion. Satisfied by ai.Generator.
type Generator interface {
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Synthesizer generates the final answer from retrieved evidence.
type Synthesizer struct {
	generator Generator
	logger    *slog.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSynthesizer creates a new synthesizer.
func NewSynthesizer(generator Generator, opts ...Option) (*Synthesizer, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	s := &Synthesizer{
		generator: generator,
		logger:    slog.Default().With("component", "synthesizer"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Synthesize produces an answer for the query from the given evidence.
// It never returns an error: with no evidence it answers deterministically
// that nothing was found, and when the model fails it falls back to an
// answer assembled from the evidence itself.
func (s *Synthesizer) Synthesize(ctx context.Context, input *core.QueryInput, sources []core.RetrievedSection, claims []core.SupportingClaim, conflicts []core.ResolvedConflict) *core.SynthesizedAnswer {
	if len(sources) == 0 {
		return &core.SynthesizedAnswer{
			Answer:        "No relevant information found in the corpus for this query.",
			Confidence:    noEvidenceConfidence,
			KnowledgeGaps: []string{fmt.Sprintf("no sources cover: %s", input.Query)},
		}
	}

	systemPrompt := buildSystemPrompt(input.QueryType)
	userPrompt := buildUserPrompt(input.Query, sources, claims, conflicts)

	raw, err := s.generator.GenerateJSON(ctx, systemPrompt, userPrompt)
	if err != nil {
		s.logger.Warn("generation failed, falling back to evidence summary", "err", err)
		return s.fallback(sources, claims)
	}

	answer, err := parseAnswer(raw)
	if err != nil {
		s.logger.Warn("model response unparsable, falling back to evidence summary",
			"response", raw, "err", err)
		return s.fallback(sources, claims)
	}

	return answer
}

// fallback assembles a deterministic answer from the strongest evidence.
func (s *Synthesizer) fallback(sources []core.RetrievedSection, claims []core.SupportingClaim) *core.SynthesizedAnswer {
	var b strings.Builder
	b.WriteString("Based on the available sources:")

	if len(claims) > 0 {
		best := claims[0]
		for _, claim := range claims[1:] {
			if claim.Confidence > best.Confidence {
				best = claim
			}
		}
		b.WriteString(" ")
		b.WriteString(best.Text)
	} else {
		b.WriteString(" ")
		b.WriteString(sources[0].Excerpt)
	}

	return &core.SynthesizedAnswer{
		Answer:        b.String(),
		Confidence:    fallbackConfidence,
		KnowledgeGaps: []string{FallbackGap},
	}
}
