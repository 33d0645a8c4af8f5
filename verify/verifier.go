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

package verify

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/veridex/core"
)

// defaultSemanticThreshold is the minimum cosine similarity between claim
// and source-section embeddings for a semantic corroboration signal.
const defaultSemanticThreshold = 0.75

// SectionSource loads a claim's source section. Satisfied by
// storage.SectionRepository.
type SectionSource interface {
	GetSection(ctx context.Context, id core.ID) (*core.Section, error)
}

// Embedder generates batch embeddings. Satisfied by ai.Embedder.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Verifier checks each claim against its source section and collects
// corroboration signals. Verification is advisory: a claim that fails every
// check is reported unverified, never dropped, and verification errors
// degrade to an unverified outcome rather than failing the query.
type Verifier struct {
	sections          SectionSource
	embedder          Embedder
	pool              *ants.Pool
	semanticThreshold float64
	logger            *slog.Logger
}

// Option configures a Verifier.
type Option func(*Verifier) error

// WithPoolSize sets the worker pool size for concurrent verification.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(v *Verifier) error {
		if size < 1 {
			size = 1
		}

		if v.pool != nil {
			v.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		v.pool = pool
		return nil
	}
}

// WithSemanticThreshold sets the minimum cosine similarity for a semantic
// signal. Default is 0.75.
func WithSemanticThreshold(threshold float64) Option {
	return func(v *Verifier) error {
		v.semanticThreshold = threshold
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(v *Verifier) error {
		if logger == nil {
			logger = slog.Default()
		}
		v.logger = logger
		return nil
	}
}

// NewVerifier creates a new verifier.
func NewVerifier(sections SectionSource, embedder Embedder, opts ...Option) (*Verifier, error) {
	if sections == nil {
		return nil, ErrSectionSourceRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	v := &Verifier{
		sections:          sections,
		embedder:          embedder,
		pool:              pool,
		semanticThreshold: defaultSemanticThreshold,
		logger:            slog.Default().With("component", "verifier"),
	}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			v.Release()
			return nil, err
		}
	}

	return v, nil
}

// VerifyClaim verifies a single claim against its source section.
// Two signals are collected independently: exact containment of the claim
// text in the section, and embedding similarity above the threshold. A claim
// with at least one signal is verified. Any failure along the way yields an
// unverified outcome, never an error.
func (v *Verifier) VerifyClaim(ctx context.Context, claim *core.Claim) core.Verification {
	section, err := v.sections.GetSection(ctx, claim.SourceSectionId)
	if err != nil || section == nil {
		v.logger.Warn("cannot load source section for claim",
			"claimId", claim.Id, "sectionId", claim.SourceSectionId, "err", err)
		return core.Verification{}
	}

	var signals []core.Signal

	sectionText := section.Header + " " + section.Content
	if core.ContainsAllWords(sectionText, claim.OriginalText) {
		signals = append(signals, core.Signal{Type: core.SignalExact, Score: 1.0})
	}

	vectors, err := v.embedder.EmbedTexts(ctx, []string{claim.OriginalText, sectionText})
	if err != nil {
		// Keep whatever the exact check found
		v.logger.Warn("embedding failed during verification",
			"claimId", claim.Id, "err", err)
		return core.Verification{Verified: len(signals) > 0, Signals: signals}
	}
	if len(vectors) == 2 {
		similarity := cosineSimilarity(vectors[0], vectors[1])
		if similarity >= v.semanticThreshold {
			signals = append(signals, core.Signal{Type: core.SignalSemantic, Score: similarity})
		}
	}

	return core.Verification{Verified: len(signals) > 0, Signals: signals}
}

// VerifyClaims verifies a batch of claims concurrently over the worker pool.
// The result maps claim id to its verification outcome; every input claim
// gets an entry. Claims not processed before context cancellation are
// reported unverified.
func (v *Verifier) VerifyClaims(ctx context.Context, claims []*core.Claim) map[core.ID]core.Verification {
	results := make(map[core.ID]core.Verification, len(claims))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, claim := range claims {
		claim := claim
		wg.Add(1)
		err := v.pool.Submit(func() {
			defer wg.Done()

			var outcome core.Verification
			if ctx.Err() == nil {
				outcome = v.VerifyClaim(ctx, claim)
			}

			mu.Lock()
			results[claim.Id] = outcome
			mu.Unlock()
		})
		if err != nil {
			wg.Done()
			v.logger.Warn("verification task rejected", "claimId", claim.Id, "err", err)
			mu.Lock()
			results[claim.Id] = core.Verification{}
			mu.Unlock()
		}
	}

	wg.Wait()
	return results
}

// Release releases the worker pool.
// The verifier should not be used after calling Release.
func (v *Verifier) Release() {
	if v.pool != nil {
		v.pool.Release()
	}
}
