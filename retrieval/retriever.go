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

package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/poiesic/veridex/core"
)

// overFetchFactor is how many candidates are requested from the search layer
// relative to max_sources, so post-filtering (deprecation, scope) still
// leaves enough results.
const overFetchFactor = 4

// scoreBucket quantizes relevance scores for re-ranking. Scores within the
// same bucket are treated as ties and broken by document authority.
const scoreBucket = 1e-3

// Embedder generates the query vector. Satisfied by ai.Embedder.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// SectionSearcher runs the hybrid section search. Satisfied by
// storage.SectionRepository.
type SectionSearcher interface {
	SearchSections(ctx context.Context, vector []float32, queryText string, limit int) ([]*core.SectionHit, error)
}

// Retriever turns a query into a ranked, filtered list of sections.
type Retriever struct {
	embedder Embedder
	searcher SectionSearcher
	logger   *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRetriever creates a new retriever.
func NewRetriever(embedder Embedder, searcher SectionSearcher, opts ...Option) (*Retriever, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if searcher == nil {
		return nil, ErrSearcherRequired
	}

	r := &Retriever{
		embedder: embedder,
		searcher: searcher,
		logger:   slog.Default().With("component", "retriever"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Retrieve embeds the query, over-fetches candidates from the hybrid search,
// applies deprecation and scope filtering, re-ranks with authority as the
// tiebreaker, and returns at most input.MaxSources sections.
//
// Embedding or search failure is a hard error; there is no degraded mode
// without candidates.
func (r *Retriever) Retrieve(ctx context.Context, input *core.QueryInput) ([]core.RetrievedSection, error) {
	vector, err := r.embedder.EmbedText(ctx, input.Query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingUnavailable, err)
	}

	fetchLimit := input.MaxSources * overFetchFactor
	hits, err := r.searcher.SearchSections(ctx, vector, input.Query, fetchLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchUnavailable, err)
	}

	filtered := make([]*core.SectionHit, 0, len(hits))
	for _, hit := range hits {
		if hit.Deprecated && !input.IncludeDeprecated {
			continue
		}
		if len(input.Scope) > 0 && !matchesScope(hit, input.Scope) {
			continue
		}
		filtered = append(filtered, hit)
	}

	rerank(filtered)

	if len(filtered) > input.MaxSources {
		filtered = filtered[:input.MaxSources]
	}

	r.logger.Debug("retrieved sections",
		"candidates", len(hits),
		"afterFilter", len(filtered),
		"maxSources", input.MaxSources)

	sections := make([]core.RetrievedSection, len(filtered))
	for i, hit := range filtered {
		sections[i] = core.RetrievedSection{
			DocumentId:     hit.DocumentId,
			SectionId:      hit.SectionId,
			Score:          hit.Score,
			Excerpt:        hit.Excerpt,
			AuthorityLevel: hit.AuthorityLevel,
			Deprecated:     hit.Deprecated,
		}
	}
	return sections, nil
}

// rerank orders hits by quantized relevance descending, breaking ties on
// authority level, then raw score, then document id for determinism.
func rerank(hits []*core.SectionHit) {
	slices.SortFunc(hits, func(a, b *core.SectionHit) int {
		ba, bb := quantize(a.Score), quantize(b.Score)
		if ba != bb {
			if ba > bb {
				return -1
			}
			return 1
		}
		if a.AuthorityLevel != b.AuthorityLevel {
			if a.AuthorityLevel > b.AuthorityLevel {
				return -1
			}
			return 1
		}
		if a.Score != b.Score {
			if a.Score > b.Score {
				return -1
			}
			return 1
		}
		if a.DocumentId != b.DocumentId {
			if a.DocumentId < b.DocumentId {
				return -1
			}
			return 1
		}
		return 0
	})
}

func quantize(score float64) int64 {
	return int64(math.Round(score / scoreBucket))
}
