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

// Package veridex resolves natural-language queries against a pre-ingested
// document corpus. It retrieves relevant sections with hybrid search,
// gathers and optionally verifies the claims behind them, surfaces known
// conflicts, and synthesizes a confidence-scored answer that cites its
// evidence.
package veridex

import (
	"context"
	"log/slog"

	"github.com/poiesic/veridex/ai"
	"github.com/poiesic/veridex/ai/openai"
	"github.com/poiesic/veridex/conflict"
	"github.com/poiesic/veridex/core"
	"github.com/poiesic/veridex/resolver"
	"github.com/poiesic/veridex/retrieval"
	"github.com/poiesic/veridex/storage/badger"
	"github.com/poiesic/veridex/synthesis"
	"github.com/poiesic/veridex/verify"
)

// Engine bundles the storage layer, AI provider, and query pipeline behind
// one handle.
type Engine struct {
	store    *badger.Store
	provider ai.AIProvider
	verifier *verify.Verifier
	resolver *resolver.Resolver
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
	inMemory bool
}

// WithAIConfig sets the AI service configuration used to construct the
// default OpenAI-compatible provider. Ignored when WithProvider is given.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithProvider supplies a pre-built AI provider instead of constructing one
// from configuration. The engine takes ownership and closes it.
func WithProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithInMemoryStore uses an in-memory store instead of opening the path.
// Nothing is persisted. Intended for tests and experiments.
func WithInMemoryStore() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// NewEngine opens the store at filePath and wires up the query pipeline.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	store, err := badger.OpenStore(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	retriever, err := retrieval.NewRetriever(provider.Embedder(), store.Sections())
	if err != nil {
		provider.Close()
		store.Close()
		return nil, err
	}

	verifier, err := verify.NewVerifier(store.Sections(), provider.Embedder())
	if err != nil {
		provider.Close()
		store.Close()
		return nil, err
	}

	detector, err := conflict.NewDetector(store.Conflicts())
	if err != nil {
		verifier.Release()
		provider.Close()
		store.Close()
		return nil, err
	}

	synthesizer, err := synthesis.NewSynthesizer(provider.Generator())
	if err != nil {
		verifier.Release()
		provider.Close()
		store.Close()
		return nil, err
	}

	res, err := resolver.NewResolver(retriever, store.Claims(), verifier, detector, synthesizer)
	if err != nil {
		verifier.Release()
		provider.Close()
		store.Close()
		return nil, err
	}

	return &Engine{
		store:    store,
		provider: provider,
		verifier: verifier,
		resolver: res,
		logger:   slog.Default(),
	}, nil
}

// Resolve runs one query through the pipeline.
func (e *Engine) Resolve(ctx context.Context, input *core.QueryInput) (*core.QueryResult, error) {
	return e.resolver.Resolve(ctx, input)
}

// Store returns the underlying store, used by ingestion tooling to load
// the corpus the pipeline reads.
func (e *Engine) Store() *badger.Store {
	return e.store
}

// Close releases the pipeline and closes the provider and store.
func (e *Engine) Close() error {
	e.verifier.Release()

	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	if err := e.store.Close(); err != nil {
		e.logger.Error("error closing store", "err", err)
		return err
	}
	return nil
}
