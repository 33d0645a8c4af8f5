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

import "errors"

var (
	// ErrEmbedderRequired is returned when a nil embedder is provided.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrSearcherRequired is returned when a nil section searcher is provided.
	ErrSearcherRequired = errors.New("section searcher is required")

	// ErrEmbeddingUnavailable is returned when the query embedding cannot be
	// generated. This is a hard failure: without a query vector there is
	// nothing to search with.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrSearchUnavailable is returned when the section search itself fails.
	ErrSearchUnavailable = errors.New("section search unavailable")
)
