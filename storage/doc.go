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


// Package storage provides the storage abstraction layer for veridex.
//
// This package defines repository interfaces that decouple storage
// implementation from the query pipeline. The repositories cover the four
// stored record types (documents, sections, claims, conflicts) plus the
// hybrid section search used by retrieval.
//
// The storage layer is a typed read/write layer only: business filtering
// such as deprecation handling, scope restriction, and confidence
// thresholds lives in the pipeline stages, never here. Records are written
// by the ingestion collaborator and read by the pipeline.
//
// # Usage
//
// Open a store backed by BadgerDB:
//
//	store, err := badger.OpenStore("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
// Use in tests with in-memory storage:
//
//	store, err := badger.NewMemoryStore()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and
// timeout support.
package storage
