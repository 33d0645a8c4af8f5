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

// Package badger implements the storage repositories on BadgerDB.
//
// Records are serialized with MUS binary encoding and stored under typed
// key prefixes. Secondary lookups (sections by document, claims by section,
// conflicts by claim) use composite keys with BigEndian-encoded IDs so a
// prefix scan returns all entries for a primary ID.
//
// SearchSections scans every stored section and scores it against the query
// vector and query text. This is a linear scan; corpora in the hundreds of
// documents stay well inside the latency budget without an ANN index.
package badger
