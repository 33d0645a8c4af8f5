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

package badger

import (
	"github.com/poiesic/veridex/storage"
)

// Store bundles the four repositories over a single BadgerDB backend.
type Store struct {
	backend   *Backend
	documents *DocumentRepository
	sections  *SectionRepository
	claims    *ClaimRepository
	conflicts *ConflictRepository
}

// OpenStore opens a BadgerDB-backed store at the given path. When inMemory
// is true the path is ignored and nothing is persisted.
func OpenStore(filePath string, inMemory bool) (*Store, error) {
	backend, err := OpenBackend(filePath, inMemory)
	if err != nil {
		return nil, err
	}

	documents, err := NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	sections, err := NewSectionRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	claims, err := NewClaimRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	conflicts, err := NewConflictRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Store{
		backend:   backend,
		documents: documents,
		sections:  sections,
		claims:    claims,
		conflicts: conflicts,
	}, nil
}

// Documents returns the document repository.
func (s *Store) Documents() storage.DocumentRepository {
	return s.documents
}

// Sections returns the section repository.
func (s *Store) Sections() storage.SectionRepository {
	return s.sections
}

// Claims returns the claim repository.
func (s *Store) Claims() storage.ClaimRepository {
	return s.claims
}

// Conflicts returns the conflict repository.
func (s *Store) Conflicts() storage.ConflictRepository {
	return s.conflicts
}

// Close closes the underlying database. The repositories are unusable
// afterwards.
func (s *Store) Close() error {
	s.documents.Close()
	s.sections.Close()
	s.claims.Close()
	s.conflicts.Close()
	return s.backend.Close()
}
