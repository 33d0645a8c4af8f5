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


package core

import "fmt"

// ValidateQueryInput validates a QueryInput according to the input schema.
//
// Validation rules:
//   - Query must not be empty
//   - QueryType must be a known value
//   - ConfidenceThreshold must be in [0.0, 1.0]
//   - MaxSources must be in [1, 20]
//
// Validation happens before any I/O is performed.
func ValidateQueryInput(in *QueryInput) error {
	if in == nil {
		return fmt.Errorf("%w: input is nil", ErrInvalidQuery)
	}

	if in.Query == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, ErrEmptyQuery)
	}

	if !in.QueryType.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidQuery, ErrInvalidQueryType, in.QueryType)
	}

	if in.ConfidenceThreshold < 0.0 || in.ConfidenceThreshold > 1.0 {
		return fmt.Errorf("%w: %w: %v", ErrInvalidQuery, ErrConfidenceOutOfRange, in.ConfidenceThreshold)
	}

	if in.MaxSources < 1 || in.MaxSources > 20 {
		return fmt.Errorf("%w: %w: %d", ErrInvalidQuery, ErrMaxSourcesOutOfRange, in.MaxSources)
	}

	return nil
}

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - SourcePath must not be empty
//   - AuthorityLevel must not be negative
//
// NOT validated (populated elsewhere):
//   - ID (0 is replaced by a content-based ID at storage time)
//   - ContentHash (set by the ingestion collaborator)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}
	if doc.Title == "" {
		return fmt.Errorf("%w: title %w", ErrInvalidDocument, ErrEmptyContent)
	}
	if doc.SourcePath == "" {
		return fmt.Errorf("%w: source path %w", ErrInvalidDocument, ErrEmptyContent)
	}
	if doc.AuthorityLevel < 0 {
		return fmt.Errorf("%w: authority level cannot be negative", ErrInvalidDocument)
	}
	return nil
}

// ValidateSection validates a Section according to domain rules.
func ValidateSection(section *Section) error {
	if section == nil {
		return fmt.Errorf("%w: section is nil", ErrInvalidSection)
	}
	if section.DocumentId == 0 {
		return fmt.Errorf("%w: document id is required", ErrInvalidSection)
	}
	if section.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSection, ErrEmptyContent)
	}
	return nil
}

// ValidateClaim validates a Claim according to domain rules.
// The invariant that a claim's document id matches its source section's
// parent document is enforced at storage time, where both are visible.
func ValidateClaim(claim *Claim) error {
	if claim == nil {
		return fmt.Errorf("%w: claim is nil", ErrInvalidClaim)
	}
	if claim.DocumentId == 0 || claim.SourceSectionId == 0 {
		return fmt.Errorf("%w: document and section ids are required", ErrInvalidClaim)
	}
	if claim.OriginalText == "" {
		return fmt.Errorf("%w: %w", ErrInvalidClaim, ErrEmptyContent)
	}
	if claim.Confidence < 0.0 || claim.Confidence > 1.0 {
		return fmt.Errorf("%w: %w", ErrInvalidClaim, ErrConfidenceOutOfRange)
	}
	return nil
}

// ValidateConflict validates a Conflict according to domain rules.
func ValidateConflict(conflict *Conflict) error {
	if conflict == nil {
		return fmt.Errorf("%w: conflict is nil", ErrInvalidConflict)
	}
	if conflict.ClaimAId == 0 || conflict.ClaimBId == 0 {
		return fmt.Errorf("%w: both claim ids are required", ErrInvalidConflict)
	}
	if conflict.ClaimAId == conflict.ClaimBId {
		return fmt.Errorf("%w: a claim cannot conflict with itself", ErrInvalidConflict)
	}
	if !conflict.ConflictType.Valid() {
		return fmt.Errorf("%w: unknown conflict type %q", ErrInvalidConflict, conflict.ConflictType)
	}
	return nil
}
