package storage

import (
	"context"

	"github.com/poiesic/veridex/core"
)

// The repositories are a plain typed read/write layer. They never apply
// business filtering (confidence thresholds, deprecation, scope); that is
// the query pipeline's responsibility. Write operations exist for the
// ingestion collaborator, which owns the record lifecycle.
//
// Implementations must be thread-safe and support concurrent access.

// DocumentRepository provides operations for managing documents.
type DocumentRepository interface {
	// AddDocuments adds one or more documents to storage.
	// For documents with ID=0, derives a content-based ID from the
	// source path and content hash. Returns the documents with IDs populated.
	AddDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// GetDocuments retrieves multiple documents by their IDs.
	// Returns only the documents that exist (no error for missing documents).
	GetDocuments(ctx context.Context, ids ...core.ID) ([]*core.Document, error)

	// SetDeprecated flips the deprecation flag on an existing document.
	// Returns ErrNotFound if the document doesn't exist.
	SetDeprecated(ctx context.Context, id core.ID, deprecated bool) error

	// Close closes the repository and releases resources.
	Close() error
}

// SectionRepository provides operations for managing sections and the
// hybrid section search over them.
type SectionRepository interface {
	// AddSections adds one or more sections to storage and maintains the
	// section-by-document index. For sections with ID=0, derives a
	// content-based ID. Returns the sections with IDs populated.
	AddSections(ctx context.Context, sections ...*core.Section) ([]*core.Section, error)

	// GetSection retrieves a single section by ID.
	// Returns ErrNotFound if the section doesn't exist.
	GetSection(ctx context.Context, id core.ID) (*core.Section, error)

	// GetSectionsForDocument retrieves all sections of a document,
	// ordered by their Order field.
	GetSectionsForDocument(ctx context.Context, documentID core.ID) ([]*core.Section, error)

	// SearchSections runs a combined vector-similarity and keyword-match
	// search over all sections. Hits carry parent document metadata
	// (authority, deprecation, source path) so callers can post-filter
	// without further lookups. No business filtering is applied here.
	// Results are ordered by raw relevance score descending, up to limit.
	SearchSections(ctx context.Context, vector []float32, queryText string, limit int) ([]*core.SectionHit, error)

	// Close closes the repository and releases resources.
	Close() error
}

// ClaimRepository provides operations for managing claims.
type ClaimRepository interface {
	// AddClaims adds one or more claims to storage and maintains the
	// claim-by-section index. Returns ErrClaimSectionMismatch if a claim's
	// document id does not match its source section's parent document.
	AddClaims(ctx context.Context, claims ...*core.Claim) ([]*core.Claim, error)

	// GetClaim retrieves a single claim by ID.
	// Returns ErrNotFound if the claim doesn't exist.
	GetClaim(ctx context.Context, id core.ID) (*core.Claim, error)

	// GetClaims retrieves multiple claims by their IDs.
	// Returns only the claims that exist (no error for missing claims).
	GetClaims(ctx context.Context, ids ...core.ID) ([]*core.Claim, error)

	// GetClaimsForSection retrieves all claims extracted from a section.
	GetClaimsForSection(ctx context.Context, sectionID core.ID) ([]*core.Claim, error)

	// Close closes the repository and releases resources.
	Close() error
}

// ConflictRepository provides operations for managing precomputed conflicts.
type ConflictRepository interface {
	// AddConflicts adds one or more conflicts to storage and maintains the
	// conflict-by-claim index for both endpoints.
	AddConflicts(ctx context.Context, conflicts ...*core.Conflict) ([]*core.Conflict, error)

	// GetConflictsForClaims retrieves all conflicts that touch any of the
	// given claim IDs. Callers decide whether both endpoints are relevant.
	GetConflictsForClaims(ctx context.Context, claimIDs ...core.ID) ([]*core.Conflict, error)

	// Close closes the repository and releases resources.
	Close() error
}
