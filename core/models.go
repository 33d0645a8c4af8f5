package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing by the ingestion collaborator.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Document is an ingested unit of knowledge. Documents are created and
// updated exclusively by the ingestion collaborator; the query pipeline
// only reads them. Immutable once created except for the Deprecated flag
// and re-ingestion on content-hash change.
type Document struct {
	Id             ID
	Title          string
	SourcePath     string
	ContentHash    string
	Format         string
	DocumentType   string
	RawContent     string
	AuthorityLevel int // Trust rank; higher authority wins ties at equal relevance
	Frontmatter    map[string]string
	CreatedAt      time.Time
	Deprecated     bool
}

// Section is a contiguous, addressable span within a Document, such as a
// heading-delimited block. Sections are the unit returned by retrieval.
type Section struct {
	Id         ID
	DocumentId ID
	Header     string
	Content    string
	Order      int
	Vector     []float32 // Embedding vector for hybrid search (populated at ingestion)
}

// Claim is an atomic assertion extracted from a Section.
type Claim struct {
	Id              ID
	DocumentId      ID
	SourceSectionId ID
	Subject         string
	OriginalText    string
	Confidence      float64 // Assigned at extraction time, independent of query-time verification
}

// ConflictType categorizes how two claims are incompatible.
type ConflictType string

const (
	ConflictDirectNegation    ConflictType = "direct_negation"
	ConflictScopeMismatch     ConflictType = "scope_mismatch"
	ConflictVersionDivergence ConflictType = "version_divergence"
)

// Valid reports whether the conflict type is one of the known values.
func (ct ConflictType) Valid() bool {
	switch ct {
	case ConflictDirectNegation, ConflictScopeMismatch, ConflictVersionDivergence:
		return true
	}
	return false
}

// Conflict records that two Claims assert incompatible things. Conflicts are
// precomputed by the ingestion collaborator and looked up at query time,
// never inferred by the pipeline. Absence of a Conflict means "no known
// conflict", not "verified consistent".
type Conflict struct {
	Id           ID
	ClaimAId     ID
	ClaimBId     ID
	ConflictType ConflictType
}

// SectionHit is a raw hybrid-search match carrying the parent document
// metadata needed for post-filtering and re-ranking.
type SectionHit struct {
	DocumentId     ID
	SectionId      ID
	Score          float64
	Excerpt        string
	AuthorityLevel int
	Deprecated     bool
	SourcePath     string
}
