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

// QueryType selects the answer shape the synthesizer asks the model for.
type QueryType string

const (
	// QueryTypeFactual produces a direct statement.
	QueryTypeFactual QueryType = "factual"
	// QueryTypeProcedural produces ordered steps.
	QueryTypeProcedural QueryType = "procedural"
	// QueryTypeConceptual produces an explanation.
	QueryTypeConceptual QueryType = "conceptual"
	// QueryTypeComparative produces a side-by-side contrast.
	QueryTypeComparative QueryType = "comparative"
)

// Valid reports whether the query type is one of the known values.
func (qt QueryType) Valid() bool {
	switch qt {
	case QueryTypeFactual, QueryTypeProcedural, QueryTypeConceptual, QueryTypeComparative:
		return true
	}
	return false
}

// QueryInput is the input to one pipeline run. It is ephemeral: created at
// the start of a request and discarded after the response is returned.
// Use NewQueryInput so unspecified fields carry their documented defaults.
type QueryInput struct {
	Query               string
	QueryType           QueryType
	IncludeDeprecated   bool
	ConfidenceThreshold float64
	MaxSources          int
	VerifyClaims        bool
	Scope               []string // Document ids or glob path patterns; empty means unscoped
	CodebasePath        string
}

// QueryOption configures a QueryInput.
type QueryOption func(*QueryInput)

// WithQueryType sets the query type. Default is QueryTypeFactual.
func WithQueryType(qt QueryType) QueryOption {
	return func(in *QueryInput) {
		in.QueryType = qt
	}
}

// WithIncludeDeprecated includes deprecated documents in results.
func WithIncludeDeprecated(include bool) QueryOption {
	return func(in *QueryInput) {
		in.IncludeDeprecated = include
	}
}

// WithConfidenceThreshold sets the minimum per-claim confidence for
// supporting evidence. Default is 0.7.
func WithConfidenceThreshold(threshold float64) QueryOption {
	return func(in *QueryInput) {
		in.ConfidenceThreshold = threshold
	}
}

// WithMaxSources bounds the number of sources returned. Default is 5.
func WithMaxSources(max int) QueryOption {
	return func(in *QueryInput) {
		in.MaxSources = max
	}
}

// WithVerifyClaims toggles claim verification. Default is true.
func WithVerifyClaims(verify bool) QueryOption {
	return func(in *QueryInput) {
		in.VerifyClaims = verify
	}
}

// WithScope restricts retrieval to documents matching the given entries.
// Each entry is either an exact document id or a glob path pattern matched
// against the document source path.
func WithScope(entries ...string) QueryOption {
	return func(in *QueryInput) {
		in.Scope = entries
	}
}

// WithCodebasePath attaches an optional codebase path to the query.
func WithCodebasePath(path string) QueryOption {
	return func(in *QueryInput) {
		in.CodebasePath = path
	}
}

// NewQueryInput creates a QueryInput with the documented defaults applied:
// query_type=factual, include_deprecated=false, confidence_threshold=0.7,
// max_sources=5, verify_claims=true, scope unscoped.
func NewQueryInput(query string, opts ...QueryOption) *QueryInput {
	in := &QueryInput{
		Query:               query,
		QueryType:           QueryTypeFactual,
		ConfidenceThreshold: 0.7,
		MaxSources:          5,
		VerifyClaims:        true,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// RetrievedSection is one ranked source backing the answer.
type RetrievedSection struct {
	DocumentId     ID      `json:"document_id"`
	SectionId      ID      `json:"section_id"`
	Score          float64 `json:"score"`
	Excerpt        string  `json:"excerpt"`
	AuthorityLevel int     `json:"authority_level"`
	Deprecated     bool    `json:"deprecated"`
}

// SignalType identifies how a claim was corroborated.
type SignalType string

const (
	// SignalExact means the claim text is contained verbatim in its source section.
	SignalExact SignalType = "exact"
	// SignalSemantic means claim and source embeddings exceeded the similarity threshold.
	SignalSemantic SignalType = "semantic"
)

// Signal records one corroboration of a claim.
type Signal struct {
	Type  SignalType `json:"type"`
	Score float64    `json:"score"`
}

// Verification is the outcome of verifying a single claim. Verification is
// advisory, not filtering: unverified claims are still returned to the
// caller, annotated as unverified.
type Verification struct {
	Verified bool
	Signals  []Signal
}

// SupportingClaim is a claim included as evidence in a QueryResult.
// Verified and Signals are populated only when verification ran.
type SupportingClaim struct {
	Id         ID       `json:"id"`
	Text       string   `json:"text"`
	Confidence float64  `json:"confidence"`
	DocumentId ID       `json:"document_id"`
	Verified   *bool    `json:"verified,omitempty"`
	Signals    []Signal `json:"signals,omitempty"`
}

// ClaimRef is the display form of one conflict endpoint.
type ClaimRef struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	DocumentId ID      `json:"document_id"`
}

// ResolvedConflict is a precomputed conflict whose both endpoints appear in
// the supporting evidence, resolved into display form.
type ResolvedConflict struct {
	ClaimA       ClaimRef     `json:"claim_a"`
	ClaimB       ClaimRef     `json:"claim_b"`
	ConflictType ConflictType `json:"conflict_type"`
}

// SynthesizedAnswer is the output of the answer synthesis stage. Confidence
// here is the overall answer confidence, independent of per-claim confidence
// and per-source relevance.
type SynthesizedAnswer struct {
	Answer        string
	Confidence    float64
	KnowledgeGaps []string
}

// QueryResult is the assembled response for one query.
type QueryResult struct {
	QueryId           string             `json:"query_id"`
	Answer            string             `json:"answer"`
	Confidence        float64            `json:"confidence"`
	Sources           []RetrievedSection `json:"sources"`
	SupportingClaims  []SupportingClaim  `json:"supporting_claims"`
	ConflictingClaims []ResolvedConflict `json:"conflicting_claims"`
	KnowledgeGaps     []string           `json:"knowledge_gaps"`
	ProcessingTimeMs  int64              `json:"processing_time_ms"`
}
