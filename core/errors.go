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

import "errors"

// Domain validation errors
var (
	// ErrInvalidQuery indicates a QueryInput failed validation.
	ErrInvalidQuery = errors.New("invalid query input")

	// ErrEmptyQuery indicates the query text is empty.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrInvalidQueryType indicates an unknown QueryType value.
	ErrInvalidQueryType = errors.New("invalid query type")

	// ErrConfidenceOutOfRange indicates a confidence value outside [0.0, 1.0].
	ErrConfidenceOutOfRange = errors.New("confidence must be between 0.0 and 1.0")

	// ErrMaxSourcesOutOfRange indicates max_sources outside [1, 20].
	ErrMaxSourcesOutOfRange = errors.New("max sources must be between 1 and 20")

	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidSection indicates a Section failed validation.
	ErrInvalidSection = errors.New("invalid section")

	// ErrInvalidClaim indicates a Claim failed validation.
	ErrInvalidClaim = errors.New("invalid claim")

	// ErrInvalidConflict indicates a Conflict failed validation.
	ErrInvalidConflict = errors.New("invalid conflict")

	// ErrEmptyContent indicates a required text field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")
)
