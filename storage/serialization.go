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


package storage

import (
	"github.com/poiesic/veridex/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalDocument serializes a Document to bytes.
func MarshalDocument(doc *core.Document) []byte {
	buf := make([]byte, core.DocumentMUS.Size(*doc))
	core.DocumentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalDocument deserializes a Document from bytes.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	doc, _, err := core.DocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// MarshalSection serializes a Section to bytes.
func MarshalSection(section *core.Section) []byte {
	buf := make([]byte, core.SectionMUS.Size(*section))
	core.SectionMUS.Marshal(*section, buf)
	return buf
}

// UnmarshalSection deserializes a Section from bytes.
func UnmarshalSection(data []byte) (*core.Section, error) {
	section, _, err := core.SectionMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &section, nil
}

// MarshalClaim serializes a Claim to bytes.
func MarshalClaim(claim *core.Claim) []byte {
	buf := make([]byte, core.ClaimMUS.Size(*claim))
	core.ClaimMUS.Marshal(*claim, buf)
	return buf
}

// UnmarshalClaim deserializes a Claim from bytes.
func UnmarshalClaim(data []byte) (*core.Claim, error) {
	claim, _, err := core.ClaimMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &claim, nil
}

// MarshalConflict serializes a Conflict to bytes.
func MarshalConflict(conflict *core.Conflict) []byte {
	buf := make([]byte, core.ConflictMUS.Size(*conflict))
	core.ConflictMUS.Marshal(*conflict, buf)
	return buf
}

// UnmarshalConflict deserializes a Conflict from bytes.
func UnmarshalConflict(data []byte) (*core.Conflict, error) {
	conflict, _, err := core.ConflictMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &conflict, nil
}
