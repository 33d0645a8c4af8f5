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

// Package conflict surfaces precomputed conflicts between the claims backing
// an answer. Detection is pure lookup: conflicts are computed at ingestion
// time, and a conflict is reported only when both of its endpoints appear in
// the supporting evidence. Absence of a reported conflict means "no known
// conflict", not "verified consistent".
package conflict

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/veridex/core"
)

// ErrConflictSourceRequired is returned when a nil conflict source is provided.
var ErrConflictSourceRequired = errors.New("conflict source is required")

// ConflictSource looks up precomputed conflicts by claim. Satisfied by
// storage.ConflictRepository.
type ConflictSource interface {
	GetConflictsForClaims(ctx context.Context, claimIDs ...core.ID) ([]*core.Conflict, error)
}

// Detector resolves the conflicts among a set of supporting claims.
type Detector struct {
	conflicts ConflictSource
	logger    *slog.Logger
}

// Option configures a Detector.
type Option func(*Detector) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Detector) error {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger
		return nil
	}
}

// NewDetector creates a new conflict detector.
func NewDetector(conflicts ConflictSource, opts ...Option) (*Detector, error) {
	if conflicts == nil {
		return nil, ErrConflictSourceRequired
	}

	d := &Detector{
		conflicts: conflicts,
		logger:    slog.Default().With("component", "conflict-detector"),
	}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Resolve returns the precomputed conflicts whose both endpoints are among
// the supporting claims, in display form. Lookup failure is non-fatal: the
// answer is still useful without conflict annotations, so errors are logged
// and an empty result returned.
func (d *Detector) Resolve(ctx context.Context, supporting []core.SupportingClaim) []core.ResolvedConflict {
	if len(supporting) == 0 {
		return nil
	}

	byID := make(map[core.ID]*core.SupportingClaim, len(supporting))
	ids := make([]core.ID, len(supporting))
	for i := range supporting {
		byID[supporting[i].Id] = &supporting[i]
		ids[i] = supporting[i].Id
	}

	conflicts, err := d.conflicts.GetConflictsForClaims(ctx, ids...)
	if err != nil {
		d.logger.Warn("conflict lookup failed, omitting conflict annotations", "err", err)
		return nil
	}

	var resolved []core.ResolvedConflict
	for _, conflict := range conflicts {
		claimA, okA := byID[conflict.ClaimAId]
		claimB, okB := byID[conflict.ClaimBId]
		if !okA || !okB {
			// Only one endpoint made it into the evidence
			continue
		}

		resolved = append(resolved, core.ResolvedConflict{
			ClaimA:       toRef(claimA),
			ClaimB:       toRef(claimB),
			ConflictType: conflict.ConflictType,
		})
	}

	if len(resolved) > 0 {
		d.logger.Debug("resolved conflicts among supporting claims",
			"claims", len(supporting), "conflicts", len(resolved))
	}
	return resolved
}

func toRef(claim *core.SupportingClaim) core.ClaimRef {
	return core.ClaimRef{
		Text:       claim.Text,
		Confidence: claim.Confidence,
		DocumentId: claim.DocumentId,
	}
}
