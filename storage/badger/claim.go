package badger

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/veridex/core"
	"github.com/poiesic/veridex/storage"
)

// ClaimRepository implements storage.ClaimRepository for BadgerDB.
type ClaimRepository struct {
	backend *Backend
}

var _ storage.ClaimRepository = (*ClaimRepository)(nil)

// NewClaimRepository creates a new ClaimRepository.
func NewClaimRepository(backend *Backend) (*ClaimRepository, error) {
	return &ClaimRepository{
		backend: backend,
	}, nil
}

// Close releases resources. ClaimRepository has no resources to release.
func (r *ClaimRepository) Close() error {
	return nil
}

// AddClaims adds one or more claims to storage. The source section of each
// claim must already exist and belong to the claim's document.
func (r *ClaimRepository) AddClaims(ctx context.Context, claims ...*core.Claim) ([]*core.Claim, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, claim := range claims {
			if err := core.ValidateClaim(claim); err != nil {
				return err
			}

			section, err := readSection(tx, makeSectionKey(claim.SourceSectionId))
			if err != nil {
				return err
			}
			if section == nil {
				return fmt.Errorf("%w: section %d", storage.ErrNotFound, claim.SourceSectionId)
			}
			if section.DocumentId != claim.DocumentId {
				return fmt.Errorf("%w: claim document %d, section document %d",
					storage.ErrClaimSectionMismatch, claim.DocumentId, section.DocumentId)
			}

			// Use content-based ID if not set
			if claim.Id == 0 {
				claim.Id = core.IDFromContent(fmt.Sprintf("%d:%s", claim.SourceSectionId, claim.OriginalText))
			}

			key := makeClaimKey(claim.Id)
			value := storage.MarshalClaim(claim)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update claim-by-section index
			sectionKey := makeClaimSectionKey(claim.SourceSectionId, claim.Id)
			if err := tx.Set(sectionKey, storage.MarshalID(claim.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return claims, err
}

// GetClaim retrieves a single claim by ID.
func (r *ClaimRepository) GetClaim(ctx context.Context, id core.ID) (*core.Claim, error) {
	var result *core.Claim
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readClaim(tx, makeClaimKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("%w: claim %d", storage.ErrNotFound, id)
		}
		return nil
	}, false)
	return result, err
}

// GetClaims retrieves multiple claims by their IDs. Missing claims are
// skipped rather than reported.
func (r *ClaimRepository) GetClaims(ctx context.Context, ids ...core.ID) ([]*core.Claim, error) {
	var result []*core.Claim
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			claim, err := readClaim(tx, makeClaimKey(id))
			if err != nil {
				return err
			}
			if claim != nil {
				result = append(result, claim)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetClaimsForSection retrieves all claims extracted from a section.
func (r *ClaimRepository) GetClaimsForSection(ctx context.Context, sectionID core.ID) ([]*core.Claim, error) {
	var results []*core.Claim
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialCompositeKey(claimSectionPrefix, sectionID)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(startKey) || !bytes.HasPrefix(key, startKey) {
				break
			}

			var claimID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				claimID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			claim, err := readClaim(tx, makeClaimKey(claimID))
			if err != nil {
				return err
			}
			if claim != nil {
				results = append(results, claim)
			}
		}
		return nil
	}, false)
	return results, err
}

// readClaim reads a claim from the transaction.
// Returns nil without error if the key does not exist.
func readClaim(tx *badger.Txn, key []byte) (*core.Claim, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var claim *core.Claim
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		claim, unmarshalErr = storage.UnmarshalClaim(val)
		return unmarshalErr
	})
	return claim, err
}
