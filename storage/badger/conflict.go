package badger

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/veridex/core"
	"github.com/poiesic/veridex/storage"
)

// ConflictRepository implements storage.ConflictRepository for BadgerDB.
type ConflictRepository struct {
	backend *Backend
}

var _ storage.ConflictRepository = (*ConflictRepository)(nil)

// NewConflictRepository creates a new ConflictRepository.
func NewConflictRepository(backend *Backend) (*ConflictRepository, error) {
	return &ConflictRepository{
		backend: backend,
	}, nil
}

// Close releases resources. ConflictRepository has no resources to release.
func (r *ConflictRepository) Close() error {
	return nil
}

// AddConflicts adds one or more conflict records to storage. Both claim
// endpoints must already exist. The conflict is indexed under both claims
// so it is reachable from either side.
func (r *ConflictRepository) AddConflicts(ctx context.Context, conflicts ...*core.Conflict) ([]*core.Conflict, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, conflict := range conflicts {
			if err := core.ValidateConflict(conflict); err != nil {
				return err
			}

			for _, claimID := range []core.ID{conflict.ClaimAId, conflict.ClaimBId} {
				claim, err := readClaim(tx, makeClaimKey(claimID))
				if err != nil {
					return err
				}
				if claim == nil {
					return fmt.Errorf("%w: claim %d", storage.ErrNotFound, claimID)
				}
			}

			// Use content-based ID if not set
			if conflict.Id == 0 {
				conflict.Id = core.IDFromContent(fmt.Sprintf("%d:%d:%s",
					conflict.ClaimAId, conflict.ClaimBId, conflict.ConflictType))
			}

			key := makeConflictKey(conflict.Id)
			value := storage.MarshalConflict(conflict)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Index under both endpoints
			for _, claimID := range []core.ID{conflict.ClaimAId, conflict.ClaimBId} {
				claimKey := makeConflictClaimKey(claimID, conflict.Id)
				if err := tx.Set(claimKey, storage.MarshalID(conflict.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return conflicts, err
}

// GetConflictsForClaims retrieves all conflicts touching any of the given
// claims. Each conflict appears once even when both of its endpoints are in
// the input set.
func (r *ConflictRepository) GetConflictsForClaims(ctx context.Context, claimIDs ...core.ID) ([]*core.Conflict, error) {
	var results []*core.Conflict
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		seen := make(map[core.ID]bool)

		for _, claimID := range claimIDs {
			startKey := makePartialCompositeKey(conflictClaimPrefix, claimID)
			iter := tx.NewIterator(badger.DefaultIteratorOptions)

			for iter.Seek(startKey); iter.Valid(); iter.Next() {
				key := iter.Item().Key()
				if len(key) < len(startKey) || !bytes.HasPrefix(key, startKey) {
					break
				}

				var conflictID core.ID
				if err := iter.Item().Value(func(val []byte) error {
					var err error
					conflictID, err = storage.UnmarshalID(val)
					return err
				}); err != nil {
					iter.Close()
					return err
				}

				if seen[conflictID] {
					continue
				}
				seen[conflictID] = true

				conflict, err := readConflict(tx, makeConflictKey(conflictID))
				if err != nil {
					iter.Close()
					return err
				}
				if conflict != nil {
					results = append(results, conflict)
				}
			}
			iter.Close()
		}
		return nil
	}, false)
	return results, err
}

// readConflict reads a conflict from the transaction.
// Returns nil without error if the key does not exist.
func readConflict(tx *badger.Txn, key []byte) (*core.Conflict, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var conflict *core.Conflict
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		conflict, unmarshalErr = storage.UnmarshalConflict(val)
		return unmarshalErr
	})
	return conflict, err
}
