package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/veridex/core"
)

// Key prefixes for different data types
const (
	documentPrefix      = "docrec"
	sectionPrefix       = "secrec"
	sectionDocPrefix    = "secdoc"
	claimPrefix         = "clmrec"
	claimSectionPrefix  = "clmsec"
	conflictPrefix      = "cflrec"
	conflictClaimPrefix = "cflclm"
)

// makeDocumentKey generates a key for a document by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", documentPrefix, id))
}

// makeSectionKey generates a key for a section by ID.
func makeSectionKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", sectionPrefix, id))
}

// makeClaimKey generates a key for a claim by ID.
func makeClaimKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", claimPrefix, id))
}

// makeConflictKey generates a key for a conflict by ID.
func makeConflictKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", conflictPrefix, id))
}

// makeCompositeKey generates a composite index key.
// Format: prefix:primaryID:secondaryID, IDs in BigEndian order so
// lexicographic sort groups entries by primary ID.
func makeCompositeKey(prefix string, primary, secondary core.ID) []byte {
	prefixBytes := []byte(prefix + ":")
	buf := make([]byte, len(prefixBytes)+16)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(primary))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(secondary))
	return buf
}

// makePartialCompositeKey generates a partial key for prefix scans over a
// composite index.
func makePartialCompositeKey(prefix string, primary core.ID) []byte {
	prefixBytes := []byte(prefix + ":")
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(primary))
	return buf
}

// makeSectionDocKey generates a composite key for the section-by-document index.
func makeSectionDocKey(documentID, sectionID core.ID) []byte {
	return makeCompositeKey(sectionDocPrefix, documentID, sectionID)
}

// makeClaimSectionKey generates a composite key for the claim-by-section index.
func makeClaimSectionKey(sectionID, claimID core.ID) []byte {
	return makeCompositeKey(claimSectionPrefix, sectionID, claimID)
}

// makeConflictClaimKey generates a composite key for the conflict-by-claim index.
// Written once per endpoint so conflicts are reachable from either claim.
func makeConflictClaimKey(claimID, conflictID core.ID) []byte {
	return makeCompositeKey(conflictClaimPrefix, claimID, conflictID)
}
