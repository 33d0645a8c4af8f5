package badger

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/veridex/core"
	"github.com/poiesic/veridex/storage"
)

const (
	// Minimum vector similarity for a purely semantic hit. Keyword matches
	// are admitted below this floor so the search stays hybrid.
	semanticFloor = 0.25

	// Score boost for hits whose section text contains all query words.
	keywordBoost = 0.3

	// Maximum excerpt length in runes.
	excerptLength = 240
)

// SectionRepository implements storage.SectionRepository for BadgerDB.
// SearchSections performs the combined vector + keyword scan the retriever
// builds on.
type SectionRepository struct {
	backend *Backend
}

var _ storage.SectionRepository = (*SectionRepository)(nil)

// NewSectionRepository creates a new SectionRepository.
func NewSectionRepository(backend *Backend) (*SectionRepository, error) {
	return &SectionRepository{
		backend: backend,
	}, nil
}

// Close releases resources. SectionRepository has no resources to release.
func (r *SectionRepository) Close() error {
	return nil
}

// AddSections adds one or more sections to storage.
func (r *SectionRepository) AddSections(ctx context.Context, sections ...*core.Section) ([]*core.Section, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, section := range sections {
			if err := core.ValidateSection(section); err != nil {
				return err
			}

			// Use content-based ID if not set
			if section.Id == 0 {
				section.Id = core.IDFromContent(fmt.Sprintf("%d:%d:%s", section.DocumentId, section.Order, section.Content))
			}

			key := makeSectionKey(section.Id)
			value := storage.MarshalSection(section)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update section-by-document index
			docKey := makeSectionDocKey(section.DocumentId, section.Id)
			if err := tx.Set(docKey, storage.MarshalID(section.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return sections, err
}

// GetSection retrieves a single section by ID.
func (r *SectionRepository) GetSection(ctx context.Context, id core.ID) (*core.Section, error) {
	var result *core.Section
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readSection(tx, makeSectionKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return fmt.Errorf("%w: section %d", storage.ErrNotFound, id)
		}
		return nil
	}, false)
	return result, err
}

// GetSectionsForDocument retrieves all sections of a document, ordered by
// their Order field.
func (r *SectionRepository) GetSectionsForDocument(ctx context.Context, documentID core.ID) ([]*core.Section, error) {
	var results []*core.Section
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialCompositeKey(sectionDocPrefix, documentID)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(startKey) || !bytes.HasPrefix(key, startKey) {
				break
			}

			var sectionID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				sectionID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			section, err := readSection(tx, makeSectionKey(sectionID))
			if err != nil {
				return err
			}
			if section != nil {
				results = append(results, section)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.Section) int {
		return a.Order - b.Order
	})
	return results, nil
}

// SearchSections runs a combined vector-similarity and keyword-match scan
// over all sections. A hit qualifies semantically when its vector similarity
// reaches the floor, or verbatim when its text contains all query words;
// verbatim matches receive a fixed boost. Hits carry parent document
// metadata so callers can post-filter without further lookups.
func (r *SectionRepository) SearchSections(ctx context.Context, vector []float32, queryText string, limit int) ([]*core.SectionHit, error) {
	var results []*core.SectionHit

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Documents looked up once per distinct parent
		docs := make(map[core.ID]*core.Document)

		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(sectionPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var section *core.Section
			err := iter.Item().Value(func(val []byte) error {
				var err error
				section, err = storage.UnmarshalSection(val)
				return err
			})
			if err != nil {
				return err
			}
			if section == nil {
				continue
			}

			var similarity float64
			if len(section.Vector) > 0 {
				similarity = float64(dotProduct(vector, section.Vector))
			}
			verbatim := core.ContainsAllWords(section.Header+" "+section.Content, queryText)

			var score float64
			switch {
			case similarity >= semanticFloor && verbatim:
				score = similarity + keywordBoost
			case similarity >= semanticFloor:
				score = similarity
			case verbatim:
				score = keywordBoost
			default:
				continue
			}

			doc, ok := docs[section.DocumentId]
			if !ok {
				var readErr error
				doc, readErr = readDocument(tx, makeDocumentKey(section.DocumentId))
				if readErr != nil {
					return readErr
				}
				docs[section.DocumentId] = doc
			}
			if doc == nil {
				// Orphaned section; the parent was removed mid-reingestion
				r.backend.logger.Debug("skipping section without parent document",
					"sectionId", section.Id, "documentId", section.DocumentId)
				continue
			}

			results = append(results, &core.SectionHit{
				DocumentId:     doc.Id,
				SectionId:      section.Id,
				Score:          score,
				Excerpt:        makeExcerpt(section),
				AuthorityLevel: doc.AuthorityLevel,
				Deprecated:     doc.Deprecated,
				SourcePath:     doc.SourcePath,
			})
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Sort by relevance descending; callers re-rank with authority
	slices.SortFunc(results, func(a, b *core.SectionHit) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// makeExcerpt builds a short display excerpt from a section.
func makeExcerpt(section *core.Section) string {
	text := section.Content
	if section.Header != "" {
		text = section.Header + ": " + text
	}
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) > excerptLength {
		return string(runes[:excerptLength]) + "…"
	}
	return text
}

// dotProduct calculates the dot product of two vectors.
// Equals cosine similarity for normalized vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// readSection reads a section from the transaction.
// Returns nil without error if the key does not exist.
func readSection(tx *badger.Txn, key []byte) (*core.Section, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var section *core.Section
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		section, unmarshalErr = storage.UnmarshalSection(val)
		return unmarshalErr
	})
	return section, err
}
