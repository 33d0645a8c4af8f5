package retrieval

import (
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/poiesic/veridex/core"
)

// matchesScope reports whether a hit falls inside the requested scope.
// Each scope entry is either an exact document id or a glob pattern matched
// against the document source path. Malformed patterns match nothing.
func matchesScope(hit *core.SectionHit, scope []string) bool {
	docID := strconv.FormatUint(uint64(hit.DocumentId), 10)
	for _, entry := range scope {
		if entry == docID {
			return true
		}
		if ok, err := doublestar.Match(entry, hit.SourcePath); err == nil && ok {
			return true
		}
	}
	return false
}
