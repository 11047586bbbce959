package usecase

import (
	"strings"

	"github.com/ecomate/backend/internal/domain"
	"github.com/sahilm/fuzzy"
)

// MaxKeyHints caps the number of "did you mean" keys
const MaxKeyHints = 3

// SimilarKeys returns catalog keys that fuzzily resemble key, best first.
// Used to hint at typos in sample keys; it plays no part in Match.
func (s *MatchingService) SimilarKeys(key string, catalog *domain.Catalog) []string {
	pattern := strings.ToLower(strings.TrimSpace(key))
	if pattern == "" || catalog.Len() == 0 {
		return nil
	}

	src := keySource(catalog.Entries())
	matches := fuzzy.FindFrom(pattern, src)

	hints := make([]string, 0, min(len(matches), MaxKeyHints))
	for _, m := range matches {
		if len(hints) == MaxKeyHints {
			break
		}
		hints = append(hints, src[m.Index].Key)
	}
	return hints
}

// keySource lets fuzzy.FindFrom search over catalog keys
type keySource []domain.CatalogEntry

func (k keySource) String(i int) string { return k[i].Key }
func (k keySource) Len() int            { return len(k) }
