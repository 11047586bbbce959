package usecase

import (
	"slices"
	"strings"

	"github.com/ecomate/backend/internal/domain"
	"github.com/ecomate/backend/internal/infrastructure/logging"
	"github.com/rs/zerolog"
)

const (
	// EcoFriendlyThreshold is the minimum eco score for a preferred alternative
	EcoFriendlyThreshold = 70

	// MaxAlternatives caps the number of suggestions returned
	MaxAlternatives = 2
)

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	EnableDebugLogging bool
}

// MatchingService matches free-text queries against a catalog and ranks
// alternatives. It holds no catalog of its own; callers pass one in, and a nil
// catalog is treated as not loaded.
type MatchingService struct {
	enableDebugLogging bool
	logger             zerolog.Logger
}

// NewMatchingService creates a new matching service with the given configuration
func NewMatchingService(config MatchConfig) *MatchingService {
	return &MatchingService{
		enableDebugLogging: config.EnableDebugLogging,
		logger:             logging.Logger("matcher"),
	}
}

// Match returns the first catalog product, in catalog order, for which the
// normalized query and the product's key or name contain one another.
// There is no scoring between candidates: the earliest entry wins.
// When nothing matches, a synthetic "not found" product named after the
// trimmed query is returned.
func (s *MatchingService) Match(query string, catalog *domain.Catalog) domain.Product {
	trimmed := strings.TrimSpace(query)
	searchTerm := strings.ToLower(trimmed)

	for _, entry := range catalog.Entries() {
		key := normalizeKey(entry.Key)
		name := normalizeName(entry.Product.Name)

		if containsEither(searchTerm, key) || containsEither(searchTerm, name) {
			if s.enableDebugLogging {
				s.logger.Debug().Str("query", trimmed).Str("key", entry.Key).Msg("matched catalog entry")
			}
			return entry.Product
		}
	}

	if s.enableDebugLogging {
		s.logger.Debug().Str("query", trimmed).Int("catalogSize", catalog.Len()).Msg("no catalog match")
	}
	return domain.NewSyntheticProduct(trimmed)
}

// Suggest returns up to MaxAlternatives alternatives for query.
// Products scoring at least EcoFriendlyThreshold whose name contains the query
// are preferred, in catalog order. Without any, the highest scoring products
// of the whole catalog are returned; equal scores keep catalog order.
func (s *MatchingService) Suggest(query string, catalog *domain.Catalog) []domain.Product {
	searchTerm := normalizeQuery(query)
	if searchTerm == "" || catalog.Len() == 0 {
		return nil
	}

	products := catalog.Products()

	var ecoProducts []domain.Product
	for _, p := range products {
		if p.EcoScore >= EcoFriendlyThreshold && strings.Contains(normalizeName(p.Name), searchTerm) {
			ecoProducts = append(ecoProducts, p)
		}
	}

	if len(ecoProducts) > 0 {
		return firstN(ecoProducts, MaxAlternatives)
	}

	slices.SortStableFunc(products, func(a, b domain.Product) int {
		return b.EcoScore - a.EcoScore
	})

	if s.enableDebugLogging {
		s.logger.Debug().Str("query", searchTerm).Msg("no eco-friendly name match, using top scored products")
	}
	return firstN(products, MaxAlternatives)
}

func firstN(products []domain.Product, n int) []domain.Product {
	if len(products) > n {
		products = products[:n]
	}
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out
}
