package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/ecomate/backend/internal/domain"
	"github.com/ecomate/backend/internal/infrastructure/logging"
	"github.com/rs/zerolog"
)

// Analysis sources
const (
	SourceCatalog = "Catalog"
	SourceCache   = "Cache"
)

// ProductServiceConfig holds configuration for the product service
type ProductServiceConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// ProductService answers one-shot product lookups against a loaded catalog.
// Analyses are memoized; the catalog never changes, so cached results stay valid.
type ProductService struct {
	catalog         *domain.Catalog
	cache           domain.ResultCache
	matchingService *MatchingService
	cacheTTL        time.Duration
	logger          zerolog.Logger
}

// NewProductService creates a new product service. catalog may be nil, in
// which case every lookup degrades to the "not found" product. cache may be nil.
func NewProductService(
	catalog *domain.Catalog,
	cache domain.ResultCache,
	config ProductServiceConfig,
) *ProductService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &ProductService{
		catalog:         catalog,
		cache:           cache,
		matchingService: NewMatchingService(MatchConfig{EnableDebugLogging: config.EnableDebugLogging}),
		cacheTTL:        cacheTTL,
		logger:          logging.Logger("products"),
	}
}

// Matcher exposes the matching service, for sessions sharing this catalog
func (s *ProductService) Matcher() *MatchingService {
	return s.matchingService
}

// Catalog returns the catalog the service was built with (possibly nil)
func (s *ProductService) Catalog() *domain.Catalog {
	return s.catalog
}

// CatalogLoaded reports whether a catalog is available
func (s *ProductService) CatalogLoaded() bool {
	return s.catalog != nil
}

// ProductCount returns the number of products in the catalog
func (s *ProductService) ProductCount() int {
	return s.catalog.Len()
}

// Analyze looks a query up in the catalog.
// Flow: check cache -> match -> suggest alternatives -> cache -> return
func (s *ProductService) Analyze(ctx context.Context, query string) (*domain.Analysis, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, domain.ErrInvalidRequest
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cacheKey := analysisCacheKey(q)

	// Try cache first
	if cached := s.getFromCache(ctx, cacheKey); cached != nil {
		result := *cached
		result.Source = SourceCache
		return &result, nil
	}

	product := s.matchingService.Match(q, s.catalog)
	analysis := &domain.Analysis{
		Query:        q,
		Product:      product,
		Alternatives: s.matchingService.Suggest(q, s.catalog),
		Found:        !product.Synthetic,
		Source:       SourceCatalog,
	}

	s.setInCache(ctx, cacheKey, analysis)

	return analysis, nil
}

// Suggest returns the alternatives for a partially typed query
func (s *ProductService) Suggest(ctx context.Context, query string) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.matchingService.Suggest(query, s.catalog), nil
}

// Samples returns every catalog entry in catalog order
func (s *ProductService) Samples() []domain.CatalogEntry {
	return s.catalog.Entries()
}

// Lookup returns the product stored under a catalog key
func (s *ProductService) Lookup(ctx context.Context, key string) (domain.Product, error) {
	if strings.TrimSpace(key) == "" {
		return domain.Product{}, domain.ErrInvalidRequest
	}
	product, ok := s.catalog.Get(key)
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// SimilarKeys returns catalog keys resembling an unknown key
func (s *ProductService) SimilarKeys(key string) []string {
	return s.matchingService.SimilarKeys(key, s.catalog)
}

// analysisCacheKey keys on the trimmed query as typed, since a "not found"
// result echoes the query's original casing
func analysisCacheKey(query string) string {
	return "analysis:" + query
}

func (s *ProductService) getFromCache(ctx context.Context, key string) *domain.Analysis {
	if s.cache == nil {
		return nil
	}
	cached, err := s.cache.Get(ctx, key)
	if err != nil || cached == nil {
		return nil
	}
	return cached
}

func (s *ProductService) setInCache(ctx context.Context, key string, analysis *domain.Analysis) {
	if s.cache == nil {
		return
	}
	stored := *analysis
	stored.CachedAt = time.Now()
	if err := s.cache.Set(ctx, key, &stored, s.cacheTTL); err != nil {
		// Caching is best effort
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to cache analysis")
	}
}
