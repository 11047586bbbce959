// Package catalog loads the static products document into a domain.Catalog.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/ecomate/backend/internal/domain"
	"github.com/ecomate/backend/internal/infrastructure/logging"
	"github.com/rs/zerolog"
)

const userAgent = "EcoMate/1.0"

// document is the top-level shape of products.json
type document struct {
	Products *domain.Catalog `json:"products"`
}

// Loader reads the products document from disk or over HTTP.
// It makes exactly one attempt per Load call.
type Loader struct {
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewLoader creates a loader. The HTTP client carries no timeout of its own;
// callers bound the fetch through the context.
func NewLoader() *Loader {
	return &Loader{
		httpClient: &http.Client{},
		logger:     logging.Logger("catalog"),
	}
}

// Load reads and parses the catalog at location. Locations starting with
// http:// or https:// are fetched, anything else is read as a file path.
func (l *Loader) Load(ctx context.Context, location string) (*domain.Catalog, error) {
	data, err := l.read(ctx, location)
	if err != nil {
		return nil, err
	}

	catalog, err := Parse(data)
	if err != nil {
		return nil, err
	}

	l.logger.Info().Str("source", location).Int("products", catalog.Len()).Msg("catalog loaded")
	return catalog, nil
}

func (l *Loader) read(ctx context.Context, location string) ([]byte, error) {
	if isRemote(location) {
		return l.fetch(ctx, location)
	}

	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	return data, nil
}

// fetch executes a single HTTP GET for the document
func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrCatalogUnavailable, err)
	}
	return body, nil
}

// Parse decodes a products document
func Parse(data []byte) (*domain.Catalog, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogMalformed, err)
	}
	if doc.Products == nil {
		return nil, fmt.Errorf("%w: missing \"products\" object", domain.ErrCatalogMalformed)
	}
	return doc.Products, nil
}

func isRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
