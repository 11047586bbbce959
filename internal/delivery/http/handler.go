package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ecomate/backend/internal/domain"
	"github.com/ecomate/backend/internal/presenter"
	"github.com/ecomate/backend/internal/usecase"
	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "ecomate-backend"
	serviceVersion = "1.0.0"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	products *usecase.ProductService
}

// NewHandler creates a new HTTP handler. products may be nil, in which case
// the product endpoints answer 501.
func NewHandler(products *usecase.ProductService) *Handler {
	return &Handler{products: products}
}

// SearchResponse is the body of a successful search
type SearchResponse struct {
	Query        string                    `json:"query"`
	Card         presenter.Card            `json:"card"`
	Alternatives []presenter.SuggestionRow `json:"alternatives"`
	Found        bool                      `json:"found"`
	Source       string                    `json:"source"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	loaded, count := false, 0
	if h.products != nil {
		loaded, count = h.products.CatalogLoaded(), h.products.ProductCount()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"service":       serviceName,
		"version":       serviceVersion,
		"catalogLoaded": loaded,
		"products":      count,
	})
}

// SearchProducts handles product search requests
func (h *Handler) SearchProducts(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	var req domain.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must be JSON with a non-empty \"query\""})
		return
	}

	analysis, err := h.products.Analyze(c.Request.Context(), req.Query)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SearchResponse{
		Query:        analysis.Query,
		Card:         presenter.BuildCard(analysis.Product),
		Alternatives: presenter.BuildSuggestions(analysis.Alternatives),
		Found:        analysis.Found,
		Source:       analysis.Source,
	})
}

// SuggestProducts returns alternatives for a partially typed query
func (h *Handler) SuggestProducts(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	query := strings.TrimSpace(c.Query("q"))
	alternatives, err := h.products.Suggest(c.Request.Context(), query)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":        query,
		"alternatives": presenter.BuildSuggestions(alternatives),
	})
}

// ListProducts returns the sample products
func (h *Handler) ListProducts(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": presenter.BuildSamples(h.products.Samples()),
	})
}

// GetProduct returns the card for a catalog key
func (h *Handler) GetProduct(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	key := c.Param("key")
	product, err := h.products.Lookup(c.Request.Context(), key)
	if errors.Is(err, domain.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":      "Product not found",
			"didYouMean": h.products.SimilarKeys(key),
		})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, presenter.BuildCard(product))
}

func (h *Handler) configured(c *gin.Context) bool {
	if h.products == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Product service not configured"})
		return false
	}
	return true
}

// respondError maps domain errors to HTTP responses
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query must not be empty"})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
