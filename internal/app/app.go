// Package app wires configuration, the catalog and the delivery layers
// together for the binaries under cmd/.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/ecomate/backend/config"
	httpDelivery "github.com/ecomate/backend/internal/delivery/http"
	"github.com/ecomate/backend/internal/domain"
	"github.com/ecomate/backend/internal/infrastructure/cache"
	"github.com/ecomate/backend/internal/infrastructure/logging"
	"github.com/ecomate/backend/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// App is a configured EcoMate instance
type App struct {
	cfg      *config.Config
	catalog  *domain.Catalog
	cache    *cache.MemoryCache[*domain.Analysis]
	products *usecase.ProductService
	logger   zerolog.Logger
}

// New loads the catalog from source and builds the services around it.
// A catalog that fails to load is logged and the app runs degraded.
func New(ctx context.Context, cfg *config.Config, source domain.CatalogSource) *App {
	logger := logging.Logger("app")
	catalog := LoadCatalog(ctx, source, cfg.Catalog.Source)

	resultCache := cache.NewResultCache()
	products := usecase.NewProductService(catalog, resultCache, usecase.ProductServiceConfig{
		CacheTTL:           cfg.Cache.TTL,
		EnableDebugLogging: cfg.Log.Level == "debug",
	})

	return &App{
		cfg:      cfg,
		catalog:  catalog,
		cache:    resultCache,
		products: products,
		logger:   logger,
	}
}

// LoadCatalog makes one attempt to load the catalog, bounded only by ctx.
// On failure it logs a warning and returns nil; callers treat nil as
// "catalog not loaded".
func LoadCatalog(ctx context.Context, source domain.CatalogSource, location string) *domain.Catalog {
	logger := logging.Logger("app")

	catalog, err := source.Load(ctx, location)
	if err != nil {
		logger.Warn().Err(err).Str("source", location).Msg("product catalog unavailable, searches will find nothing")
		return nil
	}
	return catalog
}

// Products returns the product service
func (a *App) Products() *usecase.ProductService {
	return a.products
}

// NewSession creates an interactive search session rendering to renderer
func (a *App) NewSession(renderer usecase.Renderer) *usecase.SearchSession {
	return usecase.NewSearchSession(a.products.Matcher(), a.catalog, renderer, usecase.SearchSessionConfig{
		ResultDelay:   a.cfg.Search.ResultDelay,
		InputDebounce: a.cfg.Search.InputDebounce,
	})
}

// Router builds the HTTP router
func (a *App) Router() *gin.Engine {
	return httpDelivery.SetupRouter(a.cfg, httpDelivery.NewHandler(a.products))
}

// Serve listens on the configured port until ctx is canceled
func (a *App) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%s", a.cfg.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return a.ServeListener(ctx, ln)
}

// ServeListener serves the HTTP API on ln. When ctx is canceled the server
// drains in-flight requests for up to the shutdown timeout.
func (a *App) ServeListener(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      a.Router(),
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info().
			Str("addr", ln.Addr().String()).
			Str("environment", a.cfg.Server.Environment).
			Bool("catalogLoaded", a.products.CatalogLoaded()).
			Int("products", a.products.ProductCount()).
			Msg("server listening")

		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()

		a.logger.Info().Msg("shutting down server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Close releases background resources
func (a *App) Close() {
	a.cache.Close()
}
