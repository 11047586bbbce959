package domain

import (
	"context"
	"time"
)

// ResultCache defines the interface for memoizing search analyses
type ResultCache interface {
	Get(ctx context.Context, key string) (*Analysis, error)
	Set(ctx context.Context, key string, value *Analysis, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CatalogSource loads a catalog from a location (file path or URL)
type CatalogSource interface {
	Load(ctx context.Context, location string) (*Catalog, error)
}
