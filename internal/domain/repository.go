package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// BarcodeClient defines the interface for the external barcode lookup API
// (Open Food Facts). Implementations return raw fields in the same vocabulary
// as manual entry.
type BarcodeClient interface {
	FetchProduct(ctx context.Context, barcode string) (*AnalyzeRequest, error)
}

// ProductRepository defines the interface for the analysis history store.
type ProductRepository interface {
	Save(ctx context.Context, record *ProductRecord) error
	GetByBarcode(ctx context.Context, barcode string) (*ProductRecord, error)
	Search(ctx context.Context, query string, limit int) ([]ProductSummary, error)
	Recent(ctx context.Context, limit int) ([]ProductSummary, error)
}
