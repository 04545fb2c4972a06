package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nutrilens/backend/internal/domain"
)

const defaultServingSizeG = 100

// AnalysisServiceConfig holds configuration for the analysis service
type AnalysisServiceConfig struct {
	CacheTTL time.Duration
}

// AnalysisService runs the full pipeline: raw fields -> normalization ->
// scoring -> history persistence, plus barcode lookup with store-first,
// cache-second, Open Food Facts-last resolution.
type AnalysisService struct {
	store    domain.ProductRepository
	cache    domain.CacheRepository
	barcodes domain.BarcodeClient
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewAnalysisService creates a new analysis service with dependencies
func NewAnalysisService(
	store domain.ProductRepository,
	cache domain.CacheRepository,
	barcodes domain.BarcodeClient,
	config AnalysisServiceConfig,
	logger *zap.Logger,
) *AnalysisService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 720 * time.Hour // Default 30 days
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &AnalysisService{
		store:    store,
		cache:    cache,
		barcodes: barcodes,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Analyze normalizes the raw fields, scores the product and records the
// result in the history store keyed by content hash. Persistence failures are
// logged, not surfaced: the analysis itself is still valid.
func (s *AnalysisService) Analyze(ctx context.Context, req *domain.AnalyzeRequest) (*domain.ProductRecord, error) {
	if req == nil || req.Name == "" {
		return nil, domain.ErrInvalidRequest
	}

	servingSizeG := req.ServingSizeG
	if servingSizeG == 0 {
		servingSizeG = defaultServingSizeG
	}

	product := domain.NewProductData(req.Name, req.Brand, req.Barcode)
	product.ServingSizeG = servingSizeG
	product.Ingredients = NormalizeIngredientList(req.Ingredients)
	product.Nutrients = NormalizeNutrients(req.Nutrients, servingSizeG)
	product.Categories = append(product.Categories, req.Categories...)

	s.logger.Info("analyzing product",
		zap.String("name", product.Name),
		zap.Int("ingredients", len(product.Ingredients)),
		zap.Int("nutrients", len(product.Nutrients)))

	score := ScoreProduct(product)

	hash, err := contentHash(product)
	if err != nil {
		return nil, fmt.Errorf("hashing product: %w", err)
	}

	record := &domain.ProductRecord{
		DataHash:  hash,
		Product:   product,
		Score:     score,
		UpdatedAt: time.Now().UTC(),
	}

	if s.store != nil {
		if err := s.store.Save(ctx, record); err != nil {
			s.logger.Warn("failed to save analysis to history store",
				zap.String("name", product.Name),
				zap.Error(err))
		}
	}

	return record, nil
}

// LookupBarcode resolves a barcode to an analyzed product. Resolution order:
// history store, TTL cache, then the external barcode client; client hits are
// analyzed, persisted and cached before returning.
func (s *AnalysisService) LookupBarcode(ctx context.Context, barcode string) (*domain.ProductRecord, error) {
	if barcode == "" {
		return nil, domain.ErrInvalidRequest
	}

	if s.store != nil {
		record, err := s.store.GetByBarcode(ctx, barcode)
		if err == nil && record != nil {
			return record, nil
		}
	}

	cacheKey := "product:" + barcode
	if cached, err := s.getCachedRecord(ctx, cacheKey); err == nil && cached != nil {
		return cached, nil
	}

	if s.barcodes == nil {
		return nil, domain.ErrProductNotFound
	}

	req, err := s.barcodes.FetchProduct(ctx, barcode)
	if err != nil {
		return nil, err
	}
	req.Barcode = barcode

	record, err := s.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, record, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache lookup result",
				zap.String("barcode", barcode),
				zap.Error(err))
		}
	}

	return record, nil
}

// Search queries the analysis history by product name or brand.
func (s *AnalysisService) Search(ctx context.Context, query string, limit int) ([]domain.ProductSummary, error) {
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}
	if s.store == nil {
		return []domain.ProductSummary{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.Search(ctx, query, limit)
}

// Recent lists the most recently analyzed products.
func (s *AnalysisService) Recent(ctx context.Context, limit int) ([]domain.ProductSummary, error) {
	if s.store == nil {
		return []domain.ProductSummary{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.Recent(ctx, limit)
}

// getCachedRecord retrieves and re-decodes a record from the cache. The cache
// stores JSON-shaped values, so the round-trip through json recovers the
// concrete type.
func (s *AnalysisService) getCachedRecord(ctx context.Context, key string) (*domain.ProductRecord, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}

	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, domain.ErrCacheMiss
	}

	var record domain.ProductRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, domain.ErrCacheMiss
	}

	return &record, nil
}

// contentHash returns the deterministic key for a product: sha256 over its
// canonical JSON encoding. Struct field order makes the encoding stable.
func contentHash(product domain.ProductData) (string, error) {
	data, err := json.Marshal(product)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
