package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/nutrilens/backend/internal/domain"
)

// offResponse is the Open Food Facts product endpoint envelope. Status is 1
// when the barcode is known.
type offResponse struct {
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

// offProduct is the subset of an Open Food Facts record we consume.
// Nutriments values arrive as numbers or strings depending on the product, so
// they stay untyped until extraction.
type offProduct struct {
	ProductName     string                 `json:"product_name"`
	Brands          string                 `json:"brands"`
	IngredientsText string                 `json:"ingredients_text"`
	ServingSize     string                 `json:"serving_size"`
	Nutriments      map[string]interface{} `json:"nutriments"`
}

// Client handles communication with the Open Food Facts product API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates a new Open Food Facts client. The API needs no key but
// asks integrators to stay under roughly 100 product requests per minute.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(1.5), 10),
		logger:      logger,
	}
}

// exponentialBackoff returns the wait before the given retry attempt.
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// FetchProduct looks up a barcode and maps the record into the raw-field
// vocabulary shared with manual entry. Returns domain.ErrProductNotFound when
// Open Food Facts does not know the barcode.
func (c *Client) FetchProduct(ctx context.Context, barcode string) (*domain.AnalyzeRequest, error) {
	if barcode == "" {
		return nil, domain.ErrInvalidRequest
	}

	reqURL := fmt.Sprintf("%s/api/v0/product/%s.json", c.baseURL, barcode)

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		body, status, err := c.doRequest(ctx, reqURL)
		if err != nil {
			c.logger.Warn("barcode lookup request failed",
				zap.String("barcode", barcode),
				zap.Int("attempt", attempt),
				zap.Error(err))
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		if status == http.StatusNotFound {
			return nil, domain.ErrProductNotFound
		}
		if status != http.StatusOK {
			c.logger.Warn("barcode lookup non-OK status",
				zap.String("barcode", barcode),
				zap.Int("attempt", attempt),
				zap.Int("status", status))
			lastErr = fmt.Errorf("%w: status %d", domain.ErrLookupAPIFailure, status)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		var resp offResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		if resp.Status != 1 {
			c.logger.Debug("barcode unknown to Open Food Facts",
				zap.String("barcode", barcode))
			return nil, domain.ErrProductNotFound
		}

		c.logger.Debug("barcode resolved",
			zap.String("barcode", barcode),
			zap.String("product", resp.Product.ProductName))

		return MapToAnalyzeRequest(&resp.Product, barcode), nil
	}

	return nil, lastErr
}

// doRequest executes an HTTP GET and returns the body and status code.
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "NutriLens/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrLookupAPIFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	return body, resp.StatusCode, nil
}
