package openfoodfacts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrilens/backend/internal/domain"
)

func TestFetchProduct_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v0/product/737628064502.json", r.URL.Path)
		assert.Contains(t, r.Header.Get("User-Agent"), "NutriLens")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": 1,
			"product": {
				"product_name": "Rice Noodles",
				"brands": "Thai Kitchen",
				"ingredients_text": "rice flour, water",
				"serving_size": "56 g",
				"nutriments": {
					"energy-kcal_100g": 357,
					"sodium_100g": 0.68,
					"proteins_100g": "7.1"
				}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	req, err := client.FetchProduct(context.Background(), "737628064502")
	require.NoError(t, err)

	assert.Equal(t, "Rice Noodles", req.Name)
	assert.Equal(t, "Thai Kitchen", req.Brand)
	assert.Equal(t, "737628064502", req.Barcode)
	assert.Equal(t, float64(56), req.ServingSizeG)
	assert.Equal(t, "rice flour, water", req.Ingredients)
	assert.Equal(t, "357kcal", req.Nutrients["calories"])
	assert.Equal(t, "7.1g", req.Nutrients["protein"])
}

func TestFetchProduct_UnknownBarcode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": 0, "product": {}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.FetchProduct(context.Background(), "000000000000")
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))
}

func TestFetchProduct_NotFoundStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.FetchProduct(context.Background(), "111111111111")
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))
}

func TestFetchProduct_RetriesOnServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"status": 1, "product": {"product_name": "Eventually", "nutriments": {}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	req, err := client.FetchProduct(context.Background(), "222222222222")
	require.NoError(t, err)
	assert.Equal(t, "Eventually", req.Name)
	assert.Equal(t, 3, attempts)
}

func TestFetchProduct_ExhaustsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.FetchProduct(context.Background(), "333333333333")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLookupAPIFailure))
}

func TestFetchProduct_EmptyBarcode(t *testing.T) {
	client := NewClient("http://unused", nil)
	_, err := client.FetchProduct(context.Background(), "")
	assert.True(t, errors.Is(err, domain.ErrInvalidRequest))
}

func TestExponentialBackoff(t *testing.T) {
	assert.Equal(t, 500*time.Millisecond, exponentialBackoff(1))
	assert.Equal(t, 1000*time.Millisecond, exponentialBackoff(2))
	assert.Equal(t, 2000*time.Millisecond, exponentialBackoff(3))
}
