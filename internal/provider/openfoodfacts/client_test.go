package openfoodfacts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupBarcodeReadsPer100gValues(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/product/12345678.json", r.URL.Path)
		assert.Contains(t, r.Header.Get("User-Agent"), "healthy-cli")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "status": 1,
  "product": {
    "code": "12345678",
    "product_name": "Yogurt Cup",
    "brands": "Brand Co",
    "categories": "Dairies, Yogurts",
    "nutriments": {
      "energy-kcal_serving": 120,
      "energy-kcal_100g": 70.5,
      "proteins_100g": 5.9,
      "carbohydrates_100g": "8.8",
      "fat_100g": 1.2
    }
  }
}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	p, err := c.LookupBarcode(context.Background(), "12345678")
	require.NoError(t, err)
	assert.Equal(t, Product{
		Code:           "12345678",
		Name:           "Yogurt Cup",
		Brand:          "Brand Co",
		Category:       "dairies",
		KcalPer100g:    70.5,
		ProteinPer100g: 5.9,
		CarbsPer100g:   8.8,
		FatPer100g:     1.2,
	}, p)
}

func TestLookupBarcodeNotFound(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": 0}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	_, err := c.LookupBarcode(context.Background(), "000")
	assert.ErrorContains(t, err, "no openfoodfacts product")
}

func TestSearchConvertsKilojoulesAndSkipsUnnamed(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "rice cake", r.URL.Query().Get("search_terms"))
		assert.Equal(t, "5", r.URL.Query().Get("page_size"))
		_, _ = w.Write([]byte(`{"products": [
  {"code": "1", "product_name": "", "nutriments": {}},
  {"code": "2", "product_name": "Rice Cake", "nutriments": {"energy_100g": 1673.6}}
]}`))
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	items, err := c.Search(context.Background(), " rice cake ", 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].Code)
	assert.InDelta(t, 400, items[0].KcalPer100g, 1e-9)
}

func TestSearchStatusError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	c := &Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	_, err := c.Search(context.Background(), "oats", 0)
	assert.ErrorContains(t, err, "status 503")
}
