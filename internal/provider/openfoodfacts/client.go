// Package openfoodfacts reads per-100 g nutrition facts from the Open Food
// Facts product database.
package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://world.openfoodfacts.org"
	userAgent      = "healthy-cli/1.0 (+https://github.com/saadjs/healthy-cli)"
	kjPerKcal      = 4.184
)

// Product is one food with its densities per 100 g.
type Product struct {
	Code           string
	Name           string
	Brand          string
	Category       string
	KcalPer100g    float64
	ProteinPer100g float64
	CarbsPer100g   float64
	FatPer100g     float64
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func (c *Client) LookupBarcode(ctx context.Context, barcode string) (Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return Product{}, fmt.Errorf("barcode is required")
	}
	var parsed offResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/api/v2/product/%s.json", c.base(), url.PathEscape(barcode)), &parsed); err != nil {
		return Product{}, err
	}
	if parsed.Status != 1 || strings.TrimSpace(parsed.Product.ProductName) == "" {
		return Product{}, fmt.Errorf("no openfoodfacts product found for barcode %q", barcode)
	}
	p := toProduct(parsed.Product)
	if p.Code == "" {
		p.Code = barcode
	}
	return p, nil
}

func (c *Client) Search(ctx context.Context, query string, limit int) ([]Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	if limit <= 0 {
		limit = 10
	}
	u := fmt.Sprintf("%s/cgi/search.pl?search_terms=%s&search_simple=1&action=process&json=1&page_size=%d",
		c.base(), url.QueryEscape(query), limit)
	var parsed offSearchResponse
	if err := c.getJSON(ctx, u, &parsed); err != nil {
		return nil, err
	}
	out := make([]Product, 0, len(parsed.Products))
	for _, p := range parsed.Products {
		if strings.TrimSpace(p.ProductName) == "" {
			continue
		}
		out = append(out, toProduct(p))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no openfoodfacts product found for query %q", query)
	}
	return out, nil
}

func (c *Client) base() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		return defaultBaseURL
	}
	return base
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create openfoodfacts request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute openfoodfacts request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read openfoodfacts response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("openfoodfacts request failed with status %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode openfoodfacts response: %w", err)
	}
	return nil
}

func toProduct(p offProduct) Product {
	code := strings.TrimSpace(p.Code)
	if code == "" {
		code = strings.TrimSpace(p.ID)
	}
	return Product{
		Code:           code,
		Name:           strings.TrimSpace(p.ProductName),
		Brand:          strings.TrimSpace(p.Brands),
		Category:       firstCategory(p.Categories),
		KcalPer100g:    kcalPer100g(p.Nutriments),
		ProteinPer100g: per100g(p.Nutriments, "proteins"),
		CarbsPer100g:   per100g(p.Nutriments, "carbohydrates"),
		FatPer100g:     per100g(p.Nutriments, "fat"),
	}
}

// kcalPer100g falls back to the kJ energy value when no kcal value is
// published.
func kcalPer100g(n map[string]any) float64 {
	if v, ok := parseFloatAny(n["energy-kcal_100g"]); ok {
		return v
	}
	if v, ok := parseFloatAny(n["energy_100g"]); ok {
		return v / kjPerKcal
	}
	return 0
}

func per100g(n map[string]any, base string) float64 {
	v, _ := parseFloatAny(n[base+"_100g"])
	return v
}

func firstCategory(raw string) string {
	for _, part := range strings.Split(raw, ",") {
		if c := strings.ToLower(strings.TrimSpace(part)); c != "" {
			return c
		}
	}
	return ""
}

func parseFloatAny(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

type offResponse struct {
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

type offProduct struct {
	ID          string         `json:"_id"`
	Code        string         `json:"code"`
	ProductName string         `json:"product_name"`
	Brands      string         `json:"brands"`
	Categories  string         `json:"categories"`
	Nutriments  map[string]any `json:"nutriments"`
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}
