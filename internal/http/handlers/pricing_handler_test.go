// README: Tests for the quote handler's request validation.
package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fuelflow/internal/modules/pricing"
	"fuelflow/internal/types"
)

// countingSource records how many market fetches the handler triggers.
type countingSource struct {
	mu      sync.Mutex
	fetches int
}

func (s *countingSource) FetchMarketPrices(_ context.Context, _ string, _ types.FuelType) (pricing.MarketSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetches++
	return pricing.MarketSnapshot{OurPrice: 3.50, MarketAverage: 4.00}, nil
}

func (s *countingSource) fetchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

// nilStore never has a cached row, so every served quote costs a fetch.
type nilStore struct{}

func (nilStore) Latest(context.Context, string, types.FuelType) (*pricing.PriceComparison, error) {
	return nil, pricing.ErrNotFound
}

func (nilStore) Insert(context.Context, *pricing.PriceComparison) error { return nil }

type flatFee struct{}

func (flatFee) FeeFor(context.Context, types.Coordinate) (float64, error) {
	return pricing.DefaultDeliveryFee, nil
}

func newQuoteRouter(source pricing.PriceSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cache := pricing.NewCache(nilStore{}, source, pricing.FreshnessWindow, zap.NewNop())
	h := NewPricingHandler(cache, pricing.NewEngine(pricing.DefaultTaxRate), flatFee{}, nil)
	r := gin.New()
	r.POST("/quote", h.Quote)
	return r
}

func postQuote(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestQuote_RejectsOutOfRangeQuantityBeforeFetching(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"below minimum", `{"zipCode":"10001","fuelType":"regular","quantity":4}`},
		{"above maximum", `{"zipCode":"10001","fuelType":"regular","quantity":51}`},
		{"zero", `{"zipCode":"10001","fuelType":"regular","quantity":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &countingSource{}
			r := newQuoteRouter(source)
			w := postQuote(r, tt.body)
			if w.Code != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want 422", w.Code)
			}
			if source.fetchCount() != 0 {
				t.Errorf("fetches = %d, want 0 for a rejected quantity", source.fetchCount())
			}
		})
	}
}

func TestQuote_ValidQuantityFetches(t *testing.T) {
	source := &countingSource{}
	r := newQuoteRouter(source)
	w := postQuote(r, `{"zipCode":"10001","fuelType":"regular","quantity":20}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if source.fetchCount() != 1 {
		t.Errorf("fetches = %d, want 1", source.fetchCount())
	}
	body := w.Body.String()
	if !strings.Contains(body, `"total":80.99`) {
		t.Errorf("body = %s, want total 80.99", body)
	}
}
