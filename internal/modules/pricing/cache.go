// README: Staleness-aware price comparison cache with per-key fetch collapsing.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"fuelflow/internal/types"
)

// FreshnessWindow is the maximum age of a comparison before the next
// access must refetch market prices.
const FreshnessWindow = 4 * time.Hour

// ErrPricingUnavailable means no fresh comparison could be obtained and
// the caller must not proceed to checkout. The fetch failure is wrapped.
var ErrPricingUnavailable = errors.New("pricing unavailable")

// PriceSource fetches current market prices for a zip code and fuel type.
type PriceSource interface {
	FetchMarketPrices(ctx context.Context, zipCode string, fuel types.FuelType) (MarketSnapshot, error)
}

// ComparisonStore persists price comparisons.
type ComparisonStore interface {
	Latest(ctx context.Context, zipCode string, fuel types.FuelType) (*PriceComparison, error)
	Insert(ctx context.Context, pc *PriceComparison) error
}

// Cache serves fresh-enough pricing for a (zipCode, fuelType) key while
// minimizing remote fetches. Concurrent callers for the same key share a
// single in-flight fetch.
type Cache struct {
	store  ComparisonStore
	source PriceSource
	window time.Duration
	group  singleflight.Group
	now    func() time.Time
	log    *zap.Logger
}

func NewCache(store ComparisonStore, source PriceSource, window time.Duration, log *zap.Logger) *Cache {
	if window <= 0 {
		window = FreshnessWindow
	}
	return &Cache{
		store:  store,
		source: source,
		window: window,
		now:    time.Now,
		log:    log,
	}
}

// GetPricing returns the current quote for the key, refetching market
// prices when the stored comparison is missing or stale.
//
// A failed refetch fails closed even when a stale row exists: serving
// hours-old fuel prices risks quoting a price we can no longer honor.
// The stale row is kept so the next call retries the fetch.
func (c *Cache) GetPricing(ctx context.Context, zipCode string, fuel types.FuelType, quantity float64) (*Quote, error) {
	comparison, err := c.Comparison(ctx, zipCode, fuel)
	if err != nil {
		return nil, err
	}

	return &Quote{
		OurPrice:       comparison.OurPrice,
		MarketAverage:  comparison.MarketAverage,
		NearbyStations: comparison.NearbyStations,
		PerGallon:      comparison.Savings.PerGallon,
		Percentage:     comparison.Savings.Percentage,
		TotalSavings:   comparison.Savings.PerGallon * quantity,
	}, nil
}

// Comparison returns the fresh-enough comparison row for the key,
// refetching when missing or stale.
func (c *Cache) Comparison(ctx context.Context, zipCode string, fuel types.FuelType) (*PriceComparison, error) {
	comparison, err := c.store.Latest(ctx, zipCode, fuel)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: comparison lookup: %v", ErrPricingUnavailable, err)
	}

	if comparison == nil || c.stale(comparison) {
		refreshed, err := c.refresh(ctx, zipCode, fuel)
		if err != nil {
			c.log.Warn("price refetch failed",
				zap.String("zip", zipCode),
				zap.String("fuel", string(fuel)),
				zap.Bool("stale_row_present", comparison != nil),
				zap.Error(err))
			return nil, fmt.Errorf("%w: %v", ErrPricingUnavailable, err)
		}
		comparison = refreshed
	}
	return comparison, nil
}

// refresh fetches market prices and persists a new comparison row,
// collapsing concurrent fetches for the same key into one.
func (c *Cache) refresh(ctx context.Context, zipCode string, fuel types.FuelType) (*PriceComparison, error) {
	key := zipCode + ":" + string(fuel)
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		snapshot, err := c.source.FetchMarketPrices(ctx, zipCode, fuel)
		if err != nil {
			return nil, err
		}
		pc := buildComparison(zipCode, fuel, snapshot, c.now())
		if err := c.store.Insert(ctx, pc); err != nil {
			return nil, fmt.Errorf("persist comparison: %w", err)
		}
		return pc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*PriceComparison), nil
}

func (c *Cache) stale(pc *PriceComparison) bool {
	return c.now().Sub(pc.CreatedAt) > c.window
}

// buildComparison derives savings from a market snapshot. The per-gallon
// amount is floored at zero, but the percentage stays signed: a negative
// percentage tells the client we are above market. A zero market average
// yields a zero percentage.
func buildComparison(zipCode string, fuel types.FuelType, snap MarketSnapshot, at time.Time) *PriceComparison {
	perGallon := math.Max(0, snap.MarketAverage-snap.OurPrice)
	percentage := 0.0
	if snap.MarketAverage > 0 {
		percentage = (snap.MarketAverage - snap.OurPrice) / snap.MarketAverage * 100
	}
	return &PriceComparison{
		ID:             types.ID(uuid.NewString()),
		ZipCode:        zipCode,
		FuelType:       fuel,
		OurPrice:       snap.OurPrice,
		MarketAverage:  snap.MarketAverage,
		NearbyStations: snap.NearbyStations,
		Savings:        Savings{PerGallon: perGallon, Percentage: percentage},
		CreatedAt:      at,
	}
}
