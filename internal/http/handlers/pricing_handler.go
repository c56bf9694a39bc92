// README: Pricing handlers: live comparison and full order quotes.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"fuelflow/internal/http/middleware"
	"fuelflow/internal/modules/address"
	"fuelflow/internal/modules/pricing"
	"fuelflow/internal/types"
)

type PricingHandler struct {
	cache     *pricing.Cache
	engine    *pricing.Engine
	fees      pricing.FeeSource
	addresses *address.Service
}

func NewPricingHandler(cache *pricing.Cache, engine *pricing.Engine, fees pricing.FeeSource, addresses *address.Service) *PricingHandler {
	return &PricingHandler{cache: cache, engine: engine, fees: fees, addresses: addresses}
}

// Comparison serves the cached market view for a zip and fuel type.
func (h *PricingHandler) Comparison(c *gin.Context) {
	zip := c.Query("zip")
	fuel := types.FuelType(c.DefaultQuery("fuelType", string(types.FuelRegular)))
	if zip == "" {
		writeError(c, http.StatusBadRequest, "missing zip")
		return
	}
	if !fuel.Valid() {
		writeError(c, http.StatusBadRequest, "unknown fuel type")
		return
	}

	pc, err := h.cache.Comparison(c.Request.Context(), zip, fuel)
	if err != nil {
		writeModuleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"zipCode":        pc.ZipCode,
		"fuelType":       pc.FuelType,
		"ourPrice":       pc.OurPrice,
		"marketAverage":  pc.MarketAverage,
		"nearbyStations": pc.NearbyStations,
		"savings":        pc.Savings,
		"updatedAt":      pc.CreatedAt,
	})
}

type quoteReq struct {
	ZipCode   string  `json:"zipCode"`
	FuelType  string  `json:"fuelType"`
	Quantity  float64 `json:"quantity"`
	AddressID string  `json:"addressId"`
}

// Quote prices a prospective order: savings from the comparison cache
// plus the full cost breakdown.
func (h *PricingHandler) Quote(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	fuel := types.FuelType(req.FuelType)
	if !fuel.Valid() {
		writeError(c, http.StatusBadRequest, "unknown fuel type")
		return
	}
	// Bounds-check before touching the cache so a doomed request never
	// triggers a market fetch.
	if req.Quantity < pricing.MinOrderQuantity || req.Quantity > pricing.MaxOrderQuantity {
		writeModuleError(c, pricing.ErrQuantityOutOfRange)
		return
	}

	ctx := c.Request.Context()
	zip, destination, err := h.resolveDestination(ctx, middleware.CallerUID(c), req)
	if err != nil {
		writeModuleError(c, err)
		return
	}
	if zip == "" {
		writeError(c, http.StatusBadRequest, "missing zip")
		return
	}

	quote, err := h.cache.GetPricing(ctx, zip, fuel, req.Quantity)
	if err != nil {
		writeModuleError(c, err)
		return
	}
	// Without a saved address there is no destination to price the
	// trip against, so the base fee applies.
	fee := pricing.DefaultDeliveryFee
	if req.AddressID != "" {
		fee, err = h.fees.FeeFor(ctx, destination)
		if err != nil {
			writeModuleError(c, err)
			return
		}
	}
	breakdown, err := h.engine.Quote(quote.OurPrice, req.Quantity, fee)
	if err != nil {
		writeModuleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pricePerGallon": quote.OurPrice,
		"marketAverage":  quote.MarketAverage,
		"subtotal":       breakdown.Subtotal,
		"deliveryFee":    breakdown.DeliveryFee,
		"tax":            breakdown.Tax,
		"total":          breakdown.Total,
		"savings": gin.H{
			"perGallon":  quote.PerGallon,
			"percentage": quote.Percentage,
			"total":      quote.TotalSavings,
		},
		"nearbyStations": quote.NearbyStations,
	})
}

// resolveDestination prefers the saved address; its zip overrides the
// request's so the quote matches what an order for it would cost.
func (h *PricingHandler) resolveDestination(ctx context.Context, uid string, req quoteReq) (string, types.Coordinate, error) {
	if req.AddressID == "" {
		return req.ZipCode, types.Coordinate{}, nil
	}
	addr, err := h.addresses.Get(ctx, types.ID(req.AddressID))
	if err != nil {
		return "", types.Coordinate{}, err
	}
	if string(addr.UserID) != uid {
		return "", types.Coordinate{}, address.ErrNotFound
	}
	return addr.ZipCode, addr.Coordinate, nil
}
