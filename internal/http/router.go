// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fuelflow/internal/http/handlers"
	"fuelflow/internal/http/middleware"
	"fuelflow/internal/infra"
	"fuelflow/internal/modules/address"
	"fuelflow/internal/modules/order"
	"fuelflow/internal/modules/pricing"
	"fuelflow/internal/modules/route"
	"fuelflow/internal/modules/tracking"
	"fuelflow/internal/modules/user"
	"fuelflow/internal/payment"
)

type RouterDeps struct {
	Log      *zap.Logger
	Verifier infra.TokenVerifier

	Pricing   *pricing.Cache
	Engine    *pricing.Engine
	Fees      pricing.FeeSource
	Orders    *order.Service
	Routes    *route.Estimator
	Addresses *address.Service
	Tracking  *tracking.Service
	Users     *user.Service
	Payments  payment.Processor
}

func NewRouter(deps RouterDeps) http.Handler {
	r := gin.New()
	r.Use(middleware.Recovery(deps.Log), middleware.Logging(deps.Log))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api", middleware.Auth(deps.Verifier))

	pricingHandler := handlers.NewPricingHandler(deps.Pricing, deps.Engine, deps.Fees, deps.Addresses)
	api.GET("/pricing/comparison", pricingHandler.Comparison)
	api.POST("/pricing/quote", pricingHandler.Quote)

	orderHandler := handlers.NewOrderHandler(deps.Orders)
	api.POST("/orders", orderHandler.Place)
	api.GET("/orders", orderHandler.List)
	api.GET("/orders/:id", orderHandler.Get)
	api.POST("/orders/:id/cancel", orderHandler.Cancel)
	api.POST("/orders/:id/status", orderHandler.Transition)

	routeHandler := handlers.NewRouteHandler(deps.Routes)
	api.GET("/routes", routeHandler.Get)

	addressHandler := handlers.NewAddressHandler(deps.Addresses)
	api.POST("/addresses", addressHandler.Create)
	api.GET("/addresses", addressHandler.List)
	api.DELETE("/addresses/:id", addressHandler.Delete)
	api.POST("/addresses/:id/default", addressHandler.SetDefault)

	trackingHandler := handlers.NewTrackingHandler(deps.Tracking)
	api.PUT("/couriers/:id/location", trackingHandler.UpdateLocation)
	api.GET("/orders/:id/tracking", trackingHandler.Stream)

	userHandler := handlers.NewUserHandler(deps.Users)
	api.GET("/me", userHandler.Me)
	api.POST("/me/vehicles", userHandler.AddVehicle)
	api.GET("/me/vehicles", userHandler.ListVehicles)
	api.DELETE("/me/vehicles/:id", userHandler.DeleteVehicle)

	paymentHandler := handlers.NewPaymentHandler(deps.Orders, deps.Payments)
	api.POST("/payments/intent", paymentHandler.CreateIntent)

	return r
}
