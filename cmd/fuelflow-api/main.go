// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"fuelflow/internal/config"
	httptransport "fuelflow/internal/http"
	"fuelflow/internal/infra"
	"fuelflow/internal/maps"
	"fuelflow/internal/modules/address"
	"fuelflow/internal/modules/order"
	"fuelflow/internal/modules/pricing"
	"fuelflow/internal/modules/route"
	"fuelflow/internal/modules/tracking"
	"fuelflow/internal/modules/user"
	"fuelflow/internal/payment"
	"fuelflow/internal/types"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := infra.NewLogger(os.Getenv("FUELFLOW_ENV") != "production")
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Firebase.ProjectID == "" {
		logger.Fatal("FUELFLOW_FIREBASE_PROJECTID is required")
	}
	verifier, err := infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
	if err != nil {
		logger.Fatal("firebase init", zap.Error(err))
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatal("db init", zap.Error(err))
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	directions, err := maps.NewDirectionsClient(cfg.Maps.APIKey)
	if err != nil {
		logger.Fatal("maps directions init", zap.Error(err))
	}
	geocoder, err := maps.NewGeocodingClient(cfg.Maps.APIKey)
	if err != nil {
		logger.Fatal("maps geocoding init", zap.Error(err))
	}

	depot := types.Coordinate{
		Latitude:  cfg.ServiceArea.CenterLat,
		Longitude: cfg.ServiceArea.CenterLng,
	}

	pricingStore := pricing.NewStore(dbPool)
	feed := pricing.NewStationFeed(pricingStore, geocoder, cfg.Pricing.Discount)
	cache := pricing.NewCache(pricingStore, feed, cfg.Pricing.FreshnessWindow, logger)
	engine := pricing.NewEngine(cfg.Pricing.TaxRate)
	fees := pricing.NewDistanceFee(depot, cfg.Pricing.BaseDeliveryFee, cfg.Pricing.BaseFeeMiles, cfg.Pricing.PerMileFee)

	validator := address.NewValidator(depot, cfg.ServiceArea.MaxRadiusMiles)
	addressSvc := address.NewService(address.NewStore(dbPool), geocoder, validator, logger)

	userSvc := user.NewService(user.NewStore(dbPool))

	orderSvc := order.NewService(
		order.NewStore(dbPool),
		cache,
		engine,
		fees,
		validator,
		addressSvc,
		vehicleDirectory{users: userSvc},
		logger,
	)

	routeSvc := route.NewEstimator(directions, logger)

	trackingSvc := tracking.NewService(
		tracking.NewStore(dbPool, redisClient),
		tracking.NewHub(),
		logger,
	)

	processor := payment.NewStripeProcessor(cfg.Stripe.SecretKey)

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Log:       logger,
		Verifier:  verifier,
		Pricing:   cache,
		Engine:    engine,
		Fees:      fees,
		Orders:    orderSvc,
		Routes:    routeSvc,
		Addresses: addressSvc,
		Tracking:  trackingSvc,
		Users:     userSvc,
		Payments:  processor,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server", zap.Error(err))
	}
}

// vehicleDirectory adapts the user service to the order module's
// snapshot lookup.
type vehicleDirectory struct {
	users *user.Service
}

func (d vehicleDirectory) Snapshot(ctx context.Context, userID, vehicleID types.ID) (order.VehicleSnapshot, error) {
	v, err := d.users.Vehicle(ctx, userID, vehicleID)
	if err != nil {
		return order.VehicleSnapshot{}, err
	}
	return order.VehicleSnapshot{
		Make:     v.Make,
		Model:    v.Model,
		Year:     v.Year,
		FuelType: v.FuelType,
	}, nil
}
