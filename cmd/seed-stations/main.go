// README: Loads gas station price data from a JSON file into Postgres.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"fuelflow/internal/config"
	"fuelflow/internal/infra"
	"fuelflow/internal/modules/pricing"
	"fuelflow/internal/types"
)

type stationRecord struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Brand        string  `json:"brand"`
	ZipCode      string  `json:"zipCode"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RegularPrice float64 `json:"regularPrice"`
	PremiumPrice float64 `json:"premiumPrice"`
	DieselPrice  float64 `json:"dieselPrice"`
}

func main() {
	path := flag.String("file", "stations.json", "path to the station price file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	raw, err := os.ReadFile(*path)
	if err != nil {
		log.Fatal(err)
	}
	var records []stationRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Fatalf("parse %s: %v", *path, err)
	}

	ctx := context.Background()
	db, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	store := pricing.NewStore(db)
	for _, r := range records {
		err := store.UpsertStation(ctx, pricing.Station{
			ID:      types.ID(r.ID),
			Name:    r.Name,
			Brand:   r.Brand,
			ZipCode: r.ZipCode,
			Coordinate: types.Coordinate{
				Latitude:  r.Latitude,
				Longitude: r.Longitude,
			},
			RegularPrice: r.RegularPrice,
			PremiumPrice: r.PremiumPrice,
			DieselPrice:  r.DieselPrice,
		})
		if err != nil {
			log.Fatalf("upsert %s: %v", r.ID, err)
		}
	}
	log.Printf("seeded %d stations", len(records))
}
