// README: Comparison and station stores backed by PostgreSQL.
package pricing

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fuelflow/internal/types"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Latest returns the newest comparison row for the key regardless of
// age; staleness is the cache's call, not the store's.
func (s *Store) Latest(ctx context.Context, zipCode string, fuel types.FuelType) (*PriceComparison, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, zip_code, fuel_type, our_price, market_average,
               nearby_stations, savings_per_gallon, savings_percentage, created_at
        FROM price_comparisons
        WHERE zip_code = $1 AND fuel_type = $2
        ORDER BY created_at DESC
        LIMIT 1`, zipCode, string(fuel),
	)

	var pc PriceComparison
	var stationsJSON []byte
	err := row.Scan(
		&pc.ID, &pc.ZipCode, &pc.FuelType, &pc.OurPrice, &pc.MarketAverage,
		&stationsJSON, &pc.Savings.PerGallon, &pc.Savings.Percentage, &pc.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(stationsJSON) > 0 {
		if err := json.Unmarshal(stationsJSON, &pc.NearbyStations); err != nil {
			return nil, err
		}
	}
	return &pc, nil
}

// Insert appends a new comparison row. Older rows for the same key stay
// in place; Latest supersedes them by created_at ordering.
func (s *Store) Insert(ctx context.Context, pc *PriceComparison) error {
	stationsJSON, err := json.Marshal(pc.NearbyStations)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `
        INSERT INTO price_comparisons (
            id, zip_code, fuel_type, our_price, market_average,
            nearby_stations, savings_per_gallon, savings_percentage, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		string(pc.ID),
		pc.ZipCode,
		string(pc.FuelType),
		pc.OurPrice,
		pc.MarketAverage,
		stationsJSON,
		pc.Savings.PerGallon,
		pc.Savings.Percentage,
		pc.CreatedAt,
	)
	return err
}

// ListByZip returns the tracked stations for a zip code.
func (s *Store) ListByZip(ctx context.Context, zipCode string) ([]Station, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, name, brand, zip_code, latitude, longitude,
               regular_price, premium_price, diesel_price, updated_at
        FROM gas_stations
        WHERE zip_code = $1 AND is_active`, zipCode,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []Station
	for rows.Next() {
		var st Station
		if err := rows.Scan(
			&st.ID, &st.Name, &st.Brand, &st.ZipCode,
			&st.Coordinate.Latitude, &st.Coordinate.Longitude,
			&st.RegularPrice, &st.PremiumPrice, &st.DieselPrice, &st.UpdatedAt,
		); err != nil {
			return nil, err
		}
		stations = append(stations, st)
	}
	return stations, rows.Err()
}

// UpsertStation creates or refreshes a station row; used by the seeder.
func (s *Store) UpsertStation(ctx context.Context, st Station) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO gas_stations (
            id, name, brand, zip_code, latitude, longitude,
            regular_price, premium_price, diesel_price, is_active, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE, NOW())
        ON CONFLICT (id) DO UPDATE SET
            regular_price = EXCLUDED.regular_price,
            premium_price = EXCLUDED.premium_price,
            diesel_price = EXCLUDED.diesel_price,
            updated_at = NOW()`,
		string(st.ID),
		st.Name,
		st.Brand,
		st.ZipCode,
		st.Coordinate.Latitude,
		st.Coordinate.Longitude,
		st.RegularPrice,
		st.PremiumPrice,
		st.DieselPrice,
	)
	return err
}
