// README: Tracking store backed by Redis GEO and Postgres snapshots.
package tracking

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"fuelflow/internal/types"
)

const courierGeoKey = "tracking:couriers"

type Store struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func NewStore(db *pgxpool.Pool, redis *redis.Client) *Store {
	return &Store{db: db, redis: redis}
}

// SetPosition upserts the courier in the GEO set. A second write for
// the same courier replaces the first.
func (s *Store) SetPosition(ctx context.Context, id types.ID, c types.Coordinate) error {
	return s.redis.GeoAdd(ctx, courierGeoKey, &redis.GeoLocation{
		Name:      string(id),
		Longitude: c.Longitude,
		Latitude:  c.Latitude,
	}).Err()
}

func (s *Store) RemoveCourier(ctx context.Context, id types.ID) error {
	return s.redis.ZRem(ctx, courierGeoKey, string(id)).Err()
}

// NearbyCouriers returns courier IDs within radiusMiles of the point,
// closest first.
func (s *Store) NearbyCouriers(ctx context.Context, p types.Coordinate, radiusMiles float64) ([]types.ID, error) {
	results, err := s.redis.GeoSearch(ctx, courierGeoKey, &redis.GeoSearchQuery{
		Longitude:  p.Longitude,
		Latitude:   p.Latitude,
		Radius:     radiusMiles,
		RadiusUnit: "mi",
		Sort:       "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]types.ID, len(results))
	for i, r := range results {
		ids[i] = types.ID(r)
	}
	return ids, nil
}

func (s *Store) AppendSnapshot(ctx context.Context, snap Snapshot) error {
	var orderID *string
	if snap.OrderID != nil {
		v := string(*snap.OrderID)
		orderID = &v
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO courier_snapshots (courier_id, order_id, lat, lng, recorded_at)
		VALUES ($1, $2, $3, $4, $5)`,
		string(snap.CourierID), orderID,
		snap.Coordinate.Latitude, snap.Coordinate.Longitude,
		snap.RecordedAt,
	)
	return err
}
