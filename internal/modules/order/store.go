// README: Order store backed by PostgreSQL.
package order

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fuelflow/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, o *Order) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO orders (
			id, user_id, status, status_version, fuel_type, quantity,
			street, city, state, zip_code, lat, lng,
			vehicle_make, vehicle_model, vehicle_year, vehicle_fuel_type,
			price_per_gallon, subtotal, delivery_fee, tax, total_amount, total_savings,
			scheduled_at, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22,
			$23, $24
		)`,
		string(o.ID),
		string(o.UserID),
		string(o.Status),
		o.StatusVersion,
		string(o.FuelType),
		o.Quantity,
		o.Address.Street, o.Address.City, o.Address.State, o.Address.ZipCode,
		o.Address.Coordinate.Latitude, o.Address.Coordinate.Longitude,
		o.Vehicle.Make, o.Vehicle.Model, o.Vehicle.Year, string(o.Vehicle.FuelType),
		o.PricePerGallon, o.Subtotal, o.DeliveryFee, o.Tax, o.TotalAmount, o.TotalSavings,
		o.ScheduledAt,
		o.CreatedAt,
	)
	return err
}

const orderColumns = `
	id, user_id, status, status_version, fuel_type, quantity,
	street, city, state, zip_code, lat, lng,
	vehicle_make, vehicle_model, vehicle_year, vehicle_fuel_type,
	price_per_gallon, subtotal, delivery_fee, tax, total_amount, total_savings,
	scheduled_at, created_at, confirmed_at, en_route_at, delivered_at, cancelled_at, cancel_reason`

func (s *Store) Get(ctx context.Context, id types.ID) (*Order, error) {
	row := s.db.QueryRow(ctx, `SELECT`+orderColumns+` FROM orders WHERE id = $1`, string(id))
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

func (s *Store) ListByUser(ctx context.Context, userID types.ID) ([]*Order, error) {
	rows, err := s.db.Query(ctx, `SELECT`+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, string(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpdateStatus performs the optimistic-locked transition. It succeeds
// only when (status, status_version) still match what the caller read;
// a false return means a concurrent transition won.
func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int, cancelReason *string) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE orders
		SET status = $1,
			status_version = status_version + 1,
			cancel_reason = COALESCE($2, cancel_reason),
			confirmed_at = CASE WHEN $1 = 'confirmed' THEN NOW() ELSE confirmed_at END,
			en_route_at = CASE WHEN $1 = 'en_route' THEN NOW() ELSE en_route_at END,
			delivered_at = CASE WHEN $1 = 'delivered' THEN NOW() ELSE delivered_at END,
			cancelled_at = CASE WHEN $1 = 'cancelled' THEN NOW() ELSE cancelled_at END
		WHERE id = $3 AND status = $4 AND status_version = $5`,
		string(to),
		cancelReason,
		string(id),
		string(from),
		version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) AppendEvent(ctx context.Context, e *Event) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO order_state_events (
			order_id, from_status, to_status, actor_type, actor_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)`,
		string(e.OrderID),
		string(e.FromStatus),
		string(e.ToStatus),
		e.ActorType,
		toStringPtr(e.ActorID),
		e.CreatedAt,
	)
	return err
}

func (s *Store) ListEvents(ctx context.Context, orderID types.ID) ([]Event, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, order_id, from_status, to_status, actor_type, actor_id, created_at
		FROM order_state_events
		WHERE order_id = $1
		ORDER BY id`, string(orderID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var actorID sql.NullString
		if err := rows.Scan(&e.ID, &e.OrderID, &e.FromStatus, &e.ToStatus, &e.ActorType, &actorID, &e.CreatedAt); err != nil {
			return nil, err
		}
		if actorID.Valid {
			id := types.ID(actorID.String)
			e.ActorID = &id
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var vehicleFuel string
	var scheduledAt, confirmedAt, enRouteAt, deliveredAt, cancelledAt sql.NullTime
	var cancelReason sql.NullString

	err := row.Scan(
		&o.ID, &o.UserID, &o.Status, &o.StatusVersion, &o.FuelType, &o.Quantity,
		&o.Address.Street, &o.Address.City, &o.Address.State, &o.Address.ZipCode,
		&o.Address.Coordinate.Latitude, &o.Address.Coordinate.Longitude,
		&o.Vehicle.Make, &o.Vehicle.Model, &o.Vehicle.Year, &vehicleFuel,
		&o.PricePerGallon, &o.Subtotal, &o.DeliveryFee, &o.Tax, &o.TotalAmount, &o.TotalSavings,
		&scheduledAt, &o.CreatedAt, &confirmedAt, &enRouteAt, &deliveredAt, &cancelledAt, &cancelReason,
	)
	if err != nil {
		return nil, err
	}

	o.Vehicle.FuelType = types.FuelType(vehicleFuel)
	o.ScheduledAt = toTimePtr(scheduledAt)
	o.ConfirmedAt = toTimePtr(confirmedAt)
	o.EnRouteAt = toTimePtr(enRouteAt)
	o.DeliveredAt = toTimePtr(deliveredAt)
	o.CancelledAt = toTimePtr(cancelledAt)
	if cancelReason.Valid {
		o.CancelReason = &cancelReason.String
	}
	return &o, nil
}

func toStringPtr(v *types.ID) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func toTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
