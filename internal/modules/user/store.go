// README: User and vehicle store backed by PostgreSQL.
package user

import (
	"context"
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

// UpsertUser creates the row on first login and refreshes profile
// fields afterwards. The ID is the auth provider's UID.
func (s *Store) UpsertUser(ctx context.Context, u *User) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO users (id, email, display_name, phone, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			email = COALESCE(NULLIF(EXCLUDED.email, ''), users.email),
			display_name = COALESCE(NULLIF(EXCLUDED.display_name, ''), users.display_name),
			phone = COALESCE(NULLIF(EXCLUDED.phone, ''), users.phone)`,
		string(u.ID), u.Email, u.DisplayName, u.Phone, u.CreatedAt,
	)
	return err
}

func (s *Store) GetUser(ctx context.Context, id types.ID) (*User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, email, display_name, phone, created_at
		FROM users WHERE id = $1`, string(id))

	var u User
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.Phone, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) AddVehicle(ctx context.Context, v *Vehicle) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO vehicles (id, user_id, make, model, year, fuel_type, tank_capacity, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		string(v.ID), string(v.UserID), v.Make, v.Model, v.Year,
		string(v.FuelType), v.TankCapacity, v.IsDefault, v.CreatedAt,
	)
	return err
}

func (s *Store) GetVehicle(ctx context.Context, id types.ID) (*Vehicle, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, make, model, year, fuel_type, tank_capacity, is_default, created_at
		FROM vehicles WHERE id = $1`, string(id))
	v, err := scanVehicle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return v, err
}

func (s *Store) ListVehicles(ctx context.Context, userID types.ID) ([]*Vehicle, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, make, model, year, fuel_type, tank_capacity, is_default, created_at
		FROM vehicles WHERE user_id = $1
		ORDER BY is_default DESC, created_at`, string(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// SetDefaultVehicle clears the flag on the user's other vehicles inside
// one transaction.
func (s *Store) SetDefaultVehicle(ctx context.Context, userID, id types.ID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		UPDATE vehicles SET is_default = FALSE
		WHERE user_id = $1 AND id <> $2`, string(userID), string(id)); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
		UPDATE vehicles SET is_default = TRUE
		WHERE user_id = $1 AND id = $2`, string(userID), string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

func (s *Store) DeleteVehicle(ctx context.Context, userID, id types.ID) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM vehicles WHERE user_id = $1 AND id = $2`,
		string(userID), string(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanVehicle(row pgx.Row) (*Vehicle, error) {
	var v Vehicle
	var fuel string
	err := row.Scan(&v.ID, &v.UserID, &v.Make, &v.Model, &v.Year, &fuel,
		&v.TankCapacity, &v.IsDefault, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	v.FuelType = types.FuelType(fuel)
	return &v, nil
}
