// README: Address store backed by PostgreSQL.
package address

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fuelflow/internal/types"
)

var ErrNotFound = errors.New("address not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, a *Address) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO addresses (
            id, user_id, label, street, city, state, zip_code,
            latitude, longitude, is_default, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())`,
		string(a.ID),
		string(a.UserID),
		a.Label,
		a.Street,
		a.City,
		a.State,
		a.ZipCode,
		a.Coordinate.Latitude,
		a.Coordinate.Longitude,
		a.IsDefault,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Address, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, user_id, label, street, city, state, zip_code,
               latitude, longitude, is_default, created_at
        FROM addresses
        WHERE id = $1`, string(id),
	)
	return scanAddress(row)
}

func (s *Store) ListByUser(ctx context.Context, userID types.ID) ([]*Address, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, user_id, label, street, city, state, zip_code,
               latitude, longitude, is_default, created_at
        FROM addresses
        WHERE user_id = $1
        ORDER BY is_default DESC, created_at DESC`, string(userID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addrs []*Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, a)
	}
	return addrs, rows.Err()
}

func (s *Store) Delete(ctx context.Context, userID, id types.ID) error {
	tag, err := s.db.Exec(ctx, `
        DELETE FROM addresses WHERE id = $1 AND user_id = $2`,
		string(id), string(userID),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetDefault flips the default flag to the given address, clearing it on
// the user's other addresses in the same transaction.
func (s *Store) SetDefault(ctx context.Context, userID, id types.ID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
        UPDATE addresses SET is_default = FALSE WHERE user_id = $1`,
		string(userID),
	); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `
        UPDATE addresses SET is_default = TRUE WHERE id = $1 AND user_id = $2`,
		string(id), string(userID),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

func scanAddress(row pgx.Row) (*Address, error) {
	var a Address
	err := row.Scan(
		&a.ID, &a.UserID, &a.Label, &a.Street, &a.City, &a.State, &a.ZipCode,
		&a.Coordinate.Latitude, &a.Coordinate.Longitude, &a.IsDefault, &a.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
