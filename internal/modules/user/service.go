// README: User service; ensures profiles on login and owns the garage.
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fuelflow/internal/types"
)

var ErrBadRequest = errors.New("bad request")

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// EnsureUser upserts the profile after token verification so a row
// exists before the first order.
func (s *Service) EnsureUser(ctx context.Context, id types.ID, email, displayName string) (*User, error) {
	if id == "" {
		return nil, ErrBadRequest
	}
	u := &User{
		ID:          id,
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   time.Now(),
	}
	if err := s.store.UpsertUser(ctx, u); err != nil {
		return nil, err
	}
	return s.store.GetUser(ctx, id)
}

func (s *Service) Get(ctx context.Context, id types.ID) (*User, error) {
	return s.store.GetUser(ctx, id)
}

type AddVehicleCommand struct {
	UserID       types.ID
	Make         string
	Model        string
	Year         int
	FuelType     types.FuelType
	TankCapacity float64
	IsDefault    bool
}

func (s *Service) AddVehicle(ctx context.Context, cmd AddVehicleCommand) (*Vehicle, error) {
	if cmd.UserID == "" || cmd.Make == "" || cmd.Model == "" {
		return nil, ErrBadRequest
	}
	if !cmd.FuelType.Valid() {
		return nil, fmt.Errorf("%w: unknown fuel type %q", ErrBadRequest, cmd.FuelType)
	}
	if cmd.Year < 1900 || cmd.Year > time.Now().Year()+1 {
		return nil, fmt.Errorf("%w: year %d", ErrBadRequest, cmd.Year)
	}

	v := &Vehicle{
		ID:           types.ID(uuid.NewString()),
		UserID:       cmd.UserID,
		Make:         cmd.Make,
		Model:        cmd.Model,
		Year:         cmd.Year,
		FuelType:     cmd.FuelType,
		TankCapacity: cmd.TankCapacity,
		IsDefault:    cmd.IsDefault,
		CreatedAt:    time.Now(),
	}
	if err := s.store.AddVehicle(ctx, v); err != nil {
		return nil, err
	}
	if cmd.IsDefault {
		if err := s.store.SetDefaultVehicle(ctx, cmd.UserID, v.ID); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Vehicle returns the vehicle only when it belongs to the user.
func (s *Service) Vehicle(ctx context.Context, userID, id types.ID) (*Vehicle, error) {
	v, err := s.store.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.UserID != userID {
		return nil, ErrNotFound
	}
	return v, nil
}

func (s *Service) ListVehicles(ctx context.Context, userID types.ID) ([]*Vehicle, error) {
	return s.store.ListVehicles(ctx, userID)
}

func (s *Service) SetDefaultVehicle(ctx context.Context, userID, id types.ID) error {
	return s.store.SetDefaultVehicle(ctx, userID, id)
}

func (s *Service) DeleteVehicle(ctx context.Context, userID, id types.ID) error {
	return s.store.DeleteVehicle(ctx, userID, id)
}
