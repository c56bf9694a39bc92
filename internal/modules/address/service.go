// README: Address service; geocoding on create, service-area enforcement.
package address

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fuelflow/internal/maps"
	"fuelflow/internal/types"
)

var ErrBadRequest = errors.New("bad request")

// Geocoder resolves address text to coordinates and back. Implemented by
// the Google Maps adapter in production and by fakes in tests.
type Geocoder interface {
	Forward(ctx context.Context, addressText string) (types.Coordinate, bool, error)
	Reverse(ctx context.Context, coord types.Coordinate) (maps.PartialAddress, bool, error)
}

type Service struct {
	store     *Store
	geocoder  Geocoder
	validator *Validator
	log       *zap.Logger
}

func NewService(store *Store, geocoder Geocoder, validator *Validator, log *zap.Logger) *Service {
	return &Service{store: store, geocoder: geocoder, validator: validator, log: log}
}

type CreateCommand struct {
	UserID    types.ID
	Label     string
	Street    string
	City      string
	State     string
	ZipCode   string
	Latitude  *float64
	Longitude *float64
	IsDefault bool
}

// Create validates and persists a new address. When the caller supplies
// no coordinates the structured fields are forward-geocoded; either way
// the resulting coordinate must pass the service-area check.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Address, error) {
	if cmd.UserID == "" || cmd.Street == "" || cmd.ZipCode == "" {
		return nil, ErrBadRequest
	}

	var coord types.Coordinate
	if cmd.Latitude != nil && cmd.Longitude != nil {
		coord = types.Coordinate{Latitude: *cmd.Latitude, Longitude: *cmd.Longitude}
	} else {
		text := fmt.Sprintf("%s, %s, %s %s", cmd.Street, cmd.City, cmd.State, cmd.ZipCode)
		resolved, ok, err := s.geocoder.Forward(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("forward geocode: %w", err)
		}
		if !ok {
			return nil, ErrBadRequest
		}
		coord = resolved
	}

	if err := s.validator.ValidateServiceArea(coord); err != nil {
		return nil, err
	}

	a := &Address{
		ID:         types.ID(uuid.NewString()),
		UserID:     cmd.UserID,
		Label:      cmd.Label,
		Street:     cmd.Street,
		City:       cmd.City,
		State:      cmd.State,
		ZipCode:    cmd.ZipCode,
		Coordinate: coord,
		IsDefault:  cmd.IsDefault,
	}
	if err := s.store.Create(ctx, a); err != nil {
		return nil, err
	}
	if cmd.IsDefault {
		if err := s.store.SetDefault(ctx, cmd.UserID, a.ID); err != nil {
			s.log.Warn("set default address", zap.String("address_id", string(a.ID)), zap.Error(err))
		}
	}
	return a, nil
}

// Describe reverse-geocodes a coordinate into structured postal fields,
// used when the app pins a location on the map.
func (s *Service) Describe(ctx context.Context, coord types.Coordinate) (maps.PartialAddress, error) {
	if err := ValidateCoordinates(coord); err != nil {
		return maps.PartialAddress{}, err
	}
	partial, ok, err := s.geocoder.Reverse(ctx, coord)
	if err != nil {
		return maps.PartialAddress{}, fmt.Errorf("reverse geocode: %w", err)
	}
	if !ok {
		return maps.PartialAddress{}, ErrNotFound
	}
	return partial, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Address, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID types.ID) ([]*Address, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, userID, id types.ID) error {
	return s.store.Delete(ctx, userID, id)
}

func (s *Service) SetDefault(ctx context.Context, userID, id types.ID) error {
	return s.store.SetDefault(ctx, userID, id)
}
