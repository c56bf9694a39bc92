// README: Order service implements placement, quoting, and state transitions.
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fuelflow/internal/modules/address"
	"fuelflow/internal/modules/pricing"
	"fuelflow/internal/types"
)

var (
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrNotFound               = errors.New("order not found")
	ErrConflict               = errors.New("order state conflict")
	ErrBadRequest             = errors.New("bad request")
	ErrFuelMismatch           = errors.New("fuel type incompatible with vehicle")
)

// PricingSource serves the current quote for a (zip, fuel) key.
type PricingSource interface {
	GetPricing(ctx context.Context, zipCode string, fuel types.FuelType, quantity float64) (*pricing.Quote, error)
}

// AddressBook looks up saved delivery addresses.
type AddressBook interface {
	Get(ctx context.Context, id types.ID) (*address.Address, error)
}

// AreaValidator rejects destinations outside the service area.
type AreaValidator interface {
	ValidateServiceArea(c types.Coordinate) error
}

// VehicleDirectory resolves a user's vehicle into a snapshot.
type VehicleDirectory interface {
	Snapshot(ctx context.Context, userID, vehicleID types.ID) (VehicleSnapshot, error)
}

type Service struct {
	store     *Store
	pricing   PricingSource
	costs     *pricing.Engine
	fees      pricing.FeeSource
	area      AreaValidator
	addresses AddressBook
	vehicles  VehicleDirectory
	log       *zap.Logger
}

func NewService(store *Store, src PricingSource, costs *pricing.Engine, fees pricing.FeeSource, area AreaValidator, addresses AddressBook, vehicles VehicleDirectory, log *zap.Logger) *Service {
	return &Service{
		store:     store,
		pricing:   src,
		costs:     costs,
		fees:      fees,
		area:      area,
		addresses: addresses,
		vehicles:  vehicles,
		log:       log,
	}
}

type PlaceCommand struct {
	UserID      types.ID
	AddressID   types.ID
	VehicleID   types.ID
	FuelType    types.FuelType
	Quantity    float64
	ScheduledAt *time.Time
}

type TransitionCommand struct {
	OrderID   types.ID
	To        Status
	ActorType string
	ActorID   *types.ID
}

type CancelCommand struct {
	OrderID   types.ID
	ActorType string
	ActorID   *types.ID
	Reason    string
}

// Place validates the order request, quotes it, and persists the order
// in pending status. The address and vehicle are snapshotted so the
// order is immutable except through status transitions.
func (s *Service) Place(ctx context.Context, cmd PlaceCommand) (*Order, error) {
	if cmd.UserID == "" || cmd.AddressID == "" {
		return nil, ErrBadRequest
	}
	if !cmd.FuelType.Valid() {
		return nil, fmt.Errorf("%w: unknown fuel type %q", ErrBadRequest, cmd.FuelType)
	}
	if cmd.Quantity < pricing.MinOrderQuantity || cmd.Quantity > pricing.MaxOrderQuantity {
		return nil, pricing.ErrQuantityOutOfRange
	}

	addr, err := s.addresses.Get(ctx, cmd.AddressID)
	if err != nil {
		return nil, err
	}
	if addr.UserID != cmd.UserID {
		return nil, ErrNotFound
	}
	if err := s.area.ValidateServiceArea(addr.Coordinate); err != nil {
		return nil, err
	}

	var vehicle VehicleSnapshot
	if cmd.VehicleID != "" {
		vehicle, err = s.vehicles.Snapshot(ctx, cmd.UserID, cmd.VehicleID)
		if err != nil {
			return nil, err
		}
		if vehicle.FuelType != cmd.FuelType {
			return nil, fmt.Errorf("%w: vehicle takes %s", ErrFuelMismatch, vehicle.FuelType)
		}
	}

	quote, err := s.pricing.GetPricing(ctx, addr.ZipCode, cmd.FuelType, cmd.Quantity)
	if err != nil {
		return nil, err
	}
	fee, err := s.fees.FeeFor(ctx, addr.Coordinate)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.costs.Quote(quote.OurPrice, cmd.Quantity, fee)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	o := &Order{
		ID:            types.ID(uuid.NewString()),
		UserID:        cmd.UserID,
		Status:        StatusPending,
		StatusVersion: 0,
		FuelType:      cmd.FuelType,
		Quantity:      cmd.Quantity,
		Address: AddressSnapshot{
			Street:     addr.Street,
			City:       addr.City,
			State:      addr.State,
			ZipCode:    addr.ZipCode,
			Coordinate: addr.Coordinate,
		},
		Vehicle:        vehicle,
		PricePerGallon: quote.OurPrice,
		Subtotal:       breakdown.Subtotal,
		DeliveryFee:    breakdown.DeliveryFee,
		Tax:            breakdown.Tax,
		TotalAmount:    breakdown.Total,
		TotalSavings:   quote.TotalSavings,
		ScheduledAt:    cmd.ScheduledAt,
		CreatedAt:      now,
	}
	if err := s.store.Create(ctx, o); err != nil {
		return nil, err
	}
	_ = s.store.AppendEvent(ctx, &Event{
		OrderID:    o.ID,
		FromStatus: StatusNone,
		ToStatus:   StatusPending,
		ActorType:  "customer",
		ActorID:    &cmd.UserID,
		CreatedAt:  now,
	})

	s.log.Info("order placed",
		zap.String("order_id", string(o.ID)),
		zap.String("fuel", string(o.FuelType)),
		zap.Float64("quantity", o.Quantity),
		zap.Float64("total", o.TotalAmount))
	return o, nil
}

// Transition moves the order along the status flow, guarded by the
// transition table and an optimistic lock on (status, status_version).
func (s *Service) Transition(ctx context.Context, cmd TransitionCommand) error {
	if cmd.To == StatusCancelled {
		return s.Cancel(ctx, CancelCommand{OrderID: cmd.OrderID, ActorType: cmd.ActorType, ActorID: cmd.ActorID})
	}

	o, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if !CanTransition(o.Status, cmd.To) {
		return ErrInvalidStateTransition
	}
	ok, err := s.store.UpdateStatus(ctx, o.ID, o.Status, cmd.To, o.StatusVersion, nil)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	_ = s.store.AppendEvent(ctx, &Event{
		OrderID:    o.ID,
		FromStatus: o.Status,
		ToStatus:   cmd.To,
		ActorType:  cmd.ActorType,
		ActorID:    cmd.ActorID,
		CreatedAt:  time.Now(),
	})
	return nil
}

// Cancel is terminal: the order row survives with cancelled status, it
// is never deleted.
func (s *Service) Cancel(ctx context.Context, cmd CancelCommand) error {
	o, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return err
	}
	if !CanTransition(o.Status, StatusCancelled) {
		return ErrInvalidStateTransition
	}
	var reason *string
	if cmd.Reason != "" {
		reason = &cmd.Reason
	}
	ok, err := s.store.UpdateStatus(ctx, o.ID, o.Status, StatusCancelled, o.StatusVersion, reason)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	_ = s.store.AppendEvent(ctx, &Event{
		OrderID:    o.ID,
		FromStatus: o.Status,
		ToStatus:   StatusCancelled,
		ActorType:  cmd.ActorType,
		ActorID:    cmd.ActorID,
		CreatedAt:  time.Now(),
	})
	return nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Order, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID types.ID) ([]*Order, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *Service) Events(ctx context.Context, orderID types.ID) ([]Event, error) {
	return s.store.ListEvents(ctx, orderID)
}
