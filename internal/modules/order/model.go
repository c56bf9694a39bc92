// README: Order aggregate and status definitions.
package order

import (
	"time"

	"fuelflow/internal/types"
)

type Status string

const (
	StatusNone      Status = "none"
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusEnRoute   Status = "en_route"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// AddressSnapshot freezes the delivery address at submission time so
// later edits to the address book never change an existing order.
type AddressSnapshot struct {
	Street     string           `json:"street"`
	City       string           `json:"city"`
	State      string           `json:"state"`
	ZipCode    string           `json:"zipCode"`
	Coordinate types.Coordinate `json:"coordinate"`
}

// VehicleSnapshot freezes the target vehicle at submission time.
type VehicleSnapshot struct {
	Make     string         `json:"make"`
	Model    string         `json:"model"`
	Year     int            `json:"year"`
	FuelType types.FuelType `json:"fuelType"`
}

type Order struct {
	ID             types.ID
	UserID         types.ID
	Status         Status
	StatusVersion  int
	FuelType       types.FuelType
	Quantity       float64
	Address        AddressSnapshot
	Vehicle        VehicleSnapshot
	PricePerGallon float64
	Subtotal       float64
	DeliveryFee    float64
	Tax            float64
	TotalAmount    float64
	TotalSavings   float64
	ScheduledAt    *time.Time
	CreatedAt      time.Time
	ConfirmedAt    *time.Time
	EnRouteAt      *time.Time
	DeliveredAt    *time.Time
	CancelledAt    *time.Time
	CancelReason   *string
}

type Event struct {
	ID         int64
	OrderID    types.ID
	FromStatus Status
	ToStatus   Status
	ActorType  string
	ActorID    *types.ID
	CreatedAt  time.Time
}

// AllowedTransitions represents the order status flow as code.
// delivered and cancelled are terminal.
var AllowedTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusEnRoute, StatusCancelled},
	StatusEnRoute:   {StatusDelivered, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether s has no outgoing transitions.
func Terminal(s Status) bool {
	return len(AllowedTransitions[s]) == 0
}
