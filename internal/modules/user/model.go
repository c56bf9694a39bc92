// README: User profile and vehicle models.
package user

import (
	"time"

	"fuelflow/internal/types"
)

type User struct {
	ID          types.ID
	Email       string
	DisplayName string
	Phone       string
	CreatedAt   time.Time
}

// Vehicle's fuel type drives order compatibility: an order for premium
// cannot target a vehicle registered as regular.
type Vehicle struct {
	ID           types.ID
	UserID       types.ID
	Make         string
	Model        string
	Year         int
	FuelType     types.FuelType
	TankCapacity float64
	IsDefault    bool
	CreatedAt    time.Time
}
