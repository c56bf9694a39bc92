// README: Courier position models for live delivery tracking.
package tracking

import (
	"time"

	"fuelflow/internal/types"
)

// Position is a courier's latest reported location. Updates are
// last-write-wins; there is no rollback to an earlier position.
type Position struct {
	CourierID  types.ID         `json:"courierId"`
	OrderID    types.ID         `json:"orderId,omitempty"`
	Coordinate types.Coordinate `json:"coordinate"`
	RecordedAt time.Time        `json:"recordedAt"`
}

// Snapshot is the durable trail row flushed periodically to Postgres,
// much sparser than the live Redis stream.
type Snapshot struct {
	ID         int64
	CourierID  types.ID
	OrderID    *types.ID
	Coordinate types.Coordinate
	RecordedAt time.Time
}
