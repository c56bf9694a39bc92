// README: Delivery address model; orders snapshot these fields at placement.
package address

import (
	"time"

	"fuelflow/internal/types"
)

type Address struct {
	ID         types.ID
	UserID     types.ID
	Label      string
	Street     string
	City       string
	State      string
	ZipCode    string
	Coordinate types.Coordinate
	IsDefault  bool
	CreatedAt  time.Time
}
