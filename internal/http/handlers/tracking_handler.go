// README: Courier location updates and live order tracking stream.
package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"fuelflow/internal/modules/tracking"
	"fuelflow/internal/types"
)

type TrackingHandler struct {
	tracking *tracking.Service
}

func NewTrackingHandler(svc *tracking.Service) *TrackingHandler {
	return &TrackingHandler{tracking: svc}
}

type locationUpdateReq struct {
	OrderID   string  `json:"orderId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (h *TrackingHandler) UpdateLocation(c *gin.Context) {
	var req locationUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	err := h.tracking.UpdatePosition(c.Request.Context(), tracking.Update{
		CourierID:  types.ID(c.Param("id")),
		OrderID:    types.ID(req.OrderID),
		Coordinate: types.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude},
	})
	if err != nil {
		writeModuleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stream pushes courier positions for an order as server-sent events
// until the client disconnects.
func (h *TrackingHandler) Stream(c *gin.Context) {
	sub := h.tracking.Watch(types.ID(c.Param("id")))
	defer sub.Stop()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case pos, ok := <-sub.Updates():
			if !ok {
				return false
			}
			c.SSEvent("position", pos)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
