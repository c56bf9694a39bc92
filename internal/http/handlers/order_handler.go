// README: Order handlers for placement, lookup, cancel, and dispatch transitions.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fuelflow/internal/http/middleware"
	"fuelflow/internal/modules/order"
	"fuelflow/internal/types"
)

type OrderHandler struct {
	orders *order.Service
}

func NewOrderHandler(svc *order.Service) *OrderHandler {
	return &OrderHandler{orders: svc}
}

type placeOrderReq struct {
	AddressID   string     `json:"addressId"`
	VehicleID   string     `json:"vehicleId"`
	FuelType    string     `json:"fuelType"`
	Quantity    float64    `json:"quantity"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

func (h *OrderHandler) Place(c *gin.Context) {
	var req placeOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	o, err := h.orders.Place(c.Request.Context(), order.PlaceCommand{
		UserID:      types.ID(middleware.CallerUID(c)),
		AddressID:   types.ID(req.AddressID),
		VehicleID:   types.ID(req.VehicleID),
		FuelType:    types.FuelType(req.FuelType),
		Quantity:    req.Quantity,
		ScheduledAt: req.ScheduledAt,
	})
	if err != nil {
		writeModuleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderView(o))
}

func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.orders.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeModuleError(c, err)
		return
	}
	if string(o.UserID) != middleware.CallerUID(c) {
		writeModuleError(c, order.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, orderView(o))
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orders.ListByUser(c.Request.Context(), types.ID(middleware.CallerUID(c)))
	if err != nil {
		writeModuleError(c, err)
		return
	}
	views := make([]gin.H, len(orders))
	for i, o := range orders {
		views[i] = orderView(o)
	}
	c.JSON(http.StatusOK, gin.H{"orders": views})
}

type cancelOrderReq struct {
	Reason string `json:"reason"`
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	var req cancelOrderReq
	_ = c.ShouldBindJSON(&req)

	uid := types.ID(middleware.CallerUID(c))
	id := types.ID(c.Param("id"))

	o, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		writeModuleError(c, err)
		return
	}
	if o.UserID != uid {
		writeModuleError(c, order.ErrNotFound)
		return
	}

	err = h.orders.Cancel(c.Request.Context(), order.CancelCommand{
		OrderID:   id,
		ActorType: "customer",
		ActorID:   &uid,
		Reason:    req.Reason,
	})
	if err != nil {
		writeModuleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": order.StatusCancelled})
}

type transitionReq struct {
	Status string `json:"status"`
}

// Transition moves an order along the delivery flow; dispatch tooling
// calls this, not the customer app.
func (h *OrderHandler) Transition(c *gin.Context) {
	var req transitionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	uid := types.ID(middleware.CallerUID(c))
	err := h.orders.Transition(c.Request.Context(), order.TransitionCommand{
		OrderID:   types.ID(c.Param("id")),
		To:        order.Status(req.Status),
		ActorType: "dispatch",
		ActorID:   &uid,
	})
	if err != nil {
		writeModuleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

func orderView(o *order.Order) gin.H {
	return gin.H{
		"id":             o.ID,
		"status":         o.Status,
		"fuelType":       o.FuelType,
		"quantity":       o.Quantity,
		"address":        o.Address,
		"vehicle":        o.Vehicle,
		"pricePerGallon": o.PricePerGallon,
		"subtotal":       o.Subtotal,
		"deliveryFee":    o.DeliveryFee,
		"tax":            o.Tax,
		"total":          o.TotalAmount,
		"totalSavings":   o.TotalSavings,
		"scheduledAt":    o.ScheduledAt,
		"createdAt":      o.CreatedAt,
	}
}
