// README: Payment intent handler; the client finishes the payment sheet.
package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"fuelflow/internal/http/middleware"
	"fuelflow/internal/modules/order"
	"fuelflow/internal/payment"
	"fuelflow/internal/types"
)

type PaymentHandler struct {
	orders    *order.Service
	processor payment.Processor
}

func NewPaymentHandler(orders *order.Service, processor payment.Processor) *PaymentHandler {
	return &PaymentHandler{orders: orders, processor: processor}
}

type intentReq struct {
	OrderID string `json:"orderId"`
}

func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req intentReq
	if err := c.ShouldBindJSON(&req); err != nil || req.OrderID == "" {
		writeError(c, http.StatusBadRequest, "missing orderId")
		return
	}

	o, err := h.orders.Get(c.Request.Context(), types.ID(req.OrderID))
	if err != nil {
		writeModuleError(c, err)
		return
	}
	if string(o.UserID) != middleware.CallerUID(c) {
		writeModuleError(c, order.ErrNotFound)
		return
	}

	amount := types.Money{Cents: int64(math.Round(o.TotalAmount * 100)), Currency: "usd"}
	intent, err := h.processor.CreateIntent(c.Request.Context(), amount, map[string]string{
		"order_id": string(o.ID),
	})
	if err != nil {
		writeModuleError(c, err)
		return
	}
	c.JSON(http.StatusOK, intent)
}
