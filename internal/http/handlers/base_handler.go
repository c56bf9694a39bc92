// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fuelflow/internal/modules/address"
	"fuelflow/internal/modules/order"
	"fuelflow/internal/modules/pricing"
	"fuelflow/internal/modules/route"
	"fuelflow/internal/modules/user"
	"fuelflow/internal/payment"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

// writeModuleError maps module sentinels onto HTTP statuses. Unknown
// errors never leak internals.
func writeModuleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrBadRequest), errors.Is(err, user.ErrBadRequest),
		errors.Is(err, address.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, address.ErrInvalidCoordinates):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, pricing.ErrQuantityOutOfRange), errors.Is(err, order.ErrFuelMismatch),
		errors.Is(err, address.ErrOutsideServiceArea):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, order.ErrNotFound), errors.Is(err, address.ErrNotFound),
		errors.Is(err, user.ErrNotFound), errors.Is(err, pricing.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrInvalidStateTransition), errors.Is(err, order.ErrConflict):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, pricing.ErrPricingUnavailable), errors.Is(err, route.ErrRouteUnavailable):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, payment.ErrRemoteService):
		writeError(c, http.StatusPaymentRequired, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
