// README: Route estimation handler.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fuelflow/internal/modules/route"
	"fuelflow/internal/types"
)

type RouteHandler struct {
	estimator *route.Estimator
}

func NewRouteHandler(estimator *route.Estimator) *RouteHandler {
	return &RouteHandler{estimator: estimator}
}

func (h *RouteHandler) Get(c *gin.Context) {
	origin, ok := parseCoordinate(c, "originLat", "originLng")
	if !ok {
		return
	}
	destination, ok := parseCoordinate(c, "destLat", "destLng")
	if !ok {
		return
	}

	r, err := h.estimator.ComputeRoute(c.Request.Context(), origin, destination)
	if err != nil {
		writeModuleError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func parseCoordinate(c *gin.Context, latKey, lngKey string) (types.Coordinate, bool) {
	lat, err := strconv.ParseFloat(c.Query(latKey), 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid "+latKey)
		return types.Coordinate{}, false
	}
	lng, err := strconv.ParseFloat(c.Query(lngKey), 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid "+lngKey)
		return types.Coordinate{}, false
	}
	return types.Coordinate{Latitude: lat, Longitude: lng}, true
}
