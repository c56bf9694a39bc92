// README: Profile and vehicle handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fuelflow/internal/http/middleware"
	"fuelflow/internal/modules/user"
	"fuelflow/internal/types"
)

type UserHandler struct {
	users *user.Service
}

func NewUserHandler(svc *user.Service) *UserHandler {
	return &UserHandler{users: svc}
}

// Me upserts and returns the caller's profile; the app calls this once
// after sign-in.
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.users.EnsureUser(c.Request.Context(),
		types.ID(middleware.CallerUID(c)), middleware.CallerEmail(c), "")
	if err != nil {
		writeModuleError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type addVehicleReq struct {
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	FuelType     string  `json:"fuelType"`
	TankCapacity float64 `json:"tankCapacity"`
	IsDefault    bool    `json:"isDefault"`
}

func (h *UserHandler) AddVehicle(c *gin.Context) {
	var req addVehicleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	v, err := h.users.AddVehicle(c.Request.Context(), user.AddVehicleCommand{
		UserID:       types.ID(middleware.CallerUID(c)),
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		FuelType:     types.FuelType(req.FuelType),
		TankCapacity: req.TankCapacity,
		IsDefault:    req.IsDefault,
	})
	if err != nil {
		writeModuleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (h *UserHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.users.ListVehicles(c.Request.Context(), types.ID(middleware.CallerUID(c)))
	if err != nil {
		writeModuleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

func (h *UserHandler) DeleteVehicle(c *gin.Context) {
	err := h.users.DeleteVehicle(c.Request.Context(), types.ID(middleware.CallerUID(c)), types.ID(c.Param("id")))
	if err != nil {
		writeModuleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
