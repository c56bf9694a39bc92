// README: Address book handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fuelflow/internal/http/middleware"
	"fuelflow/internal/modules/address"
	"fuelflow/internal/types"
)

type AddressHandler struct {
	addresses *address.Service
}

func NewAddressHandler(svc *address.Service) *AddressHandler {
	return &AddressHandler{addresses: svc}
}

type createAddressReq struct {
	Label     string   `json:"label"`
	Street    string   `json:"street"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	ZipCode   string   `json:"zipCode"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	IsDefault bool     `json:"isDefault"`
}

func (h *AddressHandler) Create(c *gin.Context) {
	var req createAddressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	addr, err := h.addresses.Create(c.Request.Context(), address.CreateCommand{
		UserID:    types.ID(middleware.CallerUID(c)),
		Label:     req.Label,
		Street:    req.Street,
		City:      req.City,
		State:     req.State,
		ZipCode:   req.ZipCode,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		writeModuleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, addr)
}

func (h *AddressHandler) List(c *gin.Context) {
	addrs, err := h.addresses.ListByUser(c.Request.Context(), types.ID(middleware.CallerUID(c)))
	if err != nil {
		writeModuleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": addrs})
}

func (h *AddressHandler) Delete(c *gin.Context) {
	err := h.addresses.Delete(c.Request.Context(), types.ID(middleware.CallerUID(c)), types.ID(c.Param("id")))
	if err != nil {
		writeModuleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AddressHandler) SetDefault(c *gin.Context) {
	err := h.addresses.SetDefault(c.Request.Context(), types.ID(middleware.CallerUID(c)), types.ID(c.Param("id")))
	if err != nil {
		writeModuleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
