package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainDevice "yard-monitor/internal/domain/device"
	"yard-monitor/internal/usecase/device"
	"yard-monitor/pkg/utils"
)

type DeviceHandler struct {
	service *device.Service
}

func NewDeviceHandler(service *device.Service) *DeviceHandler {
	return &DeviceHandler{service: service}
}

func (h *DeviceHandler) RegisterRoutes(router *gin.RouterGroup) {
	yard := router.Group("/yard")
	{
		yard.GET("/snapshot", h.GetSnapshot)
		yard.GET("/stats", h.GetStats)
	}

	devices := router.Group("/devices")
	{
		devices.GET("/:code", h.GetDevice)
	}
}

// GetSnapshot returns the ordered device views the dashboard polls. The
// optional yard query parameter narrows the result to one yard.
func (h *DeviceHandler) GetSnapshot(c *gin.Context) {
	yardName := c.Query("yard")

	views, err := h.service.Snapshot(c.Request.Context(), yardName)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load yard snapshot")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Snapshot retrieved successfully", views)
}

func (h *DeviceHandler) GetStats(c *gin.Context) {
	yardName := c.Query("yard")

	stats, err := h.service.Stats(c.Request.Context(), yardName)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load occupancy stats")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Stats retrieved successfully", stats)
}

func (h *DeviceHandler) GetDevice(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Device code required")
		return
	}

	dev, err := h.service.GetDevice(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, domainDevice.ErrDeviceNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "Device not found")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load device")
		return
	}

	view := domainDevice.View{
		Code:             dev.Code,
		SpotStatus:       dev.SpotStatus,
		Distance:         dev.Distance,
		ReadingTimestamp: dev.ReadingTimestamp,
	}
	utils.SuccessResponse(c, http.StatusOK, "Device retrieved successfully", view)
}
