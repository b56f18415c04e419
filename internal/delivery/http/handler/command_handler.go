package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "yard-monitor/pkg/errors"
	"yard-monitor/pkg/utils"
)

// Dispatcher delivers one command to one device. The concrete
// implementation lives in internal/command.
type Dispatcher interface {
	Dispatch(deviceCode, token string) error
}

type CommandHandler struct {
	dispatcher Dispatcher
}

func NewCommandHandler(dispatcher Dispatcher) *CommandHandler {
	return &CommandHandler{dispatcher: dispatcher}
}

func (h *CommandHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/devices/:code/command", h.DispatchCommand)
}

type dispatchCommandRequest struct {
	Command string `json:"command" binding:"required"`
}

type dispatchCommandResponse struct {
	DeviceCode string `json:"device_code"`
	Command    string `json:"command"`
	Delivered  bool   `json:"delivered"`
}

// DispatchCommand publishes one operator command to the selected device. A
// failed delivery is reported to the caller, never fatal to the process.
func (h *CommandHandler) DispatchCommand(c *gin.Context) {
	code := c.Param("code")

	var req dispatchCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.dispatcher.Dispatch(code, req.Command); err != nil {
		switch {
		case errors.Is(err, pkgerrors.ErrEmptyDeviceCode), errors.Is(err, pkgerrors.ErrEmptyCommand):
			utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, pkgerrors.ErrBrokerUnavailable):
			utils.ErrorResponse(c, http.StatusBadGateway, "Cannot reach MQTT broker")
		case errors.Is(err, pkgerrors.ErrCommandNotConfirmed):
			utils.ErrorResponse(c, http.StatusGatewayTimeout, "Command delivery not confirmed")
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to dispatch command")
		}
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Command delivered", dispatchCommandResponse{
		DeviceCode: code,
		Command:    req.Command,
		Delivered:  true,
	})
}
