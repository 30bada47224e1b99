package handlers

import (
	"github.com/gin-gonic/gin"

	"fleetpulse/pkg/logger"
	"fleetpulse/pkg/websocket"
)

type WSHandler struct {
	hub    *websocket.Hub
	logger *logger.Logger
}

func NewWSHandler(hub *websocket.Hub, logger *logger.Logger) *WSHandler {
	return &WSHandler{hub: hub, logger: logger}
}

// Connect upgrades the request to a websocket session on the fleet
// event feed.
func (h *WSHandler) Connect(c *gin.Context) {
	if err := websocket.ServeWS(h.hub, c.Writer, c.Request, c.GetString("user_id")); err != nil {
		h.logger.WithError(err).Warn("WebSocket upgrade failed")
	}
}
