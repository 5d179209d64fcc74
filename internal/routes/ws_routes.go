package routes

import (
	"memberhub_backend/ws"

	"github.com/gin-gonic/gin"
)

// SetupWebSocketRoutes mounts /ws. The handler authenticates from the token
// query parameter since browsers cannot send headers on upgrade.
func SetupWebSocketRoutes(r *gin.Engine, wsHandler *ws.WebSocketHandler) {
	r.GET("/ws", wsHandler.ServeWS)
}
