package ws

import (
	"net/http"

	"memberhub_backend/internal/auth"
	"memberhub_backend/internal/logger"
	"memberhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	Manager  *WebSocketManager
	tokens   *auth.TokenIssuer
	upgrader websocket.Upgrader
}

// NewWebSocketHandler checks the Origin header against allowedOrigins;
// "*" accepts any origin.
func NewWebSocketHandler(manager *WebSocketManager, tokens *auth.TokenIssuer, allowedOrigins []string) *WebSocketHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &WebSocketHandler{
		Manager: manager,
		tokens:  tokens,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

// ServeWS godoc
// @Summary Notification stream
// @Description Upgrades to a websocket that receives the caller's notifications. Browsers cannot set headers, so the JWT travels in the query string.
// @Tags Notifications
// @Param token query string true "Access token"
// @Success 101
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /ws [get]
func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	claims, err := h.tokens.ParseToken(c.Query("token"))
	if err != nil {
		apperrors.HandleError(c, apperrors.ErrInvalidToken)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.CtxWarn(c.Request.Context(), "websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		UserID:     claims.UserID,
		BusinessID: claims.BusinessID,
		Conn:       conn,
		Send:       make(chan any, sendBufferSize),
		Manager:    h.Manager,
	}
	select {
	case h.Manager.register <- client:
	case <-h.Manager.done:
		conn.Close()
		return
	}

	go client.readPump()
	go client.writePump()
}
