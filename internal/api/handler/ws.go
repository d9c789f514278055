package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"mentorhub/backend/internal/chathub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten in production!
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the HTTP connection to a websocket and hands it to
// the hub. The token is validated here, but the connection still starts
// unidentified: presence begins only once the client sends its userOnline
// event, matching the browser client's handshake.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		// Browsers can't set headers on websocket dials, so the token may
		// ride in the query string instead.
		token = c.Query("token")
	}
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
		return
	}
	if _, _, err := h.validateJWT(token); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := chathub.NewWebSocketClient(uuid.New().String(), conn, h.Hub, h.Relay)
	h.Hub.RegisterCh <- client
	client.Run()
}
