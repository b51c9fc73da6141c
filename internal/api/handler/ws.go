package handler

import (
	"log"
	"net/http"

	"drawspace/backend/internal/boardhub"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: restrict origins once the frontend domain list is settled.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket admits a realtime connection. The credential rides on
// the handshake URL as ?token=; a bad one is rejected before the
// upgrade, so no anonymous connection is ever admitted.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	userID, err := h.Auth.VerifyToken(c.Query("token"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("handler: websocket upgrade failed: %v", err)
		return
	}

	conn := h.Registry.Admit(userID)
	boardhub.NewWebSocketClient(ws, conn, h.Relay).Run()
}
