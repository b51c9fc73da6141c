package boardhub

import (
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize caps one inbound frame. Drawing payloads are
	// opaque, so this is the only size validation the relay does.
	maxMessageSize = 64 * 1024
)

// WebSocketClient pumps frames between one gorilla connection and the
// relay: the read loop feeds the protocol handler in arrival order, the
// write loop drains the registry connection's outbound channel. One
// frame carries exactly one JSON object.
type WebSocketClient struct {
	conn    *Conn
	ws      *websocket.Conn
	handler *Handler
}

func NewWebSocketClient(ws *websocket.Conn, conn *Conn, handler *Handler) *WebSocketClient {
	return &WebSocketClient{conn: conn, ws: ws, handler: handler}
}

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// readPump handles each inbound frame to completion before reading the
// next, which is what preserves per-connection ordering. Its deferred
// teardown is the transport-close path: registry removal plus presence
// rebroadcast, then closing the outbound channel to stop the write
// pump.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.handler.HandleClose(c.conn)
		c.conn.Close()
		c.ws.Close()
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("boardhub: read error for user %s: %v", c.conn.UserID, err)
			}
			break
		}
		if !c.handler.HandleMessage(c.conn, message) {
			break
		}
	}
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.conn.Outbound():
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
