package chathub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"mentorhub/backend/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

const sendBufferSize = 256

// WebSocketClient implements the Client interface over a gorilla/websocket
// connection.
type WebSocketClient struct {
	ConnID string
	Conn   *websocket.Conn
	Hub    *ManagerService
	Relay  *RelayService
	Send   chan models.Event

	// done signals the write pump to stop. The Send channel itself is never
	// closed: relay pushes arrive from other connections' goroutines, and a
	// send racing the close must land in the buffer (or drop), not panic.
	done      chan struct{}
	closeOnce sync.Once

	// userID is written by the hub's run loop and read by the read pump,
	// hence the lock.
	mu     sync.RWMutex
	userID string
}

// NewWebSocketClient wraps an upgraded connection for the hub.
func NewWebSocketClient(connID string, conn *websocket.Conn, hub *ManagerService, relay *RelayService) *WebSocketClient {
	return &WebSocketClient{
		ConnID: connID,
		Conn:   conn,
		Hub:    hub,
		Relay:  relay,
		Send:   make(chan models.Event, sendBufferSize),
		done:   make(chan struct{}),
	}
}

func (c *WebSocketClient) GetConnID() string { return c.ConnID }

func (c *WebSocketClient) GetUserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

func (c *WebSocketClient) SetUserID(id string) {
	c.mu.Lock()
	c.userID = id
	c.mu.Unlock()
}

func (c *WebSocketClient) GetSendChannel() chan<- models.Event { return c.Send }

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close signals the write pump to stop. The read pump stops on its own once
// the underlying connection is closed. Safe to call more than once, and safe
// to call while other goroutines still push into the send channel.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// readPump reads event envelopes from the websocket and dispatches them.
// Identify events go through the hub so lifecycle transitions stay
// serialized; sends go straight to the relay, which may suspend on the
// store without holding anything up but this one connection.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading from connection %s: %v", c.ConnID, err)
			}
			break
		}

		var ev models.Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			log.Printf("error decoding event from connection %s: %v", c.ConnID, err)
			continue
		}
		c.handleEvent(ev)
	}
}

func (c *WebSocketClient) handleEvent(ev models.Event) {
	switch ev.Name {
	case models.EventUserOnline:
		var userID string
		if err := json.Unmarshal(ev.Payload, &userID); err != nil {
			c.reject("userOnline payload must be a user id string")
			return
		}
		c.Hub.IdentifyCh <- IdentifyRequest{Client: c, UserID: userID}

	case models.EventSendMessage:
		var req models.SendMessageRequest
		if err := json.Unmarshal(ev.Payload, &req); err != nil {
			c.reject("malformed sendMessage payload")
			return
		}
		msg, delivered, err := c.Relay.Send(c, req)
		if err != nil {
			c.reject(err.Error())
			return
		}
		// Ack to the originating connection; other tabs got theirs from the
		// relay's echo.
		c.enqueue(models.NewEvent(models.EventMessageSent,
			models.MessageAck{Message: msg, Delivered: delivered}))

	default:
		log.Printf("unknown event %q from connection %s", ev.Name, c.ConnID)
	}
}

func (c *WebSocketClient) reject(reason string) {
	c.enqueue(models.NewEvent(models.EventMessageError, models.ErrorPayload{Error: reason}))
}

// enqueue pushes an event to this connection's own write pump, dropping it
// when the buffer is full.
func (c *WebSocketClient) enqueue(ev models.Event) {
	select {
	case c.Send <- ev:
	default:
		log.Printf("dropping %s event for slow connection %s", ev.Name, c.ConnID)
	}
}

// writePump drains the Send channel into the websocket and keeps the
// connection alive with pings.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case <-c.done:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case ev := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			data, err := json.Marshal(ev)
			if err != nil {
				log.Printf("error encoding event for connection %s: %v", c.ConnID, err)
				continue
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

			// Drain whatever else is already queued before the next ping.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				data, err := json.Marshal(<-c.Send)
				if err != nil {
					continue
				}
				if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
					return
				}
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
