package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20 // 1 MB
)

// Identity is the verified user bound to a connection by the gatekeeper.
// Immutable for the connection's lifetime.
type Identity struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type Client struct {
	ID     string
	UserID int64
	Email  string

	Conn *websocket.Conn
	Send chan []byte

	hub     *Hub
	session *Session

	// rooms this connection has joined; guarded by the hub's lock.
	rooms map[string]struct{}

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func newClient(hub *Hub, conn *websocket.Conn, identity *Identity) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		ID:     uuid.New().String(),
		UserID: identity.ID,
		Email:  identity.Email,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		hub:    hub,
		rooms:  make(map[string]struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches the read and write pumps.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.cancel()
		_ = c.Conn.Close()
	})
}

func (c *Client) IsActive() bool {
	select {
	case <-c.ctx.Done():
		return false
	default:
		return true
	}
}

// writePump drains c.Send onto the socket and keeps the connection alive
// with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// readPump dispatches inbound frames to the session one at a time, so events
// from a single connection run to completion in order. Disconnect triggers
// presence cleanup unconditionally.
func (c *Client) readPump() {
	defer func() {
		c.hub.RemoveClient(c)
		c.Close()
		log.Info().Str("clientID", c.ID).Int64("userID", c.UserID).Msg("ws: client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}
		if c.session != nil {
			c.session.Handle(c.ctx, data)
		}
	}
}
