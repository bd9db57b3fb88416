package server

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	sendBuffer = 4
	writeWait  = 5 * time.Second
)

// client is one websocket subscriber. Frames queue in send; a full queue
// drops the frame rather than stalling the simulation.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans encoded snapshot frames out to every connected client.
type Hub struct {
	logger  *slog.Logger
	mu      sync.Mutex
	clients map[*client]struct{}
	dropped int
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{logger: logger, clients: make(map[*client]struct{})}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Dropped returns how many frames were skipped for slow clients.
func (h *Hub) Dropped() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

// Broadcast queues frame for every client. frame must not be modified
// afterwards.
func (h *Hub) Broadcast(frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- frame:
		default:
			h.dropped++
		}
	}
}

// serve registers conn and blocks until the peer goes away.
func (h *Hub) serve(conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Info("client connected", "remote", conn.RemoteAddr().String())

	done := make(chan struct{})
	go h.writeLoop(c, done)
	h.readLoop(c)

	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	close(done)
	conn.Close()
	h.logger.Info("client disconnected", "remote", conn.RemoteAddr().String())
}

// readLoop discards client messages; it exists to process control frames
// and notice disconnects.
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed", "err", err)
			}
			return
		}
	}
}

func (h *Hub) writeLoop(c *client, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case frame := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				h.logger.Warn("websocket write failed", "err", err)
				c.conn.Close()
				return
			}
		}
	}
}
