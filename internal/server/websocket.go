package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/slopestore/slopestored/internal/core/events"
)

const (
	// sendQueueLimit bounds buffered envelopes per connection; a client
	// that cannot keep up is disconnected rather than back-pressuring the
	// engine's synchronous emitter.
	sendQueueLimit = 256

	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsClient holds the per-connection state of an event feed subscriber.
// shutdown can be reached from the emitter callback, the read loop and
// the write loop at the same time; the sync.Once keeps the close of done
// idempotent.
type wsClient struct {
	conn      *websocket.Conn
	send      chan events.Envelope
	done      chan struct{}
	closeOnce sync.Once
}

func newWSClient(conn *websocket.Conn) *wsClient {
	return &wsClient{
		conn: conn,
		send: make(chan events.Envelope, sendQueueLimit),
		done: make(chan struct{}),
	}
}

// shutdown signals both loops to stop. Safe from any goroutine, any
// number of times.
func (c *wsClient) shutdown() {
	c.closeOnce.Do(func() { close(c.done) })
}

// enqueue buffers an envelope for the write loop. When the queue is full
// the connection is dropped instead of blocking the emitting goroutine.
func (c *wsClient) enqueue(env events.Envelope) {
	select {
	case c.send <- env:
	default:
		c.shutdown()
	}
}

// handleWebsocket upgrades the connection and streams event envelopes. The
// optional "label" query parameter narrows the feed to one event label.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	label := r.URL.Query().Get("label")
	switch label {
	case "", events.LabelSell, events.LabelBuy, events.LabelRedeem:
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown label"})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := newWSClient(conn)
	handle := s.engine.Events().Subscribe(label, client.enqueue)

	go client.writeLoop()

	// Read loop: the feed is one-way, but reading drains control frames
	// and detects the client going away.
	go func() {
		defer func() {
			s.engine.Events().Unsubscribe(handle)
			client.shutdown()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (c *wsClient) writeLoop() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case env := <-c.send:
			data, err := json.Marshal(env)
			if err != nil {
				log.Printf("marshal event: %v", err)
				continue
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.shutdown()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.shutdown()
				return
			}
		case <-c.done:
			// Best-effort close frame, then close the conn so a client
			// that ignores the frame cannot hold the read loop open.
			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			c.conn.Close()
			return
		}
	}
}
