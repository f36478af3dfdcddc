package callback

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	subscriberBuffer = 64
	writeTimeout     = 10 * time.Second
	pingInterval     = 30 * time.Second
	readTimeout      = 90 * time.Second
)

// Hub relays accepted callbacks to websocket subscribers. It is a Sink and
// an http.Handler for the subscription endpoint.
//
// Each subscriber has a bounded queue; a subscriber whose queue is full is
// disconnected rather than allowed to stall the callback path.
type Hub struct {
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() { close(s.send) })
}

// NewHub creates an empty hub.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		subs: make(map[*subscriber]struct{}),
	}
}

// Subscribers returns the number of connected subscribers.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// HandleEvent queues the raw callback for every subscriber.
func (h *Hub) HandleEvent(_ context.Context, evt *Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		select {
		case sub.send <- evt.Raw:
		default:
			h.log.Warn("dropping slow event subscriber", "remote", sub.conn.RemoteAddr().String())
			delete(h.subs, sub)
			sub.close()
		}
	}
	return nil
}

// ServeHTTP upgrades the request and streams events until the peer goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	sub := &subscriber{conn: conn, send: make(chan []byte, subscriberBuffer)}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	h.log.Info("event subscriber connected", "remote", conn.RemoteAddr().String())

	go h.readLoop(sub)
	h.writeLoop(sub)
}

func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
	sub.close()
}

// readLoop discards inbound frames; it exists to observe close and pong frames.
func (h *Hub) readLoop(sub *subscriber) {
	defer h.remove(sub)

	sub.conn.SetReadDeadline(time.Now().Add(readTimeout))
	sub.conn.SetPongHandler(func(string) error {
		return sub.conn.SetReadDeadline(time.Now().Add(readTimeout))
	})
	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(sub *subscriber) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		sub.conn.Close()
		h.log.Info("event subscriber disconnected", "remote", sub.conn.RemoteAddr().String())
	}()

	for {
		select {
		case data, ok := <-sub.send:
			sub.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				sub.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := sub.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.remove(sub)
				return
			}
		case <-ticker.C:
			sub.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(sub)
				return
			}
		}
	}
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		delete(h.subs, sub)
		sub.close()
	}
}
