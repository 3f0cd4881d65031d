package ws

import (
	"context"
	"log"
	"sync"
)

// Hub fans analysis events out to every connected websocket client. Slow
// clients whose send buffer is full are dropped instead of blocking the hub.
type Hub struct {
	clients    map[*Client]struct{}
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run owns the client set until ctx is done, then closes every client.
// Register, Unregister and Broadcast return immediately once Run has stopped.
func (h *Hub) Run(ctx context.Context) {
	defer h.stopOnce.Do(func() { close(h.done) })
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mutex.Unlock()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = struct{}{}
			total := len(h.clients)
			h.mutex.Unlock()
			h.logf("ws connected total_clients=%d", total)

		case client := <-h.unregister:
			if h.remove(client) {
				h.logf("ws disconnected total_clients=%d", h.ClientCount())
			}

		case message := <-h.broadcast:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			dropped := 0
			for _, c := range snapshot {
				select {
				case c.send <- message:
				default:
					if h.remove(c) {
						dropped++
					}
				}
			}
			h.logf("ws broadcast clients=%d dropped=%d", len(snapshot), dropped)
		}
	}
}

func (h *Hub) remove(c *Client) bool {
	if c == nil {
		return false
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[c]; !ok {
		return false
	}
	delete(h.clients, c)
	close(c.send)
	return true
}

// Register adds client to the hub. After Run has stopped the client's send
// channel is closed instead, which ends its write pump.
func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	if h.stopped() {
		closeClient(client)
		return
	}
	select {
	case h.register <- client:
	case <-h.done:
		closeClient(client)
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil || h.stopped() {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues message for delivery. It never blocks; when the queue is
// full the message is dropped and logged.
func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	if h.stopped() {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.logf("ws broadcast dropped reason=buffer_full")
	}
}

func (h *Hub) stopped() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

func closeClient(c *Client) {
	if c != nil {
		close(c.send)
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
