package ws

import (
	"log"
	"sync"
)

// Hub fans job events out to whoever is listening for the current job to
// change (overlay UIs, popups). Listeners are fire-and-forget: a slow one
// gets detached rather than allowed to stall the feed.
type Hub struct {
	mu        sync.RWMutex
	listeners map[*Client]struct{}

	events chan []byte
	attach chan *Client
	detach chan *Client

	logger *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		listeners: make(map[*Client]struct{}),
		events:    make(chan []byte, 256),
		attach:    make(chan *Client, 32),
		detach:    make(chan *Client, 32),
		logger:    logger,
	}
}

// Run owns the listener set. All mutation goes through the attach/detach
// channels so the feed never races its own bookkeeping.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.attach:
			if c == nil {
				continue
			}
			h.mu.Lock()
			h.listeners[c] = struct{}{}
			n := len(h.listeners)
			h.mu.Unlock()
			if h.logger != nil {
				h.logger.Printf("job feed | listener attached, total=%d", n)
			}

		case c := <-h.detach:
			if c == nil {
				continue
			}
			h.mu.Lock()
			if _, ok := h.listeners[c]; ok {
				delete(h.listeners, c)
				close(c.send)
			}
			n := len(h.listeners)
			h.mu.Unlock()
			if h.logger != nil {
				h.logger.Printf("job feed | listener detached, total=%d", n)
			}

		case evt := <-h.events:
			h.mu.RLock()
			targets := make([]*Client, 0, len(h.listeners))
			for c := range h.listeners {
				targets = append(targets, c)
			}
			h.mu.RUnlock()

			for _, c := range targets {
				select {
				case c.send <- evt:
				default:
					// Listener can't keep up; drop it, not the feed.
					h.detach <- c
				}
			}
		}
	}
}

func (h *Hub) Register(c *Client) {
	if h == nil {
		return
	}
	h.attach <- c
}

func (h *Hub) Unregister(c *Client) {
	if h == nil {
		return
	}
	h.detach <- c
}

// Broadcast queues one event for every listener. A full queue drops the
// event; the next extraction pass emits a fresh one anyway.
func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	select {
	case h.events <- message:
	default:
		if h.logger != nil {
			h.logger.Printf("job feed | event dropped, queue full")
		}
	}
}

func (h *Hub) ListenerCount() int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}
