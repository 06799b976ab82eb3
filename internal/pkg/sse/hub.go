package sse

import (
	"sync"
)

// Event represents an SSE event to be sent to subscribers
type Event struct {
	Key   string
	Event string
	Data  interface{}
}

// Hub fans events out to subscribers by key. A subscriber may listen on
// several keys through one channel.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
	buffer      int
}

// NewHub creates a new SSE Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
		buffer:      16,
	}
}

// Subscribe registers one channel under every key and returns it with a
// cleanup function that unregisters and closes it.
func (h *Hub) Subscribe(keys ...string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, h.buffer)

	for _, key := range keys {
		if h.subscribers[key] == nil {
			h.subscribers[key] = make(map[chan Event]struct{})
		}
		h.subscribers[key][ch] = struct{}{}
	}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			for _, key := range keys {
				delete(h.subscribers[key], ch)
				if len(h.subscribers[key]) == 0 {
					delete(h.subscribers, key)
				}
			}
			close(ch)
		})
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of a key
func (h *Hub) Publish(key string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.Key = key
	for ch := range h.subscribers[key] {
		select {
		case ch <- event:
		default:
			// Skip if channel is full (non-blocking to prevent deadlock)
		}
	}
}
