package realtime

import (
	"sync"

	"github.com/taskforge/backend/internal/domain"
)

const subscriberBuffer = 16

// Hub fans notifications out to the live connections of each user. A user
// may hold several subscriptions at once (multiple tabs, one websocket and
// one event stream).
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan *domain.Notification]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan *domain.Notification]struct{}),
	}
}

// Subscribe registers a channel for the user's notifications. The returned
// cancel func must be called when the connection closes; it is safe to call
// more than once.
func (h *Hub) Subscribe(userID string) (<-chan *domain.Notification, func()) {
	ch := make(chan *domain.Notification, subscriberBuffer)

	h.mu.Lock()
	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[chan *domain.Notification]struct{})
	}
	h.subscribers[userID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers[userID], ch)
			if len(h.subscribers[userID]) == 0 {
				delete(h.subscribers, userID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}

	return ch, cancel
}

// Publish delivers the notification to every live subscription of the user.
// Slow consumers are skipped rather than blocking the publisher.
func (h *Hub) Publish(userID string, notification *domain.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers[userID] {
		select {
		case ch <- notification:
		default:
		}
	}
}

// Subscribers reports the number of live subscriptions for a user.
func (h *Hub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[userID])
}
