package broadcast

import (
	"sync"

	"github.com/google/uuid"

	"github.com/arbor-dev/arbor/internal/arborerrors"
	"github.com/arbor-dev/arbor/internal/debug"
)

// subscriberCapacity is the per-subscriber bounded channel size
// suggested by the fan-out design (§4.8).
const subscriberCapacity = 256

// Hub fans Messages out to every connected subscriber without ever
// blocking the writer (the re-indexer) on a slow reader: a subscriber
// that cannot keep up is reported via OnLag and dropped.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string]chan Message

	// OnLag, if set, is called whenever a subscriber is dropped for
	// falling behind.
	OnLag func(err *arborerrors.SubscriberLagError)
}

// NewHub creates an empty fan-out hub.
func NewHub() *Hub {
	return &Hub{subscribers: make(map[string]chan Message)}
}

// Subscribe registers a new subscriber, stamped with a uuid, and
// returns its id, its message channel, and an unsubscribe function the
// caller must call when the connection closes.
func (h *Hub) Subscribe() (string, <-chan Message, func()) {
	id := uuid.NewString()
	ch := make(chan Message, subscriberCapacity)

	h.mu.Lock()
	h.subscribers[id] = ch
	h.mu.Unlock()

	unsubscribe := func() {
		h.mu.Lock()
		if c, ok := h.subscribers[id]; ok {
			delete(h.subscribers, id)
			close(c)
		}
		h.mu.Unlock()
	}
	return id, ch, unsubscribe
}

// Publish fans msg out to every subscriber. A subscriber whose channel
// is full is dropped rather than allowed to block this call; dropping
// under lag is reported via OnLag and logged.
func (h *Hub) Publish(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, ch := range h.subscribers {
		select {
		case ch <- msg:
		default:
			lagErr := arborerrors.NewSubscriberLagError(id, 1)
			debug.LogBroadcast("subscriber %s lagged, dropping\n", id)
			if h.OnLag != nil {
				h.OnLag(lagErr)
			}
			delete(h.subscribers, id)
			close(ch)
		}
	}
}

// SubscriberCount reports how many subscribers are currently attached.
func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}
