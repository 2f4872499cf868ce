package stream

import (
	"context"
	"sync"
	"time"
)

// Share event actions.
const (
	ActionShared  = "shared"
	ActionUpdated = "updated"
	ActionRevoked = "revoked"
)

// ShareEvent describes a share grant lifecycle change for live dashboards.
type ShareEvent struct {
	Action    string    `json:"action"`
	HomeID    string    `json:"homeId"`
	BuyerID   string    `json:"buyerId"`
	Scope     []string  `json:"scope"`
	Timestamp time.Time `json:"timestamp"`
}

// Stream fan-outs share events to all active subscribers (SSE clients).
type Stream struct {
	mu   sync.RWMutex
	subs map[int]chan ShareEvent
	next int
}

// New initialises an empty stream.
func New() *Stream {
	return &Stream{subs: make(map[int]chan ShareEvent)}
}

// Subscribe registers a subscriber and returns a channel which will receive
// events. The channel is closed when the provided context ends.
func (s *Stream) Subscribe(ctx context.Context) <-chan ShareEvent {
	ch := make(chan ShareEvent, 16)

	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

// Publish fan-outs the event to all subscribers.
func (s *Stream) Publish(evt ShareEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- evt:
		default:
			// Drop when subscriber is slow to avoid blocking.
		}
	}
}
