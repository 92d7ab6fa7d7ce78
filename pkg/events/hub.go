// Package events fans out session progress to any number of listeners.
package events

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// Hub broadcasts events to its subscribers. A nil *Hub is valid: it drops
// everything published to it and hands out closed channels.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

func NewHub() *Hub { return &Hub{subs: make(map[chan Event]struct{})} }

func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, 16)
	if h == nil {
		close(ch)
		return ch
	}
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan Event) {
	if h == nil {
		return
	}
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Close unsubscribes everyone, closing their channels.
func (h *Hub) Close() {
	if h == nil {
		return
	}
	h.mu.Lock()
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

func (h *Hub) Publish(name string, payload any) {
	if h == nil {
		return
	}
	b, err := json.Marshal(payload)
	if err != nil {
		logrus.WithError(err).Warnf("failed to encode %s event", name)
		return
	}
	msg := Event{Name: name, Data: b}
	h.mu.RLock()
	for ch := range h.subs {
		// Non-blocking send; drop if subscriber is slow
		select {
		case ch <- msg:
		default:
		}
	}
	h.mu.RUnlock()
}
