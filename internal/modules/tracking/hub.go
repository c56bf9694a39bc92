// README: In-process fan-out of courier positions to order watchers.
package tracking

import (
	"sync"

	"fuelflow/internal/types"
)

// subscriptionBuffer bounds each watcher channel. When a slow watcher
// falls behind, older positions are dropped in favor of the newest.
const subscriptionBuffer = 8

// Subscription delivers position updates for one order. After Stop
// returns, no further value is delivered and Updates is closed.
type Subscription struct {
	hub     *Hub
	orderID types.ID
	ch      chan Position

	mu     sync.Mutex
	closed bool
}

func (s *Subscription) Updates() <-chan Position {
	return s.ch
}

func (s *Subscription) Stop() {
	s.hub.remove(s.orderID, s)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}

// deliver drops the oldest buffered position when the watcher lags.
// Holding s.mu here is what guarantees nothing lands after Stop.
func (s *Subscription) deliver(p Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for {
		select {
		case s.ch <- p:
			return
		default:
			select {
			case <-s.ch:
			default:
			}
		}
	}
}

// Hub routes position updates to per-order subscriptions.
type Hub struct {
	mu   sync.RWMutex
	subs map[types.ID]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[types.ID]map[*Subscription]struct{})}
}

func (h *Hub) Watch(orderID types.ID) *Subscription {
	sub := &Subscription{
		hub:     h,
		orderID: orderID,
		ch:      make(chan Position, subscriptionBuffer),
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[orderID] == nil {
		h.subs[orderID] = make(map[*Subscription]struct{})
	}
	h.subs[orderID][sub] = struct{}{}
	return sub
}

func (h *Hub) Publish(p Position) {
	if p.OrderID == "" {
		return
	}
	h.mu.RLock()
	targets := make([]*Subscription, 0, len(h.subs[p.OrderID]))
	for sub := range h.subs[p.OrderID] {
		targets = append(targets, sub)
	}
	h.mu.RUnlock()

	for _, sub := range targets {
		sub.deliver(p)
	}
}

func (h *Hub) remove(orderID types.ID, sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[orderID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, orderID)
		}
	}
}
