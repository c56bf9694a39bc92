// README: Tracking service handles high-frequency courier updates.
package tracking

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"fuelflow/internal/modules/address"
	"fuelflow/internal/types"
)

// snapshotInterval throttles durable snapshot writes per courier. The
// live position in Redis and the watcher fan-out update on every call.
const snapshotInterval = 30 * time.Second

type Service struct {
	store *Store
	hub   *Hub
	log   *zap.Logger

	mu            sync.Mutex
	lastSnapshots map[types.ID]time.Time
}

func NewService(store *Store, hub *Hub, log *zap.Logger) *Service {
	return &Service{
		store:         store,
		hub:           hub,
		log:           log,
		lastSnapshots: make(map[types.ID]time.Time),
	}
}

type Update struct {
	CourierID  types.ID
	OrderID    types.ID
	Coordinate types.Coordinate
}

// UpdatePosition records the courier's latest position. Last write
// wins; an out-of-order earlier position simply gets overwritten by the
// next report.
func (s *Service) UpdatePosition(ctx context.Context, u Update) error {
	if err := address.ValidateCoordinates(u.Coordinate); err != nil {
		return err
	}
	if err := s.store.SetPosition(ctx, u.CourierID, u.Coordinate); err != nil {
		return err
	}

	now := time.Now()
	pos := Position{
		CourierID:  u.CourierID,
		OrderID:    u.OrderID,
		Coordinate: u.Coordinate,
		RecordedAt: now,
	}
	s.hub.Publish(pos)

	if s.shouldSnapshot(u.CourierID, now) {
		snap := Snapshot{
			CourierID:  u.CourierID,
			Coordinate: u.Coordinate,
			RecordedAt: now,
		}
		if u.OrderID != "" {
			id := u.OrderID
			snap.OrderID = &id
		}
		if err := s.store.AppendSnapshot(ctx, snap); err != nil {
			// Losing one trail row is tolerable; the live stream is not.
			s.log.Warn("snapshot write failed",
				zap.String("courier_id", string(u.CourierID)),
				zap.Error(err))
		}
	}
	return nil
}

func (s *Service) shouldSnapshot(id types.ID, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if last, ok := s.lastSnapshots[id]; ok && now.Sub(last) < snapshotInterval {
		return false
	}
	s.lastSnapshots[id] = now
	return true
}

// Watch subscribes to live positions for an order.
func (s *Service) Watch(orderID types.ID) *Subscription {
	return s.hub.Watch(orderID)
}

func (s *Service) NearbyCouriers(ctx context.Context, p types.Coordinate, radiusMiles float64) ([]types.ID, error) {
	return s.store.NearbyCouriers(ctx, p, radiusMiles)
}

func (s *Service) RemoveCourier(ctx context.Context, id types.ID) error {
	return s.store.RemoveCourier(ctx, id)
}
