package tracking

import (
	"sync"
	"testing"
	"time"

	"fuelflow/internal/types"
)

func position(orderID types.ID, lat float64) Position {
	return Position{
		CourierID:  "c1",
		OrderID:    orderID,
		Coordinate: types.Coordinate{Latitude: lat, Longitude: -74.0},
		RecordedAt: time.Now(),
	}
}

func TestHubDeliversToWatchers(t *testing.T) {
	hub := NewHub()
	sub := hub.Watch("o1")
	defer sub.Stop()

	hub.Publish(position("o1", 40.71))

	select {
	case p := <-sub.Updates():
		if p.Coordinate.Latitude != 40.71 {
			t.Errorf("latitude = %v, want 40.71", p.Coordinate.Latitude)
		}
	case <-time.After(time.Second):
		t.Fatal("no delivery within 1s")
	}
}

func TestHubIsolatesOrders(t *testing.T) {
	hub := NewHub()
	sub := hub.Watch("o1")
	defer sub.Stop()

	hub.Publish(position("o2", 40.71))

	select {
	case p := <-sub.Updates():
		t.Fatalf("unexpected delivery for another order: %+v", p)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubDropsOldestWhenLagging(t *testing.T) {
	hub := NewHub()
	sub := hub.Watch("o1")
	defer sub.Stop()

	// Overfill the buffer without draining.
	for i := 0; i < subscriptionBuffer*3; i++ {
		hub.Publish(position("o1", float64(i)))
	}

	// The newest position must still be present.
	var last Position
	drained := 0
	for {
		select {
		case p := <-sub.Updates():
			last = p
			drained++
			continue
		default:
		}
		break
	}
	if drained == 0 || drained > subscriptionBuffer {
		t.Fatalf("drained %d positions, want 1..%d", drained, subscriptionBuffer)
	}
	if last.Coordinate.Latitude != float64(subscriptionBuffer*3-1) {
		t.Errorf("last latitude = %v, want newest %v", last.Coordinate.Latitude, float64(subscriptionBuffer*3-1))
	}
}

// TestNoDeliveryAfterStop hammers Publish concurrently with Stop; any
// send after Stop returns would be a send on a closed channel and panic.
func TestNoDeliveryAfterStop(t *testing.T) {
	hub := NewHub()

	for i := 0; i < 50; i++ {
		sub := hub.Watch("o1")

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				hub.Publish(position("o1", float64(j)))
			}
		}()

		sub.Stop()
		wg.Wait()

		// Values buffered before Stop may still drain, but the channel
		// must end closed; a publish racing past Stop would have
		// panicked on the closed channel above.
		deadline := time.After(time.Second)
		for open := true; open; {
			select {
			case _, ok := <-sub.Updates():
				open = ok
			case <-deadline:
				t.Fatal("channel never closed after Stop")
			}
		}
	}
}

func TestStopIsIdempotent(t *testing.T) {
	hub := NewHub()
	sub := hub.Watch("o1")
	sub.Stop()
	sub.Stop()
}
