// README: Concurrency tests for order state transitions (run with -race).
package order

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestConcurrentConfirmVsCancel(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	o := mustPlace(t, svc)

	var wg sync.WaitGroup
	errs := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		errs <- svc.Transition(ctx, TransitionCommand{OrderID: o.ID, To: StatusConfirmed, ActorType: "dispatch"})
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		errs <- svc.Cancel(ctx, CancelCommand{OrderID: o.ID, ActorType: "customer", Reason: "race"})
	}()

	wg.Wait()
	close(errs)

	success := 0
	for err := range errs {
		if err == nil {
			success++
			continue
		}
		if !errors.Is(err, ErrConflict) && !errors.Is(err, ErrInvalidStateTransition) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	// Cancel after confirm is still legal, so both may succeed; the
	// optimistic lock only guarantees the transitions serialize.
	if success < 1 {
		t.Fatalf("expected at least 1 success, got %d", success)
	}

	got, err := svc.Get(ctx, o.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if got.Status != StatusConfirmed && got.Status != StatusCancelled {
		t.Fatalf("unexpected final status: %s", got.Status)
	}
}

func TestConcurrentDoubleConfirm(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	o := mustPlace(t, svc)

	const attempts = 6
	var wg sync.WaitGroup
	errs := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.Transition(ctx, TransitionCommand{OrderID: o.ID, To: StatusConfirmed, ActorType: "dispatch"})
		}()
	}

	wg.Wait()
	close(errs)

	success := 0
	for err := range errs {
		if err == nil {
			success++
			continue
		}
		if !errors.Is(err, ErrConflict) && !errors.Is(err, ErrInvalidStateTransition) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if success != 1 {
		t.Fatalf("expected exactly 1 successful confirm, got %d", success)
	}
	assertStatus(t, svc, o.ID, StatusConfirmed)
}
