package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherPublishesToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var seen []int64
	d.Subscribe(EventRentalCreated, func(_ context.Context, e Event) error {
		payload := e.Payload.(RentalCreatedPayload)
		seen = append(seen, payload.RentalID)
		return nil
	})
	d.Subscribe(EventRentalFinished, func(_ context.Context, _ Event) error {
		t.Fatal("handler for another event type invoked")
		return nil
	})

	err := d.Publish(context.Background(), Event{
		Type:    EventRentalCreated,
		Payload: RentalCreatedPayload{RentalID: 3},
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(seen) != 1 || seen[0] != 3 {
		t.Fatalf("expected payload delivered, got %v", seen)
	}
}

func TestDispatcherContinuesPastFailingHandler(t *testing.T) {
	d := NewInMemoryDispatcher()

	var called bool
	d.Subscribe(EventUserRegistered, func(_ context.Context, _ Event) error {
		return errors.New("handler failure")
	})
	d.Subscribe(EventUserRegistered, func(_ context.Context, _ Event) error {
		called = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventUserRegistered}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !called {
		t.Fatal("expected later handler to run despite earlier failure")
	}
}
