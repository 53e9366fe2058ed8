package eventbus

import "testing"

func TestBus_PublishReachesAllSubscribers(t *testing.T) {
	bus := New()
	a := bus.Subscribe()
	b := bus.Subscribe()
	bus.Publish("schedule-ready")
	for _, ch := range []<-chan Event{a, b} {
		if got := <-ch; got != "schedule-ready" {
			t.Fatalf("expected schedule-ready, got %v", got)
		}
	}
}

func TestBus_SlowSubscriberDropsExcessEvents(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	for i := 0; i < subscriberBuffer+5; i++ {
		bus.Publish(i)
	}
	if got := len(ch); got != subscriberBuffer {
		t.Fatalf("expected %d buffered events, got %d", subscriberBuffer, got)
	}
}

func TestBus_UnsubscribeClosesChannel(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	bus.Unsubscribe(ch)
	if _, ok := <-ch; ok {
		t.Fatal("expected channel closed after Unsubscribe")
	}
	// Publishing after removal must not panic.
	bus.Publish("late")
}

func TestBus_Close(t *testing.T) {
	bus := New()
	a := bus.Subscribe()
	b := bus.Subscribe()
	bus.Close()
	if _, ok := <-a; ok {
		t.Fatal("expected first channel closed")
	}
	if _, ok := <-b; ok {
		t.Fatal("expected second channel closed")
	}
	// All operations are no-ops on a closed bus.
	bus.Publish("late")
	if _, ok := <-bus.Subscribe(); ok {
		t.Fatal("expected subscription on a closed bus to be closed")
	}
	bus.Unsubscribe(a)
	bus.Close()
}
