package events

import "testing"

func TestSubscribeReceivesAllTypes(t *testing.T) {
	bus := NewBus()
	var got []EventType
	bus.Subscribe(func(evt Event) {
		got = append(got, evt.Type)
	})

	bus.Publish(New(EventCardUsed, 0, -1))
	bus.Publish(New(EventDamageApplied, 0, 1))

	if len(got) != 2 || got[0] != EventCardUsed || got[1] != EventDamageApplied {
		t.Fatalf("expected both events in order, got %v", got)
	}
}

func TestListenersRunInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var order []int
	for i := 0; i < 8; i++ {
		id := i
		bus.Subscribe(func(Event) { order = append(order, id) })
	}

	for run := 0; run < 10; run++ {
		order = order[:0]
		bus.Publish(New(EventCardUsed, 0, -1))
		for i, id := range order {
			if id != i {
				t.Fatalf("run %d: listener %d delivered at position %d", run, id, i)
			}
		}
		if len(order) != 8 {
			t.Fatalf("run %d: expected 8 deliveries, got %d", run, len(order))
		}
	}
}

func TestSubscribeTypedFilters(t *testing.T) {
	bus := NewBus()
	var hits int
	bus.SubscribeTyped(EventPlayerDied, func(Event) { hits++ })

	bus.Publish(New(EventCardUsed, 0, -1))
	bus.Publish(New(EventPlayerDied, 1, -1))
	bus.Publish(New(EventHealed, 1, -1))

	if hits != 1 {
		t.Fatalf("typed listener should fire once, fired %d times", hits)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()
	var allHits, typedHits int
	allHandle := bus.Subscribe(func(Event) { allHits++ })
	typedHandle := bus.SubscribeTyped(EventHealed, func(Event) { typedHits++ })

	bus.Publish(New(EventHealed, 0, -1))
	bus.Unsubscribe(allHandle)
	bus.Unsubscribe(typedHandle)
	bus.Publish(New(EventHealed, 0, -1))

	if allHits != 1 || typedHits != 1 {
		t.Fatalf("expected one delivery each, got all=%d typed=%d", allHits, typedHits)
	}
}

func TestPanickingListenerDoesNotStopOthers(t *testing.T) {
	bus := NewBus()
	var delivered bool
	bus.SubscribeTyped(EventDamageCreated, func(Event) {
		panic("listener bug")
	})
	bus.SubscribeTyped(EventDamageCreated, func(Event) {
		delivered = true
	})

	bus.Publish(New(EventDamageCreated, 0, 1))

	if !delivered {
		t.Fatalf("panic in one listener must not block the rest")
	}
}

func TestNilListenerRejected(t *testing.T) {
	bus := NewBus()
	if h := bus.Subscribe(nil); h != -1 {
		t.Fatalf("nil listener should not register, got handle %d", h)
	}
	if h := bus.SubscribeTyped(EventHealed, nil); h != -1 {
		t.Fatalf("nil typed listener should not register, got handle %d", h)
	}
}
