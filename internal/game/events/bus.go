// Package events provides the synchronous notification bus resolvers publish
// to. Subscribers are typically skill and equipment hooks; a panicking
// subscriber never aborts the publishing resolver.
package events

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType indicates the category of an engine event.
type EventType string

const (
	EventTurnBegin    EventType = "TURN_BEGIN"
	EventPhaseChanged EventType = "PHASE_CHANGED"

	EventCardUsed EventType = "CARD_USED"

	EventDamageCreated EventType = "DAMAGE_CREATED"
	EventDamageApplied EventType = "DAMAGE_APPLIED"

	EventResponseSuccess EventType = "RESPONSE_SUCCESS"
	EventNoResponse      EventType = "NO_RESPONSE"

	EventDyingStart EventType = "DYING_START"
	EventPlayerDied EventType = "PLAYER_DIED"
	EventHealed     EventType = "HEALED"
)

// Event represents a state change that other subsystems may react to.
type Event struct {
	Type       EventType
	ID         string
	Seat       int
	TargetSeat int
	Amount     int
	CardID     string
	CardName   string
	Data       map[string]string
	Timestamp  time.Time
}

// New creates an event with common fields populated.
func New(eventType EventType, seat, targetSeat int) Event {
	return Event{
		Type:       eventType,
		ID:         uuid.NewString(),
		Seat:       seat,
		TargetSeat: targetSeat,
		Data:       make(map[string]string),
		Timestamp:  time.Now(),
	}
}

// Listener is a callback reacting to incoming events.
type Listener func(Event)

type typedListener struct {
	handle    int
	eventType EventType
	callback  func(Event)
}

// Bus is a synchronous publish/subscribe implementation with type filtering.
// Publish is fire-and-forget: listener panics are recovered and dropped.
type Bus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	typedListeners map[EventType][]typedListener
	nextHandle     int
}

// NewBus constructs a fresh event bus instance.
func NewBus() *Bus {
	return &Bus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]typedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (b *Bus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	handle := b.nextHandle
	b.nextHandle++
	b.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (b *Bus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	handle := b.nextHandle
	b.nextHandle++
	b.typedListeners[eventType] = append(b.typedListeners[eventType], typedListener{
		handle:    handle,
		eventType: eventType,
		callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle.
func (b *Bus) Unsubscribe(handle int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.listeners, handle)
	for eventType, listeners := range b.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].handle == handle {
				b.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously, in
// subscription order. A panic inside one listener is swallowed; remaining
// listeners still run.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handles := make([]int, 0, len(b.listeners))
	for h := range b.listeners {
		handles = append(handles, h)
	}
	sort.Ints(handles)
	all := make([]Listener, len(handles))
	for i, h := range handles {
		all[i] = b.listeners[h]
	}
	typed := append([]typedListener(nil), b.typedListeners[event.Type]...)
	b.mu.RUnlock()

	for _, listener := range all {
		safeInvoke(func() { listener(event) })
	}
	for _, listener := range typed {
		safeInvoke(func() { listener.callback(event) })
	}
}

func safeInvoke(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}
