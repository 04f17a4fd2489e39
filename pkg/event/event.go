// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Common event types
const (
	StateChanged      Type = "state_changed"
	BoostDepleted     Type = "boost_depleted"
	BoostRearmed      Type = "boost_rearmed"
	SceneReloaded     Type = "scene_reloaded"
	SimulationStarted Type = "simulation_started"
	SimulationStopped Type = "simulation_stopped"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription is returned by Subscribe; calling Cancel removes the handler
type Subscription struct {
	ID     uint64
	Type   Type
	Cancel func()
}

type registeredHandler struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registeredHandler
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registeredHandler),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registeredHandler{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Type:   eventType,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

// unsubscribe removes the handler with the given subscription id
func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.handlers[eventType]
	for i, h := range handlers {
		if h.id == id {
			b.handlers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
			break
		}
	}
	if len(b.handlers[eventType]) == 0 {
		delete(b.handlers, eventType)
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := append([]registeredHandler(nil), b.handlers[event.GetType()]...)
	b.mu.RUnlock()

	for _, h := range handlers {
		h.handler(event)
	}
}

// Specific event implementations

// StateChangeEvent is published when the glide state machine switches state
type StateChangeEvent struct {
	BaseEvent
	From string
	To   string
	Tick uint64
}

// NewStateChangeEvent creates a new state change event
func NewStateChangeEvent(source interface{}, from, to string, tick uint64) *StateChangeEvent {
	return &StateChangeEvent{
		BaseEvent: BaseEvent{
			EventType: StateChanged,
			Source:    source,
		},
		From: from,
		To:   to,
		Tick: tick,
	}
}

// BoostEvent carries the charge at the moment boost was depleted or re-armed
type BoostEvent struct {
	BaseEvent
	Charge float64
	Tick   uint64
}

// NewBoostEvent creates a new boost event
func NewBoostEvent(eventType Type, source interface{}, charge float64, tick uint64) *BoostEvent {
	return &BoostEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Charge: charge,
		Tick:   tick,
	}
}
