package timing

import (
	"github.com/Pallavi2687/cpu-scheduler-frontend/idgen"
)

// VTimeInSec defines the engine time in the unit of second.
type VTimeInSec float64

// Handle identifies one scheduled event. It is returned by Schedule and is the
// only way to cancel that event.
type Handle = idgen.ID

var eventIDs = idgen.New()

// An Event is something going to happen in the future.
type Event interface {
	// ID returns the handle of the event.
	ID() Handle

	// Time returns the time that the event should happen.
	Time() VTimeInSec

	// Handler returns the handler that should handle the event.
	Handler() Handler
}

// A Handler defines a domain for the events.
//
// One event is always constrained to one Handler, which means the event can
// only be scheduled by one handler and can only directly modify that handler.
type Handler interface {
	Handle(e Event) error
}

// EventBase provides the basic fields and getters for other events.
type EventBase struct {
	id      Handle
	time    VTimeInSec
	handler Handler
}

// NewEventBase creates a new EventBase with a fresh handle.
func NewEventBase(t VTimeInSec, handler Handler) *EventBase {
	e := new(EventBase)
	e.id = eventIDs.Generate()
	e.time = t
	e.handler = handler

	return e
}

// ID returns the handle of the event.
func (e EventBase) ID() Handle {
	return e.id
}

// Time returns the time that the event is going to happen.
func (e EventBase) Time() VTimeInSec {
	return e.time
}

// Handler returns the handler to handle the event.
func (e EventBase) Handler() Handler {
	return e.handler
}

// TickEvent is a generic event that a handler schedules for itself to update
// its state periodically.
type TickEvent struct {
	EventBase
}

// MakeTickEvent creates a new TickEvent.
func MakeTickEvent(handler Handler, time VTimeInSec) TickEvent {
	evt := TickEvent{}
	evt.id = eventIDs.Generate()
	evt.handler = handler
	evt.time = time

	return evt
}

// FuncEvent runs a function when it is handled. It is mostly used to script
// external actions at a given time.
type FuncEvent struct {
	EventBase
	fn func(now VTimeInSec)
}

// NewFuncEvent creates an event that calls fn at time t.
func NewFuncEvent(t VTimeInSec, fn func(now VTimeInSec)) *FuncEvent {
	evt := &FuncEvent{fn: fn}
	evt.id = eventIDs.Generate()
	evt.time = t
	evt.handler = evt

	return evt
}

// Handle calls the wrapped function.
func (e *FuncEvent) Handle(_ Event) error {
	e.fn(e.time)
	return nil
}
