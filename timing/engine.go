// Package timing provides the timer facility that drives playback.
//
// Work is expressed as events scheduled at a time on an Engine. All handlers
// of one engine run in a single execution context: an engine never handles two
// events at the same time, and external code that needs to touch
// handler-owned state does so through Do.
package timing

// TimeTeller can be used to get the current time.
type TimeTeller interface {
	CurrentTime() VTimeInSec
}

// EventScheduler can be used to schedule and cancel future events.
type EventScheduler interface {
	// Schedule registers an event and returns its handle. Scheduling an event
	// earlier than the current time panics.
	Schedule(e Event) Handle

	// Cancel removes a pending event. It returns false if the handle does not
	// name a pending event, for example because it already fired or was
	// already cancelled. A cancelled event is never handled.
	Cancel(h Handle) bool
}

// An Engine keeps the event loop running.
type Engine interface {
	Hookable
	TimeTeller
	EventScheduler

	// Do runs fn in the engine's execution context. No event is handled while
	// fn runs. Do must not be called from inside an event handler.
	Do(fn func())
}
