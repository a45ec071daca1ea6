package timing

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"sync"
	"time"
)

// A RealTimeEngine handles events when the wall clock reaches their time.
// Engine time is the number of seconds since the engine was created,
// multiplied by the speed factor.
//
// Events are handled one at a time on the goroutine that calls Run. Do holds
// the same dispatch lock, so code running inside Do never interleaves with a
// handler, and an event cancelled inside Do can never be handled afterwards.
type RealTimeEngine struct {
	*HookableBase

	lock     sync.Mutex
	queue    *eventQueue
	origin   time.Time
	speed    float64
	last     VTimeInSec
	inEvent  bool
	wakeUp   chan struct{}
	nowFunc  func() time.Time
	dispatch sync.Mutex
}

// NewRealTimeEngine creates a RealTimeEngine whose clock starts now. A speed
// of 2 makes engine time pass twice as fast as wall time.
func NewRealTimeEngine(speed float64) *RealTimeEngine {
	if speed <= 0 {
		log.Panicf("timing: speed must be positive, got %g", speed)
	}

	return &RealTimeEngine{
		HookableBase: NewHookableBase(),
		queue:        newEventQueue(),
		origin:       time.Now(),
		speed:        speed,
		wakeUp:       make(chan struct{}, 1),
		nowFunc:      time.Now,
	}
}

// CurrentTime returns the time of the event being handled. Outside of a
// handler it returns the wall clock converted to engine time, never going
// back before the last handled event.
func (e *RealTimeEngine) CurrentTime() VTimeInSec {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.currentTimeLocked()
}

func (e *RealTimeEngine) currentTimeLocked() VTimeInSec {
	if e.inEvent {
		return e.last
	}

	t := e.wallToEngine(e.nowFunc())
	if t < e.last {
		return e.last
	}

	return t
}

func (e *RealTimeEngine) wallToEngine(w time.Time) VTimeInSec {
	return VTimeInSec(w.Sub(e.origin).Seconds() * e.speed)
}

func (e *RealTimeEngine) engineToWall(t VTimeInSec) time.Time {
	return e.origin.Add(time.Duration(float64(t) / e.speed * float64(time.Second)))
}

// Schedule registers an event to happen in the future.
func (e *RealTimeEngine) Schedule(evt Event) Handle {
	e.lock.Lock()
	if evt.Time() < e.last {
		e.lock.Unlock()
		log.Panicf(
			"timing: cannot schedule event in the past, evt %s @ %.10f, now %.10f",
			reflect.TypeOf(evt), evt.Time(), e.last,
		)
	}
	e.queue.Push(evt)
	e.lock.Unlock()

	e.wake()

	return evt.ID()
}

// Cancel removes a pending event.
func (e *RealTimeEngine) Cancel(h Handle) bool {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.queue.Remove(h)
}

// Pending returns the number of events that wait to be handled.
func (e *RealTimeEngine) Pending() int {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.queue.Len()
}

// Do runs fn while holding the dispatch lock.
func (e *RealTimeEngine) Do(fn func()) {
	e.dispatch.Lock()
	defer e.dispatch.Unlock()

	fn()
}

func (e *RealTimeEngine) wake() {
	select {
	case e.wakeUp <- struct{}{}:
	default:
	}
}

// Run handles events as they become due until ctx is done. It returns
// ctx.Err() on cancellation, or the first error returned by a handler.
func (e *RealTimeEngine) Run(ctx context.Context) error {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		wait, hasEvent := e.untilNextEvent()

		if hasEvent && wait <= 0 {
			if err := e.dispatchDue(); err != nil {
				return err
			}

			continue
		}

		var fire <-chan time.Time
		if hasEvent {
			timer.Reset(wait)
			fire = timer.C
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.wakeUp:
		case <-fire:
		}

		if hasEvent && !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
	}
}

func (e *RealTimeEngine) untilNextEvent() (time.Duration, bool) {
	e.lock.Lock()
	defer e.lock.Unlock()

	next := e.queue.Peek()
	if next == nil {
		return 0, false
	}

	return e.engineToWall(next.Time()).Sub(e.nowFunc()), true
}

func (e *RealTimeEngine) dispatchDue() error {
	e.dispatch.Lock()
	defer e.dispatch.Unlock()

	evt := e.popDue()
	if evt == nil {
		return nil
	}

	defer func() {
		e.lock.Lock()
		e.inEvent = false
		e.lock.Unlock()
	}()

	hookCtx := HookCtx{
		Domain: e,
		Pos:    HookPosBeforeEvent,
		Item:   evt,
	}
	e.InvokeHook(hookCtx)

	if err := evt.Handler().Handle(evt); err != nil {
		return fmt.Errorf("timing: handling %s @ %.10f: %w",
			reflect.TypeOf(evt), evt.Time(), err)
	}

	hookCtx.Pos = HookPosAfterEvent
	e.InvokeHook(hookCtx)

	return nil
}

// popDue re-checks the queue under the dispatch lock, so an event cancelled
// while the loop was waiting is not handled.
func (e *RealTimeEngine) popDue() Event {
	e.lock.Lock()
	defer e.lock.Unlock()

	next := e.queue.Peek()
	if next == nil || e.engineToWall(next.Time()).After(e.nowFunc()) {
		return nil
	}

	evt := e.queue.Pop()
	if evt.Time() > e.last {
		e.last = evt.Time()
	}
	e.inEvent = true

	return evt
}
