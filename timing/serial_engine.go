package timing

import (
	"fmt"
	"log"
	"math"
	"reflect"
	"sync"
)

// A SerialEngine is an Engine that runs events one after another on a virtual
// clock. Time only moves when events are handled or RunUntil is called, which
// makes it fully deterministic.
type SerialEngine struct {
	*HookableBase

	lock  sync.Mutex
	now   VTimeInSec
	queue *eventQueue

	singleRunLock sync.Mutex
}

// NewSerialEngine creates a SerialEngine.
func NewSerialEngine() *SerialEngine {
	return &SerialEngine{
		HookableBase: NewHookableBase(),
		queue:        newEventQueue(),
	}
}

// Schedule registers an event to happen in the future.
func (e *SerialEngine) Schedule(evt Event) Handle {
	e.lock.Lock()
	defer e.lock.Unlock()

	if evt.Time() < e.now {
		log.Panicf(
			"timing: cannot schedule event in the past, evt %s @ %.10f, now %.10f",
			reflect.TypeOf(evt), evt.Time(), e.now,
		)
	}

	e.queue.Push(evt)

	return evt.ID()
}

// Cancel removes a pending event.
func (e *SerialEngine) Cancel(h Handle) bool {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.queue.Remove(h)
}

// CurrentTime returns the time of the event being handled, or the time the
// engine stopped at.
func (e *SerialEngine) CurrentTime() VTimeInSec {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.now
}

// Pending returns the number of events that wait to be handled.
func (e *SerialEngine) Pending() int {
	e.lock.Lock()
	defer e.lock.Unlock()

	return e.queue.Len()
}

// Do runs fn immediately. The serial engine has a single caller, so the
// caller's context is the engine's context.
func (e *SerialEngine) Do(fn func()) {
	fn()
}

// Run processes all the events scheduled in the SerialEngine.
func (e *SerialEngine) Run() error {
	return e.RunUntil(VTimeInSec(math.Inf(1)))
}

// RunUntil processes every event scheduled no later than t, then moves the
// clock to t. With t = +Inf the clock stays at the last handled event.
func (e *SerialEngine) RunUntil(t VTimeInSec) error {
	e.singleRunLock.Lock()
	defer e.singleRunLock.Unlock()

	for {
		evt := e.popDue(t)
		if evt == nil {
			break
		}

		if err := e.dispatch(evt); err != nil {
			return err
		}
	}

	if !math.IsInf(float64(t), 1) {
		e.lock.Lock()
		if t > e.now {
			e.now = t
		}
		e.lock.Unlock()
	}

	return nil
}

func (e *SerialEngine) popDue(t VTimeInSec) Event {
	e.lock.Lock()
	defer e.lock.Unlock()

	next := e.queue.Peek()
	if next == nil || next.Time() > t {
		return nil
	}

	evt := e.queue.Pop()
	if evt.Time() < e.now {
		log.Panicf(
			"timing: cannot run event in the past, evt %s @ %.10f, now %.10f",
			reflect.TypeOf(evt), evt.Time(), e.now,
		)
	}
	e.now = evt.Time()

	return evt
}

func (e *SerialEngine) dispatch(evt Event) error {
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
