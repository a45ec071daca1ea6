// Package playback animates a schedule block by block.
//
// A Player walks through the blocks of a timeline.Schedule in order. Every
// block with a positive duration takes the same wall-clock budget, the tick
// interval, and is split into one progress step per unit of logical
// duration. Zero-length blocks are skipped without ever becoming visible.
package playback

import (
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/Pallavi2687/cpu-scheduler-frontend/timeline"
	"github.com/Pallavi2687/cpu-scheduler-frontend/timing"
)

// A Player is the playback state machine.
//
// Start and Stop run inside the engine's execution context through
// Engine.Do, so they must not be called from a playback hook. Observe and the
// other getters can be called from any goroutine.
type Player struct {
	*timing.HookableBase

	name         string
	engine       timing.Engine
	tickInterval timing.VTimeInSec

	lock     sync.RWMutex
	schedule timeline.Schedule
	makespan float64
	state    PlaybackState

	steps      int
	blockStart timing.VTimeInSec
	pending    timing.Handle
}

// Name returns the name of the player.
func (p *Player) Name() string {
	return p.name
}

// TickInterval returns the engine time every block takes to animate.
func (p *Player) TickInterval() timing.VTimeInSec {
	return p.tickInterval
}

// Observe returns the current playback state.
func (p *Player) Observe() PlaybackState {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return p.state
}

// Phase returns the current phase.
func (p *Player) Phase() Phase {
	return p.Observe().Phase
}

// Schedule returns a copy of the schedule being played.
func (p *Player) Schedule() timeline.Schedule {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return p.schedule.Clone()
}

// Makespan returns the makespan of the schedule being played.
func (p *Player) Makespan() float64 {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return p.makespan
}

// Snapshot returns the schedule, its makespan, and the state, all read at
// the same instant.
func (p *Player) Snapshot() (timeline.Schedule, float64, PlaybackState) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return p.schedule.Clone(), p.makespan, p.state
}

// Start discards any playback in progress and starts playing s. A schedule
// with a malformed interval is rejected: the Player becomes Idle and the
// error wraps timeline.ErrMalformedInterval. When Start returns, the timer of
// the previous schedule is cancelled.
func (p *Player) Start(s timeline.Schedule) error {
	var err error

	p.engine.Do(func() {
		err = p.start(s)
	})

	return err
}

// Stop cancels the pending tick, if any, and freezes the playback. It is safe
// to call at any time, any number of times.
func (p *Player) Stop() {
	p.engine.Do(p.stop)
}

func (p *Player) start(s timeline.Schedule) error {
	p.cancelTick()

	if err := s.Validate(); err != nil {
		p.lock.Lock()
		p.schedule = nil
		p.makespan = 1
		p.state = PlaybackState{
			Phase:      PhaseIdle,
			Generation: p.state.Generation + 1,
		}
		p.lock.Unlock()

		err = fmt.Errorf("playback: schedule rejected: %w", err)
		p.publish(HookPosRejected, err)

		return err
	}

	schedule := s.Clone()

	p.lock.Lock()
	p.schedule = schedule
	p.makespan = timeline.Makespan(schedule)
	p.state = PlaybackState{
		Phase:      PhaseAnimating,
		Generation: p.state.Generation + 1,
	}
	p.lock.Unlock()

	p.enterBlock(0, true)

	return nil
}

func (p *Player) stop() {
	if !p.cancelTick() {
		return
	}

	p.lock.Lock()
	p.state.Phase = PhaseIdle
	p.lock.Unlock()

	p.publish(HookPosStop, nil)
}

// enterBlock makes the first block at or after index i that has a positive
// duration active. Zero-length blocks are passed over without any
// notification.
func (p *Player) enterBlock(i int, reset bool) {
	for i < len(p.schedule) && p.schedule[i].IsInstant() {
		i++
	}

	p.lock.Lock()
	p.state.ActiveIndex = i
	p.state.Progress = 0
	if i >= len(p.schedule) {
		p.state.Progress = 1
		p.state.Phase = PhaseComplete
	}
	p.lock.Unlock()

	if reset {
		p.publish(HookPosReset, p.schedule.Clone())
	}

	if i >= len(p.schedule) {
		p.publish(HookPosComplete, nil)
		return
	}

	p.steps = 0
	p.blockStart = p.engine.CurrentTime()
	p.publish(HookPosBlockStart, p.schedule[i])
	p.scheduleTick()
}

func (p *Player) scheduleTick() {
	block := p.schedule[p.state.ActiveIndex]
	offset := float64(p.steps+1) * float64(p.tickInterval) / block.Duration()
	tick := timing.MakeTickEvent(p, p.blockStart+timing.VTimeInSec(offset))

	p.pending = p.engine.Schedule(tick)
}

// cancelTick removes the pending tick and reports whether there was one.
func (p *Player) cancelTick() bool {
	if p.pending.IsZero() {
		return false
	}

	p.engine.Cancel(p.pending)
	p.pending = 0

	return true
}

// Handle advances the active block by one step.
func (p *Player) Handle(e timing.Event) error {
	if e.ID() != p.pending {
		log.Panicf("playback: %s received stale tick %s", p.name, e.ID())
	}
	p.pending = 0

	i := p.state.ActiveIndex
	block := p.schedule[i]
	p.steps++
	progress := math.Min(1, float64(p.steps)/block.Duration())

	p.lock.Lock()
	p.state.Progress = progress
	p.lock.Unlock()

	p.publish(HookPosProgress, block)

	if progress < 1 {
		p.scheduleTick()
		return nil
	}

	p.publish(HookPosBlockEnd, block)
	p.enterBlock(i+1, false)

	return nil
}

func (p *Player) publish(pos *timing.HookPos, detail any) {
	if p.NumHooks() == 0 {
		return
	}

	ctx := timing.HookCtx{
		Domain: p,
		Pos:    pos,
		Item:   p.Observe(),
		Detail: detail,
	}
	p.InvokeHook(ctx)
}
