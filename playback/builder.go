package playback

import (
	"log"
	"time"

	"github.com/Pallavi2687/cpu-scheduler-frontend/timing"
)

// DefaultTickInterval is the wall-clock time each block takes to animate.
const DefaultTickInterval = 600 * time.Millisecond

// Builder can build Players.
type Builder struct {
	engine       timing.Engine
	tickInterval time.Duration
	hooks        []timing.Hook
}

// MakeBuilder returns a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		tickInterval: DefaultTickInterval,
	}
}

// WithEngine sets the engine that drives the ticks.
func (b Builder) WithEngine(engine timing.Engine) Builder {
	b.engine = engine
	return b
}

// WithTickInterval sets how long every block takes to animate.
func (b Builder) WithTickInterval(d time.Duration) Builder {
	b.tickInterval = d
	return b
}

// WithHook registers a hook on every Player built.
func (b Builder) WithHook(h timing.Hook) Builder {
	b.hooks = append(append([]timing.Hook(nil), b.hooks...), h)
	return b
}

// Build creates a Player.
func (b Builder) Build(name string) *Player {
	if b.engine == nil {
		log.Panic("playback: engine is not set")
	}

	if b.tickInterval <= 0 {
		log.Panicf("playback: tick interval must be positive, got %s",
			b.tickInterval)
	}

	p := &Player{
		HookableBase: timing.NewHookableBase(),
		name:         name,
		engine:       b.engine,
		tickInterval: timing.VTimeInSec(b.tickInterval.Seconds()),
		makespan:     1,
	}

	for _, h := range b.hooks {
		p.AcceptHook(h)
	}

	return p
}
