// Package tracing records what a Player does into a data recorder.
package tracing

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/Pallavi2687/cpu-scheduler-frontend/datarecording"
	"github.com/Pallavi2687/cpu-scheduler-frontend/playback"
	"github.com/Pallavi2687/cpu-scheduler-frontend/timeline"
	"github.com/Pallavi2687/cpu-scheduler-frontend/timing"
)

// Table names used by the PlaybackTracer.
const (
	TraceTable = "playback_trace"
	BlockTable = "playback_blocks"
)

// TraceEntry is one playback notification.
type TraceEntry struct {
	Generation  uint64
	Time        float64
	Event       string
	ActiveIndex int
	Progress    float64
	PID         int
}

// BlockEntry is one block that was played to the end.
type BlockEntry struct {
	Generation uint64
	Index      int
	PID        int
	Start      float64
	End        float64
	StartTime  float64
	EndTime    float64
}

// NamedHookable is a hookable with a name.
type NamedHookable interface {
	timing.Hookable
	Name() string
}

// PlaybackTracer is a playback hook that stores every notification and the
// wall-clock span of every completed block.
type PlaybackTracer struct {
	lock       sync.Mutex
	timeTeller timing.TimeTeller
	backend    datarecording.DataRecorder
	open       *BlockEntry
}

// NewPlaybackTracer creates a tracer and the tables it writes to.
func NewPlaybackTracer(
	timeTeller timing.TimeTeller,
	backend datarecording.DataRecorder,
) *PlaybackTracer {
	backend.CreateTable(TraceTable, TraceEntry{})
	backend.CreateTable(BlockTable, BlockEntry{})

	return &PlaybackTracer{
		timeTeller: timeTeller,
		backend:    backend,
	}
}

// CollectTrace lets the tracer record the notifications of a domain.
func CollectTrace(domain NamedHookable, tracer *PlaybackTracer) {
	for _, hook := range domain.Hooks() {
		if hook == timing.Hook(tracer) {
			panic(fmt.Sprintf(
				"domain %s already has tracer %s",
				domain.Name(), reflect.TypeOf(tracer)))
		}
	}

	domain.AcceptHook(tracer)
}

// Func records a playback notification.
func (t *PlaybackTracer) Func(ctx timing.HookCtx) {
	state, ok := ctx.Item.(playback.PlaybackState)
	if !ok {
		return
	}

	now := float64(t.timeTeller.CurrentTime())
	pid := -1
	block, hasBlock := ctx.Detail.(timeline.Interval)
	if hasBlock {
		pid = block.PID
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	t.backend.InsertData(TraceTable, TraceEntry{
		Generation:  state.Generation,
		Time:        now,
		Event:       ctx.Pos.Name,
		ActiveIndex: state.ActiveIndex,
		Progress:    state.Progress,
		PID:         pid,
	})

	switch ctx.Pos {
	case playback.HookPosBlockStart:
		t.open = &BlockEntry{
			Generation: state.Generation,
			Index:      state.ActiveIndex,
			PID:        block.PID,
			Start:      block.Start,
			End:        block.End,
			StartTime:  now,
		}
	case playback.HookPosBlockEnd:
		if t.open == nil || t.open.Generation != state.Generation {
			return
		}

		entry := *t.open
		entry.EndTime = now
		t.backend.InsertData(BlockTable, entry)
		t.open = nil
	case playback.HookPosReset, playback.HookPosStop, playback.HookPosRejected:
		t.open = nil
	}
}
