package session

import (
	"io"
	"log"
	"time"

	"github.com/rs/xid"

	"github.com/Pallavi2687/cpu-scheduler-frontend/config"
	"github.com/Pallavi2687/cpu-scheduler-frontend/datarecording"
	"github.com/Pallavi2687/cpu-scheduler-frontend/monitoring"
	"github.com/Pallavi2687/cpu-scheduler-frontend/playback"
	"github.com/Pallavi2687/cpu-scheduler-frontend/timing"
	"github.com/Pallavi2687/cpu-scheduler-frontend/tracing"
)

// Builder can be used to build a session.
type Builder struct {
	virtualTime  bool
	speed        float64
	tickInterval time.Duration
	traceDB      string
	recorder     datarecording.DataRecorder
	monitorOn    bool
	monitorPort  int
	eventLog     io.Writer
	hooks        []timing.Hook
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		speed:        1,
		tickInterval: playback.DefaultTickInterval,
	}
}

// WithConfig copies the engine, playback, and tracing settings of cfg. The
// monitor stays off until WithMonitor is called.
func (b Builder) WithConfig(cfg config.Config) Builder {
	b.speed = cfg.Speed
	b.tickInterval = cfg.TickInterval
	b.traceDB = cfg.TraceDB
	b.monitorPort = cfg.MonitorPort

	return b
}

// WithVirtualTime drives the session with a serial engine that does not
// wait for the wall clock.
func (b Builder) WithVirtualTime() Builder {
	b.virtualTime = true
	return b
}

// WithSpeed sets the speed factor of the real-time engine.
func (b Builder) WithSpeed(speed float64) Builder {
	b.speed = speed
	return b
}

// WithTickInterval sets the time every block takes to animate.
func (b Builder) WithTickInterval(d time.Duration) Builder {
	b.tickInterval = d
	return b
}

// WithTraceDB records the playback into <path>.sqlite3.
func (b Builder) WithTraceDB(path string) Builder {
	b.traceDB = path
	return b
}

// WithRecorder records the playback into an existing recorder. It takes
// precedence over WithTraceDB.
func (b Builder) WithRecorder(r datarecording.DataRecorder) Builder {
	b.recorder = r
	return b
}

// WithMonitor turns on the monitoring server.
func (b Builder) WithMonitor() Builder {
	b.monitorOn = true
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithEventLog writes every engine event into w.
func (b Builder) WithEventLog(w io.Writer) Builder {
	b.eventLog = w
	return b
}

// WithHook adds a playback hook.
func (b Builder) WithHook(h timing.Hook) Builder {
	b.hooks = append(append([]timing.Hook(nil), b.hooks...), h)
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.virtualTime && b.speed <= 0 {
		panic("speed must be positive")
	}

	if b.tickInterval <= 0 {
		panic("tick interval must be positive")
	}
}

// Build builds the session.
func (b Builder) Build() *Session {
	b.parametersMustBeValid()

	s := &Session{
		id:        xid.New().String(),
		completed: make(chan uint64, 1),
	}

	if b.virtualTime {
		s.serial = timing.NewSerialEngine()
		s.engine = s.serial
	} else {
		s.realTime = timing.NewRealTimeEngine(b.speed)
		s.engine = s.realTime
	}

	if b.eventLog != nil {
		s.engine.AcceptHook(timing.NewEventLogger(log.New(b.eventLog, "", 0)))
	}

	pb := playback.MakeBuilder().
		WithEngine(s.engine).
		WithTickInterval(b.tickInterval).
		WithHook(timing.HookFunc(s.notifyCompletion))
	for _, h := range b.hooks {
		pb = pb.WithHook(h)
	}
	s.player = pb.Build("Player")

	switch {
	case b.recorder != nil:
		s.recorder = b.recorder
	case b.traceDB != "":
		s.recorder = datarecording.New(b.traceDB)
	}

	if s.recorder != nil {
		s.tracer = tracing.NewPlaybackTracer(s.engine, s.recorder)
		tracing.CollectTrace(s.player, s.tracer)
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor().WithPortNumber(b.monitorPort)
		s.monitor.RegisterEngine(s.engine)
		s.monitor.RegisterPlayer(s.player)
	}

	return s
}
