// Package session wires an engine, a player, and the optional trace
// recorder and monitor into one playback session.
package session

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/Pallavi2687/cpu-scheduler-frontend/datarecording"
	"github.com/Pallavi2687/cpu-scheduler-frontend/monitoring"
	"github.com/Pallavi2687/cpu-scheduler-frontend/playback"
	"github.com/Pallavi2687/cpu-scheduler-frontend/timeline"
	"github.com/Pallavi2687/cpu-scheduler-frontend/timing"
	"github.com/Pallavi2687/cpu-scheduler-frontend/tracing"
)

// A Session owns everything needed to play schedules.
type Session struct {
	id string

	engine   timing.Engine
	serial   *timing.SerialEngine
	realTime *timing.RealTimeEngine

	player   *playback.Player
	recorder datarecording.DataRecorder
	tracer   *tracing.PlaybackTracer
	monitor  *monitoring.Monitor
	listener net.Listener

	completed chan uint64
}

// ID returns the unique ID of the session.
func (s *Session) ID() string {
	return s.id
}

// Engine returns the engine that drives the session.
func (s *Session) Engine() timing.Engine {
	return s.engine
}

// Player returns the player of the session.
func (s *Session) Player() *playback.Player {
	return s.player
}

// Recorder returns the trace recorder, or nil when tracing is off.
func (s *Session) Recorder() datarecording.DataRecorder {
	return s.recorder
}

// Monitor returns the monitor, or nil when monitoring is off.
func (s *Session) Monitor() *monitoring.Monitor {
	return s.monitor
}

// notifyCompletion runs in the engine context for every playback
// notification.
func (s *Session) notifyCompletion(ctx timing.HookCtx) {
	if ctx.Pos != playback.HookPosComplete {
		return
	}

	gen := ctx.Item.(playback.PlaybackState).Generation

	select {
	case <-s.completed:
	default:
	}
	s.completed <- gen
}

// Listen opens the monitor socket and returns the URL of the monitor page.
// Run serves it afterwards.
func (s *Session) Listen() (string, error) {
	if s.monitor == nil {
		return "", errors.New("session: monitoring is off")
	}

	if s.listener != nil {
		return monitoring.URL(s.listener), nil
	}

	l, err := s.monitor.Listen()
	if err != nil {
		return "", fmt.Errorf("session: %w", err)
	}
	s.listener = l

	url := monitoring.URL(l)
	fmt.Fprintf(os.Stderr, "Monitoring playback with %s\n", url)

	return url, nil
}

// Run drives the engine, and the monitor if Listen was called, until ctx is
// done. A virtual-time session returns as soon as no event is left.
func (s *Session) Run(ctx context.Context) error {
	if s.serial != nil {
		if err := ctx.Err(); err != nil {
			return nil
		}

		return s.serial.Run()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.realTime.Run(gctx)
	})

	if s.listener != nil {
		g.Go(func() error {
			return s.monitor.Serve(gctx, s.listener)
		})
	}

	err := g.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}

	return err
}

// Play starts the schedule and runs the session until the schedule is
// played to the end or ctx is done.
func (s *Session) Play(ctx context.Context, schedule timeline.Schedule) error {
	select {
	case <-s.completed:
	default:
	}

	if err := s.player.Start(schedule); err != nil {
		return err
	}
	gen := s.player.Observe().Generation

	if s.serial != nil {
		return s.Run(ctx)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.Run(runCtx)
	}()

	for {
		select {
		case g := <-s.completed:
			if g < gen {
				continue
			}
			cancel()
			return <-done
		case err := <-done:
			if err == nil {
				err = ctx.Err()
			}
			return err
		}
	}
}

// Terminate stops the playback, closes the monitor socket, and closes the
// trace recorder. It reports every failure.
func (s *Session) Terminate() error {
	var result *multierror.Error

	s.player.Stop()

	if s.listener != nil {
		err := s.listener.Close()
		if err != nil && !errors.Is(err, net.ErrClosed) {
			result = multierror.Append(result,
				fmt.Errorf("session: closing monitor: %w", err))
		}
	}

	if s.recorder != nil {
		if err := s.recorder.Close(); err != nil {
			result = multierror.Append(result,
				fmt.Errorf("session: closing trace: %w", err))
		}
	}

	return result.ErrorOrNil()
}
