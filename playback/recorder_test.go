package playback

import (
	"fmt"
	"sync"

	"github.com/Pallavi2687/cpu-scheduler-frontend/timeline"
	"github.com/Pallavi2687/cpu-scheduler-frontend/timing"
	"go.uber.org/mock/gomock"
)

type notification struct {
	pos   *timing.HookPos
	time  timing.VTimeInSec
	state PlaybackState
	block timeline.Interval
}

// notificationLog is a hook that remembers everything a Player publishes.
type notificationLog struct {
	lock    sync.Mutex
	engine  timing.TimeTeller
	entries []notification
}

func (l *notificationLog) Func(ctx timing.HookCtx) {
	n := notification{
		pos:   ctx.Pos,
		time:  l.engine.CurrentTime(),
		state: ctx.Item.(PlaybackState),
	}
	if iv, ok := ctx.Detail.(timeline.Interval); ok {
		n.block = iv
	}

	l.lock.Lock()
	defer l.lock.Unlock()
	l.entries = append(l.entries, n)
}

func (l *notificationLog) at(pos *timing.HookPos) []notification {
	l.lock.Lock()
	defer l.lock.Unlock()

	var out []notification
	for _, n := range l.entries {
		if n.pos == pos {
			out = append(out, n)
		}
	}

	return out
}

func (l *notificationLog) all() []notification {
	l.lock.Lock()
	defer l.lock.Unlock()

	return append([]notification(nil), l.entries...)
}

type hookPosMatcher struct {
	pos *timing.HookPos
}

func hookAt(pos *timing.HookPos) gomock.Matcher {
	return hookPosMatcher{pos: pos}
}

func (m hookPosMatcher) Matches(x any) bool {
	ctx, ok := x.(timing.HookCtx)
	return ok && ctx.Pos == m.pos
}

func (m hookPosMatcher) String() string {
	return fmt.Sprintf("is a hook at %s", m.pos.Name)
}
