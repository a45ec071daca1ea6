package cmd

import (
	"fmt"
	"io"
	"sync"

	"github.com/Pallavi2687/cpu-scheduler-frontend/layout"
	"github.com/Pallavi2687/cpu-scheduler-frontend/playback"
	"github.com/Pallavi2687/cpu-scheduler-frontend/render"
	"github.com/Pallavi2687/cpu-scheduler-frontend/timing"
)

const clearScreen = "\033[H\033[2J"

// terminalView is a playback hook that redraws the track on every
// notification.
type terminalView struct {
	lock   sync.Mutex
	out    io.Writer
	text   *render.Text
	player *playback.Player
	clear  bool
}

func newTerminalView(out io.Writer, width int, player *playback.Player) *terminalView {
	v := &terminalView{
		out:    out,
		text:   render.NewText(width),
		player: player,
		clear:  true,
	}
	player.AcceptHook(v)

	return v
}

func (v *terminalView) Func(ctx timing.HookCtx) {
	state, ok := ctx.Item.(playback.PlaybackState)
	if !ok {
		return
	}

	if ctx.Pos == playback.HookPosRejected {
		return
	}

	schedule, makespan, _ := v.player.Snapshot()
	frame := layout.Project(schedule, makespan, state)

	v.lock.Lock()
	defer v.lock.Unlock()

	if v.clear {
		fmt.Fprint(v.out, clearScreen)
	}

	if err := v.text.Render(v.out, frame); err != nil {
		fmt.Fprintf(v.out, "render: %v\n", err)
	}
}
