package playback

import "github.com/Pallavi2687/cpu-scheduler-frontend/timing"

// Hook positions raised by a Player. For every position, HookCtx.Item is the
// PlaybackState after the change.
var (
	// HookPosReset is raised when a schedule is accepted. Detail is the
	// accepted timeline.Schedule.
	HookPosReset = &timing.HookPos{Name: "PlaybackReset"}

	// HookPosBlockStart is raised when a block with a positive duration
	// becomes active. Detail is the timeline.Interval.
	HookPosBlockStart = &timing.HookPos{Name: "PlaybackBlockStart"}

	// HookPosProgress is raised on every tick. Detail is the
	// timeline.Interval.
	HookPosProgress = &timing.HookPos{Name: "PlaybackProgress"}

	// HookPosBlockEnd is raised after the tick that brings a block to full
	// progress. Detail is the timeline.Interval.
	HookPosBlockEnd = &timing.HookPos{Name: "PlaybackBlockEnd"}

	// HookPosComplete is raised once all blocks are played.
	HookPosComplete = &timing.HookPos{Name: "PlaybackComplete"}

	// HookPosStop is raised when Stop interrupts an animation.
	HookPosStop = &timing.HookPos{Name: "PlaybackStop"}

	// HookPosRejected is raised when Start refuses a schedule. Detail is the
	// error.
	HookPosRejected = &timing.HookPos{Name: "PlaybackRejected"}
)
