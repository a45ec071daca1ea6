package playback

import "fmt"

// Phase is the stage of the playback state machine.
type Phase int

// The phases a Player goes through. A Player is Idle before its first
// schedule, after a rejected schedule, and after Stop.
const (
	PhaseIdle Phase = iota
	PhaseAnimating
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseAnimating:
		return "Animating"
	case PhaseComplete:
		return "Complete"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// MarshalText lets the phase appear by name in JSON.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a phase name.
func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Idle":
		*p = PhaseIdle
	case "Animating":
		*p = PhaseAnimating
	case "Complete":
		*p = PhaseComplete
	default:
		return fmt.Errorf("playback: unknown phase %q", text)
	}

	return nil
}

// PlaybackState is a snapshot of where the playback is.
//
// ActiveIndex equals the schedule length once the playback is complete, and
// Progress is then 1. Generation increases with every Start call, so that
// observers can tell snapshots of different schedules apart.
type PlaybackState struct {
	ActiveIndex int     `json:"active_index"`
	Progress    float64 `json:"progress"`
	Phase       Phase   `json:"phase"`
	Generation  uint64  `json:"generation"`
}

// IsComplete returns true if every block has been played.
func (s PlaybackState) IsComplete() bool {
	return s.Phase == PhaseComplete
}
