// Package timeline defines the scheduled execution blocks that are played
// back, and the values derived from a whole schedule.
package timeline

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformedInterval is returned when a schedule contains an interval that
// cannot be played back.
var ErrMalformedInterval = errors.New("malformed interval")

// Interval is one execution block of a process. A zero-length interval
// (Start == End) is legal and stands for an instantaneous event.
type Interval struct {
	PID   int     `json:"pid" yaml:"pid"`
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// Duration returns the logical length of the interval.
func (iv Interval) Duration() float64 {
	return iv.End - iv.Start
}

// IsInstant returns true if the interval has no length.
func (iv Interval) IsInstant() bool {
	return iv.Duration() <= 0
}

func (iv Interval) String() string {
	return fmt.Sprintf("P%d[%g,%g]", iv.PID, iv.Start, iv.End)
}

func (iv Interval) validate() error {
	switch {
	case iv.PID < 0:
		return fmt.Errorf("negative pid %d", iv.PID)
	case math.IsNaN(iv.Start) || math.IsInf(iv.Start, 0):
		return fmt.Errorf("non-finite start %g", iv.Start)
	case math.IsNaN(iv.End) || math.IsInf(iv.End, 0):
		return fmt.Errorf("non-finite end %g", iv.End)
	case iv.Start < 0:
		return fmt.Errorf("negative start %g", iv.Start)
	case iv.End < iv.Start:
		return fmt.Errorf("end %g before start %g", iv.End, iv.Start)
	}

	return nil
}

// A Schedule is the ordered list of intervals to play, sorted by start time.
// The order of the list is the play order.
type Schedule []Interval

// Validate checks every interval of the schedule. It does not check ordering
// or overlap. The returned error wraps ErrMalformedInterval and names the
// first offending index.
func (s Schedule) Validate() error {
	for i, iv := range s {
		if err := iv.validate(); err != nil {
			return fmt.Errorf("%w: block %d (%s): %s",
				ErrMalformedInterval, i, iv, err.Error())
		}
	}

	return nil
}

// Clone returns a copy of the schedule that shares no memory with s.
func (s Schedule) Clone() Schedule {
	if s == nil {
		return nil
	}

	c := make(Schedule, len(s))
	copy(c, s)

	return c
}
