// Package schedclient talks to the scheduling service that turns a list of
// processes into a schedule and its statistics.
package schedclient

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Algorithm names a scheduling policy supported by the service.
type Algorithm string

// Supported algorithms.
const (
	FCFS     Algorithm = "FCFS"
	SJF      Algorithm = "SJF"
	Priority Algorithm = "PRIORITY"
	RR       Algorithm = "RR"
	SRTF     Algorithm = "SRTF"
	LJF      Algorithm = "LJF"
	HRRN     Algorithm = "HRRN"
	LRTF     Algorithm = "LRTF"
)

// Algorithms lists every supported algorithm.
var Algorithms = []Algorithm{FCFS, SJF, Priority, RR, SRTF, LJF, HRRN, LRTF}

// ErrInvalidRequest is wrapped by every validation failure.
var ErrInvalidRequest = errors.New("invalid schedule request")

// ParseAlgorithm accepts an algorithm name in any case.
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Algorithms {
		if a == known {
			return a, nil
		}
	}

	return "", fmt.Errorf("%w: unknown algorithm %q", ErrInvalidRequest, s)
}

// UsesPriority returns true if the algorithm reads process priorities.
func (a Algorithm) UsesPriority() bool {
	return a == Priority || a == HRRN || a == LRTF
}

// Process is one job submitted for scheduling.
type Process struct {
	PID      int     `json:"pid"`
	Arrival  float64 `json:"arrival"`
	Burst    float64 `json:"burst"`
	Priority int     `json:"priority"`
}

// Request is the body posted to the service.
type Request struct {
	Algorithm Algorithm `json:"algorithm"`
	Processes []Process `json:"processes"`
	Quantum   float64   `json:"quantum"`
}

// Validate checks the request and reports every problem found.
func (r Request) Validate() error {
	var result *multierror.Error

	if _, err := ParseAlgorithm(string(r.Algorithm)); err != nil {
		result = multierror.Append(result, err)
	}

	if len(r.Processes) == 0 {
		result = multierror.Append(result,
			fmt.Errorf("%w: at least one process is required", ErrInvalidRequest))
	}

	for _, p := range r.Processes {
		if p.PID < 0 {
			result = multierror.Append(result,
				fmt.Errorf("%w: pid for P%d must be >= 0", ErrInvalidRequest, p.PID))
		}

		if p.Arrival < 0 {
			result = multierror.Append(result,
				fmt.Errorf("%w: arrival for P%d must be >= 0", ErrInvalidRequest, p.PID))
		}

		if p.Burst <= 0 {
			result = multierror.Append(result,
				fmt.Errorf("%w: burst for P%d must be > 0", ErrInvalidRequest, p.PID))
		}

		if r.Algorithm.UsesPriority() && p.Priority < 0 {
			result = multierror.Append(result,
				fmt.Errorf("%w: priority for P%d must be >= 0", ErrInvalidRequest, p.PID))
		}
	}

	if r.Algorithm == RR && r.Quantum <= 0 {
		result = multierror.Append(result,
			fmt.Errorf("%w: quantum must be > 0", ErrInvalidRequest))
	}

	return result.ErrorOrNil()
}

// ParseProcess reads a process from "pid,arrival,burst[,priority]".
func ParseProcess(s string) (Process, error) {
	fields := strings.Split(s, ",")
	if len(fields) < 3 || len(fields) > 4 {
		return Process{}, fmt.Errorf(
			"%w: process %q must be pid,arrival,burst[,priority]",
			ErrInvalidRequest, s)
	}

	var (
		p   Process
		err error
	)

	if _, err = fmt.Sscan(strings.TrimSpace(fields[0]), &p.PID); err != nil {
		return Process{}, fmt.Errorf("%w: pid in %q: %v", ErrInvalidRequest, s, err)
	}

	if _, err = fmt.Sscan(strings.TrimSpace(fields[1]), &p.Arrival); err != nil {
		return Process{}, fmt.Errorf("%w: arrival in %q: %v", ErrInvalidRequest, s, err)
	}

	if _, err = fmt.Sscan(strings.TrimSpace(fields[2]), &p.Burst); err != nil {
		return Process{}, fmt.Errorf("%w: burst in %q: %v", ErrInvalidRequest, s, err)
	}

	if len(fields) == 4 {
		if _, err = fmt.Sscan(strings.TrimSpace(fields[3]), &p.Priority); err != nil {
			return Process{}, fmt.Errorf("%w: priority in %q: %v", ErrInvalidRequest, s, err)
		}
	}

	return p, nil
}
