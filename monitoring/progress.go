package monitoring

import (
	"sync"
	"time"

	"github.com/rs/xid"
)

// A ProgressBar is a tracker of the progress
type ProgressBar struct {
	lock       sync.Mutex
	id         string
	name       string
	startTime  time.Time
	total      uint64
	finished   uint64
	inProgress uint64
}

// ProgressBarStatus is what a ProgressBar reports at one instant.
type ProgressBarStatus struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	InProgress uint64    `json:"in_progress"`
}

func newProgressBar(name string, total uint64) *ProgressBar {
	return &ProgressBar{
		id:        xid.New().String(),
		name:      name,
		startTime: time.Now(),
		total:     total,
	}
}

// Set overwrites the counters.
func (b *ProgressBar) Set(finished, inProgress uint64) {
	b.lock.Lock()
	defer b.lock.Unlock()

	b.finished = finished
	b.inProgress = inProgress
}

// Status returns the current counters.
func (b *ProgressBar) Status() ProgressBarStatus {
	b.lock.Lock()
	defer b.lock.Unlock()

	return ProgressBarStatus{
		ID:         b.id,
		Name:       b.name,
		StartTime:  b.startTime,
		Total:      b.total,
		Finished:   b.finished,
		InProgress: b.inProgress,
	}
}
