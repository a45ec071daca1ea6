package schedclient

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/Pallavi2687/cpu-scheduler-frontend/timeline"
)

// Row is the per-process line of the result table.
type Row struct {
	PID        int     `json:"pid"`
	Arrival    float64 `json:"arrival"`
	Burst      float64 `json:"burst"`
	Completion float64 `json:"completion"`
	Turnaround float64 `json:"turnaround"`
	Waiting    float64 `json:"waiting"`
}

// Metric is an average reported by the service. The service reports a
// missing value as a string such as "N/A", which decodes to an invalid
// Metric.
type Metric struct {
	Value float64
	Valid bool
}

// NA is the text shown for an invalid metric.
const NA = "N/A"

func (m Metric) String() string {
	if !m.Valid {
		return NA
	}

	return strconv.FormatFloat(m.Value, 'f', -1, 64)
}

// MarshalJSON writes the number, or "N/A" when invalid.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return json.Marshal(NA)
	}

	return json.Marshal(m.Value)
}

// UnmarshalJSON accepts numbers, numeric strings, and anything else as
// invalid.
func (m *Metric) UnmarshalJSON(data []byte) error {
	*m = Metric{}

	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*m = Metric{Value: v, Valid: true}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}

	if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		*m = Metric{Value: v, Valid: true}
	}

	return nil
}

// Averages are the mean times over all processes.
type Averages struct {
	Completion Metric `json:"completion"`
	Turnaround Metric `json:"turnaround"`
	Waiting    Metric `json:"waiting"`
}

// Debug carries what the service ran, for troubleshooting.
type Debug struct {
	ExePath   string `json:"exe_path,omitempty"`
	Input     string `json:"input,omitempty"`
	RawOutput string `json:"raw_output,omitempty"`
}

// Result is the normalized answer of the service. Missing parts decode as
// empty values, never nil.
type Result struct {
	Gantt    timeline.Schedule `json:"gantt"`
	Table    []Row             `json:"table"`
	Averages Averages          `json:"averages"`
	Debug    Debug             `json:"debug"`
}

func (r *Result) normalize() {
	if r.Gantt == nil {
		r.Gantt = timeline.Schedule{}
	}

	if r.Table == nil {
		r.Table = []Row{}
	}
}
