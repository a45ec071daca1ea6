package timeline

// Makespan returns the latest end time in the schedule. It returns 1 when the
// schedule is empty or when no block ends after time 0, so that it can always
// be used as a divisor.
func Makespan(s Schedule) float64 {
	m := 0.0
	for _, iv := range s {
		if iv.End > m {
			m = iv.End
		}
	}

	if m <= 0 {
		return 1
	}

	return m
}
