// Package interval partitions date ranges into calendar-month windows so each
// archive query stays within the service's result limits.
package interval

import "time"

// Interval is an inclusive [Start, End] pair.
type Interval struct {
	Start time.Time
	End   time.Time
}

// SplitMonthly partitions [start, end] into calendar-month aligned intervals,
// using start's location for month boundaries. Each interval begins at start
// or at the first instant of a month and ends one second before the next
// month begins, or at end, whichever is earlier. It returns nil when start is
// not before end.
func SplitMonthly(start, end time.Time) []Interval {
	if !start.Before(end) {
		return nil
	}

	loc := start.Location()
	end = end.In(loc)

	var out []Interval
	for cur := start; cur.Before(end); {
		next := time.Date(cur.Year(), cur.Month()+1, 1, 0, 0, 0, 0, loc)
		stop := next.Add(-time.Second)
		if stop.After(end) {
			stop = end
		}
		out = append(out, Interval{Start: cur, End: stop})
		cur = next
	}
	return out
}
