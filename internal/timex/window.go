package timex

import "time"

// Clock returns the current time. Services take one so windows are
// deterministic under test.
type Clock func() time.Time

// WindowStart returns the inclusive lower bound of a trailing window of
// days ending at now. Non-positive day counts collapse to now.
func WindowStart(now time.Time, days int) time.Time {
	if days <= 0 {
		return now
	}
	return now.AddDate(0, 0, -days)
}
