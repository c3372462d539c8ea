package patterns

import (
	"math"
	"time"
)

// RecencyExponent controls how strongly dates cluster near the window end.
// 1.0 is uniform; larger values pull more weight toward recent days.
const RecencyExponent = 1.5

// DaysAgo maps a uniform draw in [0, 1) to an offset in [0, maxDays],
// biased toward small offsets: floor(u^1.5 * maxDays).
func DaysAgo(u float64, maxDays int) int {
	if maxDays <= 0 || math.IsNaN(u) || u <= 0 {
		return 0
	}
	if u >= 1 {
		return maxDays
	}
	return int(math.Floor(math.Pow(u, RecencyExponent) * float64(maxDays)))
}

// RecentDate picks a date in [start, end] counting back from end, with
// recent days more likely. Both bounds are truncated to whole days.
func RecentDate(u float64, start, end time.Time) time.Time {
	start = truncateDay(start)
	end = truncateDay(end)
	if !start.Before(end) {
		return end
	}
	maxDays := int(end.Sub(start).Hours() / 24)
	return end.AddDate(0, 0, -DaysAgo(u, maxDays))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
