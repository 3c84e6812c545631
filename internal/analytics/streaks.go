package analytics

import (
	"sort"
	"time"
)

// StreakSummary reports consecutive-day activity runs.
type StreakSummary struct {
	Current          int
	Longest          int
	DaysWithActivity int
}

// Streaks reduces a set of timestamps to calendar-day streaks relative to
// today. The current streak counts consecutive days with at least one entry
// walking backward from today; it is zero when today itself has no entry. The
// longest streak is the maximum run of consecutive days anywhere in the data.
// Empty input yields an all-zero summary.
func Streaks(times []time.Time, today time.Time) StreakSummary {
	if len(times) == 0 {
		return StreakSummary{}
	}

	unique := make(map[time.Time]struct{}, len(times))
	for _, t := range times {
		unique[DayOf(t)] = struct{}{}
	}

	days := make([]time.Time, 0, len(unique))
	for d := range unique {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	todayDay := DayOf(today)
	current := 0
	for i, d := range days {
		if d.Equal(todayDay.AddDate(0, 0, -i)) {
			current++
		} else {
			break
		}
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == 24*time.Hour {
			run++
		} else {
			if run > longest {
				longest = run
			}
			run = 1
		}
	}
	if run > longest {
		longest = run
	}

	return StreakSummary{
		Current:          current,
		Longest:          longest,
		DaysWithActivity: len(days),
	}
}
