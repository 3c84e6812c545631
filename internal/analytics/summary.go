package analytics

import (
	"time"

	"example.com/routine/internal/domain"
)

// Summary is the aggregate analytics view over a query window.
type Summary struct {
	TotalFocusHours          float64
	TotalInterruptionMinutes float64
	AvgDailyFocusHours       float64
	CategoryBreakdown        []CategoryStat
	Streaks                  StreakSummary
	QualityScore             float64
}

// Summarize computes the full analytics summary. Focus totals cover the focus
// categories only, interruption minutes use the five-minute default for
// untimed entries, average daily focus divides by days with any activity at
// all, and the quality score is the consistency score on a 0-100 scale.
func Summarize(activities []domain.Activity, interruptions []domain.Interruption, today time.Time) Summary {
	totalFocusMinutes := 0.0
	for _, a := range activities {
		if a.Category.Focus() {
			totalFocusMinutes += a.DurationMinutes()
		}
	}

	totalInterruptionMinutes := 0.0
	for _, i := range interruptions {
		if i.DurationMinutes != nil {
			totalInterruptionMinutes += float64(*i.DurationMinutes)
		} else {
			totalInterruptionMinutes += defaultInterruptionMinutes
		}
	}

	starts := make([]time.Time, 0, len(activities))
	entries := make([]CategoryEntry, 0, len(activities))
	for _, a := range activities {
		starts = append(starts, a.StartTime)
		entries = append(entries, CategoryEntry{Category: string(a.Category), Value: a.DurationMinutes()})
	}
	streaks := Streaks(starts, today)

	avgDailyFocus := 0.0
	if streaks.DaysWithActivity > 0 {
		avgDailyFocus = totalFocusMinutes / float64(streaks.DaysWithActivity)
	}

	insights := GenerateInsights(activities, interruptions)

	return Summary{
		TotalFocusHours:          round1(totalFocusMinutes / 60),
		TotalInterruptionMinutes: round1(totalInterruptionMinutes),
		AvgDailyFocusHours:       round1(avgDailyFocus / 60),
		CategoryBreakdown:        CategoryBreakdown(entries),
		Streaks:                  streaks,
		QualityScore:             round1(insights.ConsistencyScore * 100),
	}
}
