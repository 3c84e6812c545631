package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"example.com/routine/internal/domain"
)

func TestGenerateInsightsNoActivities(t *testing.T) {
	got := GenerateInsights(nil, []domain.Interruption{
		{Time: day(2026, time.May, 1), Type: domain.InterruptionPhone},
	})

	require.Equal(t, "Not enough data yet", got.PeakFocusWindow)
	require.Equal(t, "Not enough data yet", got.DistractionHotspot)
	require.Equal(t, 0.0, got.ConsistencyScore)
	require.Equal(t, 0.5, got.BalanceRatio)
	require.Equal(t, "Start logging your activities to see insights.", got.Suggestion)
}

func TestGenerateInsightsPeakWindowAndHotspot(t *testing.T) {
	d := day(2026, time.May, 4)
	activities := []domain.Activity{
		activityOn(d.Add(9*time.Hour), 2),
		activityOn(d.Add(14*time.Hour), 1),
	}
	interruptions := []domain.Interruption{
		{Time: d.Add(13 * time.Hour), Type: domain.InterruptionPhone},
		{Time: d.Add(13*time.Hour + 30*time.Minute), Type: domain.InterruptionNoise},
		{Time: d.Add(16 * time.Hour), Type: domain.InterruptionPhone},
	}

	got := GenerateInsights(activities, interruptions)
	require.Equal(t, "Your focus is strongest between 09:00 - 10:00", got.PeakFocusWindow)
	require.Equal(t, "Most interruptions around 13:00", got.DistractionHotspot)
}

func TestGenerateInsightsPeakWindowWrapsMidnight(t *testing.T) {
	d := day(2026, time.May, 4)
	activities := []domain.Activity{
		activityOn(d.Add(23*time.Hour), 0.5),
	}

	got := GenerateInsights(activities, nil)
	require.Equal(t, "Your focus is strongest between 23:00 - 00:00", got.PeakFocusWindow)
}

func TestGenerateInsightsOnlyRestActivities(t *testing.T) {
	d := day(2026, time.May, 4)
	rest := domain.Activity{
		Category:  domain.CategoryRest,
		StartTime: d.Add(12 * time.Hour),
		EndTime:   d.Add(13 * time.Hour),
	}

	got := GenerateInsights([]domain.Activity{rest}, nil)
	require.Equal(t, "No focus time logged yet", got.PeakFocusWindow)
	require.Equal(t, "No interruptions logged", got.DistractionHotspot)
	require.Equal(t, 0.0, got.BalanceRatio)
}

func TestGenerateInsightsBalanceAndSuggestions(t *testing.T) {
	d := day(2026, time.May, 4)

	// All focus, no rest: balance 1.0 triggers the rest suggestion; a single
	// focus day leaves consistency at the 0.5 default so the steadier-schedule
	// suggestion stays quiet.
	activities := []domain.Activity{
		activityOn(d.Add(9*time.Hour), 3),
	}

	got := GenerateInsights(activities, nil)
	require.Equal(t, 1.0, got.BalanceRatio)
	require.Equal(t, 0.5, got.ConsistencyScore)
	require.Equal(t, "Consider adding more rest time to your schedule.", got.Suggestion)
}

func TestGenerateInsightsSuggestionOrder(t *testing.T) {
	d1 := day(2026, time.May, 4)
	d2 := day(2026, time.May, 5)

	// Heavy focus imbalance plus a hot interruption hour plus wildly uneven
	// days fires three suggestions in declaration order.
	activities := []domain.Activity{
		activityOn(d1.Add(9*time.Hour), 8),
		activityOn(d2.Add(9*time.Hour), 0.25),
	}
	interruptions := make([]domain.Interruption, 0, 4)
	for i := 0; i < 4; i++ {
		interruptions = append(interruptions, domain.Interruption{
			Time: d1.Add(10*time.Hour + time.Duration(i)*time.Minute),
			Type: domain.InterruptionPhone,
		})
	}

	got := GenerateInsights(activities, interruptions)
	require.Equal(t,
		"Consider adding more rest time to your schedule. "+
			"Try scheduling deep work during hours with fewer interruptions. "+
			"A more consistent schedule might help you find better focus.",
		got.Suggestion)
}

func TestGenerateInsightsFallbackSuggestion(t *testing.T) {
	// Two balanced days with matching focus totals and no interruptions leave
	// every rule quiet.
	d1 := day(2026, time.May, 4)
	d2 := day(2026, time.May, 5)
	activities := []domain.Activity{
		activityOn(d1.Add(9*time.Hour), 2),
		{Category: domain.CategoryRest, StartTime: d1.Add(12 * time.Hour), EndTime: d1.Add(14 * time.Hour)},
		activityOn(d2.Add(9*time.Hour), 2),
		{Category: domain.CategoryRest, StartTime: d2.Add(12 * time.Hour), EndTime: d2.Add(14 * time.Hour)},
	}

	got := GenerateInsights(activities, nil)
	require.Equal(t, 0.5, got.BalanceRatio)
	require.Equal(t, 1.0, got.ConsistencyScore)
	require.Equal(t, "Keep tracking to discover more patterns.", got.Suggestion)
}

func TestGenerateInsightsWholeDayShiftInvariance(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		base := day(2026, time.May, 4)
		n := rapid.IntRange(1, 12).Draw(t, "n")

		var activities []domain.Activity
		var interruptions []domain.Interruption
		for i := 0; i < n; i++ {
			start := base.
				AddDate(0, 0, rapid.IntRange(0, 6).Draw(t, "day")).
				Add(time.Duration(rapid.IntRange(0, 22).Draw(t, "hour")) * time.Hour)
			activities = append(activities, activityOn(start, float64(rapid.IntRange(1, 120).Draw(t, "minutes"))/60))
			if rapid.Bool().Draw(t, "interrupted") {
				interruptions = append(interruptions, domain.Interruption{
					Time: start.Add(10 * time.Minute),
					Type: domain.InterruptionPhone,
				})
			}
		}

		shiftDays := rapid.IntRange(1, 365).Draw(t, "shift")
		shifted := make([]domain.Activity, len(activities))
		for i, a := range activities {
			a.StartTime = a.StartTime.AddDate(0, 0, shiftDays)
			a.EndTime = a.EndTime.AddDate(0, 0, shiftDays)
			shifted[i] = a
		}
		shiftedInterruptions := make([]domain.Interruption, len(interruptions))
		for i, in := range interruptions {
			in.Time = in.Time.AddDate(0, 0, shiftDays)
			shiftedInterruptions[i] = in
		}

		// The report depends on hour-of-day and day-to-day shape, never on
		// absolute dates, so shifting everything by whole days is invisible.
		require.Equal(t,
			GenerateInsights(activities, interruptions),
			GenerateInsights(shifted, shiftedInterruptions))
	})
}
