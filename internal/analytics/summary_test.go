package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/routine/internal/domain"
)

func TestSummarize(t *testing.T) {
	today := day(2026, time.May, 5)
	yesterday := today.AddDate(0, 0, -1)

	activities := []domain.Activity{
		activityOn(today.Add(9*time.Hour), 2),
		activityOn(yesterday.Add(9*time.Hour), 1),
		{Category: domain.CategoryRest, StartTime: today.Add(13 * time.Hour), EndTime: today.Add(14 * time.Hour)},
	}
	timed := 20
	interruptions := []domain.Interruption{
		{Time: today.Add(10 * time.Hour), Type: domain.InterruptionPhone, DurationMinutes: &timed},
		{Time: today.Add(11 * time.Hour), Type: domain.InterruptionNoise},
	}

	got := Summarize(activities, interruptions, today)

	require.Equal(t, 3.0, got.TotalFocusHours)
	require.Equal(t, 25.0, got.TotalInterruptionMinutes, "untimed interruptions count five minutes")
	require.Equal(t, 1.5, got.AvgDailyFocusHours)
	require.Equal(t, 2, got.Streaks.Current)
	require.Equal(t, 2, got.Streaks.DaysWithActivity)

	require.Len(t, got.CategoryBreakdown, 2)
	require.Equal(t, "Coding", got.CategoryBreakdown[0].Category)
	require.Equal(t, 180.0, got.CategoryBreakdown[0].Total)

	// Two focus days at 120 and 60 minutes: mean 90, population std dev 30,
	// consistency 1 - 30/91 ≈ 0.67, scaled to 0-100 with one decimal.
	require.Equal(t, 67.0, got.QualityScore)
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil, nil, day(2026, time.May, 5))

	require.Equal(t, 0.0, got.TotalFocusHours)
	require.Equal(t, 0.0, got.TotalInterruptionMinutes)
	require.Equal(t, 0.0, got.AvgDailyFocusHours)
	require.Empty(t, got.CategoryBreakdown)
	require.Equal(t, StreakSummary{}, got.Streaks)
	require.Equal(t, 0.0, got.QualityScore)
}
