package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStreaksEmptyInput(t *testing.T) {
	got := Streaks(nil, day(2026, time.March, 10))
	require.Equal(t, StreakSummary{}, got)
}

func TestStreaksCurrentAndLongest(t *testing.T) {
	today := day(2026, time.March, 10)
	times := []time.Time{
		today.Add(9 * time.Hour),
		today.AddDate(0, 0, -1).Add(14 * time.Hour),
		today.AddDate(0, 0, -2),
		today.AddDate(0, 0, -5),
	}

	got := Streaks(times, today)
	require.Equal(t, 3, got.Current)
	require.Equal(t, 3, got.Longest)
	require.Equal(t, 4, got.DaysWithActivity)
}

func TestStreaksBrokenToday(t *testing.T) {
	today := day(2026, time.March, 10)
	times := []time.Time{
		today.AddDate(0, 0, -1),
		today.AddDate(0, 0, -2),
		today.AddDate(0, 0, -3),
	}

	got := Streaks(times, today)
	require.Equal(t, 0, got.Current, "no entry today means no current streak")
	require.Equal(t, 3, got.Longest)
}

func TestStreaksLongestRunInThePast(t *testing.T) {
	today := day(2026, time.June, 1)
	times := []time.Time{
		today,
		today.AddDate(0, 0, -10),
		today.AddDate(0, 0, -11),
		today.AddDate(0, 0, -12),
		today.AddDate(0, 0, -13),
	}

	got := Streaks(times, today)
	require.Equal(t, 1, got.Current)
	require.Equal(t, 4, got.Longest)
	require.Equal(t, 5, got.DaysWithActivity)
}

func TestStreaksMultipleEntriesSameDayCountOnce(t *testing.T) {
	today := day(2026, time.March, 10)
	times := []time.Time{
		today.Add(8 * time.Hour),
		today.Add(12 * time.Hour),
		today.Add(20 * time.Hour),
	}

	got := Streaks(times, today)
	require.Equal(t, 1, got.Current)
	require.Equal(t, 1, got.Longest)
	require.Equal(t, 1, got.DaysWithActivity)
}
