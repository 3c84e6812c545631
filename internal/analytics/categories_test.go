package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestCategoryBreakdownAggregates(t *testing.T) {
	entries := []CategoryEntry{
		{Category: "Coding", Value: 90},
		{Category: "Rest", Value: 30},
		{Category: "Coding", Value: 30},
	}

	got := CategoryBreakdown(entries)
	require.Len(t, got, 2)

	require.Equal(t, "Coding", got[0].Category)
	require.Equal(t, 120.0, got[0].Total)
	require.Equal(t, 2, got[0].Count)
	require.Equal(t, 60.0, got[0].Average)
	require.Equal(t, 80.0, got[0].Percentage)

	require.Equal(t, "Rest", got[1].Category)
	require.Equal(t, 30.0, got[1].Total)
	require.Equal(t, 20.0, got[1].Percentage)
}

func TestCategoryBreakdownEmpty(t *testing.T) {
	require.Empty(t, CategoryBreakdown(nil))
}

func TestCategoryBreakdownSortsByTotalDescending(t *testing.T) {
	entries := []CategoryEntry{
		{Category: "Rest", Value: 10},
		{Category: "Work", Value: 200},
		{Category: "Study", Value: 50},
	}

	got := CategoryBreakdown(entries)
	require.Equal(t, []string{"Work", "Study", "Rest"},
		[]string{got[0].Category, got[1].Category, got[2].Category})
}

func TestCategoryBreakdownPercentagesSumToOneHundred(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 50).Draw(t, "n")
		entries := make([]CategoryEntry, n)
		for i := range entries {
			entries[i] = CategoryEntry{
				Category: fmt.Sprintf("cat-%d", rapid.IntRange(0, 6).Draw(t, "cat")),
				Value:    float64(rapid.IntRange(1, 600).Draw(t, "minutes")),
			}
		}

		sum := 0.0
		for _, s := range CategoryBreakdown(entries) {
			require.GreaterOrEqual(t, s.Percentage, 0.0)
			require.LessOrEqual(t, s.Percentage, 100.0)
			sum += s.Percentage
		}
		// Per-category rounding to one decimal place shifts the sum by at
		// most 0.05 per category.
		require.InDelta(t, 100.0, sum, 0.5)
	})
}
