package analytics

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestCategoryBreakdownPercentagesSumToHundred(t *testing.T) {
	categories := []string{"Study", "Coding", "Work", "Reading", "Rest", "Social", "Other"}

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 50).Draw(t, "nEntries")
		entries := make([]CategoryEntry, 0, n)
		for i := 0; i < n; i++ {
			entries = append(entries, CategoryEntry{
				Category: categories[rapid.IntRange(0, len(categories)-1).Draw(t, "catIdx")],
				Value:    float64(rapid.IntRange(1, 600).Draw(t, "minutes")),
			})
		}

		stats := CategoryBreakdown(entries)

		sum := 0.0
		for _, s := range stats {
			if s.Percentage < 0 || s.Percentage > 100 {
				t.Fatalf("percentage %f out of range for %s", s.Percentage, s.Category)
			}
			sum += s.Percentage
		}

		// Each share is rounded to one decimal, so allow 0.05 slack per category.
		tolerance := 0.05 * float64(len(stats))
		if math.Abs(sum-100) > tolerance {
			t.Fatalf("percentages sum to %f, want 100 within %f", sum, tolerance)
		}

		for i := 1; i < len(stats); i++ {
			if stats[i-1].Total < stats[i].Total {
				t.Fatalf("breakdown not sorted by total: %f before %f", stats[i-1].Total, stats[i].Total)
			}
		}
	})
}
