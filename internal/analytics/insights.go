package analytics

import (
	"fmt"
	"math"
	"strings"
	"time"

	"example.com/routine/internal/domain"
)

// InsightReport is the explainable weekly summary of focus habits.
type InsightReport struct {
	PeakFocusWindow    string  `json:"peak_focus_window"`
	DistractionHotspot string  `json:"distraction_hotspot"`
	ConsistencyScore   float64 `json:"consistency_score"`
	BalanceRatio       float64 `json:"balance_ratio"`
	Suggestion         string  `json:"suggestion"`
}

// GenerateInsights derives the report from a window of activities and
// interruptions. With no activities at all it returns the fixed "not enough
// data" report without inspecting interruptions. Scores are rounded to two
// decimal places.
func GenerateInsights(activities []domain.Activity, interruptions []domain.Interruption) InsightReport {
	if len(activities) == 0 {
		return InsightReport{
			PeakFocusWindow:    "Not enough data yet",
			DistractionHotspot: "Not enough data yet",
			ConsistencyScore:   0.0,
			BalanceRatio:       0.5,
			Suggestion:         "Start logging your activities to see insights.",
		}
	}

	var focus, rest []domain.Activity
	for _, a := range activities {
		switch {
		case a.Category.Focus():
			focus = append(focus, a)
		case a.Category == domain.CategoryRest:
			rest = append(rest, a)
		}
	}

	peakWindow := peakFocusWindow(focus)
	hotspot, hotspotMax := distractionHotspot(interruptions)
	consistency := consistencyScore(focus)
	balance := balanceRatio(focus, rest)

	var suggestions []string
	if balance > 0.8 {
		suggestions = append(suggestions, "Consider adding more rest time to your schedule.")
	} else if balance < 0.3 {
		suggestions = append(suggestions, "You might benefit from more focused work blocks.")
	}
	if hotspotMax > 3 {
		suggestions = append(suggestions, "Try scheduling deep work during hours with fewer interruptions.")
	}
	if consistency < 0.5 {
		suggestions = append(suggestions, "A more consistent schedule might help you find better focus.")
	}
	if len(suggestions) == 0 {
		suggestions = append(suggestions, "Keep tracking to discover more patterns.")
	}

	return InsightReport{
		PeakFocusWindow:    peakWindow,
		DistractionHotspot: hotspot,
		ConsistencyScore:   round2(consistency),
		BalanceRatio:       round2(balance),
		Suggestion:         strings.Join(suggestions, " "),
	}
}

// peakFocusWindow finds the hour of day accumulating the most focus minutes.
// Ties resolve to the earliest hour so repeated calls over the same data
// always name the same window.
func peakFocusWindow(focus []domain.Activity) string {
	if len(focus) == 0 {
		return "No focus time logged yet"
	}

	var hourFocus [24]float64
	for _, a := range focus {
		hourFocus[a.StartTime.UTC().Hour()] += a.DurationMinutes()
	}

	peak := 0
	for h := 1; h < 24; h++ {
		if hourFocus[h] > hourFocus[peak] {
			peak = h
		}
	}
	return fmt.Sprintf("Your focus is strongest between %02d:00 - %02d:00", peak, (peak+1)%24)
}

func distractionHotspot(interruptions []domain.Interruption) (string, int) {
	if len(interruptions) == 0 {
		return "No interruptions logged", 0
	}

	var hourCounts [24]int
	for _, i := range interruptions {
		hourCounts[i.Time.UTC().Hour()]++
	}

	peak := 0
	for h := 1; h < 24; h++ {
		if hourCounts[h] > hourCounts[peak] {
			peak = h
		}
	}
	return fmt.Sprintf("Most interruptions around %02d:00", peak), hourCounts[peak]
}

// consistencyScore measures how even daily focus totals are:
// max(0, 1 - popStdDev/(mean+1)) over per-day focus minutes. Fewer than two
// distinct days is not enough signal, so the score defaults to 0.5.
func consistencyScore(focus []domain.Activity) float64 {
	daily := make(map[time.Time]float64)
	for _, a := range focus {
		daily[DayOf(a.StartTime)] += a.DurationMinutes()
	}
	if len(daily) < 2 {
		return 0.5
	}

	sum := 0.0
	for _, v := range daily {
		sum += v
	}
	mean := sum / float64(len(daily))

	variance := 0.0
	for _, v := range daily {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(daily))

	return math.Max(0, 1-math.Sqrt(variance)/(mean+1))
}

func balanceRatio(focus, rest []domain.Activity) float64 {
	totalFocus, totalRest := 0.0, 0.0
	for _, a := range focus {
		totalFocus += a.DurationMinutes()
	}
	for _, a := range rest {
		totalRest += a.DurationMinutes()
	}
	if totalFocus+totalRest == 0 {
		return 0.5
	}
	return totalFocus / (totalFocus + totalRest)
}
