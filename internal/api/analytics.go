package api

import (
	"net/http"
	"time"

	"example.com/routine/internal/analytics"
)

func (h *Handler) analyticsStreaks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	claims, ok := requireRead(w, r)
	if !ok {
		return
	}

	activities, err := h.service.ActivitiesInWindow(r.Context(), claims.Subject, 365)
	if err != nil {
		serviceError(w, err)
		return
	}

	starts := make([]time.Time, 0, len(activities))
	for _, a := range activities {
		starts = append(starts, a.StartTime)
	}
	streaks := analytics.Streaks(starts, h.now())
	writeJSON(w, http.StatusOK, StreaksResponse{
		CurrentStreak:    streaks.Current,
		LongestStreak:    streaks.Longest,
		DaysWithActivity: streaks.DaysWithActivity,
	})
}

func (h *Handler) analyticsCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	claims, ok := requireRead(w, r)
	if !ok {
		return
	}

	days := parseDays(r, 30)
	activities, err := h.service.ActivitiesInWindow(r.Context(), claims.Subject, days)
	if err != nil {
		serviceError(w, err)
		return
	}

	entries := make([]analytics.CategoryEntry, 0, len(activities))
	for _, a := range activities {
		entries = append(entries, analytics.CategoryEntry{
			Category: string(a.Category),
			Value:    a.DurationMinutes(),
		})
	}

	stats := analytics.CategoryBreakdown(entries)
	items := make([]CategoryStatView, 0, len(stats))
	for _, s := range stats {
		items = append(items, CategoryStatView{
			Category:   s.Category,
			Total:      s.Total,
			Count:      s.Count,
			Average:    s.Average,
			Percentage: s.Percentage,
		})
	}
	writeJSON(w, http.StatusOK, CategoryBreakdownResponse{Days: days, Categories: items})
}

func (h *Handler) analyticsSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	claims, ok := requireRead(w, r)
	if !ok {
		return
	}

	days := parseDays(r, 30)
	activities, err := h.service.ActivitiesInWindow(r.Context(), claims.Subject, days)
	if err != nil {
		serviceError(w, err)
		return
	}
	interruptions, err := h.service.InterruptionsInWindow(r.Context(), claims.Subject, days)
	if err != nil {
		serviceError(w, err)
		return
	}

	summary := analytics.Summarize(activities, interruptions, h.now())

	categories := make([]CategoryStatView, 0, len(summary.CategoryBreakdown))
	for _, s := range summary.CategoryBreakdown {
		categories = append(categories, CategoryStatView{
			Category:   s.Category,
			Total:      s.Total,
			Count:      s.Count,
			Average:    s.Average,
			Percentage: s.Percentage,
		})
	}

	writeJSON(w, http.StatusOK, AnalyticsSummaryResponse{
		Days:                     days,
		TotalFocusHours:          summary.TotalFocusHours,
		TotalInterruptionMinutes: summary.TotalInterruptionMinutes,
		AvgDailyFocusHours:       summary.AvgDailyFocusHours,
		CategoryBreakdown:        categories,
		Streaks: StreaksResponse{
			CurrentStreak:    summary.Streaks.Current,
			LongestStreak:    summary.Streaks.Longest,
			DaysWithActivity: summary.Streaks.DaysWithActivity,
		},
		QualityScore: summary.QualityScore,
	})
}

// StreaksResponse reports consecutive-day activity runs.
type StreaksResponse struct {
	CurrentStreak    int `json:"current_streak"`
	LongestStreak    int `json:"longest_streak"`
	DaysWithActivity int `json:"days_with_activity"`
}

// CategoryStatView is the aggregate for one activity category.
type CategoryStatView struct {
	Category   string  `json:"category"`
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
	Average    float64 `json:"average"`
	Percentage float64 `json:"percentage"`
}

// CategoryBreakdownResponse packages the per-category aggregates.
type CategoryBreakdownResponse struct {
	Days       int                `json:"days"`
	Categories []CategoryStatView `json:"categories"`
}

// AnalyticsSummaryResponse is the aggregate analytics view over a window.
type AnalyticsSummaryResponse struct {
	Days                     int                `json:"days"`
	TotalFocusHours          float64            `json:"total_focus_hours"`
	TotalInterruptionMinutes float64            `json:"total_interruption_minutes"`
	AvgDailyFocusHours       float64            `json:"avg_daily_focus_hours"`
	CategoryBreakdown        []CategoryStatView `json:"category_breakdown"`
	Streaks                  StreaksResponse    `json:"streaks"`
	QualityScore             float64            `json:"quality_score"`
}
