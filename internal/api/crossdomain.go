package api

import (
	"net/http"

	"example.com/routine/internal/analytics"
)

func (h *Handler) crossDomainTimeMoney(w http.ResponseWriter, r *http.Request) {
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
	transactions, err := h.service.TransactionsInWindow(r.Context(), claims.Subject, days)
	if err != nil {
		serviceError(w, err)
		return
	}

	correlation := analytics.TimeMoneyCorrelation(activities, interruptions, transactions)
	items := make([]TimeMoneyDayView, 0, len(correlation))
	for _, day := range correlation {
		items = append(items, TimeMoneyDayView{
			Date:              day.Date,
			ActivityCount:     day.ActivityCount,
			TotalHours:        day.TotalHours,
			InterruptionCount: day.InterruptionCount,
			DailyExpenses:     day.DailyExpenses,
			DailyIncome:       day.DailyIncome,
		})
	}
	writeJSON(w, http.StatusOK, TimeMoneyResponse{Days: days, Correlation: items})
}

func (h *Handler) crossDomainEnergySpending(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	claims, ok := requireRead(w, r)
	if !ok {
		return
	}

	days := parseDays(r, 30)
	logs, err := h.service.EnergyLogsInWindow(r.Context(), claims.Subject, days)
	if err != nil {
		serviceError(w, err)
		return
	}
	transactions, err := h.service.TransactionsInWindow(r.Context(), claims.Subject, days)
	if err != nil {
		serviceError(w, err)
		return
	}

	correlation := analytics.EnergySpendingCorrelation(logs, transactions)
	items := make([]EnergySpendingDayView, 0, len(correlation))
	for _, day := range correlation {
		items = append(items, EnergySpendingDayView{
			Date:          day.Date,
			EnergyLevel:   day.EnergyLevel,
			StressLevel:   day.StressLevel,
			DailyExpenses: day.DailyExpenses,
			ExpenseCount:  day.ExpenseCount,
		})
	}
	writeJSON(w, http.StatusOK, EnergySpendingResponse{Days: days, Correlation: items})
}

func (h *Handler) crossDomainInterruptionTasks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	claims, ok := requireRead(w, r)
	if !ok {
		return
	}

	days := parseDays(r, 30)
	tasks, err := h.service.TasksInWindow(r.Context(), claims.Subject, days)
	if err != nil {
		serviceError(w, err)
		return
	}
	interruptions, err := h.service.InterruptionsInWindow(r.Context(), claims.Subject, days)
	if err != nil {
		serviceError(w, err)
		return
	}

	correlation := analytics.InterruptionTaskCorrelation(tasks, interruptions)
	items := make([]InterruptionTaskDayView, 0, len(correlation))
	for _, day := range correlation {
		items = append(items, InterruptionTaskDayView{
			Date:              day.Date,
			TotalTasks:        day.TotalTasks,
			CompletedTasks:    day.CompletedTasks,
			InterruptionCount: day.InterruptionCount,
			CompletionRate:    day.CompletionRate,
		})
	}
	writeJSON(w, http.StatusOK, InterruptionTaskResponse{Days: days, Correlation: items})
}

func (h *Handler) crossDomainInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	claims, ok := requireRead(w, r)
	if !ok {
		return
	}

	days := parseDays(r, 30)
	logs, err := h.service.EnergyLogsInWindow(r.Context(), claims.Subject, days)
	if err != nil {
		serviceError(w, err)
		return
	}
	transactions, err := h.service.TransactionsInWindow(r.Context(), claims.Subject, days)
	if err != nil {
		serviceError(w, err)
		return
	}
	activities, err := h.service.ActivitiesInWindow(r.Context(), claims.Subject, days)
	if err != nil {
		serviceError(w, err)
		return
	}
	tasks, err := h.service.TasksInWindow(r.Context(), claims.Subject, days)
	if err != nil {
		serviceError(w, err)
		return
	}

	insights := analytics.CrossDomainInsights(logs, transactions, activities, tasks, days)
	items := make([]InsightView, 0, len(insights))
	for _, insight := range insights {
		items = append(items, InsightView{
			Type:           insight.Type,
			Title:          insight.Title,
			Description:    insight.Description,
			Data:           insight.Data,
			Recommendation: insight.Recommendation,
		})
	}
	writeJSON(w, http.StatusOK, CrossDomainInsightsResponse{Days: days, Insights: items})
}

// TimeMoneyDayView is one day's joined view of time spent and money moved.
type TimeMoneyDayView struct {
	Date              string  `json:"date"`
	ActivityCount     int     `json:"activity_count"`
	TotalHours        float64 `json:"total_hours"`
	InterruptionCount int     `json:"interruption_count"`
	DailyExpenses     float64 `json:"daily_expenses"`
	DailyIncome       float64 `json:"daily_income"`
}

// TimeMoneyResponse packages the time-money correlation.
type TimeMoneyResponse struct {
	Days        int                `json:"days"`
	Correlation []TimeMoneyDayView `json:"correlation"`
}

// EnergySpendingDayView is one day's joined view of energy state and spending.
type EnergySpendingDayView struct {
	Date          string  `json:"date"`
	EnergyLevel   int     `json:"energy_level"`
	StressLevel   int     `json:"stress_level"`
	DailyExpenses float64 `json:"daily_expenses"`
	ExpenseCount  int     `json:"expense_count"`
}

// EnergySpendingResponse packages the energy-spending correlation.
type EnergySpendingResponse struct {
	Days        int                     `json:"days"`
	Correlation []EnergySpendingDayView `json:"correlation"`
}

// InterruptionTaskDayView is one day's joined view of task throughput and
// interruptions.
type InterruptionTaskDayView struct {
	Date              string  `json:"date"`
	TotalTasks        int     `json:"total_tasks"`
	CompletedTasks    int     `json:"completed_tasks"`
	InterruptionCount int     `json:"interruption_count"`
	CompletionRate    float64 `json:"completion_rate"`
}

// InterruptionTaskResponse packages the interruption-task correlation.
type InterruptionTaskResponse struct {
	Days        int                       `json:"days"`
	Correlation []InterruptionTaskDayView `json:"correlation"`
}

// InsightView is one qualitative cross-domain observation.
type InsightView struct {
	Type           string         `json:"type"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Data           map[string]any `json:"data"`
	Recommendation string         `json:"recommendation"`
}

// CrossDomainInsightsResponse packages the rule-derived insights.
type CrossDomainInsightsResponse struct {
	Days     int           `json:"days"`
	Insights []InsightView `json:"insights"`
}
