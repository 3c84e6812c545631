package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"example.com/routine/internal/analytics"
	"example.com/routine/internal/domain"
)

func (h *Handler) dailyReflections(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.saveDailyReflection(w, r)
	case http.MethodGet:
		h.listDailyReflections(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *Handler) saveDailyReflection(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireWrite(w, r)
	if !ok {
		return
	}

	var req SaveDailyReflectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	date, err := parseDateField(req.Date, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	reflection, err := h.service.SaveDailyReflection(r.Context(), domain.SaveDailyReflectionInput{
		UserID:     claims.Subject,
		Date:       date,
		WhatWorked: req.WhatWorked,
		WhatDidnt:  req.WhatDidnt,
		Why:        req.Why,
		Adjustment: req.Adjustment,
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDailyReflectionView(*reflection))
}

func (h *Handler) listDailyReflections(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRead(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	var from, to *domain.Date
	if raw := query.Get("from"); raw != "" {
		parsed, err := parseDateField(raw, "from")
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		from = &parsed
	}
	if raw := query.Get("to"); raw != "" {
		parsed, err := parseDateField(raw, "to")
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		to = &parsed
	}

	reflections, err := h.service.ListDailyReflections(r.Context(), claims.Subject, from, to)
	if err != nil {
		serviceError(w, err)
		return
	}

	items := make([]DailyReflectionView, 0, len(reflections))
	for _, reflection := range reflections {
		items = append(items, toDailyReflectionView(reflection))
	}
	writeJSON(w, http.StatusOK, ListDailyReflectionsResponse{Items: items})
}

func (h *Handler) todayReflection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	claims, ok := requireRead(w, r)
	if !ok {
		return
	}

	reflection, err := h.service.TodayReflection(r.Context(), claims.Subject)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDailyReflectionView(*reflection))
}

func (h *Handler) weeklyReflections(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.saveWeeklyReflection(w, r)
	case http.MethodGet:
		h.listWeeklyReflections(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *Handler) saveWeeklyReflection(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireWrite(w, r)
	if !ok {
		return
	}

	var req SaveWeeklyReflectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	weekStart, err := parseDateField(req.WeekStart, "week_start")
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}
	// Any day inside the week addresses the same record.
	weekStart = domain.DateOf(analytics.WeekStart(weekStart.Time()))

	reflection, err := h.service.SaveWeeklyReflection(r.Context(), domain.SaveWeeklyReflectionInput{
		UserID:           claims.Subject,
		WeekStart:        weekStart,
		TimeVsPlan:       req.TimeVsPlan,
		MoneyVsBudget:    req.MoneyVsBudget,
		EnergyVsWorkload: req.EnergyVsWorkload,
		Adjustment:       req.Adjustment,
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toWeeklyReflectionView(*reflection))
}

func (h *Handler) listWeeklyReflections(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRead(w, r)
	if !ok {
		return
	}

	reflections, err := h.service.ListWeeklyReflections(r.Context(), claims.Subject, parseLimit(r, 12))
	if err != nil {
		serviceError(w, err)
		return
	}

	items := make([]WeeklyReflectionView, 0, len(reflections))
	for _, reflection := range reflections {
		items = append(items, toWeeklyReflectionView(reflection))
	}
	writeJSON(w, http.StatusOK, ListWeeklyReflectionsResponse{Items: items})
}

func (h *Handler) monthlyReflections(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.saveMonthlyReflection(w, r)
	case http.MethodGet:
		h.listMonthlyReflections(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *Handler) saveMonthlyReflection(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireWrite(w, r)
	if !ok {
		return
	}

	var req SaveMonthlyReflectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	month, err := time.Parse("2006-01", req.Month)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "invalid month: must be YYYY-MM")
		return
	}

	reflection, err := h.service.SaveMonthlyReflection(r.Context(), domain.SaveMonthlyReflectionInput{
		UserID:                  claims.Subject,
		Month:                   domain.DateOf(analytics.MonthStart(month)),
		Trends:                  req.Trends,
		Stability:               req.Stability,
		BurnoutSignals:          req.BurnoutSignals,
		FinancialSafetyProgress: req.FinancialSafetyProgress,
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMonthlyReflectionView(*reflection))
}

func (h *Handler) listMonthlyReflections(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRead(w, r)
	if !ok {
		return
	}

	reflections, err := h.service.ListMonthlyReflections(r.Context(), claims.Subject, parseLimit(r, 12))
	if err != nil {
		serviceError(w, err)
		return
	}

	items := make([]MonthlyReflectionView, 0, len(reflections))
	for _, reflection := range reflections {
		items = append(items, toMonthlyReflectionView(reflection))
	}
	writeJSON(w, http.StatusOK, ListMonthlyReflectionsResponse{Items: items})
}

func parseLimit(r *http.Request, fallback int) int {
	limit := fallback
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	return limit
}

// SaveDailyReflectionRequest is the payload for POST /v1/reflections/daily.
type SaveDailyReflectionRequest struct {
	Date       string  `json:"date"`
	WhatWorked *string `json:"what_worked"`
	WhatDidnt  *string `json:"what_didnt"`
	Why        *string `json:"why"`
	Adjustment *string `json:"adjustment"`
}

// Validate ensures request correctness.
func (r SaveDailyReflectionRequest) Validate() error {
	if strings.TrimSpace(r.Date) == "" {
		return errors.New("date is required")
	}
	return nil
}

// SaveWeeklyReflectionRequest is the payload for POST /v1/reflections/weekly.
type SaveWeeklyReflectionRequest struct {
	WeekStart        string  `json:"week_start"`
	TimeVsPlan       *string `json:"time_vs_plan"`
	MoneyVsBudget    *string `json:"money_vs_budget"`
	EnergyVsWorkload *string `json:"energy_vs_workload"`
	Adjustment       *string `json:"adjustment"`
}

// Validate ensures request correctness.
func (r SaveWeeklyReflectionRequest) Validate() error {
	if strings.TrimSpace(r.WeekStart) == "" {
		return errors.New("week_start is required")
	}
	return nil
}

// SaveMonthlyReflectionRequest is the payload for POST /v1/reflections/monthly.
type SaveMonthlyReflectionRequest struct {
	Month                   string  `json:"month"`
	Trends                  *string `json:"trends"`
	Stability               *string `json:"stability"`
	BurnoutSignals          *string `json:"burnout_signals"`
	FinancialSafetyProgress *string `json:"financial_safety_progress"`
}

// Validate ensures request correctness.
func (r SaveMonthlyReflectionRequest) Validate() error {
	if strings.TrimSpace(r.Month) == "" {
		return errors.New("month is required")
	}
	return nil
}

// DailyReflectionView exposes a daily reflection.
type DailyReflectionView struct {
	ReflectionID string      `json:"reflection_id"`
	Date         domain.Date `json:"date"`
	WhatWorked   *string     `json:"what_worked,omitempty"`
	WhatDidnt    *string     `json:"what_didnt,omitempty"`
	Why          *string     `json:"why,omitempty"`
	Adjustment   *string     `json:"adjustment,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// ListDailyReflectionsResponse packages list results.
type ListDailyReflectionsResponse struct {
	Items []DailyReflectionView `json:"items"`
}

// WeeklyReflectionView exposes a weekly reflection.
type WeeklyReflectionView struct {
	ReflectionID     string      `json:"reflection_id"`
	WeekStart        domain.Date `json:"week_start"`
	TimeVsPlan       *string     `json:"time_vs_plan,omitempty"`
	MoneyVsBudget    *string     `json:"money_vs_budget,omitempty"`
	EnergyVsWorkload *string     `json:"energy_vs_workload,omitempty"`
	Adjustment       *string     `json:"adjustment,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// ListWeeklyReflectionsResponse packages list results.
type ListWeeklyReflectionsResponse struct {
	Items []WeeklyReflectionView `json:"items"`
}

// MonthlyReflectionView exposes a monthly reflection.
type MonthlyReflectionView struct {
	ReflectionID            string      `json:"reflection_id"`
	Month                   domain.Date `json:"month"`
	Trends                  *string     `json:"trends,omitempty"`
	Stability               *string     `json:"stability,omitempty"`
	BurnoutSignals          *string     `json:"burnout_signals,omitempty"`
	FinancialSafetyProgress *string     `json:"financial_safety_progress,omitempty"`
	CreatedAt               time.Time   `json:"created_at"`
	UpdatedAt               time.Time   `json:"updated_at"`
}

// ListMonthlyReflectionsResponse packages list results.
type ListMonthlyReflectionsResponse struct {
	Items []MonthlyReflectionView `json:"items"`
}

func toDailyReflectionView(d domain.DailyReflection) DailyReflectionView {
	return DailyReflectionView{
		ReflectionID: d.ID,
		Date:         d.Date,
		WhatWorked:   d.WhatWorked,
		WhatDidnt:    d.WhatDidnt,
		Why:          d.Why,
		Adjustment:   d.Adjustment,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func toWeeklyReflectionView(wr domain.WeeklyReflection) WeeklyReflectionView {
	return WeeklyReflectionView{
		ReflectionID:     wr.ID,
		WeekStart:        wr.WeekStart,
		TimeVsPlan:       wr.TimeVsPlan,
		MoneyVsBudget:    wr.MoneyVsBudget,
		EnergyVsWorkload: wr.EnergyVsWorkload,
		Adjustment:       wr.Adjustment,
		CreatedAt:        wr.CreatedAt,
		UpdatedAt:        wr.UpdatedAt,
	}
}

func toMonthlyReflectionView(m domain.MonthlyReflection) MonthlyReflectionView {
	return MonthlyReflectionView{
		ReflectionID:            m.ID,
		Month:                   m.Month,
		Trends:                  m.Trends,
		Stability:               m.Stability,
		BurnoutSignals:          m.BurnoutSignals,
		FinancialSafetyProgress: m.FinancialSafetyProgress,
		CreatedAt:               m.CreatedAt,
		UpdatedAt:               m.UpdatedAt,
	}
}
