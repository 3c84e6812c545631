// Package api exposes HTTP handlers for the tracker service.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"example.com/routine/internal/analytics"
	"example.com/routine/internal/auth"
	"example.com/routine/internal/domain"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
	now     func() time.Time
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service, now: func() time.Time { return time.Now().UTC() }}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/activities", h.activities)
	mux.HandleFunc("/v1/interruptions", h.interruptions)
	mux.HandleFunc("/v1/insights", h.insights)
	mux.HandleFunc("/v1/analytics/streaks", h.analyticsStreaks)
	mux.HandleFunc("/v1/analytics/category-breakdown", h.analyticsCategoryBreakdown)
	mux.HandleFunc("/v1/analytics/summary", h.analyticsSummary)
	mux.HandleFunc("/v1/cross-domain/time-money", h.crossDomainTimeMoney)
	mux.HandleFunc("/v1/cross-domain/energy-spending", h.crossDomainEnergySpending)
	mux.HandleFunc("/v1/cross-domain/interruption-tasks", h.crossDomainInterruptionTasks)
	mux.HandleFunc("/v1/cross-domain/insights", h.crossDomainInsights)
	mux.HandleFunc("/v1/finances/transactions", h.transactions)
	mux.HandleFunc("/v1/finances/transactions/", h.transactionByID)
	mux.HandleFunc("/v1/finances/budgets", h.budgets)
	mux.HandleFunc("/v1/finances/summary", h.financeSummary)
	mux.HandleFunc("/v1/energy", h.energy)
	mux.HandleFunc("/v1/energy/today", h.energyToday)
	mux.HandleFunc("/v1/planner/tasks", h.tasks)
	mux.HandleFunc("/v1/planner/tasks/", h.taskByID)
	mux.HandleFunc("/v1/planner/habits", h.habits)
	mux.HandleFunc("/v1/planner/habits/", h.habitByID)
	mux.HandleFunc("/v1/planner/habits/log", h.logHabit)
	mux.HandleFunc("/v1/planner/today", h.plannerToday)
	mux.HandleFunc("/v1/reflections/daily", h.dailyReflections)
	mux.HandleFunc("/v1/reflections/daily/today", h.todayReflection)
	mux.HandleFunc("/v1/reflections/weekly", h.weeklyReflections)
	mux.HandleFunc("/v1/reflections/monthly", h.monthlyReflections)
	mux.HandleFunc("/v1/export", h.export)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// requireRead resolves the caller and checks for a read-capable scope.
func requireRead(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return nil, false
	}
	if !claims.HasScope(auth.ScopeTrackerRead) && !claims.HasScope(auth.ScopeTrackerWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope tracker:read required")
		return nil, false
	}
	return claims, true
}

// requireWrite resolves the caller and checks for the write scope.
func requireWrite(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return nil, false
	}
	if !claims.HasScope(auth.ScopeTrackerWrite) {
		writeError(w, http.StatusForbidden, "forbidden", "scope tracker:write required")
		return nil, false
	}
	return claims, true
}

// serviceError maps domain errors to HTTP status codes.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "record not found")
	default:
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
}

// parseDays reads the trailing-window query parameter, bounded to [1,365].
func parseDays(r *http.Request, fallback int) int {
	days := fallback
	if raw := r.URL.Query().Get("days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			days = parsed
		}
	}
	if days > 365 {
		days = 365
	}
	return days
}

// parseInstantField normalizes a timestamp string through the analytics core.
func parseInstantField(value, name string) (time.Time, error) {
	t, err := analytics.ParseInstant(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: %v", name, err)
	}
	return t, nil
}

func parseOptionalInstant(value *string, name string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := parseInstantField(*value, name)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseDateField(value, name string) (domain.Date, error) {
	d, err := domain.ParseDate(value)
	if err != nil {
		return domain.Date{}, fmt.Errorf("invalid %s: must be YYYY-MM-DD", name)
	}
	return d, nil
}

func parseOptionalDate(value *string, name string) (*domain.Date, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	d, err := parseDateField(*value, name)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// parseMonthParam reads a "YYYY-MM" month query parameter, defaulting to the
// month containing fallback.
func parseMonthParam(r *http.Request, fallback time.Time) (domain.Date, error) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		return domain.DateOf(analytics.MonthStart(fallback)), nil
	}
	t, err := time.Parse("2006-01", raw)
	if err != nil {
		return domain.Date{}, errors.New("invalid month: must be YYYY-MM")
	}
	return domain.DateOf(t), nil
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
