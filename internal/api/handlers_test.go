package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"example.com/routine/internal/auth"
	"example.com/routine/internal/domain"
)

func readClaims() *auth.Claims {
	return &auth.Claims{
		Subject:   "user-1",
		Scopes:    map[string]struct{}{auth.ScopeTrackerRead: {}},
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func writeClaims() *auth.Claims {
	return &auth.Claims{
		Subject:   "user-1",
		Scopes:    map[string]struct{}{auth.ScopeTrackerWrite: {}},
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func authed(req *http.Request, claims *auth.Claims) *http.Request {
	return req.WithContext(auth.WithClaims(req.Context(), claims))
}

func newTestHandler(repo domain.Repository) *Handler {
	handler := NewHandler(domain.NewService(repo))
	handler.now = func() time.Time {
		return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	}
	return handler
}

func TestCreateActivityAcceptsNaiveTimestamps(t *testing.T) {
	repo := &mockRepo{}
	handler := newTestHandler(repo)

	body := `{"category":"Coding","start_time":"2026-03-10T09:00:00","end_time":"2026-03-10T10:30:00"}`
	req := authed(httptest.NewRequest(http.MethodPost, "/v1/activities", strings.NewReader(body)), writeClaims())
	rr := httptest.NewRecorder()
	handler.activities(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rr.Code, rr.Body.String())
	}

	var resp ActivityView
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Category != "Coding" {
		t.Fatalf("unexpected category %s", resp.Category)
	}
	if resp.DurationMinutes != 90 {
		t.Fatalf("expected 90 minutes got %f", resp.DurationMinutes)
	}
	if len(repo.activities) != 1 {
		t.Fatalf("expected 1 stored activity got %d", len(repo.activities))
	}
}

func TestCreateActivityRejectsMalformedTimestamp(t *testing.T) {
	handler := newTestHandler(&mockRepo{})

	body := `{"category":"Coding","start_time":"yesterday-ish","end_time":"2026-03-10T10:00:00"}`
	req := authed(httptest.NewRequest(http.MethodPost, "/v1/activities", strings.NewReader(body)), writeClaims())
	rr := httptest.NewRecorder()
	handler.activities(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "validation_failed") {
		t.Fatalf("unexpected error body: %s", rr.Body.String())
	}
}

func TestCreateActivityRequiresWriteScope(t *testing.T) {
	handler := newTestHandler(&mockRepo{})

	body := `{"category":"Coding","start_time":"2026-03-10T09:00:00","end_time":"2026-03-10T10:00:00"}`
	req := authed(httptest.NewRequest(http.MethodPost, "/v1/activities", strings.NewReader(body)), readClaims())
	rr := httptest.NewRecorder()
	handler.activities(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rr.Code)
	}
}

func TestListActivitiesRequiresToken(t *testing.T) {
	handler := newTestHandler(&mockRepo{})

	req := httptest.NewRequest(http.MethodGet, "/v1/activities", nil)
	rr := httptest.NewRecorder()
	handler.activities(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
}

func TestListActivitiesReturnsCursor(t *testing.T) {
	start := time.Date(2026, time.March, 9, 9, 0, 0, 0, time.UTC)
	repo := &mockRepo{
		activities: []domain.Activity{
			{ID: "act-1", UserID: "user-1", Category: domain.CategoryCoding, StartTime: start, EndTime: start.Add(time.Hour)},
		},
		nextCursor: &domain.Cursor{StartedAt: start, ID: "act-1"},
	}
	handler := newTestHandler(repo)

	req := authed(httptest.NewRequest(http.MethodGet, "/v1/activities?limit=1", nil), readClaims())
	rr := httptest.NewRecorder()
	handler.activities(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}

	var resp ListActivitiesResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 item got %d", len(resp.Items))
	}
	if resp.NextCursor == "" {
		t.Fatal("expected a next cursor")
	}
}

func TestInsightsWithoutActivities(t *testing.T) {
	handler := newTestHandler(&mockRepo{})

	req := authed(httptest.NewRequest(http.MethodGet, "/v1/insights", nil), readClaims())
	rr := httptest.NewRecorder()
	handler.insights(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["peak_focus_window"] != "Not enough data yet" {
		t.Fatalf("unexpected peak focus window %v", resp["peak_focus_window"])
	}
	if resp["balance_ratio"] != 0.5 {
		t.Fatalf("unexpected balance ratio %v", resp["balance_ratio"])
	}
}

func TestAnalyticsSummary(t *testing.T) {
	day1 := time.Date(2026, time.March, 9, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	duration := 5
	repo := &mockRepo{
		activities: []domain.Activity{
			{ID: "a1", Category: domain.CategoryCoding, StartTime: day1, EndTime: day1.Add(2 * time.Hour)},
			{ID: "a2", Category: domain.CategoryStudy, StartTime: day2, EndTime: day2.Add(time.Hour)},
		},
		interruptions: []domain.Interruption{
			{ID: "i1", Type: domain.InterruptionPhone, Time: day2, DurationMinutes: &duration},
			{ID: "i2", Type: domain.InterruptionNoise, Time: day2},
		},
	}
	handler := newTestHandler(repo)

	req := authed(httptest.NewRequest(http.MethodGet, "/v1/analytics/summary?days=30", nil), readClaims())
	rr := httptest.NewRecorder()
	handler.analyticsSummary(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}

	var resp AnalyticsSummaryResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalFocusHours != 3.0 {
		t.Fatalf("expected 3.0 focus hours got %f", resp.TotalFocusHours)
	}
	if resp.TotalInterruptionMinutes != 10.0 {
		t.Fatalf("expected 10.0 interruption minutes got %f", resp.TotalInterruptionMinutes)
	}
	if resp.Streaks.CurrentStreak != 2 {
		t.Fatalf("expected current streak 2 got %d", resp.Streaks.CurrentStreak)
	}
	if len(resp.CategoryBreakdown) != 2 {
		t.Fatalf("expected 2 categories got %d", len(resp.CategoryBreakdown))
	}
	if resp.CategoryBreakdown[0].Category != "Coding" {
		t.Fatalf("expected Coding first got %s", resp.CategoryBreakdown[0].Category)
	}
}

func TestDeleteTransactionNotFound(t *testing.T) {
	handler := newTestHandler(&mockRepo{})

	req := authed(httptest.NewRequest(http.MethodDelete, "/v1/finances/transactions/missing", nil), writeClaims())
	rr := httptest.NewRecorder()
	handler.transactionByID(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rr.Code)
	}
}

func TestFinanceSummaryRejectsBadMonth(t *testing.T) {
	handler := newTestHandler(&mockRepo{})

	req := authed(httptest.NewRequest(http.MethodGet, "/v1/finances/summary?month=March", nil), readClaims())
	rr := httptest.NewRecorder()
	handler.financeSummary(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
}

func TestLogHabitUnknownHabit(t *testing.T) {
	handler := newTestHandler(&mockRepo{})

	body := `{"habit_id":"missing","date":"2026-03-10"}`
	req := authed(httptest.NewRequest(http.MethodPost, "/v1/planner/habits/log", strings.NewReader(body)), writeClaims())
	rr := httptest.NewRecorder()
	handler.logHabit(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rr.Code)
	}
}

func TestHabitLogsRoute(t *testing.T) {
	repo := &mockRepo{
		habits: []domain.Habit{{ID: "habit-1", UserID: "user-1", Name: "Reading", Frequency: domain.FrequencyDaily}},
		habitLogs: []domain.HabitLog{
			{ID: "log-1", HabitID: "habit-1", UserID: "user-1", Date: domain.NewDate(2026, time.March, 10), Completed: true, Count: 1},
		},
	}
	handler := newTestHandler(repo)

	req := authed(httptest.NewRequest(http.MethodGet, "/v1/planner/habits/habit-1/logs", nil), readClaims())
	rr := httptest.NewRecorder()
	handler.habitByID(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}

	var resp ListHabitLogsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].HabitID != "habit-1" {
		t.Fatalf("unexpected logs response: %+v", resp.Items)
	}
}

func TestExportCSV(t *testing.T) {
	start := time.Date(2026, time.March, 9, 9, 0, 0, 0, time.UTC)
	repo := &mockRepo{
		activities: []domain.Activity{
			{ID: "a1", Category: domain.CategoryCoding, StartTime: start, EndTime: start.Add(time.Hour)},
		},
		interruptions: []domain.Interruption{
			{ID: "i1", Type: domain.InterruptionPhone, Time: start.Add(30 * time.Minute)},
		},
	}
	handler := newTestHandler(repo)

	req := authed(httptest.NewRequest(http.MethodGet, "/v1/export", nil), readClaims())
	rr := httptest.NewRecorder()
	handler.export(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "text/csv" {
		t.Fatalf("unexpected content type %s", got)
	}

	lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "activity,") || !strings.HasPrefix(lines[2], "interruption,") {
		t.Fatalf("unexpected row ordering: %v", lines)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	handler := newTestHandler(&mockRepo{})

	req := authed(httptest.NewRequest(http.MethodPut, "/v1/activities", nil), writeClaims())
	rr := httptest.NewRecorder()
	handler.activities(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", rr.Code)
	}
}

// mockRepo is an in-memory domain.Repository for handler tests.
type mockRepo struct {
	activities    []domain.Activity
	nextCursor    *domain.Cursor
	interruptions []domain.Interruption
	transactions  []domain.Transaction
	budgets       []domain.Budget
	energyLogs    []domain.EnergyLog
	tasks         []domain.Task
	habits        []domain.Habit
	habitLogs     []domain.HabitLog
	daily         []domain.DailyReflection
	weekly        []domain.WeeklyReflection
	monthly       []domain.MonthlyReflection
}

func (m *mockRepo) CreateActivity(ctx context.Context, activity domain.Activity) error {
	m.activities = append(m.activities, activity)
	return nil
}

func (m *mockRepo) ListActivities(ctx context.Context, userID string, from, to time.Time, cursor *domain.Cursor, limit int) ([]domain.Activity, *domain.Cursor, error) {
	return m.activities, m.nextCursor, nil
}

func (m *mockRepo) CreateInterruption(ctx context.Context, interruption domain.Interruption) error {
	m.interruptions = append(m.interruptions, interruption)
	return nil
}

func (m *mockRepo) ListInterruptions(ctx context.Context, userID string, from, to time.Time) ([]domain.Interruption, error) {
	return m.interruptions, nil
}

func (m *mockRepo) CreateTransaction(ctx context.Context, transaction domain.Transaction) error {
	m.transactions = append(m.transactions, transaction)
	return nil
}

func (m *mockRepo) ListTransactions(ctx context.Context, userID string, from, to domain.Date) ([]domain.Transaction, error) {
	return m.transactions, nil
}

func (m *mockRepo) DeleteTransaction(ctx context.Context, userID, transactionID string) (bool, error) {
	for i, t := range m.transactions {
		if t.ID == transactionID {
			m.transactions = append(m.transactions[:i], m.transactions[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepo) UpsertBudget(ctx context.Context, budget domain.Budget) (domain.Budget, error) {
	m.budgets = append(m.budgets, budget)
	return budget, nil
}

func (m *mockRepo) ListBudgets(ctx context.Context, userID string, month domain.Date) ([]domain.Budget, error) {
	return m.budgets, nil
}

func (m *mockRepo) UpsertEnergyLog(ctx context.Context, log domain.EnergyLog) (domain.EnergyLog, error) {
	m.energyLogs = append(m.energyLogs, log)
	return log, nil
}

func (m *mockRepo) ListEnergyLogs(ctx context.Context, userID string, from, to domain.Date) ([]domain.EnergyLog, error) {
	return m.energyLogs, nil
}

func (m *mockRepo) GetEnergyLog(ctx context.Context, userID string, date domain.Date) (*domain.EnergyLog, error) {
	for i := range m.energyLogs {
		if m.energyLogs[i].Date.Equal(date) {
			return &m.energyLogs[i], nil
		}
	}
	return nil, nil
}

func (m *mockRepo) CreateTask(ctx context.Context, task domain.Task) error {
	m.tasks = append(m.tasks, task)
	return nil
}

func (m *mockRepo) GetTask(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	for i := range m.tasks {
		if m.tasks[i].ID == taskID {
			return &m.tasks[i], nil
		}
	}
	return nil, nil
}

func (m *mockRepo) ListTasks(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error) {
	return m.tasks, nil
}

func (m *mockRepo) UpdateTask(ctx context.Context, task domain.Task) error {
	return nil
}

func (m *mockRepo) DeleteTask(ctx context.Context, userID, taskID string) (bool, error) {
	for i, t := range m.tasks {
		if t.ID == taskID {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepo) CreateHabit(ctx context.Context, habit domain.Habit) error {
	m.habits = append(m.habits, habit)
	return nil
}

func (m *mockRepo) GetHabit(ctx context.Context, userID, habitID string) (*domain.Habit, error) {
	for i := range m.habits {
		if m.habits[i].ID == habitID {
			return &m.habits[i], nil
		}
	}
	return nil, nil
}

func (m *mockRepo) ListHabits(ctx context.Context, userID string, activeOnly bool) ([]domain.Habit, error) {
	return m.habits, nil
}

func (m *mockRepo) UpdateHabit(ctx context.Context, habit domain.Habit) error {
	return nil
}

func (m *mockRepo) DeleteHabit(ctx context.Context, userID, habitID string) (bool, error) {
	for i, h := range m.habits {
		if h.ID == habitID {
			m.habits = append(m.habits[:i], m.habits[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepo) UpsertHabitLog(ctx context.Context, log domain.HabitLog) (domain.HabitLog, error) {
	m.habitLogs = append(m.habitLogs, log)
	return log, nil
}

func (m *mockRepo) ListHabitLogs(ctx context.Context, userID, habitID string, from, to *domain.Date) ([]domain.HabitLog, error) {
	return m.habitLogs, nil
}

func (m *mockRepo) ListHabitLogsByDate(ctx context.Context, userID string, date domain.Date) ([]domain.HabitLog, error) {
	return m.habitLogs, nil
}

func (m *mockRepo) UpsertDailyReflection(ctx context.Context, reflection domain.DailyReflection) (domain.DailyReflection, error) {
	m.daily = append(m.daily, reflection)
	return reflection, nil
}

func (m *mockRepo) ListDailyReflections(ctx context.Context, userID string, from, to *domain.Date) ([]domain.DailyReflection, error) {
	return m.daily, nil
}

func (m *mockRepo) GetDailyReflection(ctx context.Context, userID string, date domain.Date) (*domain.DailyReflection, error) {
	for i := range m.daily {
		if m.daily[i].Date.Equal(date) {
			return &m.daily[i], nil
		}
	}
	return nil, nil
}

func (m *mockRepo) UpsertWeeklyReflection(ctx context.Context, reflection domain.WeeklyReflection) (domain.WeeklyReflection, error) {
	m.weekly = append(m.weekly, reflection)
	return reflection, nil
}

func (m *mockRepo) ListWeeklyReflections(ctx context.Context, userID string, limit int) ([]domain.WeeklyReflection, error) {
	return m.weekly, nil
}

func (m *mockRepo) UpsertMonthlyReflection(ctx context.Context, reflection domain.MonthlyReflection) (domain.MonthlyReflection, error) {
	m.monthly = append(m.monthly, reflection)
	return reflection, nil
}

func (m *mockRepo) ListMonthlyReflections(ctx context.Context, userID string, limit int) ([]domain.MonthlyReflection, error) {
	return m.monthly, nil
}
