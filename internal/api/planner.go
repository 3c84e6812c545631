package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"example.com/routine/internal/domain"
)

func (h *Handler) tasks(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createTask(w, r)
	case http.MethodGet:
		h.listTasks(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *Handler) taskByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/planner/tasks/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing task id")
		return
	}

	switch r.Method {
	case http.MethodPatch:
		h.updateTask(w, r, id)
	case http.MethodDelete:
		h.deleteTask(w, r, id)
	default:
		methodNotAllowed(w)
	}
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireWrite(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	input, err := req.toInput(claims.Subject)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	task, err := h.service.CreateTask(r.Context(), input)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTaskView(*task))
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRead(w, r)
	if !ok {
		return
	}

	var filter domain.TaskFilter
	query := r.URL.Query()
	if raw := query.Get("status"); raw != "" {
		status := domain.TaskStatus(raw)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "validation_failed", "invalid status")
			return
		}
		filter.Status = &status
	}
	if raw := query.Get("priority"); raw != "" {
		priority := domain.TaskPriority(raw)
		if !priority.Valid() {
			writeError(w, http.StatusBadRequest, "validation_failed", "invalid priority")
			return
		}
		filter.Priority = &priority
	}
	if raw := query.Get("category"); raw != "" {
		filter.Category = &raw
	}
	if raw := query.Get("due_date"); raw != "" {
		due, err := parseDateField(raw, "due_date")
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		filter.DueDate = &due
	}
	filter.Overdue = query.Get("overdue") == "true"

	tasks, err := h.service.ListTasks(r.Context(), claims.Subject, filter)
	if err != nil {
		serviceError(w, err)
		return
	}

	items := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, toTaskView(t))
	}
	writeJSON(w, http.StatusOK, ListTasksResponse{Items: items})
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := requireWrite(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	input, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	task, err := h.service.UpdateTask(r.Context(), claims.Subject, id, input)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskView(*task))
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := requireWrite(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteTask(r.Context(), claims.Subject, id); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) habits(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createHabit(w, r)
	case http.MethodGet:
		h.listHabits(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *Handler) habitByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/planner/habits/")
	if rest == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing habit id")
		return
	}

	if id, ok := strings.CutSuffix(rest, "/logs"); ok {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.listHabitLogs(w, r, id)
		return
	}
	if strings.Contains(rest, "/") {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing habit id")
		return
	}

	switch r.Method {
	case http.MethodPatch:
		h.updateHabit(w, r, rest)
	case http.MethodDelete:
		h.deleteHabit(w, r, rest)
	default:
		methodNotAllowed(w)
	}
}

func (h *Handler) createHabit(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireWrite(w, r)
	if !ok {
		return
	}

	var req CreateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	habit, err := h.service.CreateHabit(r.Context(), domain.CreateHabitInput{
		UserID:      claims.Subject,
		Name:        req.Name,
		Description: req.Description,
		Frequency:   domain.HabitFrequency(req.Frequency),
		TargetCount: req.TargetCount,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toHabitView(*habit))
}

func (h *Handler) listHabits(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRead(w, r)
	if !ok {
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"
	habits, err := h.service.ListHabits(r.Context(), claims.Subject, activeOnly)
	if err != nil {
		serviceError(w, err)
		return
	}

	items := make([]HabitView, 0, len(habits))
	for _, habit := range habits {
		items = append(items, toHabitView(habit))
	}
	writeJSON(w, http.StatusOK, ListHabitsResponse{Items: items})
}

func (h *Handler) updateHabit(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := requireWrite(w, r)
	if !ok {
		return
	}

	var req UpdateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	input := domain.UpdateHabitInput{
		Name:        req.Name,
		Description: req.Description,
		TargetCount: req.TargetCount,
		Color:       req.Color,
		Icon:        req.Icon,
		IsActive:    req.IsActive,
	}
	if req.Frequency != nil {
		frequency := domain.HabitFrequency(*req.Frequency)
		input.Frequency = &frequency
	}

	habit, err := h.service.UpdateHabit(r.Context(), claims.Subject, id, input)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHabitView(*habit))
}

func (h *Handler) deleteHabit(w http.ResponseWriter, r *http.Request, id string) {
	claims, ok := requireWrite(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteHabit(r.Context(), claims.Subject, id); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) logHabit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	claims, ok := requireWrite(w, r)
	if !ok {
		return
	}

	var req LogHabitRequest
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

	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	log, err := h.service.LogHabit(r.Context(), domain.LogHabitInput{
		UserID:    claims.Subject,
		HabitID:   req.HabitID,
		Date:      date,
		Completed: completed,
		Count:     req.Count,
		Note:      req.Note,
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHabitLogView(*log))
}

func (h *Handler) listHabitLogs(w http.ResponseWriter, r *http.Request, habitID string) {
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

	logs, err := h.service.ListHabitLogs(r.Context(), claims.Subject, habitID, from, to)
	if err != nil {
		serviceError(w, err)
		return
	}

	items := make([]HabitLogView, 0, len(logs))
	for _, log := range logs {
		items = append(items, toHabitLogView(log))
	}
	writeJSON(w, http.StatusOK, ListHabitLogsResponse{Items: items})
}

func (h *Handler) plannerToday(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	claims, ok := requireRead(w, r)
	if !ok {
		return
	}

	plan, err := h.service.TodaySummary(r.Context(), claims.Subject)
	if err != nil {
		serviceError(w, err)
		return
	}

	resp := TodayPlanResponse{
		Tasks:        make([]TaskView, 0, len(plan.Tasks)),
		OverdueTasks: make([]TaskView, 0, len(plan.OverdueTasks)),
		Habits:       make([]HabitView, 0, len(plan.Habits)),
		HabitLogs:    make([]HabitLogView, 0, len(plan.HabitLogs)),
		Stats: TodayStatsView{
			TasksTotal:      plan.Stats.TasksTotal,
			TasksCompleted:  plan.Stats.TasksCompleted,
			HabitsTotal:     plan.Stats.HabitsTotal,
			HabitsCompleted: plan.Stats.HabitsCompleted,
		},
	}
	for _, t := range plan.Tasks {
		resp.Tasks = append(resp.Tasks, toTaskView(t))
	}
	for _, t := range plan.OverdueTasks {
		resp.OverdueTasks = append(resp.OverdueTasks, toTaskView(t))
	}
	for _, habit := range plan.Habits {
		resp.Habits = append(resp.Habits, toHabitView(habit))
	}
	for _, log := range plan.HabitLogs {
		resp.HabitLogs = append(resp.HabitLogs, toHabitLogView(log))
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateTaskRequest is the payload for POST /v1/planner/tasks.
type CreateTaskRequest struct {
	Title            string  `json:"title"`
	Description      *string `json:"description"`
	DueDate          *string `json:"due_date"`
	DueTime          *string `json:"due_time"`
	Priority         string  `json:"priority"`
	Category         string  `json:"category"`
	EstimatedMinutes *int    `json:"estimated_minutes"`
	IsRecurring      bool    `json:"is_recurring"`
	RecurringPattern *string `json:"recurring_pattern"`
}

// Validate ensures request correctness.
func (r CreateTaskRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	if strings.TrimSpace(r.Priority) == "" {
		return errors.New("priority is required")
	}
	return nil
}

func (r CreateTaskRequest) toInput(userID string) (domain.CreateTaskInput, error) {
	due, err := parseOptionalDate(r.DueDate, "due_date")
	if err != nil {
		return domain.CreateTaskInput{}, err
	}

	input := domain.CreateTaskInput{
		UserID:           userID,
		Title:            r.Title,
		Description:      r.Description,
		DueDate:          due,
		DueTime:          r.DueTime,
		Priority:         domain.TaskPriority(r.Priority),
		Category:         r.Category,
		EstimatedMinutes: r.EstimatedMinutes,
		IsRecurring:      r.IsRecurring,
	}
	if r.RecurringPattern != nil {
		pattern := domain.RecurringPattern(*r.RecurringPattern)
		input.RecurringPattern = &pattern
	}
	return input, nil
}

// UpdateTaskRequest is the payload for PATCH /v1/planner/tasks/{id}. Absent
// fields are left unchanged.
type UpdateTaskRequest struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	DueDate          *string `json:"due_date"`
	DueTime          *string `json:"due_time"`
	Priority         *string `json:"priority"`
	Status           *string `json:"status"`
	Category         *string `json:"category"`
	EstimatedMinutes *int    `json:"estimated_minutes"`
	ActualMinutes    *int    `json:"actual_minutes"`
}

func (r UpdateTaskRequest) toInput() (domain.UpdateTaskInput, error) {
	due, err := parseOptionalDate(r.DueDate, "due_date")
	if err != nil {
		return domain.UpdateTaskInput{}, err
	}

	input := domain.UpdateTaskInput{
		Title:            r.Title,
		Description:      r.Description,
		DueDate:          due,
		DueTime:          r.DueTime,
		Category:         r.Category,
		EstimatedMinutes: r.EstimatedMinutes,
		ActualMinutes:    r.ActualMinutes,
	}
	if r.Priority != nil {
		priority := domain.TaskPriority(*r.Priority)
		input.Priority = &priority
	}
	if r.Status != nil {
		status := domain.TaskStatus(*r.Status)
		input.Status = &status
	}
	return input, nil
}

// CreateHabitRequest is the payload for POST /v1/planner/habits.
type CreateHabitRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Frequency   string  `json:"frequency"`
	TargetCount int     `json:"target_count"`
	Color       string  `json:"color"`
	Icon        string  `json:"icon"`
}

// Validate ensures request correctness.
func (r CreateHabitRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(r.Frequency) == "" {
		return errors.New("frequency is required")
	}
	return nil
}

// UpdateHabitRequest is the payload for PATCH /v1/planner/habits/{id}. Absent
// fields are left unchanged.
type UpdateHabitRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Frequency   *string `json:"frequency"`
	TargetCount *int    `json:"target_count"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
	IsActive    *bool   `json:"is_active"`
}

// LogHabitRequest is the payload for POST /v1/planner/habits/log. Completed
// defaults to true when omitted.
type LogHabitRequest struct {
	HabitID   string  `json:"habit_id"`
	Date      string  `json:"date"`
	Completed *bool   `json:"completed"`
	Count     int     `json:"count"`
	Note      *string `json:"note"`
}

// Validate ensures request correctness.
func (r LogHabitRequest) Validate() error {
	if strings.TrimSpace(r.HabitID) == "" {
		return errors.New("habit_id is required")
	}
	if strings.TrimSpace(r.Date) == "" {
		return errors.New("date is required")
	}
	return nil
}

// TaskView exposes full details about a task.
type TaskView struct {
	TaskID           string       `json:"task_id"`
	Title            string       `json:"title"`
	Description      *string      `json:"description,omitempty"`
	DueDate          *domain.Date `json:"due_date,omitempty"`
	DueTime          *string      `json:"due_time,omitempty"`
	Priority         string       `json:"priority"`
	Status           string       `json:"status"`
	Category         string       `json:"category,omitempty"`
	EstimatedMinutes *int         `json:"estimated_minutes,omitempty"`
	ActualMinutes    *int         `json:"actual_minutes,omitempty"`
	CompletedAt      *time.Time   `json:"completed_at,omitempty"`
	IsRecurring      bool         `json:"is_recurring"`
	RecurringPattern *string      `json:"recurring_pattern,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
}

// ListTasksResponse packages list results.
type ListTasksResponse struct {
	Items []TaskView `json:"items"`
}

// HabitView exposes full details about a habit.
type HabitView struct {
	HabitID       string    `json:"habit_id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	Frequency     string    `json:"frequency"`
	TargetCount   int       `json:"target_count"`
	Color         string    `json:"color,omitempty"`
	Icon          string    `json:"icon,omitempty"`
	IsActive      bool      `json:"is_active"`
	CurrentStreak int       `json:"current_streak"`
	BestStreak    int       `json:"best_streak"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListHabitsResponse packages list results.
type ListHabitsResponse struct {
	Items []HabitView `json:"items"`
}

// HabitLogView exposes full details about a habit log.
type HabitLogView struct {
	HabitLogID string      `json:"habit_log_id"`
	HabitID    string      `json:"habit_id"`
	Date       domain.Date `json:"date"`
	Completed  bool        `json:"completed"`
	Count      int         `json:"count"`
	Note       *string     `json:"note,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// ListHabitLogsResponse packages list results.
type ListHabitLogsResponse struct {
	Items []HabitLogView `json:"items"`
}

// TodayStatsView summarises today's task and habit completion.
type TodayStatsView struct {
	TasksTotal      int `json:"tasks_total"`
	TasksCompleted  int `json:"tasks_completed"`
	HabitsTotal     int `json:"habits_total"`
	HabitsCompleted int `json:"habits_completed"`
}

// TodayPlanResponse bundles everything the daily planner view needs.
type TodayPlanResponse struct {
	Tasks        []TaskView     `json:"tasks"`
	OverdueTasks []TaskView     `json:"overdue_tasks"`
	Habits       []HabitView    `json:"habits"`
	HabitLogs    []HabitLogView `json:"habit_logs"`
	Stats        TodayStatsView `json:"stats"`
}

func toTaskView(t domain.Task) TaskView {
	view := TaskView{
		TaskID:           t.ID,
		Title:            t.Title,
		Description:      t.Description,
		DueDate:          t.DueDate,
		DueTime:          t.DueTime,
		Priority:         string(t.Priority),
		Status:           string(t.Status),
		Category:         t.Category,
		EstimatedMinutes: t.EstimatedMinutes,
		ActualMinutes:    t.ActualMinutes,
		CompletedAt:      t.CompletedAt,
		IsRecurring:      t.IsRecurring,
		CreatedAt:        t.CreatedAt,
	}
	if t.RecurringPattern != nil {
		pattern := string(*t.RecurringPattern)
		view.RecurringPattern = &pattern
	}
	return view
}

func toHabitView(h domain.Habit) HabitView {
	return HabitView{
		HabitID:       h.ID,
		Name:          h.Name,
		Description:   h.Description,
		Frequency:     string(h.Frequency),
		TargetCount:   h.TargetCount,
		Color:         h.Color,
		Icon:          h.Icon,
		IsActive:      h.IsActive,
		CurrentStreak: h.CurrentStreak,
		BestStreak:    h.BestStreak,
		CreatedAt:     h.CreatedAt,
	}
}

func toHabitLogView(l domain.HabitLog) HabitLogView {
	return HabitLogView{
		HabitLogID: l.ID,
		HabitID:    l.HabitID,
		Date:       l.Date,
		Completed:  l.Completed,
		Count:      l.Count,
		Note:       l.Note,
		CreatedAt:  l.CreatedAt,
	}
}
