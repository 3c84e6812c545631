package domain

import (
	"context"
	"fmt"
	"unicode/utf8"
)

const (
	maxTaskTitleLen = 200
	maxHabitNameLen = 100
)

// CreateTaskInput captures the payload from the API layer.
type CreateTaskInput struct {
	UserID           string
	Title            string
	Description      *string
	DueDate          *Date
	DueTime          *string
	Priority         TaskPriority
	Category         string
	EstimatedMinutes *int
	IsRecurring      bool
	RecurringPattern *RecurringPattern
}

// CreateTask validates and persists a new task in pending state.
func (s *Service) CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(input.Title) > maxTaskTitleLen {
		return nil, fmt.Errorf("%w: title longer than %d characters", ErrInvalidInput, maxTaskTitleLen)
	}
	if !input.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, input.Priority)
	}
	if input.IsRecurring && (input.RecurringPattern == nil || !input.RecurringPattern.Valid()) {
		return nil, fmt.Errorf("%w: recurring tasks need a valid pattern", ErrInvalidInput)
	}

	task := Task{
		ID:               newID(),
		UserID:           input.UserID,
		Title:            input.Title,
		Description:      input.Description,
		DueDate:          input.DueDate,
		DueTime:          input.DueTime,
		Priority:         input.Priority,
		Status:           TaskPending,
		Category:         input.Category,
		EstimatedMinutes: input.EstimatedMinutes,
		IsRecurring:      input.IsRecurring,
		RecurringPattern: input.RecurringPattern,
		CreatedAt:        s.now(),
	}

	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasks fetches tasks matching the filter.
func (s *Service) ListTasks(ctx context.Context, userID string, filter TaskFilter) ([]Task, error) {
	return s.repo.ListTasks(ctx, userID, filter)
}

// TasksInWindow fetches tasks created in the trailing window of days, for the
// cross-domain analytics endpoints.
func (s *Service) TasksInWindow(ctx context.Context, userID string, days int) ([]Task, error) {
	tasks, err := s.repo.ListTasks(ctx, userID, TaskFilter{})
	if err != nil {
		return nil, err
	}
	cutoff := s.now().AddDate(0, 0, -days)
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.CreatedAt.Before(cutoff) {
			out = append(out, t)
		}
	}
	return out, nil
}

// UpdateTaskInput carries optional field updates; nil means leave unchanged.
type UpdateTaskInput struct {
	Title            *string
	Description      *string
	DueDate          *Date
	DueTime          *string
	Priority         *TaskPriority
	Status           *TaskStatus
	Category         *string
	EstimatedMinutes *int
	ActualMinutes    *int
}

// UpdateTask applies a partial update. Transitioning into completed stamps
// CompletedAt; transitioning out clears it.
func (s *Service) UpdateTask(ctx context.Context, userID, taskID string, input UpdateTaskInput) (*Task, error) {
	task, err := s.repo.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
		}
		if utf8.RuneCountInString(*input.Title) > maxTaskTitleLen {
			return nil, fmt.Errorf("%w: title longer than %d characters", ErrInvalidInput, maxTaskTitleLen)
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = input.Description
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.DueTime != nil {
		task.DueTime = input.DueTime
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, *input.Priority)
		}
		task.Priority = *input.Priority
	}
	if input.Category != nil {
		task.Category = *input.Category
	}
	if input.EstimatedMinutes != nil {
		task.EstimatedMinutes = input.EstimatedMinutes
	}
	if input.ActualMinutes != nil {
		task.ActualMinutes = input.ActualMinutes
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *input.Status)
		}
		if *input.Status == TaskCompleted && task.Status != TaskCompleted {
			now := s.now()
			task.CompletedAt = &now
		}
		if *input.Status != TaskCompleted {
			task.CompletedAt = nil
		}
		task.Status = *input.Status
	}

	if err := s.repo.UpdateTask(ctx, *task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task owned by the user.
func (s *Service) DeleteTask(ctx context.Context, userID, taskID string) error {
	deleted, err := s.repo.DeleteTask(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// CreateHabitInput captures the payload from the API layer.
type CreateHabitInput struct {
	UserID      string
	Name        string
	Description *string
	Frequency   HabitFrequency
	TargetCount int
	Color       string
	Icon        string
}

// CreateHabit validates and persists a new habit.
func (s *Service) CreateHabit(ctx context.Context, input CreateHabitInput) (*Habit, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(input.Name) > maxHabitNameLen {
		return nil, fmt.Errorf("%w: name longer than %d characters", ErrInvalidInput, maxHabitNameLen)
	}
	if !input.Frequency.Valid() {
		return nil, fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, input.Frequency)
	}
	if input.TargetCount < 1 {
		input.TargetCount = 1
	}

	habit := Habit{
		ID:          newID(),
		UserID:      input.UserID,
		Name:        input.Name,
		Description: input.Description,
		Frequency:   input.Frequency,
		TargetCount: input.TargetCount,
		Color:       input.Color,
		Icon:        input.Icon,
		IsActive:    true,
		CreatedAt:   s.now(),
	}

	if err := s.repo.CreateHabit(ctx, habit); err != nil {
		return nil, err
	}
	return &habit, nil
}

// ListHabits fetches the user's habits.
func (s *Service) ListHabits(ctx context.Context, userID string, activeOnly bool) ([]Habit, error) {
	return s.repo.ListHabits(ctx, userID, activeOnly)
}

// UpdateHabitInput carries optional field updates; nil means leave unchanged.
type UpdateHabitInput struct {
	Name        *string
	Description *string
	Frequency   *HabitFrequency
	TargetCount *int
	Color       *string
	Icon        *string
	IsActive    *bool
}

// UpdateHabit applies a partial update to a habit.
func (s *Service) UpdateHabit(ctx context.Context, userID, habitID string, input UpdateHabitInput) (*Habit, error) {
	habit, err := s.repo.GetHabit(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}
	if habit == nil {
		return nil, ErrNotFound
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		if utf8.RuneCountInString(*input.Name) > maxHabitNameLen {
			return nil, fmt.Errorf("%w: name longer than %d characters", ErrInvalidInput, maxHabitNameLen)
		}
		habit.Name = *input.Name
	}
	if input.Description != nil {
		habit.Description = input.Description
	}
	if input.Frequency != nil {
		if !input.Frequency.Valid() {
			return nil, fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, *input.Frequency)
		}
		habit.Frequency = *input.Frequency
	}
	if input.TargetCount != nil && *input.TargetCount >= 1 {
		habit.TargetCount = *input.TargetCount
	}
	if input.Color != nil {
		habit.Color = *input.Color
	}
	if input.Icon != nil {
		habit.Icon = *input.Icon
	}
	if input.IsActive != nil {
		habit.IsActive = *input.IsActive
	}

	if err := s.repo.UpdateHabit(ctx, *habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// DeleteHabit removes a habit owned by the user.
func (s *Service) DeleteHabit(ctx context.Context, userID, habitID string) error {
	deleted, err := s.repo.DeleteHabit(ctx, userID, habitID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// LogHabitInput captures the payload from the API layer.
type LogHabitInput struct {
	UserID    string
	HabitID   string
	Date      Date
	Completed bool
	Count     int
	Note      *string
}

// LogHabit records (or re-records) a habit for a date. The habit.logged event
// is written to the outbox in the same transaction; the consumer recomputes
// streak counters from it asynchronously.
func (s *Service) LogHabit(ctx context.Context, input LogHabitInput) (*HabitLog, error) {
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if input.Count < 1 {
		input.Count = 1
	}

	habit, err := s.repo.GetHabit(ctx, input.UserID, input.HabitID)
	if err != nil {
		return nil, err
	}
	if habit == nil {
		return nil, ErrNotFound
	}

	log := HabitLog{
		ID:        newID(),
		HabitID:   input.HabitID,
		UserID:    input.UserID,
		Date:      input.Date,
		Completed: input.Completed,
		Count:     input.Count,
		Note:      input.Note,
		CreatedAt: s.now(),
	}

	stored, err := s.repo.UpsertHabitLog(ctx, log)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// ListHabitLogs fetches logs for one habit, optionally bounded by dates.
func (s *Service) ListHabitLogs(ctx context.Context, userID, habitID string, from, to *Date) ([]HabitLog, error) {
	habit, err := s.repo.GetHabit(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}
	if habit == nil {
		return nil, ErrNotFound
	}
	return s.repo.ListHabitLogs(ctx, userID, habitID, from, to)
}

// TodayPlan bundles everything the daily planner view needs.
type TodayPlan struct {
	Tasks        []Task
	OverdueTasks []Task
	Habits       []Habit
	HabitLogs    []HabitLog
	Stats        TodayStats
}

// TodayStats summarises today's task and habit completion.
type TodayStats struct {
	TasksTotal      int
	TasksCompleted  int
	HabitsTotal     int
	HabitsCompleted int
}

// TodaySummary assembles today's tasks, overdue backlog, active habits, and
// habit logs.
func (s *Service) TodaySummary(ctx context.Context, userID string) (*TodayPlan, error) {
	today := DateOf(s.now())

	tasks, err := s.repo.ListTasks(ctx, userID, TaskFilter{DueDate: &today})
	if err != nil {
		return nil, err
	}
	overdue, err := s.repo.ListTasks(ctx, userID, TaskFilter{Overdue: true})
	if err != nil {
		return nil, err
	}
	habits, err := s.repo.ListHabits(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	logs, err := s.repo.ListHabitLogsByDate(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	plan := TodayPlan{
		Tasks:        tasks,
		OverdueTasks: overdue,
		Habits:       habits,
		HabitLogs:    logs,
	}
	plan.Stats.TasksTotal = len(tasks)
	for _, t := range tasks {
		if t.Status == TaskCompleted {
			plan.Stats.TasksCompleted++
		}
	}
	plan.Stats.HabitsTotal = len(habits)
	completedHabits := make(map[string]struct{})
	for _, l := range logs {
		if l.Completed {
			completedHabits[l.HabitID] = struct{}{}
		}
	}
	plan.Stats.HabitsCompleted = len(completedHabits)

	return &plan, nil
}
