package domain

import "time"

// TaskPriority orders tasks by urgency.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Valid reports whether the priority is an enumerated value.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// TaskStatus tracks a task through its lifecycle.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

// Valid reports whether the status is an enumerated value.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskCancelled:
		return true
	}
	return false
}

// Open reports whether the task still needs attention.
func (s TaskStatus) Open() bool {
	return s == TaskPending || s == TaskInProgress
}

// RecurringPattern describes how a recurring task repeats.
type RecurringPattern string

const (
	RecurDaily    RecurringPattern = "daily"
	RecurWeekdays RecurringPattern = "weekdays"
	RecurWeekly   RecurringPattern = "weekly"
	RecurMonthly  RecurringPattern = "monthly"
)

// Valid reports whether the pattern is an enumerated value.
func (r RecurringPattern) Valid() bool {
	switch r {
	case RecurDaily, RecurWeekdays, RecurWeekly, RecurMonthly:
		return true
	}
	return false
}

// Task is a planned unit of work, optionally due on a date.
type Task struct {
	ID               string
	UserID           string
	Title            string
	Description      *string
	DueDate          *Date
	DueTime          *string
	Priority         TaskPriority
	Status           TaskStatus
	Category         string
	EstimatedMinutes *int
	ActualMinutes    *int
	CompletedAt      *time.Time
	IsRecurring      bool
	RecurringPattern *RecurringPattern
	CreatedAt        time.Time
}

// HabitFrequency describes how often a habit should be completed.
type HabitFrequency string

const (
	FrequencyDaily    HabitFrequency = "daily"
	FrequencyWeekdays HabitFrequency = "weekdays"
	FrequencyWeekly   HabitFrequency = "weekly"
)

// Valid reports whether the frequency is an enumerated value.
func (f HabitFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekdays, FrequencyWeekly:
		return true
	}
	return false
}

// Habit is a recurring behaviour the user wants to build. CurrentStreak and
// BestStreak are derived values maintained asynchronously by the streak
// recomputer; they may lag the latest habit log.
type Habit struct {
	ID            string
	UserID        string
	Name          string
	Description   *string
	Frequency     HabitFrequency
	TargetCount   int
	Color         string
	Icon          string
	IsActive      bool
	CurrentStreak int
	BestStreak    int
	CreatedAt     time.Time
}

// HabitLog marks a habit done (or explicitly not done) on a date.
// (habit, date) is unique; repeated logs upsert.
type HabitLog struct {
	ID        string
	HabitID   string
	UserID    string
	Date      Date
	Completed bool
	Count     int
	Note      *string
	CreatedAt time.Time
}
