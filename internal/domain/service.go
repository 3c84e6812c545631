package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidInput flags a request that violates a domain invariant.
	ErrInvalidInput = errors.New("invalid input")
)

// Cursor models the pagination token for activity listings.
type Cursor struct {
	StartedAt time.Time
	ID        string
}

// ActivityRepository captures activity persistence operations. Create also
// records the activity.created outbox event in the same transaction.
type ActivityRepository interface {
	CreateActivity(ctx context.Context, activity Activity) error
	ListActivities(ctx context.Context, userID string, from, to time.Time, cursor *Cursor, limit int) ([]Activity, *Cursor, error)
}

// InterruptionRepository captures interruption persistence operations.
type InterruptionRepository interface {
	CreateInterruption(ctx context.Context, interruption Interruption) error
	ListInterruptions(ctx context.Context, userID string, from, to time.Time) ([]Interruption, error)
}

// FinanceRepository captures transaction and budget persistence operations.
type FinanceRepository interface {
	CreateTransaction(ctx context.Context, transaction Transaction) error
	ListTransactions(ctx context.Context, userID string, from, to Date) ([]Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID string) (bool, error)
	UpsertBudget(ctx context.Context, budget Budget) (Budget, error)
	ListBudgets(ctx context.Context, userID string, month Date) ([]Budget, error)
}

// EnergyRepository captures energy log persistence operations.
type EnergyRepository interface {
	UpsertEnergyLog(ctx context.Context, log EnergyLog) (EnergyLog, error)
	ListEnergyLogs(ctx context.Context, userID string, from, to Date) ([]EnergyLog, error)
	GetEnergyLog(ctx context.Context, userID string, date Date) (*EnergyLog, error)
}

// PlannerRepository captures task, habit, and habit log persistence.
// UpsertHabitLog also records the habit.logged outbox event in the same
// transaction.
type PlannerRepository interface {
	CreateTask(ctx context.Context, task Task) error
	GetTask(ctx context.Context, userID, taskID string) (*Task, error)
	ListTasks(ctx context.Context, userID string, filter TaskFilter) ([]Task, error)
	UpdateTask(ctx context.Context, task Task) error
	DeleteTask(ctx context.Context, userID, taskID string) (bool, error)

	CreateHabit(ctx context.Context, habit Habit) error
	GetHabit(ctx context.Context, userID, habitID string) (*Habit, error)
	ListHabits(ctx context.Context, userID string, activeOnly bool) ([]Habit, error)
	UpdateHabit(ctx context.Context, habit Habit) error
	DeleteHabit(ctx context.Context, userID, habitID string) (bool, error)

	UpsertHabitLog(ctx context.Context, log HabitLog) (HabitLog, error)
	ListHabitLogs(ctx context.Context, userID, habitID string, from, to *Date) ([]HabitLog, error)
	ListHabitLogsByDate(ctx context.Context, userID string, date Date) ([]HabitLog, error)
}

// ReflectionRepository captures reflection persistence. All writes upsert on
// the natural key.
type ReflectionRepository interface {
	UpsertDailyReflection(ctx context.Context, reflection DailyReflection) (DailyReflection, error)
	ListDailyReflections(ctx context.Context, userID string, from, to *Date) ([]DailyReflection, error)
	GetDailyReflection(ctx context.Context, userID string, date Date) (*DailyReflection, error)
	UpsertWeeklyReflection(ctx context.Context, reflection WeeklyReflection) (WeeklyReflection, error)
	ListWeeklyReflections(ctx context.Context, userID string, limit int) ([]WeeklyReflection, error)
	UpsertMonthlyReflection(ctx context.Context, reflection MonthlyReflection) (MonthlyReflection, error)
	ListMonthlyReflections(ctx context.Context, userID string, limit int) ([]MonthlyReflection, error)
}

// Repository aggregates all persistence surfaces backing the tracker.
type Repository interface {
	ActivityRepository
	InterruptionRepository
	FinanceRepository
	EnergyRepository
	PlannerRepository
	ReflectionRepository
}

// TaskFilter narrows task listings.
type TaskFilter struct {
	Status   *TaskStatus
	Priority *TaskPriority
	Category *string
	DueDate  *Date
	Overdue  bool
}

// Service orchestrates tracker workflows.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func newID() string {
	return uuid.NewString()
}
