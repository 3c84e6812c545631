package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"example.com/routine/internal/domain"
	"example.com/routine/internal/events"
)

const taskColumns = `task_id, user_id, title, description, due_date, due_time, priority, status, category, estimated_minutes, actual_minutes, completed_at, is_recurring, recurring_pattern, created_at`

const habitColumns = `habit_id, user_id, name, description, frequency, target_count, color, icon, is_active, current_streak, best_streak, created_at`

const habitLogColumns = `habit_log_id, habit_id, user_id, date, completed, count, note, created_at`

// CreateTask persists a new task.
func (r *Repository) CreateTask(ctx context.Context, task domain.Task) error {
	return r.withUser(ctx, task.UserID, func(tx pgx.Tx) error {
		const stmt = `INSERT INTO tasks (` + taskColumns + `)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`

		_, err := tx.Exec(ctx, stmt,
			task.ID,
			task.UserID,
			task.Title,
			task.Description,
			dateOrNil(task.DueDate),
			task.DueTime,
			task.Priority,
			task.Status,
			task.Category,
			task.EstimatedMinutes,
			task.ActualMinutes,
			task.CompletedAt,
			task.IsRecurring,
			task.RecurringPattern,
			task.CreatedAt,
		)
		return err
	})
}

// GetTask returns one task, or nil when it does not exist.
func (r *Repository) GetTask(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	const query = `SELECT ` + taskColumns + ` FROM tasks WHERE user_id=$1 AND task_id=$2`

	var found *domain.Task
	err := r.withUser(ctx, userID, func(tx pgx.Tx) error {
		task, err := scanTask(tx.QueryRow(ctx, query, userID, taskID))
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		found = &task
		return nil
	})
	return found, err
}

// ListTasks returns tasks matching the filter, soonest due first with undated
// tasks last.
func (r *Repository) ListTasks(ctx context.Context, userID string, filter domain.TaskFilter) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id=$1`
	args := []interface{}{userID}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(` AND status=$%d`, len(args))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		query += fmt.Sprintf(` AND priority=$%d`, len(args))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		query += fmt.Sprintf(` AND category=$%d`, len(args))
	}
	if filter.DueDate != nil {
		args = append(args, filter.DueDate.Time())
		query += fmt.Sprintf(` AND due_date=$%d`, len(args))
	}
	if filter.Overdue {
		query += ` AND due_date < CURRENT_DATE AND status IN ('pending','in_progress')`
	}
	query += ` ORDER BY due_date ASC NULLS LAST, created_at ASC`

	var results []domain.Task
	err := r.withUser(ctx, userID, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			task, err := scanTask(rows)
			if err != nil {
				return err
			}
			results = append(results, task)
		}
		return rows.Err()
	})
	return results, err
}

// UpdateTask replaces every mutable task column.
func (r *Repository) UpdateTask(ctx context.Context, task domain.Task) error {
	const stmt = `UPDATE tasks SET
            title=$3, description=$4, due_date=$5, due_time=$6, priority=$7,
            status=$8, category=$9, estimated_minutes=$10, actual_minutes=$11,
            completed_at=$12, is_recurring=$13, recurring_pattern=$14
        WHERE user_id=$1 AND task_id=$2`

	return r.withUser(ctx, task.UserID, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, stmt,
			task.UserID,
			task.ID,
			task.Title,
			task.Description,
			dateOrNil(task.DueDate),
			task.DueTime,
			task.Priority,
			task.Status,
			task.Category,
			task.EstimatedMinutes,
			task.ActualMinutes,
			task.CompletedAt,
			task.IsRecurring,
			task.RecurringPattern,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// DeleteTask removes a task, reporting whether a row existed.
func (r *Repository) DeleteTask(ctx context.Context, userID, taskID string) (bool, error) {
	var deleted bool
	err := r.withUser(ctx, userID, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM tasks WHERE user_id=$1 AND task_id=$2`, userID, taskID)
		if err != nil {
			return err
		}
		deleted = tag.RowsAffected() > 0
		return nil
	})
	return deleted, err
}

// CreateHabit persists a new habit.
func (r *Repository) CreateHabit(ctx context.Context, habit domain.Habit) error {
	return r.withUser(ctx, habit.UserID, func(tx pgx.Tx) error {
		const stmt = `INSERT INTO habits (` + habitColumns + `)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`

		_, err := tx.Exec(ctx, stmt,
			habit.ID,
			habit.UserID,
			habit.Name,
			habit.Description,
			habit.Frequency,
			habit.TargetCount,
			habit.Color,
			habit.Icon,
			habit.IsActive,
			habit.CurrentStreak,
			habit.BestStreak,
			habit.CreatedAt,
		)
		return err
	})
}

// GetHabit returns one habit, or nil when it does not exist.
func (r *Repository) GetHabit(ctx context.Context, userID, habitID string) (*domain.Habit, error) {
	const query = `SELECT ` + habitColumns + ` FROM habits WHERE user_id=$1 AND habit_id=$2`

	var found *domain.Habit
	err := r.withUser(ctx, userID, func(tx pgx.Tx) error {
		habit, err := scanHabit(tx.QueryRow(ctx, query, userID, habitID))
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		found = &habit
		return nil
	})
	return found, err
}

// ListHabits returns the user's habits, oldest first.
func (r *Repository) ListHabits(ctx context.Context, userID string, activeOnly bool) ([]domain.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE user_id=$1`
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY created_at ASC`

	var results []domain.Habit
	err := r.withUser(ctx, userID, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			habit, err := scanHabit(rows)
			if err != nil {
				return err
			}
			results = append(results, habit)
		}
		return rows.Err()
	})
	return results, err
}

// UpdateHabit replaces the habit's descriptive columns. Streak counters are
// owned by the recomputer and left untouched.
func (r *Repository) UpdateHabit(ctx context.Context, habit domain.Habit) error {
	const stmt = `UPDATE habits SET
            name=$3, description=$4, frequency=$5, target_count=$6,
            color=$7, icon=$8, is_active=$9
        WHERE user_id=$1 AND habit_id=$2`

	return r.withUser(ctx, habit.UserID, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, stmt,
			habit.UserID,
			habit.ID,
			habit.Name,
			habit.Description,
			habit.Frequency,
			habit.TargetCount,
			habit.Color,
			habit.Icon,
			habit.IsActive,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// DeleteHabit removes a habit and its logs, reporting whether a row existed.
func (r *Repository) DeleteHabit(ctx context.Context, userID, habitID string) (bool, error) {
	var deleted bool
	err := r.withUser(ctx, userID, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM habit_logs WHERE user_id=$1 AND habit_id=$2`, userID, habitID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM habits WHERE user_id=$1 AND habit_id=$2`, userID, habitID)
		if err != nil {
			return err
		}
		deleted = tag.RowsAffected() > 0
		return nil
	})
	return deleted, err
}

// UpsertHabitLog creates or replaces the log for (habit, date), records the
// habit.logged outbox event in the same transaction, and returns the stored
// row. The incoming log id keys the outbox event so re-logging a day still
// publishes.
func (r *Repository) UpsertHabitLog(ctx context.Context, log domain.HabitLog) (domain.HabitLog, error) {
	const stmt = `INSERT INTO habit_logs (` + habitLogColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        ON CONFLICT (habit_id, date) DO UPDATE SET
            completed = EXCLUDED.completed,
            count = EXCLUDED.count,
            note = EXCLUDED.note
        RETURNING ` + habitLogColumns

	var stored domain.HabitLog
	err := r.withUser(ctx, log.UserID, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, stmt,
			log.ID,
			log.HabitID,
			log.UserID,
			log.Date.Time(),
			log.Completed,
			log.Count,
			log.Note,
			log.CreatedAt,
		)
		var err error
		stored, err = scanHabitLog(row)
		if err != nil {
			return err
		}

		return insertOutbox(ctx, tx, log.UserID, "habit_log", log.ID, "habit.logged", events.HabitLogged{
			HabitID:   log.HabitID,
			UserID:    log.UserID,
			Date:      log.Date.String(),
			Completed: log.Completed,
			LoggedAt:  log.CreatedAt,
		})
	})
	return stored, err
}

// ListHabitLogs returns one habit's logs, optionally bounded by date,
// newest first.
func (r *Repository) ListHabitLogs(ctx context.Context, userID, habitID string, from, to *domain.Date) ([]domain.HabitLog, error) {
	query := `SELECT ` + habitLogColumns + ` FROM habit_logs WHERE user_id=$1 AND habit_id=$2`
	args := []interface{}{userID, habitID}

	if from != nil {
		args = append(args, from.Time())
		query += fmt.Sprintf(` AND date >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, to.Time())
		query += fmt.Sprintf(` AND date <= $%d`, len(args))
	}
	query += ` ORDER BY date DESC`

	return r.queryHabitLogs(ctx, userID, query, args...)
}

// ListHabitLogsByDate returns every habit log recorded on one date.
func (r *Repository) ListHabitLogsByDate(ctx context.Context, userID string, date domain.Date) ([]domain.HabitLog, error) {
	const query = `SELECT ` + habitLogColumns + ` FROM habit_logs
        WHERE user_id=$1 AND date=$2
        ORDER BY created_at ASC`
	return r.queryHabitLogs(ctx, userID, query, userID, date.Time())
}

func (r *Repository) queryHabitLogs(ctx context.Context, userID, query string, args ...interface{}) ([]domain.HabitLog, error) {
	var results []domain.HabitLog
	err := r.withUser(ctx, userID, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			log, err := scanHabitLog(rows)
			if err != nil {
				return err
			}
			results = append(results, log)
		}
		return rows.Err()
	})
	return results, err
}

func scanTask(row pgx.Row) (domain.Task, error) {
	var t domain.Task
	var due *time.Time
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &due, &t.DueTime, &t.Priority, &t.Status, &t.Category, &t.EstimatedMinutes, &t.ActualMinutes, &t.CompletedAt, &t.IsRecurring, &t.RecurringPattern, &t.CreatedAt); err != nil {
		return domain.Task{}, err
	}
	if due != nil {
		d := domain.DateOf(*due)
		t.DueDate = &d
	}
	return t, nil
}

func scanHabit(row pgx.Row) (domain.Habit, error) {
	var h domain.Habit
	if err := row.Scan(&h.ID, &h.UserID, &h.Name, &h.Description, &h.Frequency, &h.TargetCount, &h.Color, &h.Icon, &h.IsActive, &h.CurrentStreak, &h.BestStreak, &h.CreatedAt); err != nil {
		return domain.Habit{}, err
	}
	return h, nil
}

func scanHabitLog(row pgx.Row) (domain.HabitLog, error) {
	var l domain.HabitLog
	var date time.Time
	if err := row.Scan(&l.ID, &l.HabitID, &l.UserID, &date, &l.Completed, &l.Count, &l.Note, &l.CreatedAt); err != nil {
		return domain.HabitLog{}, err
	}
	l.Date = domain.DateOf(date)
	return l, nil
}

func dateOrNil(d *domain.Date) interface{} {
	if d == nil {
		return nil
	}
	return d.Time()
}
