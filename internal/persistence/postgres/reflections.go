package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"example.com/routine/internal/domain"
)

const dailyReflectionColumns = `reflection_id, user_id, date, what_worked, what_didnt, why, adjustment, created_at, updated_at`

const weeklyReflectionColumns = `reflection_id, user_id, week_start, time_vs_plan, money_vs_budget, energy_vs_workload, adjustment, created_at, updated_at`

const monthlyReflectionColumns = `reflection_id, user_id, month, trends, stability, burnout_signals, financial_safety_progress, created_at, updated_at`

// UpsertDailyReflection creates or replaces the reflection for (user, date)
// and returns the stored row.
func (r *Repository) UpsertDailyReflection(ctx context.Context, reflection domain.DailyReflection) (domain.DailyReflection, error) {
	const stmt = `INSERT INTO daily_reflections (` + dailyReflectionColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        ON CONFLICT (user_id, date) DO UPDATE SET
            what_worked = EXCLUDED.what_worked,
            what_didnt = EXCLUDED.what_didnt,
            why = EXCLUDED.why,
            adjustment = EXCLUDED.adjustment,
            updated_at = EXCLUDED.updated_at
        RETURNING ` + dailyReflectionColumns

	var stored domain.DailyReflection
	err := r.withUser(ctx, reflection.UserID, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, stmt,
			reflection.ID,
			reflection.UserID,
			reflection.Date.Time(),
			reflection.WhatWorked,
			reflection.WhatDidnt,
			reflection.Why,
			reflection.Adjustment,
			reflection.CreatedAt,
			reflection.UpdatedAt,
		)
		var err error
		stored, err = scanDailyReflection(row)
		return err
	})
	return stored, err
}

// ListDailyReflections returns daily reflections, optionally bounded by date,
// newest first.
func (r *Repository) ListDailyReflections(ctx context.Context, userID string, from, to *domain.Date) ([]domain.DailyReflection, error) {
	query := `SELECT ` + dailyReflectionColumns + ` FROM daily_reflections WHERE user_id=$1`
	args := []interface{}{userID}

	if from != nil {
		args = append(args, from.Time())
		query += fmt.Sprintf(` AND date >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, to.Time())
		query += fmt.Sprintf(` AND date <= $%d`, len(args))
	}
	query += ` ORDER BY date DESC`

	var results []domain.DailyReflection
	err := r.withUser(ctx, userID, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			reflection, err := scanDailyReflection(rows)
			if err != nil {
				return err
			}
			results = append(results, reflection)
		}
		return rows.Err()
	})
	return results, err
}

// GetDailyReflection returns the reflection for one date, or nil when none
// exists.
func (r *Repository) GetDailyReflection(ctx context.Context, userID string, date domain.Date) (*domain.DailyReflection, error) {
	const query = `SELECT ` + dailyReflectionColumns + ` FROM daily_reflections WHERE user_id=$1 AND date=$2`

	var found *domain.DailyReflection
	err := r.withUser(ctx, userID, func(tx pgx.Tx) error {
		reflection, err := scanDailyReflection(tx.QueryRow(ctx, query, userID, date.Time()))
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		found = &reflection
		return nil
	})
	return found, err
}

// UpsertWeeklyReflection creates or replaces the reflection for
// (user, week_start) and returns the stored row.
func (r *Repository) UpsertWeeklyReflection(ctx context.Context, reflection domain.WeeklyReflection) (domain.WeeklyReflection, error) {
	const stmt = `INSERT INTO weekly_reflections (` + weeklyReflectionColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        ON CONFLICT (user_id, week_start) DO UPDATE SET
            time_vs_plan = EXCLUDED.time_vs_plan,
            money_vs_budget = EXCLUDED.money_vs_budget,
            energy_vs_workload = EXCLUDED.energy_vs_workload,
            adjustment = EXCLUDED.adjustment,
            updated_at = EXCLUDED.updated_at
        RETURNING ` + weeklyReflectionColumns

	var stored domain.WeeklyReflection
	err := r.withUser(ctx, reflection.UserID, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, stmt,
			reflection.ID,
			reflection.UserID,
			reflection.WeekStart.Time(),
			reflection.TimeVsPlan,
			reflection.MoneyVsBudget,
			reflection.EnergyVsWorkload,
			reflection.Adjustment,
			reflection.CreatedAt,
			reflection.UpdatedAt,
		)
		var err error
		stored, err = scanWeeklyReflection(row)
		return err
	})
	return stored, err
}

// ListWeeklyReflections returns up to limit reflections, most recent week
// first.
func (r *Repository) ListWeeklyReflections(ctx context.Context, userID string, limit int) ([]domain.WeeklyReflection, error) {
	query := `SELECT ` + weeklyReflectionColumns + ` FROM weekly_reflections
        WHERE user_id=$1
        ORDER BY week_start DESC`
	args := []interface{}{userID}
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	var results []domain.WeeklyReflection
	err := r.withUser(ctx, userID, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			reflection, err := scanWeeklyReflection(rows)
			if err != nil {
				return err
			}
			results = append(results, reflection)
		}
		return rows.Err()
	})
	return results, err
}

// UpsertMonthlyReflection creates or replaces the reflection for
// (user, month) and returns the stored row.
func (r *Repository) UpsertMonthlyReflection(ctx context.Context, reflection domain.MonthlyReflection) (domain.MonthlyReflection, error) {
	const stmt = `INSERT INTO monthly_reflections (` + monthlyReflectionColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        ON CONFLICT (user_id, month) DO UPDATE SET
            trends = EXCLUDED.trends,
            stability = EXCLUDED.stability,
            burnout_signals = EXCLUDED.burnout_signals,
            financial_safety_progress = EXCLUDED.financial_safety_progress,
            updated_at = EXCLUDED.updated_at
        RETURNING ` + monthlyReflectionColumns

	var stored domain.MonthlyReflection
	err := r.withUser(ctx, reflection.UserID, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, stmt,
			reflection.ID,
			reflection.UserID,
			reflection.Month.Time(),
			reflection.Trends,
			reflection.Stability,
			reflection.BurnoutSignals,
			reflection.FinancialSafetyProgress,
			reflection.CreatedAt,
			reflection.UpdatedAt,
		)
		var err error
		stored, err = scanMonthlyReflection(row)
		return err
	})
	return stored, err
}

// ListMonthlyReflections returns up to limit reflections, most recent month
// first.
func (r *Repository) ListMonthlyReflections(ctx context.Context, userID string, limit int) ([]domain.MonthlyReflection, error) {
	query := `SELECT ` + monthlyReflectionColumns + ` FROM monthly_reflections
        WHERE user_id=$1
        ORDER BY month DESC`
	args := []interface{}{userID}
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	var results []domain.MonthlyReflection
	err := r.withUser(ctx, userID, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			reflection, err := scanMonthlyReflection(rows)
			if err != nil {
				return err
			}
			results = append(results, reflection)
		}
		return rows.Err()
	})
	return results, err
}

func scanDailyReflection(row pgx.Row) (domain.DailyReflection, error) {
	var d domain.DailyReflection
	var date time.Time
	if err := row.Scan(&d.ID, &d.UserID, &date, &d.WhatWorked, &d.WhatDidnt, &d.Why, &d.Adjustment, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return domain.DailyReflection{}, err
	}
	d.Date = domain.DateOf(date)
	return d, nil
}

func scanWeeklyReflection(row pgx.Row) (domain.WeeklyReflection, error) {
	var w domain.WeeklyReflection
	var weekStart time.Time
	if err := row.Scan(&w.ID, &w.UserID, &weekStart, &w.TimeVsPlan, &w.MoneyVsBudget, &w.EnergyVsWorkload, &w.Adjustment, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return domain.WeeklyReflection{}, err
	}
	w.WeekStart = domain.DateOf(weekStart)
	return w, nil
}

func scanMonthlyReflection(row pgx.Row) (domain.MonthlyReflection, error) {
	var m domain.MonthlyReflection
	var month time.Time
	if err := row.Scan(&m.ID, &m.UserID, &month, &m.Trends, &m.Stability, &m.BurnoutSignals, &m.FinancialSafetyProgress, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return domain.MonthlyReflection{}, err
	}
	m.Month = domain.DateOf(month)
	return m, nil
}
