package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"example.com/routine/internal/domain"
	"example.com/routine/internal/observability"
)

// CompletedHabitLogTimes returns the dates on which the habit was completed,
// as UTC midnight instants.
func (r *Repository) CompletedHabitLogTimes(ctx context.Context, userID, habitID string) ([]time.Time, error) {
	const query = `SELECT date FROM habit_logs
        WHERE user_id=$1 AND habit_id=$2 AND completed
        ORDER BY date ASC`

	var times []time.Time
	err := r.withUser(ctx, userID, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, userID, habitID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var date time.Time
			if err := rows.Scan(&date); err != nil {
				return err
			}
			times = append(times, domain.DateOf(date).Time())
		}
		return rows.Err()
	})
	return times, err
}

// HabitBestStreak returns the stored best streak for a habit.
func (r *Repository) HabitBestStreak(ctx context.Context, userID, habitID string) (int, error) {
	var best int
	err := r.withUser(ctx, userID, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `SELECT best_streak FROM habits WHERE user_id=$1 AND habit_id=$2`, userID, habitID).Scan(&best)
	})
	return best, err
}

// UpdateHabitStreaks writes the recomputed streak counters.
func (r *Repository) UpdateHabitStreaks(ctx context.Context, userID, habitID string, current, best int) error {
	err := r.withUser(ctx, userID, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `UPDATE habits SET current_streak=$3, best_streak=$4 WHERE user_id=$1 AND habit_id=$2`, userID, habitID, current, best)
		return err
	})
	if err != nil {
		return err
	}
	observability.RecordStreakRecompute(time.Now().UTC())
	return nil
}
