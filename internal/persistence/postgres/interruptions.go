package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"example.com/routine/internal/domain"
)

const interruptionColumns = `interruption_id, user_id, activity_id, time, end_time, duration_minutes, type, note, created_at`

// CreateInterruption persists a focus break.
func (r *Repository) CreateInterruption(ctx context.Context, interruption domain.Interruption) error {
	return r.withUser(ctx, interruption.UserID, func(tx pgx.Tx) error {
		const stmt = `INSERT INTO interruptions (` + interruptionColumns + `)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`

		_, err := tx.Exec(ctx, stmt,
			interruption.ID,
			interruption.UserID,
			interruption.ActivityID,
			interruption.Time,
			interruption.EndTime,
			interruption.DurationMinutes,
			interruption.Type,
			interruption.Note,
			interruption.CreatedAt,
		)
		return err
	})
}

// ListInterruptions returns interruptions in [from, to) ordered by time
// ascending.
func (r *Repository) ListInterruptions(ctx context.Context, userID string, from, to time.Time) ([]domain.Interruption, error) {
	const query = `SELECT ` + interruptionColumns + ` FROM interruptions
        WHERE user_id=$1 AND time >= $2 AND time < $3
        ORDER BY time ASC`

	var results []domain.Interruption
	err := r.withUser(ctx, userID, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, userID, from, to)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var i domain.Interruption
			if err := rows.Scan(&i.ID, &i.UserID, &i.ActivityID, &i.Time, &i.EndTime, &i.DurationMinutes, &i.Type, &i.Note, &i.CreatedAt); err != nil {
				return err
			}
			results = append(results, i)
		}
		return rows.Err()
	})
	return results, err
}
