package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"example.com/routine/internal/domain"
	"example.com/routine/internal/events"
	"example.com/routine/internal/observability"
)

const activityColumns = `activity_id, user_id, category, start_time, end_time, note, energy_cost, work_type, planned_start_time, planned_end_time, task_id, created_at`

// CreateActivity persists the activity and records the activity.created
// outbox event inside a single transaction.
func (r *Repository) CreateActivity(ctx context.Context, activity domain.Activity) error {
	err := r.withUser(ctx, activity.UserID, func(tx pgx.Tx) error {
		const stmt = `INSERT INTO activities (` + activityColumns + `)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`

		if _, err := tx.Exec(ctx, stmt,
			activity.ID,
			activity.UserID,
			activity.Category,
			activity.StartTime,
			activity.EndTime,
			activity.Note,
			activity.EnergyCost,
			activity.WorkType,
			activity.PlannedStartTime,
			activity.PlannedEndTime,
			activity.TaskID,
			activity.CreatedAt,
		); err != nil {
			return err
		}

		return insertOutbox(ctx, tx, activity.UserID, "activity", activity.ID, "activity.created", events.ActivityCreated{
			ActivityID: activity.ID,
			UserID:     activity.UserID,
			Category:   string(activity.Category),
			StartTime:  activity.StartTime,
			EndTime:    activity.EndTime,
			Version:    "v1",
		})
	})
	if err != nil {
		return err
	}
	observability.RecordEntryPersisted(activity.CreatedAt)
	return nil
}

// ListActivities returns activities in [from, to) ordered by start time
// ascending, with optional keyset pagination.
func (r *Repository) ListActivities(ctx context.Context, userID string, from, to time.Time, cursor *domain.Cursor, limit int) ([]domain.Activity, *domain.Cursor, error) {
	query := `SELECT ` + activityColumns + ` FROM activities
        WHERE user_id=$1 AND start_time >= $2 AND start_time < $3`
	args := []interface{}{userID, from, to}

	if cursor != nil {
		query += ` AND (start_time, activity_id) > ($4, $5)`
		args = append(args, cursor.StartedAt, cursor.ID)
	}
	query += ` ORDER BY start_time ASC, activity_id ASC`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	var results []domain.Activity
	err := r.withUser(ctx, userID, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var a domain.Activity
			if err := rows.Scan(&a.ID, &a.UserID, &a.Category, &a.StartTime, &a.EndTime, &a.Note, &a.EnergyCost, &a.WorkType, &a.PlannedStartTime, &a.PlannedEndTime, &a.TaskID, &a.CreatedAt); err != nil {
				return err
			}
			results = append(results, a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, nil, err
	}

	var next *domain.Cursor
	if limit > 0 && len(results) == limit {
		last := results[len(results)-1]
		next = &domain.Cursor{StartedAt: last.StartTime, ID: last.ID}
	}
	return results, next, nil
}
