package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"example.com/routine/internal/domain"
)

const energyColumns = `energy_id, user_id, date, energy_level, stress_level, mood, sleep_hours, note, created_at, updated_at`

// UpsertEnergyLog creates or replaces the log for (user, date) and returns the
// stored row. The original id and created_at survive re-logging.
func (r *Repository) UpsertEnergyLog(ctx context.Context, log domain.EnergyLog) (domain.EnergyLog, error) {
	const stmt = `INSERT INTO energy_logs (` + energyColumns + `)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        ON CONFLICT (user_id, date) DO UPDATE SET
            energy_level = EXCLUDED.energy_level,
            stress_level = EXCLUDED.stress_level,
            mood = EXCLUDED.mood,
            sleep_hours = EXCLUDED.sleep_hours,
            note = EXCLUDED.note,
            updated_at = EXCLUDED.updated_at
        RETURNING ` + energyColumns

	var stored domain.EnergyLog
	err := r.withUser(ctx, log.UserID, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, stmt,
			log.ID,
			log.UserID,
			log.Date.Time(),
			log.EnergyLevel,
			log.StressLevel,
			log.Mood,
			log.SleepHours,
			log.Note,
			log.CreatedAt,
			log.UpdatedAt,
		)
		var err error
		stored, err = scanEnergyLog(row)
		return err
	})
	return stored, err
}

// ListEnergyLogs returns logs dated in [from, to] ordered by date ascending.
func (r *Repository) ListEnergyLogs(ctx context.Context, userID string, from, to domain.Date) ([]domain.EnergyLog, error) {
	const query = `SELECT ` + energyColumns + ` FROM energy_logs
        WHERE user_id=$1 AND date >= $2 AND date <= $3
        ORDER BY date ASC`

	var results []domain.EnergyLog
	err := r.withUser(ctx, userID, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, userID, from.Time(), to.Time())
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			log, err := scanEnergyLog(rows)
			if err != nil {
				return err
			}
			results = append(results, log)
		}
		return rows.Err()
	})
	return results, err
}

// GetEnergyLog returns the log for one date, or nil when none exists.
func (r *Repository) GetEnergyLog(ctx context.Context, userID string, date domain.Date) (*domain.EnergyLog, error) {
	const query = `SELECT ` + energyColumns + ` FROM energy_logs WHERE user_id=$1 AND date=$2`

	var found *domain.EnergyLog
	err := r.withUser(ctx, userID, func(tx pgx.Tx) error {
		log, err := scanEnergyLog(tx.QueryRow(ctx, query, userID, date.Time()))
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		found = &log
		return nil
	})
	return found, err
}

func scanEnergyLog(row pgx.Row) (domain.EnergyLog, error) {
	var log domain.EnergyLog
	var date time.Time
	if err := row.Scan(&log.ID, &log.UserID, &date, &log.EnergyLevel, &log.StressLevel, &log.Mood, &log.SleepHours, &log.Note, &log.CreatedAt, &log.UpdatedAt); err != nil {
		return domain.EnergyLog{}, err
	}
	log.Date = domain.DateOf(date)
	return log, nil
}
