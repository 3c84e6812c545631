// Package events defines the payloads published through the outbox.
package events

import "time"

// ActivityCreated is emitted when a new activity block is accepted. The
// consumer appends it to the audit log.
type ActivityCreated struct {
	ActivityID string    `json:"activity_id"`
	UserID     string    `json:"user_id"`
	Category   string    `json:"category"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Version    string    `json:"version"`
}

// HabitLogged is emitted when a habit log is recorded or updated. The
// consumer recomputes the habit's streak counters from its full log history.
type HabitLogged struct {
	HabitID   string    `json:"habit_id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	Completed bool      `json:"completed"`
	LoggedAt  time.Time `json:"logged_at"`
}
