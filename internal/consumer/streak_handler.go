package consumer

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"example.com/routine/internal/analytics"
	"example.com/routine/internal/events"
)

// HabitStreakStore exposes the persistence operations the streak recomputer
// needs.
type HabitStreakStore interface {
	CompletedHabitLogTimes(ctx context.Context, userID, habitID string) ([]time.Time, error)
	HabitBestStreak(ctx context.Context, userID, habitID string) (int, error)
	UpdateHabitStreaks(ctx context.Context, userID, habitID string, current, best int) error
}

// StreakHandler recomputes a habit's streak counters when a log is recorded.
// Recomputation is best effort: a failure is logged and counted but never
// blocks the message from committing, so the streak may lag until the next
// log arrives.
type StreakHandler struct {
	store  HabitStreakStore
	logger *log.Logger
	now    func() time.Time
}

// NewStreakHandler constructs a StreakHandler.
func NewStreakHandler(store HabitStreakStore, logger *log.Logger) *StreakHandler {
	if logger == nil {
		logger = log.New(log.Writer(), "[streaks] ", log.LstdFlags)
	}
	return &StreakHandler{store: store, logger: logger, now: time.Now}
}

// Handle processes a habit.logged event.
func (h *StreakHandler) Handle(ctx context.Context, msg Message) error {
	var event events.HabitLogged
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		h.logger.Printf("malformed habit.logged payload: %v", err)
		streakRecomputeFailures.Inc()
		return nil
	}
	if !event.Completed {
		return nil
	}

	if err := h.recompute(ctx, event.UserID, event.HabitID); err != nil {
		h.logger.Printf("streak recompute failed (habit=%s, user=%s): %v", event.HabitID, event.UserID, err)
		streakRecomputeFailures.Inc()
	}
	return nil
}

func (h *StreakHandler) recompute(ctx context.Context, userID, habitID string) error {
	times, err := h.store.CompletedHabitLogTimes(ctx, userID, habitID)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return nil
	}

	current := analytics.Streaks(times, h.now().UTC()).Current

	best, err := h.store.HabitBestStreak(ctx, userID, habitID)
	if err != nil {
		return err
	}
	if current > best {
		best = current
	}

	return h.store.UpdateHabitStreaks(ctx, userID, habitID, current, best)
}
