package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/routine/internal/events"
)

type stubStreakStore struct {
	times    []time.Time
	timesErr error
	best     int

	updatedCurrent int
	updatedBest    int
	updateCalls    int
}

func (s *stubStreakStore) CompletedHabitLogTimes(context.Context, string, string) ([]time.Time, error) {
	return s.times, s.timesErr
}

func (s *stubStreakStore) HabitBestStreak(context.Context, string, string) (int, error) {
	return s.best, nil
}

func (s *stubStreakStore) UpdateHabitStreaks(_ context.Context, _, _ string, current, best int) error {
	s.updateCalls++
	s.updatedCurrent = current
	s.updatedBest = best
	return nil
}

func habitLoggedMessage(t *testing.T, completed bool) Message {
	t.Helper()
	payload, err := json.Marshal(events.HabitLogged{
		HabitID:   "habit-1",
		UserID:    "user-1",
		Date:      "2026-03-10",
		Completed: completed,
		LoggedAt:  time.Now().UTC(),
	})
	require.NoError(t, err)
	return Message{Topic: "tracker_events", EventType: "habit.logged", UserID: "user-1", Payload: payload}
}

func TestStreakHandlerRecomputes(t *testing.T) {
	today := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	store := &stubStreakStore{
		times: []time.Time{
			today,
			today.AddDate(0, 0, -1),
			today.AddDate(0, 0, -2),
		},
		best: 2,
	}

	handler := NewStreakHandler(store, log.New(testWriter{t}, "", 0))
	handler.now = func() time.Time { return today }

	require.NoError(t, handler.Handle(context.Background(), habitLoggedMessage(t, true)))
	require.Equal(t, 1, store.updateCalls)
	require.Equal(t, 3, store.updatedCurrent)
	require.Equal(t, 3, store.updatedBest, "best streak rises to match the new current")
}

func TestStreakHandlerKeepsBestWhenHigher(t *testing.T) {
	today := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	store := &stubStreakStore{
		times: []time.Time{today},
		best:  9,
	}

	handler := NewStreakHandler(store, log.New(testWriter{t}, "", 0))
	handler.now = func() time.Time { return today }

	require.NoError(t, handler.Handle(context.Background(), habitLoggedMessage(t, true)))
	require.Equal(t, 1, store.updatedCurrent)
	require.Equal(t, 9, store.updatedBest)
}

func TestStreakHandlerSkipsIncompleteLogs(t *testing.T) {
	store := &stubStreakStore{}
	handler := NewStreakHandler(store, log.New(testWriter{t}, "", 0))

	require.NoError(t, handler.Handle(context.Background(), habitLoggedMessage(t, false)))
	require.Equal(t, 0, store.updateCalls)
}

func TestStreakHandlerSwallowsStoreErrors(t *testing.T) {
	store := &stubStreakStore{timesErr: errors.New("connection reset")}
	handler := NewStreakHandler(store, log.New(testWriter{t}, "", 0))

	// The message must still commit; streaks catch up on the next log.
	require.NoError(t, handler.Handle(context.Background(), habitLoggedMessage(t, true)))
	require.Equal(t, 0, store.updateCalls)
}

func TestRouterDispatchesAndSkipsUnknown(t *testing.T) {
	known := &stubHandler{}
	router := NewRouter(log.New(testWriter{t}, "", 0))
	router.Register("habit.logged", known)

	require.NoError(t, router.Handle(context.Background(), Message{EventType: "habit.logged"}))
	require.Equal(t, 1, known.calls)

	require.NoError(t, router.Handle(context.Background(), Message{EventType: "budget.created"}))
	require.Equal(t, 1, known.calls)
}
