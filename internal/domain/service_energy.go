package domain

import (
	"context"
	"fmt"
)

// LogEnergyInput captures the payload from the API layer.
type LogEnergyInput struct {
	UserID      string
	Date        Date
	EnergyLevel int
	StressLevel int
	Mood        *Mood
	SleepHours  *float64
	Note        *string
}

// LogEnergy records the daily energy snapshot, replacing any existing log for
// the same date.
func (s *Service) LogEnergy(ctx context.Context, input LogEnergyInput) (*EnergyLog, error) {
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if input.EnergyLevel < 1 || input.EnergyLevel > 5 {
		return nil, fmt.Errorf("%w: energy_level outside [1,5]", ErrInvalidInput)
	}
	if input.StressLevel < 1 || input.StressLevel > 5 {
		return nil, fmt.Errorf("%w: stress_level outside [1,5]", ErrInvalidInput)
	}
	if input.Mood != nil && !input.Mood.Valid() {
		return nil, fmt.Errorf("%w: unknown mood %q", ErrInvalidInput, *input.Mood)
	}
	if input.SleepHours != nil && (*input.SleepHours < 0 || *input.SleepHours > 24) {
		return nil, fmt.Errorf("%w: sleep_hours outside [0,24]", ErrInvalidInput)
	}

	now := s.now()
	log := EnergyLog{
		ID:          newID(),
		UserID:      input.UserID,
		Date:        input.Date,
		EnergyLevel: input.EnergyLevel,
		StressLevel: input.StressLevel,
		Mood:        input.Mood,
		SleepHours:  input.SleepHours,
		Note:        input.Note,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	stored, err := s.repo.UpsertEnergyLog(ctx, log)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// ListEnergyLogs fetches logs within [from, to].
func (s *Service) ListEnergyLogs(ctx context.Context, userID string, from, to Date) ([]EnergyLog, error) {
	return s.repo.ListEnergyLogs(ctx, userID, from, to)
}

// EnergyLogsInWindow fetches logs for the trailing window of days.
func (s *Service) EnergyLogsInWindow(ctx context.Context, userID string, days int) ([]EnergyLog, error) {
	today := DateOf(s.now())
	return s.repo.ListEnergyLogs(ctx, userID, today.AddDays(-days), today)
}

// TodayEnergy fetches today's log, or ErrNotFound when none was recorded.
func (s *Service) TodayEnergy(ctx context.Context, userID string) (*EnergyLog, error) {
	log, err := s.repo.GetEnergyLog(ctx, userID, DateOf(s.now()))
	if err != nil {
		return nil, err
	}
	if log == nil {
		return nil, ErrNotFound
	}
	return log, nil
}
