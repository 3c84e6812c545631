package domain

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"
)

const (
	maxActivitySpan        = 24 * time.Hour
	maxActivityNoteLen     = 1000
	maxInterruptionNoteLen = 500
)

// LogActivityInput captures the payload from the API layer.
type LogActivityInput struct {
	UserID           string
	Category         ActivityCategory
	StartTime        time.Time
	EndTime          time.Time
	Note             *string
	EnergyCost       *EnergyCost
	WorkType         *WorkType
	PlannedStartTime *time.Time
	PlannedEndTime   *time.Time
	TaskID           *string
}

// LogActivity validates and persists a time block, recording the
// activity.created event transactionally.
func (s *Service) LogActivity(ctx context.Context, input LogActivityInput) (*Activity, error) {
	if !input.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, input.Category)
	}
	if !input.EndTime.After(input.StartTime) {
		return nil, fmt.Errorf("%w: end_time must be after start_time", ErrInvalidInput)
	}
	if input.EndTime.Sub(input.StartTime) > maxActivitySpan {
		return nil, fmt.Errorf("%w: activity longer than 24 hours", ErrInvalidInput)
	}
	if input.Note != nil && utf8.RuneCountInString(*input.Note) > maxActivityNoteLen {
		return nil, fmt.Errorf("%w: note longer than %d characters", ErrInvalidInput, maxActivityNoteLen)
	}

	activity := Activity{
		ID:               newID(),
		UserID:           input.UserID,
		Category:         input.Category,
		StartTime:        input.StartTime.UTC(),
		EndTime:          input.EndTime.UTC(),
		Note:             input.Note,
		EnergyCost:       input.EnergyCost,
		WorkType:         input.WorkType,
		PlannedStartTime: input.PlannedStartTime,
		PlannedEndTime:   input.PlannedEndTime,
		TaskID:           input.TaskID,
		CreatedAt:        s.now(),
	}

	if err := s.repo.CreateActivity(ctx, activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// ListActivities fetches activities within [from, to) with cursor pagination.
func (s *Service) ListActivities(ctx context.Context, userID string, from, to time.Time, cursor *Cursor, limit int) ([]Activity, *Cursor, error) {
	return s.repo.ListActivities(ctx, userID, from, to, cursor, limit)
}

// ActivitiesInWindow fetches every activity in the trailing window, unpaged,
// for the analytics endpoints.
func (s *Service) ActivitiesInWindow(ctx context.Context, userID string, days int) ([]Activity, error) {
	to := s.now()
	from := to.AddDate(0, 0, -days)
	activities, _, err := s.repo.ListActivities(ctx, userID, from, to, nil, 0)
	return activities, err
}

// LogInterruptionInput captures the payload from the API layer.
type LogInterruptionInput struct {
	UserID          string
	ActivityID      *string
	Time            time.Time
	EndTime         *time.Time
	DurationMinutes *int
	Type            InterruptionType
	Note            *string
}

// LogInterruption validates and persists a focus break.
func (s *Service) LogInterruption(ctx context.Context, input LogInterruptionInput) (*Interruption, error) {
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown interruption type %q", ErrInvalidInput, input.Type)
	}
	if input.DurationMinutes != nil && (*input.DurationMinutes < 1 || *input.DurationMinutes > 480) {
		return nil, fmt.Errorf("%w: duration_minutes outside [1,480]", ErrInvalidInput)
	}
	if input.Note != nil && utf8.RuneCountInString(*input.Note) > maxInterruptionNoteLen {
		return nil, fmt.Errorf("%w: note longer than %d characters", ErrInvalidInput, maxInterruptionNoteLen)
	}

	interruption := Interruption{
		ID:              newID(),
		UserID:          input.UserID,
		ActivityID:      input.ActivityID,
		Time:            input.Time.UTC(),
		EndTime:         input.EndTime,
		DurationMinutes: input.DurationMinutes,
		Type:            input.Type,
		Note:            input.Note,
		CreatedAt:       s.now(),
	}

	if err := s.repo.CreateInterruption(ctx, interruption); err != nil {
		return nil, err
	}
	return &interruption, nil
}

// ListInterruptions fetches interruptions within [from, to).
func (s *Service) ListInterruptions(ctx context.Context, userID string, from, to time.Time) ([]Interruption, error) {
	return s.repo.ListInterruptions(ctx, userID, from, to)
}

// InterruptionsInWindow fetches interruptions for the trailing window.
func (s *Service) InterruptionsInWindow(ctx context.Context, userID string, days int) ([]Interruption, error) {
	to := s.now()
	return s.repo.ListInterruptions(ctx, userID, to.AddDate(0, 0, -days), to)
}
