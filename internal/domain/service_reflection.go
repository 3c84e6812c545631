package domain

import (
	"context"
	"fmt"
)

// SaveDailyReflectionInput captures the payload from the API layer.
type SaveDailyReflectionInput struct {
	UserID     string
	Date       Date
	WhatWorked *string
	WhatDidnt  *string
	Why        *string
	Adjustment *string
}

// SaveDailyReflection records the end-of-day review, replacing any existing
// entry for the date.
func (s *Service) SaveDailyReflection(ctx context.Context, input SaveDailyReflectionInput) (*DailyReflection, error) {
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	now := s.now()
	reflection := DailyReflection{
		ID:         newID(),
		UserID:     input.UserID,
		Date:       input.Date,
		WhatWorked: input.WhatWorked,
		WhatDidnt:  input.WhatDidnt,
		Why:        input.Why,
		Adjustment: input.Adjustment,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	stored, err := s.repo.UpsertDailyReflection(ctx, reflection)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// ListDailyReflections fetches daily reflections, optionally bounded by dates.
func (s *Service) ListDailyReflections(ctx context.Context, userID string, from, to *Date) ([]DailyReflection, error) {
	return s.repo.ListDailyReflections(ctx, userID, from, to)
}

// TodayReflection fetches today's entry, or ErrNotFound when none exists.
func (s *Service) TodayReflection(ctx context.Context, userID string) (*DailyReflection, error) {
	reflection, err := s.repo.GetDailyReflection(ctx, userID, DateOf(s.now()))
	if err != nil {
		return nil, err
	}
	if reflection == nil {
		return nil, ErrNotFound
	}
	return reflection, nil
}

// SaveWeeklyReflectionInput captures the payload from the API layer.
// WeekStart must already be normalised to a Monday by the caller.
type SaveWeeklyReflectionInput struct {
	UserID           string
	WeekStart        Date
	TimeVsPlan       *string
	MoneyVsBudget    *string
	EnergyVsWorkload *string
	Adjustment       *string
}

// SaveWeeklyReflection records the weekly review, replacing any existing
// entry for the week.
func (s *Service) SaveWeeklyReflection(ctx context.Context, input SaveWeeklyReflectionInput) (*WeeklyReflection, error) {
	if input.WeekStart.IsZero() {
		return nil, fmt.Errorf("%w: week_start is required", ErrInvalidInput)
	}

	now := s.now()
	reflection := WeeklyReflection{
		ID:               newID(),
		UserID:           input.UserID,
		WeekStart:        input.WeekStart,
		TimeVsPlan:       input.TimeVsPlan,
		MoneyVsBudget:    input.MoneyVsBudget,
		EnergyVsWorkload: input.EnergyVsWorkload,
		Adjustment:       input.Adjustment,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	stored, err := s.repo.UpsertWeeklyReflection(ctx, reflection)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// ListWeeklyReflections fetches recent weekly reflections, newest first.
func (s *Service) ListWeeklyReflections(ctx context.Context, userID string, limit int) ([]WeeklyReflection, error) {
	return s.repo.ListWeeklyReflections(ctx, userID, limit)
}

// SaveMonthlyReflectionInput captures the payload from the API layer.
// Month must already be normalised to the first of the month by the caller.
type SaveMonthlyReflectionInput struct {
	UserID                  string
	Month                   Date
	Trends                  *string
	Stability               *string
	BurnoutSignals          *string
	FinancialSafetyProgress *string
}

// SaveMonthlyReflection records the monthly review, replacing any existing
// entry for the month.
func (s *Service) SaveMonthlyReflection(ctx context.Context, input SaveMonthlyReflectionInput) (*MonthlyReflection, error) {
	if input.Month.IsZero() {
		return nil, fmt.Errorf("%w: month is required", ErrInvalidInput)
	}

	now := s.now()
	reflection := MonthlyReflection{
		ID:                      newID(),
		UserID:                  input.UserID,
		Month:                   input.Month,
		Trends:                  input.Trends,
		Stability:               input.Stability,
		BurnoutSignals:          input.BurnoutSignals,
		FinancialSafetyProgress: input.FinancialSafetyProgress,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	stored, err := s.repo.UpsertMonthlyReflection(ctx, reflection)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// ListMonthlyReflections fetches recent monthly reflections, newest first.
func (s *Service) ListMonthlyReflections(ctx context.Context, userID string, limit int) ([]MonthlyReflection, error) {
	return s.repo.ListMonthlyReflections(ctx, userID, limit)
}
