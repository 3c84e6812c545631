package domain

import "time"

// DailyReflection is a short end-of-day review, one per user per date.
type DailyReflection struct {
	ID         string
	UserID     string
	Date       Date
	WhatWorked *string
	WhatDidnt  *string
	Why        *string
	Adjustment *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// WeeklyReflection reviews a week against its plan. WeekStart is the Monday
// of the reviewed week and the natural key.
type WeeklyReflection struct {
	ID               string
	UserID           string
	WeekStart        Date
	TimeVsPlan       *string
	MoneyVsBudget    *string
	EnergyVsWorkload *string
	Adjustment       *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// MonthlyReflection reviews longer-term trends. Month is the first day of the
// reviewed month and the natural key.
type MonthlyReflection struct {
	ID                      string
	UserID                  string
	Month                   Date
	Trends                  *string
	Stability               *string
	BurnoutSignals          *string
	FinancialSafetyProgress *string
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
