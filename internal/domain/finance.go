package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType separates money coming in from money going out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Valid reports whether the transaction type is an enumerated value.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// SpendIntent captures whether a purchase was planned ahead of time.
type SpendIntent string

const (
	IntentPlanned   SpendIntent = "planned"
	IntentUnplanned SpendIntent = "unplanned"
	IntentImpulse   SpendIntent = "impulse"
)

// Valid reports whether the intent is an enumerated value.
func (i SpendIntent) Valid() bool {
	switch i {
	case IntentPlanned, IntentUnplanned, IntentImpulse:
		return true
	}
	return false
}

// SpendEmotion captures the emotional state attached to a transaction.
type SpendEmotion string

const (
	EmotionJoy         SpendEmotion = "joy"
	EmotionConvenience SpendEmotion = "convenience"
	EmotionStress      SpendEmotion = "stress"
	EmotionNecessity   SpendEmotion = "necessity"
	EmotionGuilt       SpendEmotion = "guilt"
	EmotionNeutral     SpendEmotion = "neutral"
	EmotionOtherFeel   SpendEmotion = "other"
)

// Valid reports whether the emotion is an enumerated value.
func (e SpendEmotion) Valid() bool {
	switch e {
	case EmotionJoy, EmotionConvenience, EmotionStress, EmotionNecessity,
		EmotionGuilt, EmotionNeutral, EmotionOtherFeel:
		return true
	}
	return false
}

// Transaction is a single income or expense entry. Amount is always positive;
// Type determines the sign of its contribution to summaries.
type Transaction struct {
	ID          string
	UserID      string
	Amount      decimal.Decimal
	Type        TransactionType
	Category    string
	Description *string
	Date        Date
	IsRecurring bool
	RecurringID *string
	Intent      *SpendIntent
	Emotion     *SpendEmotion
	WorthIt     *bool
	CreatedAt   time.Time
}

// Budget is a monthly spending limit for one category. Month is the first day
// of the month; (user, category, month) is the natural key.
type Budget struct {
	ID        string
	UserID    string
	Category  string
	Amount    decimal.Decimal
	Month     Date
	CreatedAt time.Time
}
