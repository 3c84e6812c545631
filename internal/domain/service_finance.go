package domain

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// AddTransactionInput captures the payload from the API layer.
type AddTransactionInput struct {
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
}

// AddTransaction validates and persists an income or expense entry.
func (s *Service) AddTransaction(ctx context.Context, input AddTransactionInput) (*Transaction, error) {
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", ErrInvalidInput, input.Type)
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if input.Intent != nil && !input.Intent.Valid() {
		return nil, fmt.Errorf("%w: unknown intent %q", ErrInvalidInput, *input.Intent)
	}
	if input.Emotion != nil && !input.Emotion.Valid() {
		return nil, fmt.Errorf("%w: unknown emotion %q", ErrInvalidInput, *input.Emotion)
	}

	transaction := Transaction{
		ID:          newID(),
		UserID:      input.UserID,
		Amount:      input.Amount,
		Type:        input.Type,
		Category:    input.Category,
		Description: input.Description,
		Date:        input.Date,
		IsRecurring: input.IsRecurring,
		RecurringID: input.RecurringID,
		Intent:      input.Intent,
		Emotion:     input.Emotion,
		WorthIt:     input.WorthIt,
		CreatedAt:   s.now(),
	}

	if err := s.repo.CreateTransaction(ctx, transaction); err != nil {
		return nil, err
	}
	return &transaction, nil
}

// ListTransactions fetches transactions within [from, to].
func (s *Service) ListTransactions(ctx context.Context, userID string, from, to Date) ([]Transaction, error) {
	return s.repo.ListTransactions(ctx, userID, from, to)
}

// TransactionsInWindow fetches transactions for the trailing window of days.
func (s *Service) TransactionsInWindow(ctx context.Context, userID string, days int) ([]Transaction, error) {
	today := DateOf(s.now())
	return s.repo.ListTransactions(ctx, userID, today.AddDays(-days), today)
}

// DeleteTransaction removes a transaction owned by the user.
func (s *Service) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	deleted, err := s.repo.DeleteTransaction(ctx, userID, transactionID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// SetBudgetInput captures the payload from the API layer.
type SetBudgetInput struct {
	UserID   string
	Category string
	Amount   decimal.Decimal
	Month    Date
}

// SetBudget creates or replaces the budget for (user, category, month).
func (s *Service) SetBudget(ctx context.Context, input SetBudgetInput) (*Budget, error) {
	if input.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: budget amount must not be negative", ErrInvalidInput)
	}
	if input.Month.IsZero() {
		return nil, fmt.Errorf("%w: month is required", ErrInvalidInput)
	}

	budget := Budget{
		ID:        newID(),
		UserID:    input.UserID,
		Category:  input.Category,
		Amount:    input.Amount,
		Month:     input.Month,
		CreatedAt: s.now(),
	}

	stored, err := s.repo.UpsertBudget(ctx, budget)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// ListBudgets fetches the budgets for a month.
func (s *Service) ListBudgets(ctx context.Context, userID string, month Date) ([]Budget, error) {
	return s.repo.ListBudgets(ctx, userID, month)
}

// BudgetStatus reports how one category's spending tracks against its budget.
type BudgetStatus struct {
	Category   string
	Budget     decimal.Decimal
	Spent      decimal.Decimal
	Remaining  decimal.Decimal
	Percentage float64
}

// FinanceSummary aggregates one month of money movement.
type FinanceSummary struct {
	Month             Date
	TotalIncome       decimal.Decimal
	TotalExpenses     decimal.Decimal
	NetSavings        decimal.Decimal
	ExpenseByCategory map[string]decimal.Decimal
	IncomeByCategory  map[string]decimal.Decimal
	BudgetStatus      []BudgetStatus
	TransactionCount  int
}

// MonthlyFinanceSummary computes income, expense, and budget tracking for the
// month starting at month (which must be a first-of-month date).
func (s *Service) MonthlyFinanceSummary(ctx context.Context, userID string, month Date) (*FinanceSummary, error) {
	nextMonth := Date{t: month.t.AddDate(0, 1, 0)}
	transactions, err := s.repo.ListTransactions(ctx, userID, month, nextMonth.AddDays(-1))
	if err != nil {
		return nil, err
	}

	summary := FinanceSummary{
		Month:             month,
		ExpenseByCategory: make(map[string]decimal.Decimal),
		IncomeByCategory:  make(map[string]decimal.Decimal),
		TransactionCount:  len(transactions),
	}

	for _, t := range transactions {
		if t.Type == TransactionExpense {
			summary.TotalExpenses = summary.TotalExpenses.Add(t.Amount)
			summary.ExpenseByCategory[t.Category] = summary.ExpenseByCategory[t.Category].Add(t.Amount)
		} else {
			summary.TotalIncome = summary.TotalIncome.Add(t.Amount)
			summary.IncomeByCategory[t.Category] = summary.IncomeByCategory[t.Category].Add(t.Amount)
		}
	}
	summary.NetSavings = summary.TotalIncome.Sub(summary.TotalExpenses)

	budgets, err := s.repo.ListBudgets(ctx, userID, month)
	if err != nil {
		return nil, err
	}

	summary.BudgetStatus = make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := summary.ExpenseByCategory[b.Category]
		status := BudgetStatus{
			Category:  b.Category,
			Budget:    b.Amount,
			Spent:     spent,
			Remaining: b.Amount.Sub(spent),
		}
		if b.Amount.IsPositive() {
			pct, _ := spent.Div(b.Amount).Mul(decimal.NewFromInt(100)).Round(1).Float64()
			status.Percentage = pct
		}
		summary.BudgetStatus = append(summary.BudgetStatus, status)
	}

	return &summary, nil
}
