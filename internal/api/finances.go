package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"example.com/routine/internal/domain"
)

func (h *Handler) transactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createTransaction(w, r)
	case http.MethodGet:
		h.listTransactions(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *Handler) transactionByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/finances/transactions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing transaction id")
		return
	}
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}

	claims, ok := requireWrite(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteTransaction(r.Context(), claims.Subject, id); err != nil {
		serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireWrite(w, r)
	if !ok {
		return
	}

	var req AddTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	input, err := req.toInput(claims.Subject)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	transaction, err := h.service.AddTransaction(r.Context(), input)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionView(*transaction))
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRead(w, r)
	if !ok {
		return
	}

	today := domain.DateOf(h.now())
	from, to := today.AddDays(-30), today
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := parseDateField(raw, "from")
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := parseDateField(raw, "to")
		if err != nil {
			writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		to = parsed
	}

	transactions, err := h.service.ListTransactions(r.Context(), claims.Subject, from, to)
	if err != nil {
		serviceError(w, err)
		return
	}

	items := make([]TransactionView, 0, len(transactions))
	for _, t := range transactions {
		items = append(items, toTransactionView(t))
	}
	writeJSON(w, http.StatusOK, ListTransactionsResponse{Items: items})
}

func (h *Handler) budgets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.setBudget(w, r)
	case http.MethodGet:
		h.listBudgets(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *Handler) setBudget(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireWrite(w, r)
	if !ok {
		return
	}

	var req SetBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	month, err := time.Parse("2006-01", req.Month)
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "invalid month: must be YYYY-MM")
		return
	}

	budget, err := h.service.SetBudget(r.Context(), domain.SetBudgetInput{
		UserID:   claims.Subject,
		Category: req.Category,
		Amount:   req.Amount,
		Month:    domain.DateOf(month),
	})
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetView(*budget))
}

func (h *Handler) listBudgets(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireRead(w, r)
	if !ok {
		return
	}

	month, err := parseMonthParam(r, h.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	budgets, err := h.service.ListBudgets(r.Context(), claims.Subject, month)
	if err != nil {
		serviceError(w, err)
		return
	}

	items := make([]BudgetView, 0, len(budgets))
	for _, b := range budgets {
		items = append(items, toBudgetView(b))
	}
	writeJSON(w, http.StatusOK, ListBudgetsResponse{Items: items})
}

func (h *Handler) financeSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	claims, ok := requireRead(w, r)
	if !ok {
		return
	}

	month, err := parseMonthParam(r, h.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	summary, err := h.service.MonthlyFinanceSummary(r.Context(), claims.Subject, month)
	if err != nil {
		serviceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFinanceSummaryView(*summary))
}

// AddTransactionRequest is the payload for POST /v1/finances/transactions.
type AddTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Description *string         `json:"description"`
	Date        string          `json:"date"`
	IsRecurring bool            `json:"is_recurring"`
	RecurringID *string         `json:"recurring_id"`
	Intent      *string         `json:"intent"`
	Emotion     *string         `json:"emotion"`
	WorthIt     *bool           `json:"worth_it"`
}

// Validate ensures request correctness.
func (r AddTransactionRequest) Validate() error {
	if strings.TrimSpace(r.Type) == "" {
		return errors.New("type is required")
	}
	if strings.TrimSpace(r.Category) == "" {
		return errors.New("category is required")
	}
	if strings.TrimSpace(r.Date) == "" {
		return errors.New("date is required")
	}
	return nil
}

func (r AddTransactionRequest) toInput(userID string) (domain.AddTransactionInput, error) {
	date, err := parseDateField(r.Date, "date")
	if err != nil {
		return domain.AddTransactionInput{}, err
	}

	input := domain.AddTransactionInput{
		UserID:      userID,
		Amount:      r.Amount,
		Type:        domain.TransactionType(r.Type),
		Category:    r.Category,
		Description: r.Description,
		Date:        date,
		IsRecurring: r.IsRecurring,
		RecurringID: r.RecurringID,
		WorthIt:     r.WorthIt,
	}
	if r.Intent != nil {
		intent := domain.SpendIntent(*r.Intent)
		input.Intent = &intent
	}
	if r.Emotion != nil {
		emotion := domain.SpendEmotion(*r.Emotion)
		input.Emotion = &emotion
	}
	return input, nil
}

// SetBudgetRequest is the payload for POST /v1/finances/budgets.
type SetBudgetRequest struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Month    string          `json:"month"`
}

// Validate ensures request correctness.
func (r SetBudgetRequest) Validate() error {
	if strings.TrimSpace(r.Category) == "" {
		return errors.New("category is required")
	}
	if strings.TrimSpace(r.Month) == "" {
		return errors.New("month is required")
	}
	return nil
}

// TransactionView exposes full details about a transaction.
type TransactionView struct {
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
	Description   *string         `json:"description,omitempty"`
	Date          domain.Date     `json:"date"`
	IsRecurring   bool            `json:"is_recurring"`
	RecurringID   *string         `json:"recurring_id,omitempty"`
	Intent        *string         `json:"intent,omitempty"`
	Emotion       *string         `json:"emotion,omitempty"`
	WorthIt       *bool           `json:"worth_it,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ListTransactionsResponse packages list results.
type ListTransactionsResponse struct {
	Items []TransactionView `json:"items"`
}

// BudgetView exposes full details about a budget.
type BudgetView struct {
	BudgetID  string          `json:"budget_id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Month     domain.Date     `json:"month"`
	CreatedAt time.Time       `json:"created_at"`
}

// ListBudgetsResponse packages list results.
type ListBudgetsResponse struct {
	Items []BudgetView `json:"items"`
}

// BudgetStatusView reports one category's spending against its budget.
type BudgetStatusView struct {
	Category   string          `json:"category"`
	Budget     decimal.Decimal `json:"budget"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage float64         `json:"percentage"`
}

// FinanceSummaryView aggregates one month of money movement.
type FinanceSummaryView struct {
	Month             domain.Date                `json:"month"`
	TotalIncome       decimal.Decimal            `json:"total_income"`
	TotalExpenses     decimal.Decimal            `json:"total_expenses"`
	NetSavings        decimal.Decimal            `json:"net_savings"`
	ExpenseByCategory map[string]decimal.Decimal `json:"expense_by_category"`
	IncomeByCategory  map[string]decimal.Decimal `json:"income_by_category"`
	BudgetStatus      []BudgetStatusView         `json:"budget_status"`
	TransactionCount  int                        `json:"transaction_count"`
}

func toTransactionView(t domain.Transaction) TransactionView {
	view := TransactionView{
		TransactionID: t.ID,
		Amount:        t.Amount,
		Type:          string(t.Type),
		Category:      t.Category,
		Description:   t.Description,
		Date:          t.Date,
		IsRecurring:   t.IsRecurring,
		RecurringID:   t.RecurringID,
		WorthIt:       t.WorthIt,
		CreatedAt:     t.CreatedAt,
	}
	if t.Intent != nil {
		intent := string(*t.Intent)
		view.Intent = &intent
	}
	if t.Emotion != nil {
		emotion := string(*t.Emotion)
		view.Emotion = &emotion
	}
	return view
}

func toBudgetView(b domain.Budget) BudgetView {
	return BudgetView{
		BudgetID:  b.ID,
		Category:  b.Category,
		Amount:    b.Amount,
		Month:     b.Month,
		CreatedAt: b.CreatedAt,
	}
}

func toFinanceSummaryView(s domain.FinanceSummary) FinanceSummaryView {
	statuses := make([]BudgetStatusView, 0, len(s.BudgetStatus))
	for _, status := range s.BudgetStatus {
		statuses = append(statuses, BudgetStatusView{
			Category:   status.Category,
			Budget:     status.Budget,
			Spent:      status.Spent,
			Remaining:  status.Remaining,
			Percentage: status.Percentage,
		})
	}
	return FinanceSummaryView{
		Month:             s.Month,
		TotalIncome:       s.TotalIncome,
		TotalExpenses:     s.TotalExpenses,
		NetSavings:        s.NetSavings,
		ExpenseByCategory: s.ExpenseByCategory,
		IncomeByCategory:  s.IncomeByCategory,
		BudgetStatus:      statuses,
		TransactionCount:  s.TransactionCount,
	}
}
