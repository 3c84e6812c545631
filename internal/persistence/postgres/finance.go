package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"example.com/routine/internal/domain"
)

const transactionColumns = `transaction_id, user_id, amount, type, category, description, date, is_recurring, recurring_id, intent, emotion, worth_it, created_at`

// CreateTransaction persists an income or expense entry.
func (r *Repository) CreateTransaction(ctx context.Context, transaction domain.Transaction) error {
	return r.withUser(ctx, transaction.UserID, func(tx pgx.Tx) error {
		const stmt = `INSERT INTO transactions (` + transactionColumns + `)
            VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`

		_, err := tx.Exec(ctx, stmt,
			transaction.ID,
			transaction.UserID,
			transaction.Amount,
			transaction.Type,
			transaction.Category,
			transaction.Description,
			transaction.Date.Time(),
			transaction.IsRecurring,
			transaction.RecurringID,
			transaction.Intent,
			transaction.Emotion,
			transaction.WorthIt,
			transaction.CreatedAt,
		)
		return err
	})
}

// ListTransactions returns transactions dated in [from, to] ordered by date
// descending, newest first.
func (r *Repository) ListTransactions(ctx context.Context, userID string, from, to domain.Date) ([]domain.Transaction, error) {
	const query = `SELECT ` + transactionColumns + ` FROM transactions
        WHERE user_id=$1 AND date >= $2 AND date <= $3
        ORDER BY date DESC, created_at DESC`

	var results []domain.Transaction
	err := r.withUser(ctx, userID, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, userID, from.Time(), to.Time())
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			txn, err := scanTransaction(rows)
			if err != nil {
				return err
			}
			results = append(results, txn)
		}
		return rows.Err()
	})
	return results, err
}

// DeleteTransaction removes a transaction, reporting whether a row existed.
func (r *Repository) DeleteTransaction(ctx context.Context, userID, transactionID string) (bool, error) {
	var deleted bool
	err := r.withUser(ctx, userID, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE user_id=$1 AND transaction_id=$2`, userID, transactionID)
		if err != nil {
			return err
		}
		deleted = tag.RowsAffected() > 0
		return nil
	})
	return deleted, err
}

// UpsertBudget creates or replaces the budget for (user, category, month) and
// returns the stored row.
func (r *Repository) UpsertBudget(ctx context.Context, budget domain.Budget) (domain.Budget, error) {
	const stmt = `INSERT INTO budgets (budget_id, user_id, category, amount, month, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (user_id, category, month) DO UPDATE SET amount = EXCLUDED.amount
        RETURNING budget_id, user_id, category, amount, month, created_at`

	var stored domain.Budget
	err := r.withUser(ctx, budget.UserID, func(tx pgx.Tx) error {
		var month time.Time
		if err := tx.QueryRow(ctx, stmt,
			budget.ID,
			budget.UserID,
			budget.Category,
			budget.Amount,
			budget.Month.Time(),
			budget.CreatedAt,
		).Scan(&stored.ID, &stored.UserID, &stored.Category, &stored.Amount, &month, &stored.CreatedAt); err != nil {
			return err
		}
		stored.Month = domain.DateOf(month)
		return nil
	})
	return stored, err
}

// ListBudgets returns the budgets for one month ordered by category.
func (r *Repository) ListBudgets(ctx context.Context, userID string, month domain.Date) ([]domain.Budget, error) {
	const query = `SELECT budget_id, user_id, category, amount, month, created_at FROM budgets
        WHERE user_id=$1 AND month=$2
        ORDER BY category ASC`

	var results []domain.Budget
	err := r.withUser(ctx, userID, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, userID, month.Time())
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var b domain.Budget
			var m time.Time
			if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.Amount, &m, &b.CreatedAt); err != nil {
				return err
			}
			b.Month = domain.DateOf(m)
			results = append(results, b)
		}
		return rows.Err()
	})
	return results, err
}

func scanTransaction(rows pgx.Rows) (domain.Transaction, error) {
	var t domain.Transaction
	var date time.Time
	if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Type, &t.Category, &t.Description, &date, &t.IsRecurring, &t.RecurringID, &t.Intent, &t.Emotion, &t.WorthIt, &t.CreatedAt); err != nil {
		return domain.Transaction{}, err
	}
	t.Date = domain.DateOf(date)
	return t, nil
}
