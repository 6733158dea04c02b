package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"kharcha/internal/domain/expense"
	"kharcha/internal/domain/report"
)

type ExpenseRepository struct {
	db *DB
}

func NewExpenseRepository(db *DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// expenseColumns joins categories so reads carry the resolved category
// name and type. Expenses survive category deletion, hence the LEFT JOIN
// and the 'Unknown' placeholder.
const expenseColumns = `
	e.id, e.user_id, e.amount_cents, e.category_id,
	COALESCE(c.name, 'Unknown'), COALESCE(c.type, e.type),
	e.type, e.date, e.description, e.payment_method,
	e.is_business_credit_paid, e.paid_with_method, e.paid_date,
	e.created_at, e.updated_at
`

func scanExpense(row interface{ Scan(...any) error }) (*expense.Expense, error) {
	var e expense.Expense
	var paidMethod sql.NullString
	var paidDate sql.NullTime

	err := row.Scan(
		&e.ID, &e.UserID, &e.Amount, &e.CategoryID,
		&e.CategoryName, &e.CategoryType,
		&e.Type, &e.Date, &e.Description, &e.PaymentMethod,
		&e.IsBusinessCreditPaid, &paidMethod, &paidDate,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if paidMethod.Valid {
		m := expense.PaymentMethod(paidMethod.String)
		e.PaidWithMethod = &m
	}
	if paidDate.Valid {
		d := paidDate.Time
		e.PaidDate = &d
	}

	return &e, nil
}

func (r *ExpenseRepository) Create(ctx context.Context, userID int64, params expense.CreateExpenseParams, creditPaid bool) (*expense.Expense, error) {
	query := `
		INSERT INTO expenses (user_id, amount_cents, category_id, type, date, description, payment_method, is_business_credit_paid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id string
	err := r.db.QueryRowContext(
		ctx, query,
		userID, params.Amount, params.CategoryID, params.Type,
		params.Date, params.Description, params.PaymentMethod, creditPaid,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return r.GetByID(ctx, userID, id)
}

func (r *ExpenseRepository) GetByID(ctx context.Context, userID int64, id string) (*expense.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		LEFT JOIN categories c ON c.id = e.category_id
		WHERE e.id = $1 AND e.user_id = $2
	`

	e, err := scanExpense(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return e, nil
}

func (r *ExpenseRepository) List(ctx context.Context, userID int64, filter expense.Filter) ([]expense.Expense, error) {
	conditions := []string{"e.user_id = $1"}
	args := []any{userID}

	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("e.type = $%d", len(args)))
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		conditions = append(conditions, fmt.Sprintf("e.category_id = $%d", len(args)))
	}
	if filter.PaymentMethod != "" {
		args = append(args, filter.PaymentMethod)
		conditions = append(conditions, fmt.Sprintf("e.payment_method = $%d", len(args)))
	}
	if filter.CreditPaid != nil {
		args = append(args, *filter.CreditPaid)
		conditions = append(conditions, fmt.Sprintf("e.is_business_credit_paid = $%d", len(args)))
	}
	if !filter.StartDate.IsZero() {
		args = append(args, filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("e.date >= $%d", len(args)))
	}
	if !filter.EndDate.IsZero() {
		args = append(args, filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("e.date <= $%d", len(args)))
	}

	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		LEFT JOIN categories c ON c.id = e.category_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY e.date DESC, e.created_at DESC
	`

	return r.queryExpenses(ctx, query, args...)
}

func (r *ExpenseRepository) Update(ctx context.Context, userID int64, id string, params expense.UpdateExpenseParams, creditPaid *bool) (*expense.Expense, error) {
	query := `
		UPDATE expenses
		SET amount_cents = COALESCE($1, amount_cents),
		    category_id = COALESCE($2, category_id),
		    type = COALESCE($3, type),
		    date = COALESCE($4, date),
		    description = COALESCE($5, description),
		    payment_method = COALESCE($6, payment_method),
		    is_business_credit_paid = COALESCE($7, is_business_credit_paid),
		    paid_with_method = CASE WHEN $7 = FALSE THEN NULL ELSE paid_with_method END,
		    paid_date = CASE WHEN $7 = FALSE THEN NULL ELSE paid_date END,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $8 AND user_id = $9
		RETURNING id
	`

	var returned string
	err := r.db.QueryRowContext(
		ctx, query,
		params.Amount, params.CategoryID, params.Type, params.Date,
		params.Description, params.PaymentMethod, creditPaid, id, userID,
	).Scan(&returned)

	if err == sql.ErrNoRows {
		return nil, expense.ErrExpenseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return r.GetByID(ctx, userID, returned)
}

func (r *ExpenseRepository) Delete(ctx context.Context, userID int64, id string) error {
	query := `DELETE FROM expenses WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return expense.ErrExpenseNotFound
	}

	return nil
}

func (r *ExpenseRepository) ListUnpaidCredits(ctx context.Context, userID int64) ([]expense.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		LEFT JOIN categories c ON c.id = e.category_id
		WHERE e.user_id = $1 AND e.is_business_credit_paid = FALSE
		ORDER BY e.date ASC, e.created_at ASC
	`

	return r.queryExpenses(ctx, query, userID)
}

func (r *ExpenseRepository) SettleCredit(ctx context.Context, userID int64, id string, method expense.PaymentMethod, paidDate time.Time) (*expense.Expense, error) {
	query := `
		UPDATE expenses
		SET is_business_credit_paid = TRUE,
		    paid_with_method = $1,
		    paid_date = $2,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $3 AND user_id = $4
		  AND type = 'business'
		  AND payment_method = 'StoreCredit'
		  AND is_business_credit_paid = FALSE
		RETURNING id
	`

	var returned string
	err := r.db.QueryRowContext(ctx, query, method, paidDate, id, userID).Scan(&returned)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to settle credit: %w", err)
	}

	return r.GetByID(ctx, userID, returned)
}

func (r *ExpenseRepository) SettleCredits(ctx context.Context, userID int64, ids []string, paidDate time.Time) (matched, modified int64, err error) {
	query := `
		UPDATE expenses
		SET is_business_credit_paid = TRUE,
		    paid_date = $1,
		    updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $2 AND id = ANY($3::uuid[])
		  AND type = 'business'
		  AND payment_method = 'StoreCredit'
		  AND is_business_credit_paid = FALSE
	`

	result, err := r.db.ExecContext(ctx, query, paidDate, userID, pq.Array(ids))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to settle credits: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows, rows, nil
}

// ExpensesForDay feeds the daily report.
func (r *ExpenseRepository) ExpensesForDay(ctx context.Context, userID int64, day time.Time) ([]expense.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		LEFT JOIN categories c ON c.id = e.category_id
		WHERE e.user_id = $1 AND e.date = $2
		ORDER BY e.created_at ASC
	`

	return r.queryExpenses(ctx, query, userID, day)
}

func (r *ExpenseRepository) TotalsByCategory(ctx context.Context, userID int64, start, end time.Time) ([]report.SummaryRow, error) {
	query := `
		SELECT e.category_id, COALESCE(c.name, 'Unknown'), COALESCE(c.type, e.type),
		       SUM(e.amount_cents), COUNT(*)
		FROM expenses e
		LEFT JOIN categories c ON c.id = e.category_id
		WHERE e.user_id = $1 AND e.date BETWEEN $2 AND $3
		GROUP BY e.category_id, COALESCE(c.name, 'Unknown'), COALESCE(c.type, e.type)
		ORDER BY SUM(e.amount_cents) DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by category: %w", err)
	}
	defer rows.Close()

	var result []report.SummaryRow
	for rows.Next() {
		var row report.SummaryRow
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.CategoryType, &row.TotalAmount, &row.Count); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating summary rows: %w", err)
	}

	return result, nil
}

func (r *ExpenseRepository) TotalsByMonth(ctx context.Context, userID int64, start, end time.Time) ([]report.SummaryRow, error) {
	query := `
		SELECT EXTRACT(YEAR FROM e.date)::int, EXTRACT(MONTH FROM e.date)::int, e.type,
		       SUM(e.amount_cents), COUNT(*)
		FROM expenses e
		WHERE e.user_id = $1 AND e.date BETWEEN $2 AND $3
		GROUP BY 1, 2, e.type
		ORDER BY 1 ASC, 2 ASC, e.type ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by month: %w", err)
	}
	defer rows.Close()

	var result []report.SummaryRow
	for rows.Next() {
		var row report.SummaryRow
		if err := rows.Scan(&row.Year, &row.Month, &row.Type, &row.TotalAmount, &row.Count); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating summary rows: %w", err)
	}

	return result, nil
}

func (r *ExpenseRepository) TotalsByType(ctx context.Context, userID int64, start, end time.Time) ([]report.SummaryRow, error) {
	query := `
		SELECT e.type, SUM(e.amount_cents), COUNT(*)
		FROM expenses e
		WHERE e.user_id = $1 AND e.date BETWEEN $2 AND $3
		GROUP BY e.type
		ORDER BY e.type ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by type: %w", err)
	}
	defer rows.Close()

	var result []report.SummaryRow
	for rows.Next() {
		var row report.SummaryRow
		if err := rows.Scan(&row.Type, &row.TotalAmount, &row.Count); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating summary rows: %w", err)
	}

	return result, nil
}

func (r *ExpenseRepository) queryExpenses(ctx context.Context, query string, args ...any) ([]expense.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []expense.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	return expenses, nil
}
