package expense

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, userID int64, params CreateExpenseParams, creditPaid bool) (*Expense, error)
	GetByID(ctx context.Context, userID int64, id string) (*Expense, error)
	List(ctx context.Context, userID int64, filter Filter) ([]Expense, error)
	Update(ctx context.Context, userID int64, id string, params UpdateExpenseParams, creditPaid *bool) (*Expense, error)
	Delete(ctx context.Context, userID int64, id string) error

	// ListUnpaidCredits returns open business credits, oldest first.
	ListUnpaidCredits(ctx context.Context, userID int64) ([]Expense, error)
	// SettleCredit marks one open credit as paid. It returns (nil, nil)
	// when no row matched, leaving the caller to tell "not found" apart
	// from "already settled".
	SettleCredit(ctx context.Context, userID int64, id string, method PaymentMethod, paidDate time.Time) (*Expense, error)
	// SettleCredits marks every open credit in ids as paid and returns
	// counts of matched and modified rows.
	SettleCredits(ctx context.Context, userID int64, ids []string, paidDate time.Time) (matched, modified int64, err error)
}
