// Package credit settles open business-credit expenses. An expense bought
// on store credit for a business category stays open until it is paid off
// here, one at a time or in bulk.
package credit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"kharcha/internal/domain/category"
	"kharcha/internal/domain/expense"
)

var ErrInvalidSettlementMethod = errors.New("invalid settlement payment method")

type Service struct {
	repo expense.Repository
}

func NewService(repo expense.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListUnpaid(ctx context.Context, userID int64) ([]expense.Expense, error) {
	credits, err := s.repo.ListUnpaidCredits(ctx, userID)
	if err != nil {
		return nil, err
	}
	if credits == nil {
		credits = []expense.Expense{}
	}
	return credits, nil
}

// SettleOne pays off a single open credit. A zero paidDate defaults to now.
func (s *Service) SettleOne(ctx context.Context, userID int64, id string, method expense.PaymentMethod, paidDate time.Time) (*expense.Expense, error) {
	if !expense.ValidSettlementMethod(method) {
		return nil, ErrInvalidSettlementMethod
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, expense.ErrExpenseNotFound
	}
	if paidDate.IsZero() {
		paidDate = time.Now().UTC()
	}

	settled, err := s.repo.SettleCredit(ctx, userID, id, method, paidDate)
	if err != nil {
		return nil, err
	}
	if settled != nil {
		return settled, nil
	}

	// The update matched nothing. Look the expense up to tell a missing
	// credit apart from one that was already paid. An expense that was
	// never a store-credit business purchase is not a credit at all, even
	// though its paid flag reads true.
	existing, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, expense.ErrExpenseNotFound
	}
	isCredit := existing.Type == category.TypeBusiness && existing.PaymentMethod == expense.PaymentStoreCredit
	if isCredit && existing.IsBusinessCreditPaid {
		return nil, expense.ErrAlreadySettled
	}
	return nil, expense.ErrExpenseNotFound
}

// SettleMany bulk-settles open credits and returns how many rows changed.
// IDs that do not parse as UUIDs are skipped rather than failing the batch.
func (s *Service) SettleMany(ctx context.Context, userID int64, ids []string) (int64, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return 0, expense.ErrExpenseNotFound
	}

	matched, modified, err := s.repo.SettleCredits(ctx, userID, valid, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if matched == 0 {
		return 0, expense.ErrExpenseNotFound
	}
	return modified, nil
}
