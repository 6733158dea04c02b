package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"kharcha/internal/domain/expense"
	"kharcha/internal/domain/money"
)

// CreditSweepJob logs a digest of a user's outstanding business credits
// so unpaid store-credit purchases do not go unnoticed.
type CreditSweepJob struct {
	userID      int64
	expenseRepo expense.Repository
}

func NewCreditSweepJob(userID int64, expenseRepo expense.Repository) *CreditSweepJob {
	return &CreditSweepJob{
		userID:      userID,
		expenseRepo: expenseRepo,
	}
}

func (j *CreditSweepJob) UserID() string {
	return strconv.FormatInt(j.userID, 10)
}

func (j *CreditSweepJob) Description() string {
	return fmt.Sprintf("business credit sweep for user %d", j.userID)
}

func (j *CreditSweepJob) Execute(ctx context.Context) error {
	credits, err := j.expenseRepo.ListUnpaidCredits(ctx, j.userID)
	if err != nil {
		return fmt.Errorf("failed to list unpaid credits for user %d: %w", j.userID, err)
	}

	if len(credits) == 0 {
		return nil
	}

	var total money.Amount
	oldest := credits[0].Date
	for _, c := range credits {
		total += c.Amount
		if c.Date.Before(oldest) {
			oldest = c.Date
		}
	}

	log.Printf("CreditSweep: user %d has %d unpaid business credits totaling %s (oldest %s)",
		j.userID, len(credits), total.String(), oldest.Format("2006-01-02"))

	return nil
}
