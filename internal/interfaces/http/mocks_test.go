package http

import (
	"context"
	"time"

	"kharcha/internal/domain/category"
	"kharcha/internal/domain/expense"
	"kharcha/internal/domain/report"
	"kharcha/internal/domain/user"
)

// MockUserRepo implements user.Repository for testing
type MockUserRepo struct {
	CreateFunc     func(ctx context.Context, params user.CreateUserParams) (*user.User, error)
	GetByIDFunc    func(ctx context.Context, id int64) (*user.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*user.User, error)
	ListIDsFunc    func(ctx context.Context) ([]int64, error)
}

func (m *MockUserRepo) Create(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepo) ListIDs(ctx context.Context) ([]int64, error) {
	if m.ListIDsFunc != nil {
		return m.ListIDsFunc(ctx)
	}
	return nil, nil
}

// MockCategoryRepo implements category.Repository for testing
type MockCategoryRepo struct {
	CreateFunc       func(ctx context.Context, userID int64, params category.CreateCategoryParams) (*category.Category, error)
	GetByIDFunc      func(ctx context.Context, userID int64, id string) (*category.Category, error)
	ListByUserIDFunc func(ctx context.Context, userID int64) ([]category.Category, error)
	UpdateFunc       func(ctx context.Context, userID int64, id string, params category.UpdateCategoryParams) (*category.Category, error)
	DeleteFunc       func(ctx context.Context, userID int64, id string) error
}

func (m *MockCategoryRepo) Create(ctx context.Context, userID int64, params category.CreateCategoryParams) (*category.Category, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockCategoryRepo) GetByID(ctx context.Context, userID int64, id string) (*category.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	return nil, nil
}

func (m *MockCategoryRepo) ListByUserID(ctx context.Context, userID int64) ([]category.Category, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCategoryRepo) Update(ctx context.Context, userID int64, id string, params category.UpdateCategoryParams) (*category.Category, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, params)
	}
	return nil, nil
}

func (m *MockCategoryRepo) Delete(ctx context.Context, userID int64, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

// MockExpenseRepo implements expense.Repository for testing
type MockExpenseRepo struct {
	CreateFunc            func(ctx context.Context, userID int64, params expense.CreateExpenseParams, creditPaid bool) (*expense.Expense, error)
	GetByIDFunc           func(ctx context.Context, userID int64, id string) (*expense.Expense, error)
	ListFunc              func(ctx context.Context, userID int64, filter expense.Filter) ([]expense.Expense, error)
	UpdateFunc            func(ctx context.Context, userID int64, id string, params expense.UpdateExpenseParams, creditPaid *bool) (*expense.Expense, error)
	DeleteFunc            func(ctx context.Context, userID int64, id string) error
	ListUnpaidCreditsFunc func(ctx context.Context, userID int64) ([]expense.Expense, error)
	SettleCreditFunc      func(ctx context.Context, userID int64, id string, method expense.PaymentMethod, paidDate time.Time) (*expense.Expense, error)
	SettleCreditsFunc     func(ctx context.Context, userID int64, ids []string, paidDate time.Time) (int64, int64, error)
}

func (m *MockExpenseRepo) Create(ctx context.Context, userID int64, params expense.CreateExpenseParams, creditPaid bool) (*expense.Expense, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, params, creditPaid)
	}
	return nil, nil
}

func (m *MockExpenseRepo) GetByID(ctx context.Context, userID int64, id string) (*expense.Expense, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	return nil, nil
}

func (m *MockExpenseRepo) List(ctx context.Context, userID int64, filter expense.Filter) ([]expense.Expense, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, filter)
	}
	return nil, nil
}

func (m *MockExpenseRepo) Update(ctx context.Context, userID int64, id string, params expense.UpdateExpenseParams, creditPaid *bool) (*expense.Expense, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, params, creditPaid)
	}
	return nil, nil
}

func (m *MockExpenseRepo) Delete(ctx context.Context, userID int64, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

func (m *MockExpenseRepo) ListUnpaidCredits(ctx context.Context, userID int64) ([]expense.Expense, error) {
	if m.ListUnpaidCreditsFunc != nil {
		return m.ListUnpaidCreditsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockExpenseRepo) SettleCredit(ctx context.Context, userID int64, id string, method expense.PaymentMethod, paidDate time.Time) (*expense.Expense, error) {
	if m.SettleCreditFunc != nil {
		return m.SettleCreditFunc(ctx, userID, id, method, paidDate)
	}
	return nil, nil
}

func (m *MockExpenseRepo) SettleCredits(ctx context.Context, userID int64, ids []string, paidDate time.Time) (int64, int64, error) {
	if m.SettleCreditsFunc != nil {
		return m.SettleCreditsFunc(ctx, userID, ids, paidDate)
	}
	return 0, 0, nil
}

// MockReportRepo implements report.Repository for testing
type MockReportRepo struct {
	ExpensesForDayFunc   func(ctx context.Context, userID int64, day time.Time) ([]expense.Expense, error)
	TotalsByCategoryFunc func(ctx context.Context, userID int64, start, end time.Time) ([]report.SummaryRow, error)
	TotalsByMonthFunc    func(ctx context.Context, userID int64, start, end time.Time) ([]report.SummaryRow, error)
	TotalsByTypeFunc     func(ctx context.Context, userID int64, start, end time.Time) ([]report.SummaryRow, error)
}

func (m *MockReportRepo) ExpensesForDay(ctx context.Context, userID int64, day time.Time) ([]expense.Expense, error) {
	if m.ExpensesForDayFunc != nil {
		return m.ExpensesForDayFunc(ctx, userID, day)
	}
	return nil, nil
}

func (m *MockReportRepo) TotalsByCategory(ctx context.Context, userID int64, start, end time.Time) ([]report.SummaryRow, error) {
	if m.TotalsByCategoryFunc != nil {
		return m.TotalsByCategoryFunc(ctx, userID, start, end)
	}
	return nil, nil
}

func (m *MockReportRepo) TotalsByMonth(ctx context.Context, userID int64, start, end time.Time) ([]report.SummaryRow, error) {
	if m.TotalsByMonthFunc != nil {
		return m.TotalsByMonthFunc(ctx, userID, start, end)
	}
	return nil, nil
}

func (m *MockReportRepo) TotalsByType(ctx context.Context, userID int64, start, end time.Time) ([]report.SummaryRow, error) {
	if m.TotalsByTypeFunc != nil {
		return m.TotalsByTypeFunc(ctx, userID, start, end)
	}
	return nil, nil
}
