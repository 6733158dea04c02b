package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"kharcha/internal/domain/category"
	"kharcha/internal/domain/expense"
	"kharcha/internal/domain/money"
)

type mockRepo struct {
	ExpensesForDayFunc   func(ctx context.Context, userID int64, day time.Time) ([]expense.Expense, error)
	TotalsByCategoryFunc func(ctx context.Context, userID int64, start, end time.Time) ([]SummaryRow, error)
	TotalsByMonthFunc    func(ctx context.Context, userID int64, start, end time.Time) ([]SummaryRow, error)
	TotalsByTypeFunc     func(ctx context.Context, userID int64, start, end time.Time) ([]SummaryRow, error)
}

func (m *mockRepo) ExpensesForDay(ctx context.Context, userID int64, day time.Time) ([]expense.Expense, error) {
	return m.ExpensesForDayFunc(ctx, userID, day)
}

func (m *mockRepo) TotalsByCategory(ctx context.Context, userID int64, start, end time.Time) ([]SummaryRow, error) {
	return m.TotalsByCategoryFunc(ctx, userID, start, end)
}

func (m *mockRepo) TotalsByMonth(ctx context.Context, userID int64, start, end time.Time) ([]SummaryRow, error) {
	return m.TotalsByMonthFunc(ctx, userID, start, end)
}

func (m *mockRepo) TotalsByType(ctx context.Context, userID int64, start, end time.Time) ([]SummaryRow, error) {
	return m.TotalsByTypeFunc(ctx, userID, start, end)
}

func TestDaily_GroupsAndSorts(t *testing.T) {
	repo := &mockRepo{
		ExpensesForDayFunc: func(ctx context.Context, userID int64, day time.Time) ([]expense.Expense, error) {
			return []expense.Expense{
				{ID: "e1", CategoryID: "c1", CategoryName: "Snacks", CategoryType: category.TypePersonal, Amount: 500},
				{ID: "e2", CategoryID: "c2", CategoryName: "Inventory", CategoryType: category.TypeBusiness, Amount: 2000},
				{ID: "e3", CategoryID: "c1", CategoryName: "Snacks", CategoryType: category.TypePersonal, Amount: 300},
				{ID: "e4", CategoryID: "c3", CategoryName: "Fuel", CategoryType: category.TypeBusiness, Amount: 1200},
			}, nil
		},
	}

	svc := NewService(repo)
	got, err := svc.Daily(context.Background(), 1, "2025-03-10")
	if err != nil {
		t.Fatalf("Daily() error = %v", err)
	}

	if got.TotalAmount != 4000 {
		t.Errorf("TotalAmount = %d, want 4000", got.TotalAmount)
	}
	if got.TotalCount != 4 {
		t.Errorf("TotalCount = %d, want 4", got.TotalCount)
	}
	if len(got.Groups) != 3 {
		t.Fatalf("len(Groups) = %d, want 3", len(got.Groups))
	}

	// business before personal, alphabetical within a type
	wantOrder := []string{"Fuel", "Inventory", "Snacks"}
	for i, name := range wantOrder {
		if got.Groups[i].CategoryName != name {
			t.Errorf("Groups[%d].CategoryName = %q, want %q", i, got.Groups[i].CategoryName, name)
		}
	}

	snacks := got.Groups[2]
	if snacks.TotalAmount != 800 || snacks.Count != 2 || len(snacks.Expenses) != 2 {
		t.Errorf("snacks group = total %d count %d expenses %d, want 800/2/2",
			snacks.TotalAmount, snacks.Count, len(snacks.Expenses))
	}
}

func TestDaily_EmptyDay(t *testing.T) {
	repo := &mockRepo{
		ExpensesForDayFunc: func(ctx context.Context, userID int64, day time.Time) ([]expense.Expense, error) {
			return nil, nil
		},
	}

	got, err := NewService(repo).Daily(context.Background(), 1, "2025-03-10")
	if err != nil {
		t.Fatalf("Daily() error = %v", err)
	}
	if got.TotalAmount != 0 || got.TotalCount != 0 {
		t.Errorf("empty day totals = %d/%d, want 0/0", got.TotalAmount, got.TotalCount)
	}
	if got.Groups == nil || len(got.Groups) != 0 {
		t.Errorf("Groups = %v, want empty non-nil slice", got.Groups)
	}
}

func TestDaily_InvalidDate(t *testing.T) {
	svc := NewService(&mockRepo{})
	if _, err := svc.Daily(context.Background(), 1, "10-03-2025"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("Daily() error = %v, want ErrInvalidDate", err)
	}
}

func TestSummary_DefaultsToType(t *testing.T) {
	var called bool
	repo := &mockRepo{
		TotalsByTypeFunc: func(ctx context.Context, userID int64, start, end time.Time) ([]SummaryRow, error) {
			called = true
			return []SummaryRow{{Type: category.TypeBusiness, TotalAmount: money.Amount(5000), Count: 3}}, nil
		},
	}

	got, err := NewService(repo).Summary(context.Background(), 1, "2025-03-01", "2025-03-31", "")
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if !called {
		t.Error("expected type grouping to be used by default")
	}
	if got.GroupBy != GroupByType {
		t.Errorf("GroupBy = %q, want %q", got.GroupBy, GroupByType)
	}
}

func TestSummary_OverallTotalIsSumOfRows(t *testing.T) {
	repo := &mockRepo{
		TotalsByCategoryFunc: func(ctx context.Context, userID int64, start, end time.Time) ([]SummaryRow, error) {
			return []SummaryRow{
				{CategoryID: "c1", CategoryName: "Fuel", TotalAmount: 1200, Count: 2},
				{CategoryID: "c2", CategoryName: "Snacks", TotalAmount: 800, Count: 3},
			}, nil
		},
	}

	got, err := NewService(repo).Summary(context.Background(), 1, "2025-03-01", "2025-03-31", GroupByCategory)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if got.TotalOverallSpend != 2000 {
		t.Errorf("TotalOverallSpend = %d, want 2000", got.TotalOverallSpend)
	}
}

func TestSummary_InvalidRange(t *testing.T) {
	svc := NewService(&mockRepo{})
	if _, err := svc.Summary(context.Background(), 1, "2025-04-01", "2025-03-01", GroupByType); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("Summary() error = %v, want ErrInvalidRange", err)
	}
}

func TestSummary_InvalidGroupBy(t *testing.T) {
	svc := NewService(&mockRepo{})
	if _, err := svc.Summary(context.Background(), 1, "2025-03-01", "2025-03-31", "week"); !errors.Is(err, ErrInvalidGroupBy) {
		t.Errorf("Summary() error = %v, want ErrInvalidGroupBy", err)
	}
}

func TestSummary_EmptyRows(t *testing.T) {
	repo := &mockRepo{
		TotalsByCategoryFunc: func(ctx context.Context, userID int64, start, end time.Time) ([]SummaryRow, error) {
			return nil, nil
		},
	}

	got, err := NewService(repo).Summary(context.Background(), 1, "2025-03-01", "2025-03-31", GroupByCategory)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if got.Rows == nil || len(got.Rows) != 0 {
		t.Errorf("Rows = %v, want empty non-nil slice", got.Rows)
	}
}
