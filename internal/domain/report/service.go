package report

import (
	"context"
	"sort"
	"time"

	"kharcha/internal/domain/expense"
	"kharcha/internal/domain/money"
)

// Repository is the storage surface reports aggregate over.
type Repository interface {
	ExpensesForDay(ctx context.Context, userID int64, day time.Time) ([]expense.Expense, error)
	TotalsByCategory(ctx context.Context, userID int64, start, end time.Time) ([]SummaryRow, error)
	TotalsByMonth(ctx context.Context, userID int64, start, end time.Time) ([]SummaryRow, error)
	TotalsByType(ctx context.Context, userID int64, start, end time.Time) ([]SummaryRow, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

const dateLayout = "2006-01-02"

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Daily groups one day's expenses by category, business groups before
// personal, categories alphabetical within each type.
func (s *Service) Daily(ctx context.Context, userID int64, date string) (*DailyReport, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}

	expenses, err := s.repo.ExpensesForDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	report := &DailyReport{Date: day.Format(dateLayout), Groups: []DailyGroup{}}

	index := make(map[string]int)
	for _, e := range expenses {
		i, ok := index[e.CategoryID]
		if !ok {
			i = len(report.Groups)
			index[e.CategoryID] = i
			report.Groups = append(report.Groups, DailyGroup{
				CategoryID:   e.CategoryID,
				CategoryName: e.CategoryName,
				CategoryType: e.CategoryType,
				Expenses:     []expense.Expense{},
			})
		}
		g := &report.Groups[i]
		g.TotalAmount += e.Amount
		g.Count++
		g.Expenses = append(g.Expenses, e)

		report.TotalAmount += e.Amount
		report.TotalCount++
	}

	sort.Slice(report.Groups, func(i, j int) bool {
		a, b := report.Groups[i], report.Groups[j]
		if a.CategoryType != b.CategoryType {
			return a.CategoryType < b.CategoryType
		}
		return a.CategoryName < b.CategoryName
	})

	return report, nil
}

// Summary aggregates expenses in [startDate, endDate] under the given
// grouping. An empty groupBy defaults to type.
func (s *Service) Summary(ctx context.Context, userID int64, startDate, endDate string, groupBy GroupBy) (*SummaryReport, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, ErrInvalidRange
	}
	if groupBy == "" {
		groupBy = GroupByType
	}

	var rows []SummaryRow
	switch groupBy {
	case GroupByCategory:
		rows, err = s.repo.TotalsByCategory(ctx, userID, start, end)
	case GroupByMonth:
		rows, err = s.repo.TotalsByMonth(ctx, userID, start, end)
	case GroupByType:
		rows, err = s.repo.TotalsByType(ctx, userID, start, end)
	default:
		return nil, ErrInvalidGroupBy
	}
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []SummaryRow{}
	}

	var total money.Amount
	for _, row := range rows {
		total += row.TotalAmount
	}

	return &SummaryReport{
		StartDate:         start.Format(dateLayout),
		EndDate:           end.Format(dateLayout),
		GroupBy:           groupBy,
		TotalOverallSpend: total,
		Rows:              rows,
	}, nil
}
