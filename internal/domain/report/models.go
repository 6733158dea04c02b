package report

import (
	"errors"

	"kharcha/internal/domain/category"
	"kharcha/internal/domain/expense"
	"kharcha/internal/domain/money"
)

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidRange = errors.New("startDate must not be after endDate")
	// ErrInvalidGroupBy means the groupBy value is not one of category,
	// month or type.
	ErrInvalidGroupBy = errors.New("groupBy must be 'category', 'month' or 'type'")
)

type GroupBy string

const (
	GroupByCategory GroupBy = "category"
	GroupByMonth    GroupBy = "month"
	GroupByType     GroupBy = "type"
)

// DailyGroup is one category's slice of a day's spending.
type DailyGroup struct {
	CategoryID   string            `json:"categoryId"`
	CategoryName string            `json:"categoryName"`
	CategoryType category.Type     `json:"categoryType"`
	TotalAmount  money.Amount      `json:"totalAmount"`
	Count        int               `json:"count"`
	Expenses     []expense.Expense `json:"expenses"`
}

type DailyReport struct {
	Date        string       `json:"date"`
	TotalAmount money.Amount `json:"totalDailySpend"`
	TotalCount  int          `json:"totalCount"`
	Groups      []DailyGroup `json:"dailyExpenses"`
}

// SummaryRow is one bucket of a summary report. Which identifying fields
// are set depends on the grouping.
type SummaryRow struct {
	CategoryID   string        `json:"categoryId,omitempty"`
	CategoryName string        `json:"categoryName,omitempty"`
	CategoryType category.Type `json:"categoryType,omitempty"`
	Year         int           `json:"year,omitempty"`
	Month        int           `json:"month,omitempty"`
	Type         category.Type `json:"type,omitempty"`
	TotalAmount  money.Amount  `json:"totalAmount"`
	Count        int           `json:"count"`
}

type SummaryReport struct {
	StartDate         string       `json:"startDate"`
	EndDate           string       `json:"endDate"`
	GroupBy           GroupBy      `json:"groupBy"`
	TotalOverallSpend money.Amount `json:"totalOverallSpend"`
	Rows              []SummaryRow `json:"report"`
}
