package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kharcha/internal/domain/category"
	"kharcha/internal/domain/expense"
	"kharcha/internal/domain/money"
	"kharcha/internal/domain/report"
)

func reportHandler(repo *MockReportRepo) *ReportHandler {
	return NewReportHandler(report.NewService(repo))
}

func TestHandleDailyReport(t *testing.T) {
	repo := &MockReportRepo{
		ExpensesForDayFunc: func(ctx context.Context, userID int64, day time.Time) ([]expense.Expense, error) {
			return []expense.Expense{
				{ID: "e1", CategoryID: "c1", CategoryName: "Fuel", CategoryType: category.TypeBusiness, Amount: money.Amount(1200)},
				{ID: "e2", CategoryID: "c1", CategoryName: "Fuel", CategoryType: category.TypeBusiness, Amount: money.Amount(800)},
			}, nil
		},
	}

	req := authedRequest(http.MethodGet, "/api/reports/daily/2025-03-10", nil)
	req.SetPathValue("date", "2025-03-10")
	rr := httptest.NewRecorder()

	reportHandler(repo).HandleDailyReport(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	var resp report.DailyReport
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Date != "2025-03-10" {
		t.Errorf("date = %q, want 2025-03-10", resp.Date)
	}
	if resp.TotalCount != 2 {
		t.Errorf("totalCount = %d, want 2", resp.TotalCount)
	}
	if len(resp.Groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(resp.Groups))
	}
	if resp.Groups[0].TotalAmount != 2000 {
		t.Errorf("group total = %v, want 20.00", resp.Groups[0].TotalAmount)
	}
}

func TestHandleDailyReport_BadDate(t *testing.T) {
	req := authedRequest(http.MethodGet, "/api/reports/daily/March-10", nil)
	req.SetPathValue("date", "March-10")
	rr := httptest.NewRecorder()

	reportHandler(&MockReportRepo{}).HandleDailyReport(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestHandleSummaryReport(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		expectedStatus int
		wantGroupBy    report.GroupBy
	}{
		{
			name:           "Defaults To Type Grouping",
			target:         "/api/reports/summary?startDate=2025-03-01&endDate=2025-03-31",
			expectedStatus: http.StatusOK,
			wantGroupBy:    report.GroupByType,
		},
		{
			name:           "Group By Category",
			target:         "/api/reports/summary?startDate=2025-03-01&endDate=2025-03-31&groupBy=category",
			expectedStatus: http.StatusOK,
			wantGroupBy:    report.GroupByCategory,
		},
		{
			name:           "Missing Dates",
			target:         "/api/reports/summary?groupBy=type",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Inverted Range",
			target:         "/api/reports/summary?startDate=2025-04-01&endDate=2025-03-01",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Bad GroupBy",
			target:         "/api/reports/summary?startDate=2025-03-01&endDate=2025-03-31&groupBy=week",
			expectedStatus: http.StatusBadRequest,
		},
	}

	repo := &MockReportRepo{
		TotalsByTypeFunc: func(ctx context.Context, userID int64, start, end time.Time) ([]report.SummaryRow, error) {
			return []report.SummaryRow{{Type: category.TypeBusiness, TotalAmount: money.Amount(5000), Count: 2}}, nil
		},
		TotalsByCategoryFunc: func(ctx context.Context, userID int64, start, end time.Time) ([]report.SummaryRow, error) {
			return []report.SummaryRow{{CategoryID: "c1", CategoryName: "Fuel", CategoryType: category.TypeBusiness, TotalAmount: money.Amount(5000), Count: 2}}, nil
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest(http.MethodGet, tt.target, nil)
			rr := httptest.NewRecorder()

			reportHandler(repo).HandleSummaryReport(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d: %s", rr.Code, tt.expectedStatus, rr.Body.String())
			}

			if tt.expectedStatus == http.StatusOK {
				var resp report.SummaryReport
				json.NewDecoder(rr.Body).Decode(&resp)
				if resp.GroupBy != tt.wantGroupBy {
					t.Errorf("groupBy = %q, want %q", resp.GroupBy, tt.wantGroupBy)
				}
				if len(resp.Rows) != 1 {
					t.Errorf("rows = %d, want 1", len(resp.Rows))
				}
			}
		})
	}
}
