package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"kharcha/internal/domain/report"
	"kharcha/internal/shared/middleware"
)

type ReportHandler struct {
	reports *report.Service
}

func NewReportHandler(reports *report.Service) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// HandleDailyReport returns one day's expenses grouped by category.
func (h *ReportHandler) HandleDailyReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	date := r.PathValue("date")
	result, err := h.reports.Daily(r.Context(), userID, date)
	if err != nil {
		if errors.Is(err, report.ErrInvalidDate) {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		log.Printf("Error building daily report for user %d: %v", userID, err)
		http.Error(w, "Failed to build report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// HandleSummaryReport aggregates a date range by category, month or type.
func (h *ReportHandler) HandleSummaryReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	startDate := q.Get("startDate")
	endDate := q.Get("endDate")
	if startDate == "" || endDate == "" {
		http.Error(w, "startDate and endDate are required", http.StatusBadRequest)
		return
	}

	groupBy := report.GroupBy(q.Get("groupBy"))

	result, err := h.reports.Summary(r.Context(), userID, startDate, endDate, groupBy)
	if err != nil {
		switch {
		case errors.Is(err, report.ErrInvalidDate):
			http.Error(w, "dates must be YYYY-MM-DD", http.StatusBadRequest)
		case errors.Is(err, report.ErrInvalidRange):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, report.ErrInvalidGroupBy):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Printf("Error building summary report for user %d: %v", userID, err)
			http.Error(w, "Failed to build report", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
