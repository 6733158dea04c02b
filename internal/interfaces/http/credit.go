package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"kharcha/internal/domain/credit"
	"kharcha/internal/domain/expense"
	"kharcha/internal/shared/middleware"
)

type CreditHandler struct {
	credits *credit.Service
}

func NewCreditHandler(credits *credit.Service) *CreditHandler {
	return &CreditHandler{credits: credits}
}

// Request/Response DTOs

type SettleCreditRequest struct {
	PaymentMethod expense.PaymentMethod `json:"paymentMethod"`
	PaymentDate   string                `json:"paymentDate,omitempty"`
}

type SettleCreditsRequest struct {
	ExpenseIDs []string `json:"expenseIds"`
}

type SettleCreditsResponse struct {
	ModifiedCount int64 `json:"modifiedCount"`
}

// HandleListCredits returns the user's open business credits, oldest first.
func (h *CreditHandler) HandleListCredits(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	credits, err := h.credits.ListUnpaid(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing credits for user %d: %v", userID, err)
		http.Error(w, "Failed to list business credits", http.StatusInternalServerError)
		return
	}

	response := make([]ExpenseResponse, 0, len(credits))
	for i := range credits {
		response = append(response, toExpenseResponse(&credits[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleSettleCredit pays off a single open credit.
func (h *CreditHandler) HandleSettleCredit(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	creditID := r.PathValue("id")
	if creditID == "" {
		http.Error(w, "Expense ID is required", http.StatusBadRequest)
		return
	}

	var req SettleCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding settle credit request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var paidDate time.Time
	if req.PaymentDate != "" {
		d, err := parseFlexibleDate(req.PaymentDate)
		if err != nil {
			http.Error(w, "Invalid paymentDate", http.StatusBadRequest)
			return
		}
		paidDate = d
	}

	e, err := h.credits.SettleOne(r.Context(), userID, creditID, req.PaymentMethod, paidDate)
	if err != nil {
		switch {
		case errors.Is(err, credit.ErrInvalidSettlementMethod):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, expense.ErrExpenseNotFound):
			http.Error(w, "Business credit not found", http.StatusNotFound)
		case errors.Is(err, expense.ErrAlreadySettled):
			http.Error(w, "Business credit already settled", http.StatusConflict)
		default:
			log.Printf("Error settling credit %s: %v", creditID, err)
			http.Error(w, "Failed to settle business credit", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toExpenseResponse(e))
}

// HandleSettleCredits bulk-settles open credits.
func (h *CreditHandler) HandleSettleCredits(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SettleCreditsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding settle credits request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if len(req.ExpenseIDs) == 0 {
		http.Error(w, "expenseIds is required", http.StatusBadRequest)
		return
	}

	modified, err := h.credits.SettleMany(r.Context(), userID, req.ExpenseIDs)
	if err != nil {
		if errors.Is(err, expense.ErrExpenseNotFound) {
			http.Error(w, "No matching business credits", http.StatusNotFound)
			return
		}
		log.Printf("Error settling credits for user %d: %v", userID, err)
		http.Error(w, "Failed to settle business credits", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SettleCreditsResponse{ModifiedCount: modified})
}

// parseFlexibleDate accepts a plain calendar date or a full RFC 3339
// timestamp, as clients send both.
func parseFlexibleDate(s string) (time.Time, error) {
	if d, err := time.Parse(dateLayout, s); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, s)
}
