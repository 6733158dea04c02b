package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"kharcha/internal/domain/category"
	"kharcha/internal/domain/expense"
	"kharcha/internal/domain/money"
	"kharcha/internal/shared/middleware"
)

type ExpenseHandler struct {
	expenseRepo  expense.Repository
	categoryRepo category.Repository
}

func NewExpenseHandler(expenseRepo expense.Repository, categoryRepo category.Repository) *ExpenseHandler {
	return &ExpenseHandler{expenseRepo: expenseRepo, categoryRepo: categoryRepo}
}

// Request/Response DTOs

type CreateExpenseRequest struct {
	Amount        money.Amount          `json:"amount"`
	CategoryID    string                `json:"categoryId"`
	Type          category.Type         `json:"type"`
	Date          string                `json:"date"`
	Description   string                `json:"description,omitempty"`
	PaymentMethod expense.PaymentMethod `json:"paymentMethod"`
}

type UpdateExpenseRequest struct {
	Amount        *money.Amount          `json:"amount,omitempty"`
	CategoryID    *string                `json:"categoryId,omitempty"`
	Type          *category.Type         `json:"type,omitempty"`
	Date          *string                `json:"date,omitempty"`
	Description   *string                `json:"description,omitempty"`
	PaymentMethod *expense.PaymentMethod `json:"paymentMethod,omitempty"`
}

type ExpenseResponse struct {
	ID                   string                 `json:"id"`
	Amount               money.Amount           `json:"amount"`
	CategoryID           string                 `json:"categoryId"`
	CategoryName         string                 `json:"categoryName"`
	CategoryType         category.Type          `json:"categoryType"`
	Type                 category.Type          `json:"type"`
	Date                 string                 `json:"date"`
	Description          string                 `json:"description,omitempty"`
	PaymentMethod        expense.PaymentMethod  `json:"paymentMethod"`
	IsBusinessCreditPaid bool                   `json:"isBusinessCreditPaid"`
	PaidWithMethod       *expense.PaymentMethod `json:"paidWithMethod,omitempty"`
	PaidDate             *string                `json:"paidDate,omitempty"`
	CreatedAt            time.Time              `json:"createdAt"`
	UpdatedAt            time.Time              `json:"updatedAt"`
}

const dateLayout = "2006-01-02"

// pathID extracts the {id} segment. Ids are UUIDs in storage, so anything
// that does not parse can never match a row.
func pathID(r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func toExpenseResponse(e *expense.Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ID:                   e.ID,
		Amount:               e.Amount,
		CategoryID:           e.CategoryID,
		CategoryName:         e.CategoryName,
		CategoryType:         e.CategoryType,
		Type:                 e.Type,
		Date:                 e.Date.Format(dateLayout),
		Description:          e.Description,
		PaymentMethod:        e.PaymentMethod,
		IsBusinessCreditPaid: e.IsBusinessCreditPaid,
		PaidWithMethod:       e.PaidWithMethod,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
	if e.PaidDate != nil {
		d := e.PaidDate.Format(dateLayout)
		resp.PaidDate = &d
	}
	return resp
}

// HandleExpenses routes collection-level requests.
func (h *ExpenseHandler) HandleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListExpenses(w, r)
	case http.MethodPost:
		h.handleCreateExpense(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleExpenseByID routes requests for a specific expense.
func (h *ExpenseHandler) HandleExpenseByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetExpense(w, r)
	case http.MethodPut:
		h.handleUpdateExpense(w, r)
	case http.MethodDelete:
		h.handleDeleteExpense(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ExpenseHandler) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var filter expense.Filter
	q := r.URL.Query()

	if t := q.Get("type"); t != "" {
		ct := category.Type(t)
		if !category.ValidType(ct) {
			http.Error(w, "type must be 'personal' or 'business'", http.StatusBadRequest)
			return
		}
		filter.Type = ct
	}
	if id := q.Get("categoryId"); id != "" {
		if _, err := uuid.Parse(id); err != nil {
			http.Error(w, "categoryId must be a valid id", http.StatusBadRequest)
			return
		}
		filter.CategoryID = id
	}
	if m := q.Get("paymentMethod"); m != "" {
		pm := expense.PaymentMethod(m)
		if !expense.ValidPaymentMethod(pm) {
			http.Error(w, "Invalid paymentMethod", http.StatusBadRequest)
			return
		}
		filter.PaymentMethod = pm
	}
	if s := q.Get("isBusinessCreditPaid"); s != "" {
		paid, err := strconv.ParseBool(s)
		if err != nil {
			http.Error(w, "isBusinessCreditPaid must be true or false", http.StatusBadRequest)
			return
		}
		filter.CreditPaid = &paid
	}
	if s := q.Get("startDate"); s != "" {
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			http.Error(w, "Invalid startDate", http.StatusBadRequest)
			return
		}
		filter.StartDate = d
	}
	if s := q.Get("endDate"); s != "" {
		d, err := time.Parse(dateLayout, s)
		if err != nil {
			http.Error(w, "Invalid endDate", http.StatusBadRequest)
			return
		}
		filter.EndDate = d
	}

	expenses, err := h.expenseRepo.List(r.Context(), userID, filter)
	if err != nil {
		log.Printf("Error listing expenses for user %d: %v", userID, err)
		http.Error(w, "Failed to list expenses", http.StatusInternalServerError)
		return
	}

	response := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		response = append(response, toExpenseResponse(&expenses[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *ExpenseHandler) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create expense request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	params := expense.CreateExpenseParams{
		Amount:        req.Amount,
		CategoryID:    req.CategoryID,
		Type:          req.Type,
		Date:          date,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
	}

	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// The category must exist, belong to the user, and match the
	// expense's type.
	c, err := h.categoryRepo.GetByID(r.Context(), userID, params.CategoryID)
	if err != nil {
		log.Printf("Error getting category %s: %v", params.CategoryID, err)
		http.Error(w, "Failed to create expense", http.StatusInternalServerError)
		return
	}
	if c == nil {
		http.Error(w, "Category not found", http.StatusBadRequest)
		return
	}
	if c.Type != params.Type {
		http.Error(w, "Expense type does not match category type", http.StatusBadRequest)
		return
	}

	creditPaid := expense.CreditPaidAtCreation(params.Type, params.PaymentMethod)

	e, err := h.expenseRepo.Create(r.Context(), userID, params, creditPaid)
	if err != nil {
		log.Printf("Error creating expense for user %d: %v", userID, err)
		http.Error(w, "Failed to create expense", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toExpenseResponse(e))
}

func (h *ExpenseHandler) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	expenseID, ok := pathID(r)
	if !ok {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}

	e, err := h.expenseRepo.GetByID(r.Context(), userID, expenseID)
	if err != nil {
		log.Printf("Error getting expense %s: %v", expenseID, err)
		http.Error(w, "Failed to get expense", http.StatusInternalServerError)
		return
	}
	if e == nil {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toExpenseResponse(e))
}

func (h *ExpenseHandler) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	expenseID, ok := pathID(r)
	if !ok {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}

	existing, err := h.expenseRepo.GetByID(r.Context(), userID, expenseID)
	if err != nil {
		log.Printf("Error getting expense %s: %v", expenseID, err)
		http.Error(w, "Failed to get expense", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}

	var req UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding update expense request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := expense.UpdateExpenseParams{
		Amount:        req.Amount,
		CategoryID:    req.CategoryID,
		Type:          req.Type,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
	}
	if req.Date != nil {
		d, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		params.Date = &d
	}

	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Effective values after the update, for cross-field checks.
	effType := existing.Type
	if params.Type != nil {
		effType = *params.Type
	}
	effMethod := existing.PaymentMethod
	if params.PaymentMethod != nil {
		effMethod = *params.PaymentMethod
	}
	effCategoryID := existing.CategoryID
	if params.CategoryID != nil {
		effCategoryID = *params.CategoryID
	}

	if params.CategoryID != nil || params.Type != nil {
		c, err := h.categoryRepo.GetByID(r.Context(), userID, effCategoryID)
		if err != nil {
			log.Printf("Error getting category %s: %v", effCategoryID, err)
			http.Error(w, "Failed to update expense", http.StatusInternalServerError)
			return
		}
		if c == nil {
			http.Error(w, "Category not found", http.StatusBadRequest)
			return
		}
		if c.Type != effType {
			http.Error(w, "Expense type does not match category type", http.StatusBadRequest)
			return
		}
	}

	// Changing the type or payment method re-derives the settled flag.
	var creditPaid *bool
	if params.Type != nil || params.PaymentMethod != nil {
		paid := expense.CreditPaidAtCreation(effType, effMethod)
		creditPaid = &paid
	}

	e, err := h.expenseRepo.Update(r.Context(), userID, expenseID, params, creditPaid)
	if err != nil {
		if errors.Is(err, expense.ErrExpenseNotFound) {
			http.Error(w, "Expense not found", http.StatusNotFound)
			return
		}
		log.Printf("Error updating expense %s: %v", expenseID, err)
		http.Error(w, "Failed to update expense", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toExpenseResponse(e))
}

func (h *ExpenseHandler) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	expenseID, ok := pathID(r)
	if !ok {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}

	if err := h.expenseRepo.Delete(r.Context(), userID, expenseID); err != nil {
		if errors.Is(err, expense.ErrExpenseNotFound) {
			http.Error(w, "Expense not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting expense %s: %v", expenseID, err)
		http.Error(w, "Failed to delete expense", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
