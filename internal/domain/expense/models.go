package expense

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"kharcha/internal/domain/category"
	"kharcha/internal/domain/money"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
	// ErrAlreadySettled means the targeted business credit was already
	// marked paid.
	ErrAlreadySettled = errors.New("business credit already settled")
)

// PaymentMethod is how an expense was (or will be) paid.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "Cash"
	PaymentCard         PaymentMethod = "Card"
	PaymentUPI          PaymentMethod = "UPI"
	PaymentBankTransfer PaymentMethod = "BankTransfer"
	// PaymentStoreCredit on a business expense creates an open credit
	// that must be settled later.
	PaymentStoreCredit PaymentMethod = "StoreCredit"
)

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentUPI, PaymentBankTransfer, PaymentStoreCredit:
		return true
	}
	return false
}

// ValidSettlementMethod reports whether m can be used to pay off an open
// business credit. Settling one credit with another makes no sense.
func ValidSettlementMethod(m PaymentMethod) bool {
	return ValidPaymentMethod(m) && m != PaymentStoreCredit
}

// CreditPaidAtCreation computes the settled flag for a new expense. Only a
// business expense bought on store credit starts out unpaid.
func CreditPaidAtCreation(t category.Type, m PaymentMethod) bool {
	return !(t == category.TypeBusiness && m == PaymentStoreCredit)
}

type Expense struct {
	ID     string       `json:"id"`
	UserID int64        `json:"-"`
	Amount money.Amount `json:"amount"`

	CategoryID string `json:"categoryId"`
	// CategoryName and CategoryType are resolved at read time. A deleted
	// category leaves the expense intact with a placeholder name.
	CategoryName string        `json:"categoryName,omitempty"`
	CategoryType category.Type `json:"categoryType,omitempty"`

	Type          category.Type `json:"type"`
	Date          time.Time     `json:"date"`
	Description   string        `json:"description,omitempty"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`

	IsBusinessCreditPaid bool           `json:"isBusinessCreditPaid"`
	PaidWithMethod       *PaymentMethod `json:"paidWithMethod,omitempty"`
	PaidDate             *time.Time     `json:"paidDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateExpenseParams struct {
	Amount        money.Amount
	CategoryID    string
	Type          category.Type
	Date          time.Time
	Description   string
	PaymentMethod PaymentMethod
}

func (p *CreateExpenseParams) Validate() error {
	if p.Amount <= 0 {
		return errors.New("amount must be greater than zero")
	}
	if p.CategoryID == "" {
		return errors.New("categoryId is required")
	}
	if _, err := uuid.Parse(p.CategoryID); err != nil {
		return errors.New("categoryId must be a valid id")
	}
	if !category.ValidType(p.Type) {
		return errors.New("type must be 'personal' or 'business'")
	}
	if p.Date.IsZero() {
		return errors.New("date is required")
	}
	if !ValidPaymentMethod(p.PaymentMethod) {
		return errors.New("invalid payment method")
	}
	return nil
}

type UpdateExpenseParams struct {
	Amount        *money.Amount
	CategoryID    *string
	Type          *category.Type
	Date          *time.Time
	Description   *string
	PaymentMethod *PaymentMethod
}

func (p *UpdateExpenseParams) Validate() error {
	if p.Amount != nil && *p.Amount <= 0 {
		return errors.New("amount must be greater than zero")
	}
	if p.CategoryID != nil {
		if _, err := uuid.Parse(*p.CategoryID); err != nil {
			return errors.New("categoryId must be a valid id")
		}
	}
	if p.Type != nil && !category.ValidType(*p.Type) {
		return errors.New("type must be 'personal' or 'business'")
	}
	if p.PaymentMethod != nil && !ValidPaymentMethod(*p.PaymentMethod) {
		return errors.New("invalid payment method")
	}
	return nil
}

// Filter narrows expense listings. Zero values mean "no constraint".
type Filter struct {
	Type          category.Type
	CategoryID    string
	PaymentMethod PaymentMethod
	CreditPaid    *bool
	StartDate     time.Time
	EndDate       time.Time
}
