package category

import (
	"errors"
	"time"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	// ErrDuplicateCategory means the owner already has a category with the
	// same name and type.
	ErrDuplicateCategory = errors.New("category with this name and type already exists")
)

// Type distinguishes personal from business spending. Expenses carry the
// same set of values and must match their category's type.
type Type string

const (
	TypePersonal Type = "personal"
	TypeBusiness Type = "business"
)

func ValidType(t Type) bool {
	return t == TypePersonal || t == TypeBusiness
}

type Category struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"-"`
	Name      string    `json:"name"`
	Type      Type      `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateCategoryParams struct {
	Name string
	Type Type
}

func (p *CreateCategoryParams) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if len(p.Name) > 128 {
		return errors.New("name must be 128 characters or less")
	}
	if !ValidType(p.Type) {
		return errors.New("type must be 'personal' or 'business'")
	}
	return nil
}

type UpdateCategoryParams struct {
	Name *string
	Type *Type
}

func (p *UpdateCategoryParams) Validate() error {
	if p.Name != nil {
		if *p.Name == "" {
			return errors.New("name cannot be empty")
		}
		if len(*p.Name) > 128 {
			return errors.New("name must be 128 characters or less")
		}
	}
	if p.Type != nil && !ValidType(*p.Type) {
		return errors.New("type must be 'personal' or 'business'")
	}
	return nil
}
