package category

import "context"

type Repository interface {
	Create(ctx context.Context, userID int64, params CreateCategoryParams) (*Category, error)
	GetByID(ctx context.Context, userID int64, id string) (*Category, error)
	ListByUserID(ctx context.Context, userID int64) ([]Category, error)
	Update(ctx context.Context, userID int64, id string, params UpdateCategoryParams) (*Category, error)
	Delete(ctx context.Context, userID int64, id string) error
}
