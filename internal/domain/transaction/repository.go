package transaction

import (
	"context"
	"time"
)

// Repository persists transactions.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Transaction, error)
	GetByID(ctx context.Context, id string) (*Transaction, error)
	ListByCompanyID(ctx context.Context, companyID int64, filter ListFilter) ([]*Transaction, error)
	CountByCompanyIDSince(ctx context.Context, companyID int64, since time.Time) (int64, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Transaction, error)
	Delete(ctx context.Context, id string) error
}
