package bill

import (
	"context"
	"time"
)

// Repository persists bills.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Bill, error)
	GetByID(ctx context.Context, id string) (*Bill, error)
	ListByCompanyID(ctx context.Context, companyID int64) ([]*Bill, error)
	ListDueBetween(ctx context.Context, companyID int64, from, to time.Time) ([]*Bill, error)
	MarkPaid(ctx context.Context, id string, paymentDate time.Time) (*Bill, error)
	Delete(ctx context.Context, id string) error
}
