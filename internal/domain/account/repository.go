package account

import "context"

// Repository persists bank accounts.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
	ListByCompanyID(ctx context.Context, companyID int64) ([]*Account, error)
	CountConnectedByCompanyID(ctx context.Context, companyID int64) (int64, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Account, error)
	Delete(ctx context.Context, id string) error
}
