package company

import "context"

// Repository persists companies.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Company, error)
	GetByID(ctx context.Context, id int64) (*Company, error)
	GetByCNPJ(ctx context.Context, cnpj string) (*Company, error)
	ListByOwnerID(ctx context.Context, ownerID int64) ([]*Company, error)
	Update(ctx context.Context, id int64, params UpdateParams) (*Company, error)
	Delete(ctx context.Context, id int64) error
}
