package company

import (
	"context"
	"errors"
	"testing"
)

// MockRepository is a mock implementation of Repository interface
type MockRepository struct {
	CreateFunc        func(ctx context.Context, params CreateParams) (*Company, error)
	GetByIDFunc       func(ctx context.Context, id int64) (*Company, error)
	GetByCNPJFunc     func(ctx context.Context, cnpj string) (*Company, error)
	ListByOwnerIDFunc func(ctx context.Context, ownerID int64) ([]*Company, error)
	UpdateFunc        func(ctx context.Context, id int64, params UpdateParams) (*Company, error)
	DeleteFunc        func(ctx context.Context, id int64) error
}

func (m *MockRepository) Create(ctx context.Context, params CreateParams) (*Company, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Company, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ErrCompanyNotFound
}

func (m *MockRepository) GetByCNPJ(ctx context.Context, cnpj string) (*Company, error) {
	if m.GetByCNPJFunc != nil {
		return m.GetByCNPJFunc(ctx, cnpj)
	}
	return nil, ErrCompanyNotFound
}

func (m *MockRepository) ListByOwnerID(ctx context.Context, ownerID int64) ([]*Company, error) {
	if m.ListByOwnerIDFunc != nil {
		return m.ListByOwnerIDFunc(ctx, ownerID)
	}
	return nil, nil
}

func (m *MockRepository) Update(ctx context.Context, id int64, params UpdateParams) (*Company, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func validCreateParams() CreateParams {
	return CreateParams{
		OwnerID:   1,
		CNPJ:      "11.222.333/0001-81",
		LegalName: "Padaria Boa Massa LTDA",
		Phone:     "(11) 98765-4321",
	}
}

func TestService_CreateCompany_NormalizesDocuments(t *testing.T) {
	var created CreateParams
	repo := &MockRepository{
		CreateFunc: func(ctx context.Context, params CreateParams) (*Company, error) {
			created = params
			return &Company{ID: 1, CNPJ: params.CNPJ, Phone: params.Phone}, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.CreateCompany(context.Background(), validCreateParams())
	if err != nil {
		t.Fatalf("CreateCompany() unexpected error: %v", err)
	}
	if created.CNPJ != "11222333000181" {
		t.Errorf("stored CNPJ = %q, want bare digits", created.CNPJ)
	}
	if created.Phone != "11987654321" {
		t.Errorf("stored Phone = %q, want bare digits", created.Phone)
	}
}

func TestService_CreateCompany_RejectsInvalidCNPJ(t *testing.T) {
	svc := NewService(&MockRepository{})

	params := validCreateParams()
	params.CNPJ = "11222333000180"
	_, err := svc.CreateCompany(context.Background(), params)
	if !errors.Is(err, ErrInvalidCNPJ) {
		t.Errorf("CreateCompany() error = %v, want %v", err, ErrInvalidCNPJ)
	}
}

func TestService_CreateCompany_RejectsDuplicateCNPJ(t *testing.T) {
	repo := &MockRepository{
		GetByCNPJFunc: func(ctx context.Context, cnpj string) (*Company, error) {
			return &Company{ID: 99, CNPJ: cnpj}, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.CreateCompany(context.Background(), validCreateParams())
	if !errors.Is(err, ErrDuplicateCNPJ) {
		t.Errorf("CreateCompany() error = %v, want %v", err, ErrDuplicateCNPJ)
	}
}

func TestService_GetCompany_OwnershipCheck(t *testing.T) {
	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, id int64) (*Company, error) {
			return &Company{ID: id, OwnerID: 1}, nil
		},
	}
	svc := NewService(repo)

	if _, err := svc.GetCompany(context.Background(), 10, 1); err != nil {
		t.Errorf("GetCompany() unexpected error for owner: %v", err)
	}
	if _, err := svc.GetCompany(context.Background(), 10, 2); !errors.Is(err, ErrForbidden) {
		t.Errorf("GetCompany() error = %v, want %v", err, ErrForbidden)
	}
}

func TestService_DeleteCompany_NotFound(t *testing.T) {
	svc := NewService(&MockRepository{})

	if err := svc.DeleteCompany(context.Background(), 10, 1); !errors.Is(err, ErrCompanyNotFound) {
		t.Errorf("DeleteCompany() error = %v, want %v", err, ErrCompanyNotFound)
	}
}

func TestService_LookupByCNPJ(t *testing.T) {
	var lookedUp string
	repo := &MockRepository{
		GetByCNPJFunc: func(ctx context.Context, cnpj string) (*Company, error) {
			lookedUp = cnpj
			return &Company{ID: 1, CNPJ: cnpj}, nil
		},
	}
	svc := NewService(repo)

	if _, err := svc.LookupByCNPJ(context.Background(), "11.222.333/0001-81"); err != nil {
		t.Fatalf("LookupByCNPJ() unexpected error: %v", err)
	}
	if lookedUp != "11222333000181" {
		t.Errorf("repository queried with %q, want bare digits", lookedUp)
	}

	if _, err := svc.LookupByCNPJ(context.Background(), "123"); !errors.Is(err, ErrInvalidCNPJ) {
		t.Errorf("LookupByCNPJ() error = %v, want %v", err, ErrInvalidCNPJ)
	}
}
