package transaction

import (
	"context"
	"errors"
	"testing"
	"time"
)

// MockRepository is a mock implementation of Repository interface
type MockRepository struct {
	CreateFunc                func(ctx context.Context, params CreateParams) (*Transaction, error)
	GetByIDFunc               func(ctx context.Context, id string) (*Transaction, error)
	ListByCompanyIDFunc       func(ctx context.Context, companyID int64, filter ListFilter) ([]*Transaction, error)
	CountByCompanyIDSinceFunc func(ctx context.Context, companyID int64, since time.Time) (int64, error)
	UpdateFunc                func(ctx context.Context, id string, params UpdateParams) (*Transaction, error)
	DeleteFunc                func(ctx context.Context, id string) error
}

func (m *MockRepository) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return &Transaction{ID: params.ID, CompanyID: params.CompanyID, Category: params.Category}, nil
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ErrTransactionNotFound
}

func (m *MockRepository) ListByCompanyID(ctx context.Context, companyID int64, filter ListFilter) ([]*Transaction, error) {
	if m.ListByCompanyIDFunc != nil {
		return m.ListByCompanyIDFunc(ctx, companyID, filter)
	}
	return nil, nil
}

func (m *MockRepository) CountByCompanyIDSince(ctx context.Context, companyID int64, since time.Time) (int64, error) {
	if m.CountByCompanyIDSinceFunc != nil {
		return m.CountByCompanyIDSinceFunc(ctx, companyID, since)
	}
	return 0, nil
}

func (m *MockRepository) Update(ctx context.Context, id string, params UpdateParams) (*Transaction, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockPlanGate is a mock implementation of PlanGate
type MockPlanGate struct {
	CanProceedFunc func(ctx context.Context, companyID int64, kind string) (bool, error)
}

func (m *MockPlanGate) CanProceed(ctx context.Context, companyID int64, kind string) (bool, error) {
	if m.CanProceedFunc != nil {
		return m.CanProceedFunc(ctx, companyID, kind)
	}
	return true, nil
}

// MockAIRecorder is a mock implementation of AIRecorder
type MockAIRecorder struct {
	RecordAIRequestFunc func(ctx context.Context, companyID int64, feature string) error
}

func (m *MockAIRecorder) RecordAIRequest(ctx context.Context, companyID int64, feature string) error {
	if m.RecordAIRequestFunc != nil {
		return m.RecordAIRequestFunc(ctx, companyID, feature)
	}
	return nil
}

func validCreateParams() CreateParams {
	return CreateParams{
		ID:              "tx-1",
		AccountID:       "acc-1",
		CompanyID:       7,
		Amount:          -150.50,
		Description:     "PAGAMENTO FORNECEDOR",
		Category:        strPtr("06000000"),
		TransactionDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Type:            "DEBIT",
		Status:          "POSTED",
	}
}

func TestService_ImportTransaction_TranslatesCategory(t *testing.T) {
	var created CreateParams
	repo := &MockRepository{
		CreateFunc: func(ctx context.Context, params CreateParams) (*Transaction, error) {
			created = params
			return &Transaction{ID: params.ID}, nil
		},
	}
	svc := NewService(repo, &MockPlanGate{}, &MockAIRecorder{})

	if _, err := svc.ImportTransaction(context.Background(), validCreateParams()); err != nil {
		t.Fatalf("ImportTransaction() unexpected error: %v", err)
	}
	if created.Category == nil || *created.Category != "Fornecedores e Serviços" {
		t.Errorf("stored category = %v, want translated name", created.Category)
	}
}

func TestService_ImportTransaction_LimitReached(t *testing.T) {
	gate := &MockPlanGate{
		CanProceedFunc: func(ctx context.Context, companyID int64, kind string) (bool, error) {
			return false, nil
		},
	}
	svc := NewService(&MockRepository{}, gate, &MockAIRecorder{})

	_, err := svc.ImportTransaction(context.Background(), validCreateParams())
	if !errors.Is(err, ErrLimitReached) {
		t.Errorf("ImportTransaction() error = %v, want %v", err, ErrLimitReached)
	}
}

func TestService_ImportTransaction_InvalidType(t *testing.T) {
	svc := NewService(&MockRepository{}, &MockPlanGate{}, &MockAIRecorder{})

	params := validCreateParams()
	params.Type = "TRANSFER"
	if _, err := svc.ImportTransaction(context.Background(), params); !errors.Is(err, ErrInvalidType) {
		t.Errorf("ImportTransaction() error = %v, want %v", err, ErrInvalidType)
	}
}

func TestService_ListTransactions_DefaultsLimit(t *testing.T) {
	var gotFilter ListFilter
	repo := &MockRepository{
		ListByCompanyIDFunc: func(ctx context.Context, companyID int64, filter ListFilter) ([]*Transaction, error) {
			gotFilter = filter
			return nil, nil
		},
	}
	svc := NewService(repo, &MockPlanGate{}, &MockAIRecorder{})

	if _, err := svc.ListTransactions(context.Background(), 7, ListFilter{}); err != nil {
		t.Fatalf("ListTransactions() unexpected error: %v", err)
	}
	if gotFilter.Limit != 100 {
		t.Errorf("filter.Limit = %d, want 100", gotFilter.Limit)
	}

	if _, err := svc.ListTransactions(context.Background(), 7, ListFilter{Limit: 9999}); err != nil {
		t.Fatalf("ListTransactions() unexpected error: %v", err)
	}
	if gotFilter.Limit != 100 {
		t.Errorf("filter.Limit = %d, want capped to 100", gotFilter.Limit)
	}
}

func TestService_Recategorize(t *testing.T) {
	var updated UpdateParams
	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*Transaction, error) {
			return &Transaction{ID: id, CompanyID: 7}, nil
		},
		UpdateFunc: func(ctx context.Context, id string, params UpdateParams) (*Transaction, error) {
			updated = params
			return &Transaction{ID: id, Category: params.Category, Manipulated: true}, nil
		},
	}
	svc := NewService(repo, &MockPlanGate{}, &MockAIRecorder{})

	tx, err := svc.Recategorize(context.Background(), "tx-1", 7, "Impostos")
	if err != nil {
		t.Fatalf("Recategorize() unexpected error: %v", err)
	}
	if updated.Category == nil || *updated.Category != "Impostos e Tributos" {
		t.Errorf("updated category = %v, want translated name", updated.Category)
	}
	if tx.Category == nil {
		t.Fatal("returned transaction has nil category")
	}

	if _, err := svc.Recategorize(context.Background(), "tx-1", 8, "Impostos"); !errors.Is(err, ErrForbidden) {
		t.Errorf("Recategorize() error = %v, want %v", err, ErrForbidden)
	}
}

func TestService_SuggestCategory(t *testing.T) {
	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*Transaction, error) {
			return &Transaction{ID: id, CompanyID: 7, Description: "DARF SIMPLES NACIONAL"}, nil
		},
	}

	var recorded string
	ai := &MockAIRecorder{
		RecordAIRequestFunc: func(ctx context.Context, companyID int64, feature string) error {
			recorded = feature
			return nil
		},
	}
	svc := NewService(repo, &MockPlanGate{}, ai)

	got, err := svc.SuggestCategory(context.Background(), "tx-1", 7)
	if err != nil {
		t.Fatalf("SuggestCategory() unexpected error: %v", err)
	}
	if got != "Impostos e Tributos" {
		t.Errorf("SuggestCategory() = %q, want %q", got, "Impostos e Tributos")
	}
	if recorded != "categorize" {
		t.Errorf("recorded feature = %q, want %q", recorded, "categorize")
	}
}

func TestService_SuggestCategory_AILimitReached(t *testing.T) {
	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*Transaction, error) {
			return &Transaction{ID: id, CompanyID: 7, Description: "PIX RECEBIDO"}, nil
		},
	}
	gate := &MockPlanGate{
		CanProceedFunc: func(ctx context.Context, companyID int64, kind string) (bool, error) {
			return false, nil
		},
	}
	svc := NewService(repo, gate, &MockAIRecorder{})

	if _, err := svc.SuggestCategory(context.Background(), "tx-1", 7); !errors.Is(err, ErrAILimitReached) {
		t.Errorf("SuggestCategory() error = %v, want %v", err, ErrAILimitReached)
	}
}

func TestSuggestCategory_Fallback(t *testing.T) {
	if got := suggestCategory("PIX QR CODE DINAMICO"); got != "Outros" {
		t.Errorf("suggestCategory() = %q, want Outros", got)
	}
	if got := suggestCategory("Pagamento fornecedor ABC Ltda"); got != "Fornecedores e Serviços" {
		t.Errorf("suggestCategory() = %q, want Fornecedores e Serviços", got)
	}
}
