package bill

import (
	"context"
	"errors"
	"testing"
	"time"
)

// MockRepository is a mock implementation of Repository interface
type MockRepository struct {
	CreateFunc         func(ctx context.Context, params CreateParams) (*Bill, error)
	GetByIDFunc        func(ctx context.Context, id string) (*Bill, error)
	ListByCompanyIDFunc func(ctx context.Context, companyID int64) ([]*Bill, error)
	ListDueBetweenFunc func(ctx context.Context, companyID int64, from, to time.Time) ([]*Bill, error)
	MarkPaidFunc       func(ctx context.Context, id string, paymentDate time.Time) (*Bill, error)
	DeleteFunc         func(ctx context.Context, id string) error
}

func (m *MockRepository) Create(ctx context.Context, params CreateParams) (*Bill, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return &Bill{ID: params.ID, CompanyID: params.CompanyID, Status: params.Status}, nil
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Bill, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ErrBillNotFound
}

func (m *MockRepository) ListByCompanyID(ctx context.Context, companyID int64) ([]*Bill, error) {
	if m.ListByCompanyIDFunc != nil {
		return m.ListByCompanyIDFunc(ctx, companyID)
	}
	return nil, nil
}

func (m *MockRepository) ListDueBetween(ctx context.Context, companyID int64, from, to time.Time) ([]*Bill, error) {
	if m.ListDueBetweenFunc != nil {
		return m.ListDueBetweenFunc(ctx, companyID, from, to)
	}
	return nil, nil
}

func (m *MockRepository) MarkPaid(ctx context.Context, id string, paymentDate time.Time) (*Bill, error) {
	if m.MarkPaidFunc != nil {
		return m.MarkPaidFunc(ctx, id, paymentDate)
	}
	return &Bill{ID: id, Status: "PAID", PaymentDate: &paymentDate}, nil
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func TestService_CreateBill_Validation(t *testing.T) {
	svc := NewService(&MockRepository{})

	params := CreateParams{
		ID:         "bill-1",
		CompanyID:  7,
		Amount:     420.90,
		DueDate:    time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		Status:     "OPEN",
		BillerName: "Companhia de Energia",
	}
	if _, err := svc.CreateBill(context.Background(), params); err != nil {
		t.Errorf("CreateBill() unexpected error: %v", err)
	}

	params.Status = "SCHEDULED"
	if _, err := svc.CreateBill(context.Background(), params); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("CreateBill() error = %v, want %v", err, ErrInvalidStatus)
	}

	params.Status = "OPEN"
	params.DueDate = time.Time{}
	if _, err := svc.CreateBill(context.Background(), params); err == nil {
		t.Error("CreateBill() expected error for missing due date")
	}
}

func TestService_PayBill(t *testing.T) {
	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*Bill, error) {
			return &Bill{ID: id, CompanyID: 7, Status: "OPEN"}, nil
		},
	}
	svc := NewService(repo)

	b, err := svc.PayBill(context.Background(), "bill-1", 7)
	if err != nil {
		t.Fatalf("PayBill() unexpected error: %v", err)
	}
	if b.Status != "PAID" {
		t.Errorf("Status = %q, want PAID", b.Status)
	}
	if b.PaymentDate == nil {
		t.Error("PaymentDate = nil, want set")
	}

	if _, err := svc.PayBill(context.Background(), "bill-1", 99); !errors.Is(err, ErrForbidden) {
		t.Errorf("PayBill() error = %v, want %v", err, ErrForbidden)
	}
}

func TestService_PayBill_AlreadyPaid(t *testing.T) {
	repo := &MockRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*Bill, error) {
			return &Bill{ID: id, CompanyID: 7, Status: "PAID"}, nil
		},
	}
	svc := NewService(repo)

	if _, err := svc.PayBill(context.Background(), "bill-1", 7); !errors.Is(err, ErrAlreadyPaid) {
		t.Errorf("PayBill() error = %v, want %v", err, ErrAlreadyPaid)
	}
}

func TestBill_Overdue(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		bill Bill
		want bool
	}{
		{"open and past due", Bill{Status: "OPEN", DueDate: now.AddDate(0, 0, -1)}, true},
		{"open and future", Bill{Status: "OPEN", DueDate: now.AddDate(0, 0, 1)}, false},
		{"paid and past due", Bill{Status: "PAID", DueDate: now.AddDate(0, 0, -1)}, false},
		{"cancelled", Bill{Status: "CANCELLED", DueDate: now.AddDate(0, 0, -1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bill.Overdue(now); got != tt.want {
				t.Errorf("Overdue() = %v, want %v", got, tt.want)
			}
		})
	}
}
