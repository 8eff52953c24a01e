package bill

import (
	"context"
	"errors"
	"time"
)

// Service contains the business logic for bill tracking
type Service struct {
	repo Repository
}

// NewService creates a new bill service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateBill registers a bill to track.
func (s *Service) CreateBill(ctx context.Context, params CreateParams) (*Bill, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, params)
}

// GetBill retrieves a bill and verifies company ownership
func (s *Service) GetBill(ctx context.Context, billID string, companyID int64) (*Bill, error) {
	b, err := s.repo.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if b.CompanyID != companyID {
		return nil, ErrForbidden
	}
	return b, nil
}

// ListBills retrieves all bills for a company
func (s *Service) ListBills(ctx context.Context, companyID int64) ([]*Bill, error) {
	if companyID <= 0 {
		return nil, errors.New("valid company ID is required")
	}
	return s.repo.ListByCompanyID(ctx, companyID)
}

// ListUpcoming returns bills due within the next n days.
func (s *Service) ListUpcoming(ctx context.Context, companyID int64, days int) ([]*Bill, error) {
	if days <= 0 {
		days = 7
	}
	now := time.Now().UTC()
	return s.repo.ListDueBetween(ctx, companyID, now, now.AddDate(0, 0, days))
}

// PayBill marks a bill as paid after verifying ownership.
func (s *Service) PayBill(ctx context.Context, billID string, companyID int64) (*Bill, error) {
	b, err := s.GetBill(ctx, billID, companyID)
	if err != nil {
		return nil, err
	}
	if b.Status == "PAID" {
		return nil, ErrAlreadyPaid
	}
	return s.repo.MarkPaid(ctx, billID, time.Now().UTC())
}
