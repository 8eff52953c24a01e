package account

import (
	"context"
	"errors"

	"caixahub/internal/domain/usage"
)

// PlanGate checks whether a company may consume one more unit of a
// metered resource. Implemented by the plan service.
type PlanGate interface {
	CanProceed(ctx context.Context, companyID int64, kind string) (bool, error)
}

// Service contains the business logic for account operations
type Service struct {
	repo Repository
	gate PlanGate
}

// NewService creates a new account service
func NewService(repo Repository, gate PlanGate) *Service {
	return &Service{repo: repo, gate: gate}
}

// ConnectAccount registers a new aggregated bank account. Connecting is
// metered: the company's plan must have a free account slot.
func (s *Service) ConnectAccount(ctx context.Context, params CreateParams) (*Account, error) {
	// Apply default currency if not provided
	if params.Currency == "" {
		params.Currency = "BRL"
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	ok, err := s.gate.CanProceed(ctx, params.CompanyID, usage.KindBankAccounts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLimitReached
	}

	return s.repo.Create(ctx, params)
}

// GetAccount retrieves an account by ID and verifies company ownership
func (s *Service) GetAccount(ctx context.Context, accountID string, companyID int64) (*Account, error) {
	acc, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if acc.CompanyID != companyID {
		return nil, ErrForbidden
	}
	return acc, nil
}

// ListAccounts retrieves all accounts for a company
func (s *Service) ListAccounts(ctx context.Context, companyID int64) ([]*Account, error) {
	if companyID <= 0 {
		return nil, errors.New("valid company ID is required")
	}
	return s.repo.ListByCompanyID(ctx, companyID)
}

// UpdateAccount updates an account after verifying ownership
func (s *Service) UpdateAccount(ctx context.Context, accountID string, companyID int64, params UpdateParams) (*Account, error) {
	if _, err := s.GetAccount(ctx, accountID, companyID); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, accountID, params)
}

// DisconnectAccount deletes an account after verifying ownership,
// freeing one plan slot.
func (s *Service) DisconnectAccount(ctx context.Context, accountID string, companyID int64) error {
	if _, err := s.GetAccount(ctx, accountID, companyID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, accountID)
}
