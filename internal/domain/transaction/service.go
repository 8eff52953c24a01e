package transaction

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

// AIRecorder meters AI request consumption.
type AIRecorder interface {
	RecordAIRequest(ctx context.Context, companyID int64, feature string) error
}

// Service contains the business logic for transaction operations
type Service struct {
	repo Repository
	gate PlanGate
	ai   AIRecorder
}

// NewService creates a new transaction service
func NewService(repo Repository, gate PlanGate, ai AIRecorder) *Service {
	return &Service{repo: repo, gate: gate, ai: ai}
}

// ImportTransaction stores a transaction coming from the aggregation
// provider or manual entry. Importing is metered against the plan's
// transaction limit; the provider category is translated on the way in.
func (s *Service) ImportTransaction(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	ok, err := s.gate.CanProceed(ctx, params.CompanyID, usage.KindTransactions)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLimitReached
	}

	params.Category = TranslateCategory(params.Category)
	return s.repo.Create(ctx, params)
}

// GetTransaction retrieves a transaction and verifies company ownership
func (s *Service) GetTransaction(ctx context.Context, id string, companyID int64) (*Transaction, error) {
	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.CompanyID != companyID {
		return nil, ErrForbidden
	}
	return tx, nil
}

// ListTransactions retrieves transactions for a company with filters
func (s *Service) ListTransactions(ctx context.Context, companyID int64, filter ListFilter) ([]*Transaction, error) {
	if companyID <= 0 {
		return nil, errors.New("valid company ID is required")
	}
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}
	return s.repo.ListByCompanyID(ctx, companyID, filter)
}

// SuggestCategory proposes a category for a transaction based on its
// description. Each suggestion counts against the plan's AI request
// limit.
func (s *Service) SuggestCategory(ctx context.Context, id string, companyID int64) (string, error) {
	tx, err := s.GetTransaction(ctx, id, companyID)
	if err != nil {
		return "", err
	}

	ok, err := s.gate.CanProceed(ctx, companyID, usage.KindAIRequests)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrAILimitReached
	}

	if err := s.ai.RecordAIRequest(ctx, companyID, "categorize"); err != nil {
		return "", err
	}

	return suggestCategory(tx.Description), nil
}

// Recategorize sets the category of a transaction, marking it as
// user-manipulated so future provider syncs leave it alone.
func (s *Service) Recategorize(ctx context.Context, id string, companyID int64, category string) (*Transaction, error) {
	if _, err := s.GetTransaction(ctx, id, companyID); err != nil {
		return nil, err
	}
	translated := TranslateCategory(&category)
	return s.repo.Update(ctx, id, UpdateParams{Category: translated})
}
