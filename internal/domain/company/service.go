package company

import (
	"context"
	"errors"

	"caixahub/internal/domain/document"
)

// Service contains the business logic for company operations
type Service struct {
	repo Repository
}

// NewService creates a new company service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// normalizeDigits strips formatting from a value the same way the
// document validators do, so storage always holds bare digits.
func normalizeDigits(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b = append(b, s[i])
		}
	}
	return string(b)
}

// CreateCompany registers a company after validating its documents and
// rejecting duplicate CNPJs.
func (s *Service) CreateCompany(ctx context.Context, params CreateParams) (*Company, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	// Store documents unformatted
	params.CNPJ = normalizeDigits(params.CNPJ)
	params.Phone = normalizeDigits(params.Phone)

	existing, err := s.repo.GetByCNPJ(ctx, params.CNPJ)
	if err != nil && !errors.Is(err, ErrCompanyNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateCNPJ
	}

	return s.repo.Create(ctx, params)
}

// GetCompany retrieves a company by ID and verifies user ownership
func (s *Service) GetCompany(ctx context.Context, companyID, userID int64) (*Company, error) {
	c, err := s.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if c.OwnerID != userID {
		return nil, ErrForbidden
	}
	return c, nil
}

// ListCompanies retrieves all companies owned by a user
func (s *Service) ListCompanies(ctx context.Context, userID int64) ([]*Company, error) {
	if userID <= 0 {
		return nil, errors.New("valid user ID is required")
	}
	return s.repo.ListByOwnerID(ctx, userID)
}

// UpdateCompany updates a company after verifying ownership
func (s *Service) UpdateCompany(ctx context.Context, companyID, userID int64, params UpdateParams) (*Company, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.GetCompany(ctx, companyID, userID); err != nil {
		return nil, err
	}

	if params.Phone != nil {
		normalized := normalizeDigits(*params.Phone)
		params.Phone = &normalized
	}

	return s.repo.Update(ctx, companyID, params)
}

// DeleteCompany deletes a company after verifying ownership
func (s *Service) DeleteCompany(ctx context.Context, companyID, userID int64) error {
	if _, err := s.GetCompany(ctx, companyID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, companyID)
}

// LookupByCNPJ finds a company by CNPJ, accepting formatted input.
func (s *Service) LookupByCNPJ(ctx context.Context, cnpj string) (*Company, error) {
	if !document.ValidCNPJ(cnpj) {
		return nil, ErrInvalidCNPJ
	}
	return s.repo.GetByCNPJ(ctx, normalizeDigits(cnpj))
}
