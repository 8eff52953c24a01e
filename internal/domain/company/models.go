package company

import (
	"errors"
	"strings"
	"time"

	"caixahub/internal/domain/document"
)

// Domain errors
var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrForbidden       = errors.New("forbidden: company does not belong to user")
	ErrInvalidCNPJ     = errors.New("invalid CNPJ")
	ErrInvalidPhone    = errors.New("invalid phone number")
	ErrDuplicateCNPJ   = errors.New("a company with this CNPJ already exists")
)

// Company is a small-business profile.
type Company struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"-"`
	CNPJ      string    `json:"cnpj"` // 14 digits, stored unformatted
	LegalName string    `json:"legalName"`
	TradeName string    `json:"tradeName"`
	Phone     string    `json:"phone"` // digits only, 10 or 11
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FormattedCNPJ returns the CNPJ with display separators.
func (c *Company) FormattedCNPJ() string {
	return document.FormatCNPJ(c.CNPJ)
}

// FormattedPhone returns the phone with display separators.
func (c *Company) FormattedPhone() string {
	return document.FormatPhone(c.Phone)
}

type CreateParams struct {
	OwnerID   int64
	CNPJ      string
	LegalName string
	TradeName string
	Phone     string
	Email     string
}

func (p *CreateParams) Validate() error {
	if p.OwnerID <= 0 {
		return errors.New("valid owner ID is required")
	}
	if !document.ValidCNPJ(p.CNPJ) {
		return ErrInvalidCNPJ
	}
	if p.LegalName == "" {
		return errors.New("legal name is required")
	}
	if len(p.LegalName) > 255 {
		return errors.New("legal name must be 255 characters or less")
	}
	if len(p.TradeName) > 255 {
		return errors.New("trade name must be 255 characters or less")
	}
	if p.Phone != "" && !document.ValidPhone(p.Phone) {
		return ErrInvalidPhone
	}
	if p.Email != "" && !strings.Contains(p.Email, "@") {
		return errors.New("invalid email")
	}
	return nil
}

type UpdateParams struct {
	LegalName *string
	TradeName *string
	Phone     *string
	Email     *string
}

func (p *UpdateParams) Validate() error {
	if p.LegalName != nil {
		if *p.LegalName == "" {
			return errors.New("legal name cannot be empty")
		}
		if len(*p.LegalName) > 255 {
			return errors.New("legal name must be 255 characters or less")
		}
	}
	if p.TradeName != nil && len(*p.TradeName) > 255 {
		return errors.New("trade name must be 255 characters or less")
	}
	if p.Phone != nil && *p.Phone != "" && !document.ValidPhone(*p.Phone) {
		return ErrInvalidPhone
	}
	if p.Email != nil && *p.Email != "" && !strings.Contains(*p.Email, "@") {
		return errors.New("invalid email")
	}
	return nil
}
