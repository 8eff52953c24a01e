package account

import (
	"errors"
	"time"
)

var (
	// Allowed account types and subtypes (from the aggregation provider API)
	accountTypes = map[string]struct{}{
		"BANK":       {},
		"CREDIT":     {},
		"INVESTMENT": {},
	}
	accountSubtypes = map[string]struct{}{
		"CHECKING_ACCOUNT": {},
		"SAVINGS_ACCOUNT":  {},
		"CREDIT_CARD":      {},
	}
	// Common ISO 4217 currency codes
	validCurrencies = map[string]struct{}{
		"BRL": {}, "USD": {}, "EUR": {}, "GBP": {}, "JPY": {},
		"CHF": {}, "CAD": {}, "AUD": {}, "CNY": {}, "ARS": {},
		"CLP": {}, "COP": {}, "MXN": {}, "UYU": {}, "PYG": {},
	}
)

// Domain errors
var (
	ErrInvalidAccountType    = errors.New("invalid account type")
	ErrInvalidAccountSubtype = errors.New("invalid account subtype")
	ErrAccountNotFound       = errors.New("account not found")
	ErrForbidden             = errors.New("access forbidden")
	ErrInvalidCurrency       = errors.New("valid ISO 4217 currency is required")
	ErrLimitReached          = errors.New("bank account limit reached for current plan")
)

// Account is an aggregated bank account belonging to a company.
type Account struct {
	ID          string    `json:"id"`
	CompanyID   int64     `json:"companyId"`
	Name        string    `json:"name"`
	BankName    string    `json:"bankName"`
	AccountType string    `json:"accountType"`
	Subtype     string    `json:"subtype"`
	Currency    string    `json:"currency"`
	Balance     float64   `json:"balance"`
	Connected   bool      `json:"connected"` // actively syncing from the provider
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateParams contains parameters for connecting a new account
type CreateParams struct {
	ID          string
	CompanyID   int64
	Name        string
	BankName    string
	AccountType string
	Subtype     string
	Currency    string
	Balance     float64
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.ID == "" {
		return errors.New("account ID is required")
	}
	if p.CompanyID <= 0 {
		return errors.New("valid company ID is required")
	}
	if p.Name == "" {
		return errors.New("account name is required")
	}
	if !IsValidAccountType(p.AccountType) {
		return ErrInvalidAccountType
	}
	if p.Subtype != "" && !IsValidAccountSubtype(p.Subtype) {
		return ErrInvalidAccountSubtype
	}
	if !IsValidCurrency(p.Currency) {
		return ErrInvalidCurrency
	}
	return nil
}

// UpdateParams contains parameters for updating an account
type UpdateParams struct {
	Name      *string
	Balance   *float64
	Connected *bool
}

// IsValidAccountType checks if the provided account type is valid.
func IsValidAccountType(t string) bool {
	_, ok := accountTypes[t]
	return ok
}

// IsValidAccountSubtype checks if the provided subtype is valid.
func IsValidAccountSubtype(s string) bool {
	_, ok := accountSubtypes[s]
	return ok
}

// IsValidCurrency checks if the provided currency is a valid ISO 4217 code.
func IsValidCurrency(c string) bool {
	if len(c) != 3 {
		return false
	}
	_, ok := validCurrencies[c]
	return ok
}
