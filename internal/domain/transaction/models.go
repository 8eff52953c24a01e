package transaction

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrForbidden           = errors.New("forbidden: transaction does not belong to company")
	ErrInvalidType         = errors.New("transaction type must be DEBIT or CREDIT")
	ErrLimitReached        = errors.New("transaction limit reached for current plan")
	ErrAILimitReached      = errors.New("AI request limit reached for current plan")
)

type Transaction struct {
	ID              string    `json:"id"` // Provider's transaction id (UUID string)
	AccountID       string    `json:"accountId"`
	CompanyID       int64     `json:"companyId"`
	Amount          float64   `json:"amount"`
	Description     string    `json:"description"`
	Category        *string   `json:"category,omitempty"`
	TransactionDate time.Time `json:"transactionDate"`
	Type            string    `json:"type"`   // "DEBIT" or "CREDIT"
	Status          string    `json:"status"` // "PENDING" or "POSTED"
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	Manipulated     bool      `json:"manipulated"` // category edited by the user
}

type CreateParams struct {
	ID              string // Provider's transaction id
	AccountID       string
	CompanyID       int64
	Amount          float64
	Description     string
	Category        *string
	TransactionDate time.Time
	Type            string
	Status          string
}

func (p CreateParams) Validate() error {
	if p.ID == "" {
		return errors.New("transaction ID is required")
	}
	if p.AccountID == "" {
		return errors.New("account ID is required")
	}
	if p.CompanyID <= 0 {
		return errors.New("valid company ID is required")
	}
	if p.Type != "DEBIT" && p.Type != "CREDIT" {
		return ErrInvalidType
	}
	if p.TransactionDate.IsZero() {
		return errors.New("transaction date is required")
	}
	return nil
}

type UpdateParams struct {
	Description *string
	Category    *string
	Status      *string
}

// ListFilter narrows transaction listings.
type ListFilter struct {
	AccountID string
	Category  string
	From      time.Time
	To        time.Time
	Limit     int
	Offset    int
}
