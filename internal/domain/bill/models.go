package bill

import (
	"errors"
	"time"
)

// Bill status values
var billStatuses = map[string]struct{}{
	"OPEN":      {},
	"PAID":      {},
	"OVERDUE":   {},
	"CANCELLED": {},
}

// Domain errors
var (
	ErrBillNotFound  = errors.New("bill not found")
	ErrForbidden     = errors.New("access forbidden")
	ErrInvalidStatus = errors.New("invalid bill status")
	ErrAlreadyPaid   = errors.New("bill is already paid")
)

// Bill represents a payable (boleto) tracked by the company.
type Bill struct {
	ID            string     `json:"id"`
	CompanyID     int64      `json:"companyId"`
	Amount        float64    `json:"amount"`
	DueDate       time.Time  `json:"dueDate"`
	Status        string     `json:"status"` // OPEN, PAID, OVERDUE, CANCELLED
	Description   string     `json:"description"`
	BillerName    string     `json:"billerName"`
	Category      *string    `json:"category,omitempty"`
	Barcode       *string    `json:"barcode,omitempty"`       // Brazilian boleto barcode
	DigitableLine *string    `json:"digitableLine,omitempty"` // Boleto digitable line
	PaymentDate   *time.Time `json:"paymentDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Overdue reports whether the bill is unpaid and past due at the given
// reference time.
func (b *Bill) Overdue(now time.Time) bool {
	return b.Status == "OPEN" && b.DueDate.Before(now)
}

// CreateParams contains parameters for creating a new bill
type CreateParams struct {
	ID            string
	CompanyID     int64
	Amount        float64
	DueDate       time.Time
	Status        string
	Description   string
	BillerName    string
	Category      *string
	Barcode       *string
	DigitableLine *string
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.ID == "" {
		return errors.New("bill ID is required")
	}
	if p.CompanyID <= 0 {
		return errors.New("valid company ID is required")
	}
	if p.DueDate.IsZero() {
		return errors.New("due date is required")
	}
	if p.Status == "" {
		return errors.New("status is required")
	}
	if !IsValidStatus(p.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// IsValidStatus checks if the provided bill status is valid.
func IsValidStatus(s string) bool {
	_, ok := billStatuses[s]
	return ok
}
