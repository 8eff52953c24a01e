package plan

import (
	"errors"
	"time"

	"caixahub/internal/domain/usage"
)

// Subscription statuses
const (
	StatusActive   = "active"
	StatusPastDue  = "past_due"
	StatusCanceled = "canceled"
)

// Domain errors
var (
	ErrPlanNotFound         = errors.New("plan not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrInvalidResourceKind  = errors.New("invalid resource kind")
)

// Limits holds the per-resource usage limits of a plan tier.
// Zero means unlimited.
type Limits struct {
	Transactions int64 `json:"transactions"`
	BankAccounts int64 `json:"bankAccounts"`
	AIRequests   int64 `json:"aiRequests"`
}

// For returns the limit for a metered resource kind.
func (l Limits) For(kind string) (int64, error) {
	switch kind {
	case usage.KindTransactions:
		return l.Transactions, nil
	case usage.KindBankAccounts:
		return l.BankAccounts, nil
	case usage.KindAIRequests:
		return l.AIRequests, nil
	default:
		return 0, ErrInvalidResourceKind
	}
}

// Plan is a subscription tier.
type Plan struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"` // monthly, BRL cents
	Limits     Limits `json:"limits"`
}

// Plan tier codes
const (
	CodeStarter      = "starter"
	CodeProfessional = "professional"
	CodeBusiness     = "business"
)

// Catalog of available tiers. Static by design: tiers change with
// deployments, not at runtime.
var plans = map[string]Plan{
	CodeStarter: {
		Code:       CodeStarter,
		Name:       "Starter",
		PriceCents: 0,
		Limits:     Limits{Transactions: 100, BankAccounts: 1, AIRequests: 10},
	},
	CodeProfessional: {
		Code:       CodeProfessional,
		Name:       "Profissional",
		PriceCents: 4990,
		Limits:     Limits{Transactions: 1000, BankAccounts: 3, AIRequests: 100},
	},
	CodeBusiness: {
		Code:       CodeBusiness,
		Name:       "Business",
		PriceCents: 14990,
		Limits:     Limits{Transactions: 0, BankAccounts: 10, AIRequests: 500},
	},
}

// ByCode looks up a plan tier.
func ByCode(code string) (Plan, bool) {
	p, ok := plans[code]
	return p, ok
}

// All returns the catalog in display order.
func All() []Plan {
	return []Plan{plans[CodeStarter], plans[CodeProfessional], plans[CodeBusiness]}
}

// Subscription ties a company to a plan tier and billing period.
type Subscription struct {
	ID                 string    `json:"id"`
	CompanyID          int64     `json:"companyId"`
	PlanCode           string    `json:"planCode"`
	Status             string    `json:"status"`
	CurrentPeriodStart time.Time `json:"currentPeriodStart"`
	CurrentPeriodEnd   time.Time `json:"currentPeriodEnd"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Counts holds the live usage counters for one company.
type Counts struct {
	Transactions int64
	BankAccounts int64
	AIRequests   int64
}

// For returns the counter for a metered resource kind.
func (c Counts) For(kind string) (int64, error) {
	switch kind {
	case usage.KindTransactions:
		return c.Transactions, nil
	case usage.KindBankAccounts:
		return c.BankAccounts, nil
	case usage.KindAIRequests:
		return c.AIRequests, nil
	default:
		return 0, ErrInvalidResourceKind
	}
}

// Item is the usage report entry for one resource kind.
type Item struct {
	Kind       string           `json:"kind"`
	Evaluation usage.Evaluation `json:"evaluation"`
	Alert      *usage.Alert     `json:"alert,omitempty"`
}

// Report is the per-company usage report that feeds the front end's
// limit banners.
type Report struct {
	CompanyID int64  `json:"companyId"`
	PlanCode  string `json:"planCode"`
	PlanName  string `json:"planName"`
	Items     []Item `json:"items"`
}
