package plan

import "context"

// Repository persists subscriptions.
type Repository interface {
	GetByCompanyID(ctx context.Context, companyID int64) (*Subscription, error)
	Upsert(ctx context.Context, sub *Subscription) (*Subscription, error)
	ListActive(ctx context.Context) ([]*Subscription, error)
}

// CounterSource provides the live usage counters for a company within
// its current billing period.
type CounterSource interface {
	Counts(ctx context.Context, companyID int64, sub *Subscription) (Counts, error)
}
