package plan

import (
	"context"
	"errors"
	"time"

	"caixahub/internal/domain/usage"
)

// Service contains the business logic for subscriptions and usage reports
type Service struct {
	repo     Repository
	counters CounterSource
}

// NewService creates a new plan service
func NewService(repo Repository, counters CounterSource) *Service {
	return &Service{repo: repo, counters: counters}
}

// reportKinds is the fixed order resource kinds appear in reports.
var reportKinds = []string{usage.KindTransactions, usage.KindBankAccounts, usage.KindAIRequests}

// Subscription returns the company's subscription. Companies without a
// stored subscription are on the free starter tier.
func (s *Service) Subscription(ctx context.Context, companyID int64) (*Subscription, error) {
	sub, err := s.repo.GetByCompanyID(ctx, companyID)
	if err != nil {
		if errors.Is(err, ErrSubscriptionNotFound) {
			return defaultSubscription(companyID), nil
		}
		return nil, err
	}
	return sub, nil
}

// defaultSubscription is the implicit starter subscription with a
// calendar-month billing period.
func defaultSubscription(companyID int64) *Subscription {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return &Subscription{
		CompanyID:          companyID,
		PlanCode:           CodeStarter,
		Status:             StatusActive,
		CurrentPeriodStart: start,
		CurrentPeriodEnd:   start.AddDate(0, 1, 0),
	}
}

// UsageReport evaluates every metered resource kind against the
// company's plan limits.
func (s *Service) UsageReport(ctx context.Context, companyID int64) (*Report, error) {
	sub, err := s.Subscription(ctx, companyID)
	if err != nil {
		return nil, err
	}

	p, ok := ByCode(sub.PlanCode)
	if !ok {
		return nil, ErrPlanNotFound
	}

	counts, err := s.counters.Counts(ctx, companyID, sub)
	if err != nil {
		return nil, err
	}

	report := &Report{
		CompanyID: companyID,
		PlanCode:  p.Code,
		PlanName:  p.Name,
		Items:     make([]Item, 0, len(reportKinds)),
	}
	for _, kind := range reportKinds {
		current, err := counts.For(kind)
		if err != nil {
			return nil, err
		}
		limit, err := p.Limits.For(kind)
		if err != nil {
			return nil, err
		}
		eval := usage.Evaluate(current, limit)
		report.Items = append(report.Items, Item{
			Kind:       kind,
			Evaluation: eval,
			Alert:      eval.Alert(kind),
		})
	}
	return report, nil
}

// CanProceed reports whether the company may consume one more unit of the
// given resource kind under its current plan.
func (s *Service) CanProceed(ctx context.Context, companyID int64, kind string) (bool, error) {
	if !usage.ValidKind(kind) {
		return false, ErrInvalidResourceKind
	}

	sub, err := s.Subscription(ctx, companyID)
	if err != nil {
		return false, err
	}
	p, ok := ByCode(sub.PlanCode)
	if !ok {
		return false, ErrPlanNotFound
	}

	counts, err := s.counters.Counts(ctx, companyID, sub)
	if err != nil {
		return false, err
	}
	current, err := counts.For(kind)
	if err != nil {
		return false, err
	}
	limit, err := p.Limits.For(kind)
	if err != nil {
		return false, err
	}

	return usage.Evaluate(current, limit).CanProceed, nil
}

// ChangePlan moves the company to another tier, resetting the billing
// period to start now.
func (s *Service) ChangePlan(ctx context.Context, companyID int64, code string) (*Subscription, error) {
	if _, ok := ByCode(code); !ok {
		return nil, ErrPlanNotFound
	}

	now := time.Now().UTC()
	sub := &Subscription{
		CompanyID:          companyID,
		PlanCode:           code,
		Status:             StatusActive,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   now.AddDate(0, 1, 0),
	}
	return s.repo.Upsert(ctx, sub)
}

// ListActiveSubscriptions returns every active subscription, used by the
// scheduler's usage scan.
func (s *Service) ListActiveSubscriptions(ctx context.Context) ([]*Subscription, error) {
	return s.repo.ListActive(ctx)
}
