package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"caixahub/internal/domain/plan"
)

// SubscriptionRepository implements the plan.Repository interface for PostgreSQL
type SubscriptionRepository struct {
	db *DB
}

// NewSubscriptionRepository creates a new PostgreSQL subscription repository
func NewSubscriptionRepository(db *DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) GetByCompanyID(ctx context.Context, companyID int64) (*plan.Subscription, error) {
	query := `
		SELECT id, company_id, plan_code, status, current_period_start, current_period_end, created_at, updated_at
		FROM subscriptions
		WHERE company_id = $1
	`

	var s plan.Subscription
	err := r.db.QueryRowContext(ctx, query, companyID).Scan(
		&s.ID, &s.CompanyID, &s.PlanCode, &s.Status,
		&s.CurrentPeriodStart, &s.CurrentPeriodEnd,
		&s.CreatedAt, &s.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, plan.ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return &s, nil
}

func (r *SubscriptionRepository) Upsert(ctx context.Context, sub *plan.Subscription) (*plan.Subscription, error) {
	query := `
		INSERT INTO subscriptions (company_id, plan_code, status, current_period_start, current_period_end)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id) DO UPDATE
			SET plan_code = EXCLUDED.plan_code,
			    status = EXCLUDED.status,
			    current_period_start = EXCLUDED.current_period_start,
			    current_period_end = EXCLUDED.current_period_end,
			    updated_at = NOW()
		RETURNING id, company_id, plan_code, status, current_period_start, current_period_end, created_at, updated_at
	`

	var s plan.Subscription
	err := r.db.QueryRowContext(
		ctx, query,
		sub.CompanyID, sub.PlanCode, sub.Status, sub.CurrentPeriodStart, sub.CurrentPeriodEnd,
	).Scan(
		&s.ID, &s.CompanyID, &s.PlanCode, &s.Status,
		&s.CurrentPeriodStart, &s.CurrentPeriodEnd,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert subscription: %w", err)
	}

	return &s, nil
}

func (r *SubscriptionRepository) ListActive(ctx context.Context) ([]*plan.Subscription, error) {
	query := `
		SELECT id, company_id, plan_code, status, current_period_start, current_period_end, created_at, updated_at
		FROM subscriptions
		WHERE status = $1
		ORDER BY company_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, plan.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*plan.Subscription
	for rows.Next() {
		var s plan.Subscription
		if err := rows.Scan(
			&s.ID, &s.CompanyID, &s.PlanCode, &s.Status,
			&s.CurrentPeriodStart, &s.CurrentPeriodEnd,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, &s)
	}

	return subs, rows.Err()
}
