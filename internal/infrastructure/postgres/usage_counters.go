package postgres

import (
	"context"
	"fmt"

	"caixahub/internal/domain/plan"
)

// UsageCounters implements the plan.CounterSource interface with live
// COUNT queries, so usage reports never drift from the actual data.
type UsageCounters struct {
	db *DB
}

// NewUsageCounters creates a PostgreSQL-backed usage counter source
func NewUsageCounters(db *DB) *UsageCounters {
	return &UsageCounters{db: db}
}

// Counts returns the usage counters for a company within its current
// billing period. Transactions and AI requests reset each period;
// connected bank accounts are a standing count.
func (c *UsageCounters) Counts(ctx context.Context, companyID int64, sub *plan.Subscription) (plan.Counts, error) {
	var counts plan.Counts

	err := c.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE company_id = $1 AND created_at >= $2`,
		companyID, sub.CurrentPeriodStart,
	).Scan(&counts.Transactions)
	if err != nil {
		return plan.Counts{}, fmt.Errorf("failed to count transactions: %w", err)
	}

	err = c.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM accounts WHERE company_id = $1 AND connected = true`,
		companyID,
	).Scan(&counts.BankAccounts)
	if err != nil {
		return plan.Counts{}, fmt.Errorf("failed to count bank accounts: %w", err)
	}

	err = c.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ai_requests WHERE company_id = $1 AND created_at >= $2`,
		companyID, sub.CurrentPeriodStart,
	).Scan(&counts.AIRequests)
	if err != nil {
		return plan.Counts{}, fmt.Errorf("failed to count AI requests: %w", err)
	}

	return counts, nil
}

// RecordAIRequest appends one AI request usage event for metering.
func (c *UsageCounters) RecordAIRequest(ctx context.Context, companyID int64, feature string) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO ai_requests (company_id, feature) VALUES ($1, $2)`,
		companyID, feature,
	)
	if err != nil {
		return fmt.Errorf("failed to record AI request: %w", err)
	}
	return nil
}
