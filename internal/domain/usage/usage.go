// Package usage computes plan-limit proximity for metered resources.
// Evaluations are pure functions over caller-supplied counters; nothing
// is persisted and no call depends on any other.
package usage

// Resource kinds metered against plan limits.
const (
	KindTransactions = "transactions"
	KindBankAccounts = "bank_accounts"
	KindAIRequests   = "ai_requests"
)

// Thresholds, in percent of the plan limit.
const (
	nearLimitThreshold = 80
	criticalThreshold  = 90
	atLimitThreshold   = 100
)

// Severity of a usage alert.
const (
	SeverityInfo     = "info"
	SeverityCritical = "critical"
)

// Evaluation is the result of comparing a usage counter to a plan limit.
type Evaluation struct {
	Current     int64   `json:"current"`
	Limit       int64   `json:"limit"`
	Percentage  float64 `json:"percentage"`
	Remaining   int64   `json:"remaining"`
	IsAtLimit   bool    `json:"isAtLimit"`
	IsNearLimit bool    `json:"isNearLimit"`
	IsCritical  bool    `json:"isCritical"`
	CanProceed  bool    `json:"canProceed"`
}

// Evaluate compares current usage to a plan limit. A limit of zero means
// unlimited: percentage stays 0 and the caller may always proceed.
func Evaluate(current, limit int64) Evaluation {
	remaining := limit - current
	if remaining < 0 {
		remaining = 0
	}

	var percentage float64
	if limit > 0 {
		percentage = float64(current) / float64(limit) * 100
	}

	return Evaluation{
		Current:     current,
		Limit:       limit,
		Percentage:  percentage,
		Remaining:   remaining,
		IsAtLimit:   percentage >= atLimitThreshold,
		IsNearLimit: percentage >= nearLimitThreshold,
		IsCritical:  percentage >= criticalThreshold,
		CanProceed:  limit == 0 || current < limit,
	}
}

// Severity returns the display severity for the evaluation: "" below the
// near-limit threshold, SeverityInfo in [80,90) and SeverityCritical at
// 90% and above. Reaching 100% stays in the critical tier; only the alert
// wording changes there.
func (e Evaluation) Severity() string {
	switch {
	case e.IsCritical:
		return SeverityCritical
	case e.IsNearLimit:
		return SeverityInfo
	default:
		return ""
	}
}
