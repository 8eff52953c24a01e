package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"caixahub/internal/domain/company"
	"caixahub/internal/domain/notification"
	"caixahub/internal/domain/plan"
)

// UsageScanJob implements the Job interface for scanning a company's plan
// usage and pushing limit alerts to the owner's devices.
type UsageScanJob struct {
	companyID           int64
	planService         *plan.Service
	companyRepo         company.Repository
	notificationService *notification.Service
}

// NewUsageScanJob creates a new usage scan job for a company.
func NewUsageScanJob(companyID int64, planService *plan.Service, companyRepo company.Repository, notificationService *notification.Service) *UsageScanJob {
	return &UsageScanJob{
		companyID:           companyID,
		planService:         planService,
		companyRepo:         companyRepo,
		notificationService: notificationService,
	}
}

// Execute computes the usage report and notifies the company owner for
// every metered resource that crossed an alert threshold.
func (j *UsageScanJob) Execute(ctx context.Context) error {
	report, err := j.planService.UsageReport(ctx, j.companyID)
	if err != nil {
		log.Printf("Usage scan failed for company %d: %v", j.companyID, err)
		return fmt.Errorf("usage report: %w", err)
	}

	alerts := 0
	for _, item := range report.Items {
		if item.Alert != nil {
			alerts++
		}
	}

	if alerts == 0 {
		log.Printf("Usage scan for company %d: all counters below thresholds", j.companyID)
		return nil
	}

	comp, err := j.companyRepo.GetByID(ctx, j.companyID)
	if err != nil {
		return fmt.Errorf("load company: %w", err)
	}

	sent := 0
	var lastErr error
	for _, item := range report.Items {
		if item.Alert == nil {
			continue
		}
		if _, err := j.notificationService.NotifyUsageAlert(ctx, comp.OwnerID, item.Alert); err != nil {
			log.Printf("Usage scan for company %d: failed to notify %s alert: %v", j.companyID, item.Kind, err)
			lastErr = err
			continue
		}
		sent++
	}

	if lastErr != nil {
		return fmt.Errorf("usage scan completed with errors: sent=%d of %d alerts: %w", sent, alerts, lastErr)
	}

	log.Printf("Usage scan for company %d completed: %d alerts sent", j.companyID, sent)
	return nil
}

// CompanyID returns the company ID associated with this job.
func (j *UsageScanJob) CompanyID() string {
	return strconv.FormatInt(j.companyID, 10)
}

// Description returns a human-readable description of the job.
func (j *UsageScanJob) Description() string {
	return fmt.Sprintf("Usage scan for company %d", j.companyID)
}

// NewUsageScanJobProvider returns a job provider that creates one usage scan
// job per company with an active subscription.
func NewUsageScanJobProvider(planService *plan.Service, companyRepo company.Repository, notificationService *notification.Service) func(context.Context) ([]Job, error) {
	return func(ctx context.Context) ([]Job, error) {
		subs, err := planService.ListActiveSubscriptions(ctx)
		if err != nil {
			return nil, fmt.Errorf("list active subscriptions: %w", err)
		}

		jobs := make([]Job, 0, len(subs))
		for _, sub := range subs {
			jobs = append(jobs, NewUsageScanJob(sub.CompanyID, planService, companyRepo, notificationService))
		}

		return jobs, nil
	}
}
