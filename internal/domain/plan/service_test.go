package plan

import (
	"context"
	"errors"
	"testing"
	"time"

	"caixahub/internal/domain/usage"
)

// MockRepository is a mock implementation of Repository interface
type MockRepository struct {
	GetByCompanyIDFunc func(ctx context.Context, companyID int64) (*Subscription, error)
	UpsertFunc         func(ctx context.Context, sub *Subscription) (*Subscription, error)
	ListActiveFunc     func(ctx context.Context) ([]*Subscription, error)
}

func (m *MockRepository) GetByCompanyID(ctx context.Context, companyID int64) (*Subscription, error) {
	if m.GetByCompanyIDFunc != nil {
		return m.GetByCompanyIDFunc(ctx, companyID)
	}
	return nil, ErrSubscriptionNotFound
}

func (m *MockRepository) Upsert(ctx context.Context, sub *Subscription) (*Subscription, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, sub)
	}
	return sub, nil
}

func (m *MockRepository) ListActive(ctx context.Context) ([]*Subscription, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

// MockCounterSource is a mock implementation of CounterSource
type MockCounterSource struct {
	CountsFunc func(ctx context.Context, companyID int64, sub *Subscription) (Counts, error)
}

func (m *MockCounterSource) Counts(ctx context.Context, companyID int64, sub *Subscription) (Counts, error) {
	if m.CountsFunc != nil {
		return m.CountsFunc(ctx, companyID, sub)
	}
	return Counts{}, nil
}

func activeSub(companyID int64, code string) *Subscription {
	now := time.Now().UTC()
	return &Subscription{
		ID:                 "sub-1",
		CompanyID:          companyID,
		PlanCode:           code,
		Status:             StatusActive,
		CurrentPeriodStart: now.AddDate(0, 0, -10),
		CurrentPeriodEnd:   now.AddDate(0, 0, 20),
	}
}

func TestService_Subscription_DefaultsToStarter(t *testing.T) {
	svc := NewService(&MockRepository{}, &MockCounterSource{})

	sub, err := svc.Subscription(context.Background(), 42)
	if err != nil {
		t.Fatalf("Subscription() unexpected error: %v", err)
	}
	if sub.PlanCode != CodeStarter {
		t.Errorf("PlanCode = %q, want %q", sub.PlanCode, CodeStarter)
	}
	if sub.Status != StatusActive {
		t.Errorf("Status = %q, want %q", sub.Status, StatusActive)
	}
	if sub.CompanyID != 42 {
		t.Errorf("CompanyID = %d, want 42", sub.CompanyID)
	}
}

func TestService_UsageReport(t *testing.T) {
	repo := &MockRepository{
		GetByCompanyIDFunc: func(ctx context.Context, companyID int64) (*Subscription, error) {
			return activeSub(companyID, CodeProfessional), nil
		},
	}
	counters := &MockCounterSource{
		CountsFunc: func(ctx context.Context, companyID int64, sub *Subscription) (Counts, error) {
			return Counts{Transactions: 950, BankAccounts: 3, AIRequests: 10}, nil
		},
	}
	svc := NewService(repo, counters)

	report, err := svc.UsageReport(context.Background(), 7)
	if err != nil {
		t.Fatalf("UsageReport() unexpected error: %v", err)
	}
	if report.PlanCode != CodeProfessional {
		t.Errorf("PlanCode = %q, want %q", report.PlanCode, CodeProfessional)
	}
	if len(report.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(report.Items))
	}

	byKind := map[string]Item{}
	for _, item := range report.Items {
		byKind[item.Kind] = item
	}

	tx := byKind[usage.KindTransactions]
	if !tx.Evaluation.IsCritical || tx.Evaluation.IsAtLimit {
		t.Errorf("transactions evaluation = %+v, want critical below limit", tx.Evaluation)
	}
	if tx.Alert == nil || tx.Alert.Severity != usage.SeverityCritical {
		t.Errorf("transactions alert = %+v, want critical alert", tx.Alert)
	}

	accounts := byKind[usage.KindBankAccounts]
	if !accounts.Evaluation.IsAtLimit {
		t.Errorf("bank accounts evaluation = %+v, want at limit", accounts.Evaluation)
	}
	if accounts.Evaluation.CanProceed {
		t.Error("bank accounts CanProceed = true, want false")
	}

	ai := byKind[usage.KindAIRequests]
	if ai.Alert != nil {
		t.Errorf("ai requests alert = %+v, want nil", ai.Alert)
	}
}

func TestService_UsageReport_UnlimitedTransactionsOnBusiness(t *testing.T) {
	repo := &MockRepository{
		GetByCompanyIDFunc: func(ctx context.Context, companyID int64) (*Subscription, error) {
			return activeSub(companyID, CodeBusiness), nil
		},
	}
	counters := &MockCounterSource{
		CountsFunc: func(ctx context.Context, companyID int64, sub *Subscription) (Counts, error) {
			return Counts{Transactions: 50000}, nil
		},
	}
	svc := NewService(repo, counters)

	report, err := svc.UsageReport(context.Background(), 7)
	if err != nil {
		t.Fatalf("UsageReport() unexpected error: %v", err)
	}
	for _, item := range report.Items {
		if item.Kind != usage.KindTransactions {
			continue
		}
		if !item.Evaluation.CanProceed {
			t.Error("unlimited transactions CanProceed = false, want true")
		}
		if item.Evaluation.Percentage != 0 {
			t.Errorf("unlimited transactions Percentage = %v, want 0", item.Evaluation.Percentage)
		}
		if item.Alert != nil {
			t.Errorf("unlimited transactions alert = %+v, want nil", item.Alert)
		}
	}
}

func TestService_CanProceed(t *testing.T) {
	tests := []struct {
		name    string
		counts  Counts
		kind    string
		want    bool
		wantErr error
	}{
		{"under limit", Counts{Transactions: 99}, usage.KindTransactions, true, nil},
		{"at limit", Counts{Transactions: 100}, usage.KindTransactions, false, nil},
		{"account slot free", Counts{BankAccounts: 0}, usage.KindBankAccounts, true, nil},
		{"account slot taken", Counts{BankAccounts: 1}, usage.KindBankAccounts, false, nil},
		{"unknown kind", Counts{}, "widgets", false, ErrInvalidResourceKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockRepository{
				GetByCompanyIDFunc: func(ctx context.Context, companyID int64) (*Subscription, error) {
					return activeSub(companyID, CodeStarter), nil
				},
			}
			counters := &MockCounterSource{
				CountsFunc: func(ctx context.Context, companyID int64, sub *Subscription) (Counts, error) {
					return tt.counts, nil
				},
			}
			svc := NewService(repo, counters)

			got, err := svc.CanProceed(context.Background(), 7, tt.kind)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("CanProceed() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CanProceed() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("CanProceed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestService_ChangePlan(t *testing.T) {
	var stored *Subscription
	repo := &MockRepository{
		UpsertFunc: func(ctx context.Context, sub *Subscription) (*Subscription, error) {
			stored = sub
			return sub, nil
		},
	}
	svc := NewService(repo, &MockCounterSource{})

	sub, err := svc.ChangePlan(context.Background(), 7, CodeBusiness)
	if err != nil {
		t.Fatalf("ChangePlan() unexpected error: %v", err)
	}
	if sub.PlanCode != CodeBusiness {
		t.Errorf("PlanCode = %q, want %q", sub.PlanCode, CodeBusiness)
	}
	if stored == nil {
		t.Fatal("Upsert was not called")
	}
	if !stored.CurrentPeriodEnd.After(stored.CurrentPeriodStart) {
		t.Error("period end is not after period start")
	}

	if _, err := svc.ChangePlan(context.Background(), 7, "enterprise"); !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("ChangePlan() error = %v, want %v", err, ErrPlanNotFound)
	}
}
