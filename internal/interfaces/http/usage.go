package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"caixahub/internal/domain/company"
	"caixahub/internal/domain/plan"
	"caixahub/internal/shared/middleware"
)

type UsageHandler struct {
	planService    *plan.Service
	companyService *company.Service
}

func NewUsageHandler(planService *plan.Service, companyService *company.Service) *UsageHandler {
	return &UsageHandler{planService: planService, companyService: companyService}
}

type ChangePlanRequest struct {
	PlanCode string `json:"planCode"`
}

// HandlePlans lists the plan catalog. Public endpoint.
func (h *UsageHandler) HandlePlans(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(plan.All())
}

// HandleUsage returns the usage report on
// /api/companies/{companyID}/usage. The report drives the dashboard's
// limit banners: each metered resource carries its evaluation and,
// above 80%, the alert to show.
func (h *UsageHandler) HandleUsage(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	companyID, ok := companyScope(w, r, h.companyService, userID)
	if !ok {
		return
	}

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	report, err := h.planService.UsageReport(r.Context(), companyID)
	if err != nil {
		log.Printf("Error building usage report for company %d: %v", companyID, err)
		http.Error(w, "Failed to build usage report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// HandleSubscription handles GET (current subscription) and PUT (change
// plan) on /api/companies/{companyID}/subscription
func (h *UsageHandler) HandleSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	companyID, ok := companyScope(w, r, h.companyService, userID)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		sub, err := h.planService.Subscription(r.Context(), companyID)
		if err != nil {
			log.Printf("Error getting subscription for company %d: %v", companyID, err)
			http.Error(w, "Failed to get subscription", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sub)

	case http.MethodPut:
		var req ChangePlanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		sub, err := h.planService.ChangePlan(r.Context(), companyID, req.PlanCode)
		if errors.Is(err, plan.ErrPlanNotFound) {
			http.Error(w, "Unknown plan code", http.StatusBadRequest)
			return
		}
		if err != nil {
			log.Printf("Error changing plan for company %d: %v", companyID, err)
			http.Error(w, "Failed to change plan", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sub)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
