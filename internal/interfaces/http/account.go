package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"caixahub/internal/domain/account"
	"caixahub/internal/domain/company"
	"caixahub/internal/shared/middleware"
)

type AccountHandler struct {
	accountService *account.Service
	companyService *company.Service
}

func NewAccountHandler(accountService *account.Service, companyService *company.Service) *AccountHandler {
	return &AccountHandler{accountService: accountService, companyService: companyService}
}

type ConnectAccountRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	BankName    string  `json:"bankName"`
	AccountType string  `json:"accountType"`
	Subtype     string  `json:"subtype"`
	Currency    string  `json:"currency"`
	Balance     float64 `json:"balance"`
}

// HandleAccounts handles POST (connect) and GET (list) on
// /api/companies/{companyID}/accounts
func (h *AccountHandler) HandleAccounts(w http.ResponseWriter, r *http.Request) {
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
	case http.MethodPost:
		h.handleConnectAccount(w, r, companyID)
	case http.MethodGet:
		h.handleListAccounts(w, r, companyID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *AccountHandler) handleConnectAccount(w http.ResponseWriter, r *http.Request, companyID int64) {
	var req ConnectAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	acc, err := h.accountService.ConnectAccount(r.Context(), account.CreateParams{
		ID:          req.ID,
		CompanyID:   companyID,
		Name:        req.Name,
		BankName:    req.BankName,
		AccountType: req.AccountType,
		Subtype:     req.Subtype,
		Currency:    req.Currency,
		Balance:     req.Balance,
	})
	if err != nil {
		writeAccountError(w, err, companyID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(acc)
}

func (h *AccountHandler) handleListAccounts(w http.ResponseWriter, r *http.Request, companyID int64) {
	accounts, err := h.accountService.ListAccounts(r.Context(), companyID)
	if err != nil {
		log.Printf("Error listing accounts for company %d: %v", companyID, err)
		http.Error(w, "Failed to list accounts", http.StatusInternalServerError)
		return
	}

	if accounts == nil {
		accounts = []*account.Account{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(accounts)
}

// HandleAccountByID handles GET and DELETE on
// /api/companies/{companyID}/accounts/{id}
func (h *AccountHandler) HandleAccountByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	companyID, ok := companyScope(w, r, h.companyService, userID)
	if !ok {
		return
	}

	accountID := r.PathValue("id")
	if accountID == "" {
		http.Error(w, "Account ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		acc, err := h.accountService.GetAccount(r.Context(), accountID, companyID)
		if err != nil {
			writeAccountError(w, err, companyID)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(acc)

	case http.MethodDelete:
		if err := h.accountService.DisconnectAccount(r.Context(), accountID, companyID); err != nil {
			writeAccountError(w, err, companyID)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func writeAccountError(w http.ResponseWriter, err error, companyID int64) {
	switch {
	case errors.Is(err, account.ErrAccountNotFound):
		http.Error(w, "Account not found", http.StatusNotFound)
	case errors.Is(err, account.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, account.ErrLimitReached):
		http.Error(w, "Bank account limit reached for current plan", http.StatusPaymentRequired)
	case errors.Is(err, account.ErrInvalidAccountType),
		errors.Is(err, account.ErrInvalidAccountSubtype),
		errors.Is(err, account.ErrInvalidCurrency):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("Account operation failed for company %d: %v", companyID, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}
