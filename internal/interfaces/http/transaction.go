package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"caixahub/internal/domain/company"
	"caixahub/internal/domain/transaction"
	"caixahub/internal/shared/middleware"
)

type TransactionHandler struct {
	transactionService *transaction.Service
	companyService     *company.Service
}

func NewTransactionHandler(transactionService *transaction.Service, companyService *company.Service) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, companyService: companyService}
}

type ImportTransactionRequest struct {
	ID              string  `json:"id"`
	AccountID       string  `json:"accountId"`
	Amount          float64 `json:"amount"`
	Description     string  `json:"description"`
	Category        *string `json:"category"`
	TransactionDate string  `json:"transactionDate"` // RFC 3339 or YYYY-MM-DD
	Type            string  `json:"type"`
	Status          string  `json:"status"`
}

type RecategorizeRequest struct {
	Category string `json:"category"`
}

type SuggestCategoryResponse struct {
	Category string `json:"category"`
}

// HandleTransactions handles POST (import) and GET (list) on
// /api/companies/{companyID}/transactions
func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
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
		h.handleImportTransaction(w, r, companyID)
	case http.MethodGet:
		h.handleListTransactions(w, r, companyID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *TransactionHandler) handleImportTransaction(w http.ResponseWriter, r *http.Request, companyID int64) {
	var req ImportTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	txDate, err := parseDate(req.TransactionDate)
	if err != nil {
		http.Error(w, "Invalid transaction date", http.StatusBadRequest)
		return
	}

	tx, err := h.transactionService.ImportTransaction(r.Context(), transaction.CreateParams{
		ID:              req.ID,
		AccountID:       req.AccountID,
		CompanyID:       companyID,
		Amount:          req.Amount,
		Description:     req.Description,
		Category:        req.Category,
		TransactionDate: txDate,
		Type:            req.Type,
		Status:          req.Status,
	})
	if err != nil {
		writeTransactionError(w, err, companyID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(tx)
}

func (h *TransactionHandler) handleListTransactions(w http.ResponseWriter, r *http.Request, companyID int64) {
	q := r.URL.Query()
	filter := transaction.ListFilter{
		AccountID: q.Get("accountId"),
		Category:  q.Get("category"),
	}
	if v := q.Get("from"); v != "" {
		from, err := parseDate(v)
		if err != nil {
			http.Error(w, "Invalid 'from' date", http.StatusBadRequest)
			return
		}
		filter.From = from
	}
	if v := q.Get("to"); v != "" {
		to, err := parseDate(v)
		if err != nil {
			http.Error(w, "Invalid 'to' date", http.StatusBadRequest)
			return
		}
		filter.To = to
	}
	if v := q.Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}
	if v := q.Get("offset"); v != "" {
		filter.Offset, _ = strconv.Atoi(v)
	}

	transactions, err := h.transactionService.ListTransactions(r.Context(), companyID, filter)
	if err != nil {
		log.Printf("Error listing transactions for company %d: %v", companyID, err)
		http.Error(w, "Failed to list transactions", http.StatusInternalServerError)
		return
	}

	if transactions == nil {
		transactions = []*transaction.Transaction{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(transactions)
}

// HandleTransactionByID handles GET on
// /api/companies/{companyID}/transactions/{id}
func (h *TransactionHandler) HandleTransactionByID(w http.ResponseWriter, r *http.Request) {
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

	tx, err := h.transactionService.GetTransaction(r.Context(), r.PathValue("id"), companyID)
	if err != nil {
		writeTransactionError(w, err, companyID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tx)
}

// HandleRecategorize handles PUT on
// /api/companies/{companyID}/transactions/{id}/category
func (h *TransactionHandler) HandleRecategorize(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	companyID, ok := companyScope(w, r, h.companyService, userID)
	if !ok {
		return
	}

	if r.Method != http.MethodPut {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RecategorizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Category == "" {
		http.Error(w, "Category is required", http.StatusBadRequest)
		return
	}

	tx, err := h.transactionService.Recategorize(r.Context(), r.PathValue("id"), companyID, req.Category)
	if err != nil {
		writeTransactionError(w, err, companyID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tx)
}

// HandleSuggestCategory handles POST on
// /api/companies/{companyID}/transactions/{id}/suggest-category
func (h *TransactionHandler) HandleSuggestCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	companyID, ok := companyScope(w, r, h.companyService, userID)
	if !ok {
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	category, err := h.transactionService.SuggestCategory(r.Context(), r.PathValue("id"), companyID)
	if err != nil {
		writeTransactionError(w, err, companyID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuggestCategoryResponse{Category: category})
}

func writeTransactionError(w http.ResponseWriter, err error, companyID int64) {
	switch {
	case errors.Is(err, transaction.ErrTransactionNotFound):
		http.Error(w, "Transaction not found", http.StatusNotFound)
	case errors.Is(err, transaction.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, transaction.ErrLimitReached):
		http.Error(w, "Transaction limit reached for current plan", http.StatusPaymentRequired)
	case errors.Is(err, transaction.ErrAILimitReached):
		http.Error(w, "AI request limit reached for current plan", http.StatusPaymentRequired)
	case errors.Is(err, transaction.ErrInvalidType):
		http.Error(w, "Transaction type must be DEBIT or CREDIT", http.StatusBadRequest)
	default:
		log.Printf("Transaction operation failed for company %d: %v", companyID, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

// parseDate accepts RFC 3339 timestamps or bare YYYY-MM-DD dates.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
