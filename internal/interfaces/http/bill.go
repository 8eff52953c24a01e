package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"caixahub/internal/domain/bill"
	"caixahub/internal/domain/company"
	"caixahub/internal/shared/middleware"
)

type BillHandler struct {
	billService    *bill.Service
	companyService *company.Service
}

func NewBillHandler(billService *bill.Service, companyService *company.Service) *BillHandler {
	return &BillHandler{billService: billService, companyService: companyService}
}

type CreateBillRequest struct {
	ID            string  `json:"id"`
	Amount        float64 `json:"amount"`
	DueDate       string  `json:"dueDate"` // RFC 3339 or YYYY-MM-DD
	Description   string  `json:"description"`
	BillerName    string  `json:"billerName"`
	Category      *string `json:"category"`
	Barcode       *string `json:"barcode"`
	DigitableLine *string `json:"digitableLine"`
}

// HandleBills handles POST (create) and GET (list) on
// /api/companies/{companyID}/bills. GET supports ?upcoming=N to list
// open bills due in the next N days.
func (h *BillHandler) HandleBills(w http.ResponseWriter, r *http.Request) {
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
		h.handleCreateBill(w, r, companyID)
	case http.MethodGet:
		h.handleListBills(w, r, companyID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *BillHandler) handleCreateBill(w http.ResponseWriter, r *http.Request, companyID int64) {
	var req CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		http.Error(w, "Invalid due date", http.StatusBadRequest)
		return
	}

	b, err := h.billService.CreateBill(r.Context(), bill.CreateParams{
		ID:            req.ID,
		CompanyID:     companyID,
		Amount:        req.Amount,
		DueDate:       dueDate,
		Status:        "OPEN",
		Description:   req.Description,
		BillerName:    req.BillerName,
		Category:      req.Category,
		Barcode:       req.Barcode,
		DigitableLine: req.DigitableLine,
	})
	if err != nil {
		writeBillError(w, err, companyID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(b)
}

func (h *BillHandler) handleListBills(w http.ResponseWriter, r *http.Request, companyID int64) {
	var bills []*bill.Bill
	var err error

	if v := r.URL.Query().Get("upcoming"); v != "" {
		days, convErr := strconv.Atoi(v)
		if convErr != nil || days <= 0 {
			http.Error(w, "Invalid 'upcoming' value", http.StatusBadRequest)
			return
		}
		bills, err = h.billService.ListUpcoming(r.Context(), companyID, days)
	} else {
		bills, err = h.billService.ListBills(r.Context(), companyID)
	}

	if err != nil {
		log.Printf("Error listing bills for company %d: %v", companyID, err)
		http.Error(w, "Failed to list bills", http.StatusInternalServerError)
		return
	}

	if bills == nil {
		bills = []*bill.Bill{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(bills)
}

// HandleBillByID handles GET on /api/companies/{companyID}/bills/{id}
func (h *BillHandler) HandleBillByID(w http.ResponseWriter, r *http.Request) {
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

	b, err := h.billService.GetBill(r.Context(), r.PathValue("id"), companyID)
	if err != nil {
		writeBillError(w, err, companyID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b)
}

// HandlePayBill handles POST on /api/companies/{companyID}/bills/{id}/pay
func (h *BillHandler) HandlePayBill(w http.ResponseWriter, r *http.Request) {
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

	b, err := h.billService.PayBill(r.Context(), r.PathValue("id"), companyID)
	if err != nil {
		writeBillError(w, err, companyID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(b)
}

func writeBillError(w http.ResponseWriter, err error, companyID int64) {
	switch {
	case errors.Is(err, bill.ErrBillNotFound):
		http.Error(w, "Bill not found", http.StatusNotFound)
	case errors.Is(err, bill.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, bill.ErrAlreadyPaid):
		http.Error(w, "Bill is already paid", http.StatusConflict)
	case errors.Is(err, bill.ErrInvalidStatus):
		http.Error(w, "Invalid bill status", http.StatusBadRequest)
	default:
		log.Printf("Bill operation failed for company %d: %v", companyID, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}
