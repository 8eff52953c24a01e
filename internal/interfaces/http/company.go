package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"caixahub/internal/domain/company"
	"caixahub/internal/shared/middleware"
)

type CompanyHandler struct {
	companyService *company.Service
}

func NewCompanyHandler(companyService *company.Service) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

type CreateCompanyRequest struct {
	CNPJ      string `json:"cnpj"`
	LegalName string `json:"legalName"`
	TradeName string `json:"tradeName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

type UpdateCompanyRequest struct {
	LegalName *string `json:"legalName"`
	TradeName *string `json:"tradeName"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
}

// CompanyResponse includes display-formatted document fields alongside
// the stored digits.
type CompanyResponse struct {
	*company.Company
	FormattedCNPJ  string `json:"formattedCnpj"`
	FormattedPhone string `json:"formattedPhone,omitempty"`
}

func toCompanyResponse(c *company.Company) CompanyResponse {
	return CompanyResponse{
		Company:        c,
		FormattedCNPJ:  c.FormattedCNPJ(),
		FormattedPhone: c.FormattedPhone(),
	}
}

// HandleCompanies handles POST (create) and GET (list) on /api/companies
func (h *CompanyHandler) HandleCompanies(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.handleCreateCompany(w, r, userID)
	case http.MethodGet:
		h.handleListCompanies(w, r, userID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CompanyHandler) handleCreateCompany(w http.ResponseWriter, r *http.Request, userID int64) {
	var req CreateCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.companyService.CreateCompany(r.Context(), company.CreateParams{
		OwnerID:   userID,
		CNPJ:      req.CNPJ,
		LegalName: req.LegalName,
		TradeName: req.TradeName,
		Phone:     req.Phone,
		Email:     req.Email,
	})
	if err != nil {
		writeCompanyError(w, err, userID)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toCompanyResponse(c))
}

func (h *CompanyHandler) handleListCompanies(w http.ResponseWriter, r *http.Request, userID int64) {
	companies, err := h.companyService.ListCompanies(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing companies for user %d: %v", userID, err)
		http.Error(w, "Failed to list companies", http.StatusInternalServerError)
		return
	}

	response := make([]CompanyResponse, 0, len(companies))
	for _, c := range companies {
		response = append(response, toCompanyResponse(c))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleCompanyByID handles GET, PUT and DELETE on /api/companies/{id}
func (h *CompanyHandler) HandleCompanyByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	companyID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid company ID", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		c, err := h.companyService.GetCompany(r.Context(), companyID, userID)
		if err != nil {
			writeCompanyError(w, err, userID)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(toCompanyResponse(c))

	case http.MethodPut:
		var req UpdateCompanyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		c, err := h.companyService.UpdateCompany(r.Context(), companyID, userID, company.UpdateParams{
			LegalName: req.LegalName,
			TradeName: req.TradeName,
			Phone:     req.Phone,
			Email:     req.Email,
		})
		if err != nil {
			writeCompanyError(w, err, userID)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(toCompanyResponse(c))

	case http.MethodDelete:
		if err := h.companyService.DeleteCompany(r.Context(), companyID, userID); err != nil {
			writeCompanyError(w, err, userID)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func writeCompanyError(w http.ResponseWriter, err error, userID int64) {
	switch {
	case errors.Is(err, company.ErrCompanyNotFound):
		http.Error(w, "Company not found", http.StatusNotFound)
	case errors.Is(err, company.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, company.ErrInvalidCNPJ):
		http.Error(w, "Invalid CNPJ", http.StatusBadRequest)
	case errors.Is(err, company.ErrInvalidPhone):
		http.Error(w, "Invalid phone number", http.StatusBadRequest)
	case errors.Is(err, company.ErrDuplicateCNPJ):
		http.Error(w, "A company with this CNPJ already exists", http.StatusConflict)
	default:
		log.Printf("Company operation failed for user %d: %v", userID, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}
