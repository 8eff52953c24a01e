package http

import (
	"errors"
	"net/http"
	"strconv"

	"caixahub/internal/domain/company"
)

// companyScope resolves the {companyID} path value and verifies the
// authenticated user owns that company. Writes the error response and
// returns ok=false when the check fails.
func companyScope(w http.ResponseWriter, r *http.Request, svc *company.Service, userID int64) (int64, bool) {
	companyID, err := strconv.ParseInt(r.PathValue("companyID"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid company ID", http.StatusBadRequest)
		return 0, false
	}

	if _, err := svc.GetCompany(r.Context(), companyID, userID); err != nil {
		switch {
		case errors.Is(err, company.ErrCompanyNotFound):
			http.Error(w, "Company not found", http.StatusNotFound)
		case errors.Is(err, company.ErrForbidden):
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			http.Error(w, "Failed to resolve company", http.StatusInternalServerError)
		}
		return 0, false
	}

	return companyID, true
}
