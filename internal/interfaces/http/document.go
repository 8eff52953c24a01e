package http

import (
	"encoding/json"
	"net/http"

	"caixahub/internal/domain/document"
)

// DocumentHandler exposes CNPJ and phone validation for front-end
// forms. Masking happens client-side as the user types; this endpoint
// is the authoritative server-side check on submit.
type DocumentHandler struct{}

func NewDocumentHandler() *DocumentHandler {
	return &DocumentHandler{}
}

type DocumentResponse struct {
	Valid     bool   `json:"valid"`
	Formatted string `json:"formatted"`
	Masked    string `json:"masked"`
}

// HandleCNPJ handles GET /api/documents/cnpj?value=...
func (h *DocumentHandler) HandleCNPJ(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	value := r.URL.Query().Get("value")
	if value == "" {
		http.Error(w, "Query parameter 'value' is required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DocumentResponse{
		Valid:     document.ValidCNPJ(value),
		Formatted: document.FormatCNPJ(value),
		Masked:    document.MaskCNPJ(value),
	})
}

// HandlePhone handles GET /api/documents/phone?value=...
func (h *DocumentHandler) HandlePhone(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	value := r.URL.Query().Get("value")
	if value == "" {
		http.Error(w, "Query parameter 'value' is required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DocumentResponse{
		Valid:     document.ValidPhone(value),
		Formatted: document.FormatPhone(value),
		Masked:    document.MaskPhone(value),
	})
}
