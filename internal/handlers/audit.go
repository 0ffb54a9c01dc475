package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/crucial707/scim-provision/internal/middleware"
	"github.com/crucial707/scim-provision/internal/repo"
)

// AuditHandler serves the audit log read endpoint.
type AuditHandler struct {
	Repo *repo.AuditRepo
}

// List returns recent audit records, newest first. Query: limit (default 50,
// max 200), offset (default 0).
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 50
	offset := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil && val > 0 && val <= 200 {
			limit = val
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if val, err := strconv.Atoi(o); err == nil && val >= 0 {
			offset = val
		}
	}

	records, err := h.Repo.List(r.Context(), limit, offset)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if customerID, ok := middleware.GetCustomerID(r.Context()); ok {
		slog.Info("audit log read", "customer_id", customerID, "limit", limit, "offset", offset)
	}

	writeJSON(w, http.StatusOK, records)
}
