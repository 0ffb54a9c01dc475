package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/crucial707/scim-provision/internal/metrics"
	"github.com/crucial707/scim-provision/internal/repo"
	"github.com/crucial707/scim-provision/internal/scim"
	"github.com/go-chi/chi/v5"
)

// ScimHandler serves the /Users resource. Authentication happens in
// middleware before any of these methods run; each method only performs
// store operations and SCIM envelope shaping.
type ScimHandler struct {
	Repo *repo.EmployeeRepo
}

// Get serves both filtered collection queries and single-resource lookups.
// A filter query parameter always wins; otherwise the final path segment is
// treated as the resource id. A collection GET without a filter therefore
// falls through to an id lookup that cannot succeed, and 404s.
func (h *ScimHandler) Get(w http.ResponseWriter, r *http.Request) {
	if filter := r.URL.Query().Get("filter"); filter != "" {
		h.getByFilter(w, r, filter)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	employee, err := h.Repo.GetByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("scim: get employee", "id", id, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, scim.NewUserResource(employee))
}

func (h *ScimHandler) getByFilter(w http.ResponseWriter, r *http.Request, filter string) {
	_, username := scim.ParseFilter(filter)

	employees, err := h.Repo.FindByUsername(r.Context(), username)
	if err != nil {
		slog.Error("scim: filter employees", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	// Zero matches is a successful, empty ListResponse, never a 404.
	writeJSON(w, http.StatusOK, scim.NewListResponse(employees))
}

// Create provisions a new employee. Mirrors the permissive inbound contract:
// a missing userName is stored as an empty string, and meta accepts any JSON
// value, persisted as its serialized text (absent meta stores "null").
func (h *ScimHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UserName string          `json:"userName"`
		Meta     json.RawMessage `json:"meta"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	meta := "null"
	if len(input.Meta) > 0 {
		meta = string(input.Meta)
	}

	employee, err := h.Repo.Create(r.Context(), input.UserName, meta)
	if err != nil {
		slog.Error("scim: create employee", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.IncProvisioningOps("create")
	writeJSON(w, http.StatusCreated, scim.NewUserResource(employee))
}

// Patch applies SCIM PatchOp replace operations. Only the username and meta
// paths are writable; every other path is an explicit no-op that leaves the
// resource clean, and ops other than replace (add, remove) are ignored
// outright. The row is written once, and only if something changed.
func (h *ScimHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	employee, err := h.Repo.GetByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("scim: patch lookup", "id", id, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	var doc scim.PatchOp
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	username := employee.Username
	meta := employee.Meta
	dirty := false
	for _, op := range doc.Operations {
		if !strings.EqualFold(op.Op, "replace") {
			continue
		}
		switch strings.ToLower(op.Path) {
		case "username":
			username = stringValue(op.Value)
			dirty = true
		case "meta":
			b, err := json.Marshal(op.Value)
			if err != nil {
				continue
			}
			meta = string(b)
			dirty = true
		default:
			// Unknown path: ignore without dirtying the resource.
		}
	}

	if dirty {
		employee, err = h.Repo.Update(r.Context(), id, username, meta)
		if err != nil {
			slog.Error("scim: patch update", "id", id, "error", err)
			JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
			return
		}
		metrics.IncProvisioningOps("update")
	}

	writeJSON(w, http.StatusOK, scim.NewUserResource(employee))
}

// Delete removes an employee and returns 204 with an empty body.
func (h *ScimHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	err = h.Repo.Delete(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("scim: delete employee", "id", id, "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.IncProvisioningOps("delete")
	w.WriteHeader(http.StatusNoContent)
}

// stringValue renders a patch value destined for the username column. String
// values pass through; anything else keeps its JSON form.
func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
