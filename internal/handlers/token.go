package handlers

import (
	"log/slog"
	"net/http"

	"github.com/crucial707/scim-provision/internal/auth"
)

// TokenHandler serves the bootstrap token endpoint. The endpoint is
// deliberately unauthenticated: any caller receives a token for the
// configured customer identity. That trust boundary is part of the observed
// contract; the route is rate limited but takes no credentials.
type TokenHandler struct {
	Issuer *auth.Issuer
}

// Issue mints a bearer token and returns it as {"token": t}.
func (h *TokenHandler) Issue(w http.ResponseWriter, r *http.Request) {
	token, err := h.Issuer.Issue()
	if err != nil {
		slog.Error("token: sign", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
