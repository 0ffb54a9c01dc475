package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crucial707/scim-provision/internal/auth"
)

func TestRequireAuth(t *testing.T) {
	secret := []byte("test-secret")
	token, err := auth.NewIssuer(secret, "acme").Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var seenCustomer string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenCustomer, _ = GetCustomerID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := RequireAuth(auth.NewAuthenticator(secret))(next)

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/Users/1", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
		if seenCustomer != "acme" {
			t.Errorf("customer_id on context: got %q, want acme", seenCustomer)
		}
	})

	for _, tt := range []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"garbage without bearer prefix", "something-else"},
		{"garbage token", "Bearer garbage"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/Users/1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			protected.ServeHTTP(rr, req)

			if rr.Code != http.StatusForbidden {
				t.Errorf("status: got %d, want 403", rr.Code)
			}
			if rr.Body.Len() != 0 {
				t.Errorf("403 must have an empty body, got: %s", rr.Body.String())
			}
		})
	}
}
