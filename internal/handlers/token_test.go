package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crucial707/scim-provision/internal/auth"
)

func TestTokenHandler_Issue(t *testing.T) {
	secret := []byte("test-secret")
	h := &TokenHandler{Issuer: auth.NewIssuer(secret, "acme")}

	req := httptest.NewRequest("GET", "/token", nil)
	rr := httptest.NewRecorder()
	h.Issue(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Issue status: got %d, want 200", rr.Code)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil || out.Token == "" {
		t.Fatalf("token response: %v (token %q)", err, out.Token)
	}

	// The minted token must authenticate against the same secret and carry
	// the configured customer identity.
	claims, ok := auth.NewAuthenticator(secret).Authenticate("Bearer " + out.Token)
	if !ok {
		t.Fatal("issued token failed verification")
	}
	if claims[auth.CustomerIDClaim] != "acme" {
		t.Errorf("customer_id: got %v, want acme", claims[auth.CustomerIDClaim])
	}
}
