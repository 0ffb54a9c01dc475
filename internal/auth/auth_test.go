package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueThenAuthenticate(t *testing.T) {
	secret := []byte("test-secret")
	issuer := NewIssuer(secret, "acme")
	authn := NewAuthenticator(secret)

	token, err := issuer.Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, ok := authn.Authenticate("Bearer " + token)
	if !ok {
		t.Fatal("expected token to authenticate")
	}
	if got := claims[CustomerIDClaim]; got != "acme" {
		t.Errorf("customer_id claim: got %v, want acme", got)
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	authn := NewAuthenticator([]byte("test-secret"))

	otherSecret, err := NewIssuer([]byte("other-secret"), "acme").Issue()
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// HS384-signed token with the right secret must still be rejected:
	// the verification algorithm is pinned, not negotiated.
	hs384 := jwt.NewWithClaims(jwt.SigningMethodHS384, jwt.MapClaims{CustomerIDClaim: "acme"})
	hs384Signed, err := hs384.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign HS384: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"bearer with empty token", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
		{"garbage without bearer prefix", "not.a.jwt"},
		{"wrong secret", "Bearer " + otherSecret},
		{"wrong algorithm", "Bearer " + hs384Signed},
		{"unsigned token", "Bearer eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJjdXN0b21lcl9pZCI6ImFjbWUifQ."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, ok := authn.Authenticate(tt.header)
			if ok {
				t.Error("expected authentication to fail")
			}
			if claims != nil {
				t.Errorf("expected nil claims, got %v", claims)
			}
		})
	}
}

// Tokens carry no exp claim, so a token issued long ago still verifies.
func TestAuthenticate_NoExpiry(t *testing.T) {
	secret := []byte("test-secret")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		CustomerIDClaim: "acme",
		"iat":           1000000000, // year 2001
	})
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, ok := NewAuthenticator(secret).Authenticate("Bearer " + signed); !ok {
		t.Error("token without exp should never expire")
	}
}
