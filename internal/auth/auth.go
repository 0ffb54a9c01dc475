// Package auth issues and verifies the bearer tokens used by the SCIM API.
// Tokens are HS256-signed JWTs carrying a customer_id claim and no expiry:
// they stay valid until the signing secret rotates.
package auth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// CustomerIDClaim is the claim key carrying the tenant identity.
const CustomerIDClaim = "customer_id"

// signingMethods pins verification to HS256. Tokens signed with any other
// algorithm (including "none") are rejected, never reinterpreted.
var signingMethods = []string{"HS256"}

// Issuer mints bearer tokens for a fixed customer identity.
type Issuer struct {
	secret     []byte
	customerID string
}

// NewIssuer returns an Issuer signing with secret on behalf of customerID.
func NewIssuer(secret []byte, customerID string) *Issuer {
	return &Issuer{secret: secret, customerID: customerID}
}

// Issue signs a token containing only the customer_id claim. No exp claim is
// embedded.
func (i *Issuer) Issue() (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		CustomerIDClaim: i.customerID,
	})
	return token.SignedString(i.secret)
}

// Authenticator validates bearer tokens against the shared secret.
type Authenticator struct {
	secret []byte
}

// NewAuthenticator returns an Authenticator for the given secret.
func NewAuthenticator(secret []byte) *Authenticator {
	return &Authenticator{secret: secret}
}

// Authenticate strips the "Bearer " prefix from an Authorization header
// value and verifies the remaining token. An absent header or empty token
// fails without attempting verification. Every verification failure
// (malformed token, bad signature, wrong algorithm) collapses to
// (nil, false); the reason is not surfaced.
func (a *Authenticator) Authenticate(header string) (jwt.MapClaims, bool) {
	tokenStr := strings.TrimPrefix(header, "Bearer ")
	if tokenStr == "" {
		return nil, false
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods(signingMethods))
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	return claims, true
}
