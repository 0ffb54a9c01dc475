package middleware

import (
	"context"
	"net/http"

	"github.com/crucial707/scim-provision/internal/auth"
)

type key string

// CustomerIDKey is the context key under which the authenticated token's
// customer_id claim is stored. Tenancy scoping itself is not implemented;
// the value is carried for logging and future use.
const CustomerIDKey key = "customer_id"

// RequireAuth verifies the bearer token on every request before the handler
// runs. Per the SCIM contract, any failure is a 403 with an empty body; no
// detail about the failure leaks to the caller.
func RequireAuth(a *auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := a.Authenticate(r.Header.Get("Authorization"))
			if !ok {
				w.WriteHeader(http.StatusForbidden)
				return
			}

			ctx := r.Context()
			if customerID, ok := claims[auth.CustomerIDClaim].(string); ok {
				ctx = context.WithValue(ctx, CustomerIDKey, customerID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetCustomerID returns the customer_id claim stored by RequireAuth.
func GetCustomerID(ctx context.Context) (string, bool) {
	customerID, ok := ctx.Value(CustomerIDKey).(string)
	return customerID, ok
}
