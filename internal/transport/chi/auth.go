package chi

import (
	"context"
	"net/http"
	"strings"

	gen "github.com/kailas-cloud/snapdex/internal/transport/generated"
)

// DefaultOwner owns every item when authentication is disabled.
const DefaultOwner = "default"

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

type ownerKey struct{}

// ContextWithOwner stores the authenticated owner in the context.
func ContextWithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, ownerKey{}, owner)
}

// OwnerFromContext returns the authenticated owner, "" if none.
func OwnerFromContext(ctx context.Context) string {
	owner, _ := ctx.Value(ownerKey{}).(string)
	return owner
}

// BearerAuthMiddleware resolves Bearer tokens to owners.
// tokens maps token to owner id. If it is empty, authentication is disabled
// and every request acts as DefaultOwner.
func BearerAuthMiddleware(tokens map[string]string) func(http.Handler) http.Handler {
	owners := make(map[string]string, len(tokens))
	for token, owner := range tokens {
		if token != "" && owner != "" {
			owners[token] = owner
		}
	}

	return func(next http.Handler) http.Handler {
		if len(owners) == 0 {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(ContextWithOwner(r.Context(), DefaultOwner)))
			})
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				writeError(w, http.StatusUnauthorized, gen.ErrorResponseCodeUnauthorized, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized,
					gen.ErrorResponseCodeUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			owner, ok := owners[auth[len(bearerPrefix):]]
			if !ok {
				writeError(w, http.StatusUnauthorized, gen.ErrorResponseCodeUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithOwner(r.Context(), owner)))
		})
	}
}
