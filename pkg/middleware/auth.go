package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/utafrali/wishlist/pkg/httputil"
	"github.com/utafrali/wishlist/pkg/logger"
)

type contextKeyType string

const principalKey contextKeyType = "principal_id"

// Claims is what a TokenValidator extracts from a bearer token.
type Claims struct {
	Subject string
	Email   string
}

// TokenValidator validates a raw bearer token and returns its claims.
type TokenValidator func(token string) (*Claims, error)

// Auth resolves the bearer token into a numeric principal id and stores it
// in the request context. Requests without a valid token, or whose subject
// is not a positive integer, get a 401 envelope and never reach next.
func Auth(validate TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				writeUnauthorized(w, r)
				return
			}

			claims, err := validate(token)
			if err != nil {
				logger.FromContext(r.Context()).DebugContext(r.Context(), "token rejected", "error", err.Error())
				writeUnauthorized(w, r)
				return
			}

			id, err := strconv.ParseInt(claims.Subject, 10, 64)
			if err != nil || id <= 0 {
				writeUnauthorized(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, id)
			ctx = logger.WithPrincipalID(ctx, claims.Subject)
			ctx = logger.NewContext(ctx, logger.FromContext(ctx).With("user_id", claims.Subject))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext returns the authenticated principal id set by Auth.
func PrincipalFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(principalKey).(int64)
	return id, ok
}

// WithPrincipal stores a principal id the way Auth does. Handler tests use it
// to bypass token validation.
func WithPrincipal(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, principalKey, id)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request) {
	httputil.WriteFailure(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthenticated.")
}
