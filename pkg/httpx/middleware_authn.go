package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/boardify/pkg/slogx"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "boardify_session"

// SessionResolver turns a raw session token into the caller it belongs to.
// It returns an error for unknown or expired tokens.
type SessionResolver interface {
	ResolvePrincipal(ctx context.Context, token string) (Principal, error)
}

// TokenFromRequest extracts the session token from the session cookie,
// falling back to an "Authorization: Bearer" header for API clients.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	authz := r.Header.Get("Authorization")
	if strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	}
	return ""
}

// AuthnMiddleware rejects requests without a valid session with 401 and
// injects the resolved Principal otherwise.
func AuthnMiddleware(resolver SessionResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := TokenFromRequest(r)
			if token == "" {
				WriteError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}

			principal, err := resolver.ResolvePrincipal(ctx, token)
			if err != nil {
				slogx.FromContext(ctx).Debug("session resolve failed", "err", err)
				WriteError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}

			ctx = ContextWithPrincipal(ctx, principal, token)
			ctx = slogx.WithUserID(ctx, principal.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthnMiddleware injects the Principal when a valid session is
// present and otherwise passes the request through untouched.
func OptionalAuthnMiddleware(resolver SessionResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			if principal, err := resolver.ResolvePrincipal(ctx, token); err == nil {
				ctx = ContextWithPrincipal(ctx, principal, token)
				ctx = slogx.WithUserID(ctx, principal.UserID)
			} else {
				// Keep the token so logout can still clear an expired cookie.
				ctx = context.WithValue(ctx, CtxKeyToken, token)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SecurityHeaders adds conservative security headers to every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
