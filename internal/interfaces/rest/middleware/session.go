package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
	"github.com/DanielPopoola/ficmart-storefront/internal/infrastructure/session"
	"github.com/DanielPopoola/ficmart-storefront/internal/interfaces/rest"
)

type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*session.Claims, error)
}

type principalKey struct{}

type Principal struct {
	Email string
	Token string
}

// PrincipalFromContext returns the authenticated caller set by RequireSession.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// RequireSession accepts a bearer token or the session cookie.
func RequireSession(verifier SessionVerifier, cookieName string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r, cookieName)
			if token == "" {
				rest.WriteError(w, domain.ErrUnauthenticated, logger)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				rest.WriteError(w, err, logger)
				return
			}

			ctx := WithPrincipal(r.Context(), Principal{Email: claims.Email, Token: token})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func TokenFromRequest(r *http.Request, cookieName string) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		scheme, token, ok := strings.Cut(auth, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}
