package mwauth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"ticketflow/internal/auth"
	"ticketflow/internal/lib/api/response"
	"ticketflow/internal/lib/logger/sl"
)

type ctxKey struct{}

// TokenVerifier validates a bearer token and yields the caller identity.
//
//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TokenVerifier
type TokenVerifier interface {
	Verify(tokenStr string) (*auth.Identity, error)
}

// Caller is what handlers read from the request context.
type Caller struct {
	auth.Identity
	// IsService is set when the bearer equals the configured internal
	// service credential instead of a user token.
	IsService bool
	// Token is the raw bearer, forwarded on downstream calls.
	Token string
}

// New returns middleware enforcing a valid bearer token. When serviceToken
// is non-empty and the bearer equals it, the request is admitted as an
// internal service call without token verification.
func New(log *slog.Logger, verifier TokenVerifier, serviceToken string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			const op = "middleware.mwauth.New"

			bearer := BearerToken(r)
			if bearer == "" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing bearer token"))
				return
			}

			if serviceToken != "" && bearer == serviceToken {
				next.ServeHTTP(w, r.WithContext(withCaller(r.Context(), &Caller{
					IsService: true,
					Token:     bearer,
				})))
				return
			}

			identity, err := verifier.Verify(bearer)
			if err != nil {
				log.Error("token verification failed", slog.String("op", op), sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(withCaller(r.Context(), &Caller{
				Identity: *identity,
				Token:    bearer,
			})))
		}

		return http.HandlerFunc(fn)
	}
}

func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func withCaller(ctx context.Context, c *Caller) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the authenticated caller, or nil on unprotected routes.
func FromContext(ctx context.Context) *Caller {
	c, _ := ctx.Value(ctxKey{}).(*Caller)
	return c
}

// WithTestCaller injects a caller directly, used in handler tests.
func WithTestCaller(ctx context.Context, c *Caller) context.Context {
	return withCaller(ctx, c)
}
