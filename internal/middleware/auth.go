// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/carterperez-dev/store-ratings/internal/core"
	"github.com/carterperez-dev/store-ratings/internal/policy"
)

const (
	SubjectKey contextKey = "subject"
	ClaimsKey  contextKey = "jwt_claims"
)

// Both render as the same 401 so a caller cannot tell an absent credential
// from a forged, expired or revoked one.
var (
	ErrMissingCredential = fmt.Errorf("missing credential: %w", core.ErrUnauthorized)
	ErrInvalidCredential = fmt.Errorf("invalid credential: %w", core.ErrUnauthorized)
)

type TokenVerifier interface {
	VerifyAccessToken(
		ctx context.Context,
		token string,
	) (*AccessTokenClaims, error)
}

type AccessTokenClaims struct {
	UserID    string
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

func (c *AccessTokenClaims) Subject() *policy.Subject {
	return &policy.Subject{ID: c.UserID, Role: c.Role}
}

// Resolve turns a raw bearer token into verified claims.
func Resolve(
	ctx context.Context,
	verifier TokenVerifier,
	token string,
) (*AccessTokenClaims, error) {
	if token == "" {
		return nil, ErrMissingCredential
	}

	claims, err := verifier.VerifyAccessToken(ctx, token)
	if err != nil {
		slog.DebugContext(ctx, "credential rejected", "error", err)
		return nil, ErrInvalidCredential
	}

	if claims.UserID == "" || claims.Role == "" {
		return nil, ErrInvalidCredential
	}

	return claims, nil
}

func Authenticator(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := Resolve(r.Context(), verifier, ExtractToken(r))
			if err != nil {
				core.JSONError(w, core.UnauthorizedError(""))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// WithClaims stores verified claims and the Subject derived from them.
func WithClaims(ctx context.Context, claims *AccessTokenClaims) context.Context {
	ctx = context.WithValue(ctx, ClaimsKey, claims)
	return context.WithValue(ctx, SubjectKey, claims.Subject())
}

// SubjectFrom returns the authenticated subject, or nil for an anonymous
// request.
func SubjectFrom(ctx context.Context) *policy.Subject {
	if s, ok := ctx.Value(SubjectKey).(*policy.Subject); ok {
		return s
	}
	return nil
}

func ClaimsFrom(ctx context.Context) *AccessTokenClaims {
	if claims, ok := ctx.Value(ClaimsKey).(*AccessTokenClaims); ok {
		return claims
	}
	return nil
}
