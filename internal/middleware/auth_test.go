// AngelaMos | 2026
// auth_test.go

package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/store-ratings/internal/core"
	"github.com/carterperez-dev/store-ratings/internal/middleware"
	"github.com/carterperez-dev/store-ratings/internal/policy"
)

type stubVerifier struct {
	tokens map[string]*middleware.AccessTokenClaims
}

func (s stubVerifier) VerifyAccessToken(
	_ context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	if c, ok := s.tokens[token]; ok {
		return c, nil
	}
	if token == "expired" {
		return nil, core.ErrTokenExpired
	}
	return nil, errors.New("signature mismatch")
}

func newVerifier() stubVerifier {
	return stubVerifier{tokens: map[string]*middleware.AccessTokenClaims{
		"good": {
			UserID:    "u-1",
			Role:      policy.RoleOwner,
			TokenID:   "jti-1",
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}}
}

func TestResolve(t *testing.T) {
	v := newVerifier()
	ctx := context.Background()

	claims, err := middleware.Resolve(ctx, v, "good")
	require.NoError(t, err)
	assert.Equal(t, &policy.Subject{ID: "u-1", Role: policy.RoleOwner}, claims.Subject())

	_, err = middleware.Resolve(ctx, v, "")
	assert.ErrorIs(t, err, middleware.ErrMissingCredential)
	assert.ErrorIs(t, err, core.ErrUnauthorized)

	for _, token := range []string{"expired", "forged"} {
		_, err = middleware.Resolve(ctx, v, token)
		assert.ErrorIs(t, err, middleware.ErrInvalidCredential, token)
		assert.ErrorIs(t, err, core.ErrUnauthorized, token)
	}
}

func TestAuthenticator_PlacesSubjectInContext(t *testing.T) {
	var got *policy.Subject
	h := middleware.Authenticator(newVerifier())(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			got = middleware.SubjectFrom(r.Context())
			assert.Equal(t, "jti-1", middleware.ClaimsFrom(r.Context()).TokenID)
			w.WriteHeader(http.StatusNoContent)
		},
	))

	req := httptest.NewRequest(http.MethodGet, "/stores", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "u-1", got.ID)
	assert.True(t, got.Is(policy.RoleOwner))
}

func TestAuthenticator_FailuresAreIndistinguishable(t *testing.T) {
	h := middleware.Authenticator(newVerifier())(http.HandlerFunc(
		func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler must not run")
		},
	))

	headers := []string{"", "Bearer ", "Basic good", "Bearer expired", "Bearer forged"}
	var bodies []string

	for _, header := range headers {
		req := httptest.NewRequest(http.MethodGet, "/stores", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
		bodies = append(bodies, rec.Body.String())
	}

	for _, b := range bodies[1:] {
		assert.Equal(t, bodies[0], b)
	}

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodies[0]), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
	assert.Equal(t, "invalid or missing credentials", body.Error.Message)
}

func TestSubjectFrom_Anonymous(t *testing.T) {
	assert.Nil(t, middleware.SubjectFrom(context.Background()))
	assert.Nil(t, middleware.ClaimsFrom(context.Background()))
}
