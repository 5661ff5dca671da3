// AngelaMos | 2026
// core_test.go

package core_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/store-ratings/internal/core"
)

func TestToAppError_Taxonomy(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("x: %w", core.ErrInvalidInput), http.StatusBadRequest, "VALIDATION_ERROR"},
		{fmt.Errorf("x: %w", core.ErrUnauthorized), http.StatusUnauthorized, "UNAUTHORIZED"},
		{fmt.Errorf("x: %w", core.ErrTokenExpired), http.StatusUnauthorized, "UNAUTHORIZED"},
		{fmt.Errorf("x: %w", core.ErrTokenRevoked), http.StatusUnauthorized, "UNAUTHORIZED"},
		{fmt.Errorf("x: %w", core.ErrForbidden), http.StatusForbidden, "FORBIDDEN"},
		{fmt.Errorf("x: %w", core.ErrDuplicateKey), http.StatusConflict, "CONFLICT"},
		{fmt.Errorf("x: %w", core.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		appErr := core.ToAppError(tt.err)
		assert.Equal(t, tt.status, appErr.StatusCode, tt.err.Error())
		assert.Equal(t, tt.code, appErr.Code, tt.err.Error())
	}
}

func TestJSONError_HidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	core.JSONError(rec, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password authentication")
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestPaginated_Meta(t *testing.T) {
	rec := httptest.NewRecorder()
	core.Paginated(rec, []int{1, 2}, 2, 10, 21)

	assert.Contains(t, rec.Body.String(), `"total_pages":3`)
	assert.Contains(t, rec.Body.String(), `"page":2`)
}

func TestPgErrorHelpers(t *testing.T) {
	unique := fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23505", ConstraintName: "stores_email_key"})
	fk := &pgconn.PgError{Code: "23503"}

	assert.True(t, core.IsUniqueViolation(unique))
	assert.False(t, core.IsUniqueViolation(fk))
	assert.True(t, core.IsForeignKeyViolation(fk))
	assert.True(t, core.IsCheckViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, core.IsCheckViolation(fk))
	assert.Equal(t, "stores_email_key", core.ViolatedConstraint(unique))
	assert.Empty(t, core.ViolatedConstraint(errors.New("plain")))
}

func TestContainsPattern_EscapesMetacharacters(t *testing.T) {
	assert.Equal(t, "%main%", core.ContainsPattern("main"))
	assert.Equal(t, `%100\%\_off%`, core.ContainsPattern("100%_off"))
	assert.Equal(t, `%a\\b%`, core.ContainsPattern(`a\b`))
}

func TestIDParam(t *testing.T) {
	var got string
	var gotErr error

	r := chi.NewRouter()
	r.Get("/stores/{storeID}", func(_ http.ResponseWriter, req *http.Request) {
		got, gotErr = core.IDParam(req, "storeID")
	})

	id := uuid.NewString()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/stores/"+id, nil))
	require.NoError(t, gotErr)
	assert.Equal(t, id, got)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/stores/1;DROP", nil))
	assert.ErrorIs(t, gotErr, core.ErrInvalidInput)
}

func TestDecodeJSON_RejectsGarbage(t *testing.T) {
	var dst struct{ Name string }

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	err := core.DecodeJSON(httptest.NewRecorder(), req, &dst)
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok","extra":1}`))
	require.NoError(t, core.DecodeJSON(httptest.NewRecorder(), req, &dst))
	assert.Equal(t, "ok", dst.Name)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := core.HashPassword("Str0ng!pw")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := core.VerifyPassword("Str0ng!pw", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = core.VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, _, err = core.VerifyPasswordTimingSafe("anything", nil)
	require.NoError(t, err)
	assert.False(t, ok)
}
