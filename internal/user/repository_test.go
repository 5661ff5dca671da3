// AngelaMos | 2026
// repository_test.go

package user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/store-ratings/internal/core"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

var userCols = []string{
	"id", "name", "email", "address", "password_hash", "role", "created_at", "updated_at",
}

func TestList_FiltersAndPagination(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT COUNT(*) FROM users WHERE TRUE AND name ILIKE $1 AND role = $2`)).
		WithArgs("%ann%", "owner").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(21))

	mock.ExpectQuery(`FROM users WHERE TRUE AND name ILIKE \$1 AND role = \$2 ORDER BY name ASC, id ASC LIMIT \$3 OFFSET \$4`).
		WithArgs("%ann%", "owner", 10, 10).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u1", "Anna Owner", "anna@x.test", "addr", "h", "owner", now, now))

	users, total, err := repo.List(context.Background(), ListUsersParams{
		Page:     2,
		PageSize: 10,
		Name:     "ann",
		Role:     "owner",
	})
	require.NoError(t, err)
	assert.Equal(t, 21, total)
	require.Len(t, users, 1)
	assert.Equal(t, "Anna Owner", users[0].Name)
}

func TestCreate_UniqueViolationIsDuplicate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), &User{ID: "u", Email: "a@x.test"})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestUpdate_OwnerRoleGuard(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()
	u := &User{ID: "u-1", Name: "Olive", Email: "olive@x.test", Address: "1 Way", Role: "user"}

	mock.ExpectQuery(regexp.QuoteMeta(`NOT EXISTS (SELECT 1 FROM stores WHERE owner_id = $1)`)).
		WithArgs("u-1", "Olive", "olive@x.test", "1 Way", "user").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`)).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	assert.ErrorIs(t, repo.Update(ctx, u), ErrOwnsStore)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users`)).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	u.ID = "ghost"
	err := repo.Update(ctx, u)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NotErrorIs(t, err, ErrOwnsStore)
}

func TestDelete_MissingRowIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "ghost"), core.ErrNotFound)
}

func TestRecent_NewestFirst(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`ORDER BY created_at DESC, id ASC LIMIT \$1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u2", "Newer", "n@x.test", "a", "h", "user", now, now).
			AddRow("u1", "Older", "o@x.test", "a", "h", "user", now.Add(-time.Hour), now))

	users, err := repo.Recent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u2", users[0].ID)
}
