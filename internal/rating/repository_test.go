// AngelaMos | 2026
// repository_test.go

package rating

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

func TestUpsert_IsASingleConflictResolvingStatement(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO ratings .+ ON CONFLICT \(user_id, store_id\)\s+DO UPDATE SET rating = EXCLUDED\.rating, updated_at = NOW\(\)\s+RETURNING`).
		WithArgs(sqlmock.AnyArg(), "user-1", "store-1", 4).
		WillReturnRows(sqlmock.NewRows([]string{"id", "rating", "created_at", "updated_at"}).
			AddRow("existing-id", 4, now.Add(-time.Hour), now))

	rt := &Rating{ID: "fresh-id", UserID: "user-1", StoreID: "store-1", Value: 4}
	require.NoError(t, repo.Upsert(context.Background(), rt))

	assert.Equal(t, "existing-id", rt.ID)
	assert.Equal(t, 4, rt.Value)
	assert.Equal(t, now, rt.UpdatedAt)
}

func TestUpsert_UnknownStoreIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO ratings`)).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_ratings_store"})

	err := repo.Upsert(context.Background(), &Rating{ID: "x", UserID: "u", StoreID: "missing", Value: 3})
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.NotErrorIs(t, err, core.ErrUnauthorized)
}

func TestUpsert_DeletedRaterIsUnauthorized(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO ratings`)).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_ratings_user"})

	err := repo.Upsert(context.Background(), &Rating{ID: "x", UserID: "gone", StoreID: "s", Value: 3})
	assert.ErrorIs(t, err, ErrUnknownRater)
	assert.ErrorIs(t, err, core.ErrUnauthorized)
	assert.NotErrorIs(t, err, core.ErrNotFound)
}

func TestAverage_CoalescesToZero(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(AVG(rating), 0)::float8`)).
		WithArgs("store-1").
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(0.0))

	avg, err := repo.Average(context.Background(), "store-1")
	require.NoError(t, err)
	assert.Zero(t, avg)
}

func TestListByStore_JoinsRater(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`JOIN users u ON u.id = r.user_id`)).
		WithArgs("store-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "store_id", "rating", "created_at", "updated_at",
			"user_name", "user_email",
		}).AddRow("r-1", "u-1", "store-1", 5, now, now, "Rae Rater", "rae@example.com"))

	rows, err := repo.ListByStore(context.Background(), "store-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].Value)
	assert.Equal(t, "Rae Rater", rows[0].UserName)
	assert.Equal(t, "rae@example.com", rows[0].UserEmail)
}
