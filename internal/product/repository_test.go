// AngelaMos | 2026
// repository_test.go

package product

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
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

func TestRepositoryCreate_ConstraintMapping(t *testing.T) {
	cases := []struct {
		name string
		pg   *pgconn.PgError
		want error
	}{
		{"missing store", &pgconn.PgError{Code: "23503", ConstraintName: "products_store_id_fkey"}, core.ErrNotFound},
		{"price check", &pgconn.PgError{Code: "23514", ConstraintName: "products_price_check"}, core.ErrInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)

			mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO products`)).WillReturnError(tc.pg)

			err := repo.Create(context.Background(), &Product{
				ID:      "p-1",
				Name:    "Pin",
				Price:   decimal.RequireFromString("1.00"),
				StoreID: "s-1",
			})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
