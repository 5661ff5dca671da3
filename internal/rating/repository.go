// AngelaMos | 2026
// repository.go

package rating

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/store-ratings/internal/core"
)

const raterConstraint = "fk_ratings_user"

// ErrUnknownRater means the credential's user no longer exists.
var ErrUnknownRater = fmt.Errorf("rater not found: %w", core.ErrUnauthorized)

type Repository interface {
	Upsert(ctx context.Context, r *Rating) error
	GetByUserAndStore(ctx context.Context, userID, storeID string) (*Rating, error)
	ListByStore(ctx context.Context, storeID string) ([]StoreRating, error)
	ListAll(ctx context.Context) ([]DetailedRating, error)
	Average(ctx context.Context, storeID string) (float64, error)
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

// Upsert inserts the rating or overwrites the value of the existing row for
// the same user and store in one statement. Concurrent submissions serialize
// on the unique constraint, so the pair never holds more than one row and
// the last writer's value is the one kept.
func (r *repository) Upsert(ctx context.Context, rt *Rating) error {
	query := `
		INSERT INTO ratings (id, user_id, store_id, rating)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, store_id)
		DO UPDATE SET rating = EXCLUDED.rating, updated_at = NOW()
		RETURNING id, rating, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		rt.ID,
		rt.UserID,
		rt.StoreID,
		rt.Value,
	).Scan(&rt.ID, &rt.Value, &rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		if core.IsForeignKeyViolation(err) {
			if core.ViolatedConstraint(err) == raterConstraint {
				return fmt.Errorf("upsert rating: %w", ErrUnknownRater)
			}
			return fmt.Errorf("upsert rating: %w", core.ErrNotFound)
		}
		return fmt.Errorf("upsert rating: %w", err)
	}

	return nil
}

func (r *repository) GetByUserAndStore(
	ctx context.Context,
	userID, storeID string,
) (*Rating, error) {
	query := `
		SELECT id, user_id, store_id, rating, created_at, updated_at
		FROM ratings
		WHERE user_id = $1 AND store_id = $2`

	var rt Rating
	err := r.db.GetContext(ctx, &rt, query, userID, storeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get rating: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get rating: %w", err)
	}

	return &rt, nil
}

func (r *repository) ListByStore(
	ctx context.Context,
	storeID string,
) ([]StoreRating, error) {
	query := `
		SELECT r.id, r.user_id, r.store_id, r.rating, r.created_at, r.updated_at,
		       u.name AS user_name, u.email AS user_email
		FROM ratings r
		JOIN users u ON u.id = r.user_id
		WHERE r.store_id = $1
		ORDER BY r.updated_at DESC, r.id ASC`

	rows := []StoreRating{}
	if err := r.db.SelectContext(ctx, &rows, query, storeID); err != nil {
		return nil, fmt.Errorf("list store ratings: %w", err)
	}

	return rows, nil
}

func (r *repository) ListAll(ctx context.Context) ([]DetailedRating, error) {
	query := `
		SELECT r.id, r.user_id, r.store_id, r.rating, r.created_at, r.updated_at,
		       u.name AS user_name, u.email AS user_email, s.name AS store_name
		FROM ratings r
		JOIN users u ON u.id = r.user_id
		JOIN stores s ON s.id = r.store_id
		ORDER BY r.updated_at DESC, r.id ASC`

	rows := []DetailedRating{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}

	return rows, nil
}

// Average is computed on every call and is 0 when the store has no ratings.
func (r *repository) Average(ctx context.Context, storeID string) (float64, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0)::float8
		FROM ratings
		WHERE store_id = $1`

	var avg float64
	if err := r.db.GetContext(ctx, &avg, query, storeID); err != nil {
		return 0, fmt.Errorf("average rating: %w", err)
	}

	return avg, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM ratings`); err != nil {
		return 0, fmt.Errorf("count ratings: %w", err)
	}
	return n, nil
}
