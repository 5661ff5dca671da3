// AngelaMos | 2026
// repository.go

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/store-ratings/internal/core"
)

const ownerConstraint = "uq_stores_owner_id"

var (
	ErrOwnerHasStore = fmt.Errorf("owner already has a store: %w", core.ErrDuplicateKey)
	ErrUnknownOwner  = fmt.Errorf("owner does not exist: %w", core.ErrInvalidInput)
)

type Repository interface {
	Create(ctx context.Context, store *Store) error
	GetByID(ctx context.Context, id string) (*Store, error)
	Update(ctx context.Context, store *Store) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListStoresParams) ([]Listing, error)
	OwnerID(ctx context.Context, storeID string) (string, error)
	Count(ctx context.Context) (int, error)
	TopRated(ctx context.Context, limit int) ([]Listing, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const storeColumns = `id, name, email, address, owner_id, created_at, updated_at`

const listingSelect = `
	SELECT s.id, s.name, s.email, s.address, s.owner_id, s.created_at, s.updated_at,
	       COALESCE(AVG(r.rating), 0)::float8 AS avg_rating,
	       COUNT(r.id) AS rating_count
	FROM stores s
	LEFT JOIN ratings r ON r.store_id = s.id`

func writeErr(op string, err error) error {
	switch {
	case core.IsUniqueViolation(err):
		if core.ViolatedConstraint(err) == ownerConstraint {
			return fmt.Errorf("%s: %w", op, ErrOwnerHasStore)
		}
		return fmt.Errorf("%s: %w", op, core.ErrDuplicateKey)
	case core.IsForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, ErrUnknownOwner)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func (r *repository) Create(ctx context.Context, store *Store) error {
	query := `
		INSERT INTO stores (id, name, email, address, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		store.ID,
		store.Name,
		store.Email,
		store.Address,
		store.OwnerID,
	).Scan(&store.CreatedAt, &store.UpdatedAt)
	if err != nil {
		return writeErr("create store", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`

	var store Store
	err := r.db.GetContext(ctx, &store, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get store: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}

	return &store, nil
}

func (r *repository) Update(ctx context.Context, store *Store) error {
	query := `
		UPDATE stores
		SET name = $2, email = $3, address = $4, owner_id = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &store.UpdatedAt, query,
		store.ID,
		store.Name,
		store.Email,
		store.Address,
		store.OwnerID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update store: %w", core.ErrNotFound)
	}
	if err != nil {
		return writeErr("update store", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete store: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete store: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListStoresParams,
) ([]Listing, error) {
	conditions := []string{"TRUE"}
	var args []any

	if params.Name != "" {
		args = append(args, core.ContainsPattern(params.Name))
		conditions = append(conditions, fmt.Sprintf("s.name ILIKE $%d", len(args)))
	}
	if params.Address != "" {
		args = append(args, core.ContainsPattern(params.Address))
		conditions = append(conditions, fmt.Sprintf("s.address ILIKE $%d", len(args)))
	}

	query := listingSelect + `
		WHERE ` + strings.Join(conditions, " AND ") + `
		GROUP BY s.id
		ORDER BY s.name ASC, s.id ASC`

	rows := []Listing{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	return rows, nil
}

// OwnerID returns "" for a store without an owner.
func (r *repository) OwnerID(ctx context.Context, storeID string) (string, error) {
	var owner sql.NullString
	err := r.db.GetContext(ctx, &owner, `SELECT owner_id FROM stores WHERE id = $1`, storeID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("store owner: %w", core.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("store owner: %w", err)
	}

	return owner.String, nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM stores`); err != nil {
		return 0, fmt.Errorf("count stores: %w", err)
	}
	return n, nil
}

// TopRated ranks stores by average rating. Stores nobody has rated sort
// last, and equal averages fall back to id.
func (r *repository) TopRated(ctx context.Context, limit int) ([]Listing, error) {
	query := listingSelect + `
		GROUP BY s.id
		ORDER BY (COUNT(r.id) = 0) ASC, avg_rating DESC, s.id ASC
		LIMIT $1`

	rows := []Listing{}
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("top rated stores: %w", err)
	}

	return rows, nil
}
