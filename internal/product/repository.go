// AngelaMos | 2026
// repository.go

package product

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/store-ratings/internal/core"
)

type Repository interface {
	Create(ctx context.Context, product *Product) error
	ListByStore(ctx context.Context, storeID string) ([]Product, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, product *Product) error {
	query := `
		INSERT INTO products (id, name, description, price, store_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.StoreID,
	).Scan(&product.CreatedAt)
	if err != nil {
		if core.IsForeignKeyViolation(err) {
			return fmt.Errorf("create product: %w", core.ErrNotFound)
		}
		if core.IsCheckViolation(err) {
			return fmt.Errorf("create product: %w", core.ErrInvalidInput)
		}
		return fmt.Errorf("create product: %w", err)
	}

	return nil
}

func (r *repository) ListByStore(ctx context.Context, storeID string) ([]Product, error) {
	query := `
		SELECT id, name, description, price, store_id, created_at
		FROM products
		WHERE store_id = $1
		ORDER BY created_at ASC, id ASC`

	products := []Product{}
	if err := r.db.SelectContext(ctx, &products, query, storeID); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return products, nil
}
