// AngelaMos | 2026
// service.go

package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/store-ratings/internal/core"
	"github.com/carterperez-dev/store-ratings/internal/policy"
	"github.com/carterperez-dev/store-ratings/internal/validation"
)

// StoreOwners resolves the owner of a store: "" when it has none,
// core.ErrNotFound when the store does not exist.
type StoreOwners interface {
	OwnerID(ctx context.Context, storeID string) (string, error)
}

type Service struct {
	repo   Repository
	stores StoreOwners
}

func NewService(repo Repository, stores StoreOwners) *Service {
	return &Service{repo: repo, stores: stores}
}

// Create adds a product to a store. Only the owner of that store may do so.
func (s *Service) Create(
	ctx context.Context,
	subject *policy.Subject,
	req CreateProductRequest,
) (*Product, error) {
	ctx, span := core.StartSpan(ctx, "product.Create",
		attribute.String("store.id", req.StoreID),
	)
	defer span.End()

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	// Subjects that could never own a store stop here, whether or not the
	// store exists.
	precheck := policy.Resource{OwnerID: subject.GetID()}
	if err := policy.Authorize(subject, policy.ActionProductCreate, precheck); err != nil {
		return nil, err
	}

	ownerID, err := s.stores.OwnerID(ctx, req.StoreID)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	err = policy.Authorize(subject, policy.ActionProductCreate, policy.Resource{OwnerID: ownerID})
	if err != nil {
		return nil, err
	}

	product := &Product{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		StoreID:     req.StoreID,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	return product, nil
}

func (s *Service) ListByStore(
	ctx context.Context,
	subject *policy.Subject,
	storeID string,
) ([]Product, error) {
	if err := policy.Authorize(subject, policy.ActionProductList, policy.Resource{}); err != nil {
		return nil, err
	}

	if _, err := s.stores.OwnerID(ctx, storeID); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return s.repo.ListByStore(ctx, storeID)
}
