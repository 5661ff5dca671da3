// AngelaMos | 2026
// service.go

package rating

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/store-ratings/internal/core"
	"github.com/carterperez-dev/store-ratings/internal/policy"
	"github.com/carterperez-dev/store-ratings/internal/validation"
)

// StoreOwners resolves the owner of a store. It returns "" for a store
// without an owner and core.ErrNotFound for a store that does not exist.
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

// Submit records subject's rating for a store, replacing any earlier one.
func (s *Service) Submit(
	ctx context.Context,
	subject *policy.Subject,
	storeID string,
	req SubmitRatingRequest,
) (*Rating, error) {
	ctx, span := core.StartSpan(ctx, "rating.Submit",
		attribute.String("store.id", storeID),
	)
	defer span.End()

	if err := policy.Authorize(subject, policy.ActionRatingSubmit, policy.Resource{}); err != nil {
		return nil, err
	}

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	rt := &Rating{
		ID:      uuid.New().String(),
		UserID:  subject.ID,
		StoreID: storeID,
		Value:   req.Rating,
	}

	if err := s.repo.Upsert(ctx, rt); err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	core.AddSpanEvent(ctx, "rating.upserted",
		attribute.String("rating.id", rt.ID),
		attribute.Int("rating.value", rt.Value),
	)

	return rt, nil
}

// AverageRating is the mean of the store's current ratings, 0 when it has
// none.
func (s *Service) AverageRating(ctx context.Context, storeID string) (float64, error) {
	return s.repo.Average(ctx, storeID)
}

func (s *Service) GetOwn(
	ctx context.Context,
	subject *policy.Subject,
	storeID string,
) (*Rating, error) {
	if err := policy.Authorize(subject, policy.ActionRatingViewOwn, policy.Resource{}); err != nil {
		return nil, err
	}

	return s.repo.GetByUserAndStore(ctx, subject.ID, storeID)
}

// ListForStore lists a store's ratings with rater identity. Only the owner
// of the store may read them.
func (s *Service) ListForStore(
	ctx context.Context,
	subject *policy.Subject,
	storeID string,
) ([]StoreRating, error) {
	// Non-owners are turned away before the store lookup.
	precheck := policy.Resource{OwnerID: subject.GetID()}
	if err := policy.Authorize(subject, policy.ActionRatingListStore, precheck); err != nil {
		return nil, err
	}

	ownerID, err := s.stores.OwnerID(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("list store ratings: %w", err)
	}

	err = policy.Authorize(subject, policy.ActionRatingListStore, policy.Resource{OwnerID: ownerID})
	if err != nil {
		return nil, err
	}

	return s.repo.ListByStore(ctx, storeID)
}

func (s *Service) ListAll(
	ctx context.Context,
	subject *policy.Subject,
) ([]DetailedRating, error) {
	if err := policy.Authorize(subject, policy.ActionRatingListAll, policy.Resource{}); err != nil {
		return nil, err
	}

	return s.repo.ListAll(ctx)
}
