// AngelaMos | 2026
// service.go

package store

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/carterperez-dev/store-ratings/internal/core"
	"github.com/carterperez-dev/store-ratings/internal/policy"
	"github.com/carterperez-dev/store-ratings/internal/validation"
)

// RatingAverager yields the current mean rating of a store.
type RatingAverager interface {
	AverageRating(ctx context.Context, storeID string) (float64, error)
}

// OwnerRoles looks up the role of an account. It returns core.ErrNotFound
// when the account does not exist.
type OwnerRoles interface {
	RoleOf(ctx context.Context, userID string) (string, error)
}

type Service struct {
	repo    Repository
	ratings RatingAverager
	users   OwnerRoles
}

func NewService(repo Repository, ratings RatingAverager, users OwnerRoles) *Service {
	return &Service{repo: repo, ratings: ratings, users: users}
}

// Create opens a store. An owner always opens it for themselves; an
// administrator names the owner explicitly or leaves it without one.
func (s *Service) Create(
	ctx context.Context,
	subject *policy.Subject,
	req CreateStoreRequest,
) (*Store, error) {
	if err := policy.Authorize(subject, policy.ActionStoreCreate, policy.Resource{}); err != nil {
		return nil, err
	}

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var ownerID *string
	if subject.Is(policy.RoleOwner) {
		id := subject.ID
		ownerID = &id
	} else {
		var err error
		if ownerID, err = s.resolveOwner(ctx, req.OwnerID); err != nil {
			return nil, err
		}
	}

	store := &Store{
		ID:      uuid.New().String(),
		Name:    req.Name,
		Email:   validation.NormalizeEmail(req.Email),
		Address: req.Address,
		OwnerID: ownerID,
	}

	if err := s.repo.Create(ctx, store); err != nil {
		return nil, conflict(err)
	}

	return store, nil
}

func (s *Service) Get(
	ctx context.Context,
	subject *policy.Subject,
	id string,
) (*Store, float64, error) {
	if err := policy.Authorize(subject, policy.ActionStoreGet, policy.Resource{}); err != nil {
		return nil, 0, err
	}

	store, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}

	avg, err := s.ratings.AverageRating(ctx, id)
	if err != nil {
		return nil, 0, fmt.Errorf("get store: %w", err)
	}

	return store, avg, nil
}

func (s *Service) List(
	ctx context.Context,
	subject *policy.Subject,
	params ListStoresParams,
) ([]Listing, error) {
	if err := policy.Authorize(subject, policy.ActionStoreList, policy.Resource{}); err != nil {
		return nil, err
	}

	return s.repo.List(ctx, params)
}

func (s *Service) Update(
	ctx context.Context,
	subject *policy.Subject,
	id string,
	req UpdateStoreRequest,
) (*Store, error) {
	if err := policy.Authorize(subject, policy.ActionStoreUpdate, policy.Resource{}); err != nil {
		return nil, err
	}

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	store, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ownerID, err := s.resolveOwner(ctx, req.OwnerID)
	if err != nil {
		return nil, err
	}

	store.Name = req.Name
	store.Email = validation.NormalizeEmail(req.Email)
	store.Address = req.Address
	store.OwnerID = ownerID

	if err := s.repo.Update(ctx, store); err != nil {
		return nil, conflict(err)
	}

	return store, nil
}

func (s *Service) Delete(
	ctx context.Context,
	subject *policy.Subject,
	id string,
) error {
	if err := policy.Authorize(subject, policy.ActionStoreDelete, policy.Resource{}); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

// resolveOwner checks that an explicitly named owner is an existing
// account holding the owner role. An empty id means no owner.
func (s *Service) resolveOwner(ctx context.Context, ownerID string) (*string, error) {
	if ownerID == "" {
		return nil, nil
	}

	role, err := s.users.RoleOf(ctx, ownerID)
	if errors.Is(err, core.ErrNotFound) {
		return nil, core.ValidationError("owner_id must reference an existing store owner")
	}
	if err != nil {
		return nil, fmt.Errorf("resolve store owner: %w", err)
	}

	if role != policy.RoleOwner {
		return nil, core.ValidationError("owner_id must reference an existing store owner")
	}

	return &ownerID, nil
}

func conflict(err error) error {
	switch {
	case errors.Is(err, ErrOwnerHasStore):
		return core.NewAppError(err, "owner already has a store", http.StatusConflict, "CONFLICT")
	case errors.Is(err, ErrUnknownOwner):
		return core.ValidationError("owner_id must reference an existing store owner")
	case errors.Is(err, core.ErrDuplicateKey):
		return core.DuplicateError("email")
	default:
		return err
	}
}
