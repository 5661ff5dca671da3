// AngelaMos | 2026
// service.go

// Package dashboard assembles the administrator's read-only overview from
// the user, store and rating repositories.
package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/carterperez-dev/store-ratings/internal/policy"
	"github.com/carterperez-dev/store-ratings/internal/store"
	"github.com/carterperez-dev/store-ratings/internal/user"
)

const (
	RecentUsersLimit = 5
	TopStoresLimit   = 5
)

type UserStats interface {
	Count(ctx context.Context) (int, error)
	Recent(ctx context.Context, limit int) ([]user.User, error)
}

type StoreStats interface {
	Count(ctx context.Context) (int, error)
	TopRated(ctx context.Context, limit int) ([]store.Listing, error)
}

type RatingStats interface {
	Count(ctx context.Context) (int, error)
}

type Dashboard struct {
	TotalUsers   int
	TotalStores  int
	TotalRatings int
	RecentUsers  []user.User
	TopStores    []store.Listing
}

type Service struct {
	users   UserStats
	stores  StoreStats
	ratings RatingStats
}

func NewService(users UserStats, stores StoreStats, ratings RatingStats) *Service {
	return &Service{users: users, stores: stores, ratings: ratings}
}

// Build runs every query concurrently. The first failure cancels the rest
// and no partial dashboard is returned.
func (s *Service) Build(ctx context.Context, subject *policy.Subject) (*Dashboard, error) {
	if err := policy.Authorize(subject, policy.ActionDashboardView, policy.Resource{}); err != nil {
		return nil, err
	}

	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.users.Count(gctx)
		d.TotalUsers = n
		return err
	})
	g.Go(func() error {
		n, err := s.stores.Count(gctx)
		d.TotalStores = n
		return err
	})
	g.Go(func() error {
		n, err := s.ratings.Count(gctx)
		d.TotalRatings = n
		return err
	})
	g.Go(func() error {
		rows, err := s.users.Recent(gctx, RecentUsersLimit)
		d.RecentUsers = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.stores.TopRated(gctx, TopStoresLimit)
		d.TopStores = rows
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build dashboard: %w", err)
	}

	return &d, nil
}
