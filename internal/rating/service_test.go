// AngelaMos | 2026
// service_test.go

package rating

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/store-ratings/internal/core"
	"github.com/carterperez-dev/store-ratings/internal/policy"
)

// memoryRepo keeps one row per (user, store) under a lock, the in-process
// analogue of the unique constraint backing the SQL upsert.
type memoryRepo struct {
	mu      sync.Mutex
	rows    map[string]*Rating
	stores  map[string]string
	deleted map[string]bool
}

func newMemoryRepo(stores map[string]string) *memoryRepo {
	return &memoryRepo{rows: map[string]*Rating{}, stores: stores, deleted: map[string]bool{}}
}

func pairKey(userID, storeID string) string { return userID + "|" + storeID }

func (m *memoryRepo) Upsert(_ context.Context, rt *Rating) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.deleted[rt.UserID] {
		return fmt.Errorf("upsert rating: %w", ErrUnknownRater)
	}
	if _, ok := m.stores[rt.StoreID]; !ok {
		return fmt.Errorf("upsert rating: %w", core.ErrNotFound)
	}

	now := time.Now()
	if existing, ok := m.rows[pairKey(rt.UserID, rt.StoreID)]; ok {
		existing.Value = rt.Value
		existing.UpdatedAt = now
		*rt = *existing
		return nil
	}

	rt.CreatedAt, rt.UpdatedAt = now, now
	row := *rt
	m.rows[pairKey(rt.UserID, rt.StoreID)] = &row
	return nil
}

func (m *memoryRepo) GetByUserAndStore(_ context.Context, userID, storeID string) (*Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if row, ok := m.rows[pairKey(userID, storeID)]; ok {
		cp := *row
		return &cp, nil
	}
	return nil, fmt.Errorf("get rating: %w", core.ErrNotFound)
}

func (m *memoryRepo) ListByStore(_ context.Context, storeID string) ([]StoreRating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []StoreRating{}
	for _, row := range m.rows {
		if row.StoreID == storeID {
			out = append(out, StoreRating{Rating: *row})
		}
	}
	return out, nil
}

func (m *memoryRepo) ListAll(context.Context) ([]DetailedRating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []DetailedRating{}
	for _, row := range m.rows {
		out = append(out, DetailedRating{Rating: *row})
	}
	return out, nil
}

func (m *memoryRepo) Average(_ context.Context, storeID string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var sum, n int
	for _, row := range m.rows {
		if row.StoreID == storeID {
			sum += row.Value
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

func (m *memoryRepo) countByStore(storeID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, row := range m.rows {
		if row.StoreID == storeID {
			n++
		}
	}
	return n
}

func (m *memoryRepo) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows), nil
}

type ownerMap map[string]string

func (o ownerMap) OwnerID(_ context.Context, storeID string) (string, error) {
	owner, ok := o[storeID]
	if !ok {
		return "", fmt.Errorf("store owner: %w", core.ErrNotFound)
	}
	return owner, nil
}

const (
	storeA = "store-a"
	storeB = "store-b"
)

var (
	rater    = &policy.Subject{ID: "user-1", Role: policy.RoleUser}
	rater2   = &policy.Subject{ID: "user-2", Role: policy.RoleUser}
	owner    = &policy.Subject{ID: "owner-1", Role: policy.RoleOwner}
	stranger = &policy.Subject{ID: "owner-2", Role: policy.RoleOwner}
	admin    = &policy.Subject{ID: "admin-1", Role: policy.RoleAdmin}
)

func newTestService() (*Service, *memoryRepo) {
	owners := ownerMap{storeA: owner.ID, storeB: ""}
	repo := newMemoryRepo(owners)
	return NewService(repo, owners), repo
}

func submit(v int) SubmitRatingRequest { return SubmitRatingRequest{Rating: v} }

func TestSubmit_LastWriteWins(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	first, err := svc.Submit(ctx, rater, storeA, submit(2))
	require.NoError(t, err)

	second, err := svc.Submit(ctx, rater, storeA, submit(5))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Value)

	assert.Equal(t, 1, repo.countByStore(storeA))

	own, err := svc.GetOwn(ctx, rater, storeA)
	require.NoError(t, err)
	assert.Equal(t, 5, own.Value)
}

func TestSubmit_ValueBounds(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	for _, v := range []int{0, 6, -1} {
		_, err := svc.Submit(ctx, rater, storeA, submit(v))
		assert.ErrorIs(t, err, core.ErrInvalidInput, "value %d", v)
	}

	n, _ := repo.Count(ctx)
	assert.Zero(t, n, "rejected values must not be written")

	for v := 1; v <= 5; v++ {
		_, err := svc.Submit(ctx, rater, storeA, submit(v))
		assert.NoError(t, err, "value %d", v)
	}
}

func TestSubmit_OnlyRatersMaySubmit(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for _, s := range []*policy.Subject{owner, admin} {
		_, err := svc.Submit(ctx, s, storeA, submit(3))
		assert.ErrorIs(t, err, core.ErrForbidden, s.Role)
	}

	_, err := svc.Submit(ctx, nil, storeA, submit(3))
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}

func TestSubmit_UnknownStore(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Submit(context.Background(), rater, "nope", submit(3))
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestSubmit_ConcurrentSamePairKeepsOneRow(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	_, err := svc.Submit(ctx, rater, storeA, submit(1))
	require.NoError(t, err)

	const workers = 32
	var wg sync.WaitGroup
	start := make(chan struct{})
	errs := make(chan error, workers)

	for i := range workers {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			<-start
			_, err := svc.Submit(ctx, rater, storeA, submit(v))
			errs <- err
		}(i%5 + 1)
	}

	close(start)
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, 1, repo.countByStore(storeA))
}

func TestAverageRating(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	avg, err := svc.AverageRating(ctx, storeA)
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)

	_, err = svc.Submit(ctx, rater, storeA, submit(3))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, rater2, storeA, submit(5))
	require.NoError(t, err)

	avg, err = svc.AverageRating(ctx, storeA)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, avg, 1e-9)
}

func TestListForStore_OwnerOnly(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Submit(ctx, rater, storeA, submit(4))
	require.NoError(t, err)

	rows, err := svc.ListForStore(ctx, owner, storeA)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = svc.ListForStore(ctx, stranger, storeA)
	assert.ErrorIs(t, err, core.ErrForbidden)

	_, err = svc.ListForStore(ctx, owner, storeB)
	assert.ErrorIs(t, err, core.ErrForbidden, "ownerless store")

	_, err = svc.ListForStore(ctx, admin, storeA)
	assert.ErrorIs(t, err, core.ErrForbidden)

	_, err = svc.ListForStore(ctx, owner, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = svc.ListForStore(ctx, rater, "missing")
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestListAll_AdminOnly(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Submit(ctx, rater, storeA, submit(4))
	require.NoError(t, err)

	rows, err := svc.ListAll(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = svc.ListAll(ctx, owner)
	assert.ErrorIs(t, err, core.ErrForbidden)
}
