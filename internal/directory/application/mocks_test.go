package application_test

import (
	"context"
	"sync"

	"github.com/sngm3741/store-directory/api/internal/directory/application"
	"github.com/sngm3741/store-directory/api/internal/directory/domain"
)

var (
	_ application.StoreRepository   = (*mockStoreRepo)(nil)
	_ application.RankingRepository = (*mockRankingRepo)(nil)
	_ application.ReviewRepository  = (*mockReviewRepo)(nil)
	_ application.RankingCache      = (*memoryCache)(nil)
)

type mockStoreRepo struct {
	FindFn       func(ctx context.Context, filter application.StoreFilter, paging application.Paging, opts application.FindOptions) ([]domain.Store, int64, error)
	FindByIDFn   func(ctx context.Context, id string, opts application.FindOptions) (*domain.Store, error)
	FindBySlugFn func(ctx context.Context, slug string, opts application.FindOptions) (*domain.Store, error)
	CountSlugsFn func(ctx context.Context, base, excludeID string) (int, error)
	CreateFn     func(ctx context.Context, store *domain.Store) error
	UpdateFn     func(ctx context.Context, store *domain.Store) error
	SearchFn     func(ctx context.Context, query string, limit int) ([]domain.Store, error)

	countCalls int
}

func (m *mockStoreRepo) Find(ctx context.Context, filter application.StoreFilter, paging application.Paging, opts application.FindOptions) ([]domain.Store, int64, error) {
	return m.FindFn(ctx, filter, paging, opts)
}

func (m *mockStoreRepo) FindByID(ctx context.Context, id string, opts application.FindOptions) (*domain.Store, error) {
	return m.FindByIDFn(ctx, id, opts)
}

func (m *mockStoreRepo) FindBySlug(ctx context.Context, slug string, opts application.FindOptions) (*domain.Store, error) {
	return m.FindBySlugFn(ctx, slug, opts)
}

func (m *mockStoreRepo) CountSlugs(ctx context.Context, base, excludeID string) (int, error) {
	m.countCalls++
	return m.CountSlugsFn(ctx, base, excludeID)
}

func (m *mockStoreRepo) Create(ctx context.Context, store *domain.Store) error {
	return m.CreateFn(ctx, store)
}

func (m *mockStoreRepo) Update(ctx context.Context, store *domain.Store) error {
	return m.UpdateFn(ctx, store)
}

func (m *mockStoreRepo) Search(ctx context.Context, query string, limit int) ([]domain.Store, error) {
	return m.SearchFn(ctx, query, limit)
}

type mockRankingRepo struct {
	TagsListFn  func(ctx context.Context) ([]domain.TagCount, error)
	TopStoresFn func(ctx context.Context, limit int) ([]domain.RankedStore, error)
}

func (m *mockRankingRepo) TagsList(ctx context.Context) ([]domain.TagCount, error) {
	return m.TagsListFn(ctx)
}

func (m *mockRankingRepo) TopStores(ctx context.Context, limit int) ([]domain.RankedStore, error) {
	return m.TopStoresFn(ctx, limit)
}

type mockReviewRepo struct {
	CreateFn func(ctx context.Context, review *domain.Review) error
}

func (m *mockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	return m.CreateFn(ctx, review)
}

// memoryCache stores values by reference; good enough for service tests.
type memoryCache struct {
	mu          sync.Mutex
	values      map[string]any
	invalidated []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]any{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return false, nil
	}
	switch d := dest.(type) {
	case *[]domain.TagCount:
		*d = v.([]domain.TagCount)
	case *[]domain.RankedStore:
		*d = v.([]domain.RankedStore)
	}
	return true, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
	}
	c.invalidated = append(c.invalidated, keys...)
	return nil
}

func validCommand(name string) application.UpsertStoreCommand {
	return application.UpsertStoreCommand{
		Name:        name,
		Description: "Wood fired pies",
		Tags:        []string{"Family Friendly", "Wifi"},
		Location: application.LocationCommand{
			Type:        "Polygon",
			Coordinates: []float64{-79.38, 43.65},
			Address:     "1 Queen St",
		},
	}
}
