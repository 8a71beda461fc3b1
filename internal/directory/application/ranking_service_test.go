package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/store-directory/api/internal/directory/application"
	"github.com/sngm3741/store-directory/api/internal/directory/domain"
)

func TestRankingService_Tags_CachesUntilInvalidated(t *testing.T) {
	calls := 0
	repo := &mockRankingRepo{
		TagsListFn: func(context.Context) ([]domain.TagCount, error) {
			calls++
			return []domain.TagCount{{Tag: "Wifi", Count: 3}, {Tag: "Vegan", Count: 1}}, nil
		},
	}
	cache := newMemoryCache()
	svc := application.NewRankingService(repo, cache, nil)

	first, err := svc.Tags(context.Background())
	require.NoError(t, err)
	second, err := svc.Tags(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	// A store write drops the cached ranking.
	storeSvc := application.NewStoreService(application.StoreServiceConfig{
		Repo: &mockStoreRepo{
			CountSlugsFn: func(context.Context, string, string) (int, error) { return 0, nil },
			CreateFn:     func(context.Context, *domain.Store) error { return nil },
		},
		Cache: cache,
	})
	_, err = storeSvc.Create(context.Background(), domain.Actor{ID: "u1"}, validCommand("Cafe"))
	require.NoError(t, err)

	_, err = svc.Tags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRankingService_TopStores_UsesFixedLimit(t *testing.T) {
	repo := &mockRankingRepo{
		TopStoresFn: func(_ context.Context, limit int) ([]domain.RankedStore, error) {
			assert.Equal(t, application.TopStoresLimit, limit)
			return nil, nil
		},
	}
	svc := application.NewRankingService(repo, nil, nil)

	top, err := svc.TopStores(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, top)
	assert.Empty(t, top)
}

func TestRankingService_PropagatesStorageErrors(t *testing.T) {
	repo := &mockRankingRepo{
		TagsListFn: func(context.Context) ([]domain.TagCount, error) {
			return nil, domain.ErrStorageUnavailable
		},
	}
	svc := application.NewRankingService(repo, nil, nil)

	_, err := svc.Tags(context.Background())
	assert.True(t, errors.Is(err, domain.ErrStorageUnavailable))
}

type failingCache struct{}

func (failingCache) Get(context.Context, string, any) (bool, error) { return false, errors.New("down") }
func (failingCache) Set(context.Context, string, any) error { return errors.New("down") }
func (failingCache) Invalidate(context.Context, ...string) error { return errors.New("down") }

func TestRankingService_CacheFailureFallsBackToRepository(t *testing.T) {
	repo := &mockRankingRepo{
		TagsListFn: func(context.Context) ([]domain.TagCount, error) {
			return []domain.TagCount{{Tag: "Wifi", Count: 1}}, nil
		},
	}
	svc := application.NewRankingService(repo, failingCache{}, nil)

	tags, err := svc.Tags(context.Background())
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}
