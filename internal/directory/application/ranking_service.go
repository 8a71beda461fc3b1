package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sngm3741/store-directory/api/internal/directory/domain"
)

const (
	tagsCacheKey      = "rankings:tags"
	topStoresCacheKey = "rankings:top"
)

var rankingCacheKeys = []string{tagsCacheKey, topStoresCacheKey}

type rankingService struct {
	repo   RankingRepository
	cache  RankingCache
	logger *zap.Logger
}

// NewRankingService creates a RankingService. cache and logger may be nil.
func NewRankingService(repo RankingRepository, cache RankingCache, logger *zap.Logger) RankingService {
	if cache == nil {
		cache = NoopCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &rankingService{repo: repo, cache: cache, logger: logger}
}

func (s *rankingService) Tags(ctx context.Context) ([]domain.TagCount, error) {
	var cached []domain.TagCount
	if s.fromCache(ctx, tagsCacheKey, &cached) {
		return cached, nil
	}
	tags, err := s.repo.TagsList(ctx)
	if err != nil {
		return nil, fmt.Errorf("application.RankingService.Tags: %w", err)
	}
	if tags == nil {
		tags = []domain.TagCount{}
	}
	s.toCache(ctx, tagsCacheKey, tags)
	return tags, nil
}

func (s *rankingService) TopStores(ctx context.Context) ([]domain.RankedStore, error) {
	var cached []domain.RankedStore
	if s.fromCache(ctx, topStoresCacheKey, &cached) {
		return cached, nil
	}
	stores, err := s.repo.TopStores(ctx, TopStoresLimit)
	if err != nil {
		return nil, fmt.Errorf("application.RankingService.TopStores: %w", err)
	}
	if stores == nil {
		stores = []domain.RankedStore{}
	}
	s.toCache(ctx, topStoresCacheKey, stores)
	return stores, nil
}

// fromCache treats cache errors as misses.
func (s *rankingService) fromCache(ctx context.Context, key string, dest any) bool {
	ok, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("ranking cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return ok
}

func (s *rankingService) toCache(ctx context.Context, key string, value any) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn("ranking cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// NoopCache never hits.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string, any) (bool, error) { return false, nil }
func (NoopCache) Set(context.Context, string, any) error { return nil }
func (NoopCache) Invalidate(context.Context, ...string) error { return nil }
