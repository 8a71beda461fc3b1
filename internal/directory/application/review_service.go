package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sngm3741/store-directory/api/internal/directory/domain"
)

type reviewService struct {
	stores  StoreRepository
	reviews ReviewRepository
	cache   RankingCache
	logger  *zap.Logger
	now     func() time.Time
}

// NewReviewService creates a ReviewService.
func NewReviewService(stores StoreRepository, reviews ReviewRepository, cache RankingCache, logger *zap.Logger) ReviewService {
	if cache == nil {
		cache = NoopCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &reviewService{stores: stores, reviews: reviews, cache: cache, logger: logger, now: time.Now}
}

func (s *reviewService) Add(ctx context.Context, actor domain.Actor, storeID string, cmd AddReviewCommand) (*domain.Review, error) {
	store, err := s.stores.FindByID(ctx, strings.TrimSpace(storeID), FindOptions{})
	if err != nil {
		return nil, fmt.Errorf("application.ReviewService.Add: %w", err)
	}

	review, err := domain.NewReview(store.ID, actor.ID, cmd.Text, cmd.Rating)
	if err != nil {
		return nil, err
	}
	review.Created = s.now().UTC()

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("application.ReviewService.Add: %w", err)
	}
	if err := s.cache.Invalidate(ctx, rankingCacheKeys...); err != nil {
		s.logger.Warn("ranking cache invalidation failed", zap.Error(err))
	}
	return review, nil
}
