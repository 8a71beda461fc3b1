package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sngm3741/store-directory/api/internal/directory/domain"
)

// StoreServiceConfig wires the dependencies of the store service.
type StoreServiceConfig struct {
	Repo   StoreRepository
	Policy EditPolicy
	Cache  RankingCache
	Logger *zap.Logger
	Now    func() time.Time
}

type storeService struct {
	repo   StoreRepository
	policy EditPolicy
	cache  RankingCache
	logger *zap.Logger
	now    func() time.Time
}

// NewStoreService creates a StoreService. Nil Policy means owner-only edits.
func NewStoreService(cfg StoreServiceConfig) StoreService {
	s := &storeService{
		repo:   cfg.Repo,
		policy: cfg.Policy,
		cache:  cfg.Cache,
		logger: cfg.Logger,
		now:    cfg.Now,
	}
	if s.policy == nil {
		s.policy = OwnerPolicy{}
	}
	if s.cache == nil {
		s.cache = NoopCache{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *storeService) List(ctx context.Context, filter StoreFilter, paging Paging, opts FindOptions) (StorePage, error) {
	paging = NewPaging(paging.Page, paging.Limit)
	filter.Tag = strings.TrimSpace(filter.Tag)
	stores, total, err := s.repo.Find(ctx, filter, paging, opts)
	if err != nil {
		return StorePage{}, fmt.Errorf("application.StoreService.List: %w", err)
	}
	if stores == nil {
		stores = []domain.Store{}
	}
	return StorePage{Items: stores, Page: paging.Page, Limit: paging.Limit, Total: total}, nil
}

func (s *storeService) Detail(ctx context.Context, slug string) (*domain.Store, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, domain.ErrNotFound
	}
	store, err := s.repo.FindBySlug(ctx, slug, FindOptions{IncludeReviews: true})
	if err != nil {
		return nil, fmt.Errorf("application.StoreService.Detail: %w", err)
	}
	return store, nil
}

func (s *storeService) Search(ctx context.Context, query string) ([]domain.Store, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Store{}, nil
	}
	stores, err := s.repo.Search(ctx, query, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("application.StoreService.Search: %w", err)
	}
	if stores == nil {
		stores = []domain.Store{}
	}
	return stores, nil
}

func (s *storeService) Create(ctx context.Context, actor domain.Actor, cmd UpsertStoreCommand) (*domain.Store, error) {
	store, err := domain.NewStore(cmd.draft(actor.ID))
	if err != nil {
		return nil, err
	}
	store.Created = s.now().UTC()

	if err := s.persistWithSlug(ctx, store, true, s.repo.Create); err != nil {
		return nil, fmt.Errorf("application.StoreService.Create: %w", err)
	}
	s.invalidateRankings(ctx)
	return store, nil
}

func (s *storeService) Edit(ctx context.Context, actor domain.Actor, id string) (*domain.Store, error) {
	store, err := s.repo.FindByID(ctx, strings.TrimSpace(id), FindOptions{})
	if err != nil {
		return nil, fmt.Errorf("application.StoreService.Edit: %w", err)
	}
	if err := s.policy.AuthorizeEdit(ctx, actor, store); err != nil {
		return nil, fmt.Errorf("application.StoreService.Edit: %w", err)
	}
	return store, nil
}

func (s *storeService) Update(ctx context.Context, actor domain.Actor, id string, cmd UpsertStoreCommand) (*domain.Store, error) {
	cmd.Location.Type = domain.PointType

	existing, err := s.Edit(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	store, err := domain.NewStore(cmd.draft(existing.Author))
	if err != nil {
		return nil, err
	}
	store.ID = existing.ID
	store.Created = existing.Created
	store.Slug = existing.Slug

	nameChanged := store.Name != existing.Name
	if err := s.persistWithSlug(ctx, store, nameChanged, s.repo.Update); err != nil {
		return nil, fmt.Errorf("application.StoreService.Update: %w", err)
	}
	s.invalidateRankings(ctx)
	return store, nil
}

// persistWithSlug recomputes the slug only when the name changed. The first candidate follows
// the count of existing matching slugs; a unique-index rejection bumps the suffix and retries.
func (s *storeService) persistWithSlug(ctx context.Context, store *domain.Store, nameChanged bool, persist func(context.Context, *domain.Store) error) error {
	if !nameChanged {
		return persist(ctx, store)
	}

	base := domain.Slugify(store.Name)
	taken, err := s.repo.CountSlugs(ctx, base, store.ID)
	if err != nil {
		return err
	}

	for attempt := 0; attempt < MaxSlugAttempts; attempt++ {
		store.Slug = domain.SlugCandidate(base, taken+attempt)
		err := persist(ctx, store)
		if !errors.Is(err, domain.ErrSlugTaken) {
			return err
		}
		s.logger.Info("slug collision, retrying",
			zap.String("slug", store.Slug),
			zap.Int("attempt", attempt+1),
		)
	}
	return fmt.Errorf("slug %q after %d attempts: %w", base, MaxSlugAttempts, domain.ErrSlugTaken)
}

func (s *storeService) invalidateRankings(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, rankingCacheKeys...); err != nil {
		s.logger.Warn("ranking cache invalidation failed", zap.Error(err))
	}
}
