package application

import (
	"context"

	"github.com/sngm3741/store-directory/api/internal/directory/domain"
)

const (
	// DefaultPageLimit is used when the caller does not ask for a page size.
	DefaultPageLimit = 20
	// MaxPageLimit caps page sizes.
	MaxPageLimit = 100
	// SearchLimit is the number of typeahead matches returned.
	SearchLimit = 5
	// TopStoresLimit is the fixed size of the ranking.
	TopStoresLimit = 10
	// MaxSlugAttempts bounds the retry loop when the unique slug index rejects a write.
	MaxSlugAttempts = 8
)

// StoreRepository abstracts persistence of stores.
// Find*, CountSlugs and Search return domain.ErrNotFound or domain.ErrStorageUnavailable wrapped;
// Create and Update return domain.ErrSlugTaken when the slug collides.
type StoreRepository interface {
	Find(ctx context.Context, filter StoreFilter, paging Paging, opts FindOptions) ([]domain.Store, int64, error)
	FindByID(ctx context.Context, id string, opts FindOptions) (*domain.Store, error)
	FindBySlug(ctx context.Context, slug string, opts FindOptions) (*domain.Store, error)
	CountSlugs(ctx context.Context, base string, excludeID string) (int, error)
	Create(ctx context.Context, store *domain.Store) error
	Update(ctx context.Context, store *domain.Store) error
	Search(ctx context.Context, query string, limit int) ([]domain.Store, error)
}

// RankingRepository runs the aggregation pipelines.
type RankingRepository interface {
	TagsList(ctx context.Context) ([]domain.TagCount, error)
	TopStores(ctx context.Context, limit int) ([]domain.RankedStore, error)
}

// ReviewRepository persists reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
}

// RankingCache stores aggregation results between writes.
type RankingCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

// EditPolicy decides whether an actor may modify a store.
type EditPolicy interface {
	AuthorizeEdit(ctx context.Context, actor domain.Actor, store *domain.Store) error
}

// StoreFilter narrows a listing.
type StoreFilter struct {
	Tag string
}

// FindOptions controls joins on reads.
type FindOptions struct {
	IncludeReviews bool
}

// Paging is 1-indexed.
type Paging struct {
	Page  int
	Limit int
}

// NewPaging clamps page to >= 1 and limit to 1..MaxPageLimit.
func NewPaging(page, limit int) Paging {
	p := Paging{Page: 1, Limit: DefaultPageLimit}
	if page >= 1 {
		p.Page = page
	}
	if limit >= 1 {
		p.Limit = limit
		if p.Limit > MaxPageLimit {
			p.Limit = MaxPageLimit
		}
	}
	return p
}

// Offset returns the number of documents to skip.
func (p Paging) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// StorePage is one page of a listing.
type StorePage struct {
	Items []domain.Store
	Page  int
	Limit int
	Total int64
}

// StoreService describes store use-cases.
type StoreService interface {
	List(ctx context.Context, filter StoreFilter, paging Paging, opts FindOptions) (StorePage, error)
	Detail(ctx context.Context, slug string) (*domain.Store, error)
	Search(ctx context.Context, query string) ([]domain.Store, error)
	Create(ctx context.Context, actor domain.Actor, cmd UpsertStoreCommand) (*domain.Store, error)
	Edit(ctx context.Context, actor domain.Actor, id string) (*domain.Store, error)
	Update(ctx context.Context, actor domain.Actor, id string, cmd UpsertStoreCommand) (*domain.Store, error)
}

// RankingService describes the aggregate read use-cases.
type RankingService interface {
	Tags(ctx context.Context) ([]domain.TagCount, error)
	TopStores(ctx context.Context) ([]domain.RankedStore, error)
}

// ReviewService describes review use-cases.
type ReviewService interface {
	Add(ctx context.Context, actor domain.Actor, storeID string, cmd AddReviewCommand) (*domain.Review, error)
}

// UpsertStoreCommand contains inputs for creating/updating stores.
type UpsertStoreCommand struct {
	Name        string
	Description string
	Tags        []string
	Location    LocationCommand
	Photo       string
}

// LocationCommand mirrors the submitted location. Type is ignored; stores are always points.
type LocationCommand struct {
	Type        string
	Coordinates []float64
	Address     string
}

// AddReviewCommand contains inputs for a review.
type AddReviewCommand struct {
	Text   string
	Rating int
}

func (cmd UpsertStoreCommand) draft(author string) domain.StoreDraft {
	return domain.StoreDraft{
		Name:        cmd.Name,
		Description: cmd.Description,
		Tags:        append([]string{}, cmd.Tags...),
		Coordinates: append([]float64{}, cmd.Location.Coordinates...),
		Address:     cmd.Location.Address,
		Photo:       cmd.Photo,
		Author:      author,
	}
}
