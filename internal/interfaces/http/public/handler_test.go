package public

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/store-directory/api/internal/directory/application"
	"github.com/sngm3741/store-directory/api/internal/directory/domain"
	"github.com/sngm3741/store-directory/api/internal/interfaces/http/common"
)

type mockStoreService struct {
	application.StoreService
	ListFn   func(ctx context.Context, filter application.StoreFilter, paging application.Paging, opts application.FindOptions) (application.StorePage, error)
	DetailFn func(ctx context.Context, slug string) (*domain.Store, error)
	SearchFn func(ctx context.Context, query string) ([]domain.Store, error)
}

func (m *mockStoreService) List(ctx context.Context, filter application.StoreFilter, paging application.Paging, opts application.FindOptions) (application.StorePage, error) {
	return m.ListFn(ctx, filter, paging, opts)
}

func (m *mockStoreService) Detail(ctx context.Context, slug string) (*domain.Store, error) {
	return m.DetailFn(ctx, slug)
}

func (m *mockStoreService) Search(ctx context.Context, query string) ([]domain.Store, error) {
	return m.SearchFn(ctx, query)
}

type mockRankingService struct {
	TagsFn      func(ctx context.Context) ([]domain.TagCount, error)
	TopStoresFn func(ctx context.Context) ([]domain.RankedStore, error)
}

func (m *mockRankingService) Tags(ctx context.Context) ([]domain.TagCount, error) {
	return m.TagsFn(ctx)
}

func (m *mockRankingService) TopStores(ctx context.Context) ([]domain.RankedStore, error) {
	return m.TopStoresFn(ctx)
}

var _ application.RankingService = (*mockRankingService)(nil)

func newTestRouter(stores application.StoreService, rankings application.RankingService, flash *common.FlashStore) http.Handler {
	h := NewHandler(Config{Stores: stores, Rankings: rankings, Flash: flash})
	r := chi.NewRouter()
	auth := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := common.ContextWithUser(r.Context(), common.AuthenticatedUser{ID: "u1", Username: "wes"})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
	r.Route("/api", func(r chi.Router) { h.Register(r, auth, nil) })
	return r
}

func sampleStore() domain.Store {
	return domain.Store{
		ID:       "s1",
		Name:     "Pizza Palace",
		Slug:     "pizza-palace",
		Tags:     []string{"Wifi"},
		Created:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Location: domain.Location{Type: domain.PointType, Coordinates: []float64{-79.3, 43.6}, Address: "1 Queen St"},
		Author:   "u1",
	}
}

func TestStoreList_ParsesPagingAndReviews(t *testing.T) {
	svc := &mockStoreService{
		ListFn: func(_ context.Context, filter application.StoreFilter, paging application.Paging, opts application.FindOptions) (application.StorePage, error) {
			assert.Empty(t, filter.Tag)
			assert.Equal(t, application.Paging{Page: 2, Limit: 5}, paging)
			assert.True(t, opts.IncludeReviews)
			s := sampleStore()
			s.Reviews = []domain.Review{}
			return application.StorePage{Items: []domain.Store{s}, Page: 2, Limit: 5, Total: 6}, nil
		},
	}
	router := newTestRouter(svc, nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stores?page=2&limit=5&includeReviews=true", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 6, body["total"])
	items := body["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, []any{}, item["reviews"])
}

func TestStoreList_OmitsReviewsUnlessJoined(t *testing.T) {
	svc := &mockStoreService{
		ListFn: func(_ context.Context, _ application.StoreFilter, paging application.Paging, opts application.FindOptions) (application.StorePage, error) {
			assert.False(t, opts.IncludeReviews)
			assert.Equal(t, application.DefaultPageLimit, paging.Limit)
			return application.StorePage{Items: []domain.Store{sampleStore()}, Page: 1, Limit: 20, Total: 1}, nil
		},
	}
	router := newTestRouter(svc, nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stores", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"reviews"`)
}

func TestStoreDetail_PopsFlash(t *testing.T) {
	flash := common.NewFlashStore([]byte("secret"), false)
	svc := &mockStoreService{
		DetailFn: func(_ context.Context, slug string) (*domain.Store, error) {
			assert.Equal(t, "pizza-palace", slug)
			s := sampleStore()
			return &s, nil
		},
	}
	router := newTestRouter(svc, nil, flash)

	setRec := httptest.NewRecorder()
	flash.Set(setRec, common.Flash{Type: "success", Message: "Successfully Created Pizza Palace. Care to leave a review?"})

	req := httptest.NewRequest(http.MethodGet, "/api/stores/pizza-palace", nil)
	req.AddCookie(setRec.Result().Cookies()[0])
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Slug  string        `json:"slug"`
		Flash *common.Flash `json:"flash"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "pizza-palace", body.Slug)
	require.NotNil(t, body.Flash)
	assert.Equal(t, "success", body.Flash.Type)
}

func TestStoreDetail_NotFound(t *testing.T) {
	svc := &mockStoreService{
		DetailFn: func(context.Context, string) (*domain.Store, error) { return nil, domain.ErrNotFound },
	}
	router := newTestRouter(svc, nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stores/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearch_ReturnsNameAndSlug(t *testing.T) {
	svc := &mockStoreService{
		SearchFn: func(_ context.Context, q string) ([]domain.Store, error) {
			assert.Equal(t, "piz", q)
			return []domain.Store{
				{Name: "Pizza Palace", Slug: "pizza-palace"},
				{Name: "Pizza Hut", Slug: "pizza-hut"},
			}, nil
		},
	}
	router := newTestRouter(svc, nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=piz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"name":"Pizza Palace","slug":"pizza-palace"},{"name":"Pizza Hut","slug":"pizza-hut"}]`, rec.Body.String())
}

func TestTagsAndTop(t *testing.T) {
	rankings := &mockRankingService{
		TagsFn: func(context.Context) ([]domain.TagCount, error) {
			return []domain.TagCount{{Tag: "Wifi", Count: 3}}, nil
		},
		TopStoresFn: func(context.Context) ([]domain.RankedStore, error) {
			return []domain.RankedStore{{Store: sampleStore(), AverageRating: 4.5, ReviewCount: 2}}, nil
		},
	}
	router := newTestRouter(&mockStoreService{}, rankings, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tags", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"tag":"Wifi","count":3}]`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/top", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var top []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &top))
	require.Len(t, top, 1)
	assert.Equal(t, 4.5, top[0]["averageRating"])
	assert.Equal(t, "pizza-palace", top[0]["slug"])
}

func TestTagStores(t *testing.T) {
	svc := &mockStoreService{
		ListFn: func(_ context.Context, filter application.StoreFilter, _ application.Paging, _ application.FindOptions) (application.StorePage, error) {
			assert.Equal(t, "Wifi", filter.Tag)
			return application.StorePage{Items: []domain.Store{}, Page: 1, Limit: 20}, nil
		},
	}
	router := newTestRouter(svc, nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tags/Wifi/stores", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tag":"Wifi","items":[],"page":1,"limit":20,"total":0}`, rec.Body.String())
}

func TestTags_StorageUnavailable(t *testing.T) {
	rankings := &mockRankingService{
		TagsFn: func(context.Context) ([]domain.TagCount, error) { return nil, domain.ErrStorageUnavailable },
	}
	router := newTestRouter(&mockStoreService{}, rankings, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tags", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAuthVerify(t *testing.T) {
	router := newTestRouter(&mockStoreService{}, nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"u1"`)
}
