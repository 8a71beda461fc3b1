package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/store-directory/api/internal/directory/application"
	"github.com/sngm3741/store-directory/api/internal/directory/domain"
)

func TestReviewService_Add(t *testing.T) {
	var saved *domain.Review
	stores := &mockStoreRepo{
		FindByIDFn: func(context.Context, string, application.FindOptions) (*domain.Store, error) {
			return existingStore(), nil
		},
	}
	reviews := &mockReviewRepo{
		CreateFn: func(_ context.Context, r *domain.Review) error {
			saved = r
			r.ID = "r1"
			return nil
		},
	}
	cache := newMemoryCache()
	svc := application.NewReviewService(stores, reviews, cache, nil)

	review, err := svc.Add(context.Background(), domain.Actor{ID: "u2"}, "s1", application.AddReviewCommand{Text: " Great crust ", Rating: 5})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "r1", review.ID)
	assert.Equal(t, "s1", review.StoreID)
	assert.Equal(t, "u2", review.Author)
	assert.Equal(t, "Great crust", review.Text)
	assert.NotEmpty(t, cache.invalidated)
}

func TestReviewService_Add_Validation(t *testing.T) {
	stores := &mockStoreRepo{
		FindByIDFn: func(context.Context, string, application.FindOptions) (*domain.Store, error) {
			return existingStore(), nil
		},
	}
	reviews := &mockReviewRepo{
		CreateFn: func(context.Context, *domain.Review) error {
			t.Fatal("create must not be called")
			return nil
		},
	}
	svc := application.NewReviewService(stores, reviews, nil, nil)

	_, err := svc.Add(context.Background(), domain.Actor{ID: "u2"}, "s1", application.AddReviewCommand{Text: "", Rating: 9})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReviewService_Add_UnknownStore(t *testing.T) {
	stores := &mockStoreRepo{
		FindByIDFn: func(context.Context, string, application.FindOptions) (*domain.Store, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := application.NewReviewService(stores, &mockReviewRepo{}, nil, nil)

	_, err := svc.Add(context.Background(), domain.Actor{ID: "u2"}, "nope", application.AddReviewCommand{Text: "ok", Rating: 3})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNewEditPolicy(t *testing.T) {
	p, err := application.NewEditPolicy("")
	require.NoError(t, err)
	assert.IsType(t, application.OwnerPolicy{}, p)

	p, err = application.NewEditPolicy("ANY")
	require.NoError(t, err)
	assert.IsType(t, application.AuthenticatedPolicy{}, p)

	_, err = application.NewEditPolicy("admins")
	assert.Error(t, err)
}
