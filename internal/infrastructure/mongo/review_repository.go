package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sngm3741/store-directory/api/internal/directory/application"
	"github.com/sngm3741/store-directory/api/internal/directory/domain"
)

// ReviewRepository writes to the reviews collection.
type ReviewRepository struct {
	collection *mongo.Collection
}

var _ application.ReviewRepository = (*ReviewRepository)(nil)

func NewReviewRepository(db *mongo.Database, collectionName string) *ReviewRepository {
	return &ReviewRepository{collection: db.Collection(collectionName)}
}

// Create inserts the review and assigns its ID.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	storeID, err := parseObjectID("mongo.ReviewRepository.Create", review.StoreID)
	if err != nil {
		return err
	}
	doc := ReviewDocument{
		ID:      primitive.NewObjectID(),
		Store:   storeID,
		Author:  review.Author,
		Text:    review.Text,
		Rating:  review.Rating,
		Created: review.Created,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return translateError("mongo.ReviewRepository.Create", err)
	}
	review.ID = doc.ID.Hex()
	return nil
}
