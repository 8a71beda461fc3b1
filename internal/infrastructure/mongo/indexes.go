package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StoreIndexes lists the indexes of the stores collection.
func StoreIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
			Options: options.Index().SetName("txt_store_name_description"),
		},
		{
			Keys:    bson.D{{Key: "location", Value: "2dsphere"}},
			Options: options.Index().SetName("geo_store_location"),
		},
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetName("uniq_store_slug").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "tags", Value: 1}},
			Options: options.Index().SetName("idx_store_tags"),
		},
		{
			Keys:    bson.D{{Key: "created", Value: -1}},
			Options: options.Index().SetName("idx_store_created"),
		},
	}
}

// ReviewIndexes lists the indexes of the reviews collection.
func ReviewIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "store", Value: 1}},
			Options: options.Index().SetName("idx_review_store"),
		},
	}
}

// EnsureIndexes creates the indexes the repositories rely on. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database, storeCollection, reviewCollection string) error {
	if _, err := db.Collection(storeCollection).Indexes().CreateMany(ctx, StoreIndexes()); err != nil {
		return fmt.Errorf("create %s indexes: %w", storeCollection, translateError("mongo.EnsureIndexes", err))
	}
	if _, err := db.Collection(reviewCollection).Indexes().CreateMany(ctx, ReviewIndexes()); err != nil {
		return fmt.Errorf("create %s indexes: %w", reviewCollection, translateError("mongo.EnsureIndexes", err))
	}
	return nil
}
