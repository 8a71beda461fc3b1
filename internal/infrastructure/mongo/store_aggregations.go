package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sngm3741/store-directory/api/internal/directory/domain"
)

// TagsList counts tag occurrences across all stores, most frequent first.
// A tag repeated on one store counts once per occurrence.
func (r *StoreRepository) TagsList(ctx context.Context) ([]domain.TagCount, error) {
	cursor, err := r.stores.Aggregate(ctx, TagsPipeline())
	if err != nil {
		return nil, translateError("mongo.StoreRepository.TagsList", err)
	}
	defer cursor.Close(ctx)

	var docs []TagCountDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translateError("mongo.StoreRepository.TagsList", err)
	}

	tags := make([]domain.TagCount, 0, len(docs))
	for _, doc := range docs {
		tags = append(tags, domain.TagCount{Tag: doc.Tag, Count: doc.Count})
	}
	return tags, nil
}

// TopStores ranks stores with at least two reviews by mean rating.
func (r *StoreRepository) TopStores(ctx context.Context, limit int) ([]domain.RankedStore, error) {
	cursor, err := r.stores.Aggregate(ctx, TopStoresPipeline(r.reviewCollection, limit))
	if err != nil {
		return nil, translateError("mongo.StoreRepository.TopStores", err)
	}
	defer cursor.Close(ctx)

	var docs []RankedStoreDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translateError("mongo.StoreRepository.TopStores", err)
	}

	ranked := make([]domain.RankedStore, 0, len(docs))
	for _, doc := range docs {
		ranked = append(ranked, domain.RankedStore{
			Store:         mapStoreDocument(doc.StoreDocument, true),
			AverageRating: doc.AverageRating,
			ReviewCount:   doc.ReviewCount,
		})
	}
	return ranked, nil
}

// TagsPipeline: $unwind tags, $group by tag, $sort by count.
func TagsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$unwind", Value: "$tags"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$tags"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
}

// TopStoresPipeline joins reviews, keeps stores whose second review exists,
// and sorts by the average rating.
func TopStoresPipeline(reviewCollection string, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		reviewsLookupStage(reviewCollection),
		{{Key: "$match", Value: bson.D{{Key: "reviews.1", Value: bson.D{{Key: "$exists", Value: true}}}}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "averageRating", Value: bson.D{{Key: "$avg", Value: "$reviews.rating"}}},
			{Key: "reviewCount", Value: bson.D{{Key: "$size", Value: "$reviews"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "averageRating", Value: -1}, {Key: "reviewCount", Value: -1}}}},
		{{Key: "$limit", Value: int64(limit)}},
	}
}
