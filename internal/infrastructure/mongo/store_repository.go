package mongo

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sngm3741/store-directory/api/internal/directory/application"
	"github.com/sngm3741/store-directory/api/internal/directory/domain"
)

// StoreRepository implements application.StoreRepository and application.RankingRepository using MongoDB.
type StoreRepository struct {
	stores           *mongo.Collection
	reviewCollection string
}

var (
	_ application.StoreRepository   = (*StoreRepository)(nil)
	_ application.RankingRepository = (*StoreRepository)(nil)
)

// NewStoreRepository creates a new Mongo-backed store repository. reviewCollection is the
// join target used when reviews are requested.
func NewStoreRepository(db *mongo.Database, storeCollection, reviewCollection string) *StoreRepository {
	return &StoreRepository{
		stores:           db.Collection(storeCollection),
		reviewCollection: reviewCollection,
	}
}

// Find returns one page of stores, newest first, plus the total number of matches.
func (r *StoreRepository) Find(ctx context.Context, filter application.StoreFilter, paging application.Paging, opts application.FindOptions) ([]domain.Store, int64, error) {
	match := storeFilterDocument(filter)

	total, err := r.stores.CountDocuments(ctx, match)
	if err != nil {
		return nil, 0, translateError("mongo.StoreRepository.Find", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "created", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$skip", Value: int64(paging.Offset())}},
		{{Key: "$limit", Value: int64(paging.Limit)}},
	}
	if opts.IncludeReviews {
		pipeline = append(pipeline, reviewsLookupStage(r.reviewCollection))
	}

	stores, err := r.aggregateStores(ctx, pipeline, opts)
	if err != nil {
		return nil, 0, translateError("mongo.StoreRepository.Find", err)
	}
	return stores, total, nil
}

// FindByID returns a single store by its identifier.
func (r *StoreRepository) FindByID(ctx context.Context, id string, opts application.FindOptions) (*domain.Store, error) {
	objectID, err := parseObjectID("mongo.StoreRepository.FindByID", id)
	if err != nil {
		return nil, err
	}
	store, err := r.findOne(ctx, bson.M{"_id": objectID}, opts)
	return store, translateError("mongo.StoreRepository.FindByID", err)
}

// FindBySlug returns a single store by its slug.
func (r *StoreRepository) FindBySlug(ctx context.Context, slug string, opts application.FindOptions) (*domain.Store, error) {
	store, err := r.findOne(ctx, bson.M{"slug": strings.ToLower(slug)}, opts)
	return store, translateError("mongo.StoreRepository.FindBySlug", err)
}

func (r *StoreRepository) findOne(ctx context.Context, match bson.M, opts application.FindOptions) (*domain.Store, error) {
	if !opts.IncludeReviews {
		var doc StoreDocument
		if err := r.stores.FindOne(ctx, match).Decode(&doc); err != nil {
			return nil, err
		}
		store := mapStoreDocument(doc, false)
		return &store, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$limit", Value: int64(1)}},
		reviewsLookupStage(r.reviewCollection),
	}
	stores, err := r.aggregateStores(ctx, pipeline, opts)
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return &stores[0], nil
}

// CountSlugs counts stores whose slug is base or base-N, ignoring excludeID.
func (r *StoreRepository) CountSlugs(ctx context.Context, base string, excludeID string) (int, error) {
	filter := slugCountFilter(base, excludeID)
	n, err := r.stores.CountDocuments(ctx, filter)
	if err != nil {
		return 0, translateError("mongo.StoreRepository.CountSlugs", err)
	}
	return int(n), nil
}

// Create inserts the store and assigns its ID. A slug collision surfaces as domain.ErrSlugTaken.
func (r *StoreRepository) Create(ctx context.Context, store *domain.Store) error {
	doc := storeDocumentFromDomain(store)
	doc.ID = primitive.NewObjectID()
	if _, err := r.stores.InsertOne(ctx, doc); err != nil {
		return translateError("mongo.StoreRepository.Create", err)
	}
	store.ID = doc.ID.Hex()
	return nil
}

// Update replaces the editable fields of the store and reloads it.
func (r *StoreRepository) Update(ctx context.Context, store *domain.Store) error {
	objectID, err := parseObjectID("mongo.StoreRepository.Update", store.ID)
	if err != nil {
		return err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc StoreDocument
	err = r.stores.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": storeUpdateDocument(store)}, opts).Decode(&doc)
	if err != nil {
		return translateError("mongo.StoreRepository.Update", err)
	}
	*store = mapStoreDocument(doc, false)
	return nil
}

// Search runs a text-index query ordered by relevance.
func (r *StoreRepository) Search(ctx context.Context, query string, limit int) ([]domain.Store, error) {
	score := bson.M{"$meta": "textScore"}
	opts := options.Find().
		SetProjection(bson.M{"score": score}).
		SetSort(bson.D{{Key: "score", Value: score}}).
		SetLimit(int64(limit))

	cursor, err := r.stores.Find(ctx, bson.M{"$text": bson.M{"$search": query}}, opts)
	if err != nil {
		return nil, translateError("mongo.StoreRepository.Search", err)
	}
	defer cursor.Close(ctx)

	stores := make([]domain.Store, 0, limit)
	for cursor.Next(ctx) {
		var doc StoreDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, translateError("mongo.StoreRepository.Search", err)
		}
		stores = append(stores, mapStoreDocument(doc, false))
	}
	if err := cursor.Err(); err != nil {
		return nil, translateError("mongo.StoreRepository.Search", err)
	}
	return stores, nil
}

func (r *StoreRepository) aggregateStores(ctx context.Context, pipeline mongo.Pipeline, opts application.FindOptions) ([]domain.Store, error) {
	cursor, err := r.stores.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stores := make([]domain.Store, 0)
	for cursor.Next(ctx) {
		var doc StoreDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		stores = append(stores, mapStoreDocument(doc, opts.IncludeReviews))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return stores, nil
}

func storeFilterDocument(filter application.StoreFilter) bson.M {
	match := bson.M{}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		match["tags"] = tag
	}
	return match
}

func slugCountFilter(base, excludeID string) bson.M {
	filter := bson.M{
		"slug": primitive.Regex{Pattern: domain.SlugPattern(base), Options: "i"},
	}
	if oid, err := primitive.ObjectIDFromHex(excludeID); err == nil {
		filter["_id"] = bson.M{"$ne": oid}
	}
	return filter
}

func reviewsLookupStage(reviewCollection string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from":         reviewCollection,
		"localField":   "_id",
		"foreignField": "store",
		"as":           "reviews",
	}}}
}

func storeUpdateDocument(store *domain.Store) bson.M {
	return bson.M{
		"name":        store.Name,
		"slug":        store.Slug,
		"description": store.Description,
		"tags":        nonNilStrings(store.Tags),
		"location": LocationDocument{
			Type:        domain.PointType,
			Coordinates: store.Location.Coordinates,
			Address:     store.Location.Address,
		},
		"photo": store.Photo,
	}
}

func storeDocumentFromDomain(store *domain.Store) StoreDocument {
	return StoreDocument{
		Name:        store.Name,
		Slug:        store.Slug,
		Description: store.Description,
		Tags:        nonNilStrings(store.Tags),
		Created:     store.Created,
		Location: LocationDocument{
			Type:        domain.PointType,
			Coordinates: append([]float64{}, store.Location.Coordinates...),
			Address:     store.Location.Address,
		},
		Photo:  store.Photo,
		Author: store.Author,
	}
}

// mapStoreDocument converts a document; joined guarantees a non-nil Reviews slice.
func mapStoreDocument(doc StoreDocument, joined bool) domain.Store {
	store := domain.Store{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Slug:        doc.Slug,
		Description: doc.Description,
		Tags:        nonNilStrings(doc.Tags),
		Created:     doc.Created,
		Location: domain.Location{
			Type:        doc.Location.Type,
			Coordinates: append([]float64{}, doc.Location.Coordinates...),
			Address:     doc.Location.Address,
		},
		Photo:  doc.Photo,
		Author: doc.Author,
	}
	if joined || len(doc.Reviews) > 0 {
		store.Reviews = make([]domain.Review, 0, len(doc.Reviews))
		for _, rd := range doc.Reviews {
			store.Reviews = append(store.Reviews, mapReviewDocument(rd))
		}
	}
	return store
}

func mapReviewDocument(doc ReviewDocument) domain.Review {
	return domain.Review{
		ID:      doc.ID.Hex(),
		StoreID: doc.Store.Hex(),
		Author:  doc.Author,
		Text:    doc.Text,
		Rating:  doc.Rating,
		Created: doc.Created,
	}
}

func nonNilStrings(values []string) []string {
	return append([]string{}, values...)
}
