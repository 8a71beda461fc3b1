package mongo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sngm3741/store-directory/api/internal/directory/application"
	"github.com/sngm3741/store-directory/api/internal/directory/domain"
)

func TestSlugCountFilter(t *testing.T) {
	id := primitive.NewObjectID()
	filter := slugCountFilter("pizza", id.Hex())

	re, ok := filter["slug"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "i", re.Options)
	assert.Equal(t, bson.M{"$ne": id}, filter["_id"])

	compiled := regexp.MustCompile("(?i)" + re.Pattern)
	assert.True(t, compiled.MatchString("pizza"))
	assert.True(t, compiled.MatchString("Pizza-3"))
	assert.False(t, compiled.MatchString("pizza-hut"))

	withoutSelf := slugCountFilter("pizza", "")
	assert.NotContains(t, withoutSelf, "_id")
}

func TestStoreFilterDocument(t *testing.T) {
	assert.Equal(t, bson.M{}, storeFilterDocument(application.StoreFilter{}))
	assert.Equal(t, bson.M{"tags": "Wifi"}, storeFilterDocument(application.StoreFilter{Tag: " Wifi "}))
}

func TestTagsPipeline(t *testing.T) {
	p := TagsPipeline()
	require.Len(t, p, 3)
	assert.Equal(t, "$unwind", p[0][0].Key)
	assert.Equal(t, "$tags", p[0][0].Value)
	assert.Equal(t, "$group", p[1][0].Key)
	assert.Equal(t, "$sort", p[2][0].Key)
	assert.Equal(t, bson.E{Key: "count", Value: -1}, p[2][0].Value.(bson.D)[0])
}

func TestTopStoresPipeline(t *testing.T) {
	p := TopStoresPipeline("reviews", 10)
	require.Len(t, p, 5)

	lookup := p[0][0].Value.(bson.M)
	assert.Equal(t, "reviews", lookup["from"])
	assert.Equal(t, "store", lookup["foreignField"])

	match := p[1][0].Value.(bson.D)
	assert.Equal(t, "reviews.1", match[0].Key)

	assert.Equal(t, "$addFields", p[2][0].Key)
	assert.Equal(t, "$sort", p[3][0].Key)
	assert.Equal(t, bson.E{Key: "$limit", Value: int64(10)}, p[4][0])
}

func TestMapStoreDocument_JoinedReviewsNeverNil(t *testing.T) {
	doc := StoreDocument{ID: primitive.NewObjectID(), Name: "Cafe", Slug: "cafe"}

	plain := mapStoreDocument(doc, false)
	assert.Nil(t, plain.Reviews)
	assert.NotNil(t, plain.Tags)

	joined := mapStoreDocument(doc, true)
	assert.NotNil(t, joined.Reviews)
	assert.Empty(t, joined.Reviews)

	storeID := primitive.NewObjectID()
	doc.Reviews = []ReviewDocument{{ID: primitive.NewObjectID(), Store: storeID, Author: "u1", Text: "ok", Rating: 4}}
	withReviews := mapStoreDocument(doc, true)
	require.Len(t, withReviews.Reviews, 1)
	assert.Equal(t, storeID.Hex(), withReviews.Reviews[0].StoreID)
	assert.Equal(t, 4, withReviews.Reviews[0].Rating)
}

func TestStoreUpdateDocument_ForcesPoint(t *testing.T) {
	store := &domain.Store{
		Name:     "Cafe",
		Slug:     "cafe",
		Location: domain.Location{Type: "Polygon", Coordinates: []float64{1, 2}, Address: "x"},
	}
	set := storeUpdateDocument(store)
	loc := set["location"].(LocationDocument)
	assert.Equal(t, domain.PointType, loc.Type)
	assert.NotContains(t, set, "author")
	assert.NotContains(t, set, "created")
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError("op", nil))
	assert.ErrorIs(t, translateError("op", mongo.ErrNoDocuments), domain.ErrNotFound)

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.ErrorIs(t, translateError("op", dup), domain.ErrSlugTaken)

	assert.ErrorIs(t, translateError("op", context.DeadlineExceeded), domain.ErrStorageUnavailable)

	other := errors.New("boom")
	assert.ErrorIs(t, translateError("op", other), other)
}

func TestParseObjectID(t *testing.T) {
	_, err := parseObjectID("op", "not-an-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	id := primitive.NewObjectID()
	got, err := parseObjectID("op", id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestStoreIndexes(t *testing.T) {
	var unique bool
	for _, idx := range StoreIndexes() {
		keys := idx.Keys.(bson.D)
		if keys[0].Key == "slug" {
			unique = idx.Options.Unique != nil && *idx.Options.Unique
		}
	}
	assert.True(t, unique, "slug index must be unique")
}

// dbTimeout bounds integration calls.
const dbTimeout = 10 * time.Second
