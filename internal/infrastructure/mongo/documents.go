package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LocationDocument is the embedded GeoJSON point plus street address.
type LocationDocument struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
	Address     string    `bson:"address"`
}

// StoreDocument is the stored shape of a store. Reviews is only filled by a $lookup.
type StoreDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Slug        string             `bson:"slug"`
	Description string             `bson:"description,omitempty"`
	Tags        []string           `bson:"tags"`
	Created     time.Time          `bson:"created"`
	Location    LocationDocument   `bson:"location"`
	Photo       string             `bson:"photo,omitempty"`
	Author      string             `bson:"author"`
	Reviews     []ReviewDocument   `bson:"reviews,omitempty"`
}

// RankedStoreDocument is one row of the top-stores aggregation.
type RankedStoreDocument struct {
	StoreDocument `bson:",inline"`
	AverageRating float64 `bson:"averageRating"`
	ReviewCount   int     `bson:"reviewCount"`
}

// TagCountDocument is one row of the tag aggregation.
type TagCountDocument struct {
	Tag   string `bson:"_id"`
	Count int    `bson:"count"`
}

// ReviewDocument is the stored shape of a review. Store references the reviewed store.
type ReviewDocument struct {
	ID      primitive.ObjectID `bson:"_id"`
	Store   primitive.ObjectID `bson:"store"`
	Author  string             `bson:"author"`
	Text    string             `bson:"text"`
	Rating  int                `bson:"rating"`
	Created time.Time          `bson:"created"`
}
