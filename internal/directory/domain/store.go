package domain

import "time"

// PointType is the only GeoJSON geometry a store location may carry.
const PointType = "Point"

// Store is a listing in the directory.
type Store struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Tags        []string
	Created     time.Time
	Location    Location
	Photo       string
	Author      string
	// Reviews is nil unless the read asked for reviews; a joined read always sets a non-nil slice.
	Reviews []Review
}

// Location is a GeoJSON point plus the human readable address.
// Coordinates are ordered longitude, latitude.
type Location struct {
	Type        string
	Coordinates []float64
	Address     string
}

// Review is the collaborator entity joined onto stores.
type Review struct {
	ID      string
	StoreID string
	Author  string
	Text    string
	Rating  int
	Created time.Time
}

// TagCount is one row of the tag frequency list.
type TagCount struct {
	Tag   string
	Count int
}

// RankedStore is a store annotated with the mean rating of its reviews.
type RankedStore struct {
	Store
	AverageRating float64
	ReviewCount   int
}

// Actor is the authenticated principal performing a write.
type Actor struct {
	ID   string
	Name string
}

// StoreDraft is the raw, untrusted input for building a Store.
type StoreDraft struct {
	Name        string
	Description string
	Tags        []string
	Coordinates []float64
	Address     string
	Photo       string
	Author      string
}

// NewStore validates the draft and returns a store with trimmed fields and a Point location.
// All failing fields are reported together in a *ValidationError.
func NewStore(d StoreDraft) (*Store, error) {
	verr := &ValidationError{}

	name, err := NewStoreName(d.Name)
	if err != nil {
		verr.Add("name", err.Error())
	}
	description, err := NewDescription(d.Description)
	if err != nil {
		verr.Add("description", err.Error())
	}
	coords, err := NewCoordinates(d.Coordinates)
	if err != nil {
		verr.Add("location.coordinates", err.Error())
	}
	address, err := NewAddress(d.Address)
	if err != nil {
		verr.Add("location.address", err.Error())
	}
	photo, err := NewPhoto(d.Photo)
	if err != nil {
		verr.Add("photo", err.Error())
	}
	author, err := NewAuthor(d.Author)
	if err != nil {
		verr.Add("author", err.Error())
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	return &Store{
		Name:        name,
		Description: description,
		Tags:        NewTagList(d.Tags),
		Location: Location{
			Type:        PointType,
			Coordinates: coords,
			Address:     address,
		},
		Photo:  photo,
		Author: author,
	}, nil
}

// NewReview validates a review for storeID.
func NewReview(storeID, author, text string, rating int) (*Review, error) {
	verr := &ValidationError{}
	if storeID == "" {
		verr.Add("store", "You must supply a store")
	}
	a, err := NewAuthor(author)
	if err != nil {
		verr.Add("author", err.Error())
	}
	r, err := NewRating(rating)
	if err != nil {
		verr.Add("rating", err.Error())
	}
	t, err := NewReviewText(text)
	if err != nil {
		verr.Add("text", err.Error())
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return &Review{StoreID: storeID, Author: a, Text: t, Rating: r}, nil
}
