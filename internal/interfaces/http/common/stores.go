package common

import (
	"time"

	"github.com/sngm3741/store-directory/api/internal/directory/domain"
)

type LocationResponse struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
	Address     string    `json:"address"`
}

type ReviewResponse struct {
	ID      string    `json:"id"`
	Store   string    `json:"store"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Rating  int       `json:"rating"`
	Created time.Time `json:"created"`
}

// StoreResponse is the JSON shape of a store. Reviews is omitted unless they were joined.
type StoreResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Slug        string            `json:"slug"`
	Description string            `json:"description,omitempty"`
	Tags        []string          `json:"tags"`
	Created     time.Time         `json:"created"`
	Location    LocationResponse  `json:"location"`
	Photo       string            `json:"photo,omitempty"`
	Author      string            `json:"author"`
	Reviews     *[]ReviewResponse `json:"reviews,omitempty"`
}

func NewStoreResponse(store domain.Store) StoreResponse {
	resp := StoreResponse{
		ID:          store.ID,
		Name:        store.Name,
		Slug:        store.Slug,
		Description: store.Description,
		Tags:        append([]string{}, store.Tags...),
		Created:     store.Created,
		Location: LocationResponse{
			Type:        store.Location.Type,
			Coordinates: append([]float64{}, store.Location.Coordinates...),
			Address:     store.Location.Address,
		},
		Photo:  store.Photo,
		Author: store.Author,
	}
	if store.Reviews != nil {
		reviews := make([]ReviewResponse, 0, len(store.Reviews))
		for _, r := range store.Reviews {
			reviews = append(reviews, NewReviewResponse(r))
		}
		resp.Reviews = &reviews
	}
	return resp
}

func NewReviewResponse(r domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:      r.ID,
		Store:   r.StoreID,
		Author:  r.Author,
		Text:    r.Text,
		Rating:  r.Rating,
		Created: r.Created,
	}
}

func NewStoreResponses(stores []domain.Store) []StoreResponse {
	items := make([]StoreResponse, 0, len(stores))
	for _, s := range stores {
		items = append(items, NewStoreResponse(s))
	}
	return items
}
