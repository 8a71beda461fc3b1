package manage

import (
	"github.com/sngm3741/store-directory/api/internal/directory/application"
	"github.com/sngm3741/store-directory/api/internal/interfaces/http/common"
)

type locationRequest struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
	Address     string    `json:"address"`
}

type storeUpsertRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags"`
	Location    locationRequest `json:"location"`
	Photo       string          `json:"photo"`
}

func (req storeUpsertRequest) command() application.UpsertStoreCommand {
	return application.UpsertStoreCommand{
		Name:        req.Name,
		Description: req.Description,
		Tags:        req.Tags,
		Location: application.LocationCommand{
			Type:        req.Location.Type,
			Coordinates: req.Location.Coordinates,
			Address:     req.Location.Address,
		},
		Photo: req.Photo,
	}
}

type reviewCreateRequest struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

type storeWriteResponse struct {
	Store    common.StoreResponse `json:"store"`
	Flash    common.Flash         `json:"flash"`
	Location string               `json:"location"`
}

type reviewWriteResponse struct {
	Review common.ReviewResponse `json:"review"`
	Flash  common.Flash          `json:"flash"`
}
