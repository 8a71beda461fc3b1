package public

import "github.com/sngm3741/store-directory/api/internal/interfaces/http/common"

type storeListResponse struct {
	Items []common.StoreResponse `json:"items"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
	Total int64                  `json:"total"`
}

type tagStoresResponse struct {
	Tag string `json:"tag"`
	storeListResponse
}

type storeDetailResponse struct {
	common.StoreResponse
	Flash *common.Flash `json:"flash,omitempty"`
}

type searchResultResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type tagCountResponse struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type rankedStoreResponse struct {
	common.StoreResponse
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}
