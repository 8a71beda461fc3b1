package public

import (
	"context"
	"net/http"

	"github.com/sngm3741/store-directory/api/internal/interfaces/http/common"
)

func (h *Handler) tagListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		tags, err := h.rankings.Tags(ctx)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		items := make([]tagCountResponse, 0, len(tags))
		for _, t := range tags {
			items = append(items, tagCountResponse{Tag: t.Tag, Count: t.Count})
		}
		common.WriteJSON(h.logger, w, http.StatusOK, items)
	}
}

func (h *Handler) topStoresHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		stores, err := h.rankings.TopStores(ctx)
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		items := make([]rankedStoreResponse, 0, len(stores))
		for _, s := range stores {
			items = append(items, rankedStoreResponse{
				StoreResponse: common.NewStoreResponse(s.Store),
				AverageRating: s.AverageRating,
				ReviewCount:   s.ReviewCount,
			})
		}
		common.WriteJSON(h.logger, w, http.StatusOK, items)
	}
}
