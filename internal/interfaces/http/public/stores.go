package public

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/store-directory/api/internal/directory/application"
	"github.com/sngm3741/store-directory/api/internal/interfaces/http/common"
)

func (h *Handler) storeListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		page, err := h.listStores(ctx, r, application.StoreFilter{})
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, page)
	}
}

func (h *Handler) tagStoresHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		tag := strings.TrimSpace(chi.URLParam(r, "tag"))
		page, err := h.listStores(ctx, r, application.StoreFilter{Tag: tag})
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, tagStoresResponse{Tag: tag, storeListResponse: page})
	}
}

func (h *Handler) listStores(ctx context.Context, r *http.Request, filter application.StoreFilter) (storeListResponse, error) {
	query := r.URL.Query()
	page, _ := common.ParsePositiveInt(query.Get("page"), 1)
	limit, _ := common.ParsePositiveInt(query.Get("limit"), application.DefaultPageLimit)
	opts := application.FindOptions{IncludeReviews: common.ParseBool(query.Get("includeReviews"))}

	result, err := h.stores.List(ctx, filter, application.Paging{Page: page, Limit: limit}, opts)
	if err != nil {
		return storeListResponse{}, err
	}
	return storeListResponse{
		Items: common.NewStoreResponses(result.Items),
		Page:  result.Page,
		Limit: result.Limit,
		Total: result.Total,
	}, nil
}

func (h *Handler) storeDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		store, err := h.stores.Detail(ctx, chi.URLParam(r, "slug"))
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		resp := storeDetailResponse{StoreResponse: common.NewStoreResponse(*store)}
		if h.flash != nil {
			if flash, ok := h.flash.Pop(w, r); ok {
				resp.Flash = &flash
			}
		}
		common.WriteJSON(h.logger, w, http.StatusOK, resp)
	}
}

func (h *Handler) storeSearchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		stores, err := h.stores.Search(ctx, r.URL.Query().Get("q"))
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}

		results := make([]searchResultResponse, 0, len(stores))
		for _, s := range stores {
			results = append(results, searchResultResponse{Name: s.Name, Slug: s.Slug})
		}
		common.WriteJSON(h.logger, w, http.StatusOK, results)
	}
}
