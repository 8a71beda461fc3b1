package manage

import (
	"context"
	"fmt"
	"html"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sngm3741/store-directory/api/internal/interfaces/http/common"
)

func (h *Handler) storeCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, common.ErrorResponse{Error: "unauthorized"})
			return
		}

		var req storeUpsertRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, common.ErrorResponse{Error: "malformed request body"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		store, err := h.stores.Create(ctx, user.Actor(), req.command())
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		h.logger.Info("store created", zap.String("id", store.ID), zap.String("slug", store.Slug), zap.String("author", store.Author))

		flash := common.Flash{
			Type:    "success",
			Message: fmt.Sprintf("Successfully Created %s. Care to leave a review?", store.Name),
		}
		h.seeOther(w, flash, "/api/stores/"+store.Slug, common.NewStoreResponse(*store))
	}
}

func (h *Handler) storeEditHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, common.ErrorResponse{Error: "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		store, err := h.stores.Edit(ctx, user.Actor(), chi.URLParam(r, "id"))
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, common.NewStoreResponse(*store))
	}
}

func (h *Handler) storeUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, common.ErrorResponse{Error: "unauthorized"})
			return
		}

		var req storeUpsertRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, common.ErrorResponse{Error: "malformed request body"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		id := chi.URLParam(r, "id")
		store, err := h.stores.Update(ctx, user.Actor(), id, req.command())
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		h.logger.Info("store updated", zap.String("id", store.ID), zap.String("slug", store.Slug))

		flash := common.Flash{
			Type: "success",
			Message: fmt.Sprintf(`Successfully updated <strong>%s</strong>. <a href="/stores/%s">View Store</a>`,
				html.EscapeString(store.Name), store.Slug),
		}
		h.seeOther(w, flash, "/api/stores/"+store.ID+"/edit", common.NewStoreResponse(*store))
	}
}

// seeOther stores the flash for the next read and redirects there with 303.
func (h *Handler) seeOther(w http.ResponseWriter, flash common.Flash, location string, store common.StoreResponse) {
	if h.flash != nil {
		h.flash.Set(w, flash)
	}
	w.Header().Set("Location", location)
	common.WriteJSON(h.logger, w, http.StatusSeeOther, storeWriteResponse{
		Store:    store,
		Flash:    flash,
		Location: location,
	})
}
