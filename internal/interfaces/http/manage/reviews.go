package manage

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sngm3741/store-directory/api/internal/directory/application"
	"github.com/sngm3741/store-directory/api/internal/interfaces/http/common"
)

func (h *Handler) reviewCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, common.ErrorResponse{Error: "unauthorized"})
			return
		}

		var req reviewCreateRequest
		if err := common.DecodeJSON(w, r, &req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, common.ErrorResponse{Error: "malformed request body"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		review, err := h.reviews.Add(ctx, user.Actor(), chi.URLParam(r, "id"), application.AddReviewCommand{
			Text:   req.Text,
			Rating: req.Rating,
		})
		if err != nil {
			common.WriteError(h.logger, w, err)
			return
		}
		h.logger.Info("review created", zap.String("id", review.ID), zap.String("store", review.StoreID))

		flash := common.Flash{Type: "success", Message: "Review Saved!"}
		if h.flash != nil {
			h.flash.Set(w, flash)
		}
		common.WriteJSON(h.logger, w, http.StatusCreated, reviewWriteResponse{
			Review: common.NewReviewResponse(*review),
			Flash:  flash,
		})
	}
}
