package manage

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sngm3741/store-directory/api/internal/directory/application"
	"github.com/sngm3741/store-directory/api/internal/interfaces/http/common"
)

// Handler serves the authenticated store editing endpoints.
type Handler struct {
	logger  *zap.Logger
	stores  application.StoreService
	reviews application.ReviewService
	flash   *common.FlashStore
	timeout time.Duration
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger         *zap.Logger
	Stores         application.StoreService
	Reviews        application.ReviewService
	Flash          *common.FlashStore
	RequestTimeout time.Duration
}

func NewHandler(cfg Config) *Handler {
	h := &Handler{
		logger:  cfg.Logger,
		stores:  cfg.Stores,
		reviews: cfg.Reviews,
		flash:   cfg.Flash,
		timeout: cfg.RequestTimeout,
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	if h.timeout <= 0 {
		h.timeout = common.DefaultRequestTimeout
	}
	return h
}

// Register mounts the write routes. Every route requires authMiddleware.
func (h *Handler) Register(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/stores", h.storeCreateHandler())
		r.Get("/stores/{id}/edit", h.storeEditHandler())
		r.Post("/stores/{id}", h.storeUpdateHandler())
		r.Post("/stores/{id}/reviews", h.reviewCreateHandler())
	})
}
