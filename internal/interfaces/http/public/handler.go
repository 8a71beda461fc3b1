package public

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sngm3741/store-directory/api/internal/directory/application"
	"github.com/sngm3741/store-directory/api/internal/interfaces/http/common"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger   *zap.Logger
	stores   application.StoreService
	rankings application.RankingService
	flash    *common.FlashStore
	timeout  time.Duration
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger         *zap.Logger
	Stores         application.StoreService
	Rankings       application.RankingService
	Flash          *common.FlashStore
	RequestTimeout time.Duration
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	h := &Handler{
		logger:   cfg.Logger,
		stores:   cfg.Stores,
		rankings: cfg.Rankings,
		flash:    cfg.Flash,
		timeout:  cfg.RequestTimeout,
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	if h.timeout <= 0 {
		h.timeout = common.DefaultRequestTimeout
	}
	return h
}

// Register mounts all public routes onto the router. searchMiddleware wraps the typeahead
// endpoint only.
func (h *Handler) Register(r chi.Router, authMiddleware, searchMiddleware func(http.Handler) http.Handler) {
	if searchMiddleware == nil {
		searchMiddleware = passthrough
	}
	r.Get("/stores", h.storeListHandler())
	r.Get("/stores/{slug}", h.storeDetailHandler())
	r.With(searchMiddleware).Get("/search", h.storeSearchHandler())
	r.Get("/tags", h.tagListHandler())
	r.Get("/tags/{tag}/stores", h.tagStoresHandler())
	r.Get("/top", h.topStoresHandler())
	r.With(authMiddleware).Get("/auth/verify", h.authVerifyHandler())
}

func passthrough(next http.Handler) http.Handler { return next }
