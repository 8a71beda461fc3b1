package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/sngm3741/store-directory/api/internal/config"
	"github.com/sngm3741/store-directory/api/internal/directory/application"
	mongodoc "github.com/sngm3741/store-directory/api/internal/infrastructure/mongo"
	rediscache "github.com/sngm3741/store-directory/api/internal/infrastructure/redis"
	commonhttp "github.com/sngm3741/store-directory/api/internal/interfaces/http/common"
	managehttp "github.com/sngm3741/store-directory/api/internal/interfaces/http/manage"
	publichttp "github.com/sngm3741/store-directory/api/internal/interfaces/http/public"
)

// HealthCheck reports whether a backing service is reachable.
type HealthCheck func(ctx context.Context) error

// Services groups the application services the HTTP layer is wired to.
type Services struct {
	Stores   application.StoreService
	Rankings application.RankingService
	Reviews  application.ReviewService
}

// Server owns the HTTP server lifecycle and wires services into the handlers.
type Server struct {
	logger   *zap.Logger
	cfg      config.Config
	services Services
	health   map[string]HealthCheck
	registry *prometheus.Registry
	closers  []func(context.Context) error

	handlerOnce sync.Once
	handler     http.Handler
}

// New wires Mongo repositories, the optional Redis ranking cache and the application services.
// rdb may be nil, in which case rankings are always computed from Mongo.
func New(cfg config.Config, client *mongo.Client, rdb *goredis.Client, logger *zap.Logger) (*Server, error) {
	db := client.Database(cfg.MongoDatabase)
	storeRepo := mongodoc.NewStoreRepository(db, cfg.StoreCollection, cfg.ReviewCollection)
	reviewRepo := mongodoc.NewReviewRepository(db, cfg.ReviewCollection)

	policy, err := application.NewEditPolicy(cfg.EditPolicy)
	if err != nil {
		return nil, err
	}

	var cache application.RankingCache
	health := map[string]HealthCheck{
		"mongo": func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) },
	}
	closers := []func(context.Context) error{client.Disconnect}
	if rdb != nil {
		cache = rediscache.NewRankingCache(rdb, cfg.RankingCacheTTL)
		health["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		closers = append(closers, func(context.Context) error { return rdb.Close() })
	}

	services := Services{
		Stores: application.NewStoreService(application.StoreServiceConfig{
			Repo:   storeRepo,
			Policy: policy,
			Cache:  cache,
			Logger: logger.Named("stores"),
		}),
		Rankings: application.NewRankingService(storeRepo, cache, logger.Named("rankings")),
		Reviews:  application.NewReviewService(storeRepo, reviewRepo, cache, logger.Named("reviews")),
	}

	srv := NewWithServices(cfg, services, logger, NewMetricsRegistry())
	srv.health = health
	srv.closers = closers
	return srv, nil
}

// NewWithServices builds a server around already constructed services.
func NewWithServices(cfg config.Config, services Services, logger *zap.Logger, registry *prometheus.Registry) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	return &Server{
		logger:   logger,
		cfg:      cfg,
		services: services,
		health:   map[string]HealthCheck{},
		registry: registry,
	}
}

// Handler returns the router with its middleware chain. It is built once.
func (s *Server) Handler() http.Handler {
	s.handlerOnce.Do(func() { s.handler = s.routes() })
	return s.handler
}

func (s *Server) routes() http.Handler {
	metrics := NewHTTPMetrics(s.registry, "store-directory")
	limiter := newIPRateLimiter(s.cfg.SearchRateLimit, s.cfg.SearchRateBurst)
	flash := commonhttp.NewFlashStore(s.cfg.FlashSecret, s.cfg.FlashSecure)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(s.logger))
	router.Use(middleware.Recoverer)
	router.Use(metrics.Middleware)
	router.Use(newCORS(s.cfg.AllowedOrigins).Handler)

	router.Get("/healthz", s.healthHandler())
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:         s.logger.Named("public"),
		Stores:         s.services.Stores,
		Rankings:       s.services.Rankings,
		Flash:          flash,
		RequestTimeout: s.cfg.RequestTimeout,
	})
	manageHandler := managehttp.NewHandler(managehttp.Config{
		Logger:         s.logger.Named("manage"),
		Stores:         s.services.Stores,
		Reviews:        s.services.Reviews,
		Flash:          flash,
		RequestTimeout: s.cfg.RequestTimeout,
	})
	router.Route("/api", func(r chi.Router) {
		publicHandler.Register(r, s.authMiddleware, limiter.Middleware)
		manageHandler.Register(r, s.authMiddleware)
	})

	return router
}

// Run starts the HTTP server and blocks until ctx is cancelled, SIGINT/SIGTERM arrives or
// the listener fails.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.cfg.Addr))
		errChan <- httpServer.ListenAndServe()
	}()

	return s.waitForShutdown(ctx, httpServer, errChan)
}

func (s *Server) waitForShutdown(ctx context.Context, httpServer *http.Server, errChan <-chan error) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runErr error
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	case <-ctx.Done():
		s.logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("http server shutdown failed", zap.Error(err))
		}
	}

	s.shutdown(context.Background())
	return runErr
}

// shutdown closes backing clients with a timeout.
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	for _, closeFn := range s.closers {
		if err := closeFn(shutdownCtx); err != nil {
			s.logger.Warn("close failed", zap.Error(err))
		}
	}
}
