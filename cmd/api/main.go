package main

import (
	"context"
	"log"
	"os"

	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/sngm3741/store-directory/api/internal/config"
	mongodoc "github.com/sngm3741/store-directory/api/internal/infrastructure/mongo"
	rediscache "github.com/sngm3741/store-directory/api/internal/infrastructure/redis"
	"github.com/sngm3741/store-directory/api/internal/server"
	"github.com/sngm3741/store-directory/api/pkg/logger"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("load .env: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, zl *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetRetryReads(true).
		SetRetryWrites(true)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return err
	}

	if err := mongodoc.EnsureIndexes(ctx, client.Database(cfg.MongoDatabase), cfg.StoreCollection, cfg.ReviewCollection); err != nil {
		_ = client.Disconnect(context.Background())
		return err
	}

	var rdb *goredis.Client
	if cfg.RedisAddr != "" {
		rdb, err = rediscache.NewClient(ctx, rediscache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, zl)
		if err != nil {
			zl.Warn("ranking cache disabled", zap.Error(err))
			rdb = nil
		}
	}

	app, err := server.New(cfg, client, rdb, zl)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return err
	}
	return app.Run(context.Background())
}
