package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fjod/go_shop/internal/cache"
	"github.com/fjod/go_shop/internal/circuitbreaker"
	"github.com/fjod/go_shop/internal/config"
	"github.com/fjod/go_shop/internal/export"
	"github.com/fjod/go_shop/internal/logger"
	"github.com/fjod/go_shop/internal/platform"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	h "github.com/fjod/go_shop/internal/http"
)

func main() {
	cfg, err := config.Load(os.Getenv("SHOP_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	l, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = l.Sync() }()
	zap.ReplaceGlobals(l)

	shop := platform.New(platform.WithLogger(l))
	if cfg.Seed.Enabled {
		if err := seed(shop, cfg.Seed); err != nil {
			l.Fatal("seed demo data", zap.Error(err))
		}
		l.Info("demo data loaded",
			zap.Int("products", len(cfg.Seed.Products)),
			zap.Int("users", len(cfg.Seed.Users)))
	}

	var docCache cache.DocumentCache = cache.NopCache{}
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			// The breaker keeps a dead Redis out of the request path.
			l.Warn("redis ping failed", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			l.Info("redis ping succeeded", zap.String("addr", cfg.Redis.Addr))
		}
		cancel()

		docCache = circuitbreaker.NewCache(
			cache.NewRedisCache(redisClient, cfg.Redis.DocumentTTL),
			circuitbreaker.DefaultSettings(),
			l,
		)
	}

	exporter, err := export.NewExporter(shop, docCache, cfg.DataDir, l)
	if err != nil {
		l.Fatal("create exporter", zap.Error(err))
	}

	router := h.NewRouter(shop, exporter, h.RouterConfig{
		RequestTimeout:     cfg.RequestTimeout,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
	}, l)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "shop"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		l.Info("shop starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		l.Error("server forced to shutdown", zap.Error(err))
	}
	exporter.Close()

	l.Info("server exited")
}
