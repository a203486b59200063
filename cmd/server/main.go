package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/programari/backend/internal/config"
	"github.com/programari/backend/internal/event"
	"github.com/programari/backend/internal/handler"
	"github.com/programari/backend/internal/logging"
	"github.com/programari/backend/internal/repository"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.Setup("booking-api")

	ctx := context.Background()

	var store repository.Storage
	if cfg.UseMemoryStorage() {
		mem := repository.NewMemoryStorage()
		n, err := repository.Seed(ctx, mem)
		if err != nil {
			logging.Fatal("seed failed", "error", err)
		}
		slog.Info("using in-memory storage", "services_seeded", n)
		store = mem
	} else {
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logging.Fatal("failed to connect to database", "error", err)
		}
		defer pool.Close()
		store = repository.NewPgStorage(pool)
	}

	// Kafka は任意。未設定ならイベントを捨てる
	var publisher event.Publisher = event.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = event.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaBookingTopic)
		slog.Info("publishing booking events", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaBookingTopic)
	}

	var limiter handler.Limiter
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logging.Fatal("invalid REDIS_URL", "error", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		limiter = handler.NewRedisRateLimiter(rdb, cfg.RateLimitPerMinute, time.Minute, "booking-api:rl")
	} else {
		rl := handler.NewRateLimiter(cfg.RateLimitPerMinute)
		defer rl.Close()
		limiter = rl
	}

	api := handler.NewServer(store, publisher, limiter, cfg.FrontendURL)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	// 溜まっているイベントを送ってから閉じる
	if err := api.Close(); err != nil {
		slog.Warn("publisher close failed", "error", err)
	}
	slog.Info("server stopped")
}
