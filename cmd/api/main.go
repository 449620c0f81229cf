package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	v1 "github.com/AsyncNomad/nolzaGo-back/cmd/api/router/v1"
	"github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/auth"
	cacheadapter "github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/cache/adapter"
	cacheport "github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/cache/port"
	"github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/database"
	queueadapter "github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/queue/adapter"
	"github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/realtime"
	sumadapter "github.com/AsyncNomad/nolzaGo-back/internal/infrastructure/summarizer/adapter"
	chatadapter "github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/persistence/repository/adapter"
	"github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/application/task"
	chatusecase "github.com/AsyncNomad/nolzaGo-back/internal/pkg/chat/application/usecase"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Warn(".env file not found or could not be loaded", "err", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	pool, err := database.NewPoolFromEnv(ctx)
	cancel()
	if err != nil {
		logger.Error("connect to database", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	resolver := auth.NewTokenResolver(os.Getenv("JWT_SECRET"))
	registry := realtime.NewRegistry(logger)
	publish := realtime.NewPublishGuard()

	// Redis-backed pieces degrade to nil collaborators when unconfigured,
	// so the chat core runs on a bare database in development.
	var cache cacheport.Cache
	if url := os.Getenv("REDIS_URL"); url == "" {
		logger.Warn("summary cache disabled", "err", "REDIS_URL is not set")
	} else if redisCache, err := cacheadapter.NewRedis(url); err != nil {
		logger.Warn("summary cache disabled", "err", err)
	} else {
		cache = redisCache
		defer redisCache.Close()
	}

	queueClient, err := queueadapter.NewAsynqClientFromEnv()
	if err != nil {
		logger.Warn("task queue disabled", "err", err)
	}

	summarizer := sumadapter.NewGeminiFromEnv()
	summaryUC := chatusecase.NewSummarizeChatUseCase(chatadapter.NewPgChatRepository(pool), summarizer, cache)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if queueClient != nil {
		worker, err := queueadapter.NewAsynqServerFromEnv(logger)
		if err != nil {
			logger.Warn("task worker disabled", "err", err)
		} else {
			task.RegisterRefreshSummaryTask(worker, summaryUC)
			go func() {
				if err := worker.Run(rootCtx); err != nil {
					logger.Error("task worker stopped", "err", err)
				}
			}()
		}
	}

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	deps := v1.Deps{
		Pool:       pool,
		Registry:   registry,
		Publish:    publish,
		Resolver:   resolver,
		Summarizer: summarizer,
		Cache:      cache,
	}
	if queueClient != nil {
		deps.Queue = queueClient
	}
	v1.RegisterRoutes(r, deps)

	addr := ":" + port()
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logger.Info("api listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "err", err)
	}
	if queueClient != nil {
		_ = queueClient.Close()
	}
}

func port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8080"
}
