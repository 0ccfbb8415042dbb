package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	usercmd "github.com/eaglebank/mts/internal/command"
	"github.com/eaglebank/mts/internal/config"
	"github.com/eaglebank/mts/internal/handler"
	"github.com/eaglebank/mts/internal/logger"
	"github.com/eaglebank/mts/internal/message"
	"github.com/eaglebank/mts/internal/observability"
	userqry "github.com/eaglebank/mts/internal/query"
	"github.com/eaglebank/mts/internal/repository"
	"github.com/eaglebank/mts/internal/service"
	"github.com/eaglebank/mts/shared/events"
	"github.com/eaglebank/mts/shared/models"
	redisClient "github.com/eaglebank/mts/shared/redis"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Database connection (write store)
	db, err := repository.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := repository.Init(ctx, db); err != nil {
		logrus.WithError(err).Fatal("Failed to initialise schema")
	}

	messages, err := message.Load(cfg.Messages.Dir)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load message bundles")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	// Redis connection (read model store + event streaming); optional
	var (
		cache     *redisClient.ViewCache[models.User]
		publisher events.Emitter = events.NopEmitter{}
	)
	if cfg.Redis.Addr != "" {
		redis, err := redisClient.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer redis.Close()
		cache = repository.NewUserViewCache(redis.Client, cfg.Redis.CacheTTL)
		publisher = events.NewPublisher(redis.Client)
	} else {
		logrus.Warn("Redis disabled: reading users from the database only, events are dropped")
	}

	// --- CQRS wiring ---
	writeRepo := repository.NewUserWriteRepository(db)
	readRepo := repository.NewUserReadRepository(db, cache, metrics)

	commandSvc := usercmd.NewUserCommandService(writeRepo, readRepo, publisher)
	querySvc := userqry.NewUserQueryService(readRepo)
	userSvc := service.NewUserService(commandSvc, querySvc)

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(handler.RouterConfig{
		Users:        handler.NewUserHandler(userSvc, messages, metrics),
		Metrics:      metrics,
		Gatherer:     registry,
		AllowOrigins: cfg.CORS.AllowOrigins,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("User service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("Server stopped")
			cancel()
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Graceful shutdown failed")
	}
}
