package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/devfinder/adapters/event"
	"github.com/khoahotran/devfinder/adapters/github"
	httpAdapter "github.com/khoahotran/devfinder/adapters/http"
	"github.com/khoahotran/devfinder/adapters/persistence"
	"github.com/khoahotran/devfinder/internal/application/service"
	lookupUC "github.com/khoahotran/devfinder/internal/application/usecase/lookup"
	sessionUC "github.com/khoahotran/devfinder/internal/application/usecase/session"
	"github.com/khoahotran/devfinder/internal/config"
	sessiondomain "github.com/khoahotran/devfinder/internal/domain/session"
	"github.com/khoahotran/devfinder/pkg/logger"
	"github.com/khoahotran/devfinder/pkg/tracing"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Start devfinder server...", zap.String("env", cfg.App.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing
	tp, err := tracing.NewTracerProvider(cfg, appLogger, "devfinder-server")
	switch {
	case errors.Is(err, tracing.ErrDisabled):
		appLogger.Info("Tracing disabled")
	case err != nil:
		appLogger.Fatal("Cannot init tracing", err)
	default:
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				appLogger.Error("Tracer shutdown failed", err)
			}
		}()
	}

	// Session store
	var store sessiondomain.Store
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot connect Redis", err)
		}
		defer redisClient.Close()
		store = persistence.NewRedisSessionStore(redisClient)
	} else {
		appLogger.Info("REDIS_ADDR not set, keeping sessions in memory")
		store = persistence.NewMemorySessionStore()
	}

	// Lookup events
	var publisher service.EventPublisher = event.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	} else {
		appLogger.Info("KAFKA_BROKERS not set, lookup events are dropped")
	}

	// Use Cases
	githubClient := github.NewClient(cfg, appLogger)
	lookupUseCase := lookupUC.NewLookupUseCase(githubClient, publisher, appLogger)
	sessions := sessionUC.NewManager(store, lookupUseCase.AsFetcher, sessionUC.Options{
		TTL:             cfg.Session.TTL,
		ClearDelay:      cfg.Session.ErrorClearDelay,
		DefaultUsername: cfg.Session.DefaultUsername,
		SweepInterval:   cfg.Session.SweepInterval,
	}, appLogger)
	defer sessions.Close()
	go sessions.Run(ctx)

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		Lookup:        lookupUseCase,
		Sessions:      sessions,
		SessionTTL:    cfg.Session.TTL,
		SettleTimeout: cfg.App.SettleTimeout,
		ClearDelay:    cfg.Session.ErrorClearDelay,
		Logger:        appLogger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server shutdown failed", err)
	}
}
