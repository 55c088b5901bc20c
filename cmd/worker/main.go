package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/devfinder/internal/application/service"
	"github.com/khoahotran/devfinder/internal/config"
	"github.com/khoahotran/devfinder/pkg/logger"
	"github.com/khoahotran/devfinder/pkg/metrics"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting devfinder lookup recorder...")

	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("KAFKA_BROKERS is required for the worker", nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Metrics endpoint
	metricsSrv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Metrics server stopped", err)
		}
	}()
	defer metricsSrv.Close()

	// Kafka Consumer
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    cfg.Kafka.Topic,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", cfg.Kafka.Topic), zap.String("group_id", cfg.Kafka.GroupID))

	for {
		msg, err := consumer.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				appLogger.Info("Worker stopped")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		recordLookup(appLogger, msg)

		if err := consumer.CommitMessages(context.Background(), msg); err != nil {
			appLogger.Error("Failed to commit message", err)
		}
	}
}

// recordLookup logs one lookup event. Undecodable messages are logged and
// skipped so they do not block the partition.
func recordLookup(log logger.Logger, msg kafka.Message) {
	var evt service.LookupEvent
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		log.Warn("Skipping undecodable lookup event", zap.String("key", string(msg.Key)), zap.Error(err))
		return
	}

	metrics.LookupEventsConsumed.WithLabelValues(evt.Outcome).Inc()
	log.Info("Lookup recorded",
		zap.String("event_id", evt.ID),
		zap.String("username", evt.Username),
		zap.String("outcome", evt.Outcome),
		zap.Int("status", evt.Status),
		zap.Int64("duration_ms", evt.DurationMs),
		zap.Time("occurred_at", evt.OccurredAt),
	)
}
