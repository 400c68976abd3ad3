package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/dorado/config"
	"github.com/Domenick1991/dorado/internal/email"
	"github.com/Domenick1991/dorado/internal/kafka"
	"github.com/Domenick1991/dorado/internal/logging"
	"github.com/Domenick1991/dorado/internal/photostore"
	"github.com/Domenick1991/dorado/internal/repository"
	"github.com/Domenick1991/dorado/internal/service/photos"
	"github.com/jackc/pgx/v5/pgxpool"
	kafkaGo "github.com/segmentio/kafka-go"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.NewJSON(os.Stdout, slog.LevelInfo).With("component", "worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	store, err := photostore.New(ctx, cfg.Photos)
	if err != nil {
		log.Fatalf("photo store: %v", err)
	}

	passengerRepo := repository.NewPassengerRepository(pool)
	sweeper := photos.NewSweeper(store, passengerRepo, time.Duration(cfg.Worker.PhotoGraceMinutes)*time.Minute, logger)

	if len(cfg.Kafka.Brokers) > 0 {
		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.PassengerTopic)
		defer consumer.Close()

		emailSender := email.NewSender(logger)

		go func() {
			if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
				event, err := kafka.DecodePassengerEvent(msg)
				if err != nil {
					logger.Warn(ctx, "skipping undecodable event", "offset", msg.Offset, "error", err)
					return nil
				}
				if err := emailSender.Send(ctx, event); err != nil {
					logger.Warn(ctx, "notification not sent", "passenger_id", event.PassengerID, "error", err)
				}
				return nil
			}); err != nil && ctx.Err() == nil {
				logger.Error(ctx, "consumer stopped", "error", err)
			}
		}()
	}

	sweepTicker := time.NewTicker(time.Duration(cfg.Worker.PhotoSweepMinutes) * time.Minute)
	defer sweepTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sweepTicker.C:
			removed, err := sweeper.Sweep(ctx)
			if err != nil {
				logger.Error(ctx, "photo sweep failed", "error", err)
				continue
			}
			if len(removed) > 0 {
				logger.Info(ctx, "removed orphaned photos", "count", len(removed))
			}
		case s := <-sig:
			logger.Info(ctx, "shutting down", "signal", s.String())
			return
		}
	}
}
