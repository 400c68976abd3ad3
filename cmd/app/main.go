package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/dorado/api"
	"github.com/Domenick1991/dorado/config"
	"github.com/Domenick1991/dorado/internal/bootstrap"
	"github.com/Domenick1991/dorado/internal/cache"
	"github.com/Domenick1991/dorado/internal/kafka"
	"github.com/Domenick1991/dorado/internal/logging"
	"github.com/Domenick1991/dorado/internal/photostore"
	"github.com/Domenick1991/dorado/internal/repository"
	"github.com/Domenick1991/dorado/internal/security"
	"github.com/Domenick1991/dorado/internal/service/airlines"
	"github.com/Domenick1991/dorado/internal/service/auth"
	"github.com/Domenick1991/dorado/internal/service/destinations"
	"github.com/Domenick1991/dorado/internal/service/flights"
	"github.com/Domenick1991/dorado/internal/service/passengers"
	"github.com/Domenick1991/dorado/internal/service/users"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
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

	logger := logging.NewJSON(os.Stdout, slog.LevelInfo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	photos, err := photostore.New(ctx, cfg.Photos)
	if err != nil {
		log.Fatalf("photo store: %v", err)
	}

	checks := map[string]bootstrap.HealthCheck{"postgres": pool.Ping}

	var (
		flightsCache cache.FlightsCache
		invalidator  passengers.FlightsInvalidator
	)
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis)
		defer redisCache.Close()
		flightsCache, invalidator = redisCache, redisCache
		checks["redis"] = redisCache.Ping
	}

	passengerOpts := []passengers.PassengerServiceOption{passengers.WithFlightsCache(invalidator)}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.PassengerTopic, logger)
		defer producer.Close()
		passengerOpts = append(passengerOpts, passengers.WithPublisher(producer))
		checks["kafka"] = producer.CheckConnection
	}

	tokens := security.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)

	airlineRepo := repository.NewAirlineRepository(pool)
	destinationRepo := repository.NewDestinationRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	passengerRepo := repository.NewPassengerRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	handlers := api.Handlers{
		Auth:         api.NewAuthHandler(auth.NewAuthService(userRepo, hasher, tokens, cfg.Auth.MinPasswordLength)),
		Airlines:     api.NewAirlineHandler(airlines.NewAirlineService(airlineRepo, invalidator, logger)),
		Destinations: api.NewDestinationHandler(destinations.NewDestinationService(destinationRepo, invalidator, logger)),
		Flights:      api.NewFlightHandler(flights.NewFlightService(flightRepo, flightsCache, logger)),
		Passengers: api.NewPassengerHandler(
			passengers.NewPassengerService(passengerRepo, photos, logger, passengerOpts...),
			int64(cfg.Photos.MaxSizeMB)<<20,
		),
		Users: api.NewUserHandler(users.NewUserService(userRepo, hasher, cfg.Auth.MinPasswordLength)),
	}

	router := bootstrap.NewRouter(cfg, bootstrap.RouterDeps{
		Handlers: handlers,
		Tokens:   tokens,
		Log:      logger,
		Checks:   checks,
	})

	if err := bootstrap.Run(ctx, cfg, router, logger); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
