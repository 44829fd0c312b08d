package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"bloombuilder/internal/app"
	"bloombuilder/internal/config"
	"bloombuilder/internal/db"
	"bloombuilder/internal/repositories"
	"bloombuilder/internal/services"
	"bloombuilder/pkg/logger"
	"bloombuilder/pkg/rabbitmq"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/viper"
)

func main() {
	// --- Configuration ---
	// .env is optional; real environment variables take precedence.
	bootLog := logger.New(logger.Options{ServiceName: "bloombuilder"})
	if err := config.LoadDotEnv(); err != nil {
		bootLog.Fatal("failed to load .env", err)
	}
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		bootLog.Fatal("invalid configuration", err)
	}

	log := logger.New(logger.Options{
		ServiceName: "bloombuilder",
		Level:       logger.ParseLevel(cfg.LogLevel),
		Format:      cfg.LogFormat,
	})
	ctx := context.Background()

	// --- Initialize Database ---
	database, err := db.Open(cfg)
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}
	defer db.Close(database)
	flowerRepo := repositories.NewGORMFlowerRepository(database)

	// --- Initialize RabbitMQ Client (optional) ---
	var publisher services.EventPublisher
	if cfg.EventsEnabled() {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log)
		if err != nil {
			log.Fatal("failed to initialize RabbitMQ client", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		if err := mqClient.ConsumeFlowerEvents(rabbitmq.LogFlowerEvent(log)); err != nil {
			log.Error(ctx, "failed to start RabbitMQ consumer", err)
		}
	} else {
		log.Info(ctx, "RABBITMQ_URL not set, inventory events disabled")
	}

	// --- Initialize Services ---
	flowerService := services.NewFlowerService(flowerRepo, publisher, log)

	// --- Initialize Fiber App ---
	var registry *prometheus.Registry
	if cfg.MetricsEnabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	fiberApp := app.New(app.Deps{
		FlowerService: flowerService,
		Logger:        log,
		Registry:      registry,
		AccessLog:     cfg.AccessLog,
	})

	// --- Start HTTP Server ---
	log.Info(ctx, "starting server on "+cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := fiberApp.Listen(cfg.AppPort); err != nil {
			log.Fatal("server failed to start", err)
		}
	}()

	<-quit
	log.Info(ctx, "shutting down server")

	if err := fiberApp.Shutdown(); err != nil {
		log.Error(ctx, "error during Fiber shutdown", err)
	}
	log.Info(ctx, "server gracefully stopped")
}
