package main

import (
	"astro/internal/reservations/events"
	"astro/internal/reservations/handler"
	"astro/internal/reservations/service"
	"astro/internal/reservations/validator"
	"astro/internal/storage"
	"astro/pkg/app"
	"astro/pkg/config"
	"astro/pkg/kafka"
	kafka_config "astro/pkg/kafka/config"
	kafka_middleware "astro/pkg/kafka/middleware"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)

	store, err := storage.Open(cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to open storage", "backend", cfg.StorageBackend, "error", err)
	}
	cfg.Log.Info("Storage ready", "backend", store.Backend())

	application := app.NewApplication(cfg)
	application.OnShutdown("storage", func() error {
		cfg.GracefulShutdown()
		return nil
	})

	publisher := initPublisher(cfg)
	application.OnShutdown("events", publisher.Close)

	reservationService := service.NewReservationService(
		store.Reservations,
		validator.NewReservationValidator(cfg.Log),
		publisher,
		cfg.Log,
	)

	application.SetApp(
		handler.NewHealthHandler(store, cfg.Log),
		handler.NewReservationHandler(reservationService, cfg.Log),
	)
	application.Run()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.EventsEnabled {
		cfg.Log.Info("Reservation events disabled")
		return events.NewNoopPublisher()
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.ReservationsTopic, cfg.ReservationsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}

	cfg.Log.Info("Reservation events enabled", "topic", cfg.ReservationsTopic, "dlq_topic", cfg.ReservationsDLQTopic)
	return events.NewKafkaPublisher(producer, ServiceName, cfg.EventPublishTimeout, cfg.Log)
}
