package main

import (
	"context"
	"os/signal"
	"syscall"

	"astro/internal/notifications"
	"astro/pkg/config"
	"astro/pkg/kafka"
	kafka_config "astro/pkg/kafka/config"
	kafka_middleware "astro/pkg/kafka/middleware"
)

const ServiceName = "notifier"

func main() {
	cfg := config.Load(ServiceName)

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	var sender notifications.Sender
	if cfg.TwilioEnabled() {
		sender = notifications.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, cfg.Log)
		cfg.Log.Info("SMS delivery via Twilio enabled")
	} else {
		sender = notifications.NewLogSender(cfg.Log)
		cfg.Log.Warn("Twilio credentials missing, confirmations will only be logged")
	}

	notifier := notifications.NewNotifier(sender, cfg.DefaultPhoneRegion, cfg.RestaurantName, cfg.Log)

	consumer, err := kafka.NewConsumer(kafkaCfg, cfg.ReservationsTopic, cfg.NotifierGroupID, cfg.ReservationsDLQTopic, notifier.Handle, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Start(ctx); err != nil {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	cfg.Log.Info("Notifier stopped")
}
