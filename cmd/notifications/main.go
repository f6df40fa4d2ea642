package main

import (
	"context"

	"medizy/internal/notifications/handler"
	"medizy/internal/notifications/repository"
	"medizy/internal/notifications/service"
	"medizy/pkg/app"
	"medizy/pkg/config"
	"medizy/pkg/kafka"
	kafkaconfig "medizy/pkg/kafka/config"
	kafkamiddleware "medizy/pkg/kafka/middleware"
)

const ServiceName = "notifications"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	kafkaCfg, err := kafkaconfig.Load(ServiceName)
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	cfg.Log.Info("Starting Notifications service")
	notificationService := initServices(cfg)

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.NotificationsTopic,
		cfg.NotificationsGroupID,
		cfg.NotificationsDLQTopic,
		notificationService.HandleEvent,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create notifications consumer", "error", err)
	}
	metrics := kafkamiddleware.NewMetrics()
	consumer.Use(kafkamiddleware.LoggingConsumerMiddleware(cfg.Log))
	consumer.Use(metrics.ConsumerMiddleware())

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewNotificationHandler(notificationService, cfg.Log))
	serverApp.AddWorker("notifications-consumer", consumer)
	serverApp.OnShutdown(func(context.Context) {
		cfg.Log.Info("Notification consumption summary", metrics.Snapshot().LogAttrs()...)
	})
	serverApp.Run()
}

func initServices(cfg *config.Config) service.NotificationService {
	notificationRepo := repository.NewMongoNotificationRepository(cfg)
	notificationService := service.NewNotificationService(notificationRepo, cfg)

	cfg.Log.Info("Notifications service initialized", "database", cfg.MongoDatabaseName, "topic", cfg.NotificationsTopic)
	return notificationService
}
