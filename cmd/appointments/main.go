package main

import (
	"context"

	"medizy/internal/appointments/handler"
	"medizy/internal/appointments/repository"
	"medizy/internal/appointments/service"
	"medizy/internal/appointments/validator"
	doctorsrepository "medizy/internal/doctors/repository"
	"medizy/internal/notifications/dispatcher"
	"medizy/pkg/app"
	"medizy/pkg/config"
	kafkaconfig "medizy/pkg/kafka/config"
	kafkamiddleware "medizy/pkg/kafka/middleware"
)

const ServiceName = "appointments"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	kafkaCfg, err := kafkaconfig.Load(ServiceName)
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	metrics := kafkamiddleware.NewMetrics()
	notifier, err := dispatcher.NewFromConfig(cfg, kafkaCfg, metrics)
	if err != nil {
		cfg.Log.Fatal("Failed to start notification dispatcher", "error", err)
	}

	cfg.Log.Info("Starting Appointments service")
	appointmentService := initServices(cfg, notifier)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewAppointmentHandler(appointmentService, cfg.Log))
	serverApp.OnShutdown(func(ctx context.Context) {
		if err := notifier.Stop(ctx); err != nil {
			cfg.Log.Error("Notification dispatcher did not stop cleanly", "error", err)
		}
		cfg.Log.Info("Notification publishing summary", metrics.Snapshot().LogAttrs()...)
	})
	serverApp.Run()
}

func initServices(cfg *config.Config, notifier service.Notifier) service.AppointmentService {
	appointmentValidator := validator.NewAppointmentValidator(cfg.Log)
	appointmentRepo := repository.NewMongoAppointmentRepository(cfg)
	slotLockRepo := repository.NewSlotLockRepository(cfg)
	doctorRepo := doctorsrepository.NewMongoDoctorRepository(cfg)

	appointmentService := service.NewAppointmentService(
		appointmentRepo,
		slotLockRepo,
		doctorRepo,
		notifier,
		appointmentValidator,
		cfg,
	)

	cfg.Log.Info("Appointments service initialized", "database", cfg.MongoDatabaseName)
	return appointmentService
}
