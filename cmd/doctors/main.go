package main

import (
	"medizy/internal/doctors/handler"
	"medizy/internal/doctors/repository"
	"medizy/internal/doctors/service"
	"medizy/internal/doctors/validator"
	"medizy/pkg/app"
	"medizy/pkg/config"
)

const ServiceName = "doctors"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Doctors service")
	doctorService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewDoctorHandler(doctorService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.DoctorService {
	doctorValidator := validator.NewDoctorValidator(cfg.Log)
	doctorRepo := repository.NewMongoDoctorRepository(cfg)
	doctorService := service.NewDoctorService(
		doctorRepo,
		doctorValidator,
		cfg,
	)

	cfg.Log.Info("Doctors service initialized", "database", cfg.MongoDatabaseName)
	return doctorService
}
