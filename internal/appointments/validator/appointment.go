package validator

import (
	"errors"

	"medizy/pkg/logger"
	"medizy/pkg/model"
	"medizy/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type AppointmentValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewAppointmentValidator(log *logger.Logger) *AppointmentValidator {
	v, err := validation.New()
	if err != nil {
		log.Fatal("Failed to initialize appointment validator", "error", err)
	}

	log.Info("Appointment validator initialized successfully")

	return &AppointmentValidator{
		validate: v,
		logger:   log,
	}
}

func (v *AppointmentValidator) Validate(appt *model.Appointment) error {
	return v.check(appt)
}

func (v *AppointmentValidator) ValidateUpdate(update *model.AppointmentUpdate) error {
	if err := v.check(update); err != nil {
		return err
	}
	if *update == (model.AppointmentUpdate{}) {
		return validation.ValidationErrors{{Field: "status", Message: "at least one field must be provided"}}
	}
	return nil
}

func (v *AppointmentValidator) ValidateReschedule(input *model.RescheduleInput) error {
	return v.check(input)
}

func (v *AppointmentValidator) ValidateStatusChange(change *model.StatusChange) error {
	return v.check(change)
}

func (v *AppointmentValidator) check(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(validationErrs)
		}
		return err
	}
	return nil
}
