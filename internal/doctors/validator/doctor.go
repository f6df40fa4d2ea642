package validator

import (
	"errors"
	"fmt"
	"sort"

	"medizy/internal/scheduling"
	"medizy/pkg/logger"
	"medizy/pkg/model"
	"medizy/pkg/validation"

	"github.com/go-playground/validator/v10"
)

var weekdays = map[string]struct{}{
	"Monday": {}, "Tuesday": {}, "Wednesday": {}, "Thursday": {},
	"Friday": {}, "Saturday": {}, "Sunday": {},
}

type DoctorValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewDoctorValidator(log *logger.Logger) *DoctorValidator {
	v, err := validation.New()
	if err != nil {
		log.Fatal("Failed to initialize doctor validator", "error", err)
	}

	if err := v.RegisterValidation("weekly_schedule", validateWeeklySchedule); err != nil {
		log.Fatal("Failed to register 'weekly_schedule' validator", "error", err)
	}

	log.Info("Doctor validator initialized successfully")

	return &DoctorValidator{
		validate: v,
		logger:   log,
	}
}

func validateWeeklySchedule(fl validator.FieldLevel) bool {
	schedule, ok := fl.Field().Interface().(map[string][]string)
	if !ok {
		return false
	}
	return CheckSchedule(schedule) == nil
}

// CheckSchedule requires weekday keys and, per day, well-formed
// HH:MM-HH:MM ranges with from < to that do not overlap.
func CheckSchedule(schedule map[string][]string) error {
	for day, ranges := range schedule {
		if _, ok := weekdays[day]; !ok {
			return fmt.Errorf("unknown weekday %q", day)
		}

		type window struct{ from, to int }
		windows := make([]window, 0, len(ranges))
		for _, r := range ranges {
			from, to, err := scheduling.ParseRange(r)
			if err != nil {
				return err
			}
			if from >= to {
				return fmt.Errorf("%s: range %q must end after it starts", day, r)
			}
			windows = append(windows, window{from, to})
		}

		sort.Slice(windows, func(i, j int) bool { return windows[i].from < windows[j].from })
		for i := 1; i < len(windows); i++ {
			if windows[i].from < windows[i-1].to {
				return fmt.Errorf("%s: ranges overlap", day)
			}
		}
	}
	return nil
}

func (v *DoctorValidator) Validate(doctor *model.Doctor) error {
	return v.check(doctor)
}

func (v *DoctorValidator) ValidateSlot(input *model.SlotInput) error {
	if err := v.check(input); err != nil {
		return err
	}

	from, _ := scheduling.ToMinutes(input.From)
	to, _ := scheduling.ToMinutes(input.To)
	if from >= to {
		return validation.ValidationErrors{{Field: "to", Message: "to must be after from"}}
	}
	return nil
}

func (v *DoctorValidator) ValidateSchedule(input *model.ScheduleInput) error {
	return v.check(input)
}

func (v *DoctorValidator) check(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(validationErrs)
		}
		return err
	}
	return nil
}
