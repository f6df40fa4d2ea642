// Package validation wires go-playground/validator with the date and time
// tags shared by the scheduling services.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var hhmmRegex = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Details renders the errors for an AppError payload. The first offending
// field is promoted to "field".
func (v ValidationErrors) Details() map[string]any {
	details := map[string]any{"errors": []ValidationError(v)}
	if len(v) > 0 {
		details["field"] = v[0].Field
	}
	return details
}

// New returns a validator using json tag names and the hhmm and ymd tags.
func New() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("hhmm", validateHHMM); err != nil {
		return nil, fmt.Errorf("failed to register 'hhmm' validator: %w", err)
	}
	if err := v.RegisterValidation("ymd", validateYMD); err != nil {
		return nil, fmt.Errorf("failed to register 'ymd' validator: %w", err)
	}
	return v, nil
}

func IsHHMM(s string) bool {
	return hhmmRegex.MatchString(s)
}

func IsYMD(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func validateHHMM(fl validator.FieldLevel) bool {
	return IsHHMM(fl.Field().String())
}

func validateYMD(fl validator.FieldLevel) bool {
	return IsYMD(fl.Field().String())
}

// Translate converts validator errors into field/message pairs.
func Translate(errs validator.ValidationErrors) ValidationErrors {
	var out ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "hhmm":
			message = fmt.Sprintf("%s must be a 24h time in HH:MM format", err.Field())
		case "ymd":
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", err.Field())
		case "weekly_schedule":
			message = fmt.Sprintf("%s must map weekday names to disjoint HH:MM-HH:MM ranges", err.Field())
		}

		out = append(out, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return out
}
