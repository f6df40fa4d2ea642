package service

import (
	"context"
	"errors"
	"sort"

	doctorserrors "medizy/internal/doctors/errors"
	"medizy/internal/doctors/repository"
	"medizy/internal/doctors/validator"
	"medizy/internal/scheduling"
	"medizy/pkg/config"
	apperrors "medizy/pkg/errors"
	"medizy/pkg/model"
	"medizy/pkg/sanitizer"
	"medizy/pkg/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DoctorService interface {
	Create(ctx context.Context, actor model.Actor, doctor *model.Doctor) error
	ResolveProfile(ctx context.Context, anyID string) (*model.Doctor, error)
	GetAvailability(ctx context.Context, doctorUserID string) (*model.DoctorAvailability, error)
	ListSlots(ctx context.Context, id string) ([]model.AvailableSlot, error)
	AddSlot(ctx context.Context, actor model.Actor, id string, input *model.SlotInput) (*model.AvailableSlot, error)
	DeleteSlot(ctx context.Context, actor model.Actor, id, slotID string) error
	ReplaceSchedule(ctx context.Context, actor model.Actor, id string, input *model.ScheduleInput) (*model.Doctor, error)
}

type doctorService struct {
	repo      repository.DoctorRepository
	validator *validator.DoctorValidator
	cfg       *config.Config
}

func NewDoctorService(repo repository.DoctorRepository, validator *validator.DoctorValidator, cfg *config.Config) DoctorService {
	return &doctorService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

// Create registers the availability record for a doctor user. Doctors may
// only create their own; admins name the user.
func (s *doctorService) Create(ctx context.Context, actor model.Actor, doctor *model.Doctor) error {
	switch actor.Role {
	case model.RoleDoctor:
		doctor.UserID = actor.ID
	case model.RoleAdmin:
		if doctor.UserID == "" {
			return apperrors.InvalidInput("user_id is required when creating a profile for a doctor").WithField("user_id")
		}
	default:
		return apperrors.Forbidden("Only doctors and admins can create doctor profiles")
	}

	doctor.ID = ""
	doctor.UserID = sanitizer.TrimAndNormalize(doctor.UserID)
	doctor.Qualifications = sanitizer.SanitizeText(doctor.Qualifications)
	doctor.Schedule = sanitizer.NormalizeSchedule(doctor.Schedule)

	if err := s.validator.Validate(doctor); err != nil {
		s.cfg.Log.Warn("Doctor validation failed", "user_id", doctor.UserID, "error", err)
		return validationError("Doctor validation failed", err)
	}

	slots, err := s.buildSlots(doctor.AvailableSlots)
	if err != nil {
		return err
	}
	doctor.AvailableSlots = slots

	if err := s.repo.Create(ctx, doctor); err != nil {
		if errors.Is(err, doctorserrors.ErrDuplicateProfile) {
			return apperrors.Conflict("A doctor profile already exists for this user").WithField("user_id")
		}
		s.cfg.Log.Error("Failed to create doctor", "user_id", doctor.UserID, "error", err)
		return apperrors.Internal("Failed to create doctor", err)
	}

	s.cfg.Log.Info("Doctor profile created", "id", doctor.ID, "user_id", doctor.UserID, "slots", len(doctor.AvailableSlots))
	return nil
}

// buildSlots assigns ids to slots submitted with a new profile and rejects
// malformed or duplicate windows.
func (s *doctorService) buildSlots(in []model.AvailableSlot) ([]model.AvailableSlot, error) {
	out := make([]model.AvailableSlot, 0, len(in))
	seen := map[string]bool{}
	for _, slot := range in {
		input := &model.SlotInput{
			Date: scheduling.CalendarDate(slot.Date),
			From: sanitizer.SanitizeClock(slot.From),
			To:   sanitizer.SanitizeClock(slot.To),
		}
		if err := s.validator.ValidateSlot(input); err != nil {
			return nil, validationError("Invalid available slot", err)
		}
		key := input.Date + input.From + input.To
		if seen[key] {
			return nil, apperrors.Conflict("Duplicate available slot").WithField("available_slots")
		}
		seen[key] = true
		built, _ := newSlot(input)
		out = append(out, built)
	}
	return out, nil
}

// ResolveProfile accepts either the doctor document id or the doctor's user
// id and returns the profile.
func (s *doctorService) ResolveProfile(ctx context.Context, anyID string) (*model.Doctor, error) {
	anyID = sanitizer.TrimAndNormalize(anyID)
	if anyID == "" {
		return nil, apperrors.InvalidInput("Doctor ID cannot be empty").WithField("id")
	}

	if _, err := primitive.ObjectIDFromHex(anyID); err == nil {
		doctor, err := s.repo.FindByID(ctx, anyID)
		if err == nil {
			return doctor, nil
		}
		if !errors.Is(err, doctorserrors.ErrNotFound) {
			return nil, apperrors.Internal("Failed to retrieve doctor", err)
		}
	}

	doctor, err := s.repo.FindByUserID(ctx, anyID)
	if err != nil {
		if errors.Is(err, doctorserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Doctor", anyID)
		}
		return nil, apperrors.Internal("Failed to retrieve doctor", err)
	}
	return doctor, nil
}

// GetAvailability returns doctorserrors.ErrNotFound unwrapped so callers can
// treat a missing profile as unconstrained.
func (s *doctorService) GetAvailability(ctx context.Context, doctorUserID string) (*model.DoctorAvailability, error) {
	return s.repo.GetAvailability(ctx, doctorUserID)
}

func (s *doctorService) ListSlots(ctx context.Context, id string) ([]model.AvailableSlot, error) {
	doctor, err := s.ResolveProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	slots := append([]model.AvailableSlot(nil), doctor.AvailableSlots...)
	sort.SliceStable(slots, func(i, j int) bool {
		if !slots[i].Date.Equal(slots[j].Date) {
			return slots[i].Date.Before(slots[j].Date)
		}
		return slots[i].From < slots[j].From
	})
	return slots, nil
}

func (s *doctorService) AddSlot(ctx context.Context, actor model.Actor, id string, input *model.SlotInput) (*model.AvailableSlot, error) {
	doctor, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	input.Date = sanitizer.TrimAndNormalize(input.Date)
	input.From = sanitizer.SanitizeClock(input.From)
	input.To = sanitizer.SanitizeClock(input.To)
	if err := s.validator.ValidateSlot(input); err != nil {
		return nil, validationError("Invalid available slot", err)
	}

	slot, err := newSlot(input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.AddSlot(ctx, doctor.ID, slot); err != nil {
		return nil, s.mapWriteError(err, doctor.ID)
	}

	s.cfg.Log.Info("Available slot added",
		"doctor_id", doctor.ID,
		"user_id", doctor.UserID,
		"slot_id", slot.ID,
		"date", input.Date,
		"from", slot.From,
		"to", slot.To,
	)
	return &slot, nil
}

func (s *doctorService) DeleteSlot(ctx context.Context, actor model.Actor, id, slotID string) error {
	doctor, err := s.owned(ctx, actor, id)
	if err != nil {
		return err
	}
	if slotID == "" {
		return apperrors.InvalidInput("Slot ID cannot be empty").WithField("slot_id")
	}

	if err := s.repo.DeleteSlot(ctx, doctor.ID, slotID); err != nil {
		return s.mapWriteError(err, doctor.ID)
	}

	s.cfg.Log.Info("Available slot removed", "doctor_id", doctor.ID, "slot_id", slotID)
	return nil
}

func (s *doctorService) ReplaceSchedule(ctx context.Context, actor model.Actor, id string, input *model.ScheduleInput) (*model.Doctor, error) {
	doctor, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	input.Schedule = sanitizer.NormalizeSchedule(input.Schedule)
	if err := s.validator.ValidateSchedule(input); err != nil {
		return nil, validationError("Invalid weekly schedule", err)
	}

	if err := s.repo.ReplaceSchedule(ctx, doctor.ID, input.Schedule); err != nil {
		return nil, s.mapWriteError(err, doctor.ID)
	}

	doctor.Schedule = input.Schedule
	s.cfg.Log.Info("Weekly schedule replaced", "doctor_id", doctor.ID, "days", len(input.Schedule))
	return doctor, nil
}

// owned resolves the profile and checks that actor may edit it.
func (s *doctorService) owned(ctx context.Context, actor model.Actor, id string) (*model.Doctor, error) {
	doctor, err := s.ResolveProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.ID != doctor.UserID {
		return nil, apperrors.Forbidden("Not authorized to manage this doctor's availability")
	}
	return doctor, nil
}

func (s *doctorService) mapWriteError(err error, id string) error {
	switch {
	case errors.Is(err, doctorserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Doctor", id)
	case errors.Is(err, doctorserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid doctor ID format").WithField("id")
	case errors.Is(err, doctorserrors.ErrSlotNotFound):
		return apperrors.NotFound("Available slot").WithField("slot_id")
	case errors.Is(err, doctorserrors.ErrDuplicateSlot):
		return apperrors.Conflict("Available slot already exists").WithField("from")
	default:
		s.cfg.Log.Error("Doctor write failed", "id", id, "error", err)
		return apperrors.Internal("Failed to update doctor", err)
	}
}

func newSlot(input *model.SlotInput) (model.AvailableSlot, error) {
	date, err := scheduling.ParseDate(input.Date)
	if err != nil {
		var fe *scheduling.FormatError
		if errors.As(err, &fe) {
			return model.AvailableSlot{}, apperrors.InvalidFormat(fe.Field, fe.Value, fe.Expected)
		}
		return model.AvailableSlot{}, apperrors.Internal("Unexpected date error", err)
	}
	return model.AvailableSlot{
		ID:   primitive.NewObjectID().Hex(),
		Date: date,
		From: input.From,
		To:   input.To,
	}, nil
}

func validationError(message string, err error) error {
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation(message, verrs.Details())
	}
	return apperrors.Validation(message, map[string]any{"error": err.Error()})
}
