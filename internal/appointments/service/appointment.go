package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	appointmentserrors "medizy/internal/appointments/errors"
	"medizy/internal/appointments/repository"
	"medizy/internal/appointments/validator"
	doctorserrors "medizy/internal/doctors/errors"
	"medizy/internal/scheduling"
	"medizy/pkg/config"
	apperrors "medizy/pkg/errors"
	"medizy/pkg/model"
	"medizy/pkg/sanitizer"
	"medizy/pkg/validation"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

type AppointmentService interface {
	Create(ctx context.Context, actor model.Actor, appt *model.Appointment) error
	GetByID(ctx context.Context, actor model.Actor, id string) (*model.Appointment, error)
	List(ctx context.Context, actor model.Actor, filter model.AppointmentFilter, limit int, offset int64) ([]*model.Appointment, int64, error)
	ListForActor(ctx context.Context, actor model.Actor, limit int, offset int64) ([]*model.Appointment, int64, error)
	ListByDoctor(ctx context.Context, actor model.Actor, doctorID string, limit int, offset int64) ([]*model.Appointment, int64, error)
	RequestReschedule(ctx context.Context, actor model.Actor, id string, input *model.RescheduleInput) (*model.Appointment, error)
	AcceptReschedule(ctx context.Context, actor model.Actor, id, requestID string) (*model.Appointment, error)
	RejectReschedule(ctx context.Context, actor model.Actor, id, requestID string) (*model.Appointment, error)
	TransitionStatus(ctx context.Context, actor model.Actor, id string, change *model.StatusChange) (*model.Appointment, error)
	AdminUpdate(ctx context.Context, actor model.Actor, id string, update *model.AppointmentUpdate) (*model.Appointment, error)
	Delete(ctx context.Context, actor model.Actor, id string) error
}

// AvailabilityReader looks up a doctor's availability by the doctor's user id.
// It returns doctorserrors.ErrNotFound when the doctor has no profile.
type AvailabilityReader interface {
	GetAvailability(ctx context.Context, doctorUserID string) (*model.DoctorAvailability, error)
}

// Notifier queues best-effort notifications. Implementations must not block.
type Notifier interface {
	Notify(event model.NotificationEvent)
	SendEmail(event model.EmailEvent)
}

type appointmentService struct {
	repo      repository.AppointmentRepository
	lockRepo  repository.SlotLockRepository
	doctors   AvailabilityReader
	notifier  Notifier
	validator *validator.AppointmentValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	lockRepo repository.SlotLockRepository,
	doctors AvailabilityReader,
	notifier Notifier,
	validator *validator.AppointmentValidator,
	cfg *config.Config,
) AppointmentService {
	return &appointmentService{
		repo:      repo,
		lockRepo:  lockRepo,
		doctors:   doctors,
		notifier:  notifier,
		validator: validator,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// Create books an appointment. Availability and conflicts are not checked at
// booking time; only reschedules are gated.
func (s *appointmentService) Create(ctx context.Context, actor model.Actor, appt *model.Appointment) error {
	switch actor.Role {
	case model.RolePatient:
		appt.PatientID = actor.ID
	case model.RoleAdmin:
		if appt.PatientID == "" {
			return apperrors.InvalidInput("patient_id is required when booking on behalf of a patient").WithField("patient_id")
		}
	default:
		return apperrors.Forbidden("Only patients and admins can book appointments")
	}

	s.applyDefaults(appt)
	s.sanitize(appt)
	if err := checkFormats(appt.Date, appt.Time); err != nil {
		return err
	}
	if err := s.validate(appt); err != nil {
		return err
	}

	if err := s.insertWithToken(ctx, appt); err != nil {
		return err
	}

	s.cfg.Log.Info("Appointment created successfully",
		"id", appt.ID,
		"doctor_id", appt.DoctorID,
		"patient_id", appt.PatientID,
		"date", appt.Date,
		"time", appt.Time,
		"token_number", appt.TokenNumber,
	)
	s.notifyCreated(appt)
	return nil
}

// insertWithToken allocates one past the highest token held on the date,
// including tokens carried in by rescheduled appointments, and relies on the
// unique (doctor_id, token_date, token_number) index to detect a concurrent
// winner.
func (s *appointmentService) insertWithToken(ctx context.Context, appt *model.Appointment) error {
	for attempt := 1; attempt <= s.cfg.TokenMaxRetries; attempt++ {
		existing, err := s.repo.FindByDoctorAndDate(ctx, repository.DayQuery{
			DoctorID:     appt.DoctorID,
			Date:         appt.Date,
			IssuedTokens: true,
		})
		if err != nil {
			return apperrors.Internal("Failed to read issued tokens", err)
		}
		retired, err := s.repo.RetiredTokenFloor(ctx, appt.DoctorID, appt.Date)
		if err != nil {
			return apperrors.Internal("Failed to read retired tokens", err)
		}

		appt.ID = ""
		appt.TokenDate = appt.Date
		appt.TokenNumber = max(scheduling.NextToken(appt.DoctorID, appt.Date, existing), retired+1)

		err = s.repo.Create(ctx, appt)
		if err == nil {
			return nil
		}
		if !errors.Is(err, appointmentserrors.ErrDuplicateToken) {
			s.cfg.Log.Error("Failed to create appointment", "doctor_id", appt.DoctorID, "date", appt.Date, "error", err)
			return apperrors.Internal("Failed to create appointment", err)
		}

		s.cfg.Log.Debug("Token already issued, retrying",
			"doctor_id", appt.DoctorID,
			"date", appt.Date,
			"token_number", appt.TokenNumber,
			"attempt", attempt,
		)
	}

	s.cfg.Log.Warn("Token allocation retries exhausted",
		"doctor_id", appt.DoctorID,
		"date", appt.Date,
		"retries", s.cfg.TokenMaxRetries,
	)
	return apperrors.Unavailable("Token allocation").WithField("token_number")
}

func (s *appointmentService) GetByID(ctx context.Context, actor model.Actor, id string) (*model.Appointment, error) {
	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !isParticipant(actor, appt) {
		return nil, apperrors.Forbidden("Not authorized to view this appointment")
	}
	return appt, nil
}

func (s *appointmentService) List(ctx context.Context, actor model.Actor, filter model.AppointmentFilter, limit int, offset int64) ([]*model.Appointment, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, apperrors.Forbidden("Only admins can list all appointments")
	}
	return s.find(ctx, filter, limit, offset)
}

func (s *appointmentService) ListForActor(ctx context.Context, actor model.Actor, limit int, offset int64) ([]*model.Appointment, int64, error) {
	var filter model.AppointmentFilter
	switch actor.Role {
	case model.RolePatient:
		filter.PatientID = actor.ID
	case model.RoleDoctor:
		filter.DoctorID = actor.ID
	case model.RoleAdmin:
	default:
		return nil, 0, apperrors.Forbidden("Unknown role")
	}
	return s.find(ctx, filter, limit, offset)
}

func (s *appointmentService) ListByDoctor(ctx context.Context, actor model.Actor, doctorID string, limit int, offset int64) ([]*model.Appointment, int64, error) {
	if doctorID == "" {
		return nil, 0, apperrors.InvalidInput("Doctor ID cannot be empty").WithField("doctor_id")
	}
	if !actor.IsAdmin() && actor.ID != doctorID {
		return nil, 0, apperrors.Forbidden("Not authorized to view this doctor's appointments")
	}
	return s.find(ctx, model.AppointmentFilter{DoctorID: doctorID}, limit, offset)
}

func (s *appointmentService) find(ctx context.Context, filter model.AppointmentFilter, limit int, offset int64) ([]*model.Appointment, int64, error) {
	var count int64
	var appts []*model.Appointment
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.Count(ctx, filter)
		if err != nil {
			s.cfg.Log.Error("Failed to count appointments", "patient_id", filter.PatientID, "doctor_id", filter.DoctorID, "error", err)
			errCount = apperrors.Internal("Failed to count appointments", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		appts, err = s.repo.Find(ctx, filter, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list appointments",
				"patient_id", filter.PatientID,
				"doctor_id", filter.DoctorID,
				"limit", limit,
				"offset", offset,
				"error", err,
			)
			errFind = apperrors.Internal("Failed to retrieve appointments", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return appts, count, nil
}

func (s *appointmentService) RequestReschedule(ctx context.Context, actor model.Actor, id string, input *model.RescheduleInput) (*model.Appointment, error) {
	input.Date = sanitizer.TrimAndNormalize(input.Date)
	input.Time = sanitizer.SanitizeClock(input.Time)
	if err := checkFormats(input.Date, input.Time); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateReschedule(input); err != nil {
		return nil, validationError("Invalid reschedule request", err)
	}

	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !isParticipant(actor, appt) {
		return nil, apperrors.Forbidden("Not authorized to reschedule this appointment")
	}

	release, err := s.acquireSlotLock(ctx, appt.DoctorID, input.Date)
	if err != nil {
		return nil, err
	}
	defer release()

	var updated *model.Appointment
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		current, err := s.load(sessCtx, id)
		if err != nil {
			return err
		}
		if current.IsTerminal() {
			return apperrors.Conflict(fmt.Sprintf("Cannot reschedule a %s appointment", current.Status)).WithField("status")
		}
		if scheduling.HasAcceptedRequest(current) {
			return apperrors.AlreadyResolved("Appointment has already been rescheduled").WithField("reschedule_requests")
		}
		if err := s.checkSlot(sessCtx, current, input.Date, input.Time); err != nil {
			return err
		}

		version := current.Version
		current.RescheduleRequests = append(current.RescheduleRequests,
			scheduling.NewRescheduleRequest(actor.ID, input.Date, input.Time, s.now()))
		if err := s.repo.UpdateScheduling(sessCtx, current, version); err != nil {
			return s.mapWriteError(err, id)
		}
		updated = current
		return nil
	})
	if err != nil {
		s.cfg.Log.Warn("Reschedule request failed", "id", id, "date", input.Date, "time", input.Time, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Reschedule requested",
		"id", id,
		"requested_by", actor.ID,
		"date", input.Date,
		"time", input.Time,
	)
	s.notifyRescheduleRequested(updated, input)
	return updated, nil
}

func (s *appointmentService) AcceptReschedule(ctx context.Context, actor model.Actor, id, requestID string) (*model.Appointment, error) {
	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canDecide(actor, appt) {
		return nil, apperrors.Forbidden("Not authorized to accept this reschedule")
	}
	request, err := pendingRequest(appt, requestID)
	if err != nil {
		return nil, err
	}

	release, err := s.acquireSlotLock(ctx, appt.DoctorID, request.Date)
	if err != nil {
		return nil, err
	}
	defer release()

	var updated *model.Appointment
	var oldDate, oldTime string
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		current, err := s.load(sessCtx, id)
		if err != nil {
			return err
		}
		target, err := pendingRequest(current, requestID)
		if err != nil {
			return err
		}
		if current.IsTerminal() {
			return apperrors.Conflict(fmt.Sprintf("Cannot reschedule a %s appointment", current.Status)).WithField("status")
		}
		if err := s.checkSlot(sessCtx, current, target.Date, target.Time); err != nil {
			return err
		}

		oldDate, oldTime = current.Date, current.Time
		version := current.Version
		if err := scheduling.AcceptRequest(current, requestID, s.now()); err != nil {
			return mapRequestError(err, requestID)
		}
		if err := s.repo.UpdateScheduling(sessCtx, current, version); err != nil {
			return s.mapWriteError(err, id)
		}
		updated = current
		return nil
	})
	if err != nil {
		s.cfg.Log.Warn("Reschedule acceptance failed", "id", id, "request_id", requestID, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Reschedule accepted",
		"id", id,
		"request_id", requestID,
		"accepted_by", actor.ID,
		"old_date", oldDate,
		"old_time", oldTime,
		"new_date", updated.Date,
		"new_time", updated.Time,
	)
	s.notifyRescheduleAccepted(updated, oldDate, oldTime)
	return updated, nil
}

func (s *appointmentService) RejectReschedule(ctx context.Context, actor model.Actor, id, requestID string) (*model.Appointment, error) {
	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canDecide(actor, appt) {
		return nil, apperrors.Forbidden("Not authorized to reject this reschedule")
	}

	request, err := pendingRequest(appt, requestID)
	if err != nil {
		return nil, err
	}

	version := appt.Version
	if err := scheduling.RejectRequest(appt, requestID, s.now()); err != nil {
		return nil, mapRequestError(err, requestID)
	}
	if err := s.repo.UpdateScheduling(ctx, appt, version); err != nil {
		return nil, s.mapWriteError(err, id)
	}

	s.cfg.Log.Info("Reschedule rejected", "id", id, "request_id", requestID, "rejected_by", actor.ID)
	s.notifyRescheduleRejected(appt, request)
	return appt, nil
}

func (s *appointmentService) TransitionStatus(ctx context.Context, actor model.Actor, id string, change *model.StatusChange) (*model.Appointment, error) {
	if err := s.validator.ValidateStatusChange(change); err != nil {
		return nil, validationError("Invalid status change", err)
	}

	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case canDecide(actor, appt):
	case actor.ID == appt.PatientID:
		if change.Status != model.AppointmentStatusCancelled {
			return nil, apperrors.Forbidden("Patients may only cancel their appointments")
		}
	default:
		return nil, apperrors.Forbidden("Not authorized to change this appointment")
	}

	if !scheduling.CanTransition(appt.Status, change.Status) {
		return nil, apperrors.Conflict(fmt.Sprintf("Cannot move appointment from %s to %s", appt.Status, change.Status)).
			WithDetails(map[string]any{
				"field":   "status",
				"from":    appt.Status,
				"to":      change.Status,
				"allowed": scheduling.AllowedTransitions(appt.Status),
			})
	}

	from := appt.Status
	version := appt.Version
	appt.Status = change.Status
	if err := s.repo.UpdateScheduling(ctx, appt, version); err != nil {
		return nil, s.mapWriteError(err, id)
	}

	s.cfg.Log.Info("Appointment status changed", "id", id, "from", from, "to", appt.Status, "by", actor.ID)
	s.notifyStatusChanged(appt, actor)
	return appt, nil
}

// AdminUpdate overwrites status and payment fields without consulting the
// state machine.
func (s *appointmentService) AdminUpdate(ctx context.Context, actor model.Actor, id string, update *model.AppointmentUpdate) (*model.Appointment, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.Forbidden("Only admins can update appointments directly")
	}
	if id == "" {
		return nil, apperrors.InvalidInput("Appointment ID cannot be empty").WithField("id")
	}
	if err := s.validator.ValidateUpdate(update); err != nil {
		return nil, validationError("Invalid update input", err)
	}

	appt, err := s.repo.AdminUpdate(ctx, id, update)
	if err != nil {
		return nil, s.mapWriteError(err, id)
	}

	s.cfg.Log.Info("Appointment overwritten by admin",
		"id", id,
		"admin_id", actor.ID,
		"status", update.Status,
		"payment_status", update.PaymentStatus,
		"payment_mode", update.PaymentMode,
	)
	return appt, nil
}

func (s *appointmentService) Delete(ctx context.Context, actor model.Actor, id string) error {
	if !actor.IsAdmin() {
		return apperrors.Forbidden("Only admins can delete appointments")
	}
	if id == "" {
		return apperrors.InvalidInput("Appointment ID cannot be empty").WithField("id")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapWriteError(err, id)
	}

	s.cfg.Log.Info("Appointment deleted successfully", "id", id, "admin_id", actor.ID)
	return nil
}

// --- Helpers ---

func (s *appointmentService) applyDefaults(a *model.Appointment) {
	if a.DurationMinutes <= 0 {
		a.DurationMinutes = s.cfg.DefaultAppointmentDurationMin
	}
	if a.PaymentMode == "" {
		a.PaymentMode = model.PaymentModeCash
	}
	if a.PaymentStatus == "" {
		a.PaymentStatus = model.PaymentStatusPending
	}
	a.Status = model.AppointmentStatusPending
	a.RescheduleRequests = []model.RescheduleRequest{}
	a.TokenNumber = 0
	a.TokenDate = ""
	a.Version = 0
}

func (s *appointmentService) sanitize(a *model.Appointment) {
	a.PatientID = sanitizer.TrimAndNormalize(a.PatientID)
	a.DoctorID = sanitizer.TrimAndNormalize(a.DoctorID)
	a.Date = sanitizer.TrimAndNormalize(a.Date)
	a.Time = sanitizer.SanitizeClock(a.Time)
	a.Reason = sanitizer.SanitizeText(a.Reason)
}

func (s *appointmentService) validate(a *model.Appointment) error {
	if err := s.validator.Validate(a); err != nil {
		s.cfg.Log.Warn("Appointment validation failed", "error", err)
		return validationError("Appointment validation failed", err)
	}
	return nil
}

func (s *appointmentService) load(ctx context.Context, id string) (*model.Appointment, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Appointment ID cannot be empty").WithField("id")
	}

	appt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Appointment", id)
		}
		if errors.Is(err, appointmentserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid appointment ID format").WithField("id")
		}
		return nil, apperrors.Internal("Failed to retrieve appointment", err)
	}
	return appt, nil
}

// checkSlot runs the availability and conflict gates for moving appt to
// date/hhmm.
func (s *appointmentService) checkSlot(ctx context.Context, appt *model.Appointment, date, hhmm string) error {
	av, err := s.availabilityFor(ctx, appt.DoctorID)
	if err != nil {
		return err
	}

	ok, err := scheduling.IsWithinAvailability(*av, date, hhmm)
	if err != nil {
		return formatError(err)
	}
	if !ok {
		return apperrors.SlotUnavailable(date, hhmm)
	}
	if len(av.AvailableSlots) == 0 && s.cfg.Log.DebugEnabled() {
		if recurring, err := scheduling.RecurringSlots(*av, date); err == nil && len(recurring) > 0 {
			s.cfg.Log.Debug("Recurring schedule present but not enforced",
				"doctor_id", appt.DoctorID,
				"date", date,
				"time", hhmm,
				"schedule", recurring,
			)
		}
	}

	start, err := scheduling.ToMinutes(hhmm)
	if err != nil {
		return formatError(err)
	}

	existing, err := s.repo.FindByDoctorAndDate(ctx, repository.DayQuery{
		DoctorID:         appt.DoctorID,
		Date:             date,
		ExcludeID:        appt.ID,
		ExcludeCancelled: true,
	})
	if err != nil {
		return apperrors.Internal("Failed to check existing appointments", err)
	}

	conflict, err := scheduling.FindConflict(scheduling.Candidate{
		DoctorID: appt.DoctorID,
		Date:     date,
		Start:    start,
		Duration: appt.DurationMinutes,
	}, existing, appt.ID)
	if err != nil {
		return apperrors.Internal("Stored appointment has a malformed time", err)
	}
	if conflict != nil {
		return apperrors.Conflict("Requested time conflicts with another appointment").WithDetails(map[string]any{
			"field":             "time",
			"date":              date,
			"time":              hhmm,
			"conflicting_time":  conflict.Time,
			"conflicting_token": conflict.TokenNumber,
		})
	}
	return nil
}

func (s *appointmentService) availabilityFor(ctx context.Context, doctorID string) (*model.DoctorAvailability, error) {
	av, err := s.doctors.GetAvailability(ctx, doctorID)
	if err != nil {
		if errors.Is(err, doctorserrors.ErrNotFound) {
			s.cfg.Log.Debug("No doctor profile, availability unconstrained", "doctor_id", doctorID)
			return &model.DoctorAvailability{}, nil
		}
		return nil, apperrors.Internal("Failed to load doctor availability", err)
	}
	return av, nil
}

func (s *appointmentService) mapWriteError(err error, id string) error {
	switch {
	case apperrors.IsAppError(err):
		return err
	case errors.Is(err, appointmentserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Appointment", id)
	case errors.Is(err, appointmentserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid appointment ID format").WithField("id")
	case errors.Is(err, appointmentserrors.ErrVersionConflict):
		return apperrors.Conflict("Appointment was modified by another request, please retry").WithField("version")
	default:
		return apperrors.Internal("Failed to update appointment", err)
	}
}

// acquireSlotLock serializes scheduling writes for one doctor on one date.
// It polls until LockWaitTimeout and returns a release func.
func (s *appointmentService) acquireSlotLock(ctx context.Context, doctorID, date string) (func(), error) {
	lockID := fmt.Sprintf("slot_lock_%s_%s", doctorID, date)
	owner := uuid.NewString()
	deadline := time.Now().Add(s.cfg.LockWaitTimeout)

	for {
		lock := &model.SlotLock{
			ID:        lockID,
			Owner:     owner,
			ExpiresAt: s.now().Add(s.cfg.LockTTL),
		}
		_, err := s.lockRepo.Create(ctx, lock)
		if err == nil {
			return func() { s.releaseSlotLock(ctx, lockID, owner) }, nil
		}
		if !errors.Is(err, appointmentserrors.ErrLockHeld) {
			return nil, apperrors.Internal("Failed to acquire slot lock", err)
		}

		if removed, err := s.lockRepo.DeleteExpired(ctx, lockID, s.now()); err == nil && removed {
			s.cfg.Log.Warn("Removed expired slot lock", "lock_id", lockID)
			continue
		}

		if time.Now().After(deadline) {
			return nil, apperrors.Conflict("This doctor's schedule is being changed by another request, please try again").WithField("date")
		}

		select {
		case <-ctx.Done():
			return nil, apperrors.Timeout("Timed out waiting for the doctor's schedule")
		case <-time.After(s.cfg.LockPollInterval):
		}
	}
}

func (s *appointmentService) releaseSlotLock(ctx context.Context, lockID, owner string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.WriteTimeout)
	defer cancel()

	if err := s.lockRepo.Delete(ctx, lockID, owner); err != nil {
		s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", err)
	}
}

func isParticipant(actor model.Actor, appt *model.Appointment) bool {
	return actor.ID == appt.PatientID || actor.ID == appt.DoctorID
}

// canDecide reports whether actor may accept or reject reschedules and drive
// the appointment's status.
func canDecide(actor model.Actor, appt *model.Appointment) bool {
	return actor.IsAdmin() || actor.ID == appt.DoctorID
}

func pendingRequest(appt *model.Appointment, requestID string) (model.RescheduleRequest, error) {
	idx, ok := scheduling.FindRequest(appt, requestID)
	if !ok {
		return model.RescheduleRequest{}, apperrors.NotFoundWithID("Reschedule request", requestID).WithField("request_id")
	}
	request := appt.RescheduleRequests[idx]
	if request.Status != model.RequestStatusPending {
		return model.RescheduleRequest{}, apperrors.AlreadyResolved(
			fmt.Sprintf("Reschedule request is already %s", request.Status),
		).WithField("request_id")
	}
	return request, nil
}

func mapRequestError(err error, requestID string) error {
	switch {
	case errors.Is(err, scheduling.ErrRequestNotFound):
		return apperrors.NotFoundWithID("Reschedule request", requestID).WithField("request_id")
	case errors.Is(err, scheduling.ErrRequestResolved):
		return apperrors.AlreadyResolved("Reschedule request is already resolved").WithField("request_id")
	default:
		return apperrors.Internal("Failed to resolve reschedule request", err)
	}
}

func checkFormats(date, hhmm string) error {
	if date != "" {
		if _, err := scheduling.ParseDate(date); err != nil {
			return formatError(err)
		}
	}
	if hhmm != "" {
		if _, err := scheduling.ToMinutes(hhmm); err != nil {
			return formatError(err)
		}
	}
	return nil
}

func formatError(err error) error {
	var fe *scheduling.FormatError
	if errors.As(err, &fe) {
		return apperrors.InvalidFormat(fe.Field, fe.Value, fe.Expected)
	}
	return apperrors.Internal("Unexpected scheduling error", err)
}

func validationError(message string, err error) error {
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		return apperrors.Validation(message, verrs.Details())
	}
	return apperrors.Validation(message, map[string]any{"error": err.Error()})
}

func newEventID() string {
	return uuid.NewString()
}
