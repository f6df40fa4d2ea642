package service

import (
	"context"
	"sort"
	"sync"
	"time"

	appointmentserrors "medizy/internal/appointments/errors"
	"medizy/internal/appointments/repository"
	doctorserrors "medizy/internal/doctors/errors"
	"medizy/internal/scheduling"
	mongotx "medizy/pkg/db/mongo"
	"medizy/pkg/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ────────────────────────────────────────────────
// In-memory appointment store with the same uniqueness and version
// guarantees as the Mongo indexes.
// ────────────────────────────────────────────────

type fakeAppointmentRepository struct {
	mu      sync.Mutex
	byID    map[string]*model.Appointment
	order   []string
	retired map[string]int
	create  func(appt *model.Appointment) error
}

func newFakeAppointmentRepository() *fakeAppointmentRepository {
	return &fakeAppointmentRepository{byID: map[string]*model.Appointment{}, retired: map[string]int{}}
}

func clone(a *model.Appointment) *model.Appointment {
	c := *a
	c.RescheduleRequests = append([]model.RescheduleRequest(nil), a.RescheduleRequests...)
	return &c
}

// seed stores appt as-is, bypassing token allocation.
func (f *fakeAppointmentRepository) seed(appt *model.Appointment) *model.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	if appt.ID == "" {
		appt.ID = primitive.NewObjectID().Hex()
	}
	if appt.Status == "" {
		appt.Status = model.AppointmentStatusPending
	}
	f.byID[appt.ID] = clone(appt)
	f.order = append(f.order, appt.ID)
	return appt
}

func (f *fakeAppointmentRepository) get(id string) *model.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.byID[id]; ok {
		return clone(a)
	}
	return nil
}

func (f *fakeAppointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	if f.create != nil {
		return f.create(appt)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.DoctorID == appt.DoctorID && scheduling.IssuedOn(existing) == scheduling.IssuedOn(appt) && existing.TokenNumber == appt.TokenNumber {
			return appointmentserrors.ErrDuplicateToken
		}
	}
	appt.ID = primitive.NewObjectID().Hex()
	appt.CreatedAt = time.Now().UTC()
	f.byID[appt.ID] = clone(appt)
	f.order = append(f.order, appt.ID)
	return nil
}

func (f *fakeAppointmentRepository) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, appointmentserrors.ErrInvalidID
	}
	if a := f.get(id); a != nil {
		return a, nil
	}
	return nil, appointmentserrors.ErrNotFound
}

func (f *fakeAppointmentRepository) FindByDoctorAndDate(ctx context.Context, query repository.DayQuery) ([]*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Appointment
	for _, id := range f.order {
		a, ok := f.byID[id]
		if !ok || a.DoctorID != query.DoctorID {
			continue
		}
		if query.IssuedTokens {
			if !scheduling.HoldsTokenOn(a, query.Date) {
				continue
			}
		} else if a.Date != query.Date {
			continue
		}
		if query.ExcludeCancelled && a.Status == model.AppointmentStatusCancelled {
			continue
		}
		if query.ExcludeID != "" && a.ID == query.ExcludeID {
			continue
		}
		out = append(out, clone(a))
	}
	return out, nil
}

func (f *fakeAppointmentRepository) matching(filter model.AppointmentFilter) []*model.Appointment {
	var out []*model.Appointment
	for _, id := range f.order {
		a, ok := f.byID[id]
		if !ok {
			continue
		}
		if filter.PatientID != "" && a.PatientID != filter.PatientID {
			continue
		}
		if filter.DoctorID != "" && a.DoctorID != filter.DoctorID {
			continue
		}
		out = append(out, clone(a))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date+out[i].Time > out[j].Date+out[j].Time })
	return out
}

func (f *fakeAppointmentRepository) Find(ctx context.Context, filter model.AppointmentFilter, limit int, offset int64) ([]*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := f.matching(filter)
	if int(offset) >= len(all) {
		return []*model.Appointment{}, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeAppointmentRepository) Count(ctx context.Context, filter model.AppointmentFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.matching(filter))), nil
}

func (f *fakeAppointmentRepository) UpdateScheduling(ctx context.Context, appt *model.Appointment, expectedVersion int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.byID[appt.ID]
	if !ok {
		return appointmentserrors.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return appointmentserrors.ErrVersionConflict
	}
	stored.Date = appt.Date
	stored.Time = appt.Time
	stored.Status = appt.Status
	stored.RescheduleRequests = append([]model.RescheduleRequest(nil), appt.RescheduleRequests...)
	stored.Version = expectedVersion + 1
	appt.Version = stored.Version
	return nil
}

func (f *fakeAppointmentRepository) AdminUpdate(ctx context.Context, id string, update *model.AppointmentUpdate) (*model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.byID[id]
	if !ok {
		return nil, appointmentserrors.ErrNotFound
	}
	if update.Status != "" {
		stored.Status = update.Status
	}
	if update.PaymentMode != "" {
		stored.PaymentMode = update.PaymentMode
	}
	if update.PaymentStatus != "" {
		stored.PaymentStatus = update.PaymentStatus
	}
	if update.Amount != nil {
		stored.Amount = *update.Amount
	}
	stored.Version++
	return clone(stored), nil
}

func (f *fakeAppointmentRepository) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return appointmentserrors.ErrNotFound
	}
	for _, date := range []string{a.Date, scheduling.IssuedOn(a)} {
		key := a.DoctorID + "_" + date
		f.retired[key] = max(f.retired[key], a.TokenNumber)
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeAppointmentRepository) RetiredTokenFloor(ctx context.Context, doctorID, tokenDate string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.retired[doctorID+"_"+tokenDate], nil
}

func (f *fakeAppointmentRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

// ────────────────────────────────────────────────
// Slot locks
// ────────────────────────────────────────────────

type fakeSlotLockRepository struct {
	mu    sync.Mutex
	locks map[string]model.SlotLock
}

func newFakeSlotLockRepository() *fakeSlotLockRepository {
	return &fakeSlotLockRepository{locks: map[string]model.SlotLock{}}
}

func (f *fakeSlotLockRepository) Create(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, held := f.locks[lock.ID]; held {
		return nil, appointmentserrors.ErrLockHeld
	}
	lock.CreatedAt = time.Now()
	f.locks[lock.ID] = *lock
	return lock, nil
}

func (f *fakeSlotLockRepository) Delete(ctx context.Context, lockID, owner string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if l, ok := f.locks[lockID]; ok && l.Owner == owner {
		delete(f.locks, lockID)
	}
	return nil
}

func (f *fakeSlotLockRepository) DeleteExpired(ctx context.Context, lockID string, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if l, ok := f.locks[lockID]; ok && l.ExpiresAt.Before(now) {
		delete(f.locks, lockID)
		return true, nil
	}
	return false, nil
}

func (f *fakeSlotLockRepository) held() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.locks)
}

// ────────────────────────────────────────────────
// Doctors and notifications
// ────────────────────────────────────────────────

type fakeAvailability map[string]*model.DoctorAvailability

func (f fakeAvailability) GetAvailability(ctx context.Context, doctorUserID string) (*model.DoctorAvailability, error) {
	if av, ok := f[doctorUserID]; ok {
		return av, nil
	}
	return nil, doctorserrors.ErrNotFound
}

type recordingNotifier struct {
	mu            sync.Mutex
	notifications []model.NotificationEvent
	emails        []model.EmailEvent
}

func (r *recordingNotifier) Notify(event model.NotificationEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, event)
}

func (r *recordingNotifier) SendEmail(event model.EmailEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emails = append(r.emails, event)
}

func (r *recordingNotifier) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notifications), len(r.emails)
}

func (r *recordingNotifier) lastNotification() model.NotificationEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.notifications[len(r.notifications)-1]
}

func (r *recordingNotifier) lastEmail() model.EmailEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.emails[len(r.emails)-1]
}
