package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentserrors "medizy/internal/appointments/errors"
	"medizy/pkg/config"
	mongotx "medizy/pkg/db/mongo"
	"medizy/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Appointments"

	// RetiredTokensCollectionName keeps the highest token of deleted
	// appointments per doctor and day, so deleting never frees a token.
	RetiredTokensCollectionName = "Retired_tokens"
)

// DayQuery selects one doctor's appointments on one date. With IssuedTokens
// set, Date matches either the scheduled date or the token issue date, which
// is every appointment whose token occupies that day's sequence.
type DayQuery struct {
	DoctorID         string
	Date             string
	ExcludeID        string
	ExcludeCancelled bool
	IssuedTokens     bool
}

type AppointmentRepository interface {
	Create(ctx context.Context, appt *model.Appointment) error
	FindByID(ctx context.Context, id string) (*model.Appointment, error)
	FindByDoctorAndDate(ctx context.Context, query DayQuery) ([]*model.Appointment, error)
	Find(ctx context.Context, filter model.AppointmentFilter, limit int, offset int64) ([]*model.Appointment, error)
	Count(ctx context.Context, filter model.AppointmentFilter) (int64, error)
	UpdateScheduling(ctx context.Context, appt *model.Appointment, expectedVersion int64) error
	AdminUpdate(ctx context.Context, id string, update *model.AppointmentUpdate) (*model.Appointment, error)
	// Delete must remove the appointment and raise the retired-token floor
	// atomically; a delete without its floor would let the token be reissued.
	Delete(ctx context.Context, id string) error
	RetiredTokenFloor(ctx context.Context, doctorID, tokenDate string) (int, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoAppointmentRepository struct {
	cfg           *config.Config
	collection    *mongo.Collection
	retiredTokens *mongo.Collection
	txManager     mongotx.TransactionManager
}

func NewMongoAppointmentRepository(cfg *config.Config) AppointmentRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAppointmentRepository{
		cfg:           cfg,
		collection:    db.Collection(CollectionName),
		retiredTokens: db.Collection(RetiredTokensCollectionName),
		txManager:     mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout unless it is a SessionContext,
// which cannot be wrapped without leaving the transaction.
func (r *mongoAppointmentRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}

	remaining := time.Until(deadline)
	if remaining < timeout {
		return context.WithTimeout(ctx, remaining)
	}

	return context.WithTimeout(ctx, timeout)
}

func (r *mongoAppointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	appt.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if appt.RescheduleRequests == nil {
		appt.RescheduleRequests = []model.RescheduleRequest{}
	}

	result, err := r.collection.InsertOne(ctx, appt)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: token %d", appointmentserrors.ErrDuplicateToken, appt.TokenNumber)
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		appt.ID = oid.Hex()
	}
	return nil
}

func (r *mongoAppointmentRepository) FindByID(ctx context.Context, id string) (*model.Appointment, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", appointmentserrors.ErrInvalidID, id)
	}

	var appt model.Appointment
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&appt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appointmentserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find appointment: %w", err)
	}

	return &appt, nil
}

func (r *mongoAppointmentRepository) FindByDoctorAndDate(ctx context.Context, query DayQuery) ([]*model.Appointment, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"doctor_id": query.DoctorID}
	if query.IssuedTokens {
		filter["$or"] = bson.A{
			bson.M{"date": query.Date},
			bson.M{"token_date": query.Date},
		}
	} else {
		filter["date"] = query.Date
	}
	if query.ExcludeCancelled {
		filter["status"] = bson.M{"$ne": model.AppointmentStatusCancelled}
	}
	if query.ExcludeID != "" {
		objectID, err := primitive.ObjectIDFromHex(query.ExcludeID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", appointmentserrors.ErrInvalidID, query.ExcludeID)
		}
		filter["_id"] = bson.M{"$ne": objectID}
	}

	opts := options.Find().SetSort(bson.D{{Key: "token_number", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find appointments for doctor: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []*model.Appointment
	if err = cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}

	return appts, nil
}

func (r *mongoAppointmentRepository) Find(ctx context.Context, filter model.AppointmentFilter, limit int, offset int64) ([]*model.Appointment, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "time", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, buildListFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []*model.Appointment
	if err = cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}

	return appts, nil
}

func (r *mongoAppointmentRepository) Count(ctx context.Context, filter model.AppointmentFilter) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, buildListFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

func buildListFilter(filter model.AppointmentFilter) bson.M {
	f := bson.M{}
	if filter.PatientID != "" {
		f["patient_id"] = filter.PatientID
	}
	if filter.DoctorID != "" {
		f["doctor_id"] = filter.DoctorID
	}
	return f
}

// UpdateScheduling writes the scheduling state of appt (date, time, status and
// the reschedule list) in one $set, guarded by the version the caller read.
// On success appt.Version is advanced.
func (r *mongoAppointmentRepository) UpdateScheduling(ctx context.Context, appt *model.Appointment, expectedVersion int64) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(appt.ID)
	if err != nil {
		return fmt.Errorf("%w: %s", appointmentserrors.ErrInvalidID, appt.ID)
	}

	filter := bson.M{"_id": objectID, "version": expectedVersion}
	update := bson.M{
		"$set": bson.M{
			"date":                appt.Date,
			"time":                appt.Time,
			"status":              appt.Status,
			"reschedule_requests": appt.RescheduleRequests,
			"version":             expectedVersion + 1,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	if result.MatchedCount == 0 {
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": objectID})
		if err != nil {
			return fmt.Errorf("failed to check appointment existence: %w", err)
		}
		if count == 0 {
			return appointmentserrors.ErrNotFound
		}
		return appointmentserrors.ErrVersionConflict
	}

	appt.Version = expectedVersion + 1
	return nil
}

func (r *mongoAppointmentRepository) AdminUpdate(ctx context.Context, id string, update *model.AppointmentUpdate) (*model.Appointment, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", appointmentserrors.ErrInvalidID, id)
	}

	set := bson.M{}
	if update.Status != "" {
		set["status"] = update.Status
	}
	if update.PaymentMode != "" {
		set["payment_mode"] = update.PaymentMode
	}
	if update.PaymentStatus != "" {
		set["payment_status"] = update.PaymentStatus
	}
	if update.Amount != nil {
		set["amount"] = *update.Amount
	}

	changes := bson.M{"$inc": bson.M{"version": 1}}
	if len(set) > 0 {
		changes["$set"] = set
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var appt model.Appointment
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, changes, opts).Decode(&appt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appointmentserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	return &appt, nil
}

// Delete removes the appointment and records its token as retired. Both
// writes commit in one transaction, so a token is never freed by a delete
// whose retirement record was lost.
func (r *mongoAppointmentRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", appointmentserrors.ErrInvalidID, id)
	}

	if sessCtx, ok := ctx.(mongo.SessionContext); ok {
		return r.deleteAndRetire(sessCtx, objectID)
	}
	return r.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		return r.deleteAndRetire(sessCtx, objectID)
	})
}

func (r *mongoAppointmentRepository) deleteAndRetire(ctx mongo.SessionContext, objectID primitive.ObjectID) error {
	var deleted model.Appointment
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": objectID}).Decode(&deleted)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return appointmentserrors.ErrNotFound
		}
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	// A moved appointment holds its token on both days.
	dates := []string{deleted.Date}
	if deleted.TokenDate != "" && deleted.TokenDate != deleted.Date {
		dates = append(dates, deleted.TokenDate)
	}
	for _, date := range dates {
		_, err = r.retiredTokens.UpdateOne(ctx,
			bson.M{"_id": retiredTokenKey(deleted.DoctorID, date)},
			bson.M{
				"$max":         bson.M{"highest": deleted.TokenNumber},
				"$setOnInsert": bson.M{"doctor_id": deleted.DoctorID, "token_date": date},
			},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("failed to retire token %d: %w", deleted.TokenNumber, err)
		}
	}

	return nil
}

// RetiredTokenFloor returns the highest token ever deleted for the doctor on
// tokenDate, or 0.
func (r *mongoAppointmentRepository) RetiredTokenFloor(ctx context.Context, doctorID, tokenDate string) (int, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var doc struct {
		Highest int `bson:"highest"`
	}
	err := r.retiredTokens.FindOne(ctx, bson.M{"_id": retiredTokenKey(doctorID, tokenDate)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read retired tokens: %w", err)
	}
	return doc.Highest, nil
}

func retiredTokenKey(doctorID, tokenDate string) string {
	return doctorID + "_" + tokenDate
}

func (r *mongoAppointmentRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
