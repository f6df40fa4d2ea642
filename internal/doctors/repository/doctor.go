package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	doctorserrors "medizy/internal/doctors/errors"
	"medizy/pkg/config"
	"medizy/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Doctors"
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	FindByID(ctx context.Context, id string) (*model.Doctor, error)
	FindByUserID(ctx context.Context, userID string) (*model.Doctor, error)
	GetAvailability(ctx context.Context, userID string) (*model.DoctorAvailability, error)
	AddSlot(ctx context.Context, id string, slot model.AvailableSlot) error
	DeleteSlot(ctx context.Context, id, slotID string) error
	ReplaceSchedule(ctx context.Context, id string, schedule map[string][]string) error
}

type mongoDoctorRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoDoctorRepository(cfg *config.Config) DoctorRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoDoctorRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoDoctorRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoDoctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	doctor.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	if doctor.AvailableSlots == nil {
		doctor.AvailableSlots = []model.AvailableSlot{}
	}

	result, err := r.collection.InsertOne(ctx, doctor)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", doctorserrors.ErrDuplicateProfile, doctor.UserID)
		}
		return fmt.Errorf("failed to create doctor: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		doctor.ID = oid.Hex()
	}
	return nil
}

func (r *mongoDoctorRepository) FindByID(ctx context.Context, id string) (*model.Doctor, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", doctorserrors.ErrInvalidID, id)
	}
	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *mongoDoctorRepository) FindByUserID(ctx context.Context, userID string) (*model.Doctor, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *mongoDoctorRepository) findOne(ctx context.Context, filter bson.M) (*model.Doctor, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var doctor model.Doctor
	if err := r.collection.FindOne(ctx, filter).Decode(&doctor); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, doctorserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find doctor: %w", err)
	}
	return &doctor, nil
}

// GetAvailability reads only the availability fields of the doctor owning
// userID.
func (r *mongoDoctorRepository) GetAvailability(ctx context.Context, userID string) (*model.DoctorAvailability, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{"available_slots": 1, "schedule": 1})

	var av model.DoctorAvailability
	if err := r.collection.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&av); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, doctorserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read doctor availability: %w", err)
	}
	return &av, nil
}

// AddSlot appends slot unless an identical date/from/to window is present.
func (r *mongoDoctorRepository) AddSlot(ctx context.Context, id string, slot model.AvailableSlot) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", doctorserrors.ErrInvalidID, id)
	}

	filter := bson.M{
		"_id": objectID,
		"available_slots": bson.M{"$not": bson.M{"$elemMatch": bson.M{
			"date": slot.Date,
			"from": slot.From,
			"to":   slot.To,
		}}},
	}
	update := bson.M{"$push": bson.M{"available_slots": slot}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to add slot: %w", err)
	}
	if result.MatchedCount == 0 {
		return r.missingOr(ctx, objectID, doctorserrors.ErrDuplicateSlot)
	}
	return nil
}

func (r *mongoDoctorRepository) DeleteSlot(ctx context.Context, id, slotID string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", doctorserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID, "available_slots.id": slotID}
	update := bson.M{"$pull": bson.M{"available_slots": bson.M{"id": slotID}}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	if result.MatchedCount == 0 {
		return r.missingOr(ctx, objectID, doctorserrors.ErrSlotNotFound)
	}
	return nil
}

func (r *mongoDoctorRepository) ReplaceSchedule(ctx context.Context, id string, schedule map[string][]string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", doctorserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M{"schedule": schedule}})
	if err != nil {
		return fmt.Errorf("failed to replace schedule: %w", err)
	}
	if result.MatchedCount == 0 {
		return doctorserrors.ErrNotFound
	}
	return nil
}

// missingOr distinguishes an absent doctor from a guarded update that did
// not match.
func (r *mongoDoctorRepository) missingOr(ctx context.Context, objectID primitive.ObjectID, otherwise error) error {
	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to check doctor existence: %w", err)
	}
	if count == 0 {
		return doctorserrors.ErrNotFound
	}
	return otherwise
}
