package repository

import (
	"context"
	"time"

	appointmentserrors "medizy/internal/appointments/errors"
	"medizy/pkg/config"
	"medizy/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const LockCollectionName = "Slot_locks"

// SlotLockRepository provides operations for advisory locks
type SlotLockRepository interface {
	Create(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error)
	Delete(ctx context.Context, lockID, owner string) error
	DeleteExpired(ctx context.Context, lockID string, now time.Time) (bool, error)
}

type mongoSlotLockRepository struct {
	collection *mongo.Collection
}

func NewSlotLockRepository(cfg *config.Config) SlotLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSlotLockRepository{
		collection: db.Collection(LockCollectionName),
	}
}

// Create returns ErrLockHeld if the lock already exists.
func (r *mongoSlotLockRepository) Create(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
	lock.CreatedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, appointmentserrors.ErrLockHeld
		}
		return nil, err
	}

	return lock, nil
}

// Delete removes the lock only while it is still held by owner.
func (r *mongoSlotLockRepository) Delete(ctx context.Context, lockID, owner string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID, "owner": owner})
	return err
}

// DeleteExpired clears a lock whose holder died before the TTL monitor ran.
func (r *mongoSlotLockRepository) DeleteExpired(ctx context.Context, lockID string, now time.Time) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{
		"_id":        lockID,
		"expires_at": bson.M{"$lt": now},
	})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}
