package repository

import (
	"context"
	"fmt"
	"time"

	notificationserrors "medizy/internal/notifications/errors"
	"medizy/pkg/config"
	"medizy/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Notifications"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Notification, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id, userID string) error
}

type mongoNotificationRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoNotificationRepository(cfg *config.Config) NotificationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoNotificationRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// Create inserts notification. The unique event_id index turns a redelivered
// event into ErrDuplicateEvent.
func (r *mongoNotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	notification.CreatedAt = notification.CreatedAt.Truncate(time.Millisecond)

	result, err := r.collection.InsertOne(ctx, notification)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", notificationserrors.ErrDuplicateEvent, notification.EventID)
		}
		return fmt.Errorf("failed to create notification: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		notification.ID = oid.Hex()
	}
	return nil
}

func (r *mongoNotificationRepository) FindByUser(ctx context.Context, userID string, limit int, offset int64) ([]*model.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find notifications: %w", err)
	}
	defer cursor.Close(ctx)

	notifications := []*model.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, nil
}

func (r *mongoNotificationRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}

// MarkRead flags the notification as read. A notification owned by someone
// else is reported as not found.
func (r *mongoNotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", notificationserrors.ErrInvalidID, id)
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID, "user_id": userID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if result.MatchedCount == 0 {
		return notificationserrors.ErrNotFound
	}
	return nil
}
