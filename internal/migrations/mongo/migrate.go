package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medizy/internal/migrations/mongo/validators"
	"medizy/pkg/logger"
)

const (
	AppointmentsCollection  = "Appointments"
	DoctorsCollection       = "Doctors"
	NotificationsCollection = "Notifications"
	SlotLocksCollection     = "Slot_locks"
	RetiredTokensCollection = "Retired_tokens"
)

var (
	AppointmentsIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "doctor_id", Value: 1},
				{Key: "token_date", Value: 1},
				{Key: "token_number", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_doctor_token"),
		},
		{Keys: bson.D{
			{Key: "doctor_id", Value: 1},
			{Key: "date", Value: 1},
			{Key: "status", Value: 1},
		}},
		{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	DoctorsIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_user"),
		},
		{Keys: bson.D{{Key: "available_slots.id", Value: 1}}},
	}

	NotificationsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{
			Keys: bson.D{{Key: "event_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("uniq_event").
				SetPartialFilterExpression(bson.M{"event_id": bson.M{"$exists": true}}),
		},
	}

	// Expired locks are reclaimed by acquirers anyway; the TTL index only
	// keeps the collection small.
	SlotLocksIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("ttl_expires_at"),
		},
	}
)

type collectionDef struct {
	Indexes   []mongo.IndexModel
	Validator bson.M
}

func collections() map[string]collectionDef {
	return map[string]collectionDef{
		AppointmentsCollection: {
			Indexes:   AppointmentsIndexes,
			Validator: validators.AppointmentValidator,
		},
		DoctorsCollection: {
			Indexes:   DoctorsIndexes,
			Validator: validators.DoctorValidator,
		},
		NotificationsCollection: {
			Indexes:   NotificationsIndexes,
			Validator: validators.NotificationValidator,
		},
		SlotLocksCollection: {
			Indexes:   SlotLocksIndexes,
			Validator: validators.SlotLockValidator,
		},
		RetiredTokensCollection: {
			Validator: validators.RetiredTokensValidator,
		},
	}
}

// RunMigration creates or updates every collection with its validator and
// indexes. It is safe to run repeatedly.
func RunMigration(ctx context.Context, client *mongo.Client, dbName string, log *logger.Logger) error {
	db := client.Database(dbName)
	log.Info("Running Mongo migrations", "database", dbName)

	for name, def := range collections() {
		if err := ensureCollection(ctx, db, name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if len(models) == 0 {
		return nil
	}
	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}
