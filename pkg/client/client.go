package client

import (
	"context"
	"time"

	"medizy/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Client struct {
	Mongo *mongo.Client
}

func NewClient() *Client {
	return &Client{}
}

// SetMongo connects and pings, exiting on failure. Services cannot book
// without the store, so there is no degraded mode.
func (c *Client) SetMongo(log *logger.Logger, appName, mongoURI string, mongoConnTimeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(mongoURI).
		SetAppName(appName).
		SetRetryWrites(true).
		SetServerSelectionTimeout(mongoConnTimeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB", "error", err)
	}

	log.Info("Successfully connected to MongoDB", "app_name", appName)
	c.Mongo = client
}

// Ping is used by the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	if c.Mongo == nil {
		return mongo.ErrClientDisconnected
	}
	return c.Mongo.Ping(ctx, nil)
}

func (c *Client) GracefulShutdown(log *logger.Logger, timeout time.Duration) {
	if c.Mongo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := c.Mongo.Disconnect(ctx); err != nil {
		log.Error("Failed to disconnect from MongoDB", "error", err)
		return
	}
	log.Info("Disconnected from MongoDB")
}
