package model

import "time"

// SlotLock is an advisory lock serializing scheduling writes for one doctor
// on one date. Expired locks are reaped by a TTL index.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	Owner     string    `bson:"owner" json:"owner"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
