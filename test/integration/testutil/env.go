package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"medizy/pkg/client"
)

const (
	DefaultHealthCheckTimeout = 30 * time.Second
)

// TestEnv points at a running deployment: the three services, their shared
// database and the JWT secret they verify tokens with.
type TestEnv struct {
	MongoURI         string
	DatabaseName     string
	AppointmentsURL  string
	DoctorsURL       string
	NotificationsURL string
	JWTSecret        string
}

func NewTestEnv() *TestEnv {
	return &TestEnv{
		MongoURI:         getEnv("TEST_MONGO_URI", DefaultMongoURI),
		DatabaseName:     getEnv("TEST_DB_NAME", DefaultDatabaseName),
		AppointmentsURL:  getEnv("TEST_APPOINTMENTS_URL", "http://localhost:8080"),
		DoctorsURL:       getEnv("TEST_DOCTORS_URL", "http://localhost:8081"),
		NotificationsURL: getEnv("TEST_NOTIFICATIONS_URL", "http://localhost:8082"),
		JWTSecret:        getEnv("TEST_JWT_SECRET", "integration-secret"),
	}
}

// Setup skips the test unless TEST_INTEGRATION is set, then waits for the
// services and starts from an empty database.
func (e *TestEnv) Setup(t *testing.T) *MongoHelper {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("set TEST_INTEGRATION=1 to run against live services")
	}

	mongo := NewMongoHelper(t, e.MongoURI, e.DatabaseName)
	mongo.CleanDatabase(t)

	for _, url := range []string{e.AppointmentsURL, e.DoctorsURL, e.NotificationsURL} {
		if err := client.NewHttpClient(url).WaitForHealthy(context.Background(), DefaultHealthCheckTimeout); err != nil {
			t.Fatalf("%s: %v", url, err)
		}
	}

	return mongo
}

func (e *TestEnv) Cleanup(t *testing.T, mongo *MongoHelper) {
	t.Helper()

	if mongo != nil {
		mongo.CleanDatabase(t)
		mongo.Close(t)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
