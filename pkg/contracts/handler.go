package contracts

import (
	"context"

	"github.com/julienschmidt/httprouter"
)

// Handler mounts a service's routes under the shared router.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}

// Worker is a loop the application runs beside the HTTP server, such as a
// Kafka consumer. Start blocks until ctx is cancelled or the loop fails;
// Close is called once after Start's context is cancelled.
type Worker interface {
	Start(ctx context.Context) error
	Close() error
}
