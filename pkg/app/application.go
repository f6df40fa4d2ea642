package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"medizy/pkg/config"
	"medizy/pkg/contracts"
	"medizy/pkg/middleware"

	"github.com/julienschmidt/httprouter"
)

// ShutdownHook runs after the HTTP server stops accepting requests.
type ShutdownHook func(ctx context.Context)

type Application struct {
	cfg              *config.Config
	server           *http.Server
	idempotencyStore *middleware.InMemoryIdempotencyStore
	rateLimiter      *middleware.ActorRateLimiter
	healthHandler    http.Handler
	appHTTPHandler   http.Handler
	shutdownHooks    []ShutdownHook
	workers          []namedWorker
	stopWorkersFn    context.CancelFunc
	workersDone      sync.WaitGroup
}

type namedWorker struct {
	name   string
	worker contracts.Worker
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

func (a *Application) SetApp(handlers ...contracts.Handler) {
	a.setHealthHandler()
	a.setAppHandler(handlers)
	a.setAppServer()
}

func (a *Application) OnShutdown(hook ShutdownHook) {
	a.shutdownHooks = append(a.shutdownHooks, hook)
}

// AddWorker registers a background loop started by Run and stopped before the
// shutdown hooks run.
func (a *Application) AddWorker(name string, w contracts.Worker) {
	a.workers = append(a.workers, namedWorker{name: name, worker: w})
}

func (a *Application) Handler() http.Handler {
	return a.server.Handler
}

func (a *Application) setHealthHandler() {
	healthRouter := httprouter.New()
	NewHealthHandler(a.cfg.Client, a.cfg.Log).RegisterRoutes(healthRouter)

	var h http.Handler = healthRouter
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)
	a.healthHandler = h
	a.cfg.Log.Info("Health endpoints configured with minimal middleware (Recovery + Logging only)")
}

func (a *Application) setAppHandler(handlers []contracts.Handler) {
	if a.cfg.JWTSecret == "" {
		a.cfg.Log.Fatal("JWT secret is required to serve the API", "env", config.EnvJWTSecret)
	}

	appRouter := httprouter.New()
	for _, handler := range handlers {
		handler.RegisterRoutes(appRouter)
	}

	a.idempotencyStore = middleware.NewInMemoryIdempotencyStore(a.cfg.IdempotencyTTL)
	a.rateLimiter = middleware.NewActorRateLimiter(
		a.cfg.RateLimitRequests,
		a.cfg.RateLimitWindow,
		middleware.DefaultActorExtractor,
		a.cfg.Log,
	)

	var h http.Handler = appRouter
	h = middleware.Idempotency(a.idempotencyStore, "Idempotency-Key")(h)
	h = middleware.RequestTimeout(a.cfg.RequestTimeout, a.cfg.Log)(h)
	h = middleware.ActorRateLimit(a.rateLimiter)(h)
	h = middleware.Identity(a.cfg.JWTSecret, a.cfg.Log)(h)
	h = middleware.ContentTypeValidation(a.cfg.Log)(h)
	h = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(h)
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)
	a.appHTTPHandler = h
	a.cfg.Log.Info("Application endpoints configured with full middleware stack")
}

func (a *Application) setAppServer() {
	mux := http.NewServeMux()
	mux.Handle("/health", a.healthHandler)
	mux.Handle("/ready", a.healthHandler)
	mux.Handle("/", a.appHTTPHandler)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      mux,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

func (a *Application) Run() {
	serverErrors := make(chan error, 1)
	workerErrors := a.startWorkers()

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			a.cfg.Log.Fatal("HTTP server failed", "error", err)
		}

	case err := <-workerErrors:
		a.cfg.Log.Error("Background worker failed, shutting down", "error", err)
		a.gracefulShutdown()
		os.Exit(1)

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

// startWorkers launches every registered worker. The first unexpected exit is
// reported on the returned channel.
func (a *Application) startWorkers() <-chan error {
	failures := make(chan error, len(a.workers))
	ctx, cancel := context.WithCancel(context.Background())
	a.stopWorkersFn = cancel

	for _, nw := range a.workers {
		a.workersDone.Add(1)
		go func(nw namedWorker) {
			defer a.workersDone.Done()
			a.cfg.Log.Info("Starting background worker", "worker", nw.name)
			err := nw.worker.Start(ctx)
			if err != nil && ctx.Err() == nil {
				failures <- fmt.Errorf("%s: %w", nw.name, err)
			}
		}(nw)
	}
	return failures
}

func (a *Application) stopWorkers() {
	if a.stopWorkersFn == nil {
		return
	}
	a.stopWorkersFn()
	a.workersDone.Wait()
	for _, nw := range a.workers {
		if err := nw.worker.Close(); err != nil {
			a.cfg.Log.Error("Failed to close background worker", "worker", nw.name, "error", err)
		}
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	a.cfg.Log.Info("Stopping background workers...")
	a.stopWorkers()
	a.idempotencyStore.Stop()
	a.rateLimiter.Stop()
	for _, hook := range a.shutdownHooks {
		hook(ctx)
	}
	a.cfg.Log.Info("Background workers stopped")

	a.cfg.GracefulShutdown()
	a.cfg.Log.Info("Server stopped gracefully")
}
