// Package server boots and runs the storefront API process.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anandicecream/storefront/app/controllers"
	"github.com/anandicecream/storefront/app/jobs"
	"github.com/anandicecream/storefront/app/models"
	"github.com/anandicecream/storefront/app/repositories"
	"github.com/anandicecream/storefront/app/routes"
	"github.com/anandicecream/storefront/app/services"
	"github.com/anandicecream/storefront/config"
	"github.com/anandicecream/storefront/internal/notify"
	"github.com/anandicecream/storefront/pkg/cache"
	"github.com/anandicecream/storefront/pkg/database"
	"github.com/anandicecream/storefront/pkg/event"
	"github.com/anandicecream/storefront/pkg/logger"
	"github.com/anandicecream/storefront/pkg/metrics"
	"github.com/anandicecream/storefront/pkg/middleware"
	"github.com/anandicecream/storefront/pkg/queue"
	"github.com/anandicecream/storefront/pkg/reqid"
	"github.com/anandicecream/storefront/pkg/router"
	"github.com/anandicecream/storefront/pkg/storage"
	"github.com/anandicecream/storefront/pkg/workerpool"
)

const (
	notifyPoolSize   = 32
	queueWorkerCount = 2
	shutdownGrace    = 15 * time.Second
)

// Start boots every subsystem and serves HTTP until SIGINT/SIGTERM.
// Shutdown order: stop accepting connections, drain in-flight requests,
// drain the notification pool, stop queue workers, close the database,
// then flush the optional Mongo log sink last so shutdown itself is logged.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	// Optional MongoDB log sink. Logging keeps working on stdout alone when
	// the sink is not configured or unreachable.
	var mongoLog *logger.MongoHandler
	if uri := config.Get("LOG_MONGO_URI", ""); uri != "" {
		mh, err := logger.NewMongoHandler(uri,
			config.Get("LOG_MONGO_DB", "storefront"),
			config.Get("LOG_MONGO_COLLECTION", "logs"))
		if err != nil {
			logger.Warn("server: mongo log sink unavailable", "error", err)
		} else {
			mongoLog = mh
			logger.SetHandler(logger.NewMultiHandler(logger.L.Handler(), mh))
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("server: redis unavailable, cache and redis queue disabled", "error", err)
	}
	storage.Connect()

	repo := repositories.NewOrderRepository(database.DB)
	pool := workerpool.New(notifyPoolSize)

	dispatcher := notify.New(config.AdminEmail(), storage.Default())
	svc := services.NewOrderService(repo, pool, dispatcher)

	// Queue: Redis driver when available, in-process otherwise.
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	if err := queue.UseDB(database.DB); err != nil {
		return err
	}
	jobs.Register()
	jobs.UseDispatcher(dispatcher)

	queueCtx, stopQueue := context.WithCancel(context.Background())
	defer stopQueue()
	queue.StartWorkers(queueCtx, queueWorkerCount)

	// Status changes go out through the retrying queue.
	event.Listen(services.EventOrderStatusChanged, func(payload interface{}) {
		order, ok := payload.(*models.Order)
		if !ok {
			return
		}
		if err := queue.Dispatch(&jobs.StatusEmailJob{Order: *order}); err != nil {
			logger.Error("server: status email enqueue failed", "order_id", order.OrderID, "error", err)
		}
	})

	r := router.New()
	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(120, time.Minute),
	)
	routes.RegisterAPI(r, controllers.NewOrderController(svc))

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("server: shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server: forced shutdown", "error", err)
	}

	pool.Shutdown()
	stopQueue()

	if err := database.Close(); err != nil {
		logger.Error("server: closing database", "error", err)
	}

	logger.Info("server: stopped")
	if mongoLog != nil {
		mongoLog.Close()
	}
	return nil
}
