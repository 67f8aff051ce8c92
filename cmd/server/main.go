package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/orgchart/modules"
	"github.com/iota-uz/orgchart/modules/orgchart/domain"
	"github.com/iota-uz/orgchart/pkg/application"
	"github.com/iota-uz/orgchart/pkg/configuration"
	"github.com/iota-uz/orgchart/pkg/eventbus"
	"github.com/iota-uz/orgchart/pkg/httpapi"
	"github.com/iota-uz/orgchart/pkg/logging"
	"github.com/iota-uz/orgchart/pkg/metrics"
	"github.com/iota-uz/orgchart/pkg/middleware"
	"github.com/iota-uz/orgchart/pkg/notify"
	"github.com/iota-uz/orgchart/pkg/server"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	defer conf.Unload()
	logger := conf.Logger()

	if conf.OpenTelemetry.Enabled {
		tracingCleanup := logging.SetupTracing(
			context.Background(),
			conf.OpenTelemetry.ServiceName,
			conf.OpenTelemetry.TempoURL,
		)
		defer tracingCleanup()
		logger.Info("OpenTelemetry tracing enabled, exporting to " + conf.OpenTelemetry.TempoURL)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(connectCtx, conf.Database.Opts)
	if err != nil {
		panic(err)
	}
	defer pool.Close()

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	app.RegisterMiddleware(
		middleware.WithLogger(logger, middleware.LoggerOptions{RequestIDHeader: conf.RequestIDHeader}),
		middleware.WithPool(pool),
	)
	if err := modules.Load(app, conf); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	if conf.OrgChart.NotifyEnabled {
		startNotifyListener(ctx, conf, pool, logger, app.EventPublisher())
	}

	srv := server.NewHTTPServer(app, notFoundHandler(), methodNotAllowedHandler())
	log.Printf("Listening on: %s\n", conf.SocketAddress)
	if err := srv.Serve(ctx, conf.SocketAddress, 10*time.Second); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func startNotifyListener(
	ctx context.Context,
	conf *configuration.Configuration,
	pool *pgxpool.Pool,
	logger *logrus.Logger,
	bus eventbus.EventBusWithError,
) {
	notifyLog := logger.WithField("component", "notify")
	decode := func(payload string) (any, error) {
		event, err := domain.ParseEmployeesChanged(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", notify.ErrBadPayload, err)
		}
		return event, nil
	}
	// Notifications sent while disconnected are lost, so every LISTEN
	// starts from empty caches.
	resync := func() any {
		return &domain.EmployeesResyncEvent{Reason: domain.ReasonResync}
	}
	listener, err := notify.NewListener(notify.PoolConnector(pool), decode, bus, notify.Options{
		Channel:    conf.OrgChart.NotifyChannel,
		MaxBackoff: conf.OrgChart.NotifyRetryMax,
		Logger:     notifyLog,
		Resync:     resync,
	})
	if err != nil {
		notifyLog.WithError(err).Warn("notify: listener not started")
		return
	}
	go func() {
		if err := listener.Run(ctx); err != nil && ctx.Err() == nil {
			notifyLog.WithError(err).Error("notify: listener stopped")
		}
	}()
}

func notFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "route not found", nil)
	})
}

func methodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})
}
