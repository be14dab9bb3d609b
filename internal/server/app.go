// Package server wires the MindKeeper server together: it opens the
// database, runs migrations, builds the services and supervises the gRPC
// endpoint, the metrics endpoint, the NOTIFY bridge and the refresh-token
// purge until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/mindkeeper/internal/logging"
	"github.com/dmitrijs2005/mindkeeper/internal/server/changes"
	"github.com/dmitrijs2005/mindkeeper/internal/server/config"
	"github.com/dmitrijs2005/mindkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/mindkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mindkeeper/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/mindkeeper/internal/server/grpc"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const tokenPurgeInterval = time.Hour

var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

type tokenPurger interface {
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	broker     *changes.Broker
	registry   *prometheus.Registry
	users      tokenPurger
	grpcServer *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, slog.LevelInfo)

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.MustNewMetrics(registry)

	broker := changes.NewBroker(logger)

	prefs, err := services.NewPreferencesService(db, rm, broker, c.PreferencesCacheSize)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	aggregator := services.NewWellnessAggregator(db, rm, nil)
	us := services.NewUserService(db, rm, c)

	svc := gs.Services{
		Users:       us,
		Checkins:    services.NewCheckinService(db, rm, broker),
		Preferences: prefs,
		Journal:     services.NewJournalService(db, rm),
		Breathing:   services.NewBreathingService(db, rm),
		Dashboards:  services.NewDashboardService(prefs, aggregator, c.LookbackDays, logger),
		Exports:     services.NewExportService(db, rm, c),
		Changes:     broker,
	}

	return &App{
		config:     c,
		logger:     logger,
		db:         db,
		broker:     broker,
		registry:   registry,
		users:      us,
		grpcServer: gs.NewGRPCServer(c.EndpointAddrGRPC, logger, svc, c.SecretKey, m),
	}, nil
}

// Run blocks until SIGINT/SIGTERM/SIGQUIT or until one of the components
// fails, then stops the rest and closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.grpcServer.Run(ctx)
	})

	if app.config.EndpointAddrMetrics != "" {
		g.Go(func() error {
			return app.serveMetrics(ctx)
		})
	}

	if app.config.ListenNotifications {
		listener := changes.NewPostgresListener(app.config.DatabaseDSN, app.broker, app.logger)
		g.Go(func() error {
			return listener.Run(ctx)
		})
	}

	g.Go(func() error {
		app.purgeTokens(ctx, tokenPurgeInterval)
		return nil
	})

	err := g.Wait()
	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(context.Background(), "db close error", "error", cerr)
	}
	app.logger.Info(context.Background(), "App stopped")
	return err
}

func (app *App) metricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(app.registry))
	return mux
}

func (app *App) serveMetrics(ctx context.Context) error {
	srv := &http.Server{
		Addr:              app.config.EndpointAddrMetrics,
		Handler:           app.metricsHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	app.logger.Info(ctx, "Starting metrics server", "address", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (app *App) purgeTokens(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.users.PurgeExpiredTokens(ctx)
			if err != nil {
				app.logger.Warn(ctx, "refresh token purge failed", "error", err)
				continue
			}
			if n > 0 {
				app.logger.Info(ctx, "expired refresh tokens purged", "count", n)
			}
		}
	}
}
