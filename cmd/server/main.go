package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/disaster-alert-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/disaster-alert-service/internal/adapter/kafka"
	"github.com/couchcryptid/disaster-alert-service/internal/alertqueue"
	"github.com/couchcryptid/disaster-alert-service/internal/config"
	"github.com/couchcryptid/disaster-alert-service/internal/directory"
	"github.com/couchcryptid/disaster-alert-service/internal/domain"
	"github.com/couchcryptid/disaster-alert-service/internal/feed"
	"github.com/couchcryptid/disaster-alert-service/internal/observability"
	"github.com/couchcryptid/disaster-alert-service/internal/reconciler"
	"github.com/couchcryptid/disaster-alert-service/internal/session"
	"github.com/couchcryptid/disaster-alert-service/internal/simulation"
	"github.com/couchcryptid/disaster-alert-service/internal/store"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	// Workbook store (feature-flagged via WORKBOOK_FILE).
	var workbook *store.Memory
	if cfg.WorkbookFile != "" {
		workbook, err = store.LoadFile(cfg.WorkbookFile)
		if err != nil {
			logger.Error("failed to load workbook", "file", cfg.WorkbookFile, "error", err)
			os.Exit(1)
		}
		logger.Info("workbook loaded", "file", cfg.WorkbookFile)
	} else {
		workbook = store.Seeded()
		logger.Info("workbook seeded with default tabs")
	}

	fallback := reconciler.NewFallback(cfg.FallbackCapacity)

	var publisher *kafkaadapter.Publisher
	var events reconciler.Publisher
	if cfg.KafkaEnabled {
		publisher = kafkaadapter.NewPublisher(cfg, logger)
		events = publisher
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaAlertsTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	rec := reconciler.New(workbook, fallback, events, logger, metrics)
	adapter := feed.NewAdapter(workbook, clock, logger)

	deps := httpadapter.Deps{
		Reconciler: rec,
		Feed:       adapter,
		Directory:  directory.Punjab(),
		Fallback:   fallback,
		Ready:      rec,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Demo mode runs the session container, alert queue, feed poller, and
	// optionally the simulation generator in-process.
	var sim *simulation.Generator
	if cfg.DemoMode {
		sess := session.New(cfg.BackupCapacity, clock, logger)
		queue := alertqueue.New(cfg.AlertDisplayTTL, clock, func(r domain.AIAlertRecord) {
			sess.AddAlert(domain.ClientAlert{
				Title:       r.TitleName,
				Category:    r.Category,
				Severity:    r.Severity,
				Description: "Response dispatched, risk level " + domain.RiskLabel(r.RiskPercentage),
			})
			sess.UpdateStatistics(func(st *domain.Statistics) { st.ActiveAlerts++ })
		}, logger, metrics)
		sim = simulation.New(sess, clock, logger, metrics)

		deps.Session = sess
		deps.Queue = queue
		deps.Simulation = sim

		poller := feed.NewPoller(adapter, queue, cfg.FeedPollInterval, clock, logger, metrics)
		go func() {
			if err := poller.Run(ctx); err != nil {
				logger.Error("feed poller error", "error", err)
			}
		}()

		if cfg.SimulationEnabled {
			sim.Start()
		}
		logger.Info("demo mode enabled", "simulation", cfg.SimulationEnabled)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, deps, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if sim != nil {
		sim.Stop()
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
