package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/kirillkom/customs-intake/internal/config"
	"github.com/kirillkom/customs-intake/internal/core/ports"
	"github.com/kirillkom/customs-intake/internal/core/usecase"
	"github.com/kirillkom/customs-intake/internal/infrastructure/analysis"
	"github.com/kirillkom/customs-intake/internal/infrastructure/analysis/simulated"
	"github.com/kirillkom/customs-intake/internal/infrastructure/catalog"
	"github.com/kirillkom/customs-intake/internal/infrastructure/identity"
	"github.com/kirillkom/customs-intake/internal/infrastructure/resilience"
	"github.com/kirillkom/customs-intake/internal/observability/metrics"
)

type App struct {
	Config config.Config

	Intake   *usecase.IntakeService
	Review   ports.ReviewReader
	Tracker  *usecase.Tracker
	Registry ports.DeclarationRegistry
	Metrics  *metrics.IntakeMetrics

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	normal, preferential, declared, err := cfg.Eligibility.Amounts()
	if err != nil {
		return nil, fmt.Errorf("eligibility profile: %w", err)
	}

	intakeMetrics := metrics.NewIntakeMetrics(cfg.ServiceName)
	ids := identity.NewGenerator(cfg.Declarations.NumberStart, cfg.Declarations.NumberYear)
	clock := identity.SystemClock{}

	executor := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    cfg.Resilience.RetryMaxAttempts,
		RetryInitialBackoff: cfg.Resilience.RetryInitialBackoff,
		RetryMaxBackoff:     cfg.Resilience.RetryMaxBackoff,
		BreakerEnabled:      cfg.Resilience.BreakerEnabled,
		BreakerMinRequests:  uint32(max(cfg.Resilience.BreakerMinRequests, 0)),
		BreakerFailureRatio: cfg.Resilience.BreakerFailureRatio,
		BreakerOpenTimeout:  cfg.Resilience.BreakerOpenTimeout,
	})

	documents := analysis.NewGuardedDocumentAnalyzer(simulated.NewDocumentAnalyzer(ids, clock, nil), executor)
	eligibility := analysis.NewGuardedEligibilityAnalyzer(simulated.NewEligibilityAnalyzer(simulated.EligibilityProfile{
		Eligible:               cfg.Eligibility.Eligible,
		NormalTariffRate:       normal,
		PreferentialTariffRate: preferential,
		DeclaredValue:          declared,
		Currency:               cfg.Eligibility.Currency,
	}, clock), executor)

	registry := catalog.NewRegistry()
	intake := usecase.NewIntakeService(documents, eligibility, registry, ids, clock, intakeMetrics, usecase.IntakeConfig{
		DocumentBaseDelay: cfg.Intake.DocumentBaseDelay,
		DocumentStepDelay: cfg.Intake.DocumentStepDelay,
		EligibilityDelay:  cfg.Intake.EligibilityDelay,
		DeclaredValue:     declared,
	})
	review := usecase.NewReviewService(catalog.NewSample(), registry)
	tracker := usecase.NewTracker(usecase.TrackingConfig{
		Start:    cfg.Tracking.Start,
		Step:     cfg.Tracking.Step,
		Interval: cfg.Tracking.Interval,
	})

	app := &App{
		Config:   cfg,
		Intake:   intake,
		Review:   review,
		Tracker:  tracker,
		Registry: registry,
		Metrics:  intakeMetrics,
	}

	if cfg.MetricsAddr != "" {
		stop, err := serveMetrics(ctx, cfg.MetricsAddr, intakeMetrics.Handler())
		if err != nil {
			return nil, err
		}
		app.closeFn = stop
	}
	return app, nil
}

// serveMetrics exposes /metrics on addr until the returned stop is called.
func serveMetrics(ctx context.Context, addr string, handler http.Handler) (func(), error) {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen metrics %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("metrics_listening", "addr", listener.Addr().String())
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics_server_failed", "error", err)
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Warn("metrics_shutdown_failed", "error", err)
		}
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
