package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	adminserver "github.com/petfoodstore/admin-dashboard/go"

	dashboardmapper "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/adapters/http/mapper"
	reportingworkflows "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/adapters/workflows"
	reportingapp "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/application"
	reportingports "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/ports"
	platformobservability "github.com/petfoodstore/admin-dashboard/internal/platform/observability"
	platformtemporal "github.com/petfoodstore/admin-dashboard/internal/platform/temporal"
)

const serviceName = "admin-dashboard-api"

// Run boots the admin dashboard HTTP API with observability, sources and
// workflows wired. It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	backend, err := BuildBackend(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer backend.Close()

	var dashboardWorkflows reportingports.WorkflowOrchestrator = reportingworkflows.NewInlineDashboardWorkflows(backend.Reporting)
	temporalClient, err := platformtemporal.Dial(platformtemporal.Options{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Disabled:  cfg.TemporalDisabled,
	}, instruments.Tracer("temporal-client"), logger)
	if err != nil {
		logger.Warn("Temporal workflows unavailable, building dashboards inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		dashboardWorkflows = reportingworkflows.NewTemporalDashboardWorkflows(temporalClient, cfg.DashboardTimeout)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	board := reportingapp.NewBoard(dashboardWorkflows, cfg.ReportLocation, reportingapp.WithBoardLogger(logger))
	defer board.Close()

	handlers := adminserver.ApiHandleFunctions{
		DashboardAPI: adminserver.NewDashboardAPI(board,
			adminserver.GatewayStaffVerifier(backend.Gateway),
			dashboardmapper.NewFormatter(cfg.ReportLocation)),
		OrdersAPI:    adminserver.NewOrdersAPI(backend.Gateway),
	}
	router := adminserver.NewRouter(handlers, otelgin.Middleware(serviceName))

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("admin dashboard API listening", slog.String("addr", server.Addr),
			slog.String("storeAPI", cfg.StoreAPIBaseURL), slog.String("reportTimezone", cfg.ReportLocation.String()))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("admin dashboard API exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	board.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("admin dashboard API shutdown failed", slog.String("error", err.Error()))
		return err
	}
	logger.Info("admin dashboard API stopped")
	return nil
}
