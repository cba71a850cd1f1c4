package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/petfoodstore/admin-dashboard/internal/app/api"
	reportingactivities "github.com/petfoodstore/admin-dashboard/internal/durable/temporal/activities/reporting"
	reportingworkflows "github.com/petfoodstore/admin-dashboard/internal/durable/temporal/workflows/reporting"
	platformobservability "github.com/petfoodstore/admin-dashboard/internal/platform/observability"
	platformtemporal "github.com/petfoodstore/admin-dashboard/internal/platform/temporal"
)

func main() {
	ctx := context.Background()
	const serviceName = "admin-dashboard-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	backend, err := api.BuildBackend(ctx, cfg, instruments, api.WithServiceIdentity())
	if err != nil {
		logger.Error("failed to build reporting backend", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer backend.Close()
	dashboardActivities := reportingactivities.NewActivities(backend.Reporting)

	temporalClient, err := platformtemporal.Dial(platformtemporal.Options{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Disabled:  cfg.TemporalDisabled,
	}, instruments.Tracer("temporal-worker"), logger)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, reportingworkflows.DashboardSnapshotTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(reportingworkflows.DashboardSnapshotWorkflow, workflow.RegisterOptions{Name: reportingworkflows.DashboardSnapshotWorkflowName})
	w.RegisterActivityWithOptions(dashboardActivities.BuildDashboard, activity.RegisterOptions{Name: reportingactivities.BuildDashboardActivityName})

	logger.Info("worker listening", slog.String("taskQueue", reportingworkflows.DashboardSnapshotTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
