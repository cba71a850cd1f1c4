package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	reportingactivities "github.com/petfoodstore/admin-dashboard/internal/durable/temporal/activities/reporting"
	reportingdomain "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/domain"
)

const defaultSnapshotTimeout = 30 * time.Second

// RunDashboardSnapshotSequence executes the single build activity. A failed
// build is reported as-is; dashboards are never retried.
func RunDashboardSnapshotSequence(ctx workflow.Context, input reportingactivities.BuildDashboardInput, timeout time.Duration) (*reportingdomain.Dashboard, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("dashboard snapshot sequence started", "asOf", input.AsOf, "location", input.Location)
	if timeout <= 0 {
		timeout = defaultSnapshotTimeout
	}
	options := workflow.ActivityOptions{
		StartToCloseTimeout: timeout,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var dashboard reportingdomain.Dashboard
	err := workflow.ExecuteActivity(ctx, reportingactivities.BuildDashboardActivityName, input).Get(ctx, &dashboard)
	if err != nil {
		logger.Error("dashboard snapshot sequence failed", "error", err)
		return nil, err
	}
	logger.Info("dashboard snapshot sequence completed", "orders", dashboard.Summary.TotalOrders)
	return &dashboard, nil
}
