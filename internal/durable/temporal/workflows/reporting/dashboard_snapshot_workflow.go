package reporting

import (
	"time"

	"go.temporal.io/sdk/workflow"

	reportingactivities "github.com/petfoodstore/admin-dashboard/internal/durable/temporal/activities/reporting"
	"github.com/petfoodstore/admin-dashboard/internal/durable/temporal/sequences"
	reportingdomain "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/domain"
)

const (
	// DashboardSnapshotWorkflowName is the public identifier for registering the workflow.
	DashboardSnapshotWorkflowName = "reporting.workflows.DashboardSnapshot"
	// DashboardSnapshotTaskQueue is the queue consumed by the worker building dashboards.
	DashboardSnapshotTaskQueue = "DASHBOARD_SNAPSHOT"
)

// DashboardSnapshotWorkflowInput requests a dashboard as of AsOf in Location.
// A zero AsOf means the workflow's own clock.
type DashboardSnapshotWorkflowInput struct {
	AsOf     time.Time
	Location string
	Timeout  time.Duration
	TraceID  string
}

// DashboardSnapshotWorkflow builds one dashboard snapshot.
func DashboardSnapshotWorkflow(ctx workflow.Context, input DashboardSnapshotWorkflowInput) (*reportingdomain.Dashboard, error) {
	logger := workflow.GetLogger(ctx)
	asOf := input.AsOf
	if asOf.IsZero() {
		asOf = workflow.Now(ctx)
	}
	logger.Info("DashboardSnapshotWorkflow started", withTraceID(input.TraceID, "asOf", asOf, "location", input.Location)...)
	dashboard, err := sequences.RunDashboardSnapshotSequence(ctx, reportingactivities.BuildDashboardInput{
		AsOf:     asOf,
		Location: input.Location,
	}, input.Timeout)
	if err != nil {
		logger.Error("DashboardSnapshotWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}
	logger.Info("DashboardSnapshotWorkflow completed", withTraceID(input.TraceID, "orders", dashboard.Summary.TotalOrders)...)
	return dashboard, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
