package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	reportingdomain "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/domain"
	"github.com/petfoodstore/admin-dashboard/internal/domains/reporting/ports"
	reportingworkflows "github.com/petfoodstore/admin-dashboard/internal/durable/temporal/workflows/reporting"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalDashboardWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineDashboardWorkflows)(nil)
)

// TemporalDashboardWorkflows builds dashboards on a Temporal worker.
type TemporalDashboardWorkflows struct {
	client    client.Client
	taskQueue string
	timeout   time.Duration
}

// NewTemporalDashboardWorkflows wires a Temporal client into the orchestrator.
// timeout bounds the build activity.
func NewTemporalDashboardWorkflows(c client.Client, timeout time.Duration) *TemporalDashboardWorkflows {
	return &TemporalDashboardWorkflows{client: c, taskQueue: reportingworkflows.DashboardSnapshotTaskQueue, timeout: timeout}
}

// BuildDashboard starts the snapshot workflow and waits for its result.
func (o *TemporalDashboardWorkflows) BuildDashboard(ctx context.Context, asOf time.Time) (*reportingdomain.Dashboard, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal dashboard workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := fmt.Sprintf("dashboard-snapshot-%d-%s", asOf.UnixNano(), traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	if o.timeout > 0 {
		options.WorkflowExecutionTimeout = 2 * o.timeout
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		reportingworkflows.DashboardSnapshotWorkflowName,
		reportingworkflows.DashboardSnapshotWorkflowInput{
			AsOf:     asOf,
			Location: asOf.Location().String(),
			Timeout:  o.timeout,
			TraceID:  traceComponent,
		},
	)
	if err != nil {
		// Same instant and trace: join the build already in flight.
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return nil, err
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var dashboard reportingdomain.Dashboard
	if err := run.Get(ctx, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// InlineDashboardWorkflows executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineDashboardWorkflows struct {
	service ports.Service
}

func NewInlineDashboardWorkflows(service ports.Service) *InlineDashboardWorkflows {
	return &InlineDashboardWorkflows{service: service}
}

// BuildDashboard delegates to the reporting service.
func (o *InlineDashboardWorkflows) BuildDashboard(ctx context.Context, asOf time.Time) (*reportingdomain.Dashboard, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline dashboard workflows not configured")
	}
	return o.service.BuildDashboard(ctx, asOf)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
