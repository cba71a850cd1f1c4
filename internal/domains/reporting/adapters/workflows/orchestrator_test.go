package workflows

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reportingdomain "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/domain"
)

type recordingService struct {
	asOf time.Time
}

func (r *recordingService) BuildDashboard(_ context.Context, asOf time.Time) (*reportingdomain.Dashboard, error) {
	r.asOf = asOf
	return &reportingdomain.Dashboard{AsOf: asOf}, nil
}

func TestInlineDashboardWorkflowsDelegates(t *testing.T) {
	svc := &recordingService{}
	asOf := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)

	dashboard, err := NewInlineDashboardWorkflows(svc).BuildDashboard(context.Background(), asOf)
	require.NoError(t, err)
	assert.Equal(t, asOf, svc.asOf)
	assert.Equal(t, asOf, dashboard.AsOf)
}

func TestUnconfiguredOrchestratorsFail(t *testing.T) {
	_, err := NewInlineDashboardWorkflows(nil).BuildDashboard(context.Background(), time.Now())
	require.Error(t, err)

	_, err = NewTemporalDashboardWorkflows(nil, time.Second).BuildDashboard(context.Background(), time.Now())
	require.Error(t, err)
}

func TestWorkflowTraceComponentFallsBack(t *testing.T) {
	assert.Contains(t, workflowTraceComponent(context.Background()), "fallback-")
}
