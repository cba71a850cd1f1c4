package ports

import (
	"context"
	"errors"
	"time"

	"github.com/petfoodstore/admin-dashboard/internal/domains/reporting/domain"
)

// ErrDashboardUnavailable is returned whenever any source fails. No partial
// dashboard accompanies it.
var ErrDashboardUnavailable = errors.New("failed to load dashboard")

// Service builds dashboards.
type Service interface {
	// BuildDashboard reads every source and computes the dashboard as of asOf.
	// Calendar bucketing uses asOf's location.
	BuildDashboard(ctx context.Context, asOf time.Time) (*domain.Dashboard, error)
}

// WorkflowOrchestrator runs a dashboard build, durably or inline.
type WorkflowOrchestrator interface {
	BuildDashboard(ctx context.Context, asOf time.Time) (*domain.Dashboard, error)
}
