package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.temporal.io/sdk/activity"

	reportingdomain "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/domain"
	reportingports "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/ports"
)

// BuildDashboardActivityName reads every source and computes a dashboard.
const BuildDashboardActivityName = "reporting.activities.BuildDashboard"

// BuildDashboardInput carries the reporting instant. Location is an IANA zone
// name; time values lose their zone rules when serialised.
type BuildDashboardInput struct {
	AsOf     time.Time
	Location string
}

// Activities groups activities that operate on the reporting context.
type Activities struct {
	service reportingports.Service
}

func NewActivities(service reportingports.Service) *Activities {
	return &Activities{service: service}
}

// BuildDashboard delegates to the reporting service in the requested zone.
func (a *Activities) BuildDashboard(ctx context.Context, input BuildDashboardInput) (*reportingdomain.Dashboard, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("dashboard activity not initialized")
		return nil, errors.New("dashboard activity not initialized")
	}
	loc, err := time.LoadLocation(input.Location)
	if err != nil {
		logger.Error("BuildDashboard unknown location", "location", input.Location, "error", err)
		return nil, fmt.Errorf("load reporting location: %w", err)
	}
	asOf := input.AsOf.In(loc)
	logger.Info("BuildDashboard activity started", "asOf", asOf)
	dashboard, err := a.service.BuildDashboard(ctx, asOf)
	if err != nil {
		logger.Error("BuildDashboard activity failed", "error", err)
		return nil, err
	}
	logger.Info("BuildDashboard activity completed",
		"orders", dashboard.Summary.TotalOrders,
		"products", dashboard.Summary.TotalProducts,
		"users", dashboard.Summary.TotalUsers)
	return dashboard, nil
}
