package adminserver

import (
	"bytes"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	reportingexport "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/adapters/export"
	dashboardmapper "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/adapters/http/mapper"
	reportingapp "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/application"
	reportingdomain "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/domain"
	apierrors "github.com/petfoodstore/admin-dashboard/internal/shared/errors"
)

// Board is the dashboard snapshot holder served by DashboardAPI.
type Board interface {
	Current() reportingapp.Snapshot
	Refresh(ctx context.Context) (reportingapp.Snapshot, error)
}

// DashboardAPI serves the admin dashboard. Dashboards may be built from
// Postgres or by the worker under the service identity, so every request is
// first checked with the backend by staff.
type DashboardAPI struct {
	board     Board
	staff     StaffVerifier
	formatter *dashboardmapper.Formatter
}

// NewDashboardAPI renders dashboards with formatter for callers staff admits.
func NewDashboardAPI(board Board, staff StaffVerifier, formatter *dashboardmapper.Formatter) DashboardAPI {
	return DashboardAPI{board: board, staff: staff, formatter: formatter}
}

// Get /api/admin/dashboard
// Rebuilds the dashboard from the backend and returns it
func (api *DashboardAPI) GetDashboard(c *gin.Context) {
	if !api.authorize(c) {
		return
	}
	dashboard, err := api.refresh(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, api.formatter.FromDomainDashboard(*dashboard))
}

// Get /api/admin/dashboard/snapshot
// Returns the last published dashboard state without refetching
func (api *DashboardAPI) GetDashboardSnapshot(c *gin.Context) {
	if !api.authorize(c) {
		return
	}
	respondData(c, http.StatusOK, api.formatter.FromSnapshot(api.board.Current()))
}

// Get /api/admin/dashboard/export.xlsx
// Downloads the dashboard as a workbook; cached=true reuses the current snapshot
func (api *DashboardAPI) ExportDashboard(c *gin.Context) {
	var cached bool
	if err := runtime.BindQueryParameter("form", true, false, "cached", c.Request.URL.Query(), &cached); err != nil {
		respondBadRequest(c, err)
		return
	}
	if !api.authorize(c) {
		return
	}

	var dashboard *reportingdomain.Dashboard
	if snap := api.board.Current(); cached && snap.State == reportingapp.StateReady {
		dashboard = snap.Dashboard
	} else {
		var err error
		if dashboard, err = api.refresh(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
	}

	var buf bytes.Buffer
	if err := reportingexport.WriteXLSX(&buf, *dashboard, api.formatter); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+reportingexport.FileName(*dashboard))
	c.Data(http.StatusOK, reportingexport.ContentTypeXLSX, buf.Bytes())
}

// authorize answers the request with a problem unless the caller is staff.
func (api *DashboardAPI) authorize(c *gin.Context) bool {
	if api.staff == nil {
		responder.Respond(c, apierrors.ErrForbidden.WithDetail("staff verification unavailable"))
		return false
	}
	if err := api.staff.VerifyStaff(c.Request.Context()); err != nil {
		respondError(c, err)
		return false
	}
	return true
}

func (api *DashboardAPI) refresh(ctx context.Context) (*reportingdomain.Dashboard, error) {
	snap, err := api.board.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Dashboard, nil
}
