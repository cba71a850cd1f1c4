package adminserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/petfoodstore/admin-dashboard/internal/clients/http/storeapi"
	ordersports "github.com/petfoodstore/admin-dashboard/internal/domains/orders/ports"
	reportingapp "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/application"
	reportingports "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/ports"
	apierrors "github.com/petfoodstore/admin-dashboard/internal/shared/errors"
)

var responder = apierrors.NewChainedResponder("", dashboardProblem, upstreamProblem)

// envelope wraps every success payload, matching the backend's shape.
type envelope struct {
	Data any `json:"data"`
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Data: data})
}

func respondBadRequest(c *gin.Context, err error) {
	responder.BadRequest(c, err.Error())
}

// respondError maps err to a problem. Server-side causes are logged and
// never echoed to the client.
func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	problem, ok := responder.Map(err)
	if !ok {
		problem = apierrors.ErrInternal.WithDetail("unexpected error")
	}
	if problem.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
		slog.Default().LogAttrs(c.Request.Context(), slog.LevelError, "request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", problem.Status),
			slog.String("error", err.Error()))
	}
	responder.Respond(c, problem)
}

// dashboardProblem collapses every aggregation failure into one 503.
func dashboardProblem(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, reportingapp.ErrBoardClosed):
		return apierrors.ErrServiceUnavailable.WithDetail("dashboard is shutting down"), true
	case errors.Is(err, reportingports.ErrDashboardUnavailable):
		return apierrors.ErrServiceUnavailable.WithDetail(reportingports.ErrDashboardUnavailable.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

const (
	detailUpstreamUnreachable = "store backend unreachable"
	detailUpstreamUnreadable  = "store backend returned an unreadable response"
	detailUpstreamTimeout     = "store backend did not answer in time"
)

// upstreamProblem relays store backend failures.
func upstreamProblem(err error) (apierrors.ProblemDetail, bool) {
	var apiErr *storeapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case storeapi.KindStatus:
			problem := apierrors.FromUpstreamStatus(apiErr.StatusCode)
			if apiErr.Message != "" && problem.Status < http.StatusInternalServerError {
				problem = problem.WithDetail(apiErr.Message)
			}
			return problem, true
		case storeapi.KindTransport:
			if errors.Is(err, context.DeadlineExceeded) {
				return apierrors.ErrGatewayTimeout.WithDetail(detailUpstreamTimeout), true
			}
			return apierrors.ErrBadGateway.WithDetail(detailUpstreamUnreachable), true
		default:
			return apierrors.ErrBadGateway.WithDetail(detailUpstreamUnreadable), true
		}
	}
	if errors.Is(err, storeapi.ErrInvalidPathSegment) {
		return apierrors.ErrBadRequest.WithDetail(storeapi.ErrInvalidPathSegment.Error()), true
	}
	if errors.Is(err, ordersports.ErrMalformedOrder) {
		return apierrors.ErrBadGateway.WithDetail(detailUpstreamUnreadable), true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apierrors.ErrGatewayTimeout.WithDetail(detailUpstreamTimeout), true
	}
	return apierrors.ProblemDetail{}, false
}
