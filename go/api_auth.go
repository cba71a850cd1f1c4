package adminserver

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/petfoodstore/admin-dashboard/internal/clients/http/storeapi"
	ordersports "github.com/petfoodstore/admin-dashboard/internal/domains/orders/ports"
	apierrors "github.com/petfoodstore/admin-dashboard/internal/shared/errors"
)

// StaffVerifier asks the backend whether the caller in ctx is staff.
type StaffVerifier interface {
	VerifyStaff(ctx context.Context) error
}

// StaffVerifierFunc adapts a function to StaffVerifier.
type StaffVerifierFunc func(ctx context.Context) error

func (f StaffVerifierFunc) VerifyStaff(ctx context.Context) error {
	return f(ctx)
}

// GatewayStaffVerifier checks staff access with the backend's staff-only
// order listing, called as the requesting user.
func GatewayStaffVerifier(gateway ordersports.Gateway) StaffVerifier {
	return StaffVerifierFunc(func(ctx context.Context) error {
		_, err := gateway.GetAllOrders(ctx)
		return err
	})
}

// requireBearer rejects requests without a bearer token and puts the token
// on the request context so backend calls run as the caller.
func requireBearer(c *gin.Context) {
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		c.Header("WWW-Authenticate", `Bearer realm="admin-dashboard"`)
		responder.Respond(c, apierrors.ErrUnauthorized.WithDetail("bearer token required"))
		return
	}
	c.Request = c.Request.WithContext(storeapi.WithBearerToken(c.Request.Context(), token))
	c.Next()
}
