package adminserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers served by the admin API.
type ApiHandleFunctions struct {
	DashboardAPI DashboardAPI
	OrdersAPI    OrdersAPI
}

// NewRouter returns a new router with recovery and the given middleware
// installed ahead of every route.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)
	return NewRouterWithGinEngine(router, handleFunctions)
}

// NewRouterWithGinEngine registers the admin API routes on router. Every
// route but /healthz requires a bearer token.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	router.GET("/healthz", Healthz)
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, requireBearer, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes without a handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// Healthz reports process liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"GetDashboard", http.MethodGet, "/api/admin/dashboard", handleFunctions.DashboardAPI.GetDashboard},
		{"GetDashboardSnapshot", http.MethodGet, "/api/admin/dashboard/snapshot", handleFunctions.DashboardAPI.GetDashboardSnapshot},
		{"ExportDashboard", http.MethodGet, "/api/admin/dashboard/export.xlsx", handleFunctions.DashboardAPI.ExportDashboard},
		{"CreateOrder", http.MethodPost, "/api/orders", handleFunctions.OrdersAPI.CreateOrder},
		{"GetMyOrders", http.MethodGet, "/api/orders/my-orders", handleFunctions.OrdersAPI.GetMyOrders},
		{"GetAllOrders", http.MethodGet, "/api/orders/all", handleFunctions.OrdersAPI.GetAllOrders},
		{"GetOrdersByStatus", http.MethodGet, "/api/orders/status/:status", handleFunctions.OrdersAPI.GetOrdersByStatus},
		{"GetOrderDetails", http.MethodGet, "/api/orders/:id", handleFunctions.OrdersAPI.GetOrderDetails},
		{"UpdateOrderStatus", http.MethodPut, "/api/orders/:id/status", handleFunctions.OrdersAPI.UpdateOrderStatus},
		{"CancelOrder", http.MethodDelete, "/api/orders/:id", handleFunctions.OrdersAPI.CancelOrder},
	}
}
