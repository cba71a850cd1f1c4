package adminserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	orderhttpmapper "github.com/petfoodstore/admin-dashboard/internal/domains/orders/adapters/http/mapper"
	orderdomain "github.com/petfoodstore/admin-dashboard/internal/domains/orders/domain"
	ordersports "github.com/petfoodstore/admin-dashboard/internal/domains/orders/ports"
)

// OrdersAPI exposes the order gateway over HTTP. Authorization decisions
// belong to the backend; the caller's bearer token is forwarded as-is.
type OrdersAPI struct {
	gateway ordersports.Gateway
}

func NewOrdersAPI(gateway ordersports.Gateway) OrdersAPI {
	return OrdersAPI{gateway: gateway}
}

// Post /api/orders
// Places an order for the caller
func (api *OrdersAPI) CreateOrder(c *gin.Context) {
	var payload orderhttpmapper.PlaceOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	created, err := api.gateway.CreateOrder(c.Request.Context(), orderhttpmapper.ToDomainPlaceOrder(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, orderhttpmapper.FromDomainOrder(*created))
}

// Get /api/orders/my-orders
// Lists the caller's orders
func (api *OrdersAPI) GetMyOrders(c *gin.Context) {
	orders, err := api.gateway.GetMyOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}

// Get /api/orders/:id
// Finds an order by ID
func (api *OrdersAPI) GetOrderDetails(c *gin.Context) {
	id, ok := bindOrderID(c)
	if !ok {
		return
	}
	order, err := api.gateway.GetOrderDetails(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, orderhttpmapper.FromDomainOrder(*order))
}

// Get /api/orders/all
// Lists every order (staff only)
func (api *OrdersAPI) GetAllOrders(c *gin.Context) {
	orders, err := api.gateway.GetAllOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}

// Put /api/orders/:id/status
// Requests a status transition; the backend decides whether it is legal
func (api *OrdersAPI) UpdateOrderStatus(c *gin.Context) {
	id, ok := bindOrderID(c)
	if !ok {
		return
	}
	var status string
	if err := runtime.BindQueryParameter("form", true, true, "status", c.Request.URL.Query(), &status); err != nil {
		respondBadRequest(c, err)
		return
	}
	order, err := api.gateway.UpdateOrderStatus(c.Request.Context(), id, orderdomain.Status(status))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, orderhttpmapper.FromDomainOrder(*order))
}

// Get /api/orders/status/:status
// Lists orders in a status
func (api *OrdersAPI) GetOrdersByStatus(c *gin.Context) {
	var status string
	if err := runtime.BindStyledParameterWithOptions("simple", "status", c.Param("status"), &status,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true}); err != nil {
		respondBadRequest(c, err)
		return
	}
	if status == "." || status == ".." {
		responder.BadRequest(c, "status must be a status name")
		return
	}
	orders, err := api.gateway.GetOrdersByStatus(c.Request.Context(), orderdomain.Status(status))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}

// Delete /api/orders/:id
// Cancels an order
func (api *OrdersAPI) CancelOrder(c *gin.Context) {
	id, ok := bindOrderID(c)
	if !ok {
		return
	}
	if err := api.gateway.CancelOrder(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func bindOrderID(c *gin.Context) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		respondBadRequest(c, err)
		return 0, false
	}
	return id, true
}
