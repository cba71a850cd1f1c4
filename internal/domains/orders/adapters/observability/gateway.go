package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/petfoodstore/admin-dashboard/internal/clients/http/storeapi"
	orderdomain "github.com/petfoodstore/admin-dashboard/internal/domains/orders/domain"
	orderports "github.com/petfoodstore/admin-dashboard/internal/domains/orders/ports"
)

const tracerName = "github.com/petfoodstore/admin-dashboard/internal/domains/orders/adapters/observability"

// Gateway decorates the order gateway with tracing, logging, and metrics.
type Gateway struct {
	inner   orderports.Gateway
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics gatewayMetrics
}

type Option func(*Gateway)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(g *Gateway) {
		g.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(g *Gateway) {
		g.metrics = newGatewayMetrics(m)
	}
}

// New wraps an order gateway.
func New(inner orderports.Gateway, opts ...Option) orderports.Gateway {
	g := &Gateway{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.DiscardHandler),
		metrics: newGatewayMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	if g.tracer == nil {
		g.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return g
}

func (g *Gateway) CreateOrder(ctx context.Context, order orderdomain.PlaceOrder) (*orderdomain.Order, error) {
	ctx, span := g.tracer.Start(ctx, "OrderGateway.CreateOrder",
		trace.WithAttributes(attribute.Int("order.items", len(order.Items)), attribute.String("order.payment_method", string(order.PaymentMethod))))
	defer span.End()

	result, err := g.inner.CreateOrder(ctx, order)
	if err != nil {
		return nil, g.handleError(ctx, span, "create", err, "failed to create order")
	}
	g.metrics.record(ctx, "create", nil)
	g.logInfo(ctx, "order created", slog.Int64("order.id", result.ID), slog.String("order.number", result.OrderNumber))
	return result, nil
}

func (g *Gateway) GetMyOrders(ctx context.Context) ([]orderdomain.Order, error) {
	ctx, span := g.tracer.Start(ctx, "OrderGateway.GetMyOrders")
	defer span.End()

	result, err := g.inner.GetMyOrders(ctx)
	if err != nil {
		return nil, g.handleError(ctx, span, "mine", err, "failed to load caller orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	g.metrics.record(ctx, "mine", nil)
	return result, nil
}

func (g *Gateway) GetOrderDetails(ctx context.Context, id int64) (*orderdomain.Order, error) {
	ctx, span := g.tracer.Start(ctx, "OrderGateway.GetOrderDetails", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	result, err := g.inner.GetOrderDetails(ctx, id)
	if err != nil {
		return nil, g.handleError(ctx, span, "details", err, "failed to load order", slog.Int64("order.id", id))
	}
	g.metrics.record(ctx, "details", nil)
	return result, nil
}

func (g *Gateway) GetAllOrders(ctx context.Context) ([]orderdomain.Order, error) {
	ctx, span := g.tracer.Start(ctx, "OrderGateway.GetAllOrders")
	defer span.End()

	result, err := g.inner.GetAllOrders(ctx)
	if err != nil {
		return nil, g.handleError(ctx, span, "all", err, "failed to load all orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	g.metrics.record(ctx, "all", nil)
	return result, nil
}

func (g *Gateway) UpdateOrderStatus(ctx context.Context, id int64, status orderdomain.Status) (*orderdomain.Order, error) {
	ctx, span := g.tracer.Start(ctx, "OrderGateway.UpdateOrderStatus",
		trace.WithAttributes(attribute.Int64("order.id", id), attribute.String("order.status", string(status))))
	defer span.End()

	g.logInfo(ctx, "updating order status", slog.Int64("order.id", id), slog.String("status", string(status)))
	result, err := g.inner.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, g.handleError(ctx, span, "update_status", err, "failed to update order status",
			slog.Int64("order.id", id), slog.String("status", string(status)))
	}
	g.metrics.record(ctx, "update_status", nil)
	g.logInfo(ctx, "order status updated", slog.Int64("order.id", result.ID), slog.String("status", string(result.Status)))
	return result, nil
}

func (g *Gateway) GetOrdersByStatus(ctx context.Context, status orderdomain.Status) ([]orderdomain.Order, error) {
	ctx, span := g.tracer.Start(ctx, "OrderGateway.GetOrdersByStatus", trace.WithAttributes(attribute.String("order.status", string(status))))
	defer span.End()

	result, err := g.inner.GetOrdersByStatus(ctx, status)
	if err != nil {
		return nil, g.handleError(ctx, span, "by_status", err, "failed to load orders by status", slog.String("status", string(status)))
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	g.metrics.record(ctx, "by_status", nil)
	return result, nil
}

func (g *Gateway) CancelOrder(ctx context.Context, id int64) error {
	ctx, span := g.tracer.Start(ctx, "OrderGateway.CancelOrder", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if err := g.inner.CancelOrder(ctx, id); err != nil {
		return g.handleError(ctx, span, "cancel", err, "failed to cancel order", slog.Int64("order.id", id))
	}
	g.metrics.record(ctx, "cancel", nil)
	g.logInfo(ctx, "order cancelled", slog.Int64("order.id", id))
	return nil
}

func (g *Gateway) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if g.logger == nil {
		return
	}
	g.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (g *Gateway) handleError(ctx context.Context, span trace.Span, operation string, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if status := storeapi.StatusCode(err); status != 0 {
			span.SetAttributes(attribute.Int("http.upstream_status", status))
		}
	}
	g.metrics.record(ctx, operation, err)
	if g.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		g.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

type gatewayMetrics struct {
	calls metric.Int64Counter
}

func newGatewayMetrics(m metric.Meter) gatewayMetrics {
	if m == nil {
		return gatewayMetrics{}
	}
	calls, _ := m.Int64Counter("orders.gateway.calls", metric.WithDescription("Number of order gateway calls by operation and outcome"))
	return gatewayMetrics{calls: calls}
}

func (m gatewayMetrics) record(ctx context.Context, operation string, err error) {
	if m.calls == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.calls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

var _ orderports.Gateway = (*Gateway)(nil)
