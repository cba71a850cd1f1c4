package observability

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	reportingdomain "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/domain"
	reportingports "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/ports"
)

const tracerName = "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/adapters/observability"

// Service decorates the reporting service with tracing, logging, and metrics.
type Service struct {
	inner   reportingports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core reporting service.
func New(inner reportingports.Service, opts ...Option) reportingports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.DiscardHandler),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) BuildDashboard(ctx context.Context, asOf time.Time) (*reportingdomain.Dashboard, error) {
	ctx, span := s.tracer.Start(ctx, "ReportingService.BuildDashboard",
		trace.WithAttributes(attribute.String("dashboard.as_of", asOf.Format(time.RFC3339)), attribute.String("dashboard.timezone", asOf.Location().String())))
	defer span.End()

	started := time.Now()
	s.logInfo(ctx, "building dashboard", slog.Time("as_of", asOf))
	dashboard, err := s.inner.BuildDashboard(ctx, asOf)
	elapsed := time.Since(started)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.metrics.record(ctx, elapsed, err)
		if s.logger != nil {
			s.logger.LogAttrs(ctx, slog.LevelError, "failed to build dashboard",
				slog.String("error", err.Error()), slog.Duration("elapsed", elapsed))
		}
		return nil, err
	}
	summary := dashboard.Summary
	span.SetAttributes(
		attribute.Int("dashboard.products", summary.TotalProducts),
		attribute.Int("dashboard.orders", summary.TotalOrders),
		attribute.Int("dashboard.users", summary.TotalUsers),
		attribute.Int("dashboard.low_stock", len(summary.LowStockProducts)),
	)
	s.metrics.record(ctx, elapsed, nil)
	s.logInfo(ctx, "dashboard built",
		slog.Int("products", summary.TotalProducts),
		slog.Int("orders", summary.TotalOrders),
		slog.Int("users", summary.TotalUsers),
		slog.Duration("elapsed", elapsed))
	return dashboard, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

type serviceMetrics struct {
	builds   metric.Int64Counter
	duration metric.Float64Histogram
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	builds, _ := m.Int64Counter("reporting.service.builds", metric.WithDescription("Number of dashboard builds by outcome"))
	duration, _ := m.Float64Histogram("reporting.service.build_duration", metric.WithDescription("Dashboard build latency"), metric.WithUnit("s"))
	return serviceMetrics{builds: builds, duration: duration}
}

func (m serviceMetrics) record(ctx context.Context, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	if m.builds != nil {
		m.builds.Add(ctx, 1, attrs)
	}
	if m.duration != nil {
		m.duration.Record(ctx, elapsed.Seconds(), attrs)
	}
}

var _ reportingports.Service = (*Service)(nil)
