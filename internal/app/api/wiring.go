package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/petfoodstore/admin-dashboard/internal/clients/http/storeapi"
	ordersobs "github.com/petfoodstore/admin-dashboard/internal/domains/orders/adapters/observability"
	ordersrest "github.com/petfoodstore/admin-dashboard/internal/domains/orders/adapters/rest"
	ordersports "github.com/petfoodstore/admin-dashboard/internal/domains/orders/ports"
	reportingobs "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/adapters/observability"
	reportingpostgres "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/adapters/persistence/postgres"
	reportingrest "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/adapters/rest"
	reportingapp "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/application"
	reportingports "github.com/petfoodstore/admin-dashboard/internal/domains/reporting/ports"
	platformobservability "github.com/petfoodstore/admin-dashboard/internal/platform/observability"
	platformpostgres "github.com/petfoodstore/admin-dashboard/internal/platform/postgres"
)

// Backend bundles the order gateway and the reporting service shared by the
// API server, the Temporal worker and the snapshot CLI.
type Backend struct {
	Gateway   ordersports.Gateway
	Reporting reportingports.Service

	cleanup func()
}

// Close releases the database connection, if any.
func (b *Backend) Close() {
	if b != nil && b.cleanup != nil {
		b.cleanup()
	}
}

type backendSettings struct {
	serviceIdentity bool
}

// BackendOption configures BuildBackend.
type BackendOption func(*backendSettings)

// WithServiceIdentity authenticates backend calls that carry no caller token
// with STORE_API_TOKEN. Only the worker and the snapshot CLI act as the
// service; the HTTP API always runs as its caller.
func WithServiceIdentity() BackendOption {
	return func(s *backendSettings) {
		s.serviceIdentity = true
	}
}

// BuildBackend wires the store API client, the order gateway and the
// reporting service with their observability decorators. Dashboard sources
// come from Postgres when cfg.PostgresDSN connects, else from the store API.
func BuildBackend(ctx context.Context, cfg Config, instruments *platformobservability.Instruments, opts ...BackendOption) (*Backend, error) {
	var settings backendSettings
	for _, opt := range opts {
		opt(&settings)
	}
	logger := instruments.Logger
	clientOpts := []storeapi.Option{storeapi.WithTimeout(cfg.StoreAPITimeout)}
	if settings.serviceIdentity {
		clientOpts = append(clientOpts, storeapi.WithServiceToken(cfg.StoreAPIToken))
	}
	client, err := storeapi.NewClient(cfg.StoreAPIBaseURL, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to configure store api client: %w", err)
	}

	gateway := ordersobs.New(
		ordersrest.NewGateway(client, cfg.BackendLocation),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.gateway")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.gateway")),
	)

	sources, cleanup := buildSources(ctx, cfg, client, gateway, logger)
	coreService := reportingapp.NewService(sources, reportingapp.WithTimeout(cfg.DashboardTimeout))
	service := reportingobs.New(
		coreService,
		reportingobs.WithLogger(logger),
		reportingobs.WithTracer(instruments.Tracer("internal.reporting.application")),
		reportingobs.WithMeter(instruments.Meter("internal.reporting.application")),
	)
	return &Backend{Gateway: gateway, Reporting: service, cleanup: cleanup}, nil
}

func buildSources(ctx context.Context, cfg Config, client *storeapi.Client, gateway ordersports.Gateway, logger *slog.Logger) (reportingports.Sources, func()) {
	db, cleanup := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		return reportingrest.NewSources(client, gateway, cfg.BackendLocation).Bundle(), cleanup
	}
	logger.Info("dashboard sources configured with postgres", slog.Int("pageSize", cfg.PostgresPageSize))
	return reportingpostgres.NewSources(db, cfg.BackendLocation, cfg.PostgresPageSize).Bundle(), cleanup
}
