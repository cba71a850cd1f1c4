package application

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/petfoodstore/admin-dashboard/internal/domains/reporting/domain"
	"github.com/petfoodstore/admin-dashboard/internal/domains/reporting/ports"
)

const defaultMaxPages = 10_000

// Service reads the three dashboard sources and folds them into a Dashboard.
type Service struct {
	sources     ports.Sources
	timeout     time.Duration
	recentLimit int
	maxPages    int
}

type Option func(*Service)

// WithTimeout bounds a whole build. Zero disables the guard.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		s.timeout = timeout
	}
}

// WithRecentLimit changes how many recent orders and users are kept.
func WithRecentLimit(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.recentLimit = n
		}
	}
}

// WithMaxPages caps how many pages are read from any one source.
func WithMaxPages(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxPages = n
		}
	}
}

func NewService(sources ports.Sources, opts ...Option) *Service {
	s := &Service{
		sources:     sources,
		recentLimit: domain.RecentLimit,
		maxPages:    defaultMaxPages,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// BuildDashboard drains all sources concurrently. Any failure cancels the
// remaining reads and no dashboard is returned.
func (s *Service) BuildDashboard(ctx context.Context, asOf time.Time) (*domain.Dashboard, error) {
	if s.sources.Products == nil || s.sources.Orders == nil || s.sources.Users == nil {
		return nil, mapError(ErrSourceNotConfigured)
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	acc := domain.NewAccumulator(asOf, s.recentLimit)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return drain(gctx, "products", s.maxPages, s.sources.Products.ListProducts, acc.Products.Add)
	})
	g.Go(func() error {
		return drain(gctx, "orders", s.maxPages, s.sources.Orders.ListOrders, acc.Orders.Add)
	})
	g.Go(func() error {
		return drain(gctx, "users", s.maxPages, s.sources.Users.ListUsers, acc.Users.Add)
	})
	if err := g.Wait(); err != nil {
		return nil, mapError(err)
	}

	dashboard := acc.Dashboard()
	return &dashboard, nil
}

func drain[T any](ctx context.Context, name string, maxPages int, fetch func(context.Context, string) (ports.Page[T], error), add func(...T)) error {
	cursor := ""
	for pages := 0; ; pages++ {
		if pages >= maxPages {
			return fmt.Errorf("%s: %w", name, ErrTooManyPages)
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		page, err := fetch(ctx, cursor)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		add(page.Items...)
		if page.Next == "" {
			return nil
		}
		if page.Next == cursor {
			return fmt.Errorf("%s: %w", name, ErrCursorStalled)
		}
		cursor = page.Next
	}
}

var _ ports.Service = (*Service)(nil)
