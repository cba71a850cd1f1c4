package application

import (
	"context"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/petfoodstore/admin-dashboard/internal/domains/reporting/domain"
	"github.com/petfoodstore/admin-dashboard/internal/domains/reporting/ports"
)

// State is the lifecycle of the board's current snapshot.
type State string

const (
	StateEmpty   State = "empty"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
	StateClosed  State = "closed"
)

// Snapshot is an immutable view of the board. Dashboard is set only when
// State is ready.
type Snapshot struct {
	State       State
	Dashboard   *domain.Dashboard
	Generation  uint64
	RefreshedAt time.Time
}

// Board owns the current dashboard snapshot and its refresh trigger. Refreshes
// may overlap; a result is published only if no newer refresh has published
// and the board is still open.
type Board struct {
	orchestrator ports.WorkflowOrchestrator
	location     *time.Location
	clock        func() time.Time
	logger       *slog.Logger

	current    atomic.Pointer[Snapshot]
	generation atomic.Uint64
	closed     atomic.Bool
}

type BoardOption func(*Board)

func WithClock(clock func() time.Time) BoardOption {
	return func(b *Board) {
		if clock != nil {
			b.clock = clock
		}
	}
}

func WithBoardLogger(logger *slog.Logger) BoardOption {
	return func(b *Board) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBoard builds a board that buckets dashboards in loc.
func NewBoard(orchestrator ports.WorkflowOrchestrator, loc *time.Location, opts ...BoardOption) *Board {
	if loc == nil {
		loc = time.UTC
	}
	b := &Board{
		orchestrator: orchestrator,
		location:     loc,
		clock:        time.Now,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	b.current.Store(&Snapshot{State: StateEmpty})
	return b
}

// Current returns the latest published snapshot.
func (b *Board) Current() Snapshot {
	return *b.current.Load()
}

// Location returns the reporting timezone.
func (b *Board) Location() *time.Location {
	return b.location
}

// Refresh builds a fresh dashboard and publishes it. The returned snapshot is
// the one this call produced, even when a newer refresh superseded it.
func (b *Board) Refresh(ctx context.Context) (Snapshot, error) {
	if b.closed.Load() {
		return b.Current(), ErrBoardClosed
	}
	gen := b.generation.Add(1)
	b.publish(&Snapshot{State: StateLoading, Generation: gen})

	asOf := b.clock().In(b.location)
	dashboard, err := b.orchestrator.BuildDashboard(ctx, asOf)
	if err != nil {
		err = mapError(err)
		failed := &Snapshot{State: StateFailed, Generation: gen, RefreshedAt: asOf}
		b.logger.LogAttrs(ctx, slog.LevelError, "dashboard refresh failed",
			slog.Uint64("generation", gen), slog.String("error", err.Error()))
		b.publish(failed)
		return *failed, err
	}

	ready := &Snapshot{State: StateReady, Dashboard: dashboard, Generation: gen, RefreshedAt: asOf}
	if !b.publish(ready) {
		b.logger.LogAttrs(ctx, slog.LevelDebug, "dropping superseded dashboard", slog.Uint64("generation", gen))
	}
	return *ready, nil
}

// Close stops publication. Refreshes in flight complete but their results
// are discarded.
func (b *Board) Close() {
	b.closed.Store(true)
	b.current.Store(&Snapshot{State: StateClosed, Generation: math.MaxUint64})
}

func (b *Board) publish(next *Snapshot) bool {
	for {
		if b.closed.Load() {
			return false
		}
		cur := b.current.Load()
		if cur != nil && cur.Generation > next.Generation {
			return false
		}
		if b.current.CompareAndSwap(cur, next) {
			return true
		}
	}
}
