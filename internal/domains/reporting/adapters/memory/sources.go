package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	catalog "github.com/petfoodstore/admin-dashboard/internal/domains/catalog/domain"
	identity "github.com/petfoodstore/admin-dashboard/internal/domains/identity/domain"
	orders "github.com/petfoodstore/admin-dashboard/internal/domains/orders/domain"
	"github.com/petfoodstore/admin-dashboard/internal/domains/reporting/ports"
)

var (
	_ ports.ProductSource = (*Store)(nil)
	_ ports.OrderSource   = (*Store)(nil)
	_ ports.UserSource    = (*Store)(nil)
)

// Store is an in-memory dashboard source. Items are served in the order they
// were added, pageSize at a time; cursors are decimal offsets.
type Store struct {
	mu       sync.RWMutex
	pageSize int
	products []catalog.Product
	orders   []orders.Order
	users    []identity.User
}

// NewStore builds an empty store. pageSize <= 0 serves everything in one page.
func NewStore(pageSize int) *Store {
	return &Store{pageSize: pageSize}
}

// Sources exposes the store as all three dashboard sources.
func (s *Store) Sources() ports.Sources {
	return ports.Sources{Products: s, Orders: s, Users: s}
}

func (s *Store) AddProducts(items ...catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, items...)
}

// AddOrders appends orders; callers add them newest first.
func (s *Store) AddOrders(items ...orders.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, items...)
}

// AddUsers appends users in registration order.
func (s *Store) AddUsers(items ...identity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, items...)
}

func (s *Store) ListProducts(ctx context.Context, cursor string) (ports.Page[catalog.Product], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return page(ctx, s.products, cursor, s.pageSize)
}

func (s *Store) ListOrders(ctx context.Context, cursor string) (ports.Page[orders.Order], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return page(ctx, s.orders, cursor, s.pageSize)
}

func (s *Store) ListUsers(ctx context.Context, cursor string) (ports.Page[identity.User], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return page(ctx, s.users, cursor, s.pageSize)
}

func page[T any](ctx context.Context, items []T, cursor string, size int) (ports.Page[T], error) {
	if err := ctx.Err(); err != nil {
		return ports.Page[T]{}, err
	}
	offset := 0
	if cursor != "" {
		parsed, err := strconv.Atoi(cursor)
		if err != nil || parsed < 0 || parsed > len(items) {
			return ports.Page[T]{}, fmt.Errorf("invalid cursor %q", cursor)
		}
		offset = parsed
	}
	end := len(items)
	if size > 0 && offset+size < end {
		end = offset + size
	}
	out := make([]T, end-offset)
	copy(out, items[offset:end])
	next := ""
	if end < len(items) {
		next = strconv.Itoa(end)
	}
	return ports.Page[T]{Items: out, Next: next}, nil
}
