package testhelpers

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
)

// MemoryOrderRepository mirrors the conditional-update semantics of the
// Postgres repository for tests that do not need a database.
type MemoryOrderRepository struct {
	mu       sync.Mutex
	orders   map[string]*domain.Order
	Outbox   []domain.OutboxMessage
	FailWith error
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: make(map[string]*domain.Order)}
}

func (r *MemoryOrderRepository) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	cp := *order
	r.orders[order.ID] = &cp
	r.Outbox = append(r.Outbox, domain.OutboxMessage{ID: "created-" + order.ID, AggregateID: order.ID, EventType: domain.EventOrderCreated, CreatedAt: order.CreatedAt})
	return nil
}

func (r *MemoryOrderRepository) FindByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.NewOrderNotFoundError(id)
	}
	cp := *o
	return &cp, nil
}

func (r *MemoryOrderRepository) FindByOwner(_ context.Context, ownerEmail string, limit, offset int) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return nil, r.FailWith
	}
	var out []*domain.Order
	for _, o := range r.orders {
		if o.OwnerEmail == ownerEmail {
			cp := *o
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *domain.Order) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if offset >= len(out) {
		return []*domain.Order{}, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryOrderRepository) MarkPaid(_ context.Context, id, paymentReference string, paidAt time.Time) (*domain.Order, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return nil, false, r.FailWith
	}
	o, ok := r.orders[id]
	if !ok || o.Status != domain.StatusPending {
		return nil, false, nil
	}
	if err := o.MarkPaid(paymentReference, paidAt); err != nil {
		return nil, false, err
	}
	r.Outbox = append(r.Outbox, domain.OutboxMessage{ID: "paid-" + id, AggregateID: id, EventType: domain.EventOrderPaid, CreatedAt: paidAt})
	cp := *o
	return &cp, true, nil
}

// CountEvents counts recorded outbox messages of eventType for an order.
func (r *MemoryOrderRepository) CountEvents(orderID, eventType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.Outbox {
		if m.AggregateID == orderID && m.EventType == eventType {
			n++
		}
	}
	return n
}

type MemoryUserRepository struct {
	mu    sync.Mutex
	Users map[string]*domain.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{Users: make(map[string]*domain.User)}
}

func (m *MemoryUserRepository) Create(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Users[u.Email]; ok {
		return domain.NewUserExistsError(u.Email)
	}
	m.Users[u.Email] = u
	return nil
}

// FindByEmail returns nil, nil for an unknown address like the Postgres
// repository does.
func (m *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Users[email], nil
}

type MemoryProductRepository struct {
	mu       sync.Mutex
	products []*domain.Product
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{}
}

func (m *MemoryProductRepository) Create(_ context.Context, p *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = append(m.products, p)
	return nil
}

func (m *MemoryProductRepository) FindByID(_ context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.NewProductNotFoundError(id)
}

func (m *MemoryProductRepository) List(_ context.Context, limit, offset int) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if offset >= len(m.products) {
		return []*domain.Product{}, nil
	}
	end := min(offset+limit, len(m.products))
	return slices.Clone(m.products[offset:end]), nil
}
