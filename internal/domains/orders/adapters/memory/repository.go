package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/example/inventory-service/internal/domains/orders/domain"
	"github.com/example/inventory-service/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory purchase order persistence adapter.
type Repository struct {
	mu         sync.RWMutex
	orders     map[int64]*domain.PurchaseOrder
	nextID     int64
	nextLineID int64
}

func NewRepository() *Repository {
	return &Repository{orders: map[int64]*domain.PurchaseOrder{}}
}

func (r *Repository) Save(_ context.Context, order *domain.PurchaseOrder) (*domain.PurchaseOrder, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := cloneOrder(order)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	for i := range clone.Lines {
		if clone.Lines[i].ID == 0 {
			r.nextLineID++
			clone.Lines[i].ID = r.nextLineID
		}
	}
	r.orders[clone.ID] = clone
	return cloneOrder(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.PurchaseOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.PurchaseOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(*domain.PurchaseOrder) bool { return true }), nil
}

func (r *Repository) FindByStatus(_ context.Context, status domain.Status) ([]*domain.PurchaseOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(o *domain.PurchaseOrder) bool { return o.Status == status }), nil
}

func (r *Repository) FindByCustomerEmail(_ context.Context, email string) ([]*domain.PurchaseOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	email = strings.ToLower(strings.TrimSpace(email))
	return r.collect(func(o *domain.PurchaseOrder) bool {
		return strings.ToLower(o.CustomerEmail) == email
	}), nil
}

func (r *Repository) FindBetweenDates(_ context.Context, start, end time.Time) ([]*domain.PurchaseOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(o *domain.PurchaseOrder) bool {
		return !o.OrderDate.Before(start) && !o.OrderDate.After(end)
	}), nil
}

func (r *Repository) collect(match func(*domain.PurchaseOrder) bool) []*domain.PurchaseOrder {
	list := make([]*domain.PurchaseOrder, 0, len(r.orders))
	for _, order := range r.orders {
		if match(order) {
			list = append(list, cloneOrder(order))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func cloneOrder(order *domain.PurchaseOrder) *domain.PurchaseOrder {
	clone := *order
	clone.Lines = append([]domain.OrderLine(nil), order.Lines...)
	return &clone
}
