package ports

import (
	"context"
	"errors"
	"time"

	"github.com/example/inventory-service/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists purchase orders together with their lines. Lines live
// and die with the order: saving replaces the full line set, deleting the
// order removes them.
type Repository interface {
	Save(ctx context.Context, order *domain.PurchaseOrder) (*domain.PurchaseOrder, error)
	GetByID(ctx context.Context, id int64) (*domain.PurchaseOrder, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.PurchaseOrder, error)
	FindByStatus(ctx context.Context, status domain.Status) ([]*domain.PurchaseOrder, error)
	FindByCustomerEmail(ctx context.Context, email string) ([]*domain.PurchaseOrder, error)
	// FindBetweenDates returns orders whose order date falls inside the
	// closed interval [start, end].
	FindBetweenDates(ctx context.Context, start, end time.Time) ([]*domain.PurchaseOrder, error)
}

// Transactor runs a function inside one atomic unit of work. Process and
// cancel flows require it so a partial multi-line inventory adjustment never
// survives a failed status write.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
