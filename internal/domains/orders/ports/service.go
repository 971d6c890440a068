package ports

import (
	"context"
	"time"

	catalogdomain "github.com/example/inventory-service/internal/domains/catalog/domain"
	inventorydomain "github.com/example/inventory-service/internal/domains/inventory/domain"
	"github.com/example/inventory-service/internal/domains/orders/domain"
)

// OrderItemInput is one requested (product, quantity) pair. Quantity must be
// a positive integer; the workflow treats that as a caller contract.
type OrderItemInput struct {
	ProductID int64
	Quantity  int
}

// CreateOrderInput carries everything needed to open a purchase order.
type CreateOrderInput struct {
	CustomerName  string
	CustomerEmail string
	Items         []OrderItemInput
}

// Service exposes the order workflow operations and read-only queries.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.PurchaseOrder, error)
	ProcessOrder(ctx context.Context, orderID int64) (*domain.PurchaseOrder, error)
	CancelOrder(ctx context.Context, orderID int64) (*domain.PurchaseOrder, error)

	GetAllOrders(ctx context.Context) ([]*domain.PurchaseOrder, error)
	GetOrderByID(ctx context.Context, id int64) (*domain.PurchaseOrder, error)
	GetOrdersByStatus(ctx context.Context, status domain.Status) ([]*domain.PurchaseOrder, error)
	GetOrdersByCustomerEmail(ctx context.Context, email string) ([]*domain.PurchaseOrder, error)
	GetOrdersBetweenDates(ctx context.Context, start, end time.Time) ([]*domain.PurchaseOrder, error)
}

// ProductCatalog is the read-only product lookup the workflow consumes from
// the catalog bounded context.
type ProductCatalog interface {
	FindByID(ctx context.Context, id int64) (*catalogdomain.Product, error)
}

// StockLedger is the slice of the inventory ledger the workflow consumes:
// availability reads and the signed delta-adjust choke point.
type StockLedger interface {
	GetByProduct(ctx context.Context, productID int64) (*inventorydomain.StockLevel, error)
	Adjust(ctx context.Context, productID int64, delta int) (*inventorydomain.StockLevel, error)
}
