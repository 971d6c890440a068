package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/inventory-service/internal/domains/orders/domain"
	"github.com/example/inventory-service/internal/domains/orders/ports"
)

// OrderItem is one requested (product, quantity) pair on an inbound order.
type OrderItem struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

// CreateOrder captures the inbound payload for opening a purchase order.
type CreateOrder struct {
	CustomerName  string      `json:"customerName" binding:"required"`
	CustomerEmail string      `json:"customerEmail" binding:"required"`
	Items         []OrderItem `json:"items" binding:"required"`
}

// OrderLine is the HTTP representation of one line on a purchase order.
type OrderLine struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Order is the HTTP representation of a purchase order.
type Order struct {
	ID            int64           `json:"id"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	OrderDate     time.Time       `json:"orderDate"`
	Status        string          `json:"status"`
	Lines         []OrderLine     `json:"lines"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

// ToCreateOrderInput converts the inbound payload into the application command.
func ToCreateOrderInput(payload CreateOrder) ports.CreateOrderInput {
	items := make([]ports.OrderItemInput, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, ports.OrderItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return ports.CreateOrderInput{
		CustomerName:  payload.CustomerName,
		CustomerEmail: payload.CustomerEmail,
		Items:         items,
	}
}

// FromDomainOrder maps a purchase order into the transport representation.
func FromDomainOrder(order *domain.PurchaseOrder) Order {
	if order == nil {
		return Order{}
	}
	lines := make([]OrderLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLine{
			ID:          line.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.Subtotal,
		})
	}
	return Order{
		ID:            order.ID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		OrderDate:     order.OrderDate,
		Status:        string(order.Status),
		Lines:         lines,
		TotalAmount:   order.TotalAmount,
	}
}

// FromDomainOrders maps a list of orders, always returning a non-nil slice.
func FromDomainOrders(orders []*domain.PurchaseOrder) []Order {
	result := make([]Order, 0, len(orders))
	for _, o := range orders {
		result = append(result, FromDomainOrder(o))
	}
	return result
}
