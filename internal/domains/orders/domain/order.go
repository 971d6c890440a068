package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates the purchase order lifecycle. PROCESSING is normally
// transient: processing flips an order CREATED -> PROCESSING -> COMPLETED
// within one call, so other callers only observe it after a crash between
// the inventory decrement and the final status write.
type Status string

const (
	StatusCreated    Status = "CREATED"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

var (
	ErrEmptyCustomerName  = errors.New("customer name is required")
	ErrEmptyCustomerEmail = errors.New("customer email is required")
	ErrNoLines            = errors.New("order must contain at least one line")
	ErrInvalidQuantity    = errors.New("line quantity must be greater than zero")
	ErrInvalidStatus      = errors.New("order status is invalid")
	// ErrInvalidTransition is returned for any state change the lifecycle
	// does not allow, e.g. processing a completed order.
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// OrderLine is one product entry within a purchase order. UnitPrice is
// copied from the product when the line is built and never re-read, so later
// catalog price changes do not rewrite history.
type OrderLine struct {
	ID          int64
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// NewOrderLine snapshots a product into an order line and computes the
// subtotal.
func NewOrderLine(productID int64, productName string, quantity int, unitPrice decimal.Decimal) (OrderLine, error) {
	if quantity <= 0 {
		return OrderLine{}, ErrInvalidQuantity
	}
	line := OrderLine{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}
	line.recalculateSubtotal()
	return line, nil
}

func (l *OrderLine) recalculateSubtotal() {
	l.Subtotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// PurchaseOrder is the aggregate governing the fulfillment workflow. It owns
// its lines; TotalAmount is derived from them and never independently set.
type PurchaseOrder struct {
	ID            int64
	CustomerName  string
	CustomerEmail string
	OrderDate     time.Time
	Status        Status
	Lines         []OrderLine
	TotalAmount   decimal.Decimal
}

// NewPurchaseOrder builds an empty order in CREATED state. Lines are added
// before the order is persisted; an order is never saved without at least
// one.
func NewPurchaseOrder(customerName, customerEmail string, orderDate time.Time) (*PurchaseOrder, error) {
	if strings.TrimSpace(customerName) == "" {
		return nil, ErrEmptyCustomerName
	}
	if strings.TrimSpace(customerEmail) == "" {
		return nil, ErrEmptyCustomerEmail
	}
	if orderDate.IsZero() {
		orderDate = time.Now()
	}
	return &PurchaseOrder{
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		OrderDate:     orderDate,
		Status:        StatusCreated,
		TotalAmount:   decimal.Zero,
	}, nil
}

// AddLine attaches a line and re-derives the order total.
func (o *PurchaseOrder) AddLine(line OrderLine) {
	o.Lines = append(o.Lines, line)
	o.RecalculateTotal()
}

// RecalculateTotal re-derives TotalAmount from the current line set. It runs
// after every line mutation so the stored total can never drift from the
// stored lines.
func (o *PurchaseOrder) RecalculateTotal() {
	total := decimal.Zero
	for i := range o.Lines {
		o.Lines[i].recalculateSubtotal()
		total = total.Add(o.Lines[i].Subtotal)
	}
	o.TotalAmount = total
}

// Validate enforces invariants on the aggregate.
func (o *PurchaseOrder) Validate() error {
	if strings.TrimSpace(o.CustomerName) == "" {
		return ErrEmptyCustomerName
	}
	if strings.TrimSpace(o.CustomerEmail) == "" {
		return ErrEmptyCustomerEmail
	}
	if len(o.Lines) == 0 {
		return ErrNoLines
	}
	for _, line := range o.Lines {
		if line.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	if !isValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// BeginProcessing moves the order into PROCESSING. Only freshly created
// orders can be processed: completed, cancelled, or already in-flight orders
// are rejected.
func (o *PurchaseOrder) BeginProcessing() error {
	if o.Status != StatusCreated {
		return fmt.Errorf("%w: order cannot be processed, current status: %s", ErrInvalidTransition, o.Status)
	}
	o.Status = StatusProcessing
	return nil
}

// Complete finishes processing. Valid only from PROCESSING.
func (o *PurchaseOrder) Complete() error {
	if o.Status != StatusProcessing {
		return fmt.Errorf("%w: order cannot be completed, current status: %s", ErrInvalidTransition, o.Status)
	}
	o.Status = StatusCompleted
	return nil
}

// Cancel moves the order into CANCELLED. Completed orders are terminal and
// cannot be cancelled. The returned flag reports whether stock had already
// been committed (state PROCESSING) and must be restored by the caller.
func (o *PurchaseOrder) Cancel() (restock bool, err error) {
	if o.Status == StatusCompleted {
		return false, fmt.Errorf("%w: completed orders cannot be cancelled", ErrInvalidTransition)
	}
	restock = o.Status == StatusProcessing
	o.Status = StatusCancelled
	return restock, nil
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusCreated, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// ParseStatus converts external input into a Status.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !isValidStatus(status) {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return status, nil
}
