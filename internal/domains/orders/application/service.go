package application

import (
	"context"
	"fmt"
	"time"

	"github.com/example/inventory-service/internal/domains/orders/domain"
	"github.com/example/inventory-service/internal/domains/orders/ports"
)

// Service is the order workflow engine. It turns a requested item list into
// a persisted order, commits stock at processing time, and reconciles stock
// on cancellation. Creation performs a read-only availability check without
// reserving: two concurrent creates can both pass for the same scarce unit,
// and the ledger's non-negative guard at process time is what actually
// prevents oversell.
type Service struct {
	repo    ports.Repository
	tx      ports.Transactor
	catalog ports.ProductCatalog
	ledger  ports.StockLedger
	now     func() time.Time
}

type Option func(*Service)

// WithClock overrides the order timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the workflow engine with its collaborators.
func NewService(repo ports.Repository, tx ports.Transactor, catalog ports.ProductCatalog, ledger ports.StockLedger, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		tx:      tx,
		catalog: catalog,
		ledger:  ledger,
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder validates availability for every requested line and persists a
// new order in CREATED state. The check holds no reservation; stock is only
// decremented later by ProcessOrder. The first failing line aborts the whole
// call and nothing is persisted.
func (s *Service) CreateOrder(ctx context.Context, input ports.CreateOrderInput) (*domain.PurchaseOrder, error) {
	order, err := domain.NewPurchaseOrder(input.CustomerName, input.CustomerEmail, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	if len(input.Items) == 0 {
		return nil, mapError(domain.ErrNoLines)
	}
	for _, item := range input.Items {
		product, err := s.catalog.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, productLookupError(err, item.ProductID)
		}
		level, err := s.ledger.GetByProduct(ctx, product.ID)
		if err != nil {
			return nil, stockLookupError(err, product.Name)
		}
		if !level.Covers(item.Quantity) {
			return nil, insufficientStock(product.Name, level.Quantity, item.Quantity)
		}
		line, err := domain.NewOrderLine(product.ID, product.Name, item.Quantity, product.Price)
		if err != nil {
			return nil, mapError(err)
		}
		order.AddLine(line)
	}
	if err := order.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// ProcessOrder transitions a CREATED order to COMPLETED and decrements the
// ledger for every line inside one transactional unit of work. A failed
// decrement aborts the call; the surrounding transaction discards any
// adjustments already applied for earlier lines, leaving the order CREATED
// and the stock untouched.
func (s *Service) ProcessOrder(ctx context.Context, orderID int64) (*domain.PurchaseOrder, error) {
	var processed *domain.PurchaseOrder
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		order, err := s.repo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.BeginProcessing(); err != nil {
			return err
		}
		for _, line := range order.Lines {
			if _, err := s.ledger.Adjust(ctx, line.ProductID, -line.Quantity); err != nil {
				return stockCommitError(err, line.ProductID, line.Quantity)
			}
		}
		if err := order.Complete(); err != nil {
			return err
		}
		processed, err = s.repo.Save(ctx, order)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return processed, nil
}

// CancelOrder transitions an order to CANCELLED. When stock had already been
// committed (a durably observed PROCESSING state, e.g. after a crash between
// decrement and completion), every line quantity is restored through the
// ledger; a freshly created order is cancelled without touching stock.
func (s *Service) CancelOrder(ctx context.Context, orderID int64) (*domain.PurchaseOrder, error) {
	var cancelled *domain.PurchaseOrder
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		order, err := s.repo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		restock, err := order.Cancel()
		if err != nil {
			return err
		}
		if restock {
			for _, line := range order.Lines {
				if _, err := s.ledger.Adjust(ctx, line.ProductID, line.Quantity); err != nil {
					return stockCommitError(err, line.ProductID, -line.Quantity)
				}
			}
		}
		cancelled, err = s.repo.Save(ctx, order)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return cancelled, nil
}

func (s *Service) GetAllOrders(ctx context.Context) ([]*domain.PurchaseOrder, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetOrderByID(ctx context.Context, id int64) (*domain.PurchaseOrder, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetOrdersByStatus(ctx context.Context, status domain.Status) ([]*domain.PurchaseOrder, error) {
	if _, err := domain.ParseStatus(string(status)); err != nil {
		return nil, mapError(err)
	}
	return s.repo.FindByStatus(ctx, status)
}

func (s *Service) GetOrdersByCustomerEmail(ctx context.Context, email string) ([]*domain.PurchaseOrder, error) {
	return s.repo.FindByCustomerEmail(ctx, email)
}

func (s *Service) GetOrdersBetweenDates(ctx context.Context, start, end time.Time) ([]*domain.PurchaseOrder, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date precedes start date", ErrInvalidInput)
	}
	return s.repo.FindBetweenDates(ctx, start, end)
}

var _ ports.Service = (*Service)(nil)
