package application

import (
	"errors"
	"fmt"

	catalogports "github.com/example/inventory-service/internal/domains/catalog/ports"
	inventorydomain "github.com/example/inventory-service/internal/domains/inventory/domain"
	inventoryports "github.com/example/inventory-service/internal/domains/inventory/ports"
	"github.com/example/inventory-service/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a workflow invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrProductNotFound signals a requested line references an unknown product.
	ErrProductNotFound = errors.New("product not found")
	// ErrNoStockRecord signals a requested product has no inventory row.
	ErrNoStockRecord = errors.New("no inventory record for product")
	// ErrInsufficientStock signals the on-hand quantity cannot satisfy the
	// request; the wrapped message carries available vs. requested.
	ErrInsufficientStock = errors.New("insufficient stock")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyCustomerName) ||
		errors.Is(err, domain.ErrEmptyCustomerEmail) ||
		errors.Is(err, domain.ErrNoLines) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidStatus) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

func productLookupError(err error, productID int64) error {
	if errors.Is(err, catalogports.ErrNotFound) {
		return fmt.Errorf("%w: id %d", ErrProductNotFound, productID)
	}
	return err
}

func stockLookupError(err error, productName string) error {
	if errors.Is(err, inventoryports.ErrNoStockRecord) {
		return fmt.Errorf("%w: %s", ErrNoStockRecord, productName)
	}
	return err
}

func insufficientStock(productName string, available, requested int) error {
	return fmt.Errorf("%w for product %s: available %d, requested %d", ErrInsufficientStock, productName, available, requested)
}

// stockCommitError surfaces a failed delta-adjust during processing or
// restoration. A decrement rejected by the ledger's non-negative guard maps
// to insufficient stock; anything else propagates untouched.
func stockCommitError(err error, productID int64, requested int) error {
	if errors.Is(err, inventorydomain.ErrInvalidAdjustment) || errors.Is(err, inventoryports.ErrNoStockRecord) {
		return fmt.Errorf("%w while committing product %d (quantity %d)", ErrInsufficientStock, productID, requested)
	}
	return err
}
