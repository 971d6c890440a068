package application

import (
	"errors"
	"fmt"

	"github.com/example/inventory-service/internal/domains/inventory/domain"
)

// ErrInvalidInput signals the request violated a ledger invariant.
var ErrInvalidInput = errors.New("invalid inventory input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNegativeQuantity) ||
		errors.Is(err, domain.ErrInvalidAdjustment) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
