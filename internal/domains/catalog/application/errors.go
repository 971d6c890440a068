package application

import (
	"errors"
	"fmt"

	"github.com/example/inventory-service/internal/domains/catalog/domain"
	"github.com/example/inventory-service/internal/domains/catalog/ports"
)

// ErrInvalidInput signals the request violated a catalog invariant.
var ErrInvalidInput = errors.New("invalid product input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrEmptySKU) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, ports.ErrDuplicateSKU) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
