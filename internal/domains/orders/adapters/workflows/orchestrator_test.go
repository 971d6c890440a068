package workflows

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/example/inventory-service/internal/domains/orders/application"
	ordersdomain "github.com/example/inventory-service/internal/domains/orders/domain"
	"github.com/example/inventory-service/internal/domains/orders/ports"
	orderworkflows "github.com/example/inventory-service/internal/platform/temporal/workflows/orders"
)

func TestRestoreBusinessError_RebuildsSentinelsFromErrorType(t *testing.T) {
	cases := []struct {
		name    string
		errType string
		message string
		want    error
	}{
		{
			name:    "order not found",
			errType: orderworkflows.OrderNotFoundErrorType,
			message: "order not found",
			want:    ports.ErrNotFound,
		},
		{
			name:    "invalid transition",
			errType: orderworkflows.InvalidTransitionErrorType,
			message: "invalid order status transition: cannot process order in status COMPLETED",
			want:    ordersdomain.ErrInvalidTransition,
		},
		{
			name:    "insufficient stock",
			errType: orderworkflows.InsufficientStockErrorType,
			message: "insufficient stock while committing product 2 (quantity 6)",
			want:    ordersapp.ErrInsufficientStock,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wireErr := temporal.NewNonRetryableApplicationError(tc.message, tc.errType, nil)

			got := restoreBusinessError(wireErr)

			require.ErrorIs(t, got, tc.want)
			assert.Equal(t, tc.message, got.Error())
		})
	}
}

func TestRestoreBusinessError_LeavesOtherErrorsUntouched(t *testing.T) {
	infra := errors.New("worker unavailable")
	require.Equal(t, infra, restoreBusinessError(infra))

	unknown := temporal.NewApplicationError("boom", "SomethingElse")
	got := restoreBusinessError(unknown)
	require.Equal(t, unknown, got)
	assert.NotErrorIs(t, got, ports.ErrNotFound)
	assert.NotErrorIs(t, got, ordersdomain.ErrInvalidTransition)
	assert.NotErrorIs(t, got, ordersapp.ErrInsufficientStock)
}
