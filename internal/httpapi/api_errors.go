package httpapi

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/example/inventory-service/internal/domains/catalog/application"
	catalogports "github.com/example/inventory-service/internal/domains/catalog/ports"
	inventoryapp "github.com/example/inventory-service/internal/domains/inventory/application"
	inventoryports "github.com/example/inventory-service/internal/domains/inventory/ports"
	ordersapp "github.com/example/inventory-service/internal/domains/orders/application"
	ordersdomain "github.com/example/inventory-service/internal/domains/orders/domain"
	ordersports "github.com/example/inventory-service/internal/domains/orders/ports"
	apierrors "github.com/example/inventory-service/internal/shared/errors"
)

// problems maps application errors onto RFC 7807 responses: missing
// resources become 404, rejected lifecycle transitions 409, everything the
// caller could have avoided 400, and the rest 500.
var problems = apierrors.NewChainedResponder("",
	notFoundMapper,
	conflictMapper,
	badRequestMapper,
)

func notFoundMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogports.ErrNotFound),
		errors.Is(err, inventoryports.ErrNoStockRecord),
		errors.Is(err, ordersports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func conflictMapper(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, ordersdomain.ErrInvalidTransition) {
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func badRequestMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, inventoryapp.ErrInvalidInput),
		errors.Is(err, ordersapp.ErrInvalidInput),
		errors.Is(err, ordersapp.ErrProductNotFound),
		errors.Is(err, ordersapp.ErrNoStockRecord),
		errors.Is(err, ordersapp.ErrInsufficientStock):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	problems.RespondError(c, err)
}

func respondBindingError(c *gin.Context, err error) {
	problems.Respond(c, apierrors.ErrValidation.WithDetail(err.Error()))
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		problems.Respond(c, apierrors.ErrBadRequest.WithDetail(name+" must be an integer"))
		return 0, false
	}
	return id, true
}
