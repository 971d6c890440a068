package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	inventoryhttpmapper "github.com/example/inventory-service/internal/domains/inventory/adapters/http/mapper"
	inventoryports "github.com/example/inventory-service/internal/domains/inventory/ports"
)

// InventoryAPI wires HTTP transport with the inventory ledger service.
type InventoryAPI struct {
	service inventoryports.Service
}

// NewInventoryAPI creates an InventoryAPI backed by the provided service.
func NewInventoryAPI(service inventoryports.Service) InventoryAPI {
	return InventoryAPI{service: service}
}

// Get /api/inventory
// List all stock levels
func (api *InventoryAPI) ListStockLevels(c *gin.Context) {
	levels, err := api.service.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventoryhttpmapper.FromDomainStockLevels(levels))
}

// Get /api/inventory/:productId
// Read the stock level for one product
func (api *InventoryAPI) GetStockLevel(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	level, err := api.service.GetByProduct(c.Request.Context(), productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventoryhttpmapper.FromDomainStockLevel(level))
}

// Put /api/inventory/:productId
// Set the stock level for one product to an absolute quantity
func (api *InventoryAPI) SetStockLevel(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	var payload inventoryhttpmapper.SetQuantity
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	level, err := api.service.SetQuantity(c.Request.Context(), productID, *payload.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventoryhttpmapper.FromDomainStockLevel(level))
}

// Post /api/inventory/:productId/adjust
// Apply a signed delta to the stock level for one product
func (api *InventoryAPI) AdjustStockLevel(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	var payload inventoryhttpmapper.Adjustment
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	level, err := api.service.Adjust(c.Request.Context(), productID, *payload.Delta)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, inventoryhttpmapper.FromDomainStockLevel(level))
}
