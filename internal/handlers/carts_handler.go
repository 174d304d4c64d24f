package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/middleware"
	"storefront-service/internal/models"
	"storefront-service/internal/services"
)

type CartsHandler struct {
	carts    *services.CartService
	checkout *services.CheckoutService
}

func NewCartsHandler(carts *services.CartService, checkout *services.CheckoutService) *CartsHandler {
	return &CartsHandler{carts: carts, checkout: checkout}
}

// GetCart handles GET /cart — returns the cart grouped by store, the shape
// the storefront renders.
func (h *CartsHandler) GetCart(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	customerID := middleware.GetCustomerID(c)

	_, items, err := h.carts.GetCart(tenantID, customerID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "CART_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    h.checkout.GroupCart(items),
	})
}

// AddItem handles POST /cart/items
func (h *CartsHandler) AddItem(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	customerID := middleware.GetCustomerID(c)

	var req models.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	items, err := h.carts.AddItem(tenantID, customerID, &req)
	if err != nil {
		respondError(c, http.StatusUnprocessableEntity, "ADD_ITEM_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    h.checkout.GroupCart(items),
	})
}

// UpdateItem handles PATCH /cart/items/:itemId
func (h *CartsHandler) UpdateItem(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	customerID := middleware.GetCustomerID(c)
	itemID := c.Param("itemId")

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	items, err := h.carts.UpdateItem(tenantID, customerID, itemID, *req.Quantity)
	if err != nil {
		respondError(c, http.StatusNotFound, "ITEM_NOT_FOUND", err.Error())
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    h.checkout.GroupCart(items),
	})
}

// RemoveItem handles DELETE /cart/items/:itemId
func (h *CartsHandler) RemoveItem(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	customerID := middleware.GetCustomerID(c)
	itemID := c.Param("itemId")

	items, err := h.carts.RemoveItem(tenantID, customerID, itemID)
	if err != nil {
		respondError(c, http.StatusNotFound, "ITEM_NOT_FOUND", err.Error())
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    h.checkout.GroupCart(items),
	})
}

// Clear handles DELETE /cart
func (h *CartsHandler) Clear(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	customerID := middleware.GetCustomerID(c)

	if err := h.carts.Clear(tenantID, customerID); err != nil {
		respondError(c, http.StatusInternalServerError, "CLEAR_FAILED", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
