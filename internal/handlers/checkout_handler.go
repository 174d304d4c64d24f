package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/middleware"
	"storefront-service/internal/models"
	"storefront-service/internal/services"
)

type CheckoutHandler struct {
	checkout *services.CheckoutService
	carts    *services.CartService
}

func NewCheckoutHandler(checkout *services.CheckoutService, carts *services.CartService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, carts: carts}
}

// Checkout handles POST /checkout. Items may come in the payload (guest
// checkout) or, when omitted, from the customer's server-side cart.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	fromServerCart := false
	if len(req.Items) == 0 {
		customerID := middleware.GetCustomerID(c)
		if customerID == "" {
			respondError(c, http.StatusBadRequest, "EMPTY_CART", "No items to check out")
			return
		}
		_, items, err := h.carts.GetCart(tenantID, customerID)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "CART_FAILED", err.Error())
			return
		}
		if len(items) == 0 {
			respondError(c, http.StatusBadRequest, "EMPTY_CART", "No items to check out")
			return
		}
		req.Items = items
		fromServerCart = true
	}

	resp, err := h.checkout.Checkout(tenantID, &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "CHECKOUT_FAILED", err.Error())
		return
	}

	// A fresh cart is created on the next read once this one is converted.
	if fromServerCart {
		_ = h.carts.MarkConverted(tenantID, middleware.GetCustomerID(c))
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: resp})
}

// Preview handles POST /checkout/preview — grouped view of the submitted
// items without creating orders.
func (h *CheckoutHandler) Preview(c *gin.Context) {
	var req struct {
		Items []models.CartItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    h.checkout.GroupCart(req.Items),
	})
}
