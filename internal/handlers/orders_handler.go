package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/middleware"
	"storefront-service/internal/models"
	"storefront-service/internal/repository"
)

type OrdersHandler struct {
	orders *repository.OrdersRepository
}

func NewOrdersHandler(orders *repository.OrdersRepository) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// ListOrders handles GET /orders
func (h *OrdersHandler) ListOrders(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	page, limit := parsePagination(c)

	req := &models.SearchOrdersRequest{
		StoreID: optionalUUIDQuery(c, "storeId"),
		Search:  optionalQuery(c, "search"),
		Page:    page,
		Limit:   limit,
	}
	for _, s := range c.QueryArray("status") {
		req.Status = append(req.Status, models.OrderStatus(s))
	}
	if v := c.Query("dateFrom"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			req.DateFrom = &t
		}
	}
	if v := c.Query("dateTo"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			req.DateTo = &t
		}
	}

	orders, total, err := h.orders.GetOrders(tenantID, req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       orders,
		"pagination": buildPagination(page, limit, total),
	})
}

// GetOrder handles GET /orders/:id
func (h *OrdersHandler) GetOrder(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orders.GetOrderByID(tenantID, orderID)
	if err != nil {
		respondRepoError(c, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: order})
}

// UpdateStatus handles PATCH /orders/:id/status
func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	switch req.Status {
	case models.OrderStatusPending, models.OrderStatusConfirmed,
		models.OrderStatusCompleted, models.OrderStatusCancelled:
	default:
		respondError(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown order status")
		return
	}

	if err := h.orders.UpdateOrderStatus(tenantID, orderID, req.Status); err != nil {
		respondRepoError(c, err, "Order not found")
		return
	}

	order, err := h.orders.GetOrderByID(tenantID, orderID)
	if err != nil {
		respondRepoError(c, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: order})
}
