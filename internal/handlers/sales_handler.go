package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/middleware"
	"storefront-service/internal/models"
	"storefront-service/internal/repository"
	"storefront-service/internal/services"
)

type SalesHandler struct {
	sales   *repository.SalesRepository
	service *services.SaleService
}

func NewSalesHandler(sales *repository.SalesRepository, service *services.SaleService) *SalesHandler {
	return &SalesHandler{sales: sales, service: service}
}

// CreateSale handles POST /sales
func (h *SalesHandler) CreateSale(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	userID := middleware.GetUserID(c)

	var req models.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	var userPtr *string
	if userID != "" {
		userPtr = &userID
	}

	sale, err := h.service.CreateSale(tenantID, userPtr, &req)
	if err != nil {
		respondError(c, http.StatusUnprocessableEntity, "CREATE_FAILED", err.Error())
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: sale})
}

// GetSale handles GET /sales/:id
func (h *SalesHandler) GetSale(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	saleID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	sale, err := h.sales.GetSaleByID(tenantID, saleID)
	if err != nil {
		respondRepoError(c, err, "Sale not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: sale})
}

// ListSales handles GET /sales
func (h *SalesHandler) ListSales(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	page, limit := parsePagination(c)

	req := &models.SearchSalesRequest{
		StoreID: optionalUUIDQuery(c, "storeId"),
		Search:  optionalQuery(c, "search"),
		Page:    page,
		Limit:   limit,
	}
	for _, p := range c.QueryArray("paymentMethod") {
		req.Payment = append(req.Payment, models.PaymentMethod(p))
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

	sales, total, aggregates, err := h.sales.GetSales(tenantID, req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "LIST_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusOK, models.SaleListResponse{
		Success:    true,
		Data:       sales,
		Aggregates: aggregates,
		Pagination: buildPagination(page, limit, total),
	})
}

// VoidSale handles POST /sales/:id/void
func (h *SalesHandler) VoidSale(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	saleID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.sales.VoidSale(tenantID, saleID); err != nil {
		respondRepoError(c, err, "Sale not found or already voided")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
