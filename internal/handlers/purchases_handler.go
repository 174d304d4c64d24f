package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/middleware"
	"storefront-service/internal/models"
	"storefront-service/internal/repository"
)

type PurchasesHandler struct {
	purchases *repository.PurchasesRepository
}

func NewPurchasesHandler(purchases *repository.PurchasesRepository) *PurchasesHandler {
	return &PurchasesHandler{purchases: purchases}
}

// CreatePurchase handles POST /purchases
func (h *PurchasesHandler) CreatePurchase(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	var req models.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	purchase := &models.Purchase{
		StoreID:       req.StoreID,
		Status:        models.PurchaseStatusPending,
		SupplierName:  req.SupplierName,
		SupplierPhone: req.SupplierPhone,
		Currency:      "USD",
		Notes:         req.Notes,
	}
	if req.Currency != nil && *req.Currency != "" {
		purchase.Currency = *req.Currency
	}
	if req.PurchasedAt != nil {
		purchase.PurchasedAt = *req.PurchasedAt
	}

	total := 0.0
	for _, item := range req.Items {
		lineTotal := item.UnitCost * float64(item.Quantity)
		purchase.Items = append(purchase.Items, models.PurchaseItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitCost:    item.UnitCost,
			TotalCost:   lineTotal,
		})
		total += lineTotal
	}
	purchase.Total = total

	if err := h.purchases.CreatePurchase(tenantID, purchase); err != nil {
		respondError(c, http.StatusInternalServerError, "CREATE_FAILED", err.Error())
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: purchase})
}

// GetPurchase handles GET /purchases/:id
func (h *PurchasesHandler) GetPurchase(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	purchaseID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	purchase, err := h.purchases.GetPurchaseByID(tenantID, purchaseID)
	if err != nil {
		respondRepoError(c, err, "Purchase not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: purchase})
}

// ListPurchases handles GET /purchases
func (h *PurchasesHandler) ListPurchases(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	page, limit := parsePagination(c)

	req := &models.SearchPurchasesRequest{
		StoreID: optionalUUIDQuery(c, "storeId"),
		Search:  optionalQuery(c, "search"),
		Page:    page,
		Limit:   limit,
	}
	for _, s := range c.QueryArray("status") {
		req.Status = append(req.Status, models.PurchaseStatus(s))
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

	purchases, total, aggregates, err := h.purchases.GetPurchases(tenantID, req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "LIST_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusOK, models.PurchaseListResponse{
		Success:    true,
		Data:       purchases,
		Aggregates: aggregates,
		Pagination: buildPagination(page, limit, total),
	})
}

// UpdatePurchase handles PATCH /purchases/:id
func (h *PurchasesHandler) UpdatePurchase(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	purchaseID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.SupplierName != nil {
		updates["supplier_name"] = *req.SupplierName
	}
	if req.SupplierPhone != nil {
		updates["supplier_phone"] = *req.SupplierPhone
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) == 0 {
		respondError(c, http.StatusBadRequest, "EMPTY_UPDATE", "No fields to update")
		return
	}

	if err := h.purchases.UpdatePurchase(tenantID, purchaseID, updates); err != nil {
		respondRepoError(c, err, "Purchase not found")
		return
	}

	purchase, err := h.purchases.GetPurchaseByID(tenantID, purchaseID)
	if err != nil {
		respondRepoError(c, err, "Purchase not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: purchase})
}

// DeletePurchase handles DELETE /purchases/:id
func (h *PurchasesHandler) DeletePurchase(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	purchaseID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.purchases.DeletePurchase(tenantID, purchaseID); err != nil {
		respondRepoError(c, err, "Purchase not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
