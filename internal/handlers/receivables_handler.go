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

type ReceivablesHandler struct {
	receivables *repository.ReceivablesRepository
	reminders   *services.ReminderService
}

func NewReceivablesHandler(receivables *repository.ReceivablesRepository, reminders *services.ReminderService) *ReceivablesHandler {
	return &ReceivablesHandler{receivables: receivables, reminders: reminders}
}

// CreateReceivable handles POST /receivables
func (h *ReceivablesHandler) CreateReceivable(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	var req models.CreateReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	receivable := &models.Receivable{
		StoreID:       req.StoreID,
		SaleID:        req.SaleID,
		Status:        models.ReceivableStatusPending,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Amount:        req.Amount,
		Currency:      "USD",
		DueDate:       req.DueDate,
		Notes:         req.Notes,
	}
	if req.Currency != nil && *req.Currency != "" {
		receivable.Currency = *req.Currency
	}

	if err := h.receivables.CreateReceivable(tenantID, receivable); err != nil {
		respondError(c, http.StatusInternalServerError, "CREATE_FAILED", err.Error())
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: receivable})
}

// GetReceivable handles GET /receivables/:id
func (h *ReceivablesHandler) GetReceivable(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	receivableID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	receivable, err := h.receivables.GetReceivableByID(tenantID, receivableID)
	if err != nil {
		respondRepoError(c, err, "Receivable not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: receivable})
}

// ListReceivables handles GET /receivables
func (h *ReceivablesHandler) ListReceivables(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	page, limit := parsePagination(c)

	req := &models.SearchReceivablesRequest{
		StoreID: optionalUUIDQuery(c, "storeId"),
		Search:  optionalQuery(c, "search"),
		Page:    page,
		Limit:   limit,
	}
	for _, s := range c.QueryArray("status") {
		req.Status = append(req.Status, models.ReceivableStatus(s))
	}
	if v := c.Query("overdue"); v != "" {
		overdue := v == "true"
		req.Overdue = &overdue
	}
	if v := c.Query("dueFrom"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			req.DueFrom = &t
		}
	}
	if v := c.Query("dueTo"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			req.DueTo = &t
		}
	}

	receivables, total, aggregates, err := h.receivables.GetReceivables(tenantID, req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "LIST_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusOK, models.ReceivableListResponse{
		Success:    true,
		Data:       receivables,
		Aggregates: aggregates,
		Pagination: buildPagination(page, limit, total),
	})
}

// RecordPayment handles POST /receivables/:id/payments
func (h *ReceivablesHandler) RecordPayment(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	receivableID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	current, err := h.receivables.GetReceivableByID(tenantID, receivableID)
	if err != nil {
		respondRepoError(c, err, "Receivable not found")
		return
	}
	if req.Amount > current.Outstanding() {
		respondError(c, http.StatusUnprocessableEntity, "OVERPAYMENT",
			"Payment exceeds the outstanding balance")
		return
	}

	payment := &models.ReceivablePayment{
		Amount: req.Amount,
		Method: req.Method,
		Notes:  req.Notes,
	}
	if req.PaidAt != nil {
		payment.PaidAt = *req.PaidAt
	}

	receivable, err := h.receivables.RecordPayment(tenantID, receivableID, payment)
	if err != nil {
		respondRepoError(c, err, "Receivable not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: receivable})
}

// ScheduleReminder handles POST /receivables/:id/reminders
func (h *ReceivablesHandler) ScheduleReminder(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	receivableID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.ScheduleReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.receivables.ScheduleReminder(tenantID, receivableID, req.RemindAt); err != nil {
		respondRepoError(c, err, "Receivable not found or already paid")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// GetReminderLink handles GET /receivables/:id/reminder-link — builds a
// wa.me link for a manual, click-to-send reminder.
func (h *ReceivablesHandler) GetReminderLink(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	receivableID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	receivable, err := h.receivables.GetReceivableByID(tenantID, receivableID)
	if err != nil {
		respondRepoError(c, err, "Receivable not found")
		return
	}

	link, err := h.reminders.BuildReminderLink(receivable)
	if err != nil {
		respondError(c, http.StatusUnprocessableEntity, "NO_PHONE", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: gin.H{"whatsappLink": link}})
}

// DeleteReceivable handles DELETE /receivables/:id
func (h *ReceivablesHandler) DeleteReceivable(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	receivableID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.receivables.DeleteReceivable(tenantID, receivableID); err != nil {
		respondRepoError(c, err, "Receivable not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
