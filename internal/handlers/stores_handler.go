package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/middleware"
	"storefront-service/internal/models"
	"storefront-service/internal/repository"
	"storefront-service/internal/services"
)

type StoresHandler struct {
	stores *repository.StoresRepository
	auth   *services.AuthService
}

func NewStoresHandler(stores *repository.StoresRepository, auth *services.AuthService) *StoresHandler {
	return &StoresHandler{stores: stores, auth: auth}
}

// CreateStore handles POST /stores
func (h *StoresHandler) CreateStore(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	var req models.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	store := &models.Store{
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		LogoURL:      req.LogoURL,
		PhoneNumber:  req.PhoneNumber,
		CurrencyCode: "USD",
		Active:       true,
	}
	if req.CurrencyCode != nil && *req.CurrencyCode != "" {
		store.CurrencyCode = *req.CurrencyCode
	}

	if err := h.stores.CreateStore(tenantID, store); err != nil {
		respondError(c, http.StatusInternalServerError, "CREATE_FAILED", err.Error())
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: store})
}

// GetStore handles GET /stores/:id
func (h *StoresHandler) GetStore(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	storeID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	store, err := h.stores.GetStoreByID(tenantID, storeID)
	if err != nil {
		respondRepoError(c, err, "Store not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: store})
}

// ListStores handles GET /stores
func (h *StoresHandler) ListStores(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	page, limit := parsePagination(c)

	stores, total, err := h.stores.GetStores(tenantID, page, limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "LIST_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       stores,
		"pagination": buildPagination(page, limit, total),
	})
}

// UpdateStore handles PATCH /stores/:id
func (h *StoresHandler) UpdateStore(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	storeID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Slug != nil {
		updates["slug"] = *req.Slug
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.LogoURL != nil {
		updates["logo_url"] = *req.LogoURL
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.CurrencyCode != nil {
		updates["currency_code"] = *req.CurrencyCode
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		respondError(c, http.StatusBadRequest, "EMPTY_UPDATE", "No fields to update")
		return
	}

	if err := h.stores.UpdateStore(tenantID, storeID, updates); err != nil {
		respondRepoError(c, err, "Store not found")
		return
	}

	store, err := h.stores.GetStoreByID(tenantID, storeID)
	if err != nil {
		respondRepoError(c, err, "Store not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: store})
}

// DeleteStore handles DELETE /stores/:id
func (h *StoresHandler) DeleteStore(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	storeID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.stores.DeleteStore(tenantID, storeID); err != nil {
		respondRepoError(c, err, "Store not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// CreateStoreUser handles POST /stores/:id/users
func (h *StoresHandler) CreateStoreUser(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	storeID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.CreateStoreUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if _, err := h.stores.GetStoreByID(tenantID, storeID); err != nil {
		respondRepoError(c, err, "Store not found")
		return
	}

	user, err := h.auth.CreateUser(tenantID, storeID, &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "CREATE_FAILED", err.Error())
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: user})
}

// ListStoreUsers handles GET /stores/:id/users
func (h *StoresHandler) ListStoreUsers(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	storeID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	users, err := h.stores.GetStoreUsers(tenantID, storeID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "LIST_FAILED", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: users})
}

// GetStoreContacts handles GET /stores/:id/contacts — the storefront uses
// this to show the selectable WhatsApp contacts at checkout.
func (h *StoresHandler) GetStoreContacts(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	storeID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	contacts, err := h.stores.GetStoreContacts(tenantID, storeID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "LIST_FAILED", err.Error())
		return
	}

	selectable := make([]models.StoreContact, 0, len(contacts))
	for _, contact := range contacts {
		if contact.PhoneNumber != "" {
			selectable = append(selectable, contact)
		}
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: selectable})
}

// UpdateStoreUser handles PATCH /stores/:id/users/:userId
func (h *StoresHandler) UpdateStoreUser(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	if _, ok := parseUUIDParam(c, "id"); !ok {
		return
	}
	userID, ok := parseUUIDParam(c, "userId")
	if !ok {
		return
	}

	var req models.UpdateStoreUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.Permissions != nil {
		updates["permissions"] = models.StringList(req.Permissions)
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		respondError(c, http.StatusBadRequest, "EMPTY_UPDATE", "No fields to update")
		return
	}

	if err := h.stores.UpdateStoreUser(tenantID, userID, updates); err != nil {
		respondRepoError(c, err, "Store user not found")
		return
	}

	user, err := h.stores.GetStoreUserByID(tenantID, userID)
	if err != nil {
		respondRepoError(c, err, "Store user not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: user})
}

// DeleteStoreUser handles DELETE /stores/:id/users/:userId
func (h *StoresHandler) DeleteStoreUser(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	if _, ok := parseUUIDParam(c, "id"); !ok {
		return
	}
	userID, ok := parseUUIDParam(c, "userId")
	if !ok {
		return
	}

	if err := h.stores.DeleteStoreUser(tenantID, userID); err != nil {
		respondRepoError(c, err, "Store user not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
