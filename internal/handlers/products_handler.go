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

type ProductsHandler struct {
	products *repository.ProductsRepository
	service  *services.ProductService
	resolver *services.VariantResolver
}

func NewProductsHandler(products *repository.ProductsRepository, service *services.ProductService, resolver *services.VariantResolver) *ProductsHandler {
	return &ProductsHandler{products: products, service: service, resolver: resolver}
}

// CreateProduct handles POST /products
func (h *ProductsHandler) CreateProduct(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	product, err := h.service.CreateProduct(tenantID, &req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "CREATE_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusCreated, models.ProductResponse{Success: true, Data: product})
}

// GetProduct handles GET /products/:id
func (h *ProductsHandler) GetProduct(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.products.GetProductByID(tenantID, productID)
	if err != nil {
		respondRepoError(c, err, "Product not found")
		return
	}

	c.JSON(http.StatusOK, models.ProductResponse{Success: true, Data: product})
}

// ListProducts handles GET /products
func (h *ProductsHandler) ListProducts(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	page, limit := parsePagination(c)

	req := &models.SearchProductsRequest{
		StoreID:   optionalUUIDQuery(c, "storeId"),
		Query:     optionalQuery(c, "search"),
		SortBy:    optionalQuery(c, "sortBy"),
		SortOrder: optionalQuery(c, "sortOrder"),
		Page:      page,
		Limit:     limit,
	}
	if status := c.QueryArray("status"); len(status) > 0 {
		for _, s := range status {
			req.Status = append(req.Status, models.ProductStatus(s))
		}
	}
	if v := c.Query("visible"); v != "" {
		visible := v == "true"
		req.Visible = &visible
	}
	if v := c.Query("featured"); v != "" {
		featured := v == "true"
		req.Featured = &featured
	}

	products, total, err := h.products.GetProducts(tenantID, req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "LIST_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusOK, models.ProductListResponse{
		Success:    true,
		Data:       products,
		Pagination: buildPagination(page, limit, total),
	})
}

// UpdateProduct handles PATCH /products/:id
func (h *ProductsHandler) UpdateProduct(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.UpdateProductRequest
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
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.CurrencyCode != nil {
		updates["currency_code"] = *req.CurrencyCode
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Visible != nil {
		updates["visible"] = *req.Visible
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}
	if req.Images != nil {
		updates["images"] = models.StringList(req.Images)
	}
	if len(updates) == 0 {
		respondError(c, http.StatusBadRequest, "EMPTY_UPDATE", "No fields to update")
		return
	}
	updates["updated_at"] = time.Now()

	if err := h.products.UpdateProduct(tenantID, productID, updates); err != nil {
		respondRepoError(c, err, "Product not found")
		return
	}

	product, err := h.products.GetProductByID(tenantID, productID)
	if err != nil {
		respondRepoError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, models.ProductResponse{Success: true, Data: product})
}

// DeleteProduct handles DELETE /products/:id
func (h *ProductsHandler) DeleteProduct(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.products.DeleteProduct(tenantID, productID); err != nil {
		respondRepoError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// ResolveVariant handles POST /products/:id/resolve — the storefront calls
// this on every selection change to refresh price, stock, and gallery.
func (h *ProductsHandler) ResolveVariant(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.ResolveVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	resolution, err := h.service.ResolveSelection(tenantID, productID, req.Selection, h.resolver)
	if err != nil {
		respondRepoError(c, err, "Product not found")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: resolution})
}

// CreateAttribute handles POST /products/:id/attributes
func (h *ProductsHandler) CreateAttribute(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.CreateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	attr := &models.ProductAttribute{
		Name:     req.Name,
		Type:     req.Type,
		Required: req.Required,
		Position: req.Position,
	}
	if attr.Type == "" {
		attr.Type = models.AttributeTypeSelect
	}
	for _, v := range req.Variants {
		attr.Variants = append(attr.Variants, models.AttributeVariant{
			Name:     v.Name,
			Value:    v.Value,
			Price:    v.Price,
			Stock:    v.Stock,
			Images:   models.StringList(v.Images),
			Position: v.Position,
		})
	}

	if err := h.products.CreateAttribute(tenantID, productID, attr); err != nil {
		respondRepoError(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: attr})
}

// DeleteAttribute handles DELETE /products/:id/attributes/:attributeId
func (h *ProductsHandler) DeleteAttribute(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	attributeID, ok := parseUUIDParam(c, "attributeId")
	if !ok {
		return
	}

	if err := h.products.DeleteAttribute(tenantID, productID, attributeID); err != nil {
		respondRepoError(c, err, "Attribute not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// CreateVariant handles POST /products/:id/attributes/:attributeId/variants
func (h *ProductsHandler) CreateVariant(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	attributeID, ok := parseUUIDParam(c, "attributeId")
	if !ok {
		return
	}

	var req models.CreateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	variant := &models.AttributeVariant{
		Name:     req.Name,
		Value:    req.Value,
		Price:    req.Price,
		Stock:    req.Stock,
		Images:   models.StringList(req.Images),
		Position: req.Position,
	}

	if err := h.products.CreateVariant(tenantID, productID, attributeID, variant); err != nil {
		respondRepoError(c, err, "Attribute not found")
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: variant})
}

// DeleteVariant handles DELETE /products/:id/variants/:variantId
func (h *ProductsHandler) DeleteVariant(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	variantID, ok := parseUUIDParam(c, "variantId")
	if !ok {
		return
	}

	if err := h.products.DeleteVariant(tenantID, productID, variantID); err != nil {
		respondRepoError(c, err, "Variant not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// CreateCombination handles POST /products/:id/combinations
func (h *ProductsHandler) CreateCombination(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req models.CreateCombinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	combo, err := h.service.AddCombination(tenantID, productID, &req)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_COMBINATION", err.Error())
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: combo})
}

// UpdateCombination handles PATCH /products/:id/combinations/:combinationId
func (h *ProductsHandler) UpdateCombination(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	comboID, ok := parseUUIDParam(c, "combinationId")
	if !ok {
		return
	}

	var req models.CreateCombinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	updates := map[string]interface{}{
		"stock": req.Stock,
	}
	if req.PriceModifier != nil {
		updates["price_modifier"] = *req.PriceModifier
	}
	if req.Images != nil {
		updates["images"] = models.StringList(req.Images)
	}

	if err := h.products.UpdateCombination(tenantID, productID, comboID, updates); err != nil {
		respondRepoError(c, err, "Combination not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// DeleteCombination handles DELETE /products/:id/combinations/:combinationId
func (h *ProductsHandler) DeleteCombination(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	comboID, ok := parseUUIDParam(c, "combinationId")
	if !ok {
		return
	}

	if err := h.products.DeleteCombination(tenantID, productID, comboID); err != nil {
		respondRepoError(c, err, "Combination not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
