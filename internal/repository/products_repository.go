package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"storefront-service/internal/models"
)

// Cache TTL constants
const (
	ProductCacheTTL     = 5 * time.Minute
	ProductListCacheTTL = 2 * time.Minute
)

type ProductsRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewProductsRepository(db *gorm.DB, redisClient *redis.Client) *ProductsRepository {
	return &ProductsRepository{db: db, redis: redisClient}
}

func (r *ProductsRepository) productCacheKey(tenantID string, productID uuid.UUID) string {
	return fmt.Sprintf("product:%s:%s", tenantID, productID.String())
}

// invalidateProductCaches drops the single-product key and all list keys for
// the tenant.
func (r *ProductsRepository) invalidateProductCaches(ctx context.Context, tenantID string, productID uuid.UUID) {
	if r.redis == nil {
		return
	}
	r.redis.Del(ctx, r.productCacheKey(tenantID, productID))
	r.invalidateProductListCaches(ctx, tenantID)
}

func (r *ProductsRepository) invalidateProductListCaches(ctx context.Context, tenantID string) {
	if r.redis == nil {
		return
	}
	iter := r.redis.Scan(ctx, 0, fmt.Sprintf("products:list:%s:*", tenantID), 100).Iterator()
	for iter.Next(ctx) {
		r.redis.Del(ctx, iter.Val())
	}
}

// CreateProduct creates a product with its nested attributes, variants, and
// combinations in one transaction.
func (r *ProductsRepository) CreateProduct(tenantID string, product *models.Product) error {
	product.TenantID = tenantID
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}

	if product.Slug == nil || *product.Slug == "" {
		baseSlug := generateSlug(product.Name)
		uniqueSlug := fmt.Sprintf("%s-%s", baseSlug, product.ID.String()[:8])
		product.Slug = &uniqueSlug
	}

	err := r.db.Create(product).Error
	if err == nil {
		r.invalidateProductListCaches(context.Background(), tenantID)
	}
	return err
}

// GetProductByID retrieves a product with attributes, variants, and
// combinations, with read-through caching.
func (r *ProductsRepository) GetProductByID(tenantID string, productID uuid.UUID) (*models.Product, error) {
	ctx := context.Background()
	cacheKey := r.productCacheKey(tenantID, productID)

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var product models.Product
			if err := json.Unmarshal([]byte(val), &product); err == nil {
				return &product, nil
			}
		}
	}

	var product models.Product
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, productID).
		Preload("Attributes", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_attributes.position ASC")
		}).
		Preload("Attributes.Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("attribute_variants.position ASC")
		}).
		Preload("Combinations").
		First(&product).Error
	if err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(product); err == nil {
			r.redis.Set(ctx, cacheKey, data, ProductCacheTTL)
		}
	}

	return &product, nil
}

// GetProducts retrieves products with filters and pagination
func (r *ProductsRepository) GetProducts(tenantID string, req *models.SearchProductsRequest) ([]models.Product, int64, error) {
	ctx := context.Background()

	type listResult struct {
		Products []models.Product `json:"products"`
		Total    int64            `json:"total"`
	}

	var cacheKey string
	if r.redis != nil {
		params, _ := json.Marshal(req)
		cacheKey = fmt.Sprintf("products:list:%s:%x", tenantID, params)
		if val, err := r.redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached listResult
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return cached.Products, cached.Total, nil
			}
		}
	}

	var products []models.Product
	var total int64

	query := r.db.Model(&models.Product{}).Where("tenant_id = ?", tenantID)
	query = r.applyProductFilters(query, req)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if req.SortBy != nil && *req.SortBy != "" {
		sortOrder := "DESC"
		if req.SortOrder != nil && strings.ToUpper(*req.SortOrder) == "ASC" {
			sortOrder = "ASC"
		}
		query = query.Order(fmt.Sprintf("%s %s", *req.SortBy, sortOrder))
	} else {
		query = query.Order("created_at DESC")
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Offset(offset).Limit(req.Limit).
		Preload("Attributes.Variants").
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(listResult{Products: products, Total: total}); err == nil {
			r.redis.Set(ctx, cacheKey, data, ProductListCacheTTL)
		}
	}

	return products, total, nil
}

// UpdateProduct updates a product and invalidates its caches
func (r *ProductsRepository) UpdateProduct(tenantID string, productID uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.Product{}).
		Where("tenant_id = ? AND id = ?", tenantID, productID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.invalidateProductCaches(context.Background(), tenantID, productID)
	return nil
}

// DeleteProduct soft deletes a product
func (r *ProductsRepository) DeleteProduct(tenantID string, productID uuid.UUID) error {
	result := r.db.Where("tenant_id = ? AND id = ?", tenantID, productID).
		Delete(&models.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.invalidateProductCaches(context.Background(), tenantID, productID)
	return nil
}

// Attribute operations

// CreateAttribute adds an attribute (with nested variants) to a product
func (r *ProductsRepository) CreateAttribute(tenantID string, productID uuid.UUID, attr *models.ProductAttribute) error {
	if _, err := r.requireProduct(tenantID, productID); err != nil {
		return err
	}
	attr.ProductID = productID
	attr.CreatedAt = time.Now()
	attr.UpdatedAt = time.Now()

	err := r.db.Create(attr).Error
	if err == nil {
		r.invalidateProductCaches(context.Background(), tenantID, productID)
	}
	return err
}

// DeleteAttribute removes an attribute and its variants
func (r *ProductsRepository) DeleteAttribute(tenantID string, productID, attributeID uuid.UUID) error {
	if _, err := r.requireProduct(tenantID, productID); err != nil {
		return err
	}
	result := r.db.Where("id = ? AND product_id = ?", attributeID, productID).
		Delete(&models.ProductAttribute{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.invalidateProductCaches(context.Background(), tenantID, productID)
	return nil
}

// CreateVariant adds a variant to an attribute
func (r *ProductsRepository) CreateVariant(tenantID string, productID, attributeID uuid.UUID, variant *models.AttributeVariant) error {
	var attr models.ProductAttribute
	err := r.db.Joins("JOIN products ON products.id = product_attributes.product_id").
		Where("products.tenant_id = ? AND product_attributes.product_id = ? AND product_attributes.id = ?",
			tenantID, productID, attributeID).
		First(&attr).Error
	if err != nil {
		return err
	}

	variant.AttributeID = attributeID
	variant.CreatedAt = time.Now()
	variant.UpdatedAt = time.Now()

	err = r.db.Create(variant).Error
	if err == nil {
		r.invalidateProductCaches(context.Background(), tenantID, productID)
	}
	return err
}

// DeleteVariant removes a variant from an attribute
func (r *ProductsRepository) DeleteVariant(tenantID string, productID, variantID uuid.UUID) error {
	if _, err := r.requireProduct(tenantID, productID); err != nil {
		return err
	}
	result := r.db.Where("id = ? AND attribute_id IN (SELECT id FROM product_attributes WHERE product_id = ?)",
		variantID, productID).
		Delete(&models.AttributeVariant{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.invalidateProductCaches(context.Background(), tenantID, productID)
	return nil
}

// Combination operations

// CreateCombination adds a variant combination to a product. Selection keys
// must reference the product's own attributes; validation happens in the
// service layer where the loaded product is available.
func (r *ProductsRepository) CreateCombination(tenantID string, productID uuid.UUID, combo *models.VariantCombination) error {
	if _, err := r.requireProduct(tenantID, productID); err != nil {
		return err
	}
	combo.ProductID = productID
	combo.CreatedAt = time.Now()
	combo.UpdatedAt = time.Now()

	err := r.db.Create(combo).Error
	if err == nil {
		r.invalidateProductCaches(context.Background(), tenantID, productID)
	}
	return err
}

// UpdateCombination updates stock/modifier/images of a combination
func (r *ProductsRepository) UpdateCombination(tenantID string, productID, comboID uuid.UUID, updates map[string]interface{}) error {
	if _, err := r.requireProduct(tenantID, productID); err != nil {
		return err
	}
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.VariantCombination{}).
		Where("id = ? AND product_id = ?", comboID, productID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.invalidateProductCaches(context.Background(), tenantID, productID)
	return nil
}

// DeleteCombination removes a combination
func (r *ProductsRepository) DeleteCombination(tenantID string, productID, comboID uuid.UUID) error {
	if _, err := r.requireProduct(tenantID, productID); err != nil {
		return err
	}
	result := r.db.Where("id = ? AND product_id = ?", comboID, productID).
		Delete(&models.VariantCombination{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	r.invalidateProductCaches(context.Background(), tenantID, productID)
	return nil
}

// requireProduct verifies tenant ownership without loading associations
func (r *ProductsRepository) requireProduct(tenantID string, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.Select("id").
		Where("tenant_id = ? AND id = ?", tenantID, productID).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductsRepository) applyProductFilters(query *gorm.DB, req *models.SearchProductsRequest) *gorm.DB {
	if req.StoreID != nil {
		query = query.Where("store_id = ?", *req.StoreID)
	}
	if len(req.Status) > 0 {
		query = query.Where("status IN ?", req.Status)
	}
	if req.Visible != nil {
		query = query.Where("visible = ?", *req.Visible)
	}
	if req.Featured != nil {
		query = query.Where("featured = ?", *req.Featured)
	}
	if req.Query != nil && *req.Query != "" {
		like := "%" + strings.TrimSpace(*req.Query) + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ? OR sku ILIKE ?", like, like, like)
	}
	return query
}

// generateSlug creates a URL-friendly slug from a name
func generateSlug(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	var result strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}
	return result.String()
}
