package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront-service/internal/models"
)

type PurchasesRepository struct {
	db *gorm.DB
}

func NewPurchasesRepository(db *gorm.DB) *PurchasesRepository {
	return &PurchasesRepository{db: db}
}

// CreatePurchase persists a purchase with its items
func (r *PurchasesRepository) CreatePurchase(tenantID string, purchase *models.Purchase) error {
	purchase.TenantID = tenantID
	purchase.CreatedAt = time.Now()
	purchase.UpdatedAt = time.Now()
	if purchase.PurchasedAt.IsZero() {
		purchase.PurchasedAt = time.Now()
	}
	return r.db.Create(purchase).Error
}

// GetPurchaseByID retrieves a purchase with its items
func (r *PurchasesRepository) GetPurchaseByID(tenantID string, purchaseID uuid.UUID) (*models.Purchase, error) {
	var purchase models.Purchase
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, purchaseID).
		Preload("Items").
		First(&purchase).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// GetPurchases lists purchases with filters, pagination, and aggregates
func (r *PurchasesRepository) GetPurchases(tenantID string, req *models.SearchPurchasesRequest) ([]models.Purchase, int64, *models.PurchasesAggregates, error) {
	var purchases []models.Purchase
	var total int64

	query := r.db.Model(&models.Purchase{}).Where("tenant_id = ?", tenantID)
	query = r.applyPurchaseFilters(query, req)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, nil, err
	}

	var aggregates models.PurchasesAggregates
	aggQuery := r.db.Model(&models.Purchase{}).Where("tenant_id = ?", tenantID)
	aggQuery = r.applyPurchaseFilters(aggQuery, req)
	if err := aggQuery.Select("COALESCE(SUM(total), 0) as total_amount, COUNT(*) as purchase_count").
		Scan(&aggregates).Error; err != nil {
		return nil, 0, nil, err
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("purchased_at DESC").Offset(offset).Limit(req.Limit).
		Preload("Items").
		Find(&purchases).Error; err != nil {
		return nil, 0, nil, err
	}

	return purchases, total, &aggregates, nil
}

// UpdatePurchase updates purchase header fields
func (r *PurchasesRepository) UpdatePurchase(tenantID string, purchaseID uuid.UUID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.Purchase{}).
		Where("tenant_id = ? AND id = ?", tenantID, purchaseID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeletePurchase soft deletes a purchase
func (r *PurchasesRepository) DeletePurchase(tenantID string, purchaseID uuid.UUID) error {
	result := r.db.Where("tenant_id = ? AND id = ?", tenantID, purchaseID).
		Delete(&models.Purchase{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PurchasesRepository) applyPurchaseFilters(query *gorm.DB, req *models.SearchPurchasesRequest) *gorm.DB {
	if req.StoreID != nil {
		query = query.Where("store_id = ?", *req.StoreID)
	}
	if len(req.Status) > 0 {
		query = query.Where("status IN ?", req.Status)
	}
	if req.Search != nil && *req.Search != "" {
		like := "%" + strings.TrimSpace(*req.Search) + "%"
		query = query.Where("supplier_name ILIKE ?", like)
	}
	if req.DateFrom != nil {
		query = query.Where("purchased_at >= ?", *req.DateFrom)
	}
	if req.DateTo != nil {
		query = query.Where("purchased_at <= ?", *req.DateTo)
	}
	return query
}
