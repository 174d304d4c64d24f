package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront-service/internal/models"
)

type SalesRepository struct {
	db *gorm.DB
}

func NewSalesRepository(db *gorm.DB) *SalesRepository {
	return &SalesRepository{db: db}
}

// CreateSale persists a sale. When receivable is non-nil (credit sales) both
// records are written in one transaction.
func (r *SalesRepository) CreateSale(tenantID string, sale *models.Sale, receivable *models.Receivable) error {
	sale.TenantID = tenantID
	sale.CreatedAt = time.Now()
	sale.UpdatedAt = time.Now()

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sale).Error; err != nil {
			return err
		}
		if receivable != nil {
			receivable.TenantID = tenantID
			receivable.SaleID = &sale.ID
			receivable.CreatedAt = time.Now()
			receivable.UpdatedAt = time.Now()
			if err := tx.Create(receivable).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetSaleByID retrieves a sale with its items
func (r *SalesRepository) GetSaleByID(tenantID string, saleID uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, saleID).
		Preload("Items").
		First(&sale).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// GetSales lists sales with filters, pagination, and sum aggregates
func (r *SalesRepository) GetSales(tenantID string, req *models.SearchSalesRequest) ([]models.Sale, int64, *models.SalesAggregates, error) {
	var sales []models.Sale
	var total int64

	query := r.db.Model(&models.Sale{}).Where("tenant_id = ?", tenantID)
	query = r.applySaleFilters(query, req)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, nil, err
	}

	// Aggregates over the full filtered set, not just the current page.
	var aggregates models.SalesAggregates
	aggQuery := r.db.Model(&models.Sale{}).Where("tenant_id = ?", tenantID)
	aggQuery = r.applySaleFilters(aggQuery, req)
	if err := aggQuery.Select("COALESCE(SUM(total), 0) as total_amount, COUNT(*) as sale_count").
		Scan(&aggregates).Error; err != nil {
		return nil, 0, nil, err
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).
		Preload("Items").
		Find(&sales).Error; err != nil {
		return nil, 0, nil, err
	}

	return sales, total, &aggregates, nil
}

// VoidSale marks a sale as voided
func (r *SalesRepository) VoidSale(tenantID string, saleID uuid.UUID) error {
	result := r.db.Model(&models.Sale{}).
		Where("tenant_id = ? AND id = ? AND status = ?", tenantID, saleID, models.SaleStatusCompleted).
		Updates(map[string]interface{}{
			"status":     models.SaleStatusVoided,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *SalesRepository) applySaleFilters(query *gorm.DB, req *models.SearchSalesRequest) *gorm.DB {
	if req.StoreID != nil {
		query = query.Where("store_id = ?", *req.StoreID)
	}
	if len(req.Payment) > 0 {
		query = query.Where("payment_method IN ?", req.Payment)
	}
	if req.Search != nil && *req.Search != "" {
		like := "%" + strings.TrimSpace(*req.Search) + "%"
		query = query.Where("sale_number ILIKE ? OR customer_name ILIKE ?", like, like)
	}
	if req.DateFrom != nil {
		query = query.Where("created_at >= ?", *req.DateFrom)
	}
	if req.DateTo != nil {
		query = query.Where("created_at <= ?", *req.DateTo)
	}
	return query
}
