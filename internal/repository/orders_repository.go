package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront-service/internal/models"
)

type OrdersRepository struct {
	db *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{db: db}
}

// CreateOrder persists a checkout order
func (r *OrdersRepository) CreateOrder(tenantID string, order *models.Order) error {
	order.TenantID = tenantID
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	return r.db.Create(order).Error
}

// GetOrderByID retrieves an order
func (r *OrdersRepository) GetOrderByID(tenantID string, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.Where("tenant_id = ? AND id = ?", tenantID, orderID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrders lists orders with filters and pagination
func (r *OrdersRepository) GetOrders(tenantID string, req *models.SearchOrdersRequest) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := r.db.Model(&models.Order{}).Where("tenant_id = ?", tenantID)

	if req.StoreID != nil {
		query = query.Where("store_id = ?", *req.StoreID)
	}
	if len(req.Status) > 0 {
		query = query.Where("status IN ?", req.Status)
	}
	if req.Search != nil && *req.Search != "" {
		like := "%" + strings.TrimSpace(*req.Search) + "%"
		query = query.Where("order_number ILIKE ? OR customer_name ILIKE ?", like, like)
	}
	if req.DateFrom != nil {
		query = query.Where("created_at >= ?", *req.DateFrom)
	}
	if req.DateTo != nil {
		query = query.Where("created_at <= ?", *req.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// UpdateOrderStatus moves an order through its lifecycle
func (r *OrdersRepository) UpdateOrderStatus(tenantID string, orderID uuid.UUID, status models.OrderStatus) error {
	result := r.db.Model(&models.Order{}).
		Where("tenant_id = ? AND id = ?", tenantID, orderID).
		Updates(map[string]interface{}{
			"status":     status,
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
