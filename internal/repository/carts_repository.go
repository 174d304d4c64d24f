package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront-service/internal/models"
)

type CartsRepository struct {
	db *gorm.DB
}

func NewCartsRepository(db *gorm.DB) *CartsRepository {
	return &CartsRepository{db: db}
}

// GetOrCreateCart returns the customer's active cart, creating an empty one
// when none exists.
func (r *CartsRepository) GetOrCreateCart(tenantID, customerID string, ttl time.Duration) (*models.CustomerCart, error) {
	var cart models.CustomerCart
	err := r.db.Where("tenant_id = ? AND customer_id = ? AND status = ?",
		tenantID, customerID, models.CartStatusActive).
		First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	expiresAt := time.Now().Add(ttl)
	cart = models.CustomerCart{
		TenantID:   tenantID,
		CustomerID: customerID,
		Items:      models.JSONB("[]"),
		Status:     models.CartStatusActive,
		ExpiresAt:  &expiresAt,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := r.db.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetCartItems decodes the cart's JSONB item document, preserving insertion
// order.
func (r *CartsRepository) GetCartItems(cart *models.CustomerCart) ([]models.CartItem, error) {
	items := make([]models.CartItem, 0)
	if len(cart.Items) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(cart.Items, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart items: %w", err)
	}
	return items, nil
}

// SaveCartItems writes the item document back and refreshes the derived
// subtotal and count.
func (r *CartsRepository) SaveCartItems(cart *models.CustomerCart, items []models.CartItem, ttl time.Duration) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart items: %w", err)
	}

	itemCount := 0
	subtotal := 0.0
	for _, item := range items {
		itemCount += item.Quantity
		subtotal += item.TotalPrice
	}

	expiresAt := time.Now().Add(ttl)
	return r.db.Model(&models.CustomerCart{}).
		Where("id = ?", cart.ID).
		Updates(map[string]interface{}{
			"items":      models.JSONB(data),
			"item_count": itemCount,
			"subtotal":   subtotal,
			"expires_at": expiresAt,
			"updated_at": time.Now(),
		}).Error
}

// MarkConverted flags a cart after successful checkout
func (r *CartsRepository) MarkConverted(tenantID string, cartID uuid.UUID) error {
	return r.db.Model(&models.CustomerCart{}).
		Where("tenant_id = ? AND id = ?", tenantID, cartID).
		Updates(map[string]interface{}{
			"status":     models.CartStatusConverted,
			"updated_at": time.Now(),
		}).Error
}

// ExpireStaleCarts marks active carts past their expiry; returns the number
// of carts expired. Used by the cart expiration worker.
func (r *CartsRepository) ExpireStaleCarts() (int64, error) {
	result := r.db.Model(&models.CustomerCart{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?",
			models.CartStatusActive, time.Now()).
		Updates(map[string]interface{}{
			"status":     models.CartStatusExpired,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}
