package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartStatus represents the lifecycle of a customer cart
type CartStatus string

const (
	CartStatusActive    CartStatus = "ACTIVE"
	CartStatusConverted CartStatus = "CONVERTED"
	CartStatusExpired   CartStatus = "EXPIRED"
)

// CartItem represents one line in a customer cart. SelectedVariants captures
// the attributeID -> variantID choices the storefront resolved; TotalPrice is
// the resolved unit price times quantity at add time.
type CartItem struct {
	ID               string            `json:"id"`
	ProductID        uuid.UUID         `json:"productId"`
	ProductName      string            `json:"productName"`
	ProductImage     *string           `json:"productImage,omitempty"`
	StoreID          uuid.UUID         `json:"storeId"`
	StoreName        string            `json:"storeName"`
	StoreLogo        *string           `json:"storeLogo,omitempty"`
	Quantity         int               `json:"quantity"`
	UnitPrice        float64           `json:"unitPrice"`
	TotalPrice       float64           `json:"totalPrice"`
	Currency         string            `json:"currency"`
	SelectedVariants map[string]string `json:"selectedVariants,omitempty"`
	VariantLabels    map[string]string `json:"variantLabels,omitempty"`
	CombinationID    *uuid.UUID        `json:"combinationId,omitempty"`
	AddedAt          time.Time         `json:"addedAt"`
}

// CustomerCart is the server-side cart for a storefront customer. Items are
// stored as a JSONB document and keep insertion order.
type CustomerCart struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID   string     `json:"tenantId" gorm:"type:varchar(255);not null;index:idx_customer_carts_tenant"`
	CustomerID string     `json:"customerId" gorm:"type:varchar(255);not null;index:idx_customer_carts_customer"`
	Items      JSONB      `json:"items" gorm:"type:jsonb"`
	ItemCount  int        `json:"itemCount" gorm:"not null;default:0"`
	Subtotal   float64    `json:"subtotal" gorm:"not null;default:0"`
	Currency   string     `json:"currency" gorm:"type:varchar(3);not null;default:'USD'"`
	Status     CartStatus `json:"status" gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty" gorm:"index"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (CustomerCart) TableName() string { return "customer_carts" }

// AddCartItemRequest adds a product (with resolved selection) to a cart
type AddCartItemRequest struct {
	ProductID        uuid.UUID         `json:"productId" binding:"required"`
	Quantity         int               `json:"quantity" binding:"required,min=1"`
	SelectedVariants map[string]string `json:"selectedVariants,omitempty"`
}

// UpdateCartItemRequest changes the quantity of an existing line; zero
// removes it. Quantity is a pointer so an explicit 0 still satisfies the
// required binding.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

// StoreGroup is a per-store slice of the cart: the unit of WhatsApp checkout.
// Order of groups follows the first occurrence of each store in the cart.
type StoreGroup struct {
	StoreID   uuid.UUID  `json:"storeId"`
	StoreName string     `json:"storeName"`
	StoreLogo *string    `json:"storeLogo,omitempty"`
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	Currency  string     `json:"currency"`
}

// GroupedCartResponse is the aggregated cart view returned to the storefront
type GroupedCartResponse struct {
	Groups    []StoreGroup `json:"groups"`
	ItemCount int          `json:"itemCount"`
	Subtotal  float64      `json:"subtotal"`
	Currency  string       `json:"currency"`
}
