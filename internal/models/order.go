package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus represents the status of a checkout order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// DeliveryMethod represents how the customer wants to receive the order
type DeliveryMethod string

const (
	DeliveryMethodPickup   DeliveryMethod = "PICKUP"
	DeliveryMethodDelivery DeliveryMethod = "DELIVERY"
)

// Order represents a checkout request handed off to a store over WhatsApp.
// One order is created per store group; the WhatsApp message is derived from
// the persisted record, but checkout still completes if persistence fails.
type Order struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID    string      `json:"tenantId" gorm:"type:varchar(255);not null;index:idx_orders_tenant_id;index:idx_orders_tenant_store"`
	StoreID     uuid.UUID   `json:"storeId" gorm:"type:uuid;not null;index:idx_orders_tenant_store"`
	OrderNumber string      `json:"orderNumber" gorm:"uniqueIndex;not null"`
	Status      OrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`

	CustomerID    *string `json:"customerId,omitempty" gorm:"index"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone *string `json:"customerPhone,omitempty"`

	DeliveryMethod    DeliveryMethod `json:"deliveryMethod" gorm:"type:varchar(20);not null;default:'PICKUP'"`
	DeliveryAddress   *string        `json:"deliveryAddress,omitempty"`
	DeliveryRecipient *string        `json:"deliveryRecipient,omitempty"`
	ScheduledFor      *time.Time     `json:"scheduledFor,omitempty"`
	Notes             *string        `json:"notes,omitempty"`

	Items    JSONB   `json:"items" gorm:"type:jsonb;not null"`
	Total    float64 `json:"total" gorm:"not null"`
	Currency string  `json:"currency" gorm:"type:varchar(3);not null;default:'USD'"`

	// ContactPhone is the resolved store-side WhatsApp number the deep link
	// was built against.
	ContactPhone string `json:"contactPhone"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Order) TableName() string { return "orders" }

// BeforeCreate assigns an order number when none was set
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.OrderNumber == "" {
		o.OrderNumber = fmt.Sprintf("ORD-%d", time.Now().UnixNano()/int64(time.Millisecond))
	}
	return nil
}

// CheckoutRequest is the multi-step checkout payload collected by the
// storefront: customer identity, delivery preference, optional explicit
// per-store contact overrides.
type CheckoutRequest struct {
	CustomerID    *string `json:"customerId,omitempty"`
	CustomerName  string  `json:"customerName" binding:"required"`
	CustomerPhone *string `json:"customerPhone,omitempty"`

	DeliveryMethod    DeliveryMethod `json:"deliveryMethod" binding:"required"`
	DeliveryAddress   *string        `json:"deliveryAddress,omitempty"`
	DeliveryRecipient *string        `json:"deliveryRecipient,omitempty"`
	ScheduledFor      *time.Time     `json:"scheduledFor,omitempty"`
	Notes             *string        `json:"notes,omitempty"`

	Items []CartItem `json:"items" binding:"required"`

	// ContactOverrides maps storeID -> explicitly selected contact phone.
	ContactOverrides map[string]string `json:"contactOverrides,omitempty"`
}

// StoreCheckoutResult is the per-store outcome of a checkout: the WhatsApp
// deep link plus the order number when the order record was persisted.
type StoreCheckoutResult struct {
	StoreID      uuid.UUID  `json:"storeId"`
	StoreName    string     `json:"storeName"`
	OrderID      *uuid.UUID `json:"orderId,omitempty"`
	OrderNumber  *string    `json:"orderNumber,omitempty"`
	ContactPhone string     `json:"contactPhone"`
	WhatsAppLink string     `json:"whatsappLink"`
	Total        float64    `json:"total"`
	Currency     string     `json:"currency"`
}

// CheckoutResponse aggregates per-store results for a checkout submission
type CheckoutResponse struct {
	Results []StoreCheckoutResult `json:"results"`
}

// UpdateOrderStatusRequest moves an order through its lifecycle
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}

// SearchOrdersRequest represents an order list query
type SearchOrdersRequest struct {
	StoreID  *uuid.UUID   `json:"storeId,omitempty"`
	Status   []OrderStatus `json:"status,omitempty"`
	Search   *string      `json:"search,omitempty"`
	DateFrom *time.Time   `json:"dateFrom,omitempty"`
	DateTo   *time.Time   `json:"dateTo,omitempty"`
	Page     int          `json:"page"`
	Limit    int          `json:"limit"`
}
