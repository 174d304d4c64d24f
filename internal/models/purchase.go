package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseStatus represents the status of a supplier purchase
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "PENDING"
	PurchaseStatusReceived  PurchaseStatus = "RECEIVED"
	PurchaseStatusCancelled PurchaseStatus = "CANCELLED"
)

// Purchase represents stock bought from a supplier
type Purchase struct {
	ID       uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID string         `json:"tenantId" gorm:"type:varchar(255);not null;index:idx_purchases_tenant_id;index:idx_purchases_tenant_store"`
	StoreID  uuid.UUID      `json:"storeId" gorm:"type:uuid;not null;index:idx_purchases_tenant_store"`
	Status   PurchaseStatus `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`

	SupplierName  string  `json:"supplierName" gorm:"not null"`
	SupplierPhone *string `json:"supplierPhone,omitempty"`

	Items    []PurchaseItem `json:"items,omitempty" gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
	Total    float64        `json:"total" gorm:"not null"`
	Currency string         `json:"currency" gorm:"type:varchar(3);not null;default:'USD'"`
	Notes    *string        `json:"notes,omitempty"`

	PurchasedAt time.Time `json:"purchasedAt" gorm:"not null"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// PurchaseItem is one line of a purchase
type PurchaseItem struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PurchaseID  uuid.UUID  `json:"purchaseId" gorm:"type:uuid;not null;index"`
	ProductID   *uuid.UUID `json:"productId,omitempty" gorm:"type:uuid"`
	ProductName string     `json:"productName" gorm:"not null"`
	Quantity    int        `json:"quantity" gorm:"not null"`
	UnitCost    float64    `json:"unitCost" gorm:"not null"`
	TotalCost   float64    `json:"totalCost" gorm:"not null"`

	CreatedAt time.Time `json:"createdAt"`
}

func (Purchase) TableName() string     { return "purchases" }
func (PurchaseItem) TableName() string { return "purchase_items" }

// CreatePurchaseRequest represents a request to record a purchase
type CreatePurchaseRequest struct {
	StoreID       uuid.UUID                   `json:"storeId" binding:"required"`
	SupplierName  string                      `json:"supplierName" binding:"required"`
	SupplierPhone *string                     `json:"supplierPhone,omitempty"`
	Items         []CreatePurchaseItemRequest `json:"items" binding:"required,min=1"`
	Currency      *string                     `json:"currency,omitempty"`
	Notes         *string                     `json:"notes,omitempty"`
	PurchasedAt   *time.Time                  `json:"purchasedAt,omitempty"`
}

// CreatePurchaseItemRequest is one line of a purchase creation payload
type CreatePurchaseItemRequest struct {
	ProductID   *uuid.UUID `json:"productId,omitempty"`
	ProductName string     `json:"productName" binding:"required"`
	Quantity    int        `json:"quantity" binding:"required,min=1"`
	UnitCost    float64    `json:"unitCost" binding:"required"`
}

// UpdatePurchaseRequest represents a partial purchase update
type UpdatePurchaseRequest struct {
	Status        *PurchaseStatus `json:"status,omitempty"`
	SupplierName  *string         `json:"supplierName,omitempty"`
	SupplierPhone *string         `json:"supplierPhone,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
}

// SearchPurchasesRequest represents a purchase list query
type SearchPurchasesRequest struct {
	StoreID  *uuid.UUID       `json:"storeId,omitempty"`
	Status   []PurchaseStatus `json:"status,omitempty"`
	Search   *string          `json:"search,omitempty"`
	DateFrom *time.Time       `json:"dateFrom,omitempty"`
	DateTo   *time.Time       `json:"dateTo,omitempty"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

// PurchasesAggregates carries the sum aggregates returned with purchase lists
type PurchasesAggregates struct {
	TotalAmount   float64 `json:"totalAmount"`
	PurchaseCount int64   `json:"purchaseCount"`
}

// PurchaseListResponse is the paginated purchase list with aggregates
type PurchaseListResponse struct {
	Success    bool                 `json:"success"`
	Data       []Purchase           `json:"data"`
	Aggregates *PurchasesAggregates `json:"aggregates"`
	Pagination *PaginationInfo      `json:"pagination"`
}
