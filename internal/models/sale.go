package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentMethod represents how a point-of-sale sale was paid
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
	PaymentMethodMobile   PaymentMethod = "MOBILE"
	// PaymentMethodCredit defers payment; creating a credit sale also
	// creates a receivable for the outstanding amount.
	PaymentMethodCredit PaymentMethod = "CREDIT"
)

// SaleStatus represents the status of a sale
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusVoided    SaleStatus = "VOIDED"
)

// Sale represents a point-of-sale transaction recorded by a store user
type Sale struct {
	ID         uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID   string        `json:"tenantId" gorm:"type:varchar(255);not null;index:idx_sales_tenant_id;index:idx_sales_tenant_store"`
	StoreID    uuid.UUID     `json:"storeId" gorm:"type:uuid;not null;index:idx_sales_tenant_store"`
	SaleNumber string        `json:"saleNumber" gorm:"uniqueIndex;not null"`
	Status     SaleStatus    `json:"status" gorm:"type:varchar(20);not null;default:'COMPLETED'"`
	Payment    PaymentMethod `json:"paymentMethod" gorm:"column:payment_method;type:varchar(20);not null"`

	CustomerName  *string `json:"customerName,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`

	Items    []SaleItem `json:"items,omitempty" gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	Total    float64    `json:"total" gorm:"not null"`
	Currency string     `json:"currency" gorm:"type:varchar(3);not null;default:'USD'"`
	Notes    *string    `json:"notes,omitempty"`

	SoldByID *uuid.UUID `json:"soldById,omitempty" gorm:"type:uuid"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// SaleItem is one line of a sale
type SaleItem struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SaleID      uuid.UUID  `json:"saleId" gorm:"type:uuid;not null;index"`
	ProductID   *uuid.UUID `json:"productId,omitempty" gorm:"type:uuid"`
	ProductName string     `json:"productName" gorm:"not null"`
	Quantity    int        `json:"quantity" gorm:"not null"`
	UnitPrice   float64    `json:"unitPrice" gorm:"not null"`
	TotalPrice  float64    `json:"totalPrice" gorm:"not null"`

	CreatedAt time.Time `json:"createdAt"`
}

func (Sale) TableName() string     { return "sales" }
func (SaleItem) TableName() string { return "sale_items" }

// BeforeCreate assigns a sale number when none was set
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.SaleNumber == "" {
		s.SaleNumber = fmt.Sprintf("SAL-%d", time.Now().UnixNano()/int64(time.Millisecond))
	}
	return nil
}

// CreateSaleRequest represents a request to record a sale
type CreateSaleRequest struct {
	StoreID       uuid.UUID               `json:"storeId" binding:"required"`
	Payment       PaymentMethod           `json:"paymentMethod" binding:"required"`
	CustomerName  *string                 `json:"customerName,omitempty"`
	CustomerPhone *string                 `json:"customerPhone,omitempty"`
	Items         []CreateSaleItemRequest `json:"items" binding:"required,min=1"`
	Currency      *string                 `json:"currency,omitempty"`
	Notes         *string                 `json:"notes,omitempty"`
	// DueDate is required when paymentMethod is CREDIT; it seeds the
	// receivable created alongside the sale.
	DueDate *time.Time `json:"dueDate,omitempty"`
}

// CreateSaleItemRequest is one line of a sale creation payload
type CreateSaleItemRequest struct {
	ProductID   *uuid.UUID `json:"productId,omitempty"`
	ProductName string     `json:"productName" binding:"required"`
	Quantity    int        `json:"quantity" binding:"required,min=1"`
	UnitPrice   float64    `json:"unitPrice" binding:"required"`
}

// SearchSalesRequest represents a sale list query
type SearchSalesRequest struct {
	StoreID  *uuid.UUID      `json:"storeId,omitempty"`
	Payment  []PaymentMethod `json:"paymentMethod,omitempty"`
	Search   *string         `json:"search,omitempty"`
	DateFrom *time.Time      `json:"dateFrom,omitempty"`
	DateTo   *time.Time      `json:"dateTo,omitempty"`
	Page     int             `json:"page"`
	Limit    int             `json:"limit"`
}

// SalesAggregates carries the sum aggregates returned with sale lists
type SalesAggregates struct {
	TotalAmount float64 `json:"totalAmount"`
	SaleCount   int64   `json:"saleCount"`
}

// SaleListResponse is the paginated sale list with aggregates
type SaleListResponse struct {
	Success    bool             `json:"success"`
	Data       []Sale           `json:"data"`
	Aggregates *SalesAggregates `json:"aggregates"`
	Pagination *PaginationInfo  `json:"pagination"`
}
