package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "DRAFT"
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
	ProductStatusArchived ProductStatus = "ARCHIVED"
)

// AttributeType represents the input kind of a product attribute
type AttributeType string

const (
	AttributeTypeColor  AttributeType = "COLOR"
	AttributeTypeSize   AttributeType = "SIZE"
	AttributeTypeText   AttributeType = "TEXT"
	AttributeTypeSelect AttributeType = "SELECT"
)

// Product represents a sellable product owned by a store.
// Price is stored as a decimal string; an absent or unparseable price is
// treated as zero during variant resolution.
type Product struct {
	ID           uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID     string        `json:"tenantId" gorm:"type:varchar(255);not null;index:idx_products_tenant_id;index:idx_products_tenant_store;index:idx_products_tenant_status"`
	StoreID      uuid.UUID     `json:"storeId" gorm:"type:uuid;not null;index:idx_products_tenant_store"`
	Name         string        `json:"name" gorm:"not null"`
	Slug         *string       `json:"slug,omitempty" gorm:"index"`
	Description  *string       `json:"description,omitempty"`
	SKU          *string       `json:"sku,omitempty" gorm:"index"`
	Price        string        `json:"price" gorm:"not null"`
	CurrencyCode string        `json:"currencyCode" gorm:"type:varchar(3);not null;default:'USD'"`
	Stock        int           `json:"stock" gorm:"not null;default:0"`
	Status       ProductStatus `json:"status" gorm:"type:varchar(20);not null;default:'DRAFT';index:idx_products_tenant_status"`
	Visible      bool          `json:"visible" gorm:"default:true"`
	Featured     bool          `json:"featured" gorm:"default:false"`
	Images       StringList    `json:"images" gorm:"type:jsonb"`

	Attributes   []ProductAttribute   `json:"attributes,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Combinations []VariantCombination `json:"combinations,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// ProductAttribute represents a selectable product dimension (Color, Size, ...)
type ProductAttribute struct {
	ID        uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductID uuid.UUID     `json:"productId" gorm:"type:uuid;not null;index"`
	Name      string        `json:"name" gorm:"not null"`
	Type      AttributeType `json:"type" gorm:"type:varchar(20);not null;default:'SELECT'"`
	Required  bool          `json:"required" gorm:"default:false"`
	Position  int           `json:"position" gorm:"not null;default:0"`

	Variants []AttributeVariant `json:"variants,omitempty" gorm:"foreignKey:AttributeID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AttributeVariant represents one concrete option within an attribute.
// Price is an optional delta over the product base price; Stock is an
// optional override of the product base stock.
type AttributeVariant struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AttributeID uuid.UUID  `json:"attributeId" gorm:"type:uuid;not null;index"`
	Name        string     `json:"name" gorm:"not null"`
	Value       string     `json:"value" gorm:"not null"`
	Price       *string    `json:"price,omitempty"`
	Stock       *int       `json:"stock,omitempty"`
	Images      StringList `json:"images" gorm:"type:jsonb"`
	Position    int        `json:"position" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VariantCombination represents a specific cross-product of variant choices
// with its own stock, price modifier, and images. A combination only matches
// when its selection keys cover the full set of attributes that have variants;
// when it matches, it takes precedence over per-variant stock and price.
type VariantCombination struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductID     uuid.UUID  `json:"productId" gorm:"type:uuid;not null;index"`
	Selection     StringMap  `json:"selection" gorm:"type:jsonb;not null"`
	Stock         int        `json:"stock" gorm:"not null;default:0"`
	PriceModifier *string    `json:"priceModifier,omitempty"`
	Images        StringList `json:"images" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Product) TableName() string            { return "products" }
func (ProductAttribute) TableName() string   { return "product_attributes" }
func (AttributeVariant) TableName() string   { return "attribute_variants" }
func (VariantCombination) TableName() string { return "variant_combinations" }

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	StoreID      uuid.UUID                `json:"storeId" binding:"required"`
	Name         string                   `json:"name" binding:"required"`
	Slug         *string                  `json:"slug,omitempty"`
	Description  *string                  `json:"description,omitempty"`
	SKU          *string                  `json:"sku,omitempty"`
	Price        string                   `json:"price" binding:"required"`
	CurrencyCode *string                  `json:"currencyCode,omitempty"`
	Stock        *int                     `json:"stock,omitempty"`
	Visible      *bool                    `json:"visible,omitempty"`
	Featured     *bool                    `json:"featured,omitempty"`
	Images       []string                 `json:"images,omitempty"`
	Attributes   []CreateAttributeRequest `json:"attributes,omitempty"`
}

// CreateAttributeRequest represents an attribute nested in a product write
type CreateAttributeRequest struct {
	Name     string                 `json:"name" binding:"required"`
	Type     AttributeType          `json:"type,omitempty"`
	Required bool                   `json:"required,omitempty"`
	Position int                    `json:"position,omitempty"`
	Variants []CreateVariantRequest `json:"variants,omitempty"`
}

// CreateVariantRequest represents a variant nested in an attribute write
type CreateVariantRequest struct {
	Name     string   `json:"name" binding:"required"`
	Value    string   `json:"value" binding:"required"`
	Price    *string  `json:"price,omitempty"`
	Stock    *int     `json:"stock,omitempty"`
	Images   []string `json:"images,omitempty"`
	Position int      `json:"position,omitempty"`
}

// CreateCombinationRequest represents a request to add a combination
type CreateCombinationRequest struct {
	Selection     map[string]string `json:"selection" binding:"required"`
	Stock         int               `json:"stock" binding:"min=0"`
	PriceModifier *string           `json:"priceModifier,omitempty"`
	Images        []string          `json:"images,omitempty"`
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	Name         *string        `json:"name,omitempty"`
	Slug         *string        `json:"slug,omitempty"`
	Description  *string        `json:"description,omitempty"`
	SKU          *string        `json:"sku,omitempty"`
	Price        *string        `json:"price,omitempty"`
	CurrencyCode *string        `json:"currencyCode,omitempty"`
	Stock        *int           `json:"stock,omitempty"`
	Status       *ProductStatus `json:"status,omitempty"`
	Visible      *bool          `json:"visible,omitempty"`
	Featured     *bool          `json:"featured,omitempty"`
	Images       []string       `json:"images,omitempty"`
}

// SearchProductsRequest represents a product list/search query
type SearchProductsRequest struct {
	StoreID   *uuid.UUID      `json:"storeId,omitempty"`
	Query     *string         `json:"query,omitempty"`
	Status    []ProductStatus `json:"status,omitempty"`
	Visible   *bool           `json:"visible,omitempty"`
	Featured  *bool           `json:"featured,omitempty"`
	SortBy    *string         `json:"sortBy,omitempty"`
	SortOrder *string         `json:"sortOrder,omitempty"`
	Page      int             `json:"page"`
	Limit     int             `json:"limit"`
}

// ResolveVariantRequest carries the storefront's current selection state
type ResolveVariantRequest struct {
	Selection map[string]string `json:"selection"`
}

// VariantResolution is the derived view model for a selection
type VariantResolution struct {
	TotalPrice     float64    `json:"totalPrice"`
	AvailableStock int        `json:"availableStock"`
	DisplayImages  []string   `json:"displayImages"`
	CanAddToCart   bool       `json:"canAddToCart"`
	CombinationID  *uuid.UUID `json:"combinationId,omitempty"`
}

type ProductResponse struct {
	Success bool     `json:"success"`
	Data    *Product `json:"data"`
	Message *string  `json:"message,omitempty"`
}

type ProductListResponse struct {
	Success    bool            `json:"success"`
	Data       []Product       `json:"data"`
	Pagination *PaginationInfo `json:"pagination"`
}
