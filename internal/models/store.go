package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreUserRole represents the role of a user within a store
type StoreUserRole string

const (
	StoreUserRoleOwner   StoreUserRole = "OWNER"
	StoreUserRoleManager StoreUserRole = "MANAGER"
	StoreUserRoleSeller  StoreUserRole = "SELLER"
	StoreUserRoleViewer  StoreUserRole = "VIEWER"
)

// Store represents a storefront within a tenant
type Store struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID    string    `json:"tenantId" gorm:"type:varchar(255);not null;index:idx_stores_tenant_id"`
	Name        string    `json:"name" gorm:"not null"`
	Slug        *string   `json:"slug,omitempty" gorm:"index"`
	Description *string   `json:"description,omitempty"`
	LogoURL     *string   `json:"logoUrl,omitempty"`
	// PhoneNumber is the store-level WhatsApp contact, used when no store
	// user with a phone number is available.
	PhoneNumber  *string `json:"phoneNumber,omitempty"`
	CurrencyCode string  `json:"currencyCode" gorm:"type:varchar(3);not null;default:'USD'"`
	Active       bool    `json:"active" gorm:"default:true"`

	Users []StoreUser `json:"users,omitempty" gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// StoreUser represents a back-office user attached to a store.
// IsCreator marks the user that registered the store; creators are preferred
// when resolving the WhatsApp contact for checkout.
type StoreUser struct {
	ID           uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID     string        `json:"tenantId" gorm:"type:varchar(255);not null;index:idx_store_users_tenant_id"`
	StoreID      uuid.UUID     `json:"storeId" gorm:"type:uuid;not null;index"`
	Email        string        `json:"email" gorm:"not null;index"`
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	PhoneNumber  *string       `json:"phoneNumber,omitempty"`
	PasswordHash string        `json:"-" gorm:"not null"`
	Role         StoreUserRole `json:"role" gorm:"type:varchar(20);not null;default:'SELLER'"`
	Permissions  StringList    `json:"permissions" gorm:"type:jsonb"`
	IsCreator    bool          `json:"isCreator" gorm:"default:false"`
	Active       bool          `json:"active" gorm:"default:true"`
	LastLoginAt  *time.Time    `json:"lastLoginAt,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Store) TableName() string     { return "stores" }
func (StoreUser) TableName() string { return "store_users" }

// StoreContact is the projection of a store user used during checkout phone
// resolution (cart aggregation only needs these three fields).
type StoreContact struct {
	UserID      uuid.UUID `json:"userId"`
	PhoneNumber string    `json:"phoneNumber"`
	IsCreator   bool      `json:"isCreator"`
}

// CreateStoreRequest represents a request to create a store
type CreateStoreRequest struct {
	Name         string  `json:"name" binding:"required"`
	Slug         *string `json:"slug,omitempty"`
	Description  *string `json:"description,omitempty"`
	LogoURL      *string `json:"logoUrl,omitempty"`
	PhoneNumber  *string `json:"phoneNumber,omitempty"`
	CurrencyCode *string `json:"currencyCode,omitempty"`
}

// UpdateStoreRequest represents a partial store update
type UpdateStoreRequest struct {
	Name         *string `json:"name,omitempty"`
	Slug         *string `json:"slug,omitempty"`
	Description  *string `json:"description,omitempty"`
	LogoURL      *string `json:"logoUrl,omitempty"`
	PhoneNumber  *string `json:"phoneNumber,omitempty"`
	CurrencyCode *string `json:"currencyCode,omitempty"`
	Active       *bool   `json:"active,omitempty"`
}

// CreateStoreUserRequest represents a request to add a user to a store
type CreateStoreUserRequest struct {
	Email       string        `json:"email" binding:"required,email"`
	FirstName   string        `json:"firstName"`
	LastName    string        `json:"lastName"`
	PhoneNumber *string       `json:"phoneNumber,omitempty"`
	Password    string        `json:"password" binding:"required,min=8"`
	Role        StoreUserRole `json:"role,omitempty"`
	Permissions []string      `json:"permissions,omitempty"`
	IsCreator   bool          `json:"isCreator,omitempty"`
}

// UpdateStoreUserRequest represents a partial store user update
type UpdateStoreUserRequest struct {
	FirstName   *string        `json:"firstName,omitempty"`
	LastName    *string        `json:"lastName,omitempty"`
	PhoneNumber *string        `json:"phoneNumber,omitempty"`
	Role        *StoreUserRole `json:"role,omitempty"`
	Permissions []string       `json:"permissions,omitempty"`
	Active      *bool          `json:"active,omitempty"`
}

// LoginRequest represents a back-office login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the authenticated user
type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      *StoreUser `json:"user"`
}
