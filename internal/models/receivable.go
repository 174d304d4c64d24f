package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReceivableStatus represents the payment state of a receivable
type ReceivableStatus string

const (
	ReceivableStatusPending ReceivableStatus = "PENDING"
	ReceivableStatusPartial ReceivableStatus = "PARTIAL"
	ReceivableStatusPaid    ReceivableStatus = "PAID"
)

// Receivable represents money owed to a store, usually created from a
// credit sale. Reminders are dispatched over WhatsApp by a background worker.
type Receivable struct {
	ID       uuid.UUID        `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID string           `json:"tenantId" gorm:"type:varchar(255);not null;index:idx_receivables_tenant_id;index:idx_receivables_tenant_store"`
	StoreID  uuid.UUID        `json:"storeId" gorm:"type:uuid;not null;index:idx_receivables_tenant_store"`
	SaleID   *uuid.UUID       `json:"saleId,omitempty" gorm:"type:uuid;index"`
	Status   ReceivableStatus `json:"status" gorm:"type:varchar(20);not null;default:'PENDING';index"`

	CustomerName  string  `json:"customerName" gorm:"not null"`
	CustomerPhone *string `json:"customerPhone,omitempty"`

	Amount     float64   `json:"amount" gorm:"not null"`
	AmountPaid float64   `json:"amountPaid" gorm:"not null;default:0"`
	Currency   string    `json:"currency" gorm:"type:varchar(3);not null;default:'USD'"`
	DueDate    time.Time `json:"dueDate" gorm:"not null;index"`
	Notes      *string   `json:"notes,omitempty"`

	// Reminder scheduling state maintained by the reminder worker.
	NextReminderAt   *time.Time `json:"nextReminderAt,omitempty" gorm:"index"`
	LastReminderAt   *time.Time `json:"lastReminderAt,omitempty"`
	ReminderAttempts int        `json:"reminderAttempts" gorm:"not null;default:0"`

	Payments []ReceivablePayment `json:"payments,omitempty" gorm:"foreignKey:ReceivableID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// ReceivablePayment records a (possibly partial) payment against a receivable
type ReceivablePayment struct {
	ID           uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ReceivableID uuid.UUID     `json:"receivableId" gorm:"type:uuid;not null;index"`
	Amount       float64       `json:"amount" gorm:"not null"`
	Method       PaymentMethod `json:"method" gorm:"type:varchar(20);not null"`
	Notes        *string       `json:"notes,omitempty"`
	PaidAt       time.Time     `json:"paidAt" gorm:"not null"`

	CreatedAt time.Time `json:"createdAt"`
}

func (Receivable) TableName() string        { return "receivables" }
func (ReceivablePayment) TableName() string { return "receivable_payments" }

// Outstanding returns the unpaid balance
func (r *Receivable) Outstanding() float64 {
	return r.Amount - r.AmountPaid
}

// CreateReceivableRequest represents a request to create a receivable directly
type CreateReceivableRequest struct {
	StoreID       uuid.UUID  `json:"storeId" binding:"required"`
	SaleID        *uuid.UUID `json:"saleId,omitempty"`
	CustomerName  string     `json:"customerName" binding:"required"`
	CustomerPhone *string    `json:"customerPhone,omitempty"`
	Amount        float64    `json:"amount" binding:"required,gt=0"`
	Currency      *string    `json:"currency,omitempty"`
	DueDate       time.Time  `json:"dueDate" binding:"required"`
	Notes         *string    `json:"notes,omitempty"`
}

// RecordPaymentRequest registers a payment against a receivable
type RecordPaymentRequest struct {
	Amount float64       `json:"amount" binding:"required,gt=0"`
	Method PaymentMethod `json:"method" binding:"required"`
	Notes  *string       `json:"notes,omitempty"`
	PaidAt *time.Time    `json:"paidAt,omitempty"`
}

// ScheduleReminderRequest schedules the next WhatsApp reminder
type ScheduleReminderRequest struct {
	RemindAt time.Time `json:"remindAt" binding:"required"`
}

// SearchReceivablesRequest represents a receivable list query
type SearchReceivablesRequest struct {
	StoreID  *uuid.UUID         `json:"storeId,omitempty"`
	Status   []ReceivableStatus `json:"status,omitempty"`
	Search   *string            `json:"search,omitempty"`
	DueFrom  *time.Time         `json:"dueFrom,omitempty"`
	DueTo    *time.Time         `json:"dueTo,omitempty"`
	Overdue  *bool              `json:"overdue,omitempty"`
	Page     int                `json:"page"`
	Limit    int                `json:"limit"`
}

// ReceivablesAggregates carries the sum aggregates returned with lists
type ReceivablesAggregates struct {
	TotalAmount      float64 `json:"totalAmount"`
	TotalPaid        float64 `json:"totalPaid"`
	TotalOutstanding float64 `json:"totalOutstanding"`
	Count            int64   `json:"count"`
}

// ReceivableListResponse is the paginated receivable list with aggregates
type ReceivableListResponse struct {
	Success    bool                   `json:"success"`
	Data       []Receivable           `json:"data"`
	Aggregates *ReceivablesAggregates `json:"aggregates"`
	Pagination *PaginationInfo        `json:"pagination"`
}
