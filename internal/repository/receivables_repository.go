package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront-service/internal/models"
)

type ReceivablesRepository struct {
	db *gorm.DB
}

func NewReceivablesRepository(db *gorm.DB) *ReceivablesRepository {
	return &ReceivablesRepository{db: db}
}

// CreateReceivable persists a receivable
func (r *ReceivablesRepository) CreateReceivable(tenantID string, receivable *models.Receivable) error {
	receivable.TenantID = tenantID
	receivable.CreatedAt = time.Now()
	receivable.UpdatedAt = time.Now()
	return r.db.Create(receivable).Error
}

// GetReceivableByID retrieves a receivable with its payments
func (r *ReceivablesRepository) GetReceivableByID(tenantID string, receivableID uuid.UUID) (*models.Receivable, error) {
	var receivable models.Receivable
	err := r.db.Where("tenant_id = ? AND id = ?", tenantID, receivableID).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("receivable_payments.paid_at ASC")
		}).
		First(&receivable).Error
	if err != nil {
		return nil, err
	}
	return &receivable, nil
}

// GetReceivables lists receivables with filters, pagination, and aggregates
func (r *ReceivablesRepository) GetReceivables(tenantID string, req *models.SearchReceivablesRequest) ([]models.Receivable, int64, *models.ReceivablesAggregates, error) {
	var receivables []models.Receivable
	var total int64

	query := r.db.Model(&models.Receivable{}).Where("tenant_id = ?", tenantID)
	query = r.applyReceivableFilters(query, req)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, nil, err
	}

	var aggregates models.ReceivablesAggregates
	aggQuery := r.db.Model(&models.Receivable{}).Where("tenant_id = ?", tenantID)
	aggQuery = r.applyReceivableFilters(aggQuery, req)
	if err := aggQuery.Select(`
		COALESCE(SUM(amount), 0) as total_amount,
		COALESCE(SUM(amount_paid), 0) as total_paid,
		COALESCE(SUM(amount - amount_paid), 0) as total_outstanding,
		COUNT(*) as count
	`).Scan(&aggregates).Error; err != nil {
		return nil, 0, nil, err
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("due_date ASC").Offset(offset).Limit(req.Limit).
		Preload("Payments").
		Find(&receivables).Error; err != nil {
		return nil, 0, nil, err
	}

	return receivables, total, &aggregates, nil
}

// RecordPayment registers a payment and advances the receivable status.
// Overpayment is rejected at the service layer; the status transition here
// derives purely from the new paid amount.
func (r *ReceivablesRepository) RecordPayment(tenantID string, receivableID uuid.UUID, payment *models.ReceivablePayment) (*models.Receivable, error) {
	var receivable models.Receivable

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND id = ?", tenantID, receivableID).
			First(&receivable).Error; err != nil {
			return err
		}

		payment.ReceivableID = receivable.ID
		payment.CreatedAt = time.Now()
		if payment.PaidAt.IsZero() {
			payment.PaidAt = time.Now()
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		newPaid := receivable.AmountPaid + payment.Amount
		status := models.ReceivableStatusPartial
		if newPaid >= receivable.Amount {
			status = models.ReceivableStatusPaid
		}

		updates := map[string]interface{}{
			"amount_paid": newPaid,
			"status":      status,
			"updated_at":  time.Now(),
		}
		if status == models.ReceivableStatusPaid {
			updates["next_reminder_at"] = nil
		}
		if err := tx.Model(&models.Receivable{}).
			Where("id = ?", receivable.ID).
			Updates(updates).Error; err != nil {
			return err
		}

		receivable.AmountPaid = newPaid
		receivable.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &receivable, nil
}

// ScheduleReminder sets the next reminder time
func (r *ReceivablesRepository) ScheduleReminder(tenantID string, receivableID uuid.UUID, remindAt time.Time) error {
	result := r.db.Model(&models.Receivable{}).
		Where("tenant_id = ? AND id = ? AND status != ?", tenantID, receivableID, models.ReceivableStatusPaid).
		Updates(map[string]interface{}{
			"next_reminder_at": remindAt,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetDueReminders returns unpaid receivables whose reminder time has passed.
// Used by the reminder worker.
func (r *ReceivablesRepository) GetDueReminders(limit int) ([]models.Receivable, error) {
	var receivables []models.Receivable
	err := r.db.Where("status != ? AND next_reminder_at IS NOT NULL AND next_reminder_at <= ?",
		models.ReceivableStatusPaid, time.Now()).
		Order("next_reminder_at ASC").
		Limit(limit).
		Find(&receivables).Error
	return receivables, err
}

// MarkReminderSent clears the schedule and records the dispatch attempt
func (r *ReceivablesRepository) MarkReminderSent(receivableID uuid.UUID) error {
	now := time.Now()
	return r.db.Model(&models.Receivable{}).
		Where("id = ?", receivableID).
		Updates(map[string]interface{}{
			"next_reminder_at":  nil,
			"last_reminder_at":  now,
			"reminder_attempts": gorm.Expr("reminder_attempts + 1"),
			"updated_at":        now,
		}).Error
}

// DeleteReceivable soft deletes a receivable
func (r *ReceivablesRepository) DeleteReceivable(tenantID string, receivableID uuid.UUID) error {
	result := r.db.Where("tenant_id = ? AND id = ?", tenantID, receivableID).
		Delete(&models.Receivable{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ReceivablesRepository) applyReceivableFilters(query *gorm.DB, req *models.SearchReceivablesRequest) *gorm.DB {
	if req.StoreID != nil {
		query = query.Where("store_id = ?", *req.StoreID)
	}
	if len(req.Status) > 0 {
		query = query.Where("status IN ?", req.Status)
	}
	if req.Search != nil && *req.Search != "" {
		like := "%" + strings.TrimSpace(*req.Search) + "%"
		query = query.Where("customer_name ILIKE ? OR customer_phone ILIKE ?", like, like)
	}
	if req.DueFrom != nil {
		query = query.Where("due_date >= ?", *req.DueFrom)
	}
	if req.DueTo != nil {
		query = query.Where("due_date <= ?", *req.DueTo)
	}
	if req.Overdue != nil && *req.Overdue {
		query = query.Where("due_date < ? AND status != ?", time.Now(), models.ReceivableStatusPaid)
	}
	return query
}
