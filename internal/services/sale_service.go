package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/events"
	"storefront-service/internal/models"
	"storefront-service/internal/repository"
)

// SaleService records point-of-sale transactions. Credit sales create a
// receivable for the full amount in the same transaction.
type SaleService struct {
	sales           *repository.SalesRepository
	defaultCurrency string
	publisher       *events.Publisher
	logger          *logrus.Entry
}

func NewSaleService(sales *repository.SalesRepository, defaultCurrency string, publisher *events.Publisher, logger *logrus.Logger) *SaleService {
	return &SaleService{
		sales:           sales,
		defaultCurrency: defaultCurrency,
		publisher:       publisher,
		logger:          logger.WithField("component", "sale-service"),
	}
}

// CreateSale builds and persists a sale from the request. Line totals and the
// sale total are computed server-side from quantity and unit price.
func (s *SaleService) CreateSale(tenantID string, userID *string, req *models.CreateSaleRequest) (*models.Sale, error) {
	if req.Payment == models.PaymentMethodCredit {
		if req.DueDate == nil {
			return nil, fmt.Errorf("dueDate is required for credit sales")
		}
		if req.CustomerName == nil || *req.CustomerName == "" {
			return nil, fmt.Errorf("customerName is required for credit sales")
		}
	}

	currency := s.defaultCurrency
	if req.Currency != nil && *req.Currency != "" {
		currency = *req.Currency
	}

	sale := &models.Sale{
		StoreID:       req.StoreID,
		Status:        models.SaleStatusCompleted,
		Payment:       req.Payment,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Currency:      currency,
		Notes:         req.Notes,
	}
	if userID != nil {
		if id, err := uuid.Parse(*userID); err == nil {
			sale.SoldByID = &id
		}
	}

	total := 0.0
	for _, item := range req.Items {
		lineTotal := item.UnitPrice * float64(item.Quantity)
		sale.Items = append(sale.Items, models.SaleItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  lineTotal,
		})
		total += lineTotal
	}
	sale.Total = total

	var receivable *models.Receivable
	if req.Payment == models.PaymentMethodCredit {
		receivable = &models.Receivable{
			StoreID:       req.StoreID,
			Status:        models.ReceivableStatusPending,
			CustomerName:  *req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			Amount:        total,
			Currency:      currency,
			DueDate:       *req.DueDate,
		}
	}

	if err := s.sales.CreateSale(tenantID, sale, receivable); err != nil {
		return nil, fmt.Errorf("failed to create sale: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"tenantId":   tenantID,
		"saleNumber": sale.SaleNumber,
		"payment":    sale.Payment,
		"total":      sale.Total,
	}).Info("Sale recorded")

	if s.publisher != nil {
		s.publisher.PublishSaleCreated(tenantID, sale)
	}

	return sale, nil
}
