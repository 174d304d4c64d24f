package services

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"storefront-service/internal/events"
	"storefront-service/internal/models"
	"storefront-service/internal/repository"
)

// CheckoutService turns a submitted cart into per-store orders and WhatsApp
// handoff links. Order persistence is best-effort: a failed insert is logged
// and the link is still returned, just without an order number.
type CheckoutService struct {
	aggregator *CartAggregator
	orders     *repository.OrdersRepository
	stores     *repository.StoresRepository
	publisher  *events.Publisher
	logger     *logrus.Entry
}

func NewCheckoutService(
	aggregator *CartAggregator,
	orders *repository.OrdersRepository,
	stores *repository.StoresRepository,
	publisher *events.Publisher,
	logger *logrus.Logger,
) *CheckoutService {
	return &CheckoutService{
		aggregator: aggregator,
		orders:     orders,
		stores:     stores,
		publisher:  publisher,
		logger:     logger.WithField("component", "checkout-service"),
	}
}

// Checkout groups the submitted items by store, resolves each store's
// WhatsApp contact, persists one order per group, and builds the deep links.
func (s *CheckoutService) Checkout(tenantID string, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {
	groups := s.aggregator.GroupByStore(req.Items)
	results := make([]models.StoreCheckoutResult, 0, len(groups))

	for _, group := range groups {
		phone := s.resolveGroupPhone(tenantID, group, req.ContactOverrides)

		result := models.StoreCheckoutResult{
			StoreID:      group.StoreID,
			StoreName:    group.StoreName,
			ContactPhone: phone,
			Total:        group.Total,
			Currency:     group.Currency,
		}

		order, err := s.persistOrder(tenantID, group, req, phone)
		if err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"tenantId": tenantID,
				"storeId":  group.StoreID,
			}).Error("Failed to persist order, continuing with WhatsApp handoff")
		} else {
			result.OrderID = &order.ID
			result.OrderNumber = &order.OrderNumber
			if s.publisher != nil {
				s.publisher.PublishOrderCreated(tenantID, order)
			}
		}

		message := s.aggregator.BuildOrderMessage(group, req, result.OrderNumber)
		result.WhatsAppLink = s.aggregator.BuildWhatsAppLink(phone, message)

		results = append(results, result)
	}

	return &models.CheckoutResponse{Results: results}, nil
}

// resolveGroupPhone applies the explicit override when present, otherwise the
// contact chain (store users, store phone, platform default). Contact lookup
// failures degrade to the later links of the chain.
func (s *CheckoutService) resolveGroupPhone(tenantID string, group models.StoreGroup, overrides map[string]string) string {
	if phone, ok := overrides[group.StoreID.String()]; ok && phone != "" {
		return phone
	}

	contacts, err := s.stores.GetStoreContacts(tenantID, group.StoreID)
	if err != nil {
		s.logger.WithError(err).WithField("storeId", group.StoreID).
			Warn("Failed to load store contacts")
		contacts = nil
	}

	var storePhone *string
	if store, err := s.stores.GetStoreByID(tenantID, group.StoreID); err == nil {
		storePhone = store.PhoneNumber
	}

	return s.aggregator.ResolvePhone(contacts, storePhone)
}

func (s *CheckoutService) persistOrder(tenantID string, group models.StoreGroup, req *models.CheckoutRequest, phone string) (*models.Order, error) {
	itemsJSON, err := json.Marshal(group.Items)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		StoreID:           group.StoreID,
		Status:            models.OrderStatusPending,
		CustomerID:        req.CustomerID,
		CustomerName:      req.CustomerName,
		CustomerPhone:     req.CustomerPhone,
		DeliveryMethod:    req.DeliveryMethod,
		DeliveryAddress:   req.DeliveryAddress,
		DeliveryRecipient: req.DeliveryRecipient,
		ScheduledFor:      req.ScheduledFor,
		Notes:             req.Notes,
		Items:             models.JSONB(itemsJSON),
		Total:             group.Total,
		Currency:          group.Currency,
		ContactPhone:      phone,
	}

	if err := s.orders.CreateOrder(tenantID, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GroupCart returns the aggregated cart view without submitting it
func (s *CheckoutService) GroupCart(items []models.CartItem) *models.GroupedCartResponse {
	groups := s.aggregator.GroupByStore(items)

	itemCount := 0
	subtotal := 0.0
	currency := ""
	for _, g := range groups {
		for _, item := range g.Items {
			itemCount += item.Quantity
		}
		subtotal += g.Total
		if currency == "" {
			currency = g.Currency
		}
	}

	return &models.GroupedCartResponse{
		Groups:    groups,
		ItemCount: itemCount,
		Subtotal:  subtotal,
		Currency:  currency,
	}
}

// StoreContacts exposes the selectable contacts for a store so the customer
// can pick a different WhatsApp number before submitting.
func (s *CheckoutService) StoreContacts(tenantID string, group models.StoreGroup) []models.StoreContact {
	contacts, err := s.stores.GetStoreContacts(tenantID, group.StoreID)
	if err != nil {
		return nil
	}
	return s.aggregator.SelectableContacts(contacts)
}
