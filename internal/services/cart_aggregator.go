package services

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"storefront-service/internal/models"
)

// CartAggregator groups cart items by store and builds the per-store
// WhatsApp checkout handoff (contact resolution + deep link construction).
type CartAggregator struct {
	defaultPhone string
}

func NewCartAggregator(defaultPhone string) *CartAggregator {
	return &CartAggregator{defaultPhone: defaultPhone}
}

// GroupByStore splits cart items into one group per store. Group order
// follows the first occurrence of each store in the item list; totals are
// exact sums of the member item totals.
func (ca *CartAggregator) GroupByStore(items []models.CartItem) []models.StoreGroup {
	groups := make([]models.StoreGroup, 0)
	index := make(map[string]int)

	for _, item := range items {
		key := item.StoreID.String()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.StoreGroup{
				StoreID:   item.StoreID,
				StoreName: item.StoreName,
				StoreLogo: item.StoreLogo,
				Items:     make([]models.CartItem, 0, 1),
				Currency:  item.Currency,
			})
		}
		groups[i].Items = append(groups[i].Items, item)
		groups[i].Total += item.TotalPrice
	}

	return groups
}

// ResolvePhone picks the WhatsApp number for a store: the first contact with
// a non-empty phone wins, then the store-level phone, then the platform
// default.
func (ca *CartAggregator) ResolvePhone(contacts []models.StoreContact, storePhone *string) string {
	for _, c := range contacts {
		if c.PhoneNumber != "" {
			return c.PhoneNumber
		}
	}
	if storePhone != nil && *storePhone != "" {
		return *storePhone
	}
	return ca.defaultPhone
}

// SelectableContacts returns every contact that carries a phone number, so
// the customer can override the resolved default.
func (ca *CartAggregator) SelectableContacts(contacts []models.StoreContact) []models.StoreContact {
	out := make([]models.StoreContact, 0, len(contacts))
	for _, c := range contacts {
		if c.PhoneNumber != "" {
			out = append(out, c)
		}
	}
	return out
}

// BuildWhatsAppLink builds a wa.me deep link with the order summary as the
// URL-encoded text parameter. The phone is reduced to digits per the wa.me
// contract.
func (ca *CartAggregator) BuildWhatsAppLink(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", digitsOnly(phone), url.QueryEscape(message))
}

// BuildOrderMessage renders the human-readable order summary for one store
// group: line items, group total, delivery details, and the order number when
// one was assigned.
func (ca *CartAggregator) BuildOrderMessage(group models.StoreGroup, req *models.CheckoutRequest, orderNumber *string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Hola %s! Nuevo pedido", group.StoreName))
	if orderNumber != nil {
		b.WriteString(fmt.Sprintf(" %s", *orderNumber))
	}
	b.WriteString(fmt.Sprintf(" de %s:\n\n", req.CustomerName))

	for _, item := range group.Items {
		b.WriteString(fmt.Sprintf("- %s", item.ProductName))
		if len(item.VariantLabels) > 0 {
			labels := make([]string, 0, len(item.VariantLabels))
			for _, v := range item.VariantLabels {
				labels = append(labels, v)
			}
			sort.Strings(labels)
			b.WriteString(fmt.Sprintf(" (%s)", strings.Join(labels, ", ")))
		}
		b.WriteString(fmt.Sprintf(" x%d @ %.2f %s = %.2f %s\n",
			item.Quantity, item.UnitPrice, item.Currency, item.TotalPrice, item.Currency))
	}

	b.WriteString(fmt.Sprintf("\nTotal: %.2f %s\n", group.Total, group.Currency))

	switch req.DeliveryMethod {
	case models.DeliveryMethodDelivery:
		b.WriteString("\nEntrega: delivery\n")
		if req.DeliveryAddress != nil && *req.DeliveryAddress != "" {
			b.WriteString(fmt.Sprintf("Direccion: %s\n", *req.DeliveryAddress))
		}
		if req.DeliveryRecipient != nil && *req.DeliveryRecipient != "" {
			b.WriteString(fmt.Sprintf("Recibe: %s\n", *req.DeliveryRecipient))
		}
	default:
		b.WriteString("\nEntrega: retiro en tienda\n")
	}

	if req.ScheduledFor != nil {
		b.WriteString(fmt.Sprintf("Fecha: %s\n", req.ScheduledFor.Format("02/01/2006 15:04")))
	}
	if req.Notes != nil && *req.Notes != "" {
		b.WriteString(fmt.Sprintf("Notas: %s\n", *req.Notes))
	}
	if req.CustomerPhone != nil && *req.CustomerPhone != "" {
		b.WriteString(fmt.Sprintf("Contacto: %s\n", *req.CustomerPhone))
	}

	return b.String()
}

func digitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
