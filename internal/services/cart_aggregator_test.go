package services

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/models"
)

func cartItem(storeID uuid.UUID, storeName, productName string, qty int, unitPrice float64) models.CartItem {
	return models.CartItem{
		ID:          uuid.NewString(),
		ProductID:   uuid.New(),
		ProductName: productName,
		StoreID:     storeID,
		StoreName:   storeName,
		Quantity:    qty,
		UnitPrice:   unitPrice,
		TotalPrice:  unitPrice * float64(qty),
		Currency:    "USD",
	}
}

func TestGroupByStore_PreservesFirstSeenOrder(t *testing.T) {
	agg := NewCartAggregator("584120000000")

	storeA := uuid.New()
	storeB := uuid.New()

	items := []models.CartItem{
		cartItem(storeA, "Alpha", "Coffee", 1, 5.00),
		cartItem(storeB, "Beta", "Tea", 2, 3.00),
		cartItem(storeA, "Alpha", "Sugar", 1, 1.50),
	}

	groups := agg.GroupByStore(items)

	require.Len(t, groups, 2)
	assert.Equal(t, storeA, groups[0].StoreID)
	assert.Equal(t, storeB, groups[1].StoreID)
	assert.Len(t, groups[0].Items, 2)
	assert.Len(t, groups[1].Items, 1)
}

func TestGroupByStore_TotalIsExactSumOfItemTotals(t *testing.T) {
	agg := NewCartAggregator("584120000000")

	store := uuid.New()
	items := []models.CartItem{
		cartItem(store, "Alpha", "A", 3, 0.1),
		cartItem(store, "Alpha", "B", 1, 0.2),
	}

	groups := agg.GroupByStore(items)

	require.Len(t, groups, 1)
	// Exact float64 sum, no rounding during aggregation.
	assert.Equal(t, items[0].TotalPrice+items[1].TotalPrice, groups[0].Total)
}

func TestGroupByStore_EmptyCart(t *testing.T) {
	agg := NewCartAggregator("584120000000")

	groups := agg.GroupByStore(nil)

	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestResolvePhone_FirstContactWithPhoneWins(t *testing.T) {
	agg := NewCartAggregator("584120000000")

	contacts := []models.StoreContact{
		{UserID: uuid.New(), PhoneNumber: ""},
		{UserID: uuid.New(), PhoneNumber: "584141111111", IsCreator: true},
		{UserID: uuid.New(), PhoneNumber: "584142222222"},
	}

	phone := agg.ResolvePhone(contacts, strPtr("584143333333"))
	assert.Equal(t, "584141111111", phone)
}

func TestResolvePhone_FallsBackToStorePhone(t *testing.T) {
	agg := NewCartAggregator("584120000000")

	contacts := []models.StoreContact{
		{UserID: uuid.New(), PhoneNumber: ""},
	}

	phone := agg.ResolvePhone(contacts, strPtr("584143333333"))
	assert.Equal(t, "584143333333", phone)
}

func TestResolvePhone_FallsBackToDefault(t *testing.T) {
	agg := NewCartAggregator("584120000000")

	assert.Equal(t, "584120000000", agg.ResolvePhone(nil, nil))
	assert.Equal(t, "584120000000", agg.ResolvePhone(nil, strPtr("")))
}

func TestSelectableContacts_OnlyPhoneBearing(t *testing.T) {
	agg := NewCartAggregator("584120000000")

	withPhone := models.StoreContact{UserID: uuid.New(), PhoneNumber: "584141111111"}
	contacts := []models.StoreContact{
		{UserID: uuid.New(), PhoneNumber: ""},
		withPhone,
	}

	selectable := agg.SelectableContacts(contacts)

	require.Len(t, selectable, 1)
	assert.Equal(t, withPhone.UserID, selectable[0].UserID)
}

func TestBuildWhatsAppLink_EncodesMessageAndStripsPhone(t *testing.T) {
	agg := NewCartAggregator("584120000000")

	link := agg.BuildWhatsAppLink("+58 414-111-1111", "Hola! Pedido: 2 x Cafe")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/584141111111?text="), link)

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Hola! Pedido: 2 x Cafe", parsed.Query().Get("text"))
}

func TestBuildOrderMessage_IncludesItemsTotalsAndDelivery(t *testing.T) {
	agg := NewCartAggregator("584120000000")

	store := uuid.New()
	groups := agg.GroupByStore([]models.CartItem{
		cartItem(store, "Alpha", "Coffee", 2, 5.00),
	})
	require.Len(t, groups, 1)

	addr := "Av. Principal 123"
	req := &models.CheckoutRequest{
		CustomerName:    "Maria",
		DeliveryMethod:  models.DeliveryMethodDelivery,
		DeliveryAddress: &addr,
	}

	orderNumber := "ORD-1700000000000"
	msg := agg.BuildOrderMessage(groups[0], req, &orderNumber)

	assert.Contains(t, msg, "Alpha")
	assert.Contains(t, msg, "Maria")
	assert.Contains(t, msg, "ORD-1700000000000")
	assert.Contains(t, msg, "Coffee x2 @ 5.00 USD = 10.00 USD")
	assert.Contains(t, msg, "Total: 10.00 USD")
	assert.Contains(t, msg, "Direccion: Av. Principal 123")
}

func TestBuildOrderMessage_OmitsOrderNumberWhenNotPersisted(t *testing.T) {
	agg := NewCartAggregator("584120000000")

	store := uuid.New()
	groups := agg.GroupByStore([]models.CartItem{
		cartItem(store, "Alpha", "Coffee", 1, 5.00),
	})

	req := &models.CheckoutRequest{
		CustomerName:   "Maria",
		DeliveryMethod: models.DeliveryMethodPickup,
	}

	msg := agg.BuildOrderMessage(groups[0], req, nil)

	assert.NotContains(t, msg, "ORD-")
	assert.Contains(t, msg, "retiro en tienda")
}
