package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
	"storefront-service/internal/repository"
)

// CartService manages server-side customer carts. Prices are resolved at add
// time through the variant resolver, so cart lines carry the price the
// customer saw.
type CartService struct {
	carts    *repository.CartsRepository
	products *repository.ProductsRepository
	stores   *repository.StoresRepository
	resolver *VariantResolver
	cartTTL  time.Duration
	logger   *logrus.Entry
}

func NewCartService(
	carts *repository.CartsRepository,
	products *repository.ProductsRepository,
	stores *repository.StoresRepository,
	resolver *VariantResolver,
	cartTTL time.Duration,
	logger *logrus.Logger,
) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		stores:   stores,
		resolver: resolver,
		cartTTL:  cartTTL,
		logger:   logger.WithField("component", "cart-service"),
	}
}

// GetCart returns the customer's active cart items in insertion order
func (s *CartService) GetCart(tenantID, customerID string) (*models.CustomerCart, []models.CartItem, error) {
	cart, err := s.carts.GetOrCreateCart(tenantID, customerID, s.cartTTL)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.carts.GetCartItems(cart)
	if err != nil {
		return nil, nil, err
	}
	return cart, items, nil
}

// AddItem resolves the product selection and appends a line to the cart. A
// line with the same product and selection has its quantity increased
// instead.
func (s *CartService) AddItem(tenantID, customerID string, req *models.AddCartItemRequest) ([]models.CartItem, error) {
	product, err := s.products.GetProductByID(tenantID, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}

	resolution := s.resolver.Resolve(product, req.SelectedVariants)
	if !resolution.CanAddToCart {
		return nil, fmt.Errorf("selection incomplete: required options missing")
	}
	if resolution.AvailableStock < req.Quantity {
		return nil, fmt.Errorf("insufficient stock: requested %d, available %d", req.Quantity, resolution.AvailableStock)
	}

	cart, items, err := s.GetCart(tenantID, customerID)
	if err != nil {
		return nil, err
	}

	if i := findCartLine(items, req.ProductID, req.SelectedVariants); i >= 0 {
		items[i].Quantity += req.Quantity
		items[i].TotalPrice = items[i].UnitPrice * float64(items[i].Quantity)
	} else {
		storeName := ""
		var storeLogo *string
		if store, err := s.stores.GetStoreByID(tenantID, product.StoreID); err == nil {
			storeName = store.Name
			storeLogo = store.LogoURL
		}

		var productImage *string
		if len(resolution.DisplayImages) > 0 {
			img := resolution.DisplayImages[0]
			productImage = &img
		}

		items = append(items, models.CartItem{
			ID:               uuid.NewString(),
			ProductID:        product.ID,
			ProductName:      product.Name,
			ProductImage:     productImage,
			StoreID:          product.StoreID,
			StoreName:        storeName,
			StoreLogo:        storeLogo,
			Quantity:         req.Quantity,
			UnitPrice:        resolution.TotalPrice,
			TotalPrice:       resolution.TotalPrice * float64(req.Quantity),
			Currency:         product.CurrencyCode,
			SelectedVariants: req.SelectedVariants,
			VariantLabels:    variantLabels(product, req.SelectedVariants),
			CombinationID:    resolution.CombinationID,
			AddedAt:          time.Now(),
		})
	}

	if err := s.carts.SaveCartItems(cart, items, s.cartTTL); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItem changes a line's quantity; zero removes the line
func (s *CartService) UpdateItem(tenantID, customerID, itemID string, quantity int) ([]models.CartItem, error) {
	cart, items, err := s.GetCart(tenantID, customerID)
	if err != nil {
		return nil, err
	}

	found := false
	out := items[:0]
	for _, item := range items {
		if item.ID == itemID {
			found = true
			if quantity == 0 {
				continue
			}
			item.Quantity = quantity
			item.TotalPrice = item.UnitPrice * float64(quantity)
		}
		out = append(out, item)
	}
	if !found {
		return nil, fmt.Errorf("cart item %s not found", itemID)
	}

	if err := s.carts.SaveCartItems(cart, out, s.cartTTL); err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveItem deletes a line from the cart
func (s *CartService) RemoveItem(tenantID, customerID, itemID string) ([]models.CartItem, error) {
	return s.UpdateItem(tenantID, customerID, itemID, 0)
}

// Clear empties the cart
func (s *CartService) Clear(tenantID, customerID string) error {
	cart, _, err := s.GetCart(tenantID, customerID)
	if err != nil {
		return err
	}
	return s.carts.SaveCartItems(cart, []models.CartItem{}, s.cartTTL)
}

// MarkConverted flags the cart after checkout
func (s *CartService) MarkConverted(tenantID, customerID string) error {
	cart, _, err := s.GetCart(tenantID, customerID)
	if err != nil {
		return err
	}
	return s.carts.MarkConverted(tenantID, cart.ID)
}

func findCartLine(items []models.CartItem, productID uuid.UUID, selection map[string]string) int {
	for i, item := range items {
		if item.ProductID != productID {
			continue
		}
		if sameSelection(item.SelectedVariants, selection) {
			return i
		}
	}
	return -1
}

func sameSelection(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// variantLabels maps the selection to human-readable option names for the
// WhatsApp message and cart display.
func variantLabels(product *models.Product, selection map[string]string) map[string]string {
	if len(selection) == 0 {
		return nil
	}
	labels := make(map[string]string)
	for _, attr := range product.Attributes {
		variantID, ok := selection[attr.ID.String()]
		if !ok {
			continue
		}
		for _, v := range attr.Variants {
			if v.ID.String() == variantID {
				labels[attr.Name] = v.Name
				break
			}
		}
	}
	return labels
}
