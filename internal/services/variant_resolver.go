package services

import (
	"strconv"

	"storefront-service/internal/models"
)

// VariantResolver derives the price, stock, and gallery shown on a product
// page from the customer's current (possibly partial) variant selection.
// Resolution is pure: no I/O, no error paths.
type VariantResolver struct{}

func NewVariantResolver() *VariantResolver {
	return &VariantResolver{}
}

// Resolve computes the view model for a selection. Combinations take
// precedence over per-variant fallback, but only when the selection covers
// every attribute that has variants and matches a combination exactly.
func (vr *VariantResolver) Resolve(product *models.Product, selection map[string]string) models.VariantResolution {
	basePrice := parsePrice(product.Price)
	withVariants := attributesWithVariants(product)

	res := models.VariantResolution{
		TotalPrice:     basePrice,
		AvailableStock: product.Stock,
		DisplayImages:  product.Images,
		CanAddToCart:   true,
	}

	if len(withVariants) == 0 {
		return res
	}

	res.CanAddToCart = requiredSelected(withVariants, selection)

	if combo := matchCombination(product, withVariants, selection); combo != nil {
		res.TotalPrice = basePrice
		if combo.PriceModifier != nil {
			res.TotalPrice += parsePrice(*combo.PriceModifier)
		}
		res.AvailableStock = combo.Stock
		if len(combo.Images) > 0 {
			res.DisplayImages = combo.Images
		}
		id := combo.ID
		res.CombinationID = &id
		return res
	}

	// Per-variant fallback: sum price deltas, take the minimum stock across
	// selected variants, concatenate their images.
	total := basePrice
	stock := product.Stock
	stockSet := false
	var images []string

	for _, attr := range withVariants {
		variantID, ok := selection[attr.ID.String()]
		if !ok {
			continue
		}
		variant := findVariant(attr, variantID)
		if variant == nil {
			continue
		}
		if variant.Price != nil {
			total += parsePrice(*variant.Price)
		}
		variantStock := product.Stock
		if variant.Stock != nil {
			variantStock = *variant.Stock
		}
		if !stockSet || variantStock < stock {
			stock = variantStock
			stockSet = true
		}
		images = append(images, variant.Images...)
	}

	res.TotalPrice = total
	res.AvailableStock = stock
	if len(images) > 0 {
		res.DisplayImages = images
	}
	return res
}

// attributesWithVariants filters the attributes that actually carry options;
// attributes without variants never participate in resolution.
func attributesWithVariants(product *models.Product) []models.ProductAttribute {
	var out []models.ProductAttribute
	for _, attr := range product.Attributes {
		if len(attr.Variants) > 0 {
			out = append(out, attr)
		}
	}
	return out
}

func requiredSelected(attrs []models.ProductAttribute, selection map[string]string) bool {
	for _, attr := range attrs {
		if !attr.Required {
			continue
		}
		if selection[attr.ID.String()] == "" {
			return false
		}
	}
	return true
}

// matchCombination finds the combination whose selection-key set equals the
// full set of attributes-with-variants and whose values match the current
// selection. A combination with missing or extra keys never matches.
func matchCombination(product *models.Product, attrs []models.ProductAttribute, selection map[string]string) *models.VariantCombination {
	attrIDs := make(map[string]bool, len(attrs))
	for _, attr := range attrs {
		attrIDs[attr.ID.String()] = true
	}

	for i := range product.Combinations {
		combo := &product.Combinations[i]
		if len(combo.Selection) != len(attrIDs) {
			continue
		}
		matched := true
		for attrID, variantID := range combo.Selection {
			if !attrIDs[attrID] || selection[attrID] != variantID {
				matched = false
				break
			}
		}
		if matched {
			return combo
		}
	}
	return nil
}

func findVariant(attr models.ProductAttribute, variantID string) *models.AttributeVariant {
	for i := range attr.Variants {
		if attr.Variants[i].ID.String() == variantID {
			return &attr.Variants[i]
		}
	}
	return nil
}

// parsePrice converts a decimal price string; absent or unparseable values
// resolve to zero rather than failing.
func parsePrice(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
