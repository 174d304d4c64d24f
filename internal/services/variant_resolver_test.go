package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"storefront-service/internal/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func buildProduct(price string, stock int) *models.Product {
	return &models.Product{
		ID:     uuid.New(),
		Name:   "Test Product",
		Price:  price,
		Stock:  stock,
		Images: models.StringList{"base.jpg"},
	}
}

func addAttribute(p *models.Product, name string, required bool, variants ...models.AttributeVariant) models.ProductAttribute {
	attr := models.ProductAttribute{
		ID:        uuid.New(),
		ProductID: p.ID,
		Name:      name,
		Required:  required,
	}
	for i := range variants {
		variants[i].AttributeID = attr.ID
	}
	attr.Variants = variants
	p.Attributes = append(p.Attributes, attr)
	return attr
}

func TestResolve_NoAttributes_ReturnsBase(t *testing.T) {
	resolver := NewVariantResolver()
	product := buildProduct("10.00", 7)

	res := resolver.Resolve(product, map[string]string{})

	assert.Equal(t, 10.0, res.TotalPrice)
	assert.Equal(t, 7, res.AvailableStock)
	assert.Equal(t, []string{"base.jpg"}, res.DisplayImages)
	assert.True(t, res.CanAddToCart)
	assert.Nil(t, res.CombinationID)
}

func TestResolve_CombinationMatch_TakesPrecedence(t *testing.T) {
	resolver := NewVariantResolver()
	product := buildProduct("10.00", 20)

	sizeL := models.AttributeVariant{ID: uuid.New(), Name: "L", Value: "L", Price: strPtr("2.00")}
	size := addAttribute(product, "Size", true, sizeL)

	colorRed := models.AttributeVariant{ID: uuid.New(), Name: "Red", Value: "red", Price: strPtr("0.00")}
	color := addAttribute(product, "Color", true, colorRed)

	product.Combinations = []models.VariantCombination{
		{
			ID:        uuid.New(),
			ProductID: product.ID,
			Selection: models.StringMap{
				size.ID.String():  sizeL.ID.String(),
				color.ID.String(): colorRed.ID.String(),
			},
			Stock:         5,
			PriceModifier: strPtr("3.00"),
		},
	}

	res := resolver.Resolve(product, map[string]string{
		size.ID.String():  sizeL.ID.String(),
		color.ID.String(): colorRed.ID.String(),
	})

	// Combination modifier is applied once over base price, never summed
	// with the per-variant deltas.
	assert.Equal(t, 13.0, res.TotalPrice)
	assert.Equal(t, 5, res.AvailableStock)
	assert.True(t, res.CanAddToCart)
	assert.NotNil(t, res.CombinationID)
	assert.Equal(t, product.Combinations[0].ID, *res.CombinationID)
}

func TestResolve_PartialSelection_FallsBackToVariantDeltas(t *testing.T) {
	resolver := NewVariantResolver()
	product := buildProduct("10.00", 20)

	sizeL := models.AttributeVariant{ID: uuid.New(), Name: "L", Value: "L", Price: strPtr("2.00")}
	size := addAttribute(product, "Size", false, sizeL)

	colorRed := models.AttributeVariant{ID: uuid.New(), Name: "Red", Value: "red"}
	color := addAttribute(product, "Color", false, colorRed)

	product.Combinations = []models.VariantCombination{
		{
			ID:        uuid.New(),
			ProductID: product.ID,
			Selection: models.StringMap{
				size.ID.String():  sizeL.ID.String(),
				color.ID.String(): colorRed.ID.String(),
			},
			Stock:         5,
			PriceModifier: strPtr("3.00"),
		},
	}

	// Only Size selected: the combination needs both keys, so the fallback
	// path applies.
	res := resolver.Resolve(product, map[string]string{
		size.ID.String(): sizeL.ID.String(),
	})

	assert.Equal(t, 12.0, res.TotalPrice)
	assert.Equal(t, 20, res.AvailableStock)
	assert.Nil(t, res.CombinationID)
}

func TestResolve_FallbackStock_IsMinOverSelectedVariants(t *testing.T) {
	resolver := NewVariantResolver()
	product := buildProduct("10.00", 50)

	sizeL := models.AttributeVariant{ID: uuid.New(), Name: "L", Value: "L", Stock: intPtr(3)}
	size := addAttribute(product, "Size", false, sizeL)

	// No explicit stock: falls back to the product base stock.
	colorRed := models.AttributeVariant{ID: uuid.New(), Name: "Red", Value: "red"}
	color := addAttribute(product, "Color", false, colorRed)

	res := resolver.Resolve(product, map[string]string{
		size.ID.String():  sizeL.ID.String(),
		color.ID.String(): colorRed.ID.String(),
	})

	assert.Equal(t, 3, res.AvailableStock)
}

func TestResolve_RequiredUnselected_BlocksAddToCart(t *testing.T) {
	resolver := NewVariantResolver()
	product := buildProduct("10.00", 20)

	sizeL := models.AttributeVariant{ID: uuid.New(), Name: "L", Value: "L", Price: strPtr("2.00")}
	addAttribute(product, "Size", true, sizeL)

	res := resolver.Resolve(product, map[string]string{})

	assert.False(t, res.CanAddToCart)
	// Price and stock are still computed for display.
	assert.Equal(t, 10.0, res.TotalPrice)
	assert.Equal(t, 20, res.AvailableStock)
}

func TestResolve_UnparseablePrice_TreatedAsZero(t *testing.T) {
	resolver := NewVariantResolver()
	product := buildProduct("not-a-price", 4)

	res := resolver.Resolve(product, map[string]string{})

	assert.Equal(t, 0.0, res.TotalPrice)
	assert.Equal(t, 4, res.AvailableStock)
}

func TestResolve_CombinationImagesOverrideWhenPresent(t *testing.T) {
	resolver := NewVariantResolver()
	product := buildProduct("10.00", 20)

	sizeL := models.AttributeVariant{ID: uuid.New(), Name: "L", Value: "L", Images: models.StringList{"variant.jpg"}}
	size := addAttribute(product, "Size", false, sizeL)

	product.Combinations = []models.VariantCombination{
		{
			ID:        uuid.New(),
			ProductID: product.ID,
			Selection: models.StringMap{size.ID.String(): sizeL.ID.String()},
			Stock:     2,
			Images:    models.StringList{"combo.jpg"},
		},
	}

	res := resolver.Resolve(product, map[string]string{
		size.ID.String(): sizeL.ID.String(),
	})

	assert.Equal(t, []string{"combo.jpg"}, res.DisplayImages)
	assert.Equal(t, 2, res.AvailableStock)
	// No modifier: price stays at base.
	assert.Equal(t, 10.0, res.TotalPrice)
}

func TestResolve_VariantImagesConcatenatedInFallback(t *testing.T) {
	resolver := NewVariantResolver()
	product := buildProduct("10.00", 20)

	sizeL := models.AttributeVariant{ID: uuid.New(), Name: "L", Value: "L", Images: models.StringList{"l.jpg"}}
	size := addAttribute(product, "Size", false, sizeL)

	colorRed := models.AttributeVariant{ID: uuid.New(), Name: "Red", Value: "red", Images: models.StringList{"red-1.jpg", "red-2.jpg"}}
	color := addAttribute(product, "Color", false, colorRed)

	res := resolver.Resolve(product, map[string]string{
		size.ID.String():  sizeL.ID.String(),
		color.ID.String(): colorRed.ID.String(),
	})

	assert.Equal(t, []string{"l.jpg", "red-1.jpg", "red-2.jpg"}, res.DisplayImages)
}

func TestResolve_AttributeWithoutVariants_Ignored(t *testing.T) {
	resolver := NewVariantResolver()
	product := buildProduct("10.00", 20)

	// Required but has no variants: cannot gate add-to-cart.
	addAttribute(product, "Engraving", true)

	res := resolver.Resolve(product, map[string]string{})

	assert.True(t, res.CanAddToCart)
	assert.Equal(t, 10.0, res.TotalPrice)
}
