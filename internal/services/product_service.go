package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
	"storefront-service/internal/repository"
)

// ProductService maps product write requests to entities and enforces the
// combination invariant: a combination's selection may only reference the
// product's own attributes and their variants.
type ProductService struct {
	products        *repository.ProductsRepository
	defaultCurrency string
	logger          *logrus.Entry
}

func NewProductService(products *repository.ProductsRepository, defaultCurrency string, logger *logrus.Logger) *ProductService {
	return &ProductService{
		products:        products,
		defaultCurrency: defaultCurrency,
		logger:          logger.WithField("component", "product-service"),
	}
}

// CreateProduct builds the entity graph (attributes, variants) from the
// request and persists it.
func (s *ProductService) CreateProduct(tenantID string, req *models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		StoreID:      req.StoreID,
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		SKU:          req.SKU,
		Price:        req.Price,
		CurrencyCode: s.defaultCurrency,
		Status:       models.ProductStatusDraft,
		Visible:      true,
		Images:       models.StringList(req.Images),
	}
	if req.CurrencyCode != nil && *req.CurrencyCode != "" {
		product.CurrencyCode = *req.CurrencyCode
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Visible != nil {
		product.Visible = *req.Visible
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}

	for i, attrReq := range req.Attributes {
		attr := models.ProductAttribute{
			Name:     attrReq.Name,
			Type:     attrReq.Type,
			Required: attrReq.Required,
			Position: attrReq.Position,
		}
		if attr.Type == "" {
			attr.Type = models.AttributeTypeSelect
		}
		if attr.Position == 0 {
			attr.Position = i
		}
		for j, varReq := range attrReq.Variants {
			variant := models.AttributeVariant{
				Name:     varReq.Name,
				Value:    varReq.Value,
				Price:    varReq.Price,
				Stock:    varReq.Stock,
				Images:   models.StringList(varReq.Images),
				Position: varReq.Position,
			}
			if variant.Position == 0 {
				variant.Position = j
			}
			attr.Variants = append(attr.Variants, variant)
		}
		product.Attributes = append(product.Attributes, attr)
	}

	if err := s.products.CreateProduct(tenantID, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// AddCombination validates the selection against the product's attribute
// graph before persisting the combination.
func (s *ProductService) AddCombination(tenantID string, productID uuid.UUID, req *models.CreateCombinationRequest) (*models.VariantCombination, error) {
	product, err := s.products.GetProductByID(tenantID, productID)
	if err != nil {
		return nil, err
	}

	if err := validateSelection(product, req.Selection); err != nil {
		return nil, err
	}

	combo := &models.VariantCombination{
		Selection:     models.StringMap(req.Selection),
		Stock:         req.Stock,
		PriceModifier: req.PriceModifier,
		Images:        models.StringList(req.Images),
	}
	if err := s.products.CreateCombination(tenantID, productID, combo); err != nil {
		return nil, fmt.Errorf("failed to create combination: %w", err)
	}
	return combo, nil
}

// ResolveSelection loads the product and runs variant resolution for the
// storefront product page.
func (s *ProductService) ResolveSelection(tenantID string, productID uuid.UUID, selection map[string]string, resolver *VariantResolver) (*models.VariantResolution, error) {
	product, err := s.products.GetProductByID(tenantID, productID)
	if err != nil {
		return nil, err
	}
	res := resolver.Resolve(product, selection)
	return &res, nil
}

// validateSelection checks that every selection key is one of the product's
// attributes and every value one of that attribute's variants.
func validateSelection(product *models.Product, selection map[string]string) error {
	if len(selection) == 0 {
		return fmt.Errorf("selection must not be empty")
	}

	variantsByAttr := make(map[string]map[string]bool)
	for _, attr := range product.Attributes {
		set := make(map[string]bool, len(attr.Variants))
		for _, v := range attr.Variants {
			set[v.ID.String()] = true
		}
		variantsByAttr[attr.ID.String()] = set
	}

	for attrID, variantID := range selection {
		variants, ok := variantsByAttr[attrID]
		if !ok {
			return fmt.Errorf("selection references unknown attribute %s", attrID)
		}
		if !variants[variantID] {
			return fmt.Errorf("selection references unknown variant %s for attribute %s", variantID, attrID)
		}
	}
	return nil
}
