package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/middleware"
	"storefront-service/internal/models"
	"storefront-service/internal/repository"
	"storefront-service/internal/services"
)

// exportPageSize bounds a single export query
const exportPageSize = 10000

type ExportHandler struct {
	export      *services.ExportService
	sales       *repository.SalesRepository
	receivables *repository.ReceivablesRepository
	purchases   *repository.PurchasesRepository
	products    *repository.ProductsRepository
}

func NewExportHandler(
	export *services.ExportService,
	sales *repository.SalesRepository,
	receivables *repository.ReceivablesRepository,
	purchases *repository.PurchasesRepository,
	products *repository.ProductsRepository,
) *ExportHandler {
	return &ExportHandler{
		export:      export,
		sales:       sales,
		receivables: receivables,
		purchases:   purchases,
		products:    products,
	}
}

// Export handles GET /export/:entity?format=csv|xlsx
func (h *ExportHandler) Export(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	entity := c.Param("entity")
	format := c.DefaultQuery("format", "csv")

	var headers []string
	var rows [][]string

	switch entity {
	case "sales":
		sales, _, _, err := h.sales.GetSales(tenantID, &models.SearchSalesRequest{
			StoreID: optionalUUIDQuery(c, "storeId"),
			Page:    1,
			Limit:   exportPageSize,
		})
		if err != nil {
			respondError(c, http.StatusInternalServerError, "EXPORT_FAILED", err.Error())
			return
		}
		headers, rows = h.export.SalesTable(sales)
	case "receivables":
		receivables, _, _, err := h.receivables.GetReceivables(tenantID, &models.SearchReceivablesRequest{
			StoreID: optionalUUIDQuery(c, "storeId"),
			Page:    1,
			Limit:   exportPageSize,
		})
		if err != nil {
			respondError(c, http.StatusInternalServerError, "EXPORT_FAILED", err.Error())
			return
		}
		headers, rows = h.export.ReceivablesTable(receivables)
	case "purchases":
		purchases, _, _, err := h.purchases.GetPurchases(tenantID, &models.SearchPurchasesRequest{
			StoreID: optionalUUIDQuery(c, "storeId"),
			Page:    1,
			Limit:   exportPageSize,
		})
		if err != nil {
			respondError(c, http.StatusInternalServerError, "EXPORT_FAILED", err.Error())
			return
		}
		headers, rows = h.export.PurchasesTable(purchases)
	case "products":
		products, _, err := h.products.GetProducts(tenantID, &models.SearchProductsRequest{
			StoreID: optionalUUIDQuery(c, "storeId"),
			Page:    1,
			Limit:   exportPageSize,
		})
		if err != nil {
			respondError(c, http.StatusInternalServerError, "EXPORT_FAILED", err.Error())
			return
		}
		headers, rows = h.export.ProductsTable(products)
	default:
		respondError(c, http.StatusNotFound, "UNKNOWN_ENTITY",
			"Exportable entities: sales, receivables, purchases, products")
		return
	}

	filename := fmt.Sprintf("%s-%s", entity, time.Now().Format("2006-01-02"))

	switch format {
	case "csv":
		data, err := h.export.WriteCSV(headers, rows)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "EXPORT_FAILED", err.Error())
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
	case "xlsx":
		data, err := h.export.WriteXLSX(entity, headers, rows)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "EXPORT_FAILED", err.Error())
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", filename))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		respondError(c, http.StatusBadRequest, "UNKNOWN_FORMAT", "Supported formats: csv, xlsx")
	}
}
