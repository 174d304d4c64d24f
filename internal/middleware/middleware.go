package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storefront-service/internal/models"
)

// SetupCORS configures cross-origin access for the storefront and
// back-office frontends
func SetupCORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Authorization",
			"X-Tenant-ID", "X-User-ID", "X-Customer-ID",
		},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}

// TenantID extracts the tenant from the X-Tenant-ID header into the context
func TenantID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tenantID := c.GetHeader("X-Tenant-ID"); tenantID != "" {
			c.Set("tenant_id", tenantID)
		}
		c.Next()
	}
}

// RequireTenantID rejects requests without a tenant
func RequireTenantID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("tenant_id"); !exists {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "MISSING_TENANT_ID",
					Message: "X-Tenant-ID header is required",
				},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CustomerID extracts the storefront customer identity. Anonymous storefront
// customers are identified by a client-generated X-Customer-ID.
func CustomerID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if customerID := c.GetHeader("X-Customer-ID"); customerID != "" {
			c.Set("customer_id", customerID)
		}
		c.Next()
	}
}

// RequireCustomerID rejects cart/checkout requests without a customer identity
func RequireCustomerID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("customer_id"); !exists {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "MISSING_CUSTOMER_ID",
					Message: "X-Customer-ID header is required",
				},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetTenantID reads the tenant set by TenantID middleware
func GetTenantID(c *gin.Context) string {
	if v, exists := c.Get("tenant_id"); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetCustomerID reads the customer set by CustomerID middleware
func GetCustomerID(c *gin.Context) string {
	if v, exists := c.Get("customer_id"); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
