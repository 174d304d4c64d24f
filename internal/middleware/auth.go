package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/models"
	"storefront-service/internal/services"
)

// Auth validates the bearer token and loads the caller's claims into the
// context. Back-office routes mount this plus RequirePermission.
func Auth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "UNAUTHORIZED",
					Message: "Missing or malformed Authorization header",
				},
			})
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "INVALID_TOKEN",
					Message: "Token is invalid or expired",
				},
			})
			c.Abort()
			return
		}

		// The token's tenant binds the request; a mismatched X-Tenant-ID is
		// rejected rather than silently overridden.
		if tenantID := GetTenantID(c); tenantID != "" && tenantID != claims.TenantID {
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "TENANT_MISMATCH",
					Message: "Token does not belong to this tenant",
				},
			})
			c.Abort()
			return
		}

		c.Set("tenant_id", claims.TenantID)
		c.Set("user_id", claims.UserID)
		c.Set("store_id", claims.StoreID)
		c.Set("user_role", claims.Role)
		c.Set("user_permissions", claims.Permissions)
		c.Next()
	}
}

// RequirePermission enforces a permission like "sales:create". A wildcard
// grant ("sales:*" or "*") covers every action in its area.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		perms, _ := c.Get("user_permissions")
		granted, _ := perms.([]string)

		if !hasPermission(granted, permission) {
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "FORBIDDEN",
					Message: "Insufficient permissions",
				},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func hasPermission(granted []string, required string) bool {
	area := required
	if i := strings.Index(required, ":"); i >= 0 {
		area = required[:i]
	}
	for _, p := range granted {
		if p == required || p == "*" || p == area+":*" {
			return true
		}
	}
	return false
}

// GetUserID reads the authenticated user from the context
func GetUserID(c *gin.Context) string {
	if v, exists := c.Get("user_id"); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
