package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"tenantId":   GetTenantID(c),
			"customerId": GetCustomerID(c),
		})
	})
	return r
}

func TestRequireTenantID_MissingHeader(t *testing.T) {
	r := newRouter(TenantID(), RequireTenantID())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_TENANT_ID")
}

func TestRequireTenantID_WithHeader(t *testing.T) {
	r := newRouter(TenantID(), RequireTenantID())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Tenant-ID", "tenant-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tenant-1")
}

func TestRequireCustomerID_MissingHeader(t *testing.T) {
	r := newRouter(CustomerID(), RequireCustomerID())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_CUSTOMER_ID")
}

func TestRequireCustomerID_WithHeader(t *testing.T) {
	r := newRouter(CustomerID(), RequireCustomerID())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Customer-ID", "anon-abc123")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "anon-abc123")
}

func grantPermissions(perms []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_permissions", perms)
		c.Next()
	}
}

func TestRequirePermission_Granted(t *testing.T) {
	r := gin.New()
	r.Use(grantPermissions([]string{"sales:create"}))
	r.GET("/test", RequirePermission("sales:create"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermission_Denied(t *testing.T) {
	r := gin.New()
	r.Use(grantPermissions([]string{"sales:read"}))
	r.GET("/test", RequirePermission("sales:create"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestRequirePermission_NoPermissionsSet(t *testing.T) {
	r := gin.New()
	r.GET("/test", RequirePermission("sales:create"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name     string
		granted  []string
		required string
		want     bool
	}{
		{"exact match", []string{"sales:create"}, "sales:create", true},
		{"area wildcard", []string{"sales:*"}, "sales:void", true},
		{"global wildcard", []string{"*"}, "receivables:delete", true},
		{"other area wildcard", []string{"sales:*"}, "purchases:create", false},
		{"no grants", nil, "sales:create", false},
		{"unrelated grant", []string{"products:read"}, "sales:create", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hasPermission(tt.granted, tt.required))
		})
	}
}
