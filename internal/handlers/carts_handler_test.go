package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func bindUpdateCartItem(body string) (*models.UpdateCartItemRequest, error) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("PATCH", "/api/v1/cart/items/line-1", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req models.UpdateCartItemRequest
	err := c.ShouldBindJSON(&req)
	return &req, err
}

func TestUpdateCartItemBinding_ZeroQuantityRemovesLine(t *testing.T) {
	req, err := bindUpdateCartItem(`{"quantity": 0}`)

	require.NoError(t, err)
	require.NotNil(t, req.Quantity)
	assert.Equal(t, 0, *req.Quantity)
}

func TestUpdateCartItemBinding_PositiveQuantity(t *testing.T) {
	req, err := bindUpdateCartItem(`{"quantity": 3}`)

	require.NoError(t, err)
	require.NotNil(t, req.Quantity)
	assert.Equal(t, 3, *req.Quantity)
}

func TestUpdateCartItemBinding_MissingQuantityRejected(t *testing.T) {
	_, err := bindUpdateCartItem(`{}`)

	assert.Error(t, err)
}

func TestUpdateCartItemBinding_NegativeQuantityRejected(t *testing.T) {
	_, err := bindUpdateCartItem(`{"quantity": -1}`)

	assert.Error(t, err)
}
