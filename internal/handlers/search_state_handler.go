package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/middleware"
	"storefront-service/internal/models"
	"storefront-service/internal/services"
)

type SearchStateHandler struct {
	searchState *services.SearchStateService
}

func NewSearchStateHandler(searchState *services.SearchStateService) *SearchStateHandler {
	return &SearchStateHandler{searchState: searchState}
}

// SaveState handles PUT /search-state/:view
func (h *SearchStateHandler) SaveState(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	userID := middleware.GetUserID(c)
	view := c.Param("view")

	var state json.RawMessage
	if err := c.ShouldBindJSON(&state); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.searchState.Save(c.Request.Context(), tenantID, userID, view, state); err != nil {
		respondError(c, http.StatusServiceUnavailable, "SAVE_FAILED", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// GetState handles GET /search-state/:view — returns null data when no state
// was saved or the saved state expired.
func (h *SearchStateHandler) GetState(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	userID := middleware.GetUserID(c)
	view := c.Param("view")

	state, err := h.searchState.Get(c.Request.Context(), tenantID, userID, view)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "LOAD_FAILED", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: state})
}

// ClearState handles DELETE /search-state/:view
func (h *SearchStateHandler) ClearState(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	userID := middleware.GetUserID(c)
	view := c.Param("view")

	if err := h.searchState.Clear(c.Request.Context(), tenantID, userID, view); err != nil {
		respondError(c, http.StatusInternalServerError, "CLEAR_FAILED", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}
