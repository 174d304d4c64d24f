package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/models"
	"storefront-service/internal/services"
)

type RatesHandler struct {
	rates *services.RateService
}

func NewRatesHandler(rates *services.RateService) *RatesHandler {
	return &RatesHandler{rates: rates}
}

// GetRate handles GET /rates/bcv
func (h *RatesHandler) GetRate(c *gin.Context) {
	rate, err := h.rates.GetRate(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, "RATE_UNAVAILABLE", err.Error())
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: rate})
}
