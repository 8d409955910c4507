package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sharkpay/checkout/internal/server/http/dto"
)

// HealthHandler answers readiness probes.
type HealthHandler struct {
	facade PaymentFacade
}

// NewHealthHandler constructs HealthHandler.
func NewHealthHandler(facade PaymentFacade) *HealthHandler {
	return &HealthHandler{facade: facade}
}

// Check handles GET /healthz.
func (h *HealthHandler) Check(c *gin.Context) {
	if err := h.facade.Healthy(c.Request.Context()); err != nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	c.JSON(http.StatusOK, dto.AckResponse{OK: true})
}
