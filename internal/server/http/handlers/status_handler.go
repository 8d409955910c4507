package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/sharkpay/checkout/internal/domain/errors"
	"github.com/sharkpay/checkout/internal/server/http/dto"
)

// StatusHandler serves order lookups for the polling widget.
type StatusHandler struct {
	facade PaymentFacade
}

// NewStatusHandler constructs StatusHandler.
func NewStatusHandler(facade PaymentFacade) *StatusHandler {
	return &StatusHandler{facade: facade}
}

// Status handles GET /orders/:id/status.
func (h *StatusHandler) Status(c *gin.Context) {
	order, err := h.facade.OrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{
		Status:    string(order.Status),
		ExpiresAt: order.ExpiresAt,
	})
}

// Snapshot handles GET /orders/:id.
func (h *StatusHandler) Snapshot(c *gin.Context) {
	order, err := h.facade.OrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.OrderResponse{
		OrderID:       order.ID,
		Status:        string(order.Status),
		Amount:        order.Amount(),
		PaymentMethod: string(order.PaymentMethod),
		Gateway:       string(order.Gateway),
		UTMSource:     order.UTMSource,
		CreatedAt:     order.CreatedAt,
		PaidAt:        order.PaidAt,
		ExpiresAt:     order.ExpiresAt,
	})
}
