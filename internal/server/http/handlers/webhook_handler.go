package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/sharkpay/checkout/internal/domain/errors"
	"github.com/sharkpay/checkout/internal/server/http/dto"
)

// WebhookHandler receives provider payment notifications.
type WebhookHandler struct {
	facade PaymentFacade
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(facade PaymentFacade) *WebhookHandler {
	return &WebhookHandler{facade: facade}
}

// Receive handles POST /webhooks/:provider. The body is read raw because
// signature verification happens over the exact bytes the provider sent.
func (h *WebhookHandler) Receive(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err = h.facade.HandleWebhook(c.Request.Context(), c.Param("provider"), raw, c.Request.Header)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrAuthentication):
			c.Status(http.StatusUnauthorized)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.AckResponse{OK: true})
}
