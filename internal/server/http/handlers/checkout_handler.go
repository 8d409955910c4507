package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/sharkpay/checkout/internal/domain/errors"
	"github.com/sharkpay/checkout/internal/domain/model"
	"github.com/sharkpay/checkout/internal/server/http/dto"
	"github.com/sharkpay/checkout/internal/usecase"
)

// CheckoutHandler manages order creation.
type CheckoutHandler struct {
	facade PaymentFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade PaymentFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Create handles POST /orders.
func (h *CheckoutHandler) Create(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "malformed checkout request"})
		return
	}

	result, err := h.facade.CreateOrder(c.Request.Context(), usecase.CheckoutRequest{
		OrderID:        req.OrderID,
		Method:         model.PaymentMethod(req.Method),
		Gateway:        model.Gateway(req.Gateway),
		AmountCents:    usecase.MinorUnits(req.Amount),
		Email:          req.Email,
		Name:           req.Name,
		TaxID:          req.TaxID,
		UTMSource:      req.UTMSource,
		CaptchaToken:   req.CaptchaToken,
		PixRedirectURL: req.PixRedirectURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrValidation):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domainErrors.ErrFraudBlocked):
			// Deliberately vague: the buyer never learns screening details.
			c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "order could not be processed"})
		default:
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "payment could not be initiated"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutResponse{
		OrderID:        result.Order.ID,
		Status:         string(result.Order.Status),
		Gateway:        string(result.Order.Gateway),
		ClientSecret:   result.Charge.ClientSecret,
		PublishableKey: result.Charge.PublishableKey,
		QRCode:         result.Charge.QRCode,
		QRCodeText:     result.Charge.QRCodeText,
		ExpiresAt:      result.Charge.ExpiresAt,
		RedirectURL:    result.Charge.RedirectURL,
	})
}
