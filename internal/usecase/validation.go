package usecase

import (
	"fmt"
	"math"
	"strings"

	domainErrors "github.com/sharkpay/checkout/internal/domain/errors"
	"github.com/sharkpay/checkout/internal/domain/model"
)

// MinorUnits converts a major-unit amount into integer cents, rounding to the
// nearest cent. This is the only place a float amount is ever converted.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// ValidateCheckout rejects malformed checkout requests before anything is
// persisted or any provider is called.
func ValidateCheckout(req *CheckoutRequest) error {
	if !req.Method.Valid() {
		return fmt.Errorf("%w: unsupported payment method %q", domainErrors.ErrValidation, req.Method)
	}
	if req.AmountCents <= 0 {
		return fmt.Errorf("%w: amount must be positive", domainErrors.ErrValidation)
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return fmt.Errorf("%w: a valid buyer email is required", domainErrors.ErrValidation)
	}
	switch req.Gateway {
	case "", model.GatewayCardProcessor, model.GatewayPixDirect, model.GatewayPixRedirect:
	default:
		return fmt.Errorf("%w: unknown gateway %q", domainErrors.ErrValidation, req.Gateway)
	}
	if req.Method == model.PaymentMethodCard && req.Gateway != "" && req.Gateway != model.GatewayCardProcessor {
		return fmt.Errorf("%w: card payments cannot use gateway %q", domainErrors.ErrValidation, req.Gateway)
	}
	return nil
}
