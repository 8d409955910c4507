package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	domainErrors "github.com/sharkpay/checkout/internal/domain/errors"
	"github.com/sharkpay/checkout/internal/domain/model"
)

// PixRedirectAdapter serves redirect-style Pix products. No charge-creation
// API exists: the buyer is sent to a pre-configured hosted checkout URL with
// their identity appended, and confirmation arrives later through a generic
// webhook correlated by order id.
type PixRedirectAdapter struct {
	base string
}

// NewPixRedirectAdapter binds the adapter to one product's checkout URL.
func NewPixRedirectAdapter(base string) *PixRedirectAdapter {
	return &PixRedirectAdapter{base: base}
}

func (a *PixRedirectAdapter) Gateway() model.Gateway {
	return model.GatewayPixRedirect
}

// Charge validates the configured URL and appends the buyer's identity as
// query parameters: name and email URL-encoded, tax id reduced to digits.
func (a *PixRedirectAdapter) Charge(_ context.Context, order *model.Order) (*model.ChargeResult, error) {
	if strings.TrimSpace(a.base) == "" {
		return nil, fmt.Errorf("%w: redirect checkout URL is not set", domainErrors.ErrConfiguration)
	}

	parsed, err := url.Parse(a.base)
	if err != nil || !parsed.IsAbs() {
		return nil, fmt.Errorf("%w: invalid redirect checkout URL %q", domainErrors.ErrConfiguration, a.base)
	}

	query := parsed.Query()
	if order.BuyerName != "" {
		query.Set("name", order.BuyerName)
	}
	if order.BuyerEmail != "" {
		query.Set("email", order.BuyerEmail)
	}
	if cpf := digitsOnly(order.BuyerTaxID); cpf != "" {
		query.Set("cpf", cpf)
	}
	query.Set("external_reference", order.ID)
	parsed.RawQuery = query.Encode()

	return &model.ChargeResult{
		GatewayReference: order.ID,
		RedirectURL:      parsed.String(),
	}, nil
}

// digitsOnly strips everything but decimal digits, e.g. "123.456.789-00"
// becomes "12345678900".
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
