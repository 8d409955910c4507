package gateway

import (
	"context"
	"fmt"
	"strings"

	domainErrors "github.com/sharkpay/checkout/internal/domain/errors"
	"github.com/sharkpay/checkout/internal/domain/model"
)

// Adapter wraps one external payment provider's charge-creation API and
// normalizes its response. Adapters never mark orders paid; confirmation
// only ever arrives through the webhook reconciler.
type Adapter interface {
	Gateway() model.Gateway
	Charge(ctx context.Context, order *model.Order) (*model.ChargeResult, error)
}

// Dispatcher routes an order to the adapter responsible for its payment path.
type Dispatcher struct {
	card            *CardAdapter
	pixDirect       *PixDirectAdapter
	defaultRedirect string
}

// NewDispatcher builds the dispatcher from the configured adapters. A nil
// pixDirect means no general-purpose Pix provider is available.
func NewDispatcher(card *CardAdapter, pixDirect *PixDirectAdapter, defaultRedirect string) *Dispatcher {
	return &Dispatcher{card: card, pixDirect: pixDirect, defaultRedirect: defaultRedirect}
}

// Resolve decides which gateway will handle the order before anything is
// persisted. Cards always go to the card processor. For Pix a product-level
// redirect URL wins over the general-purpose direct provider.
func (d *Dispatcher) Resolve(method model.PaymentMethod, explicit model.Gateway, redirectBase string) (model.Gateway, error) {
	switch method {
	case model.PaymentMethodCard:
		return model.GatewayCardProcessor, nil
	case model.PaymentMethodPix:
		if redirectBase != "" || explicit == model.GatewayPixRedirect {
			if redirectBase == "" && d.defaultRedirect == "" {
				return "", fmt.Errorf("%w: no redirect checkout URL configured", domainErrors.ErrConfiguration)
			}
			return model.GatewayPixRedirect, nil
		}
		if d.pixDirect != nil && d.pixDirect.Configured() {
			return model.GatewayPixDirect, nil
		}
		if d.defaultRedirect != "" && explicit != model.GatewayPixDirect {
			return model.GatewayPixRedirect, nil
		}
		return "", fmt.Errorf("%w: no pix provider configured", domainErrors.ErrConfiguration)
	default:
		return "", fmt.Errorf("%w: unsupported payment method %q", domainErrors.ErrValidation, method)
	}
}

// Charge invokes the adapter matching the order's resolved gateway.
func (d *Dispatcher) Charge(ctx context.Context, order *model.Order, redirectBase string) (*model.ChargeResult, error) {
	switch order.Gateway {
	case model.GatewayCardProcessor:
		return d.card.Charge(ctx, order)
	case model.GatewayPixDirect:
		if d.pixDirect == nil {
			return nil, fmt.Errorf("%w: direct pix provider disabled", domainErrors.ErrConfiguration)
		}
		return d.pixDirect.Charge(ctx, order)
	case model.GatewayPixRedirect:
		base := redirectBase
		if base == "" {
			base = d.defaultRedirect
		}
		adapter := NewPixRedirectAdapter(base)
		return adapter.Charge(ctx, order)
	default:
		return nil, fmt.Errorf("%w: unknown gateway %q", domainErrors.ErrConfiguration, order.Gateway)
	}
}

var placeholderMarkers = []string{"your_", "your-", "placeholder", "change-me", "changeme", "xxx"}

// credentialConfigured reports whether a provider credential looks real rather
// than an unset or sample value copied from documentation.
func credentialConfigured(v string) bool {
	if strings.TrimSpace(v) == "" {
		return false
	}
	lower := strings.ToLower(v)
	for _, marker := range placeholderMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}
