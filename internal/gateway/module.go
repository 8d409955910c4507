package gateway

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/sharkpay/checkout/internal/config"
)

// Module wires the gateway adapters, dispatcher, and webhook profiles.
var Module = fx.Provide(newCardAdapter, newPixDirectAdapter, newDispatcher, newRegistry)

type adapterParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newCardAdapter(p adapterParams) (*CardAdapter, error) {
	return NewCardAdapter(
		p.Config.CardAPIBaseURL,
		p.Config.CardSecretKey,
		p.Config.CardPublishableKey,
		p.Config.GatewayTimeout,
		p.Logger,
	)
}

func newPixDirectAdapter(p adapterParams) (*PixDirectAdapter, error) {
	return NewPixDirectAdapter(
		p.Config.PixAPIBaseURL,
		p.Config.PixAPIToken,
		p.Config.PublicBaseURL,
		p.Config.GatewayTimeout,
		p.Logger,
	)
}

func newDispatcher(cfg *config.Config, card *CardAdapter, pixDirect *PixDirectAdapter) *Dispatcher {
	return NewDispatcher(card, pixDirect, cfg.PixRedirectBaseURL)
}

func newRegistry(cfg *config.Config) *Registry {
	return NewRegistry(
		CardProcessorProfile(cfg.CardWebhookSecret),
		PixDirectProfile(cfg.PixWebhookSecret),
		PixRedirectProfile(cfg.PixRedirectSecret),
	)
}
