package delivery

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/sharkpay/checkout/internal/config"
)

// Module exposes the delivery notifier implementation to the fx graph.
var Module = fx.Provide(newNotifier)

type notifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newNotifier(p notifierParams) (Notifier, error) {
	if p.Config.DeliveryWebhookURL == "" {
		return Disabled{}, nil
	}
	return NewHTTPNotifier(p.Config.DeliveryWebhookURL, p.Config.GatewayTimeout, p.Logger)
}
