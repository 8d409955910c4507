package fraud

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/sharkpay/checkout/internal/config"
)

// Module exposes the screening client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	if p.Config.FraudScreeningURL == "" {
		return Disabled{}, nil
	}
	return NewHTTPClient(
		p.Config.FraudScreeningURL,
		p.Config.FraudScreeningSecret,
		p.Config.GatewayTimeout,
		p.Logger,
	)
}
