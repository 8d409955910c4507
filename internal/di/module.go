package di

import (
	"go.uber.org/fx"

	"github.com/sharkpay/checkout/internal/adapter/delivery"
	"github.com/sharkpay/checkout/internal/adapter/fraud"
	"github.com/sharkpay/checkout/internal/app"
	"github.com/sharkpay/checkout/internal/config"
	"github.com/sharkpay/checkout/internal/gateway"
	"github.com/sharkpay/checkout/internal/logger"
	"github.com/sharkpay/checkout/internal/server/http/handlers"
	"github.com/sharkpay/checkout/internal/server/http/router"
	"github.com/sharkpay/checkout/internal/storage/postgres"
	"github.com/sharkpay/checkout/internal/usecase"
)

// Module assembles the full application graph. Extra options let tests swap
// real components for stubs via fx.Replace.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		gateway.Module,
		fraud.Module,
		delivery.Module,
		usecase.Module,
		fx.Provide(
			func(client fraud.Client) usecase.Screener { return client },
			func(notifier delivery.Notifier) usecase.Notifier { return notifier },
			func(dispatcher *gateway.Dispatcher) usecase.ChargeDispatcher { return dispatcher },
			func(storage *postgres.Storage) app.HealthChecker { return storage },
			func(facade *app.PaymentFacade) handlers.PaymentFacade { return facade },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
