package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/sharkpay/checkout/internal/config"
	"github.com/sharkpay/checkout/internal/domain/repository"
	"github.com/sharkpay/checkout/internal/gateway"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newCheckoutUseCase,
	newReconcileUseCase,
	NewStatusUseCase,
)

type checkoutParams struct {
	fx.In

	Orders     repository.OrderRepository
	Dispatcher ChargeDispatcher
	Screener   Screener
	Config     *config.Config
	Logger     *slog.Logger
}

func newCheckoutUseCase(p checkoutParams) *CheckoutUseCase {
	return NewCheckoutUseCase(p.Orders, p.Dispatcher, p.Screener, p.Config.FraudMinScore, p.Logger)
}

type reconcileParams struct {
	fx.In

	Orders   repository.OrderRepository
	Profiles *gateway.Registry
	Notifier Notifier
	Config   *config.Config
	Logger   *slog.Logger
}

func newReconcileUseCase(p reconcileParams) *ReconcileUseCase {
	return NewReconcileUseCase(p.Orders, p.Profiles, p.Notifier, p.Config.WebhookAllowUnsigned, p.Logger)
}
