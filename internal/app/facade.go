package app

import (
	"context"
	"net/http"

	"github.com/sharkpay/checkout/internal/domain/model"
	"github.com/sharkpay/checkout/internal/usecase"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// PaymentFacade is the single entry point the HTTP layer talks to. It hides
// the individual use cases behind one surface.
type PaymentFacade struct {
	checkout  *usecase.CheckoutUseCase
	reconcile *usecase.ReconcileUseCase
	status    *usecase.StatusUseCase
	health    HealthChecker
}

func NewPaymentFacade(checkout *usecase.CheckoutUseCase, reconcile *usecase.ReconcileUseCase, status *usecase.StatusUseCase, health HealthChecker) *PaymentFacade {
	return &PaymentFacade{checkout: checkout, reconcile: reconcile, status: status, health: health}
}

func (f *PaymentFacade) CreateOrder(ctx context.Context, req usecase.CheckoutRequest) (*usecase.CheckoutResult, error) {
	return f.checkout.CreateOrder(ctx, req)
}

func (f *PaymentFacade) HandleWebhook(ctx context.Context, provider string, raw []byte, header http.Header) error {
	return f.reconcile.Handle(ctx, provider, raw, header)
}

func (f *PaymentFacade) OrderByID(ctx context.Context, id string) (*model.Order, error) {
	return f.status.Get(ctx, id)
}

func (f *PaymentFacade) Healthy(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
