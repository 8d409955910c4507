package test

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/sharkpay/checkout/internal/domain/model"
	"github.com/sharkpay/checkout/internal/usecase"
)

// PaymentFacadeStub provides controllable behaviour for HTTP handlers.
type PaymentFacadeStub struct {
	CreateFn  func(context.Context, usecase.CheckoutRequest) (*usecase.CheckoutResult, error)
	WebhookFn func(context.Context, string, []byte, http.Header) error
	OrderFn   func(context.Context, string) (*model.Order, error)
	HealthyFn func(context.Context) error
}

// CreateOrder delegates to the configured function or answers with a minimal
// successful checkout.
func (s PaymentFacadeStub) CreateOrder(ctx context.Context, req usecase.CheckoutRequest) (*usecase.CheckoutResult, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	order := &model.Order{ID: req.OrderID, Status: model.OrderStatusPending, AmountCents: req.AmountCents}
	return &usecase.CheckoutResult{Order: order, Charge: &model.ChargeResult{GatewayReference: "ref"}}, nil
}

// HandleWebhook delegates to the configured function or acknowledges.
func (s PaymentFacadeStub) HandleWebhook(ctx context.Context, provider string, raw []byte, header http.Header) error {
	if s.WebhookFn != nil {
		return s.WebhookFn(ctx, provider, raw, header)
	}
	return nil
}

// OrderByID delegates to the configured function or returns a pending order.
func (s PaymentFacadeStub) OrderByID(ctx context.Context, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return &model.Order{ID: id, Status: model.OrderStatusPending}, nil
}

// Healthy delegates to the configured function or reports healthy.
func (s PaymentFacadeStub) Healthy(ctx context.Context) error {
	if s.HealthyFn != nil {
		return s.HealthyFn(ctx)
	}
	return nil
}

// DispatcherStub counts gateway calls and returns a configurable charge.
type DispatcherStub struct {
	ResolveFn func(model.PaymentMethod, model.Gateway, string) (model.Gateway, error)
	ChargeFn  func(context.Context, *model.Order, string) (*model.ChargeResult, error)
	Charges   atomic.Int64
}

// Resolve mirrors the production precedence for the common cases.
func (s *DispatcherStub) Resolve(method model.PaymentMethod, explicit model.Gateway, redirectBase string) (model.Gateway, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(method, explicit, redirectBase)
	}
	if method == model.PaymentMethodCard {
		return model.GatewayCardProcessor, nil
	}
	return model.GatewayPixDirect, nil
}

// Charge records the call and delegates or returns a canned result.
func (s *DispatcherStub) Charge(ctx context.Context, order *model.Order, redirectBase string) (*model.ChargeResult, error) {
	s.Charges.Add(1)
	if s.ChargeFn != nil {
		return s.ChargeFn(ctx, order, redirectBase)
	}
	return &model.ChargeResult{GatewayReference: "ref-" + order.ID, QRCodeText: "pix-copy"}, nil
}

// ScreenerStub returns a fixed fraud score.
type ScreenerStub struct {
	ScoreValue float64
	Err        error
}

// Score returns the configured score and error.
func (s ScreenerStub) Score(context.Context, string, string) (float64, error) {
	return s.ScoreValue, s.Err
}

// NotifierStub counts delivery notifications.
type NotifierStub struct {
	Calls atomic.Int64
	Err   error
}

// Notify records the call.
func (s *NotifierStub) Notify(context.Context, *model.Order) error {
	s.Calls.Add(1)
	return s.Err
}

// HealthCheckerStub reports the configured health state.
type HealthCheckerStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s HealthCheckerStub) HealthCheck(context.Context) error {
	return s.Err
}
