package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	domainErrors "github.com/sharkpay/checkout/internal/domain/errors"
	"github.com/sharkpay/checkout/internal/domain/model"
	"github.com/sharkpay/checkout/internal/domain/repository"
)

// Screener exposes the subset of the fraud screening collaborator the
// checkout flow needs.
type Screener interface {
	Score(ctx context.Context, email, token string) (float64, error)
}

// ChargeDispatcher resolves and invokes gateway adapters.
type ChargeDispatcher interface {
	Resolve(method model.PaymentMethod, explicit model.Gateway, redirectBase string) (model.Gateway, error)
	Charge(ctx context.Context, order *model.Order, redirectBase string) (*model.ChargeResult, error)
}

// CheckoutRequest is a validated checkout attempt. Amounts are already in
// minor units by the time a request reaches the use case.
type CheckoutRequest struct {
	OrderID        string
	Method         model.PaymentMethod
	Gateway        model.Gateway
	AmountCents    int64
	Email          string
	Name           string
	TaxID          string
	UTMSource      string
	CaptchaToken   string
	PixRedirectURL string
}

// CheckoutResult carries whatever the buyer needs to complete payment.
type CheckoutResult struct {
	Order  *model.Order
	Charge *model.ChargeResult
}

// CheckoutUseCase creates orders and dispatches them to the right gateway.
type CheckoutUseCase struct {
	orders     repository.OrderRepository
	dispatcher ChargeDispatcher
	screener   Screener
	minScore   float64
	logger     *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(orders repository.OrderRepository, dispatcher ChargeDispatcher, screener Screener, minScore float64, logger *slog.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{
		orders:     orders,
		dispatcher: dispatcher,
		screener:   screener,
		minScore:   minScore,
		logger:     logger,
	}
}

// CreateOrder validates the request, runs fraud screening, persists the order
// in pending state, and invokes exactly one gateway adapter.
func (u *CheckoutUseCase) CreateOrder(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if err := ValidateCheckout(&req); err != nil {
		return nil, err
	}

	gw, err := u.dispatcher.Resolve(req.Method, req.Gateway, req.PixRedirectURL)
	if err != nil {
		return nil, err
	}

	if req.OrderID == "" {
		req.OrderID = uuid.NewString()
	}

	order := &model.Order{
		ID:            req.OrderID,
		Status:        model.OrderStatusPending,
		AmountCents:   req.AmountCents,
		BuyerEmail:    req.Email,
		BuyerName:     req.Name,
		BuyerTaxID:    req.TaxID,
		PaymentMethod: req.Method,
		Gateway:       gw,
		UTMSource:     req.UTMSource,
	}

	if blocked, err := u.screen(ctx, &req); err != nil {
		return nil, err
	} else if blocked {
		order.Status = model.OrderStatusBlockedFraud
		order.ErrorMessage = "screening score below threshold"
		if _, _, err := u.orders.Upsert(ctx, order); err != nil {
			u.logger.Error("persist blocked order failed", slog.String("order_id", order.ID), slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("%w: order %s", domainErrors.ErrFraudBlocked, order.ID)
	}

	persisted, created, err := u.orders.Upsert(ctx, order)
	if err != nil {
		return nil, err
	}

	// A retried checkout replays the stored outcome unless the previous
	// attempt died before reaching the gateway, in which case the charge is
	// attempted again against the same pending row.
	if !created && (persisted.Status != model.OrderStatusPending || persisted.GatewayReference != "") {
		return u.replay(persisted)
	}

	charge, err := u.dispatcher.Charge(ctx, persisted, req.PixRedirectURL)
	if err != nil {
		// Best effort: a failed status write must never mask the charge error.
		if _, markErr := u.orders.TransitionFromPending(ctx, persisted.ID, model.OrderStatusFailed, nil, err.Error()); markErr != nil {
			u.logger.Error("mark order failed errored", slog.String("order_id", persisted.ID), slog.String("error", markErr.Error()))
		}
		return nil, err
	}

	if err := u.orders.AttachCharge(ctx, persisted.ID, charge); err != nil {
		// The charge exists and webhooks correlate by order id, so the
		// checkout still succeeds. The gap is logged for reconciliation.
		u.logger.Error("attach charge failed", slog.String("order_id", persisted.ID), slog.String("error", err.Error()))
	}

	persisted.GatewayReference = charge.GatewayReference
	persisted.QRCode = charge.QRCode
	persisted.QRCodeText = charge.QRCodeText
	persisted.RedirectURL = charge.RedirectURL
	persisted.ExpiresAt = charge.ExpiresAt

	return &CheckoutResult{Order: persisted, Charge: charge}, nil
}

// screen reports whether the attempt must be blocked. Screening outages fail
// open: blocking legitimate sales on a third-party outage is worse than
// letting a risky one through.
func (u *CheckoutUseCase) screen(ctx context.Context, req *CheckoutRequest) (bool, error) {
	if u.screener == nil {
		return false, nil
	}
	score, err := u.screener.Score(ctx, req.Email, req.CaptchaToken)
	if err != nil {
		u.logger.Warn("fraud screening unavailable, failing open", slog.String("error", err.Error()))
		return false, nil
	}
	return score < u.minScore, nil
}

// replay answers a retried checkout with the already persisted outcome
// instead of charging the gateway a second time.
func (u *CheckoutUseCase) replay(order *model.Order) (*CheckoutResult, error) {
	if order.Status == model.OrderStatusBlockedFraud {
		return nil, fmt.Errorf("%w: order %s", domainErrors.ErrFraudBlocked, order.ID)
	}
	if order.Status == model.OrderStatusFailed {
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrProvider, order.ErrorMessage)
	}
	return &CheckoutResult{
		Order: order,
		Charge: &model.ChargeResult{
			GatewayReference: order.GatewayReference,
			QRCode:           order.QRCode,
			QRCodeText:       order.QRCodeText,
			RedirectURL:      order.RedirectURL,
			ExpiresAt:        order.ExpiresAt,
		},
	}, nil
}
