package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	domainErrors "github.com/sharkpay/checkout/internal/domain/errors"
	"github.com/sharkpay/checkout/internal/domain/model"
	"github.com/sharkpay/checkout/internal/domain/repository"
	"github.com/sharkpay/checkout/internal/gateway"
)

// Notifier exposes the subset of the delivery collaborator the reconciler
// needs after a paid transition.
type Notifier interface {
	Notify(ctx context.Context, order *model.Order) error
}

// ReconcileUseCase applies provider webhook notifications to the order state
// machine. Authentication happens over the raw body before any parsing; the
// guarded transition in the store is the idempotency backbone, so duplicate
// and out-of-order deliveries are acknowledged no-ops.
type ReconcileUseCase struct {
	orders        repository.OrderRepository
	profiles      *gateway.Registry
	notifier      Notifier
	allowUnsigned bool
	logger        *slog.Logger
}

// NewReconcileUseCase constructs ReconcileUseCase.
func NewReconcileUseCase(orders repository.OrderRepository, profiles *gateway.Registry, notifier Notifier, allowUnsigned bool, logger *slog.Logger) *ReconcileUseCase {
	return &ReconcileUseCase{
		orders:        orders,
		profiles:      profiles,
		notifier:      notifier,
		allowUnsigned: allowUnsigned,
		logger:        logger,
	}
}

// Handle processes one provider notification. A nil return means the webhook
// must be acknowledged, whether or not it changed anything.
func (u *ReconcileUseCase) Handle(ctx context.Context, provider string, raw []byte, header http.Header) error {
	profile, ok := u.profiles.Lookup(provider)
	if !ok {
		return fmt.Errorf("%w: provider %q", domainErrors.ErrNotFound, provider)
	}

	if profile.Signed() {
		supplied := header.Get(profile.Scheme.Header)
		if !profile.VerifySignature(raw, supplied) {
			return fmt.Errorf("%w: provider %q", domainErrors.ErrAuthentication, provider)
		}
	} else {
		if !u.allowUnsigned {
			return fmt.Errorf("%w: provider %q has no signing secret configured", domainErrors.ErrAuthentication, provider)
		}
		u.logger.Warn("accepting unsigned webhook", slog.String("provider", provider))
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		// Authenticated but unparseable. Retrying will not help, so ack.
		u.logger.Warn("undecodable webhook payload", slog.String("provider", provider), slog.String("error", err.Error()))
		return nil
	}

	orderID, ok := profile.ExtractReference(payload)
	if !ok {
		u.logger.Info("unroutable webhook, no order reference", slog.String("provider", provider))
		return nil
	}

	rawStatus, ok := profile.ExtractStatus(payload)
	if !ok {
		u.logger.Info("webhook without status", slog.String("provider", provider), slog.String("order_id", orderID))
		return nil
	}

	status, actionable := profile.MapStatus(rawStatus)
	if !actionable {
		u.logger.Info("non-actionable webhook status",
			slog.String("provider", provider),
			slog.String("order_id", orderID),
			slog.String("status", rawStatus),
		)
		return nil
	}

	var (
		paidAt  *time.Time
		message string
	)
	if status == model.OrderStatusPaid {
		now := time.Now().UTC()
		paidAt = &now
	} else {
		message = profile.ExtractReason(payload)
		if message == "" {
			message = "provider reported " + rawStatus
		}
	}

	applied, err := u.orders.TransitionFromPending(ctx, orderID, status, paidAt, message)
	if err != nil {
		return err
	}
	if !applied {
		u.logger.Info("webhook replay for settled order", slog.String("provider", provider), slog.String("order_id", orderID))
		return nil
	}

	u.logger.Info("order transitioned",
		slog.String("provider", provider),
		slog.String("order_id", orderID),
		slog.String("status", string(status)),
	)

	if status == model.OrderStatusPaid {
		u.notifyPaid(ctx, orderID)
	}
	return nil
}

// notifyPaid fires the delivery webhook once per paid transition. Failures
// are swallowed: the payment already happened and the provider must still
// receive an acknowledgment.
func (u *ReconcileUseCase) notifyPaid(ctx context.Context, orderID string) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		u.logger.Error("load paid order for delivery failed", slog.String("order_id", orderID), slog.String("error", err.Error()))
		return
	}
	if err := u.notifier.Notify(ctx, order); err != nil {
		u.logger.Error("delivery notification failed", slog.String("order_id", orderID), slog.String("error", err.Error()))
	}
}
