package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sharkpay/checkout/internal/domain/model"
)

// Notifier triggers downstream delivery automation after an order is paid.
// The call is best effort: the reconciler logs and ignores any failure, since
// the payment itself already happened.
type Notifier interface {
	Notify(ctx context.Context, order *model.Order) error
}

// HTTPNotifier implements Notifier by posting the order summary to a webhook.
type HTTPNotifier struct {
	endpoint   *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type notification struct {
	OrderID       string     `json:"order_id"`
	BuyerEmail    string     `json:"buyer_email"`
	BuyerName     string     `json:"buyer_name,omitempty"`
	Amount        float64    `json:"amount"`
	PaymentMethod string     `json:"payment_method"`
	UTMSource     string     `json:"utm_source,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

// NewHTTPNotifier creates the delivery webhook client with a bounded timeout.
func NewHTTPNotifier(endpoint string, timeout time.Duration, logger *slog.Logger) (*HTTPNotifier, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse delivery webhook url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("delivery webhook url must be absolute")
	}
	return &HTTPNotifier{
		endpoint:   parsed,
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Notify fires a single outbound call with the paid order's summary.
func (n *HTTPNotifier) Notify(ctx context.Context, order *model.Order) error {
	body, err := json.Marshal(notification{
		OrderID:       order.ID,
		BuyerEmail:    order.BuyerEmail,
		BuyerName:     order.BuyerName,
		Amount:        order.Amount(),
		PaymentMethod: string(order.PaymentMethod),
		UTMSource:     order.UTMSource,
		PaidAt:        order.PaidAt,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("delivery webhook responded %s", resp.Status)
	}

	n.logger.Info("delivery notified", slog.String("order_id", order.ID))
	return nil
}

// Disabled is the no-op notifier used when no delivery webhook is configured.
type Disabled struct{}

// Notify does nothing.
func (Disabled) Notify(context.Context, *model.Order) error {
	return nil
}
