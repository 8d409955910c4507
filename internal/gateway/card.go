package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	domainErrors "github.com/sharkpay/checkout/internal/domain/errors"
	"github.com/sharkpay/checkout/internal/domain/model"
)

// CardAdapter creates payment intents on the card processor. The buyer
// completes confirmation client-side with the returned secret; the order is
// only marked paid once the processor's webhook arrives.
type CardAdapter struct {
	baseURL        *url.URL
	secretKey      string
	publishableKey string
	httpClient     *http.Client
	logger         *slog.Logger
}

// NewCardAdapter builds the card adapter. Credentials are verified lazily at
// charge time so a deploy without card support can still serve Pix checkouts.
func NewCardAdapter(baseURL, secretKey, publishableKey string, timeout time.Duration, logger *slog.Logger) (*CardAdapter, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse card api url: %w", err)
	}
	return &CardAdapter{
		baseURL:        parsed,
		secretKey:      secretKey,
		publishableKey: publishableKey,
		httpClient:     &http.Client{Timeout: timeout},
		logger:         logger,
	}, nil
}

func (a *CardAdapter) Gateway() model.Gateway {
	return model.GatewayCardProcessor
}

// Configured reports whether real credentials are present.
func (a *CardAdapter) Configured() bool {
	return credentialConfigured(a.secretKey) && credentialConfigured(a.publishableKey) && a.baseURL.IsAbs()
}

type cardChargeRequest struct {
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	ReceiptEmail string            `json:"receipt_email"`
	Metadata     map[string]string `json:"metadata"`
}

type cardChargeResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Error        struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Charge creates a payment intent for the order's amount in minor units.
func (a *CardAdapter) Charge(ctx context.Context, order *model.Order) (*model.ChargeResult, error) {
	if !a.Configured() {
		return nil, fmt.Errorf("%w: card processor credentials missing or placeholder", domainErrors.ErrConfiguration)
	}

	payload := cardChargeRequest{
		Amount:       order.AmountCents,
		Currency:     "brl",
		ReceiptEmail: order.BuyerEmail,
		Metadata: map[string]string{
			"order_id":   order.ID,
			"utm_source": order.UTMSource,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encode charge request: %v", domainErrors.ErrProvider, err)
	}

	endpoint := a.baseURL.JoinPath("/v1/payment_intents")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrProvider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.secretKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrProvider, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domainErrors.ErrProvider, err)
	}

	var decoded cardChargeResponse
	if jsonErr := json.Unmarshal(raw, &decoded); jsonErr != nil && resp.StatusCode < 300 {
		return nil, fmt.Errorf("%w: decode response: %v", domainErrors.ErrProvider, jsonErr)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: card processor rejected credentials", domainErrors.ErrConfiguration)
	case resp.StatusCode >= 300:
		reason := decoded.Error.Message
		if reason == "" {
			reason = resp.Status
		}
		a.logger.Error("card charge failed",
			slog.String("order_id", order.ID),
			slog.Int("status", resp.StatusCode),
			slog.String("reason", reason),
		)
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrProvider, reason)
	}

	return &model.ChargeResult{
		GatewayReference: decoded.ID,
		ClientSecret:     decoded.ClientSecret,
		PublishableKey:   a.publishableKey,
	}, nil
}
