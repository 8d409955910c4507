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

// PixDirectAdapter creates instant Pix charges. The provider calls back on the
// submitted notification URL carrying our order id as external_reference, so
// payment confirmation arrives asynchronously.
type PixDirectAdapter struct {
	baseURL       *url.URL
	apiToken      string
	publicBaseURL string
	httpClient    *http.Client
	logger        *slog.Logger
}

// NewPixDirectAdapter builds the direct Pix adapter.
func NewPixDirectAdapter(baseURL, apiToken, publicBaseURL string, timeout time.Duration, logger *slog.Logger) (*PixDirectAdapter, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse pix api url: %w", err)
	}
	return &PixDirectAdapter{
		baseURL:       parsed,
		apiToken:      apiToken,
		publicBaseURL: publicBaseURL,
		httpClient:    &http.Client{Timeout: timeout},
		logger:        logger,
	}, nil
}

func (a *PixDirectAdapter) Gateway() model.Gateway {
	return model.GatewayPixDirect
}

// Configured reports whether real credentials are present.
func (a *PixDirectAdapter) Configured() bool {
	return credentialConfigured(a.apiToken) && a.baseURL.IsAbs()
}

type pixChargeRequest struct {
	Amount            int64  `json:"amount"`
	ExternalReference string `json:"external_reference"`
	PayerEmail        string `json:"payer_email"`
	PayerName         string `json:"payer_name,omitempty"`
	PayerTaxID        string `json:"payer_tax_id,omitempty"`
	NotificationURL   string `json:"notification_url,omitempty"`
}

type pixChargeResponse struct {
	ID           string     `json:"id"`
	QRCodeBase64 string     `json:"qr_code_base64"`
	QRCodeText   string     `json:"qr_code_text"`
	ExpiresAt    *time.Time `json:"expires_at"`
	Message      string     `json:"message"`
}

// Charge creates a Pix charge and returns the provider's QR payload directly.
func (a *PixDirectAdapter) Charge(ctx context.Context, order *model.Order) (*model.ChargeResult, error) {
	if !a.Configured() {
		return nil, fmt.Errorf("%w: pix provider credentials missing or placeholder", domainErrors.ErrConfiguration)
	}

	payload := pixChargeRequest{
		Amount:            order.AmountCents,
		ExternalReference: order.ID,
		PayerEmail:        order.BuyerEmail,
		PayerName:         order.BuyerName,
		PayerTaxID:        digitsOnly(order.BuyerTaxID),
	}
	if a.publicBaseURL != "" {
		payload.NotificationURL = a.publicBaseURL + "/webhooks/pix_direct"
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encode charge request: %v", domainErrors.ErrProvider, err)
	}

	endpoint := a.baseURL.JoinPath("/v1/charges")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrProvider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrProvider, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domainErrors.ErrProvider, err)
	}

	var decoded pixChargeResponse
	if jsonErr := json.Unmarshal(raw, &decoded); jsonErr != nil && resp.StatusCode < 300 {
		return nil, fmt.Errorf("%w: decode response: %v", domainErrors.ErrProvider, jsonErr)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: pix provider rejected credentials", domainErrors.ErrConfiguration)
	case resp.StatusCode >= 300:
		reason := decoded.Message
		if reason == "" {
			reason = resp.Status
		}
		a.logger.Error("pix charge failed",
			slog.String("order_id", order.ID),
			slog.Int("status", resp.StatusCode),
			slog.String("reason", reason),
		)
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrProvider, reason)
	}

	return &model.ChargeResult{
		GatewayReference: decoded.ID,
		QRCode:           decoded.QRCodeBase64,
		QRCodeText:       decoded.QRCodeText,
		ExpiresAt:        decoded.ExpiresAt,
	}, nil
}
