package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainErrors "github.com/sharkpay/checkout/internal/domain/errors"
	"github.com/sharkpay/checkout/internal/domain/model"
)

func TestPixDirectAdapterChargeSuccess(t *testing.T) {
	expires := time.Now().Add(30 * time.Minute).UTC().Truncate(time.Second)
	var captured pixChargeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/charges" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":             "chg_987",
			"qr_code_base64": "aW1hZ2U=",
			"qr_code_text":   "00020126pix-copy-paste",
			"expires_at":     expires,
		})
	}))
	defer server.Close()

	adapter, err := NewPixDirectAdapter(server.URL, "tok_123", "https://pay.shark.example", time.Second, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order := &model.Order{
		ID:          "ord-9",
		AmountCents: 9700,
		BuyerEmail:  "a@b.com",
		BuyerTaxID:  "123.456.789-00",
	}
	result, err := adapter.Charge(context.Background(), order)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.ExternalReference != "ord-9" {
		t.Errorf("expected order id as external reference, got %q", captured.ExternalReference)
	}
	if captured.NotificationURL != "https://pay.shark.example/webhooks/pix_direct" {
		t.Errorf("unexpected notification url %q", captured.NotificationURL)
	}
	if captured.PayerTaxID != "12345678900" {
		t.Errorf("expected digits-only tax id, got %q", captured.PayerTaxID)
	}
	if result.GatewayReference != "chg_987" {
		t.Errorf("unexpected reference %q", result.GatewayReference)
	}
	if result.QRCodeText != "00020126pix-copy-paste" {
		t.Errorf("unexpected qr text %q", result.QRCodeText)
	}
	if result.ExpiresAt == nil || !result.ExpiresAt.Equal(expires) {
		t.Errorf("unexpected expiry %v", result.ExpiresAt)
	}
}

func TestPixDirectAdapterMissingTokenIsConfigurationError(t *testing.T) {
	adapter, err := NewPixDirectAdapter("https://pix.example", "", "", time.Second, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = adapter.Charge(context.Background(), &model.Order{ID: "ord-1", AmountCents: 100})
	if !errors.Is(err, domainErrors.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestPixDirectAdapterProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "maintenance window"})
	}))
	defer server.Close()

	adapter, _ := NewPixDirectAdapter(server.URL, "tok_123", "", time.Second, testLogger())
	_, err := adapter.Charge(context.Background(), &model.Order{ID: "ord-1", AmountCents: 100})
	if !errors.Is(err, domainErrors.ErrProvider) {
		t.Fatalf("expected transient provider error, got %v", err)
	}
}
