package gateway

import (
	"encoding/json"
	"testing"

	"github.com/sharkpay/checkout/internal/domain/model"
)

func decodePayload(t *testing.T, raw string) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return payload
}

func TestProfileVerifySignature(t *testing.T) {
	p := PixDirectProfile("whsec_123")
	raw := []byte(`{"external_reference":"ord-1","status":"PAID"}`)
	sig := p.Scheme.Sign([]byte("whsec_123"), raw)

	if !p.VerifySignature(raw, sig) {
		t.Fatalf("expected valid signature to verify")
	}
	if p.VerifySignature(raw, "bogus") {
		t.Fatalf("expected bogus signature to fail")
	}
	if !p.Signed() {
		t.Fatalf("expected profile with secret to report signed")
	}
	if PixDirectProfile("").Signed() {
		t.Fatalf("expected profile without secret to report unsigned")
	}
}

func TestProfileExtractReferencePrecedence(t *testing.T) {
	p := CardProcessorProfile("")

	payload := decodePayload(t, `{"metadata":{"order_id":"ord-meta"},"reference":"ord-generic"}`)
	ref, ok := p.ExtractReference(payload)
	if !ok || ref != "ord-meta" {
		t.Fatalf("expected metadata field to win, got %q ok=%v", ref, ok)
	}

	payload = decodePayload(t, `{"reference":"ord-generic"}`)
	ref, ok = p.ExtractReference(payload)
	if !ok || ref != "ord-generic" {
		t.Fatalf("expected fallback to generic reference, got %q ok=%v", ref, ok)
	}

	payload = decodePayload(t, `{"data":{"id":"evt_1"}}`)
	if _, ok = p.ExtractReference(payload); ok {
		t.Fatalf("expected unroutable payload to yield no reference")
	}
}

func TestProfileExtractNestedReference(t *testing.T) {
	p := CardProcessorProfile("")
	payload := decodePayload(t, `{"data":{"metadata":{"order_id":"ord-nested"}}}`)

	ref, ok := p.ExtractReference(payload)
	if !ok || ref != "ord-nested" {
		t.Fatalf("expected nested metadata extraction, got %q ok=%v", ref, ok)
	}
}

func TestProfileMapStatus(t *testing.T) {
	cases := []struct {
		name    string
		profile *Profile
		raw     string
		want    model.OrderStatus
		ok      bool
	}{
		{"pix paid uppercase", PixDirectProfile(""), "PAID", model.OrderStatusPaid, true},
		{"pix approved", PixDirectProfile(""), "approved", model.OrderStatusPaid, true},
		{"pix expired", PixDirectProfile(""), "EXPIRED", model.OrderStatusCanceled, true},
		{"pix refused", PixDirectProfile(""), "refused", model.OrderStatusFailed, true},
		{"pix intermediate", PixDirectProfile(""), "processing", "", false},
		{"card succeeded", CardProcessorProfile(""), "succeeded", model.OrderStatusPaid, true},
		{"card captured", CardProcessorProfile(""), "captured", model.OrderStatusPaid, true},
		{"card failed", CardProcessorProfile(""), "payment_failed", model.OrderStatusFailed, true},
		{"redirect active", PixRedirectProfile(""), "active", model.OrderStatusPaid, true},
		{"redirect refunded", PixRedirectProfile(""), "refunded", model.OrderStatusCanceled, true},
		{"unknown", CardProcessorProfile(""), "requires_action", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.profile.MapStatus(tc.raw)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("MapStatus(%q) = (%q, %v), want (%q, %v)", tc.raw, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestProfileExtractReason(t *testing.T) {
	p := CardProcessorProfile("")
	payload := decodePayload(t, `{"failure_message":"card declined"}`)
	if got := p.ExtractReason(payload); got != "card declined" {
		t.Fatalf("expected provider reason, got %q", got)
	}
	if got := p.ExtractReason(decodePayload(t, `{}`)); got != "" {
		t.Fatalf("expected empty reason, got %q", got)
	}
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry(CardProcessorProfile("a"), PixDirectProfile("b"), PixRedirectProfile("c"))

	if _, ok := r.Lookup("pix_direct"); !ok {
		t.Fatalf("expected pix_direct profile")
	}
	if _, ok := r.Lookup("unknown_provider"); ok {
		t.Fatalf("did not expect unknown provider profile")
	}
}
