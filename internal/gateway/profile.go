package gateway

import (
	"strings"

	"github.com/sharkpay/checkout/internal/domain/model"
	"github.com/sharkpay/checkout/internal/pkg/signature"
)

// Profile describes one provider's webhook dialect: its signature scheme, the
// ordered list of payload fields that may carry our order id, and the status
// vocabulary it uses. Providers are inconsistent about all three, so each gets
// a data-driven profile instead of its own handler.
type Profile struct {
	Provider string
	Scheme   signature.Scheme
	Secret   string

	// ReferenceFields are dot-paths tried in order when extracting the order id.
	ReferenceFields []string
	// StatusFields are dot-paths tried in order when extracting the raw status.
	StatusFields []string
	// ReasonFields are dot-paths tried in order for a failure explanation.
	ReasonFields []string

	// PaidStatuses map to canonical paid; TerminalStatuses map to failed or
	// canceled. Anything else is a non-actionable intermediate status.
	PaidStatuses     []string
	TerminalStatuses map[string]model.OrderStatus
}

// Signed reports whether a signing secret is configured for the provider.
func (p *Profile) Signed() bool {
	return p.Secret != ""
}

// VerifySignature recomputes the signature over the raw body and compares it
// in constant time against the supplied header value.
func (p *Profile) VerifySignature(raw []byte, header string) bool {
	return p.Scheme.Verify([]byte(p.Secret), raw, header)
}

// ExtractReference pulls the order correlation key out of the payload.
func (p *Profile) ExtractReference(payload map[string]any) (string, bool) {
	return firstString(payload, p.ReferenceFields)
}

// ExtractStatus pulls the provider's raw status string out of the payload.
func (p *Profile) ExtractStatus(payload map[string]any) (string, bool) {
	return firstString(payload, p.StatusFields)
}

// ExtractReason returns the provider's stated failure reason, if any.
func (p *Profile) ExtractReason(payload map[string]any) string {
	reason, _ := firstString(payload, p.ReasonFields)
	return reason
}

// MapStatus translates the provider's vocabulary into the canonical status.
// The second return is false for intermediate statuses such as "processing".
func (p *Profile) MapStatus(raw string) (model.OrderStatus, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for _, paid := range p.PaidStatuses {
		if normalized == strings.ToLower(paid) {
			return model.OrderStatusPaid, true
		}
	}
	for terminal, canonical := range p.TerminalStatuses {
		if normalized == strings.ToLower(terminal) {
			return canonical, true
		}
	}
	return "", false
}

// firstString walks dot-paths through nested JSON objects and returns the
// first non-empty string (or number rendered as string) it finds.
func firstString(payload map[string]any, paths []string) (string, bool) {
	for _, path := range paths {
		node := any(payload)
		found := true
		for _, segment := range strings.Split(path, ".") {
			obj, ok := node.(map[string]any)
			if !ok {
				found = false
				break
			}
			node, ok = obj[segment]
			if !ok {
				found = false
				break
			}
		}
		if !found {
			continue
		}
		if s, ok := node.(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// Registry holds the known provider profiles keyed by provider id.
type Registry struct {
	profiles map[string]*Profile
}

// NewRegistry builds a registry from explicit profiles.
func NewRegistry(profiles ...*Profile) *Registry {
	m := make(map[string]*Profile, len(profiles))
	for _, p := range profiles {
		m[p.Provider] = p
	}
	return &Registry{profiles: m}
}

// Lookup returns the profile for a provider id.
func (r *Registry) Lookup(provider string) (*Profile, bool) {
	p, ok := r.profiles[provider]
	return p, ok
}

// CardProcessorProfile describes the card processor's webhook dialect.
func CardProcessorProfile(secret string) *Profile {
	return &Profile{
		Provider:        string(model.GatewayCardProcessor),
		Scheme:          signature.Scheme{Header: "X-Card-Signature", Prefix: "sha256="},
		Secret:          secret,
		ReferenceFields: []string{"metadata.order_id", "data.metadata.order_id", "external_reference", "reference"},
		StatusFields:    []string{"status", "data.status"},
		ReasonFields:    []string{"failure_message", "data.failure_message", "reason"},
		PaidStatuses:    []string{"succeeded", "captured", "paid"},
		TerminalStatuses: map[string]model.OrderStatus{
			"payment_failed": model.OrderStatusFailed,
			"failed":         model.OrderStatusFailed,
			"canceled":       model.OrderStatusCanceled,
		},
	}
}

// PixDirectProfile describes the direct Pix provider's webhook dialect.
func PixDirectProfile(secret string) *Profile {
	return &Profile{
		Provider:        string(model.GatewayPixDirect),
		Scheme:          signature.Scheme{Header: "X-Signature"},
		Secret:          secret,
		ReferenceFields: []string{"external_reference", "data.external_reference", "reference"},
		StatusFields:    []string{"status", "data.status"},
		ReasonFields:    []string{"status_detail", "reason"},
		PaidStatuses:    []string{"paid", "approved", "confirmed"},
		TerminalStatuses: map[string]model.OrderStatus{
			"refused":   model.OrderStatusFailed,
			"expired":   model.OrderStatusCanceled,
			"cancelled": model.OrderStatusCanceled,
			"canceled":  model.OrderStatusCanceled,
		},
	}
}

// PixRedirectProfile describes the redirect-style Pix provider's dialect.
func PixRedirectProfile(secret string) *Profile {
	return &Profile{
		Provider:        string(model.GatewayPixRedirect),
		Scheme:          signature.Scheme{Header: "X-Webhook-Signature", Prefix: "sha256="},
		Secret:          secret,
		ReferenceFields: []string{"external_reference", "metadata.order_id", "reference"},
		StatusFields:    []string{"status", "event"},
		ReasonFields:    []string{"reason"},
		PaidStatuses:    []string{"approved", "active", "paid"},
		TerminalStatuses: map[string]model.OrderStatus{
			"refunded":   model.OrderStatusCanceled,
			"canceled":   model.OrderStatusCanceled,
			"chargeback": model.OrderStatusFailed,
		},
	}
}
