package gateway

import (
	"context"
	"errors"
	"net/url"
	"testing"

	domainErrors "github.com/sharkpay/checkout/internal/domain/errors"
	"github.com/sharkpay/checkout/internal/domain/model"
)

func TestPixRedirectAdapterBuildsURL(t *testing.T) {
	adapter := NewPixRedirectAdapter("https://pay.example/x")
	order := &model.Order{
		ID:         "ord-7",
		BuyerName:  "Ana Souza",
		BuyerEmail: "ana@example.com",
		BuyerTaxID: "123.456.789-00",
	}

	result, err := adapter.Charge(context.Background(), order)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := url.Parse(result.RedirectURL)
	if err != nil {
		t.Fatalf("redirect url does not parse: %v", err)
	}
	query := parsed.Query()

	if got := query.Get("name"); got != "Ana Souza" {
		t.Errorf("expected decoded name to round-trip, got %q", got)
	}
	if got := query.Get("cpf"); got != "12345678900" {
		t.Errorf("expected digits-only cpf, got %q", got)
	}
	if got := query.Get("external_reference"); got != "ord-7" {
		t.Errorf("expected order id for correlation, got %q", got)
	}
	if result.GatewayReference != "ord-7" {
		t.Errorf("expected order id as reference, got %q", result.GatewayReference)
	}
}

func TestPixRedirectAdapterEncodesName(t *testing.T) {
	adapter := NewPixRedirectAdapter("https://pay.example/x")
	order := &model.Order{ID: "ord-7", BuyerName: "Ana Souza"}

	result, err := adapter.Charge(context.Background(), order)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "name=Ana+Souza"; !containsQueryPair(t, result.RedirectURL, want) {
		t.Errorf("expected %q in %q", want, result.RedirectURL)
	}
}

func containsQueryPair(t *testing.T, rawURL, pair string) bool {
	t.Helper()
	parsed, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	for _, got := range splitQuery(parsed.RawQuery) {
		if got == pair {
			return true
		}
	}
	return false
}

func splitQuery(raw string) []string {
	var pairs []string
	start := 0
	for i := 0; i <= len(raw); i++ {
		if i == len(raw) || raw[i] == '&' {
			pairs = append(pairs, raw[start:i])
			start = i + 1
		}
	}
	return pairs
}

func TestPixRedirectAdapterPreservesExistingQuery(t *testing.T) {
	adapter := NewPixRedirectAdapter("https://pay.example/x?ref=abc")
	result, err := adapter.Charge(context.Background(), &model.Order{ID: "ord-7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, _ := url.Parse(result.RedirectURL)
	if got := parsed.Query().Get("ref"); got != "abc" {
		t.Errorf("expected existing query to survive, got %q", got)
	}
}

func TestPixRedirectAdapterMissingURL(t *testing.T) {
	adapter := NewPixRedirectAdapter("")
	if _, err := adapter.Charge(context.Background(), &model.Order{ID: "ord-7"}); !errors.Is(err, domainErrors.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestPixRedirectAdapterRelativeURL(t *testing.T) {
	adapter := NewPixRedirectAdapter("/checkout/x")
	if _, err := adapter.Charge(context.Background(), &model.Order{ID: "ord-7"}); !errors.Is(err, domainErrors.ErrConfiguration) {
		t.Fatalf("expected configuration error for relative url, got %v", err)
	}
}

func TestDigitsOnly(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"123.456.789-00", "12345678900"},
		{"12345678900", "12345678900"},
		{"", ""},
		{"abc", ""},
	}
	for _, tc := range cases {
		if got := digitsOnly(tc.in); got != tc.want {
			t.Errorf("digitsOnly(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
