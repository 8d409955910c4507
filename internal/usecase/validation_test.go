package usecase

import (
	"errors"
	"testing"

	domainErrors "github.com/sharkpay/checkout/internal/domain/errors"
	"github.com/sharkpay/checkout/internal/domain/model"
)

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{97.00, 9700},
		{19.99, 1999},
		{0.01, 1},
		{10.005, 1001},
		{1234.56, 123456},
	}
	for _, tc := range cases {
		if got := MinorUnits(tc.amount); got != tc.want {
			t.Errorf("MinorUnits(%v) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}

func TestValidateCheckout(t *testing.T) {
	valid := CheckoutRequest{
		Method:      model.PaymentMethodPix,
		AmountCents: 9700,
		Email:       "a@b.com",
	}

	cases := []struct {
		name   string
		mutate func(*CheckoutRequest)
		valid  bool
	}{
		{"valid pix", func(*CheckoutRequest) {}, true},
		{"valid card", func(r *CheckoutRequest) { r.Method = model.PaymentMethodCard }, true},
		{"explicit gateway", func(r *CheckoutRequest) { r.Gateway = model.GatewayPixDirect }, true},
		{"bad method", func(r *CheckoutRequest) { r.Method = "boleto" }, false},
		{"zero amount", func(r *CheckoutRequest) { r.AmountCents = 0 }, false},
		{"negative amount", func(r *CheckoutRequest) { r.AmountCents = -100 }, false},
		{"empty email", func(r *CheckoutRequest) { r.Email = "" }, false},
		{"email without at", func(r *CheckoutRequest) { r.Email = "nope" }, false},
		{"unknown gateway", func(r *CheckoutRequest) { r.Gateway = "mystery" }, false},
		{"card with pix gateway", func(r *CheckoutRequest) {
			r.Method = model.PaymentMethodCard
			r.Gateway = model.GatewayPixDirect
		}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			err := ValidateCheckout(&req)
			if tc.valid && err != nil {
				t.Fatalf("expected valid request, got %v", err)
			}
			if !tc.valid {
				if !errors.Is(err, domainErrors.ErrValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
			}
		})
	}
}
