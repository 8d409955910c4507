package dto

import "time"

// CheckoutRequest is the storefront checkout payload. Amount is in major
// currency units; the handler converts it to cents before anything else
// touches it.
type CheckoutRequest struct {
	OrderID        string  `json:"order_id,omitempty"`
	Method         string  `json:"method" binding:"required"`
	Gateway        string  `json:"gateway,omitempty"`
	Amount         float64 `json:"amount" binding:"required"`
	Email          string  `json:"email" binding:"required"`
	Name           string  `json:"name"`
	TaxID          string  `json:"tax_id,omitempty"`
	UTMSource      string  `json:"utm_source,omitempty"`
	CaptchaToken   string  `json:"captcha_token,omitempty"`
	PixRedirectURL string  `json:"pix_redirect_url,omitempty"`
}

// CheckoutResponse carries whatever the buyer needs to complete payment.
// Exactly one of the card, pix-direct, or pix-redirect field groups is set.
type CheckoutResponse struct {
	OrderID        string     `json:"order_id"`
	Status         string     `json:"status"`
	Gateway        string     `json:"gateway"`
	ClientSecret   string     `json:"client_secret,omitempty"`
	PublishableKey string     `json:"publishable_key,omitempty"`
	QRCode         string     `json:"qr_code,omitempty"`
	QRCodeText     string     `json:"qr_code_text,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	RedirectURL    string     `json:"redirect_url,omitempty"`
}

// ErrorResponse wraps a single human-readable error string.
type ErrorResponse struct {
	Error string `json:"error"`
}
