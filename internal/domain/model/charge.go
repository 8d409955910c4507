package model

import "time"

// ChargeResult is the normalized outcome of a successful gateway charge call.
// Client-side fields (card confirmation token, publishable key) are returned to
// the buyer but never persisted; display fields for asynchronous methods are
// stored on the order so status polling can replay them.
type ChargeResult struct {
	GatewayReference string

	// Card: client-side confirmation token and publishable key.
	ClientSecret   string
	PublishableKey string

	// Pix direct: QR image (base64), copy-paste payment string, expiry.
	QRCode     string
	QRCodeText string
	ExpiresAt  *time.Time

	// Pix redirect: fully-formed URL the buyer must be sent to.
	RedirectURL string
}
