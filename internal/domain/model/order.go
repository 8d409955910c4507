package model

import "time"

// OrderStatus describes the checkout lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "pending"
	OrderStatusPaid         OrderStatus = "paid"
	OrderStatusFailed       OrderStatus = "failed"
	OrderStatusBlockedFraud OrderStatus = "blocked_fraud"
	OrderStatusCanceled     OrderStatus = "canceled"
)

// Terminal reports whether no further transition may leave the status.
func (s OrderStatus) Terminal() bool {
	switch s {
	case OrderStatusPaid, OrderStatusFailed, OrderStatusBlockedFraud, OrderStatusCanceled:
		return true
	}
	return false
}

// PaymentMethod identifies how the buyer pays.
type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodPix  PaymentMethod = "pix"
)

// Valid reports whether the method is one of the accepted payment rails.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCard || m == PaymentMethodPix
}

// Gateway identifies the external payment provider handling an order.
type Gateway string

const (
	GatewayCardProcessor Gateway = "card_processor"
	GatewayPixDirect     Gateway = "pix_direct"
	GatewayPixRedirect   Gateway = "pix_redirect"
)

// Order is a single checkout attempt: one amount, one buyer, one payment path.
// Amounts are kept in currency minor units so x100 conversions stay exact.
type Order struct {
	ID               string
	Status           OrderStatus
	AmountCents      int64
	BuyerEmail       string
	BuyerName        string
	BuyerTaxID       string
	PaymentMethod    PaymentMethod
	Gateway          Gateway
	GatewayReference string
	UTMSource        string
	QRCode           string
	QRCodeText       string
	RedirectURL      string
	ExpiresAt        *time.Time
	PaidAt           *time.Time
	ErrorMessage     string
	CreatedAt        time.Time
}

// Amount returns the order total in currency major units.
func (o *Order) Amount() float64 {
	return float64(o.AmountCents) / 100
}
