package dto

import "time"

// StatusResponse is the polling shape used by the checkout widget.
type StatusResponse struct {
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// OrderResponse is the full read-only order snapshot.
type OrderResponse struct {
	OrderID       string     `json:"order_id"`
	Status        string     `json:"status"`
	Amount        float64    `json:"amount"`
	PaymentMethod string     `json:"payment_method"`
	Gateway       string     `json:"gateway"`
	UTMSource     string     `json:"utm_source,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}
