package handlers

import (
	"context"
	"net/http"

	"github.com/sharkpay/checkout/internal/domain/model"
	"github.com/sharkpay/checkout/internal/usecase"
)

// PaymentFacade aggregates the operations used across handlers.
type PaymentFacade interface {
	CreateOrder(ctx context.Context, req usecase.CheckoutRequest) (*usecase.CheckoutResult, error)
	HandleWebhook(ctx context.Context, provider string, raw []byte, header http.Header) error
	OrderByID(ctx context.Context, id string) (*model.Order, error)
	Healthy(ctx context.Context) error
}
