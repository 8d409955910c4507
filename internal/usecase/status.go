package usecase

import (
	"context"

	"github.com/sharkpay/checkout/internal/domain/model"
	"github.com/sharkpay/checkout/internal/domain/repository"
)

// StatusUseCase serves order lookups for the polling checkout widget.
type StatusUseCase struct {
	orders repository.OrderRepository
}

// NewStatusUseCase constructs StatusUseCase.
func NewStatusUseCase(orders repository.OrderRepository) *StatusUseCase {
	return &StatusUseCase{orders: orders}
}

// Get returns the order or domain ErrNotFound.
func (u *StatusUseCase) Get(ctx context.Context, id string) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}
