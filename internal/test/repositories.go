package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/sharkpay/checkout/internal/domain/errors"
	"github.com/sharkpay/checkout/internal/domain/model"
)

// OrderRepositoryStub keeps orders in-memory and mimics the guarded
// transition semantics of the real store.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	Orders map[string]*model.Order
	Err    error
}

// NewOrderRepositoryStub constructs the stub with an initialized map.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[string]*model.Order)}
}

// Upsert inserts the order or returns the already stored row untouched.
func (s *OrderRepositoryStub) Upsert(ctx context.Context, order *model.Order) (*model.Order, bool, error) {
	if s.Err != nil {
		return nil, false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.Orders[order.ID]; ok {
		copied := *existing
		return &copied, false, nil
	}
	copied := *order
	copied.CreatedAt = time.Now().UTC()
	s.Orders[order.ID] = &copied
	result := copied
	return &result, true, nil
}

// GetByID returns the stored order or domain ErrNotFound.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if order, ok := s.Orders[id]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// AttachCharge records gateway output on the order once.
func (s *OrderRepositoryStub) AttachCharge(ctx context.Context, id string, charge *model.ChargeResult) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[id]
	if !ok || order.GatewayReference != "" {
		return nil
	}
	order.GatewayReference = charge.GatewayReference
	order.QRCode = charge.QRCode
	order.QRCodeText = charge.QRCodeText
	order.RedirectURL = charge.RedirectURL
	order.ExpiresAt = charge.ExpiresAt
	return nil
}

// TransitionFromPending applies the status only when the order is pending.
func (s *OrderRepositoryStub) TransitionFromPending(ctx context.Context, id string, status model.OrderStatus, paidAt *time.Time, message string) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.Orders[id]
	if !ok || order.Status != model.OrderStatusPending {
		return false, nil
	}
	order.Status = status
	order.PaidAt = paidAt
	order.ErrorMessage = message
	return true, nil
}
