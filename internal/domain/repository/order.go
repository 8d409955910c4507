package repository

import (
	"context"
	"time"

	"github.com/sharkpay/checkout/internal/domain/model"
)

// OrderRepository describes persistence operations on orders. All status
// mutation goes through either the insert-if-absent upsert or the guarded
// transition; unguarded read-then-write sequences on status are not offered.
type OrderRepository interface {
	// Upsert inserts the order when the id is unknown and returns whether a row
	// was newly created. An existing row is returned untouched, so a retried
	// checkout can never downgrade a paid order back to pending.
	Upsert(ctx context.Context, order *model.Order) (*model.Order, bool, error)

	// GetByID returns the order or domain ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.Order, error)

	// AttachCharge stores the gateway reference and display payload. The
	// reference is immutable: a second attach for the same order is a no-op.
	AttachCharge(ctx context.Context, id string, charge *model.ChargeResult) error

	// TransitionFromPending applies a terminal status only if the persisted
	// status is still pending (compare-and-set). Returns whether the update
	// matched; a miss on an already-terminal order is not an error.
	TransitionFromPending(ctx context.Context, id string, status model.OrderStatus, paidAt *time.Time, message string) (bool, error)
}
