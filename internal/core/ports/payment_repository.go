package ports

import (
	"context"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payment records.
type PaymentRepository interface {
	// Add persists a new payment record.
	Add(ctx context.Context, aggregate *payment.Payment) error

	// Update persists a payment status change. The write is conditional on
	// the persisted status still being the one the change started from;
	// returns ConflictError if a concurrent update won.
	Update(ctx context.Context, aggregate *payment.Payment, fromStatus payment.Status) error

	// Get retrieves a payment by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)

	// GetCompletedForOrder retrieves a completed payment for the order, or
	// ObjectNotFoundError if none exists. Used as the precondition check
	// for the payment_completed transition.
	GetCompletedForOrder(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error)

	// ListForOrder retrieves all payment records for an order, newest first.
	ListForOrder(ctx context.Context, orderID kernel.UUID) ([]*payment.Payment, error)
}
