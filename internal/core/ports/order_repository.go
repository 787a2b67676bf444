package ports

import (
	"context"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their append-only status history.
//
// Update is a conditional write: it succeeds only if the persisted version
// still matches the aggregate's loaded version, and returns a ConflictError
// when another writer got there first. This is how lost-update races on
// status transitions resolve to exactly one winner.
type OrderRepository interface {
	// Add persists a new order aggregate.
	// A duplicate order number surfaces as a ConflictError so the caller can
	// regenerate the number and retry.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order under optimistic
	// concurrency. Returns ConflictError if the version check fails and
	// ObjectNotFoundError if the order does not exist.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByOrderNumber retrieves an order by its human-readable number.
	GetByOrderNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error)

	// AddHistory appends one immutable status history entry. Must be called
	// in the same transaction as the Order update it records.
	AddHistory(ctx context.Context, entry *order.StatusHistoryEntry) error

	// GetHistory retrieves all history entries for an order in chronological order.
	GetHistory(ctx context.Context, orderID kernel.UUID) ([]*order.StatusHistoryEntry, error)
}
