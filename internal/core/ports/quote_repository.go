package ports

import (
	"context"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/quote"
)

// QuoteRepository defines the persistence contract for quote aggregates.
//
// The store enforces at-most-one pending quote per order with a partial
// unique index; Add maps that violation to a ConflictError so concurrent
// quote creation from multiple operator sessions stays safe.
type QuoteRepository interface {
	// Add persists a new quote. Returns ConflictError if the order already
	// has a pending quote.
	Add(ctx context.Context, aggregate *quote.Quote) error

	// Update persists a quote resolution. The write is conditional on the
	// persisted approval state still being pending; returns ConflictError
	// if a concurrent resolution won.
	Update(ctx context.Context, aggregate *quote.Quote) error

	// Get retrieves a quote by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*quote.Quote, error)

	// GetLatestForOrder retrieves the most recently created quote for an
	// order, or ObjectNotFoundError if the order has none.
	GetLatestForOrder(ctx context.Context, orderID kernel.UUID) (*quote.Quote, error)

	// ListForOrder retrieves all quotes for an order, newest first.
	ListForOrder(ctx context.Context, orderID kernel.UUID) ([]*quote.Quote, error)
}
