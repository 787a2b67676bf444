// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// and persistence. Every accepted status transition appends exactly one status
// history entry in the same transaction as the order update.
package commands

import (
	"context"

	"proxybuy/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// QuoteRepoFactory provides access to the quote repository within a transaction.
	QuoteRepoFactory interface {
		QuoteRepository() ports.QuoteRepository
	}

	// PaymentRepoFactory provides access to the payment repository within a transaction.
	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OrderQuoteUoW manages transactions spanning order and quote aggregates,
	// e.g. issuing a quote and moving the order to quote_sent atomically.
	OrderQuoteUoW interface {
		TxManager
		OrderRepoFactory
		QuoteRepoFactory
	}

	// OrderQuoteUoWFactory creates new order+quote unit of work instances.
	OrderQuoteUoWFactory interface {
		Create() OrderQuoteUoW
	}

	// OrderPaymentUoW manages transactions spanning order and payment aggregates.
	OrderPaymentUoW interface {
		TxManager
		OrderRepoFactory
		PaymentRepoFactory
	}

	// OrderPaymentUoWFactory creates new order+payment unit of work instances.
	OrderPaymentUoWFactory interface {
		Create() OrderPaymentUoW
	}

	// UoW manages transactions across all three aggregates. Used by commands
	// whose preconditions span quotes and payments, such as status transitions.
	UoW interface {
		TxManager
		OrderRepoFactory
		QuoteRepoFactory
		PaymentRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
