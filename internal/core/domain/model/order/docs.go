// Package order provides domain entities and business logic for proxy-purchase
// order management. It implements the Order aggregate root with lifecycle
// management and validated state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, properties, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - StatusHistoryEntry: An immutable audit record of every status transition
//   - ProductSnapshot and PriceEstimate value objects
//
// Key business rules:
//   - Orders must have a valid unique identifier, owner, product snapshot, and quantity >= 1
//   - The order number is assigned once at creation and never mutated
//   - Order status follows the fixed workflow: pending_review -> quote_sent ->
//     quote_approved -> payment_pending -> payment_completed -> purchasing ->
//     shipping -> delivered, with cancelled/rejected/failed reachable from any
//     non-terminal state
//   - Orders are never physically deleted; cancellation is a terminal status
package order
