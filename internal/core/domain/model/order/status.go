package order

import (
	"fmt"

	"proxybuy/internal/pkg/errs"
)

// Status represents the lifecycle state of a proxy-purchase order.
// It implements a state machine with a fixed adjacency table so orders always
// follow the business workflow; jumping states is rejected, never coerced.
//
// State transitions:
//
//	pending_review -> quote_sent -> quote_approved -> payment_pending ->
//	payment_completed -> purchasing -> shipping -> delivered
//
// cancelled, rejected, and failed are reachable from every non-terminal state
// and are absorbing: no transition leaves them. delivered is also terminal.
//
// Status is persisted as plain text (the store column is a free-form string),
// so every value read back from the store must pass through ToStatus to be
// validated before use.
type Status string

const (
	// StatusPendingReview is the initial status of a newly submitted request,
	// waiting for an operator to review it and issue a quote.
	StatusPendingReview Status = "pending_review"

	// StatusQuoteSent means an operator has issued a quote and the user is
	// expected to approve or reject it.
	StatusQuoteSent Status = "quote_sent"

	// StatusQuoteApproved means the user approved the most recent quote.
	StatusQuoteApproved Status = "quote_approved"

	// StatusPaymentPending means the user has been asked to pay the quoted total.
	StatusPaymentPending Status = "payment_pending"

	// StatusPaymentCompleted means a payment in completed state exists for the order.
	StatusPaymentCompleted Status = "payment_completed"

	// StatusPurchasing means the operator is buying the product on the source marketplace.
	StatusPurchasing Status = "purchasing"

	// StatusShipping means the purchased product is on its way to the user.
	StatusShipping Status = "shipping"

	// StatusDelivered is the successful terminal status.
	StatusDelivered Status = "delivered"

	// StatusCancelled is the terminal status for orders withdrawn by the user or operator.
	StatusCancelled Status = "cancelled"

	// StatusRejected is the terminal status for requests the operator declined.
	StatusRejected Status = "rejected"

	// StatusFailed is the terminal status for orders that could not be fulfilled.
	StatusFailed Status = "failed"
)

// chain holds the forward edge of the linear fulfillment workflow.
var chain = map[Status]Status{
	StatusPendingReview:    StatusQuoteSent,
	StatusQuoteSent:        StatusQuoteApproved,
	StatusQuoteApproved:    StatusPaymentPending,
	StatusPaymentPending:   StatusPaymentCompleted,
	StatusPaymentCompleted: StatusPurchasing,
	StatusPurchasing:       StatusShipping,
	StatusShipping:         StatusDelivered,
}

var validStatuses = map[Status]struct{}{
	StatusPendingReview:    {},
	StatusQuoteSent:        {},
	StatusQuoteApproved:    {},
	StatusPaymentPending:   {},
	StatusPaymentCompleted: {},
	StatusPurchasing:       {},
	StatusShipping:         {},
	StatusDelivered:        {},
	StatusCancelled:        {},
	StatusRejected:         {},
	StatusFailed:           {},
}

var terminalStatuses = map[Status]struct{}{
	StatusDelivered: {},
	StatusCancelled: {},
	StatusRejected:  {},
	StatusFailed:    {},
}

// sideBranches are the terminal statuses reachable from any non-terminal state.
var sideBranches = map[Status]struct{}{
	StatusCancelled: {},
	StatusRejected:  {},
	StatusFailed:    {},
}

// ToStatus validates a raw status string read from the store or from a caller.
// Unknown values are rejected as a data-integrity error, never passed through.
func ToStatus(s string) (Status, error) {
	status := Status(s)
	if _, ok := validStatuses[status]; !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a known order status", s))
	}
	return status, nil
}

// Statuses returns all valid status values.
func Statuses() []Status {
	result := make([]Status, 0, len(validStatuses))
	for status := range validStatuses {
		result = append(result, status)
	}
	return result
}

// Validate returns an error if the status is not one of the defined values.
func (s Status) Validate() error {
	if _, ok := validStatuses[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a known order status", string(s)))
	}
	return nil
}

// String returns the persisted text form of the status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no transition may leave this status.
func (s Status) IsTerminal() bool {
	_, ok := terminalStatuses[s]
	return ok
}

// CanTransitionTo reports whether the adjacency table permits moving from
// this status to target. Terminal statuses are absorbing, and self-loops
// are not modeled.
func (s Status) CanTransitionTo(target Status) bool {
	if s.Validate() != nil || target.Validate() != nil {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	if chain[s] == target {
		return true
	}
	_, side := sideBranches[target]
	return side
}

// Transition returns the target status if the move is permitted.
// Rejected moves return an InvalidTransitionError carrying both endpoints.
func (s Status) Transition(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}
	if !s.CanTransitionTo(target) {
		return "", errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return target, nil
}
