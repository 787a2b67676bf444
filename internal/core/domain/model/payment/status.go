package payment

import (
	"fmt"

	"proxybuy/internal/pkg/errs"
)

// Status represents the state of a payment record. It only moves forward:
//
//	pending -> completed | failed
//	completed -> refunded
//
// No other transitions are valid.
type Status string

const (
	// StatusPending means the payment was initiated but the gateway has not confirmed it.
	StatusPending Status = "pending"

	// StatusCompleted means the gateway confirmed the payment.
	StatusCompleted Status = "completed"

	// StatusFailed means the gateway declined or the payment otherwise failed.
	StatusFailed Status = "failed"

	// StatusRefunded means a completed payment was refunded.
	StatusRefunded Status = "refunded"
)

var validStatuses = map[Status]struct{}{
	StatusPending:   {},
	StatusCompleted: {},
	StatusFailed:    {},
	StatusRefunded:  {},
}

// forward holds the permitted forward edges.
var forward = map[Status]map[Status]struct{}{
	StatusPending:   {StatusCompleted: {}, StatusFailed: {}},
	StatusCompleted: {StatusRefunded: {}},
}

// ToStatus validates a raw payment status string from the store.
func ToStatus(s string) (Status, error) {
	status := Status(s)
	if _, ok := validStatuses[status]; !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%q is not a known payment status", s))
	}
	return status, nil
}

// Validate returns an error if the status is not one of the defined values.
func (s Status) Validate() error {
	if _, ok := validStatuses[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%q is not a known payment status", string(s)))
	}
	return nil
}

// String returns the persisted text form of the status.
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether the move is a permitted forward edge.
func (s Status) CanTransitionTo(target Status) bool {
	_, ok := forward[s][target]
	return ok
}

// Transition returns the target status if the forward-only rule permits it.
func (s Status) Transition(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}
	if !s.CanTransitionTo(target) {
		return "", errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return target, nil
}
