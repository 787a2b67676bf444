package quote

import (
	"fmt"

	"proxybuy/internal/pkg/errs"
)

// ApprovalState represents the user-facing decision sub-state of a quote.
// A quote is created pending and resolves to approved or rejected exactly once.
// Expiry is implicit: a pending quote whose validity deadline has passed is
// treated as expired by the service without a stored state change.
type ApprovalState string

const (
	// ApprovalStatePending means the quote awaits the user's decision.
	ApprovalStatePending ApprovalState = "pending"

	// ApprovalStateApproved means the user accepted the quoted price.
	ApprovalStateApproved ApprovalState = "approved"

	// ApprovalStateRejected means the user declined the quote.
	ApprovalStateRejected ApprovalState = "rejected"
)

var validApprovalStates = map[ApprovalState]struct{}{
	ApprovalStatePending:  {},
	ApprovalStateApproved: {},
	ApprovalStateRejected: {},
}

// ToApprovalState validates a raw approval state string from the store.
func ToApprovalState(s string) (ApprovalState, error) {
	state := ApprovalState(s)
	if _, ok := validApprovalStates[state]; !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("approval state",
			fmt.Errorf("%q is not a known approval state", s))
	}
	return state, nil
}

// Validate returns an error if the state is not one of the defined values.
func (s ApprovalState) Validate() error {
	if _, ok := validApprovalStates[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("approval state",
			fmt.Errorf("%q is not a known approval state", string(s)))
	}
	return nil
}

// String returns the persisted text form of the state.
func (s ApprovalState) String() string {
	return string(s)
}

// IsResolved reports whether the state has left pending.
func (s ApprovalState) IsResolved() bool {
	return s == ApprovalStateApproved || s == ApprovalStateRejected
}
