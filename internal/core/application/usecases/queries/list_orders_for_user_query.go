package queries

import (
	"errors"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/order"
	"proxybuy/internal/pkg/errs"
	"proxybuy/internal/pkg/guard"
)

var ErrListOrdersForUserQueryIsNotConstructed = errors.New(
	"ListOrdersForUserQuery must be created via NewListOrdersForUserQuery constructor",
)

const maxPageSize = 100

// ListOrdersForUserQuery retrieves a page of one user's orders, newest first,
// optionally filtered by status.
type ListOrdersForUserQuery struct {
	userID kernel.UUID
	status *order.Status
	limit  int
	offset int

	guard guard.ConstructorGuard
}

// NewListOrdersForUserQuery creates a query for a user's order list.
// A nil status means no filter. Limit must be between 1 and 100.
func NewListOrdersForUserQuery(
	userID kernel.UUID,
	status *order.Status,
	limit int,
	offset int,
) (ListOrdersForUserQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListOrdersForUserQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersForUserQuery{}, err
		}
	}
	if limit < 1 || limit > maxPageSize {
		return ListOrdersForUserQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxPageSize)
	}
	if offset < 0 {
		return ListOrdersForUserQuery{}, errs.NewValueIsInvalidError("offset")
	}

	return ListOrdersForUserQuery{
		userID: userID,
		status: status,
		limit:  limit,
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersForUserQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersForUserQueryIsNotConstructed)
}

// UserID returns the owning user's identifier.
func (q ListOrdersForUserQuery) UserID() kernel.UUID {
	return q.userID
}

// Status returns the status filter, or nil for all statuses.
func (q ListOrdersForUserQuery) Status() *order.Status {
	return q.status
}

// Limit returns the page size.
func (q ListOrdersForUserQuery) Limit() int {
	return q.limit
}

// Offset returns the page offset.
func (q ListOrdersForUserQuery) Offset() int {
	return q.offset
}
