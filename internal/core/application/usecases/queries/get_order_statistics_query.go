package queries

import (
	"errors"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/pkg/guard"
)

var ErrGetOrderStatisticsQueryIsNotConstructed = errors.New(
	"GetOrderStatisticsQuery must be created via NewGetOrderStatisticsQuery constructor",
)

// GetOrderStatisticsQuery retrieves bucketed order counts, either for one
// user (the "my orders" summary strip) or across all users (operator
// dashboard) when userID is nil.
type GetOrderStatisticsQuery struct {
	userID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderStatisticsQuery creates a statistics query. A nil userID counts
// orders across all users.
func NewGetOrderStatisticsQuery(userID *kernel.UUID) (GetOrderStatisticsQuery, error) {
	if userID != nil {
		if err := userID.Validate(); err != nil {
			return GetOrderStatisticsQuery{}, err
		}
	}

	return GetOrderStatisticsQuery{
		userID: userID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatisticsQueryIsNotConstructed)
}

// UserID returns the user filter, or nil for all users.
func (q GetOrderStatisticsQuery) UserID() *kernel.UUID {
	return q.userID
}

// GetOrderStatisticsQueryResponse holds the bucketed counts. Buckets are
// derived from current statuses only: orders before payment count as
// pending, paid and in-fulfillment orders as processing, delivered as
// completed, and every terminal failure branch as cancelled.
type GetOrderStatisticsQueryResponse struct {
	Total      int
	Pending    int
	Processing int
	Completed  int
	Cancelled  int
}
