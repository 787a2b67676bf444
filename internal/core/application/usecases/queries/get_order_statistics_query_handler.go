package queries

import (
	"context"
	"database/sql"

	"proxybuy/internal/core/domain/model/order"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// statisticsBuckets maps each lifecycle status to its dashboard bucket.
var statisticsBuckets = map[order.Status]string{
	order.StatusPendingReview:    "pending",
	order.StatusQuoteSent:        "pending",
	order.StatusQuoteApproved:    "pending",
	order.StatusPaymentPending:   "pending",
	order.StatusPaymentCompleted: "processing",
	order.StatusPurchasing:       "processing",
	order.StatusShipping:         "processing",
	order.StatusDelivered:        "completed",
	order.StatusCancelled:        "cancelled",
	order.StatusRejected:         "cancelled",
	order.StatusFailed:           "cancelled",
}

// GetOrderStatisticsQueryHandler counts orders per dashboard bucket.
type GetOrderStatisticsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderStatisticsQueryHandler creates a handler for order statistics.
func NewGetOrderStatisticsQueryHandler(db *gorm.DB) GetOrderStatisticsQueryHandler {
	return GetOrderStatisticsQueryHandler{db: db}
}

// Handle executes the query. Counts come from current statuses only; an
// order contributes to exactly one bucket.
func (h GetOrderStatisticsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatisticsQuery,
) (GetOrderStatisticsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatisticsQueryResponse{}, err
	}

	var rows *sql.Rows
	var err error
	if query.UserID() != nil {
		rows, err = h.db.WithContext(ctx).Raw(`
			SELECT status, COUNT(*)
			FROM orders
			WHERE user_id = ?
			GROUP BY status
		`, query.UserID().String()).Rows()
	} else {
		rows, err = h.db.WithContext(ctx).Raw(`
			SELECT status, COUNT(*)
			FROM orders
			GROUP BY status
		`).Rows()
	}
	if err != nil {
		return GetOrderStatisticsQueryResponse{}, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err = rows.Scan(&status, &count); err != nil {
			return GetOrderStatisticsQueryResponse{}, err
		}

		parsed, err := order.ToStatus(status)
		if err != nil {
			return GetOrderStatisticsQueryResponse{}, err
		}
		counts[statisticsBuckets[parsed]] += count
	}
	if err = rows.Err(); err != nil {
		return GetOrderStatisticsQueryResponse{}, err
	}

	return GetOrderStatisticsQueryResponse{
		Total:      lo.Sum(lo.Values(counts)),
		Pending:    counts["pending"],
		Processing: counts["processing"],
		Completed:  counts["completed"],
		Cancelled:  counts["cancelled"],
	}, nil
}
