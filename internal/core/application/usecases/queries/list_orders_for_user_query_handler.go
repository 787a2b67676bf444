package queries

import (
	"context"
	"database/sql"
	"time"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/order"
	"proxybuy/internal/pkg/errs"

	"github.com/google/uuid"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

// OrderSummaryResponse is one row of a user's order list. It carries the
// fields the order list screen shows; the full view comes from GetOrderQuery.
type OrderSummaryResponse struct {
	ID           kernel.UUID
	OrderNumber  string
	ProductTitle string
	Quantity     int
	Status       order.Status
	Total        kernel.Money
	CreatedAt    time.Time
}

// ListOrdersForUserQueryHandler reads a page of a user's orders.
type ListOrdersForUserQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersForUserQueryHandler creates a handler for user order lists.
func NewListOrdersForUserQueryHandler(db *gorm.DB) ListOrdersForUserQueryHandler {
	return ListOrdersForUserQueryHandler{db: db}
}

// Handle executes the query. Returns an empty slice when the user has no
// matching orders.
func (h ListOrdersForUserQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersForUserQuery,
) ([]OrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows *sql.Rows
	var err error
	if query.Status() != nil {
		rows, err = h.db.WithContext(ctx).Raw(`
			SELECT id, order_number, product_title, quantity, status, estimate_total, currency, created_at
			FROM orders
			WHERE user_id = ? AND status = ?
			ORDER BY created_at DESC, id DESC
			LIMIT ? OFFSET ?
		`, query.UserID().String(), query.Status().String(), query.Limit(), query.Offset()).Rows()
	} else {
		rows, err = h.db.WithContext(ctx).Raw(`
			SELECT id, order_number, product_title, quantity, status, estimate_total, currency, created_at
			FROM orders
			WHERE user_id = ?
			ORDER BY created_at DESC, id DESC
			LIMIT ? OFFSET ?
		`, query.UserID().String(), query.Limit(), query.Offset()).Rows()
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderSummaryResponse, 0, query.Limit())
	for rows.Next() {
		var resp OrderSummaryResponse
		var id uuid.UUID
		var status, currencyCode string
		var total int64

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&resp.ProductTitle,
			&resp.Quantity,
			&status,
			&total,
			&currencyCode,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.Status, err = order.ToStatus(status)
		if err != nil {
			return nil, err
		}

		unit, err := currency.ParseISO(currencyCode)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("currency", err)
		}
		resp.Total = kernel.NewMoneyFromMinorUnits(total, unit)

		orders = append(orders, resp)
	}

	return orders, rows.Err()
}
