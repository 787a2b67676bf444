package queries

import (
	"context"
	"database/sql"
	"errors"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/order"
	"proxybuy/internal/core/domain/model/payment"
	"proxybuy/internal/core/domain/model/quote"
	"proxybuy/internal/pkg/errs"

	"github.com/google/uuid"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order's aggregate view from the store.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order views.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns ObjectNotFoundError if the order does
// not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	orderResp, err := h.readOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	history, err := h.readHistory(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	quotes, err := h.readQuotes(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	payments, err := h.readPayments(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return GetOrderQueryResponse{
		Order:    orderResp,
		History:  history,
		Quotes:   quotes,
		Payments: payments,
	}, nil
}

func (h GetOrderQueryHandler) readOrder(ctx context.Context, orderID kernel.UUID) (OrderResponse, error) {
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			user_id,
			product_title,
			product_unit_price,
			product_source_url,
			quantity,
			address_id,
			option,
			special_request,
			status,
			estimate_subtotal,
			estimate_service_fee,
			estimate_shipping,
			estimate_total,
			currency,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, orderID.String()).Row()

	var resp OrderResponse
	var id, userID uuid.UUID
	var addressID uuid.NullUUID
	var unitPrice, subtotal, serviceFee, shipping, total int64
	var currencyCode, status string

	err := row.Scan(
		&id,
		&resp.OrderNumber,
		&userID,
		&resp.ProductTitle,
		&unitPrice,
		&resp.SourceURL,
		&resp.Quantity,
		&addressID,
		&resp.Option,
		&resp.SpecialRequest,
		&status,
		&subtotal,
		&serviceFee,
		&shipping,
		&total,
		&currencyCode,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return OrderResponse{}, errs.NewObjectNotFoundError("order", orderID)
	}
	if err != nil {
		return OrderResponse{}, err
	}

	resp.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderResponse{}, err
	}
	resp.UserID, err = kernel.UUIDFromBytes(userID[:])
	if err != nil {
		return OrderResponse{}, err
	}
	if addressID.Valid {
		addr, err := kernel.UUIDFromBytes(addressID.UUID[:])
		if err != nil {
			return OrderResponse{}, err
		}
		resp.AddressID = &addr
	}

	resp.Status, err = order.ToStatus(status)
	if err != nil {
		return OrderResponse{}, err
	}

	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return OrderResponse{}, errs.NewValueIsInvalidErrorWithCause("currency", err)
	}
	resp.UnitPrice = kernel.NewMoneyFromMinorUnits(unitPrice, unit)
	resp.Subtotal = kernel.NewMoneyFromMinorUnits(subtotal, unit)
	resp.ServiceFee = kernel.NewMoneyFromMinorUnits(serviceFee, unit)
	resp.Shipping = kernel.NewMoneyFromMinorUnits(shipping, unit)
	resp.Total = kernel.NewMoneyFromMinorUnits(total, unit)

	return resp, nil
}

func (h GetOrderQueryHandler) readHistory(ctx context.Context, orderID kernel.UUID) ([]StatusHistoryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			from_status,
			to_status,
			changed_by,
			note,
			created_at
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY created_at, id
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]StatusHistoryResponse, 0)
	for rows.Next() {
		var entry StatusHistoryResponse
		var id, changedBy uuid.UUID
		var fromStatus sql.NullString
		var toStatus string

		if err = rows.Scan(&id, &fromStatus, &toStatus, &changedBy, &entry.Note, &entry.CreatedAt); err != nil {
			return nil, err
		}

		entry.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		entry.ChangedBy, err = kernel.UUIDFromBytes(changedBy[:])
		if err != nil {
			return nil, err
		}
		if fromStatus.Valid {
			from, err := order.ToStatus(fromStatus.String)
			if err != nil {
				return nil, err
			}
			entry.FromStatus = &from
		}
		entry.ToStatus, err = order.ToStatus(toStatus)
		if err != nil {
			return nil, err
		}

		history = append(history, entry)
	}

	return history, rows.Err()
}

func (h GetOrderQueryHandler) readQuotes(ctx context.Context, orderID kernel.UUID) ([]QuoteResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_cost,
			domestic_shipping,
			international_shipping,
			fee,
			total_amount,
			currency,
			payment_method,
			approval_state,
			valid_until,
			notes,
			created_at
		FROM quotes
		WHERE order_id = ?
		ORDER BY created_at DESC, id DESC
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := make([]QuoteResponse, 0)
	for rows.Next() {
		var resp QuoteResponse
		var id uuid.UUID
		var productCost, domesticShipping, internationalShipping, fee, totalAmount int64
		var currencyCode, approvalState string

		err = rows.Scan(
			&id,
			&productCost,
			&domesticShipping,
			&internationalShipping,
			&fee,
			&totalAmount,
			&currencyCode,
			&resp.PaymentMethod,
			&approvalState,
			&resp.ValidUntil,
			&resp.Notes,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.ApprovalState, err = quote.ToApprovalState(approvalState)
		if err != nil {
			return nil, err
		}

		unit, err := currency.ParseISO(currencyCode)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("currency", err)
		}
		resp.ProductCost = kernel.NewMoneyFromMinorUnits(productCost, unit)
		resp.DomesticShipping = kernel.NewMoneyFromMinorUnits(domesticShipping, unit)
		resp.InternationalShipping = kernel.NewMoneyFromMinorUnits(internationalShipping, unit)
		resp.Fee = kernel.NewMoneyFromMinorUnits(fee, unit)
		resp.TotalAmount = kernel.NewMoneyFromMinorUnits(totalAmount, unit)

		quotes = append(quotes, resp)
	}

	return quotes, rows.Err()
}

func (h GetOrderQueryHandler) readPayments(ctx context.Context, orderID kernel.UUID) ([]PaymentResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			quote_id,
			amount,
			currency,
			payment_method,
			external_payment_id,
			status,
			paid_at,
			created_at
		FROM payments
		WHERE order_id = ?
		ORDER BY created_at DESC, id DESC
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]PaymentResponse, 0)
	for rows.Next() {
		var resp PaymentResponse
		var id uuid.UUID
		var quoteID uuid.NullUUID
		var amount int64
		var currencyCode, status string
		var paidAt sql.NullTime

		err = rows.Scan(
			&id,
			&quoteID,
			&amount,
			&currencyCode,
			&resp.PaymentMethod,
			&resp.ExternalPaymentID,
			&status,
			&paidAt,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		if quoteID.Valid {
			qid, err := kernel.UUIDFromBytes(quoteID.UUID[:])
			if err != nil {
				return nil, err
			}
			resp.QuoteID = &qid
		}
		if paidAt.Valid {
			at := paidAt.Time
			resp.PaidAt = &at
		}

		resp.Status, err = payment.ToStatus(status)
		if err != nil {
			return nil, err
		}

		unit, err := currency.ParseISO(currencyCode)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("currency", err)
		}
		resp.Amount = kernel.NewMoneyFromMinorUnits(amount, unit)

		payments = append(payments, resp)
	}

	return payments, rows.Err()
}
