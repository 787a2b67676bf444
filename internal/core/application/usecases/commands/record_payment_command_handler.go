package commands

import (
	"context"
	"fmt"
	"time"

	"proxybuy/internal/core/domain/model/order"
	"proxybuy/internal/core/domain/model/payment"
	"proxybuy/internal/pkg/errs"
)

// RecordPaymentCommandHandler registers a pending payment for an order that
// has reached payment_pending. When the payment references a quote, the
// amount is checked against the quote's total so the user cannot pay a stale
// figure.
type RecordPaymentCommandHandler struct {
	uowFactory UoWFactory
}

// NewRecordPaymentCommandHandler creates a handler for payment registration.
func NewRecordPaymentCommandHandler(uowFactory UoWFactory) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the payment registration command and returns the pending payment.
func (h RecordPaymentCommandHandler) Handle(ctx context.Context, cmd RecordPaymentCommand) (*payment.Payment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderAggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if orderAggregate.Status() != order.StatusPaymentPending {
		return nil, errs.NewPreconditionFailedError(
			fmt.Sprintf("order in status %s is not awaiting payment", orderAggregate.Status()))
	}

	if cmd.QuoteID() != nil {
		quoteAggregate, err := uow.QuoteRepository().Get(ctx, *cmd.QuoteID())
		if err != nil {
			return nil, err
		}
		if !cmd.Amount().IsEqual(quoteAggregate.TotalAmount()) {
			return nil, errs.NewPreconditionFailedError(fmt.Sprintf(
				"payment amount %s does not match quoted total %s",
				cmd.Amount(), quoteAggregate.TotalAmount()))
		}
	}

	newPayment, err := payment.NewPayment(
		cmd.PaymentID(),
		cmd.OrderID(),
		cmd.QuoteID(),
		cmd.Amount(),
		cmd.PaymentMethod(),
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.PaymentRepository().Add(ctx, newPayment); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newPayment, nil
}
