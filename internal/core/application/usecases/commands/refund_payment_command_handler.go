package commands

import (
	"context"
	"time"

	"proxybuy/internal/core/domain/model/payment"
)

// RefundPaymentCommandHandler refunds a completed payment. Only completed
// payments are refundable; the aggregate rejects everything else. The order's
// own lifecycle (cancellation, failure) is driven separately through status
// transitions.
type RefundPaymentCommandHandler struct {
	uowFactory OrderPaymentUoWFactory
}

// NewRefundPaymentCommandHandler creates a handler for payment refunds.
func NewRefundPaymentCommandHandler(uowFactory OrderPaymentUoWFactory) RefundPaymentCommandHandler {
	return RefundPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the refund command and returns the refunded payment.
func (h RefundPaymentCommandHandler) Handle(ctx context.Context, cmd RefundPaymentCommand) (*payment.Payment, error) {
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

	paymentRepo := uow.PaymentRepository()
	aggregate, err := paymentRepo.Get(ctx, cmd.PaymentID())
	if err != nil {
		return nil, err
	}

	fromStatus := aggregate.Status()
	if err = aggregate.Refund(time.Now()); err != nil {
		return nil, err
	}

	if err = paymentRepo.Update(ctx, aggregate, fromStatus); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
