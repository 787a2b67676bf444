package commands

import (
	"context"
	"time"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/order"
	"proxybuy/internal/core/domain/model/payment"
)

// ConfirmPaymentCommandHandler settles a pending payment from the gateway's
// callback. A confirmed payment also moves the order from payment_pending to
// payment_completed in the same transaction; a failed payment leaves the
// order where it is so the user can retry. The payment update is conditional
// on the record still being pending, which makes duplicate gateway callbacks
// surface as conflicts instead of double-settling.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderPaymentUoWFactory
}

// NewConfirmPaymentCommandHandler creates a handler for gateway payment callbacks.
func NewConfirmPaymentCommandHandler(uowFactory OrderPaymentUoWFactory) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the settlement command and returns the settled payment.
func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) (*payment.Payment, error) {
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

	now := time.Now()
	fromStatus := aggregate.Status()

	if cmd.Success() {
		err = aggregate.Complete(cmd.ExternalPaymentID(), now)
	} else {
		err = aggregate.Fail(cmd.ExternalPaymentID(), now)
	}
	if err != nil {
		return nil, err
	}

	if err = paymentRepo.Update(ctx, aggregate, fromStatus); err != nil {
		return nil, err
	}

	if cmd.Success() {
		if err = h.completeOrder(ctx, uow, aggregate, now); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

func (h ConfirmPaymentCommandHandler) completeOrder(
	ctx context.Context,
	uow OrderPaymentUoW,
	settled *payment.Payment,
	now time.Time,
) error {
	orderRepo := uow.OrderRepository()
	orderAggregate, err := orderRepo.Get(ctx, settled.OrderID())
	if err != nil {
		return err
	}

	fromStatus := orderAggregate.Status()
	if err = orderAggregate.TransitionTo(order.StatusPaymentCompleted, now); err != nil {
		return err
	}

	entry, err := order.NewStatusHistoryEntry(
		kernel.NewUUID(),
		orderAggregate.ID(),
		&fromStatus,
		orderAggregate.Status(),
		orderAggregate.UserID(),
		"payment confirmed",
		map[string]string{
			"payment_id":          settled.ID().String(),
			"external_payment_id": settled.ExternalPaymentID(),
		},
		now,
	)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, orderAggregate); err != nil {
		return err
	}

	return orderRepo.AddHistory(ctx, entry)
}
