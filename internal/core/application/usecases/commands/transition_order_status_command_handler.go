package commands

import (
	"context"
	"errors"
	"time"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/order"
	"proxybuy/internal/core/domain/model/quote"
	"proxybuy/internal/pkg/errs"
)

// TransitionOrderStatusCommandHandler moves an order along its lifecycle.
// The state machine decides which edges exist; this handler adds the
// cross-aggregate preconditions that the aggregate alone cannot check:
//
//   - quote_approved requires the order's latest quote to be approved
//   - payment_completed requires a completed payment record for the order
//
// The order update and the history entry are written in one transaction. The
// update is conditional on the loaded version, so two concurrent transitions
// of the same order resolve to one winner and one ConflictError.
type TransitionOrderStatusCommandHandler struct {
	uowFactory UoWFactory
}

// NewTransitionOrderStatusCommandHandler creates a handler for order status changes.
func NewTransitionOrderStatusCommandHandler(uowFactory UoWFactory) TransitionOrderStatusCommandHandler {
	return TransitionOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status transition command and returns the updated order.
func (h TransitionOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionOrderStatusCommand,
) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.checkPreconditions(ctx, uow, aggregate, cmd.Target()); err != nil {
		return nil, err
	}

	now := time.Now()
	fromStatus := aggregate.Status()

	if err = aggregate.TransitionTo(cmd.Target(), now); err != nil {
		return nil, err
	}

	entry, err := order.NewStatusHistoryEntry(
		kernel.NewUUID(),
		aggregate.ID(),
		&fromStatus,
		aggregate.Status(),
		cmd.Actor(),
		cmd.Note(),
		nil,
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = orderRepo.AddHistory(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}

func (h TransitionOrderStatusCommandHandler) checkPreconditions(
	ctx context.Context,
	uow UoW,
	aggregate *order.Order,
	target order.Status,
) error {
	switch target {
	case order.StatusQuoteApproved:
		latest, err := uow.QuoteRepository().GetLatestForOrder(ctx, aggregate.ID())
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewPreconditionFailedError("order has no quote to approve")
		}
		if err != nil {
			return err
		}
		if latest.ApprovalState() != quote.ApprovalStateApproved {
			return errs.NewPreconditionFailedError("latest quote is not approved")
		}
	case order.StatusPaymentCompleted:
		_, err := uow.PaymentRepository().GetCompletedForOrder(ctx, aggregate.ID())
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewPreconditionFailedError("order has no completed payment")
		}
		if err != nil {
			return err
		}
	}

	return nil
}
