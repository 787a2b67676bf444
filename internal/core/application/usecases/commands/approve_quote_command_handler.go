package commands

import (
	"context"
	"time"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/order"
	"proxybuy/internal/core/domain/model/quote"
)

// ApproveQuoteCommandHandler resolves a pending quote to approved and moves
// the order to quote_approved, both in one transaction. The quote aggregate
// guards the resolution (already-resolved first, then expiry); the quote
// update is conditional on the persisted state still being pending, so only
// one of two racing decisions lands.
type ApproveQuoteCommandHandler struct {
	uowFactory OrderQuoteUoWFactory
}

// NewApproveQuoteCommandHandler creates a handler for quote approvals.
func NewApproveQuoteCommandHandler(uowFactory OrderQuoteUoWFactory) ApproveQuoteCommandHandler {
	return ApproveQuoteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the approval command and returns the approved quote.
func (h ApproveQuoteCommandHandler) Handle(ctx context.Context, cmd ApproveQuoteCommand) (*quote.Quote, error) {
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

	quoteRepo := uow.QuoteRepository()
	aggregate, err := quoteRepo.Get(ctx, cmd.QuoteID())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err = aggregate.Approve(now); err != nil {
		return nil, err
	}

	if err = quoteRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	orderAggregate, err := orderRepo.Get(ctx, aggregate.OrderID())
	if err != nil {
		return nil, err
	}

	fromStatus := orderAggregate.Status()
	if err = orderAggregate.TransitionTo(order.StatusQuoteApproved, now); err != nil {
		return nil, err
	}

	entry, err := order.NewStatusHistoryEntry(
		kernel.NewUUID(),
		orderAggregate.ID(),
		&fromStatus,
		orderAggregate.Status(),
		cmd.Actor(),
		"quote approved",
		map[string]string{"quote_id": aggregate.ID().String()},
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, orderAggregate); err != nil {
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
