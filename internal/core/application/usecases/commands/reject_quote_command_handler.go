package commands

import (
	"context"
	"time"

	"proxybuy/internal/core/domain/model/quote"
)

// RejectQuoteCommandHandler resolves a pending quote to rejected. The order
// stays in quote_sent so the operator can issue a revised quote; cancelling
// the order outright is a separate status transition.
type RejectQuoteCommandHandler struct {
	uowFactory OrderQuoteUoWFactory
}

// NewRejectQuoteCommandHandler creates a handler for quote rejections.
func NewRejectQuoteCommandHandler(uowFactory OrderQuoteUoWFactory) RejectQuoteCommandHandler {
	return RejectQuoteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rejection command and returns the rejected quote.
func (h RejectQuoteCommandHandler) Handle(ctx context.Context, cmd RejectQuoteCommand) (*quote.Quote, error) {
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

	if err = aggregate.Reject(time.Now(), cmd.Reason()); err != nil {
		return nil, err
	}

	if err = quoteRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
