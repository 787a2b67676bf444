package commands

import (
	"context"
	"fmt"
	"time"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/order"
	"proxybuy/internal/core/domain/model/quote"
	"proxybuy/internal/core/domain/services"
	"proxybuy/internal/pkg/errs"
)

// CreateQuoteCommandHandler issues an operator quote for an order. The order
// must still be negotiating (pending_review or quote_sent); issuing the first
// quote also moves the order to quote_sent, in the same transaction as the
// quote insert. The store's partial unique index keeps concurrent operator
// sessions from creating two pending quotes for one order.
type CreateQuoteCommandHandler struct {
	uowFactory OrderQuoteUoWFactory
	feePolicy  services.FeePolicy
}

// NewCreateQuoteCommandHandler creates a handler for quote issuance.
func NewCreateQuoteCommandHandler(
	uowFactory OrderQuoteUoWFactory,
	feePolicy services.FeePolicy,
) CreateQuoteCommandHandler {
	return CreateQuoteCommandHandler{
		uowFactory: uowFactory,
		feePolicy:  feePolicy,
	}
}

// Handle processes the quote creation command and returns the created quote.
func (h CreateQuoteCommandHandler) Handle(ctx context.Context, cmd CreateQuoteCommand) (*quote.Quote, error) {
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

	status := aggregate.Status()
	if status != order.StatusPendingReview && status != order.StatusQuoteSent {
		return nil, errs.NewPreconditionFailedError(
			fmt.Sprintf("order in status %s cannot be quoted", status))
	}

	now := time.Now()

	fee := h.feePolicy.ServiceFee(cmd.ProductCost())
	if cmd.Fee() != nil {
		fee = *cmd.Fee()
	}

	newQuote, err := quote.NewQuote(
		cmd.QuoteID(),
		cmd.OrderID(),
		cmd.ProductCost(),
		cmd.DomesticShipping(),
		cmd.InternationalShipping(),
		fee,
		cmd.PaymentMethod(),
		cmd.ValidUntil(),
		cmd.Notes(),
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.QuoteRepository().Add(ctx, newQuote); err != nil {
		return nil, err
	}

	if status == order.StatusPendingReview {
		if err = aggregate.TransitionTo(order.StatusQuoteSent, now); err != nil {
			return nil, err
		}

		entry, err := order.NewStatusHistoryEntry(
			kernel.NewUUID(),
			aggregate.ID(),
			&status,
			aggregate.Status(),
			cmd.Actor(),
			"quote issued",
			map[string]string{"quote_id": newQuote.ID().String()},
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
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newQuote, nil
}
