package commands

import (
	"context"
	"errors"
	"time"

	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/order"
	"proxybuy/internal/core/domain/services"
	"proxybuy/internal/pkg/errs"
)

// orderNumberMaxAttempts bounds how many times a colliding order number is
// regenerated before the creation fails with the conflict.
const orderNumberMaxAttempts = 3

// CreateOrderCommandHandler handles new proxy-purchase order submissions.
// Generates a human-readable order number, snapshots the price estimate from
// the fee policy, and persists the order together with its creation history
// entry in one transaction.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, feePolicy, "HIKO")
//	cmd, _ := NewCreateOrderCommand(orderID, userID, product, 2, nil, "", "")
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// created is in pending_review, waiting for an operator quote
type CreateOrderCommandHandler struct {
	uowFactory        OrderUoWFactory
	feePolicy         services.FeePolicy
	orderNumberPrefix string
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	feePolicy services.FeePolicy,
	orderNumberPrefix string,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:        uowFactory,
		feePolicy:         feePolicy,
		orderNumberPrefix: orderNumberPrefix,
	}
}

// Handle processes the order creation command and returns the created order.
// A duplicate order number surfaces from the store as a ConflictError; the
// handler regenerates the number and retries the whole transaction up to
// orderNumberMaxAttempts times before giving up.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	estimate, err := h.feePolicy.Estimate(cmd.Product().UnitPrice(), cmd.Quantity())
	if err != nil {
		return nil, err
	}

	var created *order.Order
	for attempt := 0; attempt < orderNumberMaxAttempts; attempt++ {
		created, err = h.createOnce(ctx, cmd, estimate)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, errs.ErrConflict) {
			return nil, err
		}
	}

	return nil, err
}

func (h CreateOrderCommandHandler) createOnce(
	ctx context.Context,
	cmd CreateOrderCommand,
	estimate order.PriceEstimate,
) (*order.Order, error) {
	now := time.Now()

	orderNumber, err := kernel.GenerateOrderNumber(h.orderNumberPrefix, now)
	if err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		orderNumber,
		cmd.UserID(),
		cmd.Product(),
		cmd.Quantity(),
		cmd.AddressID(),
		cmd.Option(),
		cmd.SpecialRequest(),
		estimate,
		now,
	)
	if err != nil {
		return nil, err
	}

	entry, err := order.NewStatusHistoryEntry(
		kernel.NewUUID(),
		newOrder.ID(),
		nil,
		newOrder.Status(),
		cmd.UserID(),
		"order submitted",
		nil,
		now,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = orderRepo.AddHistory(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return newOrder, nil
}
