package commands

import (
	"context"
	"time"

	"proxybuy/internal/core/domain/model/order"
	"proxybuy/internal/core/domain/services"
)

// UpdateOrderDetailsCommandHandler applies pre-payment corrections to an
// order. Quantity changes re-run the fee policy so the stored price estimate
// stays consistent with what the user will see. The aggregate itself rejects
// amendments once the order has reached a payment status.
type UpdateOrderDetailsCommandHandler struct {
	uowFactory OrderUoWFactory
	feePolicy  services.FeePolicy
}

// NewUpdateOrderDetailsCommandHandler creates a handler for order detail amendments.
func NewUpdateOrderDetailsCommandHandler(
	uowFactory OrderUoWFactory,
	feePolicy services.FeePolicy,
) UpdateOrderDetailsCommandHandler {
	return UpdateOrderDetailsCommandHandler{
		uowFactory: uowFactory,
		feePolicy:  feePolicy,
	}
}

// Handle processes the amendment command and returns the updated order.
func (h UpdateOrderDetailsCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderDetailsCommand,
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

	now := time.Now()

	if cmd.Quantity() != nil {
		estimate, err := h.feePolicy.Estimate(aggregate.Product().UnitPrice(), *cmd.Quantity())
		if err != nil {
			return nil, err
		}
		if err = aggregate.ChangeQuantity(*cmd.Quantity(), estimate, now); err != nil {
			return nil, err
		}
	}

	if cmd.AddressID() != nil {
		if err = aggregate.ChangeShippingAddress(*cmd.AddressID(), now); err != nil {
			return nil, err
		}
	}

	if cmd.Option() != nil || cmd.SpecialRequest() != nil {
		option := aggregate.Option()
		if cmd.Option() != nil {
			option = *cmd.Option()
		}
		specialRequest := aggregate.SpecialRequest()
		if cmd.SpecialRequest() != nil {
			specialRequest = *cmd.SpecialRequest()
		}
		if err = aggregate.ChangeRequestDetails(option, specialRequest, now); err != nil {
			return nil, err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
