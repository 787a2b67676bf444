package commands_test

import (
	"errors"
	"testing"

	"proxybuy/internal/core/application/usecases/commands"
	"proxybuy/internal/core/domain/model/order"
	"proxybuy/internal/core/domain/model/payment"
	"proxybuy/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmPaymentCommandHandler_Handle_SuccessCompletesOrder(t *testing.T) {
	ctx := t.Context()
	orderAggregate := testOrder(t, order.StatusPaymentPending)
	paymentAggregate := testPayment(t, orderAggregate.ID(), payment.StatusPending)
	cmd, err := commands.NewConfirmPaymentCommand(paymentAggregate.ID(), "pg-tx-12345", true)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	paymentRepo := new(MockPaymentRepository)
	uow := new(MockOrderPaymentUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PaymentRepository").Return(paymentRepo).Once(),
		paymentRepo.On("Get", mock.Anything, paymentAggregate.ID()).Return(paymentAggregate, nil).Once(),
		paymentRepo.On("Update", mock.Anything, paymentAggregate, payment.StatusPending).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderAggregate.ID()).Return(orderAggregate, nil).Once(),
		orderRepo.On("Update", mock.Anything, orderAggregate).Return(nil).Once(),
		orderRepo.On("AddHistory", mock.Anything, mock.AnythingOfType("*order.StatusHistoryEntry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmPaymentCommandHandler(factory)
	settled, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, payment.StatusCompleted, settled.Status())
	require.Equal(t, "pg-tx-12345", settled.ExternalPaymentID())
	require.NotNil(t, settled.PaidAt())
	require.Equal(t, order.StatusPaymentCompleted, orderAggregate.Status())
	orderRepo.AssertExpectations(t)
	paymentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestConfirmPaymentCommandHandler_Handle_FailureLeavesOrder(t *testing.T) {
	ctx := t.Context()
	orderAggregate := testOrder(t, order.StatusPaymentPending)
	paymentAggregate := testPayment(t, orderAggregate.ID(), payment.StatusPending)
	cmd, err := commands.NewConfirmPaymentCommand(paymentAggregate.ID(), "pg-tx-12345", false)
	require.NoError(t, err)

	paymentRepo := new(MockPaymentRepository)
	uow := new(MockOrderPaymentUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("PaymentRepository").Return(paymentRepo)
	paymentRepo.On("Get", mock.Anything, paymentAggregate.ID()).Return(paymentAggregate, nil)
	paymentRepo.On("Update", mock.Anything, paymentAggregate, payment.StatusPending).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockOrderPaymentUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewConfirmPaymentCommandHandler(factory)
	settled, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, payment.StatusFailed, settled.Status())
	require.Nil(t, settled.PaidAt())
	require.Equal(t, order.StatusPaymentPending, orderAggregate.Status())
	uow.AssertNotCalled(t, "OrderRepository")
}

func TestConfirmPaymentCommandHandler_Handle_AlreadySettled(t *testing.T) {
	ctx := t.Context()
	orderAggregate := testOrder(t, order.StatusPaymentCompleted)
	paymentAggregate := testPayment(t, orderAggregate.ID(), payment.StatusCompleted)
	cmd, err := commands.NewConfirmPaymentCommand(paymentAggregate.ID(), "pg-tx-12345", true)
	require.NoError(t, err)

	paymentRepo := new(MockPaymentRepository)
	uow := new(MockOrderPaymentUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("PaymentRepository").Return(paymentRepo)
	paymentRepo.On("Get", mock.Anything, paymentAggregate.ID()).Return(paymentAggregate, nil)
	uow.On("Rollback", ctx).Return(nil)

	factory := new(MockOrderPaymentUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewConfirmPaymentCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrInvalidTransition))
	paymentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPaymentCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.ConfirmPaymentCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrConfirmPaymentCommandIsNotConstructed)
}

func TestNewConfirmPaymentCommand_RequiresExternalID(t *testing.T) {
	_, err := commands.NewConfirmPaymentCommand(testPayment(t, testOrder(t, order.StatusPaymentPending).ID(), payment.StatusPending).ID(), "", true)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrValueIsRequired))
}
