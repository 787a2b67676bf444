package cmd

import (
	"log/slog"

	"proxybuy/internal/adapters/out/notify"
	"proxybuy/internal/adapters/out/postgres"
	"proxybuy/internal/core/application/usecases/commands"
	"proxybuy/internal/core/application/usecases/queries"
	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/services"
	"proxybuy/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	feePolicy  services.FeePolicy
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	feePolicy, err := services.NewFeePolicy(configs.MinServiceFee, configs.DomesticShippingFee, kernel.KRW)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		feePolicy:  feePolicy,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.feePolicy, c.configs.OrderNumberPrefix)
}

func (c *CompositionRoot) CreateTransitionOrderStatusCommandHandler() commands.TransitionOrderStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateOrderDetailsCommandHandler() commands.UpdateOrderDetailsCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderDetailsCommandHandler(f, c.feePolicy)
}

func (c *CompositionRoot) CreateCreateQuoteCommandHandler() commands.CreateQuoteCommandHandler {
	var f commands.OrderQuoteUoWFactory = FuncOrderQuoteUoWFactory(func() commands.OrderQuoteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateQuoteCommandHandler(f, c.feePolicy)
}

func (c *CompositionRoot) CreateApproveQuoteCommandHandler() commands.ApproveQuoteCommandHandler {
	var f commands.OrderQuoteUoWFactory = FuncOrderQuoteUoWFactory(func() commands.OrderQuoteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApproveQuoteCommandHandler(f)
}

func (c *CompositionRoot) CreateRejectQuoteCommandHandler() commands.RejectQuoteCommandHandler {
	var f commands.OrderQuoteUoWFactory = FuncOrderQuoteUoWFactory(func() commands.OrderQuoteUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRejectQuoteCommandHandler(f)
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordPaymentCommandHandler(f)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	var f commands.OrderPaymentUoWFactory = FuncOrderPaymentUoWFactory(func() commands.OrderPaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmPaymentCommandHandler(f)
}

func (c *CompositionRoot) CreateRefundPaymentCommandHandler() commands.RefundPaymentCommandHandler {
	var f commands.OrderPaymentUoWFactory = FuncOrderPaymentUoWFactory(func() commands.OrderPaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRefundPaymentCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersForUserQueryHandler() queries.ListOrdersForUserQueryHandler {
	return queries.NewListOrdersForUserQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatisticsQueryHandler() queries.GetOrderStatisticsQueryHandler {
	return queries.NewGetOrderStatisticsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	notifier := notify.NewSlogQuoteExpiryNotifier(c.logger)
	sweep := jobs.NewQuoteExpirySweepJob(c.gormDB, notifier, c.logger)
	return jobs.NewJobManager(sweep)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOrderQuoteUoWFactory func() commands.OrderQuoteUoW

func (f FuncOrderQuoteUoWFactory) Create() commands.OrderQuoteUoW {
	return f()
}

type FuncOrderPaymentUoWFactory func() commands.OrderPaymentUoW

func (f FuncOrderPaymentUoWFactory) Create() commands.OrderPaymentUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
