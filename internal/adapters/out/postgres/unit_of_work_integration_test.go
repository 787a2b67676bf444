package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	postgres_adapter "proxybuy/internal/adapters/out/postgres"
	"proxybuy/internal/adapters/out/postgres/orderrepo"
	"proxybuy/internal/adapters/out/postgres/paymentrepo"
	"proxybuy/internal/adapters/out/postgres/quoterepo"
	"proxybuy/internal/core/domain/model/kernel"
	"proxybuy/internal/core/domain/model/order"
	"proxybuy/internal/core/domain/model/payment"
	"proxybuy/internal/core/domain/model/quote"
	"proxybuy/internal/core/ports"
	"proxybuy/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/text/currency"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	dsn       string
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes the PostgreSQL container and database connection and
// runs migrations to prepare the schema.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)
	suite.dsn = dsn

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.StatusHistoryDTO{},
		&quoterepo.QuoteDTO{},
		&paymentrepo.PaymentDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_status_history, quotes, payments").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up the PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies the factory creates isolated unit of
// work instances with access to all repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.QuoteRepository())
	suite.NotNil(uow1.PaymentRepository())
	suite.NotNil(uow2.OrderRepository())
}

// TestUnitOfWork_TransactionLifecycle verifies begin, commit and rollback.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid
// transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_SingleRepositoryTransaction verifies repository operations
// within one transaction boundary.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SingleRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder(suite.T())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	retrievedOrder, err := uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrievedOrder, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.OrderNumber(), retrievedOrder.OrderNumber())
}

// TestUnitOfWork_QuoteIssueCommitsAtomically verifies an issued quote, the
// order's quote_sent transition and its history entry persist together.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_QuoteIssueCommitsAtomically() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder(suite.T())
	testQuote := createTestQuote(suite.T(), testOrder.ID())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	err = uow.QuoteRepository().Add(ctx, testQuote)
	suite.Require().NoError(err)

	fromStatus := testOrder.Status()
	err = testOrder.TransitionTo(order.StatusQuoteSent, time.Now().UTC())
	suite.Require().NoError(err)
	err = uow.OrderRepository().Update(ctx, testOrder)
	suite.Require().NoError(err)

	entry, err := order.NewStatusHistoryEntry(
		kernel.NewUUID(),
		testOrder.ID(),
		&fromStatus,
		order.StatusQuoteSent,
		testOrder.UserID(),
		"quote issued",
		map[string]string{"quote_id": testQuote.ID().String()},
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	err = uow.OrderRepository().AddHistory(ctx, entry)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	retrievedOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusQuoteSent, retrievedOrder.Status())

	retrievedQuote, err := newUow.QuoteRepository().GetLatestForOrder(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testQuote.ID(), retrievedQuote.ID())
	suite.True(retrievedQuote.TotalAmount().IsEqual(testQuote.TotalAmount()))

	history, err := newUow.OrderRepository().GetHistory(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Len(history, 1)
	suite.Equal(order.StatusQuoteSent, history[0].ToStatus())
	suite.Equal(testQuote.ID().String(), history[0].Metadata()["quote_id"])
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// across repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder(suite.T())
	testQuote := createTestQuote(suite.T(), testOrder.ID())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	err = uow.QuoteRepository().Add(ctx, testQuote)
	suite.Require().NoError(err)

	_, err = uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	_, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err, "Order should not exist after rollback")

	_, err = newUow.QuoteRepository().Get(ctx, testQuote.ID())
	suite.Require().Error(err, "Quote should not exist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies repositories work for immediate
// operations without explicit transaction boundaries.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := createTestOrder(suite.T())

	err := uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrievedOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrievedOrder.ID())
}

// TestUnitOfWork_ConcurrentTransitionLosesWithConflict verifies the version
// check lets exactly one of two racing status updates through.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentTransitionLosesWithConflict() {
	ctx := context.Background()

	testOrder := createTestOrder(suite.T())
	err := suite.factory.Create().OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	repo1 := suite.factory.Create().OrderRepository()
	repo2 := suite.factory.Create().OrderRepository()

	loaded1, err := repo1.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	loaded2, err := repo2.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	err = loaded1.TransitionTo(order.StatusQuoteSent, time.Now().UTC())
	suite.Require().NoError(err)
	err = repo1.Update(ctx, loaded1)
	suite.Require().NoError(err)

	err = loaded2.TransitionTo(order.StatusCancelled, time.Now().UTC())
	suite.Require().NoError(err)
	err = repo2.Update(ctx, loaded2)
	suite.Require().Error(err)
	suite.True(errors.Is(err, errs.ErrConflict))

	final, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusQuoteSent, final.Status())
}

// TestUnitOfWork_PendingQuoteUniquePerOrder verifies the partial unique index
// rejects a second pending quote for the same order.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PendingQuoteUniquePerOrder() {
	ctx := context.Background()

	testOrder := createTestOrder(suite.T())
	err := suite.factory.Create().OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	repo := suite.factory.Create().QuoteRepository()

	first := createTestQuote(suite.T(), testOrder.ID())
	err = repo.Add(ctx, first)
	suite.Require().NoError(err)

	second := createTestQuote(suite.T(), testOrder.ID())
	err = repo.Add(ctx, second)
	suite.Require().Error(err)
	suite.True(errors.Is(err, errs.ErrConflict))

	// A resolved quote frees the slot for a re-quote.
	err = first.Reject(time.Now().UTC(), "price changed")
	suite.Require().NoError(err)
	err = repo.Update(ctx, first)
	suite.Require().NoError(err)

	err = repo.Add(ctx, second)
	suite.Require().NoError(err)
}

// TestUnitOfWork_DuplicateOrderNumberConflicts verifies the unique order
// number constraint maps to a conflict the caller can retry on.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_DuplicateOrderNumberConflicts() {
	ctx := context.Background()
	repo := suite.factory.Create().OrderRepository()

	first := createTestOrder(suite.T())
	err := repo.Add(ctx, first)
	suite.Require().NoError(err)

	duplicate, err := order.NewOrder(
		kernel.NewUUID(),
		first.OrderNumber(),
		kernel.NewUUID(),
		first.Product(),
		1,
		nil,
		"",
		"",
		first.Estimate(),
		time.Now().UTC(),
	)
	suite.Require().NoError(err)

	err = repo.Add(ctx, duplicate)
	suite.Require().Error(err)
	suite.True(errors.Is(err, errs.ErrConflict))
}

// TestUnitOfWork_PaymentSettlementRace verifies the status-conditional payment
// update lets only the first settlement through.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PaymentSettlementRace() {
	ctx := context.Background()

	testOrder := createTestOrder(suite.T())
	err := suite.factory.Create().OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	repo1 := suite.factory.Create().PaymentRepository()
	repo2 := suite.factory.Create().PaymentRepository()

	testPayment := createTestPayment(suite.T(), testOrder.ID())
	err = repo1.Add(ctx, testPayment)
	suite.Require().NoError(err)

	loaded1, err := repo1.Get(ctx, testPayment.ID())
	suite.Require().NoError(err)
	loaded2, err := repo2.Get(ctx, testPayment.ID())
	suite.Require().NoError(err)

	err = loaded1.Complete("pg-tx-1", time.Now().UTC())
	suite.Require().NoError(err)
	err = repo1.Update(ctx, loaded1, payment.StatusPending)
	suite.Require().NoError(err)

	err = loaded2.Fail("pg-tx-1", time.Now().UTC())
	suite.Require().NoError(err)
	err = repo2.Update(ctx, loaded2, payment.StatusPending)
	suite.Require().Error(err)
	suite.True(errors.Is(err, errs.ErrConflict))

	final, err := repo1.GetCompletedForOrder(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(payment.StatusCompleted, final.Status())
	suite.Equal("pg-tx-1", final.ExternalPaymentID())
}

// TestUnitOfWork_OrderLifecycleWorkflow runs the full proxy-purchase flow
// across repositories and verifies the recorded history.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_OrderLifecycleWorkflow() {
	ctx := context.Background()
	now := time.Now().UTC()

	testOrder := createTestOrder(suite.T())
	err := suite.factory.Create().OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	steps := []order.Status{
		order.StatusQuoteSent,
		order.StatusQuoteApproved,
		order.StatusPaymentPending,
		order.StatusPaymentCompleted,
		order.StatusPurchasing,
		order.StatusShipping,
		order.StatusDelivered,
	}

	for _, target := range steps {
		uow := suite.factory.Create()
		err = uow.Begin(ctx)
		suite.Require().NoError(err)

		aggregate, getErr := uow.OrderRepository().Get(ctx, testOrder.ID())
		suite.Require().NoError(getErr)

		fromStatus := aggregate.Status()
		err = aggregate.TransitionTo(target, now)
		suite.Require().NoError(err)
		err = uow.OrderRepository().Update(ctx, aggregate)
		suite.Require().NoError(err)

		entry, entryErr := order.NewStatusHistoryEntry(
			kernel.NewUUID(), testOrder.ID(), &fromStatus, target,
			testOrder.UserID(), "", nil, now,
		)
		suite.Require().NoError(entryErr)
		err = uow.OrderRepository().AddHistory(ctx, entry)
		suite.Require().NoError(err)

		err = uow.Commit(ctx)
		suite.Require().NoError(err)

		now = now.Add(time.Second)
	}

	final, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusDelivered, final.Status())

	history, err := suite.factory.Create().OrderRepository().GetHistory(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().Len(history, len(steps))
	for i, entry := range history {
		suite.Equal(steps[i], entry.ToStatus())
	}
}

// createTestOrder creates a valid pending_review order for testing purposes.
func createTestOrder(t *testing.T) *order.Order {
	t.Helper()

	now := time.Now().UTC()
	orderNumber, err := kernel.GenerateOrderNumber("HIKO", now)
	if err != nil {
		t.Fatal(err)
	}

	product, err := order.NewProductSnapshot(
		"Wireless Earbuds",
		kernel.NewMoneyFromMinorUnits(100000, currency.KRW),
		"https://example.com/products/earbuds",
		nil,
	)
	if err != nil {
		t.Fatal(err)
	}

	estimate := order.PriceEstimate{
		Subtotal:   kernel.NewMoneyFromMinorUnits(100000, currency.KRW),
		ServiceFee: kernel.NewMoneyFromMinorUnits(8000, currency.KRW),
		Shipping:   kernel.NewMoneyFromMinorUnits(3000, currency.KRW),
		Total:      kernel.NewMoneyFromMinorUnits(111000, currency.KRW),
	}

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), orderNumber, kernel.NewUUID(),
		product, 1, nil, "black", "", estimate, now,
	)
	if err != nil {
		t.Fatal(err)
	}
	return testOrder
}

// createTestQuote creates a valid pending quote for testing purposes.
func createTestQuote(t *testing.T, orderID kernel.UUID) *quote.Quote {
	t.Helper()

	now := time.Now().UTC()
	testQuote, err := quote.NewQuote(
		kernel.NewUUID(),
		orderID,
		kernel.NewMoneyFromMinorUnits(100000, currency.KRW),
		kernel.NewMoneyFromMinorUnits(3000, currency.KRW),
		kernel.NewMoneyFromMinorUnits(25000, currency.KRW),
		kernel.NewMoneyFromMinorUnits(8000, currency.KRW),
		"bank_transfer",
		now.Add(24*time.Hour),
		"",
		now,
	)
	if err != nil {
		t.Fatal(err)
	}
	return testQuote
}

// createTestPayment creates a pending payment for testing purposes.
func createTestPayment(t *testing.T, orderID kernel.UUID) *payment.Payment {
	t.Helper()

	testPayment, err := payment.NewPayment(
		kernel.NewUUID(),
		orderID,
		nil,
		kernel.NewMoneyFromMinorUnits(136000, currency.KRW),
		"bank_transfer",
		time.Now().UTC(),
	)
	if err != nil {
		t.Fatal(err)
	}
	return testPayment
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ClosedPoolSurfacesUnavailable() {
	ctx := context.Background()

	db, err := gorm.Open(gorm_postgres.Open(suite.dsn), &gorm.Config{})
	suite.Require().NoError(err)
	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	suite.Require().NoError(sqlDB.Close())

	factory := postgres_adapter.NewGormUnitOfWorkFactory(db)
	uow := factory.Create()

	err = uow.Begin(ctx)
	suite.Require().Error(err)
	suite.True(errors.Is(err, errs.ErrUnavailable))
	suite.Equal("UNAVAILABLE", errs.Kind(err))

	_, err = uow.OrderRepository().Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.True(errors.Is(err, errs.ErrUnavailable))
	suite.False(errors.Is(err, errs.ErrObjectNotFound))
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
