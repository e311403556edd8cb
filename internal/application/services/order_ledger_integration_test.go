package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/DanielPopoola/ficmart-storefront/internal/application/services"
	"github.com/DanielPopoola/ficmart-storefront/internal/application/services/testhelpers"
	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
	"github.com/DanielPopoola/ficmart-storefront/internal/infrastructure/persistence/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type OrderLedgerTestSuite struct {
	suite.Suite
	testDB     *testhelpers.TestDatabase
	orderRepo  *postgres.OrderRepository
	outboxRepo *postgres.OutboxRepository
	ledger     *services.OrderLedger
}

func TestOrderLedgerSuite(t *testing.T) {
	suite.Run(t, new(OrderLedgerTestSuite))
}

// SetupSuite runs once before all tests
func (suite *OrderLedgerTestSuite) SetupSuite() {
	suite.testDB = testhelpers.SetupTestDatabase(suite.T())
	suite.orderRepo = postgres.NewOrderRepository(suite.testDB.DB)
	suite.outboxRepo = postgres.NewOutboxRepository(suite.testDB.DB)
}

// TearDownSuite runs once after all tests
func (suite *OrderLedgerTestSuite) TearDownSuite() {
	if suite.testDB != nil {
		suite.testDB.Cleanup(suite.T())
	}
}

// SetupTest runs before each test
func (suite *OrderLedgerTestSuite) SetupTest() {
	suite.testDB.CleanTables(suite.T())
	suite.ledger = services.NewOrderLedger(suite.orderRepo, "usd", nil, testhelpers.DiscardLogger())
}

func (suite *OrderLedgerTestSuite) Test_CreateThenPayTwice() {
	ctx := context.Background()
	t := suite.T()

	order, err := suite.ledger.CreateOrder(ctx, "buyer@example.com", testhelpers.DefaultItems(), 5000)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, order.Status)

	require.NoError(t, suite.ledger.MarkPaid(ctx, order.ID, "cs_test_1"))
	require.NoError(t, suite.ledger.MarkPaid(ctx, order.ID, "cs_test_1"))

	stored, err := suite.orderRepo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, stored.Status)

	n, err := suite.outboxRepo.CountByAggregate(ctx, order.ID, domain.EventOrderPaid)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func (suite *OrderLedgerTestSuite) Test_ConcurrentMarkPaid() {
	ctx := context.Background()
	t := suite.T()

	order, err := suite.ledger.CreateOrder(ctx, "buyer@example.com", testhelpers.DefaultItems(), 5000)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, suite.ledger.MarkPaid(ctx, order.ID, "pi_race"))
		}()
	}
	wg.Wait()

	n, err := suite.outboxRepo.CountByAggregate(ctx, order.ID, domain.EventOrderPaid)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func (suite *OrderLedgerTestSuite) Test_InvalidOrderNotPersisted() {
	ctx := context.Background()
	t := suite.T()

	_, err := suite.ledger.CreateOrder(ctx, "buyer@example.com", nil, 5000)
	require.ErrorIs(t, err, domain.ErrValidation)

	orders, err := suite.ledger.ListOrders(ctx, "buyer@example.com", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func (suite *OrderLedgerTestSuite) Test_MarkPaid_UnknownOrder() {
	err := suite.ledger.MarkPaid(context.Background(), "missing", "pi_1")
	assert.ErrorIs(suite.T(), err, domain.ErrOrderNotFound)
}
