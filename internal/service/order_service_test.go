package service

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"cryptopay-gateway/internal/core/domain"
	"cryptopay-gateway/internal/core/ports"
	"cryptopay-gateway/internal/core/ports/mocks"
	"cryptopay-gateway/pkg/apperror"
	"cryptopay-gateway/pkg/money"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

var (
	testNow      = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	testUSDT     = domain.Token{Network: "bsc", Symbol: "USDT", Address: "0x55d398326f99059fF775485246999027B3197955", Decimals: 18}
	testDeposit  = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testPlatform = common.HexToAddress("0x9999999999999999999999999999999999999999")
)

func usdt(s string) *big.Int { return money.MustParseUnits(s, 18) }

type orderTestDeps struct {
	svc        *OrderServiceImpl
	orders     *mocks.MockOrderRepository
	txs        *mocks.MockTransactionRepository
	merchants  *mocks.MockMerchantRepository
	transactor *mocks.MockDBTransactor
	deriver    *mocks.MockWalletDeriver
	ledgers    *mocks.MockLedgerRegistry
	ledger     *mocks.MockTokenLedger
	notifier   *mocks.MockNotificationQueue
	idempCache *mocks.MockIdempotencyCache
	watcher    *mocks.MockAddressWatcher
}

func setupOrderService(t *testing.T) *orderTestDeps {
	ctrl := gomock.NewController(t)
	d := &orderTestDeps{
		orders:     mocks.NewMockOrderRepository(ctrl),
		txs:        mocks.NewMockTransactionRepository(ctrl),
		merchants:  mocks.NewMockMerchantRepository(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		deriver:    mocks.NewMockWalletDeriver(ctrl),
		ledgers:    mocks.NewMockLedgerRegistry(ctrl),
		ledger:     mocks.NewMockTokenLedger(ctrl),
		notifier:   mocks.NewMockNotificationQueue(ctrl),
		idempCache: mocks.NewMockIdempotencyCache(ctrl),
		watcher:    mocks.NewMockAddressWatcher(ctrl),
	}
	d.svc = NewOrderService(
		d.orders, d.txs, d.merchants, d.transactor, d.deriver, d.ledgers,
		d.notifier, d.idempCache,
		OrderConfig{
			DefaultFeePercent:     decimal.RequireFromString("2.5"),
			OrderTTL:              15 * time.Minute,
			ConfirmationThreshold: 12,
		},
		zerolog.Nop(),
	)
	d.svc.now = func() time.Time { return testNow }
	d.svc.SetWatcher(d.watcher)
	return d
}

func activeMerchant() *domain.Merchant {
	return &domain.Merchant{
		ID:            uuid.New(),
		Name:          "Shop",
		WalletAddress: testMerchantWallet,
		Status:        domain.MerchantStatusActive,
	}
}

func (d *orderTestDeps) expectCurrency() {
	d.ledgers.EXPECT().Ledger("USDT").Return(d.ledger, nil)
	d.ledger.EXPECT().Token().Return(testUSDT).AnyTimes()
}

// ==================== CreateOrder Tests ====================

func TestOrderService_CreateOrder_Success(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()
	merchant := activeMerchant()
	callback := "https://shop.example/hook"

	d.merchants.EXPECT().GetByID(ctx, merchant.ID).Return(merchant, nil)
	d.expectCurrency()
	key := domain.BuildIdempotencyKey(merchant.ID, "ORDER-1")
	d.idempCache.EXPECT().Get(ctx, key).Return(nil, nil)
	d.orders.EXPECT().GetByExternalID(ctx, merchant.ID, "ORDER-1").Return(nil, nil)
	d.orders.EXPECT().NextDerivationIndex(ctx).Return(int64(7), nil)
	d.deriver.EXPECT().DeriveAddress(uint32(7)).Return(testDeposit)
	d.orders.EXPECT().Create(ctx, gomock.Any()).Return(true, nil)
	d.idempCache.EXPECT().Set(ctx, key, gomock.Any(), defaultIdempotencyTTL).Return(nil)
	d.watcher.EXPECT().Watch(ctx, gomock.Any()).Return(nil)
	d.notifier.EXPECT().Enqueue(ctx, gomock.Any(), domain.EventPaymentCreated).Return(nil)

	order, err := d.svc.CreateOrder(ctx, ports.CreateOrderRequest{
		MerchantID:      merchant.ID,
		ExternalOrderID: "ORDER-1",
		Amount:          "100",
		Currency:        "USDT",
		CallbackURL:     &callback,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusCreated, order.Status)
	assert.Equal(t, testDeposit.Hex(), order.DepositAddress)
	assert.Equal(t, uint32(7), order.DerivationIndex)
	assert.Equal(t, 0, usdt("100").Cmp(order.Amount))
	assert.Equal(t, 0, usdt("2.5").Cmp(order.FeeAmount))
	assert.Equal(t, 0, usdt("97.5").Cmp(order.NetAmount))
	assert.Equal(t, testNow.Add(15*time.Minute), order.ExpiresAt)
	assert.Equal(t, &callback, order.CallbackURL)
}

func TestOrderService_CreateOrder_MerchantFeeAndDefaultCallback(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()
	merchant := activeMerchant()
	fee := decimal.RequireFromString("1")
	hook := "https://merchant.example/hook"
	merchant.FeePercent = &fee
	merchant.WebhookURL = &hook

	d.merchants.EXPECT().GetByID(ctx, merchant.ID).Return(merchant, nil)
	d.expectCurrency()
	d.idempCache.EXPECT().Get(ctx, gomock.Any()).Return(nil, nil)
	d.orders.EXPECT().GetByExternalID(ctx, merchant.ID, "ORDER-2").Return(nil, nil)
	d.orders.EXPECT().NextDerivationIndex(ctx).Return(int64(8), nil)
	d.deriver.EXPECT().DeriveAddress(uint32(8)).Return(testDeposit)
	d.orders.EXPECT().Create(ctx, gomock.Any()).Return(true, nil)
	d.idempCache.EXPECT().Set(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
	d.watcher.EXPECT().Watch(ctx, gomock.Any()).Return(nil)
	d.notifier.EXPECT().Enqueue(ctx, gomock.Any(), domain.EventPaymentCreated).Return(nil)

	order, err := d.svc.CreateOrder(ctx, ports.CreateOrderRequest{
		MerchantID: merchant.ID, ExternalOrderID: "ORDER-2", Amount: "50", Currency: "USDT",
	})
	require.NoError(t, err, "cache failure must not fail creation")
	assert.Equal(t, 0, usdt("0.5").Cmp(order.FeeAmount))
	assert.Equal(t, &hook, order.CallbackURL)
}

func TestOrderService_CreateOrder_IdempotentFromCache(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()
	merchant := activeMerchant()
	existing := &domain.PaymentOrder{ID: uuid.New(), MerchantID: merchant.ID, ExternalOrderID: "ORDER-1"}

	d.merchants.EXPECT().GetByID(ctx, merchant.ID).Return(merchant, nil)
	d.expectCurrency()
	d.idempCache.EXPECT().Get(ctx, gomock.Any()).Return([]byte(existing.ID.String()), nil)
	d.orders.EXPECT().GetByID(ctx, existing.ID).Return(existing, nil)

	order, err := d.svc.CreateOrder(ctx, ports.CreateOrderRequest{
		MerchantID: merchant.ID, ExternalOrderID: "ORDER-1", Amount: "100", Currency: "USDT",
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, order.ID)
}

func TestOrderService_CreateOrder_IdempotentFromDB(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()
	merchant := activeMerchant()
	existing := &domain.PaymentOrder{ID: uuid.New(), MerchantID: merchant.ID, ExternalOrderID: "ORDER-1"}

	d.merchants.EXPECT().GetByID(ctx, merchant.ID).Return(merchant, nil)
	d.expectCurrency()
	d.idempCache.EXPECT().Get(ctx, gomock.Any()).Return(nil, errors.New("redis down"))
	d.orders.EXPECT().GetByExternalID(ctx, merchant.ID, "ORDER-1").Return(existing, nil)

	order, err := d.svc.CreateOrder(ctx, ports.CreateOrderRequest{
		MerchantID: merchant.ID, ExternalOrderID: "ORDER-1", Amount: "100", Currency: "USDT",
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, order.ID)
}

func TestOrderService_CreateOrder_ConflictReturnsWinner(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()
	merchant := activeMerchant()
	winner := &domain.PaymentOrder{ID: uuid.New(), MerchantID: merchant.ID, ExternalOrderID: "ORDER-1"}

	d.merchants.EXPECT().GetByID(ctx, merchant.ID).Return(merchant, nil)
	d.expectCurrency()
	d.idempCache.EXPECT().Get(ctx, gomock.Any()).Return(nil, nil)
	gomock.InOrder(
		d.orders.EXPECT().GetByExternalID(ctx, merchant.ID, "ORDER-1").Return(nil, nil),
		d.orders.EXPECT().GetByExternalID(ctx, merchant.ID, "ORDER-1").Return(winner, nil),
	)
	d.orders.EXPECT().NextDerivationIndex(ctx).Return(int64(9), nil)
	d.deriver.EXPECT().DeriveAddress(uint32(9)).Return(testDeposit)
	d.orders.EXPECT().Create(ctx, gomock.Any()).Return(false, nil)

	order, err := d.svc.CreateOrder(ctx, ports.CreateOrderRequest{
		MerchantID: merchant.ID, ExternalOrderID: "ORDER-1", Amount: "100", Currency: "USDT",
	})
	require.NoError(t, err)
	assert.Equal(t, winner.ID, order.ID)
}

func TestOrderService_CreateOrder_UnsupportedCurrency(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()
	merchant := activeMerchant()

	d.merchants.EXPECT().GetByID(ctx, merchant.ID).Return(merchant, nil)
	d.ledgers.EXPECT().Ledger("DOGE").Return(nil, errors.New("unknown token"))

	_, err := d.svc.CreateOrder(ctx, ports.CreateOrderRequest{
		MerchantID: merchant.ID, ExternalOrderID: "O", Amount: "1", Currency: "DOGE",
	})
	assert.ErrorIs(t, err, apperror.ErrUnsupportedCurrency("DOGE"))
}

func TestOrderService_CreateOrder_InvalidAmount(t *testing.T) {
	for _, amount := range []string{"0", "-5", "abc", "", "1.0000000000000000001"} {
		t.Run(amount, func(t *testing.T) {
			d := setupOrderService(t)
			ctx := context.Background()
			merchant := activeMerchant()

			d.merchants.EXPECT().GetByID(ctx, merchant.ID).Return(merchant, nil)
			d.expectCurrency()

			_, err := d.svc.CreateOrder(ctx, ports.CreateOrderRequest{
				MerchantID: merchant.ID, ExternalOrderID: "O", Amount: amount, Currency: "USDT",
			})
			assert.ErrorIs(t, err, apperror.ErrInvalidAmount())
		})
	}
}

func TestOrderService_CreateOrder_SuspendedMerchant(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()
	merchant := activeMerchant()
	merchant.Status = domain.MerchantStatusSuspended

	d.merchants.EXPECT().GetByID(ctx, merchant.ID).Return(merchant, nil)

	_, err := d.svc.CreateOrder(ctx, ports.CreateOrderRequest{
		MerchantID: merchant.ID, ExternalOrderID: "O", Amount: "1", Currency: "USDT",
	})
	assert.ErrorIs(t, err, apperror.ErrMerchantSuspended())
}

func TestOrderService_CreateOrder_MissingExternalID(t *testing.T) {
	d := setupOrderService(t)

	_, err := d.svc.CreateOrder(context.Background(), ports.CreateOrderRequest{
		MerchantID: uuid.New(), ExternalOrderID: "  ", Amount: "1", Currency: "USDT",
	})
	assert.Error(t, err)
}

func TestOrderService_CreateOrder_IndexExhausted(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()
	merchant := activeMerchant()

	d.merchants.EXPECT().GetByID(ctx, merchant.ID).Return(merchant, nil)
	d.expectCurrency()
	d.idempCache.EXPECT().Get(ctx, gomock.Any()).Return(nil, nil)
	d.orders.EXPECT().GetByExternalID(ctx, merchant.ID, "O").Return(nil, nil)
	d.orders.EXPECT().NextDerivationIndex(ctx).Return(int64(domain.MaxDerivationIndex)+1, nil)

	_, err := d.svc.CreateOrder(ctx, ports.CreateOrderRequest{
		MerchantID: merchant.ID, ExternalOrderID: "O", Amount: "1", Currency: "USDT",
	})
	assert.ErrorIs(t, err, apperror.ErrIndexExhausted())
}

// ==================== RecordIncomingTransaction Tests ====================

func createdOrder() *domain.PaymentOrder {
	return &domain.PaymentOrder{
		ID:              uuid.New(),
		MerchantID:      uuid.New(),
		ExternalOrderID: "ORDER-1",
		Amount:          usdt("100"),
		FeeAmount:       usdt("2.5"),
		NetAmount:       usdt("97.5"),
		Currency:        "USDT",
		DepositAddress:  testDeposit.Hex(),
		DerivationIndex: 7,
		Status:          domain.OrderStatusCreated,
		ExpiresAt:       testNow.Add(15 * time.Minute),
	}
}

func incoming(amount string) domain.IncomingTransfer {
	return domain.IncomingTransfer{
		TxHash:      "0xabc",
		From:        "0x2222222222222222222222222222222222222222",
		To:          testDeposit.Hex(),
		Amount:      usdt(amount),
		BlockNumber: 1000,
	}
}

func TestOrderService_RecordIncoming_MovesToPending(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()
	order := createdOrder()
	tx := &mockTx{}

	d.orders.EXPECT().GetByAddress(ctx, testDeposit.Hex()).Return(order, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.txs.EXPECT().Create(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, txn *domain.Transaction) (bool, error) {
			assert.Equal(t, order.ID, txn.OrderID)
			assert.Equal(t, domain.TransactionStatusPending, txn.Status)
			assert.Equal(t, uint64(1000), txn.BlockNumber)
			return true, nil
		})
	d.orders.EXPECT().Transition(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, tr domain.OrderTransition) (bool, error) {
			assert.Equal(t, domain.OrderStatusCreated, tr.From)
			assert.Equal(t, domain.OrderStatusPending, tr.To)
			require.NotNil(t, tr.TxHash)
			assert.Equal(t, "0xabc", *tr.TxHash)
			return true, nil
		})
	d.notifier.EXPECT().Enqueue(ctx, gomock.Any(), domain.EventPaymentPending).DoAndReturn(
		func(_ context.Context, o *domain.PaymentOrder, _ domain.WebhookEvent) error {
			assert.Equal(t, domain.OrderStatusPending, o.Status)
			return nil
		})

	require.NoError(t, d.svc.RecordIncomingTransaction(ctx, incoming("100")))
}

func TestOrderService_RecordIncoming_OverpaymentAccepted(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()
	tx := &mockTx{}

	d.orders.EXPECT().GetByAddress(ctx, gomock.Any()).Return(createdOrder(), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.txs.EXPECT().Create(ctx, tx, gomock.Any()).Return(true, nil)
	d.orders.EXPECT().Transition(ctx, tx, gomock.Any()).Return(true, nil)
	d.notifier.EXPECT().Enqueue(ctx, gomock.Any(), domain.EventPaymentPending).Return(nil)

	require.NoError(t, d.svc.RecordIncomingTransaction(ctx, incoming("150")))
}

func TestOrderService_RecordIncoming_PartialIgnored(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()

	d.orders.EXPECT().GetByAddress(ctx, gomock.Any()).Return(createdOrder(), nil)

	require.NoError(t, d.svc.RecordIncomingTransaction(ctx, incoming("99.999999")))
}

func TestOrderService_RecordIncoming_UnknownAddress(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()

	d.orders.EXPECT().GetByAddress(ctx, gomock.Any()).Return(nil, nil)

	require.NoError(t, d.svc.RecordIncomingTransaction(ctx, incoming("100")))
}

func TestOrderService_RecordIncoming_NotCreatedIgnored(t *testing.T) {
	for _, status := range []domain.OrderStatus{
		domain.OrderStatusPending, domain.OrderStatusConfirmed, domain.OrderStatusSettled, domain.OrderStatusExpired,
	} {
		t.Run(string(status), func(t *testing.T) {
			d := setupOrderService(t)
			ctx := context.Background()
			order := createdOrder()
			order.Status = status

			d.orders.EXPECT().GetByAddress(ctx, gomock.Any()).Return(order, nil)

			require.NoError(t, d.svc.RecordIncomingTransaction(ctx, incoming("100")))
		})
	}
}

func TestOrderService_RecordIncoming_DuplicateHash(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()
	tx := &mockTx{}

	d.orders.EXPECT().GetByAddress(ctx, gomock.Any()).Return(createdOrder(), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.txs.EXPECT().Create(ctx, tx, gomock.Any()).Return(false, nil)

	require.NoError(t, d.svc.RecordIncomingTransaction(ctx, incoming("100")))
}

func TestOrderService_RecordIncoming_LostRace(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()
	tx := &mockTx{}

	d.orders.EXPECT().GetByAddress(ctx, gomock.Any()).Return(createdOrder(), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.txs.EXPECT().Create(ctx, tx, gomock.Any()).Return(true, nil)
	d.orders.EXPECT().Transition(ctx, tx, gomock.Any()).Return(false, nil)

	require.NoError(t, d.svc.RecordIncomingTransaction(ctx, incoming("100")))
}

// ==================== UpdateConfirmations Tests ====================

func pendingTxn() *domain.Transaction {
	return &domain.Transaction{
		ID:          uuid.New(),
		TxHash:      "0xabc",
		OrderID:     uuid.New(),
		ToAddress:   testDeposit.Hex(),
		Amount:      usdt("100"),
		BlockNumber: 1000,
		Status:      domain.TransactionStatusPending,
	}
}

func TestOrderService_UpdateConfirmations_BelowThreshold(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()
	tx := &mockTx{}

	d.txs.EXPECT().GetByHash(ctx, "0xabc").Return(pendingTxn(), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.txs.EXPECT().UpdateConfirmations(ctx, tx, "0xabc", uint64(5), domain.TransactionStatusPending).Return(nil)

	confirmed, err := d.svc.UpdateConfirmations(ctx, "0xabc", 5)
	require.NoError(t, err)
	assert.False(t, confirmed)
}

func TestOrderService_UpdateConfirmations_ReachesThreshold(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()
	tx := &mockTx{}
	txn := pendingTxn()
	order := createdOrder()
	order.ID = txn.OrderID
	order.Status = domain.OrderStatusConfirmed

	d.txs.EXPECT().GetByHash(ctx, "0xabc").Return(txn, nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.txs.EXPECT().UpdateConfirmations(ctx, tx, "0xabc", uint64(12), domain.TransactionStatusConfirmed).Return(nil)
	d.orders.EXPECT().Transition(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, tr domain.OrderTransition) (bool, error) {
			assert.Equal(t, domain.OrderStatusPending, tr.From)
			assert.Equal(t, domain.OrderStatusConfirmed, tr.To)
			return true, nil
		})
	d.orders.EXPECT().GetByID(ctx, txn.OrderID).Return(order, nil)
	d.notifier.EXPECT().Enqueue(ctx, order, domain.EventPaymentConfirmed).Return(nil)

	confirmed, err := d.svc.UpdateConfirmations(ctx, "0xabc", 12)
	require.NoError(t, err)
	assert.True(t, confirmed)
}

func TestOrderService_UpdateConfirmations_AlreadyConfirmed(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()
	txn := pendingTxn()
	txn.Status = domain.TransactionStatusConfirmed

	d.txs.EXPECT().GetByHash(ctx, "0xabc").Return(txn, nil)

	confirmed, err := d.svc.UpdateConfirmations(ctx, "0xabc", 30)
	require.NoError(t, err)
	assert.False(t, confirmed, "confirmation reported only once")
}

func TestOrderService_UpdateConfirmations_OrderMovedElsewhere(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()
	tx := &mockTx{}

	d.txs.EXPECT().GetByHash(ctx, "0xabc").Return(pendingTxn(), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.txs.EXPECT().UpdateConfirmations(ctx, tx, "0xabc", uint64(12), domain.TransactionStatusConfirmed).Return(nil)
	d.orders.EXPECT().Transition(ctx, tx, gomock.Any()).Return(false, nil)

	confirmed, err := d.svc.UpdateConfirmations(ctx, "0xabc", 12)
	require.NoError(t, err)
	assert.False(t, confirmed)
}

func TestOrderService_UpdateConfirmations_UnknownHash(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()

	d.txs.EXPECT().GetByHash(ctx, "0xdead").Return(nil, nil)

	_, err := d.svc.UpdateConfirmations(ctx, "0xdead", 1)
	assert.ErrorIs(t, err, apperror.ErrNotFound("transaction"))
}

// ==================== Expiry / Settle / Fail Tests ====================

func TestOrderService_ExpireStaleOrders(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()
	a, b := createdOrder(), createdOrder()
	a.Status, b.Status = domain.OrderStatusExpired, domain.OrderStatusExpired

	d.orders.EXPECT().ExpireStale(ctx, testNow).Return([]domain.ExpiredOrder{
		{ID: a.ID, DepositAddress: "0xA", PreviousStatus: domain.OrderStatusCreated},
		{ID: b.ID, DepositAddress: "0xB", PreviousStatus: domain.OrderStatusPending},
	}, nil)
	d.watcher.EXPECT().Unwatch("0xA")
	d.watcher.EXPECT().Unwatch("0xB")
	d.orders.EXPECT().GetByID(ctx, a.ID).Return(a, nil)
	d.orders.EXPECT().GetByID(ctx, b.ID).Return(b, nil)
	d.notifier.EXPECT().Enqueue(ctx, gomock.Any(), domain.EventPaymentExpired).Return(nil).Times(2)

	n, err := d.svc.ExpireStaleOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestOrderService_ExpireStaleOrders_None(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()

	d.orders.EXPECT().ExpireStale(ctx, testNow).Return(nil, nil)

	n, err := d.svc.ExpireStaleOrders(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOrderService_MarkSettled(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()
	order := createdOrder()
	order.Status = domain.OrderStatusSettled

	d.orders.EXPECT().Transition(ctx, nil, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, tr domain.OrderTransition) (bool, error) {
			assert.Equal(t, domain.OrderStatusConfirmed, tr.From)
			assert.Equal(t, domain.OrderStatusSettled, tr.To)
			return true, nil
		})
	d.orders.EXPECT().GetByID(ctx, order.ID).Return(order, nil)
	d.notifier.EXPECT().Enqueue(ctx, order, domain.EventPaymentSettled).Return(nil)

	moved, err := d.svc.MarkSettled(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, moved)
}

func TestOrderService_MarkSettled_NotConfirmed(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()

	d.orders.EXPECT().Transition(ctx, nil, gomock.Any()).Return(false, nil)

	moved, err := d.svc.MarkSettled(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, moved)
}

func TestOrderService_FailOrder(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()
	order := createdOrder()

	d.orders.EXPECT().GetByID(ctx, order.ID).Return(order, nil)
	d.orders.EXPECT().Transition(ctx, nil, gomock.Any()).Return(true, nil)
	d.watcher.EXPECT().Unwatch(order.DepositAddress)
	d.notifier.EXPECT().Enqueue(ctx, gomock.Any(), domain.EventPaymentFailed).Return(nil)

	require.NoError(t, d.svc.FailOrder(ctx, order.ID, "operator"))
}

func TestOrderService_FailOrder_Terminal(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()
	order := createdOrder()
	order.Status = domain.OrderStatusSettled

	d.orders.EXPECT().GetByID(ctx, order.ID).Return(order, nil)

	err := d.svc.FailOrder(ctx, order.ID, "operator")
	assert.ErrorIs(t, err, apperror.ErrInvalidStatus("", ""))
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()

	d.orders.EXPECT().GetByID(ctx, gomock.Any()).Return(nil, nil)

	_, err := d.svc.GetOrder(ctx, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound("payment"))
}

func TestOrderService_ListOpenOrders(t *testing.T) {
	d := setupOrderService(t)
	ctx := context.Background()

	d.orders.EXPECT().ListByStatus(ctx,
		[]domain.OrderStatus{domain.OrderStatusCreated, domain.OrderStatusPending}, openOrderLimit,
	).Return([]domain.PaymentOrder{*createdOrder()}, nil)

	orders, err := d.svc.ListOpenOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
