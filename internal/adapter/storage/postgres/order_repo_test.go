package postgres

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"cryptopay-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder() *domain.PaymentOrder {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.PaymentOrder{
		ID:              uuid.New(),
		MerchantID:      uuid.New(),
		ExternalOrderID: "ORDER-1001",
		Amount:          mustBig("100000000000000000000"),
		FeeAmount:       mustBig("2500000000000000000"),
		NetAmount:       mustBig("97500000000000000000"),
		Currency:        "USDT",
		DepositAddress:  "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		DerivationIndex: 7,
		Status:          domain.OrderStatusCreated,
		ExpiresAt:       now.Add(15 * time.Minute),
		CallbackURL:     strPtr("https://shop.example/hook"),
		Metadata:        map[string]any{"cart": "42"},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func mustBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic(s)
	}
	return v
}

func orderColumns() []string {
	return []string{"id", "merchant_id", "external_order_id", "amount", "fee_amount", "net_amount",
		"currency", "deposit_address", "derivation_index", "status", "tx_hash", "expires_at",
		"callback_url", "return_url", "metadata", "settled_at", "created_at", "updated_at"}
}

func orderRow(rows *pgxmock.Rows, o *domain.PaymentOrder) *pgxmock.Rows {
	return rows.AddRow(
		o.ID, o.MerchantID, o.ExternalOrderID, o.Amount.String(), o.FeeAmount.String(), o.NetAmount.String(),
		o.Currency, o.DepositAddress, o.DerivationIndex, o.Status, o.TxHash, o.ExpiresAt,
		o.CallbackURL, o.ReturnURL, []byte(`{"cart":"42"}`), o.SettledAt, o.CreatedAt, o.UpdatedAt,
	)
}

func TestOrderRepo_NextDerivationIndex(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	mock.ExpectQuery("SELECT nextval").
		WillReturnRows(pgxmock.NewRows([]string{"nextval"}).AddRow(int64(12)))

	idx, err := repo.NextDerivationIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), idx)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	o := newTestOrder()

	mock.ExpectExec("INSERT INTO payment_orders").
		WithArgs(
			o.ID, o.MerchantID, o.ExternalOrderID,
			"100000000000000000000", "2500000000000000000", "97500000000000000000",
			o.Currency, o.DepositAddress, int64(7), o.Status, o.ExpiresAt,
			o.CallbackURL, o.ReturnURL, []byte(`{"cart":"42"}`),
			o.CreatedAt, o.UpdatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	created, err := repo.Create(context.Background(), o)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_Create_Duplicate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	mock.ExpectExec("INSERT INTO payment_orders .+ ON CONFLICT").
		WithArgs(anyArgs(16)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	o := newTestOrder()
	o.Metadata = nil
	created, err := repo.Create(context.Background(), o)
	require.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	o := newTestOrder()

	mock.ExpectQuery("SELECT .+ FROM payment_orders WHERE id").
		WithArgs(o.ID).
		WillReturnRows(orderRow(pgxmock.NewRows(orderColumns()), o))

	got, err := repo.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, o.ID, got.ID)
	assert.Equal(t, 0, o.Amount.Cmp(got.Amount))
	assert.Equal(t, 0, new(big.Int).Add(got.FeeAmount, got.NetAmount).Cmp(got.Amount))
	assert.Equal(t, uint32(7), got.DerivationIndex)
	assert.Equal(t, "42", got.Metadata["cart"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_GetByAddress_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	mock.ExpectQuery("SELECT .+ FROM payment_orders WHERE lower\\(deposit_address\\)").
		WithArgs("0xabc").
		WillReturnRows(pgxmock.NewRows(orderColumns()))

	got, err := repo.GetByAddress(context.Background(), "0xabc")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestOrderRepo_ListByStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	a, b := newTestOrder(), newTestOrder()
	rows := orderRow(orderRow(pgxmock.NewRows(orderColumns()), a), b)

	mock.ExpectQuery("SELECT .+ FROM payment_orders\\s+WHERE status = ANY").
		WithArgs([]string{"CREATED", "PENDING"}, 100).
		WillReturnRows(rows)

	got, err := repo.ListByStatus(context.Background(), []domain.OrderStatus{domain.OrderStatusCreated, domain.OrderStatusPending}, 100)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, b.ID, got[1].ID)
}

func TestOrderRepo_Transition(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	id := uuid.New()
	now := time.Now().UTC()
	hash := "0xfeed"

	mock.ExpectBegin()
	mock.ExpectExec("WITH updated AS \\(\\s+UPDATE payment_orders").
		WithArgs("PENDING", now, &hash, id, "CREATED").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("WITH updated AS").
		WithArgs("PENDING", now, &hash, id, "CREATED").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	tr := domain.OrderTransition{OrderID: id, From: domain.OrderStatusCreated, To: domain.OrderStatusPending, TxHash: &hash, At: now}
	ok, err := repo.Transition(context.Background(), dbTx, tr)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Transition(context.Background(), dbTx, tr)
	require.NoError(t, err)
	assert.False(t, ok, "second writer must observe the status already moved")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_Transition_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	mock.ExpectExec("WITH updated AS").
		WithArgs(anyArgs(5)...).
		WillReturnError(errors.New("connection reset"))

	_, err = repo.Transition(context.Background(), nil, domain.OrderTransition{
		OrderID: uuid.New(), From: domain.OrderStatusConfirmed, To: domain.OrderStatusSettled, At: time.Now(),
	})
	assert.ErrorContains(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_ExpireStale(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	now := time.Now().UTC()
	id1, id2 := uuid.New(), uuid.New()

	mock.ExpectQuery("WITH stale AS .+ FOR UPDATE SKIP LOCKED").
		WithArgs(now).
		WillReturnRows(pgxmock.NewRows([]string{"id", "deposit_address", "previous_status"}).
			AddRow(id1, "0xaaa", domain.OrderStatusCreated).
			AddRow(id2, "0xbbb", domain.OrderStatusPending))

	expired, err := repo.ExpireStale(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, expired, 2)
	assert.Equal(t, id1, expired[0].ID)
	assert.Equal(t, domain.OrderStatusPending, expired[1].PreviousStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepo_Stats(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	mock.ExpectQuery("SELECT status, currency, COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"status", "currency", "count", "total", "fees"}).
			AddRow(domain.OrderStatusSettled, "USDT", int64(3), "300", "9"))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, int64(3), stats[0].Count)
	assert.Equal(t, int64(300), stats[0].TotalAmount.Int64())
	assert.Equal(t, int64(9), stats[0].TotalFees.Int64())
}

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}
