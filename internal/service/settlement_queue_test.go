package service

import (
	"context"
	"testing"
	"time"

	"cryptopay-gateway/internal/core/domain"
	"cryptopay-gateway/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestSettlementQueue_TrySubmitBounded(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := NewSettlementQueue(mocks.NewMockSettlementEngine(ctrl), nil, nil, 2, false, zerolog.Nop())

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	assert.True(t, q.TrySubmit(a))
	assert.True(t, q.TrySubmit(a), "duplicate counts as accepted")
	assert.True(t, q.TrySubmit(b))
	assert.False(t, q.TrySubmit(c), "full queue rejects without blocking")
	assert.Equal(t, 2, q.Len())
}

func TestSettlementQueue_RunDrains(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockSettlementEngine(ctrl)
	q := NewSettlementQueue(engine, nil, nil, 4, false, zerolog.Nop())

	id := uuid.New()
	done := make(chan struct{})
	engine.EXPECT().Settle(gomock.Any(), id).DoAndReturn(
		func(_ context.Context, id uuid.UUID) *domain.SettlementResult {
			close(done)
			return &domain.SettlementResult{OrderID: id, Outcome: domain.SettlementSuccess}
		})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	assert.True(t, q.TrySubmit(id))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("order was not settled")
	}
}

func TestSettlementQueue_AutoFundRetriesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockSettlementEngine(ctrl)
	gas := mocks.NewMockGasKeeper(ctrl)
	orders := mocks.NewMockOrderRepository(ctrl)
	q := NewSettlementQueue(engine, gas, orders, 4, true, zerolog.Nop())

	order := createdOrder()
	gomock.InOrder(
		engine.EXPECT().Settle(gomock.Any(), order.ID).Return(&domain.SettlementResult{
			OrderID: order.ID, Outcome: domain.SettlementFailed, Reason: domain.ReasonInsufficientGas,
		}),
		orders.EXPECT().GetByID(gomock.Any(), order.ID).Return(order, nil),
		gas.EXPECT().FundAddress(gomock.Any(), order.DepositAddress).Return(&domain.GasResult{Success: true}),
		engine.EXPECT().Settle(gomock.Any(), order.ID).Return(&domain.SettlementResult{
			OrderID: order.ID, Outcome: domain.SettlementSuccess,
		}),
	)

	res := q.process(context.Background(), order.ID)
	assert.Equal(t, domain.SettlementSuccess, res.Outcome)
}

func TestSettlementQueue_AutoFundFailureKeepsResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockSettlementEngine(ctrl)
	gas := mocks.NewMockGasKeeper(ctrl)
	orders := mocks.NewMockOrderRepository(ctrl)
	q := NewSettlementQueue(engine, gas, orders, 4, true, zerolog.Nop())

	order := createdOrder()
	engine.EXPECT().Settle(gomock.Any(), order.ID).Return(&domain.SettlementResult{
		OrderID: order.ID, Outcome: domain.SettlementFailed, Reason: domain.ReasonInsufficientGas,
	})
	orders.EXPECT().GetByID(gomock.Any(), order.ID).Return(order, nil)
	gas.EXPECT().FundAddress(gomock.Any(), order.DepositAddress).Return(&domain.GasResult{
		Reason: domain.GasReasonInsufficientReservoir,
	})

	res := q.process(context.Background(), order.ID)
	assert.Equal(t, domain.ReasonInsufficientGas, res.Reason)
}

func TestSettlementQueue_NoAutoFundByDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mocks.NewMockSettlementEngine(ctrl)
	q := NewSettlementQueue(engine, nil, nil, 4, false, zerolog.Nop())

	id := uuid.New()
	engine.EXPECT().Settle(gomock.Any(), id).Return(&domain.SettlementResult{
		OrderID: id, Outcome: domain.SettlementFailed, Reason: domain.ReasonInsufficientGas,
	})

	res := q.process(context.Background(), id)
	assert.Equal(t, domain.ReasonInsufficientGas, res.Reason)
}
