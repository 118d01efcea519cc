package service

import (
	"context"
	"sync"

	"cryptopay-gateway/internal/core/domain"
	"cryptopay-gateway/internal/core/ports"
	"cryptopay-gateway/internal/observability"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SettlementQueue is the bounded handoff between the confirmation sweep and
// the settlement engine. A single worker drains it so a slow payout never
// stalls the sweep.
type SettlementQueue struct {
	engine      ports.SettlementEngine
	gas         ports.GasKeeper
	orders      ports.OrderRepository
	autoFundGas bool
	jobs        chan uuid.UUID
	mu          sync.Mutex
	queued      map[uuid.UUID]struct{}
	metrics     *observability.GatewayMetrics
	log         zerolog.Logger
}

// NewSettlementQueue creates a queue holding at most size orders. gas and
// orders are only used when autoFundGas is set.
func NewSettlementQueue(
	engine ports.SettlementEngine,
	gas ports.GasKeeper,
	orders ports.OrderRepository,
	size int,
	autoFundGas bool,
	log zerolog.Logger,
) *SettlementQueue {
	if size <= 0 {
		size = 256
	}
	return &SettlementQueue{
		engine:      engine,
		gas:         gas,
		orders:      orders,
		autoFundGas: autoFundGas,
		jobs:        make(chan uuid.UUID, size),
		queued:      make(map[uuid.UUID]struct{}),
		metrics:     observability.Metrics(),
		log:         log,
	}
}

// TrySubmit enqueues the order without blocking. It returns false when the
// queue is full; an order already queued counts as accepted.
func (q *SettlementQueue) TrySubmit(orderID uuid.UUID) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.queued[orderID]; ok {
		return true
	}
	select {
	case q.jobs <- orderID:
		q.queued[orderID] = struct{}{}
		q.metrics.SetQueueDepth(len(q.jobs))
		return true
	default:
		return false
	}
}

// Len returns the number of orders waiting.
func (q *SettlementQueue) Len() int {
	return len(q.jobs)
}

// Run drains the queue until ctx is cancelled.
func (q *SettlementQueue) Run(ctx context.Context) {
	q.log.Info().Int("capacity", cap(q.jobs)).Msg("settlement worker started")
	for {
		select {
		case <-ctx.Done():
			q.log.Info().Int("pending", len(q.jobs)).Msg("settlement worker stopped")
			return
		case id := <-q.jobs:
			q.mu.Lock()
			delete(q.queued, id)
			q.metrics.SetQueueDepth(len(q.jobs))
			q.mu.Unlock()

			q.process(ctx, id)
		}
	}
}

func (q *SettlementQueue) process(ctx context.Context, orderID uuid.UUID) *domain.SettlementResult {
	result := q.engine.Settle(ctx, orderID)
	if result.Reason != domain.ReasonInsufficientGas || !q.autoFundGas {
		return result
	}

	order, err := q.orders.GetByID(ctx, orderID)
	if err != nil || order == nil {
		q.log.Warn().Err(err).Str("order_id", orderID.String()).Msg("auto gas funding skipped: order lookup failed")
		return result
	}

	funded := q.gas.FundAddress(ctx, order.DepositAddress)
	if !funded.Success {
		q.log.Warn().
			Str("order_id", orderID.String()).
			Str("address", order.DepositAddress).
			Str("reason", funded.Reason).
			Msg("auto gas funding failed")
		return result
	}

	q.log.Info().Str("order_id", orderID.String()).Msg("deposit address funded, retrying settlement")
	return q.engine.Settle(ctx, orderID)
}
