package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cryptopay-gateway/internal/core/domain"
	"cryptopay-gateway/internal/core/ports"
	"cryptopay-gateway/internal/observability"
	"cryptopay-gateway/pkg/apperror"
	"cryptopay-gateway/pkg/money"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	defaultIdempotencyTTL = 24 * time.Hour
	openOrderLimit        = 10000
)

// OrderConfig holds order lifecycle policy.
type OrderConfig struct {
	DefaultFeePercent     decimal.Decimal
	OrderTTL              time.Duration
	ConfirmationThreshold uint64
	IdempotencyTTL        time.Duration
}

// OrderServiceImpl implements ports.OrderStore.
type OrderServiceImpl struct {
	orders     ports.OrderRepository
	txs        ports.TransactionRepository
	merchants  ports.MerchantRepository
	transactor ports.DBTransactor
	deriver    ports.WalletDeriver
	ledgers    ports.LedgerRegistry
	notifier   ports.NotificationQueue
	idempCache ports.IdempotencyCache
	watcher    ports.AddressWatcher
	cfg        OrderConfig
	metrics    *observability.GatewayMetrics
	now        func() time.Time
	log        zerolog.Logger
}

// NewOrderService creates a new OrderServiceImpl. The address watcher is
// attached afterwards with SetWatcher because the watcher depends on the store.
func NewOrderService(
	orders ports.OrderRepository,
	txs ports.TransactionRepository,
	merchants ports.MerchantRepository,
	transactor ports.DBTransactor,
	deriver ports.WalletDeriver,
	ledgers ports.LedgerRegistry,
	notifier ports.NotificationQueue,
	idempCache ports.IdempotencyCache,
	cfg OrderConfig,
	log zerolog.Logger,
) *OrderServiceImpl {
	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = defaultIdempotencyTTL
	}
	return &OrderServiceImpl{
		orders:     orders,
		txs:        txs,
		merchants:  merchants,
		transactor: transactor,
		deriver:    deriver,
		ledgers:    ledgers,
		notifier:   notifier,
		idempCache: idempCache,
		cfg:        cfg,
		metrics:    observability.Metrics(),
		now:        func() time.Time { return time.Now().UTC() },
		log:        log,
	}
}

// SetWatcher attaches the chain watcher.
func (s *OrderServiceImpl) SetWatcher(w ports.AddressWatcher) {
	s.watcher = w
}

// CreateOrder validates the request, allocates a fresh deposit address and
// persists the order. Repeating a request with the same (merchant, external
// order id) returns the original order.
func (s *OrderServiceImpl) CreateOrder(ctx context.Context, req ports.CreateOrderRequest) (*domain.PaymentOrder, error) {
	req.ExternalOrderID = strings.TrimSpace(req.ExternalOrderID)
	if req.ExternalOrderID == "" {
		return nil, apperror.Validation("order_id is required")
	}

	merchant, err := s.merchants.GetByID(ctx, req.MerchantID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if merchant == nil {
		return nil, apperror.ErrNotFound("merchant")
	}
	if !merchant.IsActive() {
		return nil, apperror.ErrMerchantSuspended()
	}

	ledger, err := s.ledgers.Ledger(req.Currency)
	if err != nil {
		return nil, apperror.ErrUnsupportedCurrency(req.Currency)
	}
	token := ledger.Token()

	amount, err := money.ParsePositiveUnits(req.Amount, token.Decimals)
	if err != nil {
		return nil, apperror.ErrInvalidAmount()
	}

	idempKey := domain.BuildIdempotencyKey(req.MerchantID, req.ExternalOrderID)
	if existing := s.lookupIdempotent(ctx, idempKey); existing != nil {
		return existing, nil
	}
	existing, err := s.orders.GetByExternalID(ctx, req.MerchantID, req.ExternalOrderID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if existing != nil {
		return existing, nil
	}

	fee, net := money.SplitFee(amount, merchant.EffectiveFee(s.cfg.DefaultFeePercent))

	index, err := s.orders.NextDerivationIndex(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if index <= 0 || index > domain.MaxDerivationIndex {
		return nil, apperror.ErrIndexExhausted()
	}

	if req.CallbackURL == nil {
		req.CallbackURL = merchant.WebhookURL
	}

	now := s.now()
	order := &domain.PaymentOrder{
		ID:              uuid.New(),
		MerchantID:      req.MerchantID,
		ExternalOrderID: req.ExternalOrderID,
		Amount:          amount,
		FeeAmount:       fee,
		NetAmount:       net,
		Currency:        token.Symbol,
		DepositAddress:  s.deriver.DeriveAddress(uint32(index)).Hex(),
		DerivationIndex: uint32(index),
		Status:          domain.OrderStatusCreated,
		ExpiresAt:       now.Add(s.cfg.OrderTTL),
		CallbackURL:     req.CallbackURL,
		ReturnURL:       req.ReturnURL,
		Metadata:        req.Metadata,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if !created {
		// Lost a race with an identical request; the burnt index is never reused.
		existing, err := s.orders.GetByExternalID(ctx, req.MerchantID, req.ExternalOrderID)
		if err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
		if existing == nil {
			return nil, apperror.InternalError(errors.New("order vanished after conflict"))
		}
		return existing, nil
	}

	if err := s.idempCache.Set(ctx, idempKey, []byte(order.ID.String()), s.cfg.IdempotencyTTL); err != nil {
		s.log.Warn().Err(err).Str("key", idempKey).Msg("failed to cache idempotency key")
	}

	if s.watcher != nil {
		if err := s.watcher.Watch(ctx, order); err != nil {
			s.log.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to watch deposit address")
		}
	}
	s.notify(ctx, order, domain.EventPaymentCreated)
	s.metrics.OrderCreated(order.Currency)

	s.log.Info().
		Str("order_id", order.ID.String()).
		Str("merchant_id", order.MerchantID.String()).
		Str("external_order_id", order.ExternalOrderID).
		Str("amount", money.FormatUnits(amount, token.Decimals)).
		Str("currency", order.Currency).
		Str("address", order.DepositAddress).
		Uint32("index", order.DerivationIndex).
		Msg("payment order created")

	return order, nil
}

func (s *OrderServiceImpl) lookupIdempotent(ctx context.Context, key string) *domain.PaymentOrder {
	cached, err := s.idempCache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("redis idempotency check failed, falling through to DB")
		return nil
	}
	if cached == nil {
		return nil
	}
	id, err := uuid.ParseBytes(cached)
	if err != nil {
		return nil
	}
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cached order lookup failed")
		return nil
	}
	return order
}

// GetOrder returns one order.
func (s *OrderServiceImpl) GetOrder(ctx context.Context, id uuid.UUID) (*domain.PaymentOrder, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if order == nil {
		return nil, apperror.ErrNotFound("payment")
	}
	return order, nil
}

// ListOpenOrders returns CREATED and PENDING orders, i.e. the addresses that must be watched.
func (s *OrderServiceImpl) ListOpenOrders(ctx context.Context) ([]domain.PaymentOrder, error) {
	orders, err := s.orders.ListByStatus(ctx,
		[]domain.OrderStatus{domain.OrderStatusCreated, domain.OrderStatusPending}, openOrderLimit)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return orders, nil
}

// RecordIncomingTransaction matches a transfer to the order owning the
// recipient address. The first transfer covering the full amount moves a
// CREATED order to PENDING; underpayments are logged and ignored.
func (s *OrderServiceImpl) RecordIncomingTransaction(ctx context.Context, transfer domain.IncomingTransfer) error {
	order, err := s.orders.GetByAddress(ctx, transfer.To)
	if err != nil {
		return fmt.Errorf("lookup order by address: %w", err)
	}
	if order == nil {
		s.log.Debug().Str("to", transfer.To).Str("tx_hash", transfer.TxHash).Msg("transfer to unknown address ignored")
		return nil
	}

	logger := s.log.With().
		Str("order_id", order.ID.String()).
		Str("tx_hash", transfer.TxHash).
		Str("amount", transfer.Amount.String()).
		Logger()

	if order.Status != domain.OrderStatusCreated {
		logger.Info().Str("status", string(order.Status)).Msg("transfer to non-open order ignored")
		return nil
	}
	if transfer.Amount.Cmp(order.Amount) < 0 {
		logger.Warn().Str("expected", order.Amount.String()).Msg("partial payment received, order not advanced")
		return nil
	}

	now := s.now()
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	created, err := s.txs.Create(ctx, dbTx, &domain.Transaction{
		ID:          uuid.New(),
		TxHash:      transfer.TxHash,
		OrderID:     order.ID,
		FromAddress: transfer.From,
		ToAddress:   order.DepositAddress,
		Amount:      transfer.Amount,
		BlockNumber: transfer.BlockNumber,
		Status:      domain.TransactionStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return fmt.Errorf("record transaction: %w", err)
	}
	if !created {
		logger.Debug().Msg("transfer already recorded")
		return nil
	}

	hash := transfer.TxHash
	moved, err := s.orders.Transition(ctx, dbTx, domain.OrderTransition{
		OrderID: order.ID,
		From:    domain.OrderStatusCreated,
		To:      domain.OrderStatusPending,
		TxHash:  &hash,
		At:      now,
	})
	if err != nil {
		return fmt.Errorf("transition to pending: %w", err)
	}
	if !moved {
		logger.Info().Msg("order moved concurrently, transfer not recorded")
		return nil
	}

	if err := dbTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	order.Status = domain.OrderStatusPending
	order.TxHash = &hash
	order.UpdatedAt = now
	s.notify(ctx, order, domain.EventPaymentPending)
	s.metrics.OrderTransition(string(domain.OrderStatusPending))

	logger.Info().Uint64("block", transfer.BlockNumber).Msg("payment detected")
	return nil
}

// UpdateConfirmations stores the observed depth. Reaching the threshold moves
// the order to CONFIRMED; only the call performing that move returns true.
func (s *OrderServiceImpl) UpdateConfirmations(ctx context.Context, txHash string, confirmations uint64) (bool, error) {
	txn, err := s.txs.GetByHash(ctx, txHash)
	if err != nil {
		return false, fmt.Errorf("get transaction: %w", err)
	}
	if txn == nil {
		return false, apperror.ErrNotFound("transaction")
	}
	if txn.Status == domain.TransactionStatusConfirmed {
		return false, nil
	}

	reached := confirmations >= s.cfg.ConfirmationThreshold
	status := domain.TransactionStatusPending
	if reached {
		status = domain.TransactionStatusConfirmed
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.txs.UpdateConfirmations(ctx, dbTx, txHash, confirmations, status); err != nil {
		return false, fmt.Errorf("update confirmations: %w", err)
	}

	moved := false
	if reached {
		moved, err = s.orders.Transition(ctx, dbTx, domain.OrderTransition{
			OrderID: txn.OrderID,
			From:    domain.OrderStatusPending,
			To:      domain.OrderStatusConfirmed,
			At:      s.now(),
		})
		if err != nil {
			return false, fmt.Errorf("transition to confirmed: %w", err)
		}
	}

	if err := dbTx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit tx: %w", err)
	}

	if moved {
		s.metrics.OrderTransition(string(domain.OrderStatusConfirmed))
		s.log.Info().
			Str("order_id", txn.OrderID.String()).
			Str("tx_hash", txHash).
			Uint64("confirmations", confirmations).
			Msg("payment confirmed")
		if order, err := s.orders.GetByID(ctx, txn.OrderID); err == nil && order != nil {
			s.notify(ctx, order, domain.EventPaymentConfirmed)
		}
	}
	return moved, nil
}

// ExpireStaleOrders moves every CREATED or PENDING order past its deadline to EXPIRED.
func (s *OrderServiceImpl) ExpireStaleOrders(ctx context.Context) (int, error) {
	expired, err := s.orders.ExpireStale(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("expire stale orders: %w", err)
	}

	for _, e := range expired {
		if s.watcher != nil {
			s.watcher.Unwatch(e.DepositAddress)
		}
		s.metrics.OrderTransition(string(domain.OrderStatusExpired))

		order, err := s.orders.GetByID(ctx, e.ID)
		if err != nil || order == nil {
			s.log.Warn().Err(err).Str("order_id", e.ID.String()).Msg("expired order reload failed, webhook skipped")
			continue
		}
		s.notify(ctx, order, domain.EventPaymentExpired)
	}

	if len(expired) > 0 {
		s.log.Info().Int("count", len(expired)).Msg("expired stale orders")
	}
	return len(expired), nil
}

// MarkSettled moves a CONFIRMED order to SETTLED. Returns false if it was not CONFIRMED.
func (s *OrderServiceImpl) MarkSettled(ctx context.Context, orderID uuid.UUID) (bool, error) {
	moved, err := s.orders.Transition(ctx, nil, domain.OrderTransition{
		OrderID: orderID,
		From:    domain.OrderStatusConfirmed,
		To:      domain.OrderStatusSettled,
		At:      s.now(),
	})
	if err != nil {
		return false, fmt.Errorf("transition to settled: %w", err)
	}
	if !moved {
		return false, nil
	}

	s.metrics.OrderTransition(string(domain.OrderStatusSettled))
	if order, err := s.orders.GetByID(ctx, orderID); err == nil && order != nil {
		s.notify(ctx, order, domain.EventPaymentSettled)
	}
	return true, nil
}

// FailOrder moves any non-terminal order to FAILED.
func (s *OrderServiceImpl) FailOrder(ctx context.Context, orderID uuid.UUID, reason string) error {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status.IsTerminal() {
		return apperror.ErrInvalidStatus(string(order.Status), "non-terminal")
	}

	moved, err := s.orders.Transition(ctx, nil, domain.OrderTransition{
		OrderID: orderID,
		From:    order.Status,
		To:      domain.OrderStatusFailed,
		At:      s.now(),
	})
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	if !moved {
		return apperror.ErrInvalidStatus(string(order.Status), "non-terminal")
	}

	if s.watcher != nil && order.Status.IsWatched() {
		s.watcher.Unwatch(order.DepositAddress)
	}
	order.Status = domain.OrderStatusFailed
	s.notify(ctx, order, domain.EventPaymentFailed)
	s.metrics.OrderTransition(string(domain.OrderStatusFailed))

	s.log.Warn().Str("order_id", orderID.String()).Str("reason", reason).Msg("order failed")
	return nil
}

// notify enqueues a webhook. Delivery is durable and retried by the queue;
// an enqueue failure never rolls back the state change.
func (s *OrderServiceImpl) notify(ctx context.Context, order *domain.PaymentOrder, event domain.WebhookEvent) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Enqueue(ctx, order, event); err != nil {
		s.log.Error().Err(err).
			Str("order_id", order.ID.String()).
			Str("event", string(event)).
			Msg("failed to enqueue webhook")
	}
}
