package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"cryptopay-gateway/internal/core/domain"
	"cryptopay-gateway/internal/core/ports"
	"cryptopay-gateway/internal/observability"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
)

// WatcherConfig holds the polling cadence of the chain watcher.
type WatcherConfig struct {
	ConfirmationInterval time.Duration
	ExpiryInterval       time.Duration
	BatchSize            int
}

// ChainWatcher ties ledger subscriptions to the order store. It keeps one
// subscription per open deposit address, advances confirmation depth and
// hands confirmed orders to the settlement worker.
type ChainWatcher struct {
	ledgers  ports.LedgerRegistry
	store    ports.OrderStore
	txs      ports.TransactionRepository
	chain    ports.ChainProvider
	settler  ports.SettlementSubmitter
	cfg      WatcherConfig
	metrics  *observability.GatewayMetrics
	log      zerolog.Logger
	mu       sync.Mutex
	subs     map[string]ports.Subscription
	parent   context.Context
}

// NewChainWatcher creates a watcher. settler may be nil, in which case
// confirmed orders wait for an operator-triggered settlement.
func NewChainWatcher(
	ledgers ports.LedgerRegistry,
	store ports.OrderStore,
	txs ports.TransactionRepository,
	chain ports.ChainProvider,
	settler ports.SettlementSubmitter,
	cfg WatcherConfig,
	log zerolog.Logger,
) *ChainWatcher {
	if cfg.ConfirmationInterval <= 0 {
		cfg.ConfirmationInterval = 15 * time.Second
	}
	if cfg.ExpiryInterval <= 0 {
		cfg.ExpiryInterval = time.Minute
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 200
	}
	return &ChainWatcher{
		ledgers: ledgers,
		store:   store,
		txs:     txs,
		chain:   chain,
		settler: settler,
		cfg:     cfg,
		metrics: observability.Metrics(),
		log:     log,
		subs:    make(map[string]ports.Subscription),
		parent:  context.Background(),
	}
}

func watchKey(address string) string {
	return strings.ToLower(address)
}

// Watch subscribes to incoming transfers for the order's deposit address.
// Watching an address twice is a no-op.
func (w *ChainWatcher) Watch(_ context.Context, order *domain.PaymentOrder) error {
	key := watchKey(order.DepositAddress)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.subs[key]; ok {
		return nil
	}

	ledger, err := w.ledgers.Ledger(order.Currency)
	if err != nil {
		return fmt.Errorf("resolve ledger %s: %w", order.Currency, err)
	}

	// Subscriptions outlive the request that created the order.
	sub, err := ledger.SubscribeIncoming(w.parent, common.HexToAddress(order.DepositAddress), w.onTransfer)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", order.DepositAddress, err)
	}
	w.subs[key] = sub
	w.metrics.SetWatchedAddresses(len(w.subs))

	w.log.Debug().
		Str("order_id", order.ID.String()).
		Str("address", order.DepositAddress).
		Str("currency", order.Currency).
		Msg("watching deposit address")
	return nil
}

// Unwatch cancels the subscription for address, if any.
func (w *ChainWatcher) Unwatch(address string) {
	key := watchKey(address)

	w.mu.Lock()
	sub, ok := w.subs[key]
	if ok {
		delete(w.subs, key)
	}
	n := len(w.subs)
	w.mu.Unlock()

	if ok {
		sub.Unsubscribe()
		w.metrics.SetWatchedAddresses(n)
		w.log.Debug().Str("address", address).Msg("stopped watching deposit address")
	}
}

// WatchedCount returns the number of live subscriptions.
func (w *ChainWatcher) WatchedCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.subs)
}

func (w *ChainWatcher) onTransfer(ctx context.Context, transfer domain.IncomingTransfer) error {
	return w.store.RecordIncomingTransaction(ctx, transfer)
}

// Resync subscribes every open order. It must complete before the ledger
// scan loops start: they resume from the persisted cursor and only report
// transfers into addresses watched at scan time.
func (w *ChainWatcher) Resync(ctx context.Context) (int, error) {
	orders, err := w.store.ListOpenOrders(ctx)
	if err != nil {
		return 0, fmt.Errorf("list open orders: %w", err)
	}
	for i := range orders {
		if err := w.Watch(ctx, &orders[i]); err != nil {
			w.log.Error().Err(err).Str("order_id", orders[i].ID.String()).Msg("resync watch failed")
		}
	}
	return w.WatchedCount(), nil
}

// SweepConfirmations recomputes depth for every pending transfer against a
// single chain head and submits newly confirmed orders for settlement.
func (w *ChainWatcher) SweepConfirmations(ctx context.Context) (int, error) {
	pending, err := w.txs.ListUnconfirmed(ctx, w.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("list unconfirmed: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	head, err := w.chain.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("block number: %w", err)
	}

	confirmed := 0
	for _, txn := range pending {
		var depth uint64
		if head > txn.BlockNumber {
			depth = head - txn.BlockNumber
		}

		moved, err := w.store.UpdateConfirmations(ctx, txn.TxHash, depth)
		if err != nil {
			w.log.Error().Err(err).Str("tx_hash", txn.TxHash).Msg("update confirmations failed")
			continue
		}
		if !moved {
			continue
		}

		confirmed++
		w.Unwatch(txn.ToAddress)
		if w.settler != nil && !w.settler.TrySubmit(txn.OrderID) {
			w.log.Warn().Str("order_id", txn.OrderID.String()).Msg("settlement queue full, order left for manual settlement")
		}
	}
	return confirmed, nil
}

// Run resyncs subscriptions and drives the confirmation and expiry loops
// until ctx is cancelled. All subscriptions are released on return.
func (w *ChainWatcher) Run(ctx context.Context) error {
	w.mu.Lock()
	w.parent = ctx
	w.mu.Unlock()

	n, err := w.Resync(ctx)
	if err != nil {
		return err
	}
	w.log.Info().Int("addresses", n).Msg("chain watcher started")

	confirmTicker := time.NewTicker(w.cfg.ConfirmationInterval)
	defer confirmTicker.Stop()
	expiryTicker := time.NewTicker(w.cfg.ExpiryInterval)
	defer expiryTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.stopAll()
			w.log.Info().Msg("chain watcher stopped")
			return nil
		case <-confirmTicker.C:
			if n, err := w.SweepConfirmations(ctx); err != nil {
				w.log.Warn().Err(err).Msg("confirmation sweep failed")
			} else if n > 0 {
				w.log.Info().Int("confirmed", n).Msg("confirmation sweep")
			}
		case <-expiryTicker.C:
			if _, err := w.store.ExpireStaleOrders(ctx); err != nil {
				w.log.Warn().Err(err).Msg("expiry sweep failed")
			}
		}
	}
}

func (w *ChainWatcher) stopAll() {
	w.mu.Lock()
	subs := w.subs
	w.subs = make(map[string]ports.Subscription)
	w.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
	w.metrics.SetWatchedAddresses(0)
}
