package service

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"cryptopay-gateway/internal/core/domain"
	"cryptopay-gateway/internal/core/ports"
	"cryptopay-gateway/internal/observability"
	"cryptopay-gateway/pkg/money"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const pendingSettlementLimit = 500

// lockMargin covers RPC round trips around the two receipt waits.
const lockMargin = time.Minute

// SettlementConfig holds payout policy.
type SettlementConfig struct {
	ConfirmationThreshold uint64
	TokenTransferGas      uint64
	// NativePrice is one native coin expressed in settlement-token units.
	NativePrice    decimal.Decimal
	PlatformWallet common.Address
	LockTTL        time.Duration
	ReceiptTimeout time.Duration
	BatchDelay     time.Duration
}

// settlementService implements ports.SettlementEngine.
type settlementService struct {
	orders    ports.OrderRepository
	txs       ports.TransactionRepository
	merchants ports.MerchantRepository
	records   ports.SettlementRepository
	store     ports.OrderStore
	ledgers   ports.LedgerRegistry
	chain     ports.ChainProvider
	deriver   ports.WalletDeriver
	lock      ports.SettlementLock
	local     *keyedMutex
	cfg       SettlementConfig
	metrics   *observability.GatewayMetrics
	now       func() time.Time
	log       zerolog.Logger
}

// NewSettlementService creates the settlement engine.
func NewSettlementService(
	orders ports.OrderRepository,
	txs ports.TransactionRepository,
	merchants ports.MerchantRepository,
	records ports.SettlementRepository,
	store ports.OrderStore,
	ledgers ports.LedgerRegistry,
	chain ports.ChainProvider,
	deriver ports.WalletDeriver,
	lock ports.SettlementLock,
	cfg SettlementConfig,
	log zerolog.Logger,
) ports.SettlementEngine {
	if cfg.ReceiptTimeout <= 0 {
		cfg.ReceiptTimeout = 2 * time.Minute
	}
	// The lock must outlive both legs, each of which may wait a full receipt timeout.
	if floor := 2*cfg.ReceiptTimeout + lockMargin; cfg.LockTTL < floor {
		if cfg.LockTTL > 0 {
			log.Warn().Dur("lock_ttl", cfg.LockTTL).Dur("raised_to", floor).Msg("settlement lock ttl shorter than two receipt waits")
		}
		cfg.LockTTL = floor
	}
	return &settlementService{
		orders:    orders,
		txs:       txs,
		merchants: merchants,
		records:   records,
		store:     store,
		ledgers:   ledgers,
		chain:     chain,
		deriver:   deriver,
		lock:      lock,
		local:     newKeyedMutex(),
		cfg:       cfg,
		metrics:   observability.Metrics(),
		now:       func() time.Time { return time.Now().UTC() },
		log:       log,
	}
}

// Settle pays the merchant its net amount minus gas and the platform its fee
// plus gas, from the order's deposit address. Every attempt is recorded.
func (s *settlementService) Settle(ctx context.Context, orderID uuid.UUID) *domain.SettlementResult {
	unlock := s.local.Lock(orderID)
	defer unlock()

	result := s.settleLocked(ctx, orderID)

	if err := s.records.Create(ctx, result.Record(s.now())); err != nil {
		s.log.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to record settlement attempt")
	}
	s.metrics.Settlement(string(result.Outcome), string(result.Reason))

	evt := s.log.Info()
	if !result.OK() {
		evt = s.log.Warn()
	}
	evt.Str("order_id", orderID.String()).
		Str("outcome", string(result.Outcome)).
		Str("reason", string(result.Reason)).
		Str("detail", result.Detail).
		Msg("settlement attempt")

	return result
}

func (s *settlementService) settleLocked(ctx context.Context, orderID uuid.UUID) *domain.SettlementResult {
	token, err := s.lock.Acquire(ctx, orderID.String(), s.cfg.LockTTL)
	if err != nil {
		return failed(orderID, domain.ReasonLocked, "lock unavailable: "+err.Error())
	}
	if token == "" {
		return failed(orderID, domain.ReasonLocked, "held by another worker")
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), orderID.String(), token); err != nil {
			s.log.Warn().Err(err).Str("order_id", orderID.String()).Msg("failed to release settlement lock")
		}
	}()

	return s.settle(ctx, orderID)
}

func failed(orderID uuid.UUID, reason domain.SettlementReason, detail string) *domain.SettlementResult {
	return &domain.SettlementResult{
		OrderID: orderID,
		Outcome: domain.SettlementFailed,
		Reason:  reason,
		Detail:  detail,
	}
}

func (s *settlementService) settle(ctx context.Context, orderID uuid.UUID) *domain.SettlementResult {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return failed(orderID, domain.ReasonStoreError, err.Error())
	}
	if order == nil {
		return failed(orderID, domain.ReasonOrderNotFound, "")
	}
	if order.Status == domain.OrderStatusSettled {
		return &domain.SettlementResult{OrderID: orderID, Outcome: domain.SettlementNoop, Reason: domain.ReasonAlreadySettled}
	}
	if order.Status != domain.OrderStatusConfirmed {
		return failed(orderID, domain.ReasonInvalidStatus, string(order.Status))
	}

	partial, err := s.records.HasPartial(ctx, orderID)
	if err != nil {
		return failed(orderID, domain.ReasonStoreError, err.Error())
	}
	if partial {
		return failed(orderID, domain.ReasonRequiresReconciliation, "a previous attempt moved funds")
	}

	confirmed, err := s.hasConfirmedTransfer(ctx, orderID)
	if err != nil {
		return failed(orderID, domain.ReasonStoreError, err.Error())
	}
	if !confirmed {
		return failed(orderID, domain.ReasonTransactionNotConfirmed, "")
	}

	merchant, err := s.merchants.GetByID(ctx, order.MerchantID)
	if err != nil {
		return failed(orderID, domain.ReasonStoreError, err.Error())
	}
	if merchant == nil {
		return failed(orderID, domain.ReasonMerchantNotFound, order.MerchantID.String())
	}

	ledger, err := s.ledgers.Ledger(order.Currency)
	if err != nil {
		return failed(orderID, domain.ReasonUnsupportedCurrency, order.Currency)
	}
	decimals := ledger.Token().Decimals
	deposit := common.HexToAddress(order.DepositAddress)

	balance, err := ledger.BalanceOf(ctx, deposit)
	if err != nil {
		return failed(orderID, domain.ReasonRPCError, "token balance: "+err.Error())
	}
	if balance.Cmp(order.Amount) < 0 {
		return failed(orderID, domain.ReasonInsufficientTokenBalance,
			fmt.Sprintf("have %s, need %s", money.FormatUnits(balance, decimals), money.FormatUnits(order.Amount, decimals)))
	}

	gasPrice, err := s.chain.GasPrice(ctx)
	if err != nil {
		return failed(orderID, domain.ReasonRPCError, "gas price: "+err.Error())
	}
	// Two token transfers leave the deposit address.
	gasWei := new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(2*s.cfg.TokenTransferGas))
	native, err := s.chain.NativeBalance(ctx, deposit)
	if err != nil {
		return failed(orderID, domain.ReasonRPCError, "native balance: "+err.Error())
	}
	if native.Cmp(gasWei) < 0 {
		return failed(orderID, domain.ReasonInsufficientGas,
			fmt.Sprintf("fund %s: have %s wei, need %s wei", order.DepositAddress, native, gasWei))
	}

	gasCost := money.NativeToToken(gasWei, s.cfg.NativePrice, decimals)
	merchantAmount := new(big.Int).Sub(order.NetAmount, gasCost)
	if merchantAmount.Sign() <= 0 {
		return failed(orderID, domain.ReasonGasExceedsPayout,
			fmt.Sprintf("gas %s exceeds net %s", money.FormatUnits(gasCost, decimals), money.FormatUnits(order.NetAmount, decimals)))
	}
	platformAmount := new(big.Int).Add(order.FeeAmount, gasCost)

	result := &domain.SettlementResult{
		OrderID:        orderID,
		MerchantAmount: merchantAmount,
		PlatformAmount: platformAmount,
		GasCostToken:   gasCost,
	}
	signer := s.deriver.DeriveSigner(order.DerivationIndex)

	merchantHash, err := ledger.Transfer(ctx, signer, common.HexToAddress(merchant.WalletAddress), merchantAmount)
	if err != nil {
		result.Outcome, result.Reason, result.Detail = domain.SettlementFailed, domain.ReasonMerchantTransferFailed, err.Error()
		return result
	}
	result.MerchantTxHash = hashPtr(merchantHash)

	receipt, err := s.waitMined(ctx, merchantHash)
	if err != nil {
		// Broadcast but unconfirmed: funds may have moved.
		result.Outcome, result.Reason, result.Detail = domain.SettlementPartial, domain.ReasonMerchantTransferFailed, err.Error()
		return result
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		result.Outcome, result.Reason, result.Detail = domain.SettlementFailed, domain.ReasonMerchantTransferFailed, "merchant transfer reverted"
		return result
	}

	platformHash, err := ledger.Transfer(ctx, signer, s.cfg.PlatformWallet, platformAmount)
	if err != nil {
		result.Outcome, result.Reason, result.Detail = domain.SettlementPartial, domain.ReasonPlatformTransferFailed, err.Error()
		return result
	}
	result.PlatformTxHash = hashPtr(platformHash)

	receipt, err = s.waitMined(ctx, platformHash)
	if err != nil || receipt.Status != types.ReceiptStatusSuccessful {
		detail := "platform transfer reverted"
		if err != nil {
			detail = err.Error()
		}
		result.Outcome, result.Reason, result.Detail = domain.SettlementPartial, domain.ReasonPlatformTransferFailed, detail
		return result
	}

	moved, err := s.store.MarkSettled(ctx, orderID)
	if err != nil || !moved {
		// Both legs are on chain; block automatic retries until reconciled.
		detail := "order left CONFIRMED"
		if err != nil {
			detail = err.Error()
		}
		result.Outcome, result.Reason, result.Detail = domain.SettlementPartial, domain.ReasonStoreError, detail
		return result
	}

	result.Outcome = domain.SettlementSuccess
	return result
}

func (s *settlementService) hasConfirmedTransfer(ctx context.Context, orderID uuid.UUID) (bool, error) {
	txns, err := s.txs.ListByOrder(ctx, orderID)
	if err != nil {
		return false, err
	}
	for i := range txns {
		if txns[i].IsConfirmed(s.cfg.ConfirmationThreshold) {
			return true, nil
		}
	}
	return false, nil
}

func (s *settlementService) waitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	waitCtx, cancel := context.WithTimeout(ctx, s.cfg.ReceiptTimeout)
	defer cancel()
	receipt, err := s.chain.WaitMined(waitCtx, hash)
	if err != nil {
		return nil, fmt.Errorf("waiting for %s: %w", hash.Hex(), err)
	}
	return receipt, nil
}

// SettleBatch settles orders one at a time with a pause between them so
// per-address nonces and provider rate limits are respected.
func (s *settlementService) SettleBatch(ctx context.Context, orderIDs []uuid.UUID) []*domain.SettlementResult {
	results := make([]*domain.SettlementResult, 0, len(orderIDs))
	for i, id := range orderIDs {
		if i > 0 && s.cfg.BatchDelay > 0 {
			select {
			case <-ctx.Done():
				return results
			case <-time.After(s.cfg.BatchDelay):
			}
		}
		results = append(results, s.Settle(ctx, id))
	}
	return results
}

// ListPending returns CONFIRMED orders awaiting settlement.
func (s *settlementService) ListPending(ctx context.Context) ([]domain.PaymentOrder, error) {
	orders, err := s.orders.ListByStatus(ctx, []domain.OrderStatus{domain.OrderStatusConfirmed}, pendingSettlementLimit)
	if err != nil {
		return nil, fmt.Errorf("list confirmed orders: %w", err)
	}
	return orders, nil
}

func hashPtr(h common.Hash) *string {
	s := h.Hex()
	return &s
}
