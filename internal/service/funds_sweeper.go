package service

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"cryptopay-gateway/internal/core/domain"
	"cryptopay-gateway/internal/core/ports"
	"cryptopay-gateway/internal/observability"
	"cryptopay-gateway/pkg/apperror"
	"cryptopay-gateway/pkg/money"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const nativeDecimals = 18

// SweeperConfig holds the fund-recovery policy. Dust is in wei.
type SweeperConfig struct {
	GracePeriod       time.Duration
	SweepDelay        time.Duration
	IncludeExpired    bool
	Dust              *big.Int
	NativeTransferGas uint64
	ReceiptTimeout    time.Duration
}

// fundsSweeper implements ports.FundsSweeper.
type fundsSweeper struct {
	orders    ports.OrderRepository
	records   ports.RecoveryRepository
	ledgers   ports.LedgerRegistry
	chain     ports.ChainProvider
	deriver   ports.WalletDeriver
	sender    ports.TxSender
	reservoir ports.Reservoir
	cfg       SweeperConfig
	metrics   *observability.GatewayMetrics
	now       func() time.Time
	log       zerolog.Logger
}

// NewFundsSweeper creates the sweeper.
func NewFundsSweeper(
	orders ports.OrderRepository,
	records ports.RecoveryRepository,
	ledgers ports.LedgerRegistry,
	chain ports.ChainProvider,
	deriver ports.WalletDeriver,
	sender ports.TxSender,
	reservoir ports.Reservoir,
	cfg SweeperConfig,
	log zerolog.Logger,
) ports.FundsSweeper {
	if cfg.GracePeriod <= 0 {
		cfg.GracePeriod = 24 * time.Hour
	}
	if cfg.Dust == nil {
		cfg.Dust = big.NewInt(0)
	}
	if cfg.NativeTransferGas == 0 {
		cfg.NativeTransferGas = 21000
	}
	if cfg.ReceiptTimeout <= 0 {
		cfg.ReceiptTimeout = 2 * time.Minute
	}
	return &fundsSweeper{
		orders:    orders,
		records:   records,
		ledgers:   ledgers,
		chain:     chain,
		deriver:   deriver,
		sender:    sender,
		reservoir: reservoir,
		cfg:       cfg,
		metrics:   observability.Metrics(),
		now:       func() time.Time { return time.Now().UTC() },
		log:       log,
	}
}

func (f *fundsSweeper) sweepableStatuses() []domain.OrderStatus {
	statuses := []domain.OrderStatus{
		domain.OrderStatusCreated,
		domain.OrderStatusPending,
		domain.OrderStatusConfirmed,
	}
	if f.cfg.IncludeExpired {
		statuses = append(statuses, domain.OrderStatusExpired)
	}
	return statuses
}

// FindSweepable lists orders past the grace period whose deposit address
// still holds tokens or native coin above dust. Addresses whose balance
// cannot be read are skipped.
func (f *fundsSweeper) FindSweepable(ctx context.Context) ([]domain.SweepCandidate, error) {
	orders, err := f.orders.ListCreatedBefore(ctx, f.sweepableStatuses(), f.now().Add(-f.cfg.GracePeriod))
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	candidates := make([]domain.SweepCandidate, 0, len(orders))
	for i := range orders {
		order := &orders[i]
		c, err := f.inspect(ctx, order)
		if err != nil {
			f.log.Warn().Err(err).Str("order_id", order.ID.String()).Msg("skipping unreadable deposit address")
			continue
		}
		if c.TokenBalance.Sign() > 0 || c.NativeBalance.Cmp(f.cfg.Dust) > 0 {
			candidates = append(candidates, *c)
		}
	}
	return candidates, nil
}

func (f *fundsSweeper) inspect(ctx context.Context, order *domain.PaymentOrder) (*domain.SweepCandidate, error) {
	ledger, err := f.ledgers.Ledger(order.Currency)
	if err != nil {
		return nil, err
	}
	addr := common.HexToAddress(order.DepositAddress)
	tokenBal, err := ledger.BalanceOf(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("token balance: %w", err)
	}
	nativeBal, err := f.chain.NativeBalance(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("native balance: %w", err)
	}
	return &domain.SweepCandidate{
		OrderID:        order.ID,
		Address:        order.DepositAddress,
		Index:          order.DerivationIndex,
		Currency:       order.Currency,
		Status:         order.Status,
		TokenBalance:   tokenBal,
		NativeBalance:  nativeBal,
		OrderCreatedAt: order.CreatedAt,
	}, nil
}

// SweepOne moves the token balance and then the native balance, net of its
// own fee, from the order's deposit address to the reservoir. The order
// status is never changed.
func (f *fundsSweeper) SweepOne(ctx context.Context, orderID uuid.UUID) (*domain.RecoveryRecord, error) {
	order, err := f.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if order == nil {
		return nil, apperror.ErrNotFound("payment")
	}
	if order.DerivationIndex == 0 {
		return nil, apperror.ErrInvalidAddress()
	}

	record := f.sweep(ctx, order)
	if err := f.records.Create(ctx, record); err != nil {
		f.log.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to store recovery record")
	}
	f.metrics.Sweep(string(record.Status))

	evt := f.log.Info()
	if record.Status == domain.RecoveryStatusFailed || record.Status == domain.RecoveryStatusPartial {
		evt = f.log.Warn()
	}
	evt.Str("order_id", orderID.String()).
		Str("address", record.Address).
		Str("status", string(record.Status)).
		Str("token_amount", record.TokenAmount.String()).
		Str("native_amount", record.NativeAmount.String()).
		Msg("deposit address swept")
	return record, nil
}

func (f *fundsSweeper) sweep(ctx context.Context, order *domain.PaymentOrder) *domain.RecoveryRecord {
	record := &domain.RecoveryRecord{
		ID:           uuid.New(),
		OrderID:      order.ID,
		Address:      order.DepositAddress,
		TokenAmount:  big.NewInt(0),
		NativeAmount: big.NewInt(0),
		CreatedAt:    f.now(),
	}
	fail := func(msg string) *domain.RecoveryRecord {
		record.Error = &msg
		if record.TokenTxHash != nil || record.NativeTxHash != nil {
			record.Status = domain.RecoveryStatusPartial
		} else {
			record.Status = domain.RecoveryStatusFailed
		}
		return record
	}

	ledger, err := f.ledgers.Ledger(order.Currency)
	if err != nil {
		return fail("unsupported currency " + order.Currency)
	}
	addr := common.HexToAddress(order.DepositAddress)
	signer := f.deriver.DeriveSigner(order.DerivationIndex)
	to := f.reservoir.Address()

	tokenBal, err := ledger.BalanceOf(ctx, addr)
	if err != nil {
		return fail("token balance: " + err.Error())
	}
	if tokenBal.Sign() > 0 {
		hash, err := ledger.Transfer(ctx, signer, to, tokenBal)
		if err != nil {
			return fail("token transfer: " + err.Error())
		}
		if err := f.confirm(ctx, hash); err != nil {
			return fail("token transfer: " + err.Error())
		}
		record.TokenTxHash = hashPtr(hash)
		record.TokenAmount = tokenBal
	}

	// Read after the token leg so its fee is already paid.
	nativeBal, err := f.chain.NativeBalance(ctx, addr)
	if err != nil {
		return fail("native balance: " + err.Error())
	}
	if nativeBal.Cmp(f.cfg.Dust) > 0 {
		gasPrice, err := f.chain.GasPrice(ctx)
		if err != nil {
			return fail("gas price: " + err.Error())
		}
		fee := new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(f.cfg.NativeTransferGas))
		amount := new(big.Int).Sub(nativeBal, fee)
		if amount.Sign() > 0 {
			hash, err := f.sender.Send(ctx, ports.TxRequest{
				Signer:   signer,
				To:       to,
				Value:    amount,
				GasLimit: f.cfg.NativeTransferGas,
				GasPrice: gasPrice,
			})
			if err != nil {
				return fail("native transfer: " + err.Error())
			}
			if err := f.confirm(ctx, hash); err != nil {
				return fail("native transfer: " + err.Error())
			}
			record.NativeTxHash = hashPtr(hash)
			record.NativeAmount = amount
		}
	}

	if record.TokenTxHash == nil && record.NativeTxHash == nil {
		record.Status = domain.RecoveryStatusEmpty
	} else {
		record.Status = domain.RecoveryStatusSuccess
	}
	return record
}

func (f *fundsSweeper) confirm(ctx context.Context, hash common.Hash) error {
	waitCtx, cancel := context.WithTimeout(ctx, f.cfg.ReceiptTimeout)
	defer cancel()

	receipt, err := f.chain.WaitMined(waitCtx, hash)
	if err != nil {
		return fmt.Errorf("waiting for %s: %w", hash.Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("%s reverted", hash.Hex())
	}
	return nil
}

// SweepAll sweeps every candidate one at a time. A failed address does not
// stop the batch.
func (f *fundsSweeper) SweepAll(ctx context.Context) (*domain.SweepReport, error) {
	candidates, err := f.FindSweepable(ctx)
	if err != nil {
		return nil, err
	}

	report := &domain.SweepReport{
		TotalToken: make(map[string]string),
		Results:    make([]*domain.RecoveryRecord, 0, len(candidates)),
	}
	tokenTotals := make(map[string]*big.Int)
	nativeTotal := big.NewInt(0)

	for i, c := range candidates {
		if i > 0 && f.cfg.SweepDelay > 0 {
			select {
			case <-ctx.Done():
				return f.finishReport(report, tokenTotals, nativeTotal), ctx.Err()
			case <-time.After(f.cfg.SweepDelay):
			}
		}

		report.Attempted++
		record, err := f.SweepOne(ctx, c.OrderID)
		if err != nil {
			report.Failed++
			f.log.Error().Err(err).Str("order_id", c.OrderID.String()).Msg("sweep failed")
			continue
		}
		report.Results = append(report.Results, record)
		switch record.Status {
		case domain.RecoveryStatusSuccess, domain.RecoveryStatusEmpty:
			report.Succeeded++
		default:
			report.Failed++
		}

		if record.TokenAmount.Sign() > 0 {
			if _, ok := tokenTotals[c.Currency]; !ok {
				tokenTotals[c.Currency] = big.NewInt(0)
			}
			tokenTotals[c.Currency].Add(tokenTotals[c.Currency], record.TokenAmount)
		}
		nativeTotal.Add(nativeTotal, record.NativeAmount)
	}

	report = f.finishReport(report, tokenTotals, nativeTotal)
	f.log.Info().
		Int("attempted", report.Attempted).
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Str("native", report.TotalNative).
		Msg("sweep run complete")
	return report, nil
}

func (f *fundsSweeper) finishReport(report *domain.SweepReport, tokens map[string]*big.Int, native *big.Int) *domain.SweepReport {
	for symbol, total := range tokens {
		report.TotalToken[symbol] = f.formatToken(symbol, total)
	}
	report.TotalNative = money.FormatUnits(native, nativeDecimals)
	return report
}

func (f *fundsSweeper) formatToken(symbol string, v *big.Int) string {
	ledger, err := f.ledgers.Ledger(symbol)
	if err != nil {
		return v.String()
	}
	return money.FormatUnits(v, ledger.Token().Decimals)
}

// Summary reports stranded balances and past recoveries.
func (f *fundsSweeper) Summary(ctx context.Context) (*domain.RecoverySummary, error) {
	candidates, err := f.FindSweepable(ctx)
	if err != nil {
		return nil, err
	}
	recovered, last, err := f.records.Summary(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	tokens := make(map[string]*big.Int)
	native := big.NewInt(0)
	for _, c := range candidates {
		if _, ok := tokens[c.Currency]; !ok {
			tokens[c.Currency] = big.NewInt(0)
		}
		tokens[c.Currency].Add(tokens[c.Currency], c.TokenBalance)
		native.Add(native, c.NativeBalance)
	}

	summary := &domain.RecoverySummary{
		Candidates:      len(candidates),
		TokenStranded:   make(map[string]string, len(tokens)),
		NativeStranded:  money.FormatUnits(native, nativeDecimals),
		RecoveredTotal:  recovered,
		LastRecoveredAt: last,
	}
	for symbol, total := range tokens {
		summary.TokenStranded[symbol] = f.formatToken(symbol, total)
	}
	return summary, nil
}

// ListRecoveries returns the most recent sweeps.
func (f *fundsSweeper) ListRecoveries(ctx context.Context, limit int) ([]domain.RecoveryRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	records, err := f.records.List(ctx, limit)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return records, nil
}
