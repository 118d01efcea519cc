package service

import (
	"context"
	"math/big"
	"time"

	"cryptopay-gateway/internal/core/domain"
	"cryptopay-gateway/internal/core/ports"
	"cryptopay-gateway/internal/observability"
	"cryptopay-gateway/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"
)

// GasPolicy amounts are in wei.
type GasPolicy struct {
	MinBalance        *big.Int
	TopUp             *big.Int
	Dust              *big.Int
	NativeTransferGas uint64
	ReceiptTimeout    time.Duration
}

// gasKeeper implements ports.GasKeeper.
type gasKeeper struct {
	chain     ports.ChainProvider
	reservoir ports.Reservoir
	orders    ports.OrderRepository
	deriver   ports.WalletDeriver
	sender    ports.TxSender
	policy    GasPolicy
	metrics   *observability.GatewayMetrics
	log       zerolog.Logger
}

// NewGasKeeper creates the gas keeper. Top-ups leave through the reservoir;
// recovered gas is sent by the deposit address itself.
func NewGasKeeper(
	chain ports.ChainProvider,
	reservoir ports.Reservoir,
	orders ports.OrderRepository,
	deriver ports.WalletDeriver,
	sender ports.TxSender,
	policy GasPolicy,
	log zerolog.Logger,
) ports.GasKeeper {
	if policy.NativeTransferGas == 0 {
		policy.NativeTransferGas = 21000
	}
	if policy.ReceiptTimeout <= 0 {
		policy.ReceiptTimeout = 2 * time.Minute
	}
	return &gasKeeper{
		chain:     chain,
		reservoir: reservoir,
		orders:    orders,
		deriver:   deriver,
		sender:    sender,
		policy:    policy,
		metrics:   observability.Metrics(),
		log:       log,
	}
}

// Status reports the native balance of address against the minimum.
func (g *gasKeeper) Status(ctx context.Context, address string) (*domain.GasStatus, error) {
	if !common.IsHexAddress(address) {
		return nil, apperror.ErrInvalidAddress()
	}
	addr := common.HexToAddress(address)
	balance, err := g.chain.NativeBalance(ctx, addr)
	if err != nil {
		return nil, apperror.ErrRPCUnavailable(err)
	}
	return &domain.GasStatus{
		Address:    addr.Hex(),
		Balance:    balance,
		MinBalance: g.policy.MinBalance,
		NeedsGas:   balance.Cmp(g.policy.MinBalance) < 0,
	}, nil
}

// NeedsGas reports whether address is below the minimum native balance.
func (g *gasKeeper) NeedsGas(ctx context.Context, address string) (bool, error) {
	st, err := g.Status(ctx, address)
	if err != nil {
		return false, err
	}
	return st.NeedsGas, nil
}

// FundAddress sends the fixed top-up from the reservoir and waits for inclusion.
func (g *gasKeeper) FundAddress(ctx context.Context, address string) *domain.GasResult {
	res := &domain.GasResult{Action: domain.GasActionFund, Address: address}
	defer func() { g.metrics.GasOperation(string(res.Action), res.Success) }()

	if !common.IsHexAddress(address) {
		res.Reason = domain.GasReasonInvalidAddress
		return res
	}
	to := common.HexToAddress(address)
	res.Address = to.Hex()
	if to == g.reservoir.Address() {
		res.Reason = domain.GasReasonReservoirAddress
		return res
	}

	available, err := g.reservoir.Balance(ctx)
	if err != nil {
		res.Reason = domain.GasReasonRPCError
		return res
	}
	gasPrice, err := g.chain.GasPrice(ctx)
	if err != nil {
		res.Reason = domain.GasReasonRPCError
		return res
	}
	// The reservoir pays its own send fee on top of the top-up.
	fee := new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(g.policy.NativeTransferGas))
	required := new(big.Int).Add(g.policy.TopUp, fee)
	if available.Cmp(required) < 0 {
		g.log.Error().
			Str("reservoir", g.reservoir.Address().Hex()).
			Str("balance", available.String()).
			Str("required", required.String()).
			Msg("gas reservoir cannot cover top-up and fee")
		res.Reason = domain.GasReasonInsufficientReservoir
		return res
	}

	hash, err := g.reservoir.SendNative(ctx, to, g.policy.TopUp)
	if err != nil {
		g.log.Error().Err(err).Str("address", res.Address).Msg("gas top-up send failed")
		res.Reason = domain.GasReasonRPCError
		return res
	}
	res.TxHash = hashPtr(hash)
	res.Amount = g.policy.TopUp

	if reason := g.awaitReceipt(ctx, hash); reason != "" {
		res.Reason = reason
		return res
	}

	res.Success = true
	g.log.Info().
		Str("address", res.Address).
		Str("amount_wei", g.policy.TopUp.String()).
		Str("tx_hash", hash.Hex()).
		Msg("deposit address funded")
	return res
}

// RecoverGas returns leftover native gas of a settled order's address to the
// reservoir. The amount sent is the balance minus the exact fee of the send.
func (g *gasKeeper) RecoverGas(ctx context.Context, index uint32) *domain.GasResult {
	res := &domain.GasResult{Action: domain.GasActionRecover}
	defer func() { g.metrics.GasOperation(string(res.Action), res.Success) }()

	if index == 0 {
		res.Address = g.reservoir.Address().Hex()
		res.Reason = domain.GasReasonReservoirAddress
		return res
	}
	addr := g.deriver.DeriveAddress(index)
	res.Address = addr.Hex()
	if addr == g.reservoir.Address() {
		res.Reason = domain.GasReasonReservoirAddress
		return res
	}

	order, err := g.orders.GetByAddress(ctx, res.Address)
	if err != nil {
		res.Reason = domain.GasReasonRPCError
		return res
	}
	if order == nil {
		res.Reason = domain.GasReasonOrderNotFound
		return res
	}
	if order.Status != domain.OrderStatusSettled {
		res.Reason = domain.GasReasonNotSettled
		return res
	}

	balance, err := g.chain.NativeBalance(ctx, addr)
	if err != nil {
		res.Reason = domain.GasReasonRPCError
		return res
	}
	if balance.Cmp(g.policy.Dust) <= 0 {
		res.Reason = domain.GasReasonBelowDust
		return res
	}

	gasPrice, err := g.chain.GasPrice(ctx)
	if err != nil {
		res.Reason = domain.GasReasonRPCError
		return res
	}
	fee := new(big.Int).Mul(gasPrice, new(big.Int).SetUint64(g.policy.NativeTransferGas))
	amount := new(big.Int).Sub(balance, fee)
	if amount.Sign() <= 0 {
		res.Reason = domain.GasReasonCannotCoverGas
		return res
	}

	hash, err := g.sender.Send(ctx, ports.TxRequest{
		Signer:   g.deriver.DeriveSigner(index),
		To:       g.reservoir.Address(),
		Value:    amount,
		GasLimit: g.policy.NativeTransferGas,
		GasPrice: gasPrice,
	})
	if err != nil {
		g.log.Error().Err(err).Str("address", res.Address).Msg("gas recovery send failed")
		res.Reason = domain.GasReasonRPCError
		return res
	}
	res.TxHash = hashPtr(hash)
	res.Amount = amount

	if reason := g.awaitReceipt(ctx, hash); reason != "" {
		res.Reason = reason
		return res
	}

	res.Success = true
	g.log.Info().
		Str("address", res.Address).
		Uint32("index", index).
		Str("amount_wei", amount.String()).
		Str("tx_hash", hash.Hex()).
		Msg("gas recovered")
	return res
}

func (g *gasKeeper) awaitReceipt(ctx context.Context, hash common.Hash) string {
	waitCtx, cancel := context.WithTimeout(ctx, g.policy.ReceiptTimeout)
	defer cancel()

	receipt, err := g.chain.WaitMined(waitCtx, hash)
	if err != nil {
		g.log.Warn().Err(err).Str("tx_hash", hash.Hex()).Msg("gas transfer not mined in time")
		return domain.GasReasonRPCError
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return domain.GasReasonTxReverted
	}
	return ""
}
