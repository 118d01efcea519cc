// Package evm adapts go-ethereum RPC clients to the gateway's chain ports:
// a failover provider, ERC-20 ledgers, and a per-address transaction sender.
package evm

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"cryptopay-gateway/internal/observability"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// EVMClient is the subset of *ethclient.Client used by the gateway.
type EVMClient interface {
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
	Close()
}

// ProviderConfig tunes the provider.
type ProviderConfig struct {
	ChainID      *big.Int
	Timeout      time.Duration
	RateLimit    float64 // requests per second, 0 disables throttling
	Burst        int
	PollInterval time.Duration // block and receipt polling
	StallAfter   time.Duration // health fails when the head has not moved for this long
}

// Provider implements ports.ChainProvider over a primary and optional
// secondary endpoint. After the first primary failure all calls go to the
// secondary until ResetToPrimary is called.
type Provider struct {
	cfg       ProviderConfig
	primary   EVMClient
	secondary EVMClient
	onSecond  atomic.Bool
	limiter   *rate.Limiter
	log       zerolog.Logger
	metrics   *observability.GatewayMetrics

	healthMu     sync.Mutex
	healthHeight uint64
	healthMoved  time.Time
}

// Dial connects to the configured endpoints. The secondary URL may be empty.
func Dial(ctx context.Context, cfg ProviderConfig, primaryURL, secondaryURL string, log zerolog.Logger) (*Provider, error) {
	primary, err := ethclient.DialContext(ctx, strings.TrimSpace(primaryURL))
	if err != nil {
		return nil, fmt.Errorf("dialing primary rpc: %w", err)
	}

	var secondary EVMClient
	if strings.TrimSpace(secondaryURL) != "" {
		c, err := ethclient.DialContext(ctx, strings.TrimSpace(secondaryURL))
		if err != nil {
			primary.Close()
			return nil, fmt.Errorf("dialing secondary rpc: %w", err)
		}
		secondary = c
	}

	return NewProvider(primary, secondary, cfg, log), nil
}

// NewProvider wraps already constructed clients.
func NewProvider(primary, secondary EVMClient, cfg ProviderConfig, log zerolog.Logger) *Provider {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 3 * time.Second
	}
	if cfg.StallAfter <= 0 {
		cfg.StallAfter = 2 * time.Minute
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Provider{
		cfg:       cfg,
		primary:   primary,
		secondary: secondary,
		limiter:   rate.NewLimiter(limit, burst),
		log:       log.With().Str("component", "chain_provider").Logger(),
	}
}

// WithMetrics attaches the metrics registry.
func (p *Provider) WithMetrics(m *observability.GatewayMetrics) *Provider {
	p.metrics = m
	return p
}

// withFailover runs fn against the active client, switching to the secondary
// and retrying once on an endpoint failure of the primary.
func withFailover[T any](ctx context.Context, p *Provider, op string, fn func(context.Context, EVMClient) (T, error)) (T, error) {
	var zero T
	if err := p.limiter.Wait(ctx); err != nil {
		return zero, err
	}

	onSecondary := p.onSecond.Load() && p.secondary != nil
	client := p.primary
	if onSecondary {
		client = p.secondary
	}

	v, err := callWithTimeout(ctx, p.cfg.Timeout, client, fn)
	if err == nil || !isEndpointFailure(ctx, err) {
		return v, err
	}

	p.metrics.RPCError(op)
	if onSecondary || p.secondary == nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	if p.onSecond.CompareAndSwap(false, true) {
		p.metrics.RPCFailover()
		p.log.Warn().Err(err).Str("op", op).Msg("primary rpc failed, switching to secondary")
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return zero, err
	}
	v, err = callWithTimeout(ctx, p.cfg.Timeout, p.secondary, fn)
	if err != nil {
		if isEndpointFailure(ctx, err) {
			p.metrics.RPCError(op)
		}
		return zero, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

func callWithTimeout[T any](ctx context.Context, timeout time.Duration, c EVMClient, fn func(context.Context, EVMClient) (T, error)) (T, error) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(cctx, c)
}

// isEndpointFailure separates transport failures from answers the node gave:
// "not found" and JSON-RPC errors are results, not reasons to fail over.
func isEndpointFailure(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if errors.Is(err, ethereum.NotFound) {
		return false
	}
	var rpcErr rpc.Error
	return !errors.As(err, &rpcErr)
}

// ChainID returns the configured chain id.
func (p *Provider) ChainID() *big.Int {
	return new(big.Int).Set(p.cfg.ChainID)
}

// BlockNumber returns the current head height.
func (p *Provider) BlockNumber(ctx context.Context) (uint64, error) {
	return withFailover(ctx, p, "BlockNumber", func(ctx context.Context, c EVMClient) (uint64, error) {
		return c.BlockNumber(ctx)
	})
}

// NativeBalance returns the latest native-coin balance of address in wei.
func (p *Provider) NativeBalance(ctx context.Context, address common.Address) (*big.Int, error) {
	return withFailover(ctx, p, "BalanceAt", func(ctx context.Context, c EVMClient) (*big.Int, error) {
		return c.BalanceAt(ctx, address, nil)
	})
}

// TransactionReceipt returns the receipt or ethereum.NotFound while pending.
func (p *Provider) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	return withFailover(ctx, p, "TransactionReceipt", func(ctx context.Context, c EVMClient) (*types.Receipt, error) {
		return c.TransactionReceipt(ctx, hash)
	})
}

// GasPrice returns the node's suggested gas price.
func (p *Provider) GasPrice(ctx context.Context) (*big.Int, error) {
	return withFailover(ctx, p, "SuggestGasPrice", func(ctx context.Context, c EVMClient) (*big.Int, error) {
		return c.SuggestGasPrice(ctx)
	})
}

// PendingNonceAt returns the next nonce for account including pending transactions.
func (p *Provider) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	return withFailover(ctx, p, "PendingNonceAt", func(ctx context.Context, c EVMClient) (uint64, error) {
		return c.PendingNonceAt(ctx, account)
	})
}

// SendTransaction broadcasts a signed transaction.
func (p *Provider) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	_, err := withFailover(ctx, p, "SendTransaction", func(ctx context.Context, c EVMClient) (struct{}, error) {
		return struct{}{}, c.SendTransaction(ctx, tx)
	})
	return err
}

// CallContract executes a read-only contract call at the latest block.
func (p *Provider) CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error) {
	return withFailover(ctx, p, "CallContract", func(ctx context.Context, c EVMClient) ([]byte, error) {
		return c.CallContract(ctx, msg, nil)
	})
}

// FilterLogs queries historical logs.
func (p *Provider) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	return withFailover(ctx, p, "FilterLogs", func(ctx context.Context, c EVMClient) ([]types.Log, error) {
		return c.FilterLogs(ctx, q)
	})
}

// WaitMined polls for the receipt of hash until it is included or ctx ends.
func (p *Provider) WaitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	for {
		receipt, err := p.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			p.log.Debug().Err(err).Str("tx_hash", hash.Hex()).Msg("receipt lookup failed, retrying")
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for %s: %w", hash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}

// SubscribeNewBlocks emits each new head height until ctx is cancelled.
// Heights may skip when several blocks arrive between polls.
func (p *Provider) SubscribeNewBlocks(ctx context.Context) <-chan uint64 {
	out := make(chan uint64, 1)
	go func() {
		defer close(out)
		ticker := time.NewTicker(p.cfg.PollInterval)
		defer ticker.Stop()

		var last uint64
		for {
			head, err := p.BlockNumber(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				p.log.Warn().Err(err).Msg("block poll failed")
			} else if head > last {
				last = head
				select {
				case out <- head:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return out
}

// ResetToPrimary is the operator action that routes calls back to the primary.
func (p *Provider) ResetToPrimary() {
	if p.onSecond.CompareAndSwap(true, false) {
		p.log.Info().Msg("rpc routed back to primary by operator")
	}
}

// UsingSecondary reports whether calls currently go to the secondary endpoint.
func (p *Provider) UsingSecondary() bool {
	return p.onSecond.Load()
}

// Ping implements ports.HealthChecker: the chain id must match the configured
// network and the head must keep advancing.
func (p *Provider) Ping(ctx context.Context) error {
	id, err := withFailover(ctx, p, "ChainID", func(ctx context.Context, c EVMClient) (*big.Int, error) {
		return c.ChainID(ctx)
	})
	if err != nil {
		return err
	}
	if id.Cmp(p.cfg.ChainID) != 0 {
		return fmt.Errorf("chain id mismatch: node reports %s, configured %s", id, p.cfg.ChainID)
	}

	head, err := p.BlockNumber(ctx)
	if err != nil {
		return err
	}

	p.healthMu.Lock()
	defer p.healthMu.Unlock()
	now := time.Now()
	switch {
	case head > p.healthHeight:
		p.healthHeight = head
		p.healthMoved = now
	case head < p.healthHeight:
		return fmt.Errorf("block height went backwards: %d < %d", head, p.healthHeight)
	case now.Sub(p.healthMoved) > p.cfg.StallAfter:
		return fmt.Errorf("block height stuck at %d since %s", head, p.healthMoved.Format(time.RFC3339))
	}
	return nil
}

// Name returns the dependency name.
func (p *Provider) Name() string {
	return "chain"
}

// Close releases both clients.
func (p *Provider) Close() {
	p.primary.Close()
	if p.secondary != nil {
		p.secondary.Close()
	}
}
