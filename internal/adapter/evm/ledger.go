package evm

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"sync"
	"time"

	"cryptopay-gateway/internal/core/domain"
	"cryptopay-gateway/internal/core/ports"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog"
)

const erc20ABIJSON = `[
{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"type":"function"},
{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"type":"function"},
{"anonymous":false,"inputs":[{"indexed":true,"name":"from","type":"address"},{"indexed":true,"name":"to","type":"address"},{"indexed":false,"name":"value","type":"uint256"}],"name":"Transfer","type":"event"}
]`

var (
	erc20ABI      = mustParseABI(erc20ABIJSON)
	transferTopic = crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)"))
)

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(fmt.Sprintf("parsing erc20 abi: %v", err))
	}
	return parsed
}

// ContractReader is the read access a ledger needs. *Provider implements it.
type ContractReader interface {
	BlockNumber(ctx context.Context) (uint64, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg) ([]byte, error)
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
}

// HeadSource announces new chain heads. *Provider implements it.
type HeadSource interface {
	SubscribeNewBlocks(ctx context.Context) <-chan uint64
}

// LedgerConfig tunes log scanning and transfers.
type LedgerConfig struct {
	GasLimit     uint64
	PollInterval time.Duration // scan cadence when no head source is attached
	Lookback     uint64        // blocks scanned on a cold start and for each new subscription
	MaxRange     uint64        // maximum blocks per eth_getLogs call
}

// Ledger implements ports.TokenLedger for one ERC-20 contract. A single
// scan loop serves every subscribed address with one eth_getLogs per range.
type Ledger struct {
	token    domain.Token
	contract common.Address
	client   ContractReader
	sender   ports.TxSender
	cfg      LedgerConfig
	log      zerolog.Logger

	cursors    ports.ScanCursorRepository
	cursorName string

	mu           sync.RWMutex
	handlers     map[common.Address]ports.TransferHandler
	lastScanned  uint64
	cursorLoaded bool
}

// NewLedger binds a ledger to token.
func NewLedger(token domain.Token, client ContractReader, sender ports.TxSender, cfg LedgerConfig, log zerolog.Logger) (*Ledger, error) {
	if !common.IsHexAddress(token.Address) {
		return nil, fmt.Errorf("token %s: invalid contract address %q", token.Symbol, token.Address)
	}
	if cfg.GasLimit == 0 {
		cfg.GasLimit = 65000
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 3 * time.Second
	}
	if cfg.MaxRange == 0 {
		cfg.MaxRange = 500
	}
	return &Ledger{
		token:    token,
		contract: common.HexToAddress(token.Address),
		client:   client,
		sender:   sender,
		cfg:      cfg,
		log:      log.With().Str("component", "token_ledger").Str("token", token.Symbol).Logger(),
		handlers: make(map[common.Address]ports.TransferHandler),
	}, nil
}

// UseCursor persists the scan cursor under name. On start the loop resumes
// after the stored block instead of the lookback window.
func (l *Ledger) UseCursor(store ports.ScanCursorRepository, name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cursors = store
	l.cursorName = name
}

// Token returns the bound token.
func (l *Ledger) Token() domain.Token {
	return l.token
}

// BalanceOf returns the token balance of address in minor units.
func (l *Ledger) BalanceOf(ctx context.Context, address common.Address) (*big.Int, error) {
	data, err := erc20ABI.Pack("balanceOf", address)
	if err != nil {
		return nil, fmt.Errorf("packing balanceOf: %w", err)
	}
	out, err := l.client.CallContract(ctx, ethereum.CallMsg{To: &l.contract, Data: data})
	if err != nil {
		return nil, fmt.Errorf("balanceOf %s: %w", address.Hex(), err)
	}
	values, err := erc20ABI.Unpack("balanceOf", out)
	if err != nil {
		return nil, fmt.Errorf("decoding balanceOf: %w", err)
	}
	balance, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("decoding balanceOf: unexpected type %T", values[0])
	}
	return balance, nil
}

// Transfer sends amount from the signer's address to to and returns the
// broadcast hash. Inclusion is the caller's concern.
func (l *Ledger) Transfer(ctx context.Context, signer ports.Signer, to common.Address, amount *big.Int) (common.Hash, error) {
	if amount == nil || amount.Sign() <= 0 {
		return common.Hash{}, fmt.Errorf("transfer amount must be positive")
	}
	data, err := erc20ABI.Pack("transfer", to, amount)
	if err != nil {
		return common.Hash{}, fmt.Errorf("packing transfer: %w", err)
	}
	hash, err := l.sender.Send(ctx, ports.TxRequest{
		Signer:   signer,
		To:       l.contract,
		Value:    big.NewInt(0),
		Data:     data,
		GasLimit: l.cfg.GasLimit,
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("transferring %s %s: %w", amount, l.token.Symbol, err)
	}

	l.log.Info().
		Str("from", signer.Address().Hex()).
		Str("to", to.Hex()).
		Str("amount", amount.String()).
		Str("tx_hash", hash.Hex()).
		Msg("token transfer sent")
	return hash, nil
}

type ledgerSubscription struct {
	once  sync.Once
	close func()
}

func (s *ledgerSubscription) Unsubscribe() {
	s.once.Do(s.close)
}

// SubscribeIncoming registers onTransfer for transfers into address and
// backfills the lookback window for it in the background. A second
// subscription for the same address replaces the first.
func (l *Ledger) SubscribeIncoming(ctx context.Context, address common.Address, onTransfer ports.TransferHandler) (ports.Subscription, error) {
	if onTransfer == nil {
		return nil, fmt.Errorf("nil transfer handler")
	}

	l.mu.Lock()
	l.handlers[address] = onTransfer
	l.mu.Unlock()

	if l.cfg.Lookback > 0 {
		go l.backfill(ctx, address)
	}

	return &ledgerSubscription{close: func() {
		l.mu.Lock()
		delete(l.handlers, address)
		l.mu.Unlock()
	}}, nil
}

// Subscribed returns the number of addresses currently watched.
func (l *Ledger) Subscribed() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.handlers)
}

func (l *Ledger) backfill(ctx context.Context, address common.Address) {
	head, err := l.client.BlockNumber(ctx)
	if err != nil {
		l.log.Warn().Err(err).Str("address", address.Hex()).Msg("backfill skipped")
		return
	}
	from := uint64(0)
	if head > l.cfg.Lookback {
		from = head - l.cfg.Lookback
	}
	if err := l.scanRange(ctx, from, head, []common.Address{address}); err != nil {
		l.log.Warn().Err(err).Str("address", address.Hex()).Msg("backfill failed")
	}
}

// Run scans for Transfer logs into subscribed addresses until ctx ends. With
// a non-nil heads channel every announced head triggers a scan; otherwise the
// loop polls every PollInterval.
func (l *Ledger) Run(ctx context.Context, heads <-chan uint64) {
	var tick <-chan time.Time
	if heads == nil {
		ticker := time.NewTicker(l.cfg.PollInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if err := l.catchUp(ctx); err != nil && ctx.Err() == nil {
			l.log.Warn().Err(err).Msg("log scan failed")
		}
		select {
		case <-ctx.Done():
			return
		case _, ok := <-heads:
			if !ok {
				return
			}
		case <-tick:
		}
	}
}

// catchUp scans consecutive ranges until the cursor reaches the head.
func (l *Ledger) catchUp(ctx context.Context) error {
	for ctx.Err() == nil {
		done, err := l.scanNext(ctx)
		if err != nil || done {
			return err
		}
	}
	return ctx.Err()
}

func (l *Ledger) scan(ctx context.Context) error {
	_, err := l.scanNext(ctx)
	return err
}

// scanNext processes the next block range and reports whether the cursor
// reached the head. The cursor only advances after the range was fetched
// and dispatched.
func (l *Ledger) scanNext(ctx context.Context) (bool, error) {
	if err := l.loadCursor(ctx); err != nil {
		return false, err
	}

	head, err := l.client.BlockNumber(ctx)
	if err != nil {
		return false, err
	}

	l.mu.RLock()
	last := l.lastScanned
	l.mu.RUnlock()

	var from uint64
	switch {
	case last == 0 && head > l.cfg.Lookback:
		from = head - l.cfg.Lookback
	case last == 0:
		from = 0
	default:
		from = last + 1
	}
	if from > head {
		return true, nil
	}
	to := head
	if to-from+1 > l.cfg.MaxRange {
		to = from + l.cfg.MaxRange - 1
	}

	addresses := l.watched()
	if len(addresses) > 0 {
		if err := l.scanRange(ctx, from, to, addresses); err != nil {
			return false, err
		}
	}

	l.mu.Lock()
	l.lastScanned = to
	store, name := l.cursors, l.cursorName
	l.mu.Unlock()

	if store != nil {
		if err := store.Save(ctx, name, to); err != nil {
			l.log.Warn().Err(err).Uint64("block", to).Msg("saving scan cursor failed")
		}
	}
	return to == head, nil
}

// loadCursor reads the persisted cursor once. A failed read is retried on
// the next scan so the loop never starts from the lookback window by mistake.
func (l *Ledger) loadCursor(ctx context.Context) error {
	l.mu.RLock()
	store, name, loaded := l.cursors, l.cursorName, l.cursorLoaded
	l.mu.RUnlock()
	if store == nil || loaded {
		return nil
	}

	block, found, err := store.Get(ctx, name)
	if err != nil {
		return fmt.Errorf("loading scan cursor %s: %w", name, err)
	}

	l.mu.Lock()
	if found && block > l.lastScanned {
		l.lastScanned = block
	}
	l.cursorLoaded = true
	l.mu.Unlock()

	if found {
		l.log.Info().Uint64("block", block).Msg("resuming log scan from stored cursor")
	}
	return nil
}

func (l *Ledger) watched() []common.Address {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]common.Address, 0, len(l.handlers))
	for addr := range l.handlers {
		out = append(out, addr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hex() < out[j].Hex() })
	return out
}

func (l *Ledger) scanRange(ctx context.Context, from, to uint64, addresses []common.Address) error {
	recipients := make([]common.Hash, len(addresses))
	for i, a := range addresses {
		recipients[i] = common.BytesToHash(a.Bytes())
	}

	logs, err := l.client.FilterLogs(ctx, ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		ToBlock:   new(big.Int).SetUint64(to),
		Addresses: []common.Address{l.contract},
		Topics:    [][]common.Hash{{transferTopic}, nil, recipients},
	})
	if err != nil {
		return fmt.Errorf("filtering logs %d-%d: %w", from, to, err)
	}

	for _, entry := range logs {
		transfer, ok := l.decode(entry)
		if !ok {
			continue
		}
		l.dispatch(ctx, transfer)
	}
	return nil
}

func (l *Ledger) decode(entry types.Log) (domain.IncomingTransfer, bool) {
	if entry.Removed || len(entry.Topics) != 3 || entry.Topics[0] != transferTopic {
		return domain.IncomingTransfer{}, false
	}
	values, err := erc20ABI.Unpack("Transfer", entry.Data)
	if err != nil || len(values) != 1 {
		l.log.Warn().Err(err).Str("tx_hash", entry.TxHash.Hex()).Msg("undecodable transfer log")
		return domain.IncomingTransfer{}, false
	}
	amount, ok := values[0].(*big.Int)
	if !ok {
		return domain.IncomingTransfer{}, false
	}
	return domain.IncomingTransfer{
		TxHash:      entry.TxHash.Hex(),
		From:        common.BytesToAddress(entry.Topics[1].Bytes()).Hex(),
		To:          common.BytesToAddress(entry.Topics[2].Bytes()).Hex(),
		Amount:      amount,
		BlockNumber: entry.BlockNumber,
	}, true
}

func (l *Ledger) dispatch(ctx context.Context, transfer domain.IncomingTransfer) {
	l.mu.RLock()
	handler, ok := l.handlers[common.HexToAddress(transfer.To)]
	l.mu.RUnlock()
	if !ok {
		return
	}

	if err := handler(ctx, transfer); err != nil {
		l.log.Error().Err(err).
			Str("tx_hash", transfer.TxHash).
			Str("to", transfer.To).
			Msg("transfer handler failed")
	}
}
