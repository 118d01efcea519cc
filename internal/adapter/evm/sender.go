package evm

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"cryptopay-gateway/internal/core/ports"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"
)

// TxBackend is what the sender needs from the chain. *Provider implements it.
type TxBackend interface {
	ChainID() *big.Int
	GasPrice(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// Sender implements ports.TxSender. Nonce lookup, signing and broadcast are
// serialised per signing address so concurrent callers never share a nonce.
type Sender struct {
	backend TxBackend
	log     zerolog.Logger

	mu    sync.Mutex
	locks map[common.Address]*sync.Mutex
}

// NewSender creates the process-wide sender.
func NewSender(backend TxBackend, log zerolog.Logger) *Sender {
	return &Sender{
		backend: backend,
		log:     log.With().Str("component", "tx_sender").Logger(),
		locks:   make(map[common.Address]*sync.Mutex),
	}
}

func (s *Sender) lockFor(addr common.Address) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[addr]
	if !ok {
		l = &sync.Mutex{}
		s.locks[addr] = l
	}
	return l
}

// Send builds a legacy transaction from req, signs it and broadcasts it.
func (s *Sender) Send(ctx context.Context, req ports.TxRequest) (common.Hash, error) {
	if req.Signer == nil {
		return common.Hash{}, fmt.Errorf("missing signer")
	}
	if req.GasLimit == 0 {
		return common.Hash{}, fmt.Errorf("missing gas limit")
	}
	from := req.Signer.Address()

	lock := s.lockFor(from)
	lock.Lock()
	defer lock.Unlock()

	gasPrice := req.GasPrice
	if gasPrice == nil {
		p, err := s.backend.GasPrice(ctx)
		if err != nil {
			return common.Hash{}, fmt.Errorf("fetching gas price: %w", err)
		}
		gasPrice = p
	}

	nonce, err := s.backend.PendingNonceAt(ctx, from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("fetching nonce for %s: %w", from.Hex(), err)
	}

	value := req.Value
	if value == nil {
		value = big.NewInt(0)
	}
	to := req.To
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      req.GasLimit,
		To:       &to,
		Value:    value,
		Data:     req.Data,
	})

	signed, err := req.Signer.SignTx(tx, s.backend.ChainID())
	if err != nil {
		return common.Hash{}, fmt.Errorf("signing tx: %w", err)
	}
	if err := s.backend.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("broadcasting tx from %s: %w", from.Hex(), err)
	}

	s.log.Debug().
		Str("from", from.Hex()).
		Str("to", to.Hex()).
		Uint64("nonce", nonce).
		Str("tx_hash", signed.Hash().Hex()).
		Msg("transaction broadcast")
	return signed.Hash(), nil
}
