package evm

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

type jsonRPCError struct{ msg string }

func (e jsonRPCError) Error() string  { return e.msg }
func (e jsonRPCError) ErrorCode() int { return -32000 }

var errDialFailed = errors.New("connection refused")

// fakeClient is an in-memory EVMClient.
type fakeClient struct {
	mu sync.Mutex

	chainID  *big.Int
	head     uint64
	balances map[common.Address]*big.Int
	receipts map[common.Hash]*types.Receipt
	logs     []types.Log
	callOut  []byte
	nonce    uint64
	gasPrice *big.Int
	sent     []*types.Transaction
	queries  []ethereum.FilterQuery

	err    error
	calls  int
	closed bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		chainID:  big.NewInt(97),
		head:     100,
		balances: make(map[common.Address]*big.Int),
		receipts: make(map[common.Hash]*types.Receipt),
		gasPrice: big.NewInt(5_000_000_000),
	}
}

func (f *fakeClient) record() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeClient) ChainID(context.Context) (*big.Int, error) {
	if err := f.record(); err != nil {
		return nil, err
	}
	return f.chainID, nil
}

func (f *fakeClient) BlockNumber(context.Context) (uint64, error) {
	if err := f.record(); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.head, nil
}

func (f *fakeClient) BalanceAt(_ context.Context, account common.Address, _ *big.Int) (*big.Int, error) {
	if err := f.record(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.balances[account]; ok {
		return b, nil
	}
	return big.NewInt(0), nil
}

func (f *fakeClient) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	if err := f.record(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.receipts[hash]
	if !ok {
		return nil, ethereum.NotFound
	}
	return r, nil
}

func (f *fakeClient) SuggestGasPrice(context.Context) (*big.Int, error) {
	if err := f.record(); err != nil {
		return nil, err
	}
	return f.gasPrice, nil
}

func (f *fakeClient) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	if err := f.record(); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nonce, nil
}

func (f *fakeClient) SendTransaction(_ context.Context, tx *types.Transaction) error {
	if err := f.record(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, tx)
	f.nonce++
	return nil
}

func (f *fakeClient) CallContract(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error) {
	if err := f.record(); err != nil {
		return nil, err
	}
	return f.callOut, nil
}

func (f *fakeClient) FilterLogs(_ context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	if err := f.record(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	var out []types.Log
	for _, l := range f.logs {
		if l.BlockNumber >= q.FromBlock.Uint64() && l.BlockNumber <= q.ToBlock.Uint64() {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeClient) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}
