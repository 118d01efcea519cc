package evm

import (
	"context"
	"fmt"
	"math/big"

	"cryptopay-gateway/internal/core/ports"

	"github.com/ethereum/go-ethereum/common"
)

// BalanceReader reads native balances.
type BalanceReader interface {
	NativeBalance(ctx context.Context, address common.Address) (*big.Int, error)
}

// Reservoir is the only holder of the index-0 signer. Gas top-ups, platform
// payouts and recovered funds all go through it and the shared sender.
type Reservoir struct {
	signer   ports.Signer
	sender   ports.TxSender
	balances BalanceReader
	gasLimit uint64
}

// NewReservoir wraps the reservoir signer.
func NewReservoir(signer ports.Signer, sender ports.TxSender, balances BalanceReader, nativeGasLimit uint64) *Reservoir {
	if nativeGasLimit == 0 {
		nativeGasLimit = 21000
	}
	return &Reservoir{signer: signer, sender: sender, balances: balances, gasLimit: nativeGasLimit}
}

// Address returns the reservoir address.
func (r *Reservoir) Address() common.Address {
	return r.signer.Address()
}

// Balance returns the reservoir's native balance.
func (r *Reservoir) Balance(ctx context.Context) (*big.Int, error) {
	return r.balances.NativeBalance(ctx, r.signer.Address())
}

// SendNative sends value wei from the reservoir to to.
func (r *Reservoir) SendNative(ctx context.Context, to common.Address, value *big.Int) (common.Hash, error) {
	if value == nil || value.Sign() <= 0 {
		return common.Hash{}, fmt.Errorf("native send amount must be positive")
	}
	return r.sender.Send(ctx, ports.TxRequest{
		Signer:   r.signer,
		To:       to,
		Value:    value,
		GasLimit: r.gasLimit,
	})
}
