package ports

//go:generate mockgen -source=chain.go -destination=mocks/mock_chain.go -package=mocks

import (
	"context"
	"math/big"

	"cryptopay-gateway/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Signer signs transactions for one derived address.
type Signer interface {
	Address() common.Address
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// WalletDeriver derives deposit addresses and signers from the master seed.
// Derivation for a given index is pure and cannot fail.
type WalletDeriver interface {
	DeriveAddress(index uint32) common.Address
	DeriveSigner(index uint32) Signer
}

// ChainProvider is the read side of one EVM chain with endpoint failover.
type ChainProvider interface {
	ChainID() *big.Int
	BlockNumber(ctx context.Context) (uint64, error)
	NativeBalance(ctx context.Context, address common.Address) (*big.Int, error)
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
	GasPrice(ctx context.Context) (*big.Int, error)
	// WaitMined blocks until the transaction is included and returns its receipt.
	WaitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

// ChainAdmin exposes operator controls of the provider.
type ChainAdmin interface {
	ResetToPrimary()
	UsingSecondary() bool
}

// TxRequest describes an outbound transaction. A nil GasPrice means "current price".
type TxRequest struct {
	Signer   Signer
	To       common.Address
	Value    *big.Int
	Data     []byte
	GasLimit uint64
	GasPrice *big.Int
}

// TxSender signs and broadcasts transactions, serialising sends per address.
type TxSender interface {
	Send(ctx context.Context, req TxRequest) (common.Hash, error)
}

// TransferHandler receives incoming token transfers. Errors are logged by the
// ledger and never end the subscription.
type TransferHandler func(ctx context.Context, transfer domain.IncomingTransfer) error

// Subscription is a live incoming-transfer subscription.
type Subscription interface {
	Unsubscribe()
}

// TokenLedger reads and moves one ERC-20 token.
type TokenLedger interface {
	Token() domain.Token
	BalanceOf(ctx context.Context, address common.Address) (*big.Int, error)
	Transfer(ctx context.Context, signer Signer, to common.Address, amount *big.Int) (common.Hash, error)
	SubscribeIncoming(ctx context.Context, address common.Address, onTransfer TransferHandler) (Subscription, error)
}

// LedgerRegistry resolves the ledger for a currency on the configured network.
type LedgerRegistry interface {
	Ledger(symbol string) (TokenLedger, error)
	Symbols() []string
}

// Reservoir is the single sender for the platform address (index 0).
type Reservoir interface {
	Address() common.Address
	Balance(ctx context.Context) (*big.Int, error)
	SendNative(ctx context.Context, to common.Address, value *big.Int) (common.Hash, error)
}
