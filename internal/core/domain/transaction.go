package domain

import (
	"math/big"
	"time"

	"github.com/google/uuid"
)

// TransactionStatus tracks confirmation depth of an observed transfer.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusConfirmed TransactionStatus = "CONFIRMED"
)

// Transaction is an observed on-chain token transfer into a deposit address.
// The hash is unique and never reassigned to another order.
type Transaction struct {
	ID            uuid.UUID         `json:"id"`
	TxHash        string            `json:"tx_hash"`
	OrderID       uuid.UUID         `json:"order_id"`
	FromAddress   string            `json:"from_address"`
	ToAddress     string            `json:"to_address"`
	Amount        *big.Int          `json:"amount"`
	BlockNumber   uint64            `json:"block_number"`
	Confirmations uint64            `json:"confirmations"`
	Status        TransactionStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// IsConfirmed returns true once the transfer reached the given depth.
func (t *Transaction) IsConfirmed(threshold uint64) bool {
	return t.Confirmations >= threshold
}

// IncomingTransfer is a token transfer seen on chain, before it is matched to an order.
type IncomingTransfer struct {
	TxHash      string
	From        string
	To          string
	Amount      *big.Int
	BlockNumber uint64
}
