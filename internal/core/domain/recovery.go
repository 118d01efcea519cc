package domain

import (
	"math/big"
	"time"

	"github.com/google/uuid"
)

// RecoveryStatus is the outcome of one sweep of a stranded deposit address.
type RecoveryStatus string

const (
	RecoveryStatusSuccess RecoveryStatus = "SUCCESS"
	RecoveryStatusPartial RecoveryStatus = "PARTIAL"
	RecoveryStatusFailed  RecoveryStatus = "FAILED"
	RecoveryStatusEmpty   RecoveryStatus = "EMPTY"
)

// RecoveryRecord captures what a sweep moved back to the reservoir.
// Sweeping never changes the order status.
type RecoveryRecord struct {
	ID           uuid.UUID      `json:"id"`
	OrderID      uuid.UUID      `json:"order_id"`
	Address      string         `json:"address"`
	TokenAmount  *big.Int       `json:"token_amount"`
	NativeAmount *big.Int       `json:"native_amount"`
	TokenTxHash  *string        `json:"token_tx_hash,omitempty"`
	NativeTxHash *string        `json:"native_tx_hash,omitempty"`
	Status       RecoveryStatus `json:"status"`
	Error        *string        `json:"error,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// SweepCandidate is an order whose deposit address still holds value after
// the grace period.
type SweepCandidate struct {
	OrderID        uuid.UUID   `json:"order_id"`
	Address        string      `json:"address"`
	Index          uint32      `json:"derivation_index"`
	Currency       string      `json:"currency"`
	Status         OrderStatus `json:"status"`
	TokenBalance   *big.Int    `json:"token_balance"`
	NativeBalance  *big.Int    `json:"native_balance"`
	OrderCreatedAt time.Time   `json:"order_created_at"`
}

// SweepReport aggregates a sweepAll run.
type SweepReport struct {
	Attempted   int               `json:"attempted"`
	Succeeded   int               `json:"succeeded"`
	Failed      int               `json:"failed"`
	TotalToken  map[string]string `json:"total_token"` // currency -> decimal amount
	TotalNative string            `json:"total_native"`
	Results     []*RecoveryRecord `json:"results"`
}

// RecoverySummary is the admin overview of stranded balances.
type RecoverySummary struct {
	Candidates      int               `json:"candidates"`
	TokenStranded   map[string]string `json:"token_stranded"`
	NativeStranded  string            `json:"native_stranded"`
	RecoveredTotal  int               `json:"recovered_total"`
	LastRecoveredAt *time.Time        `json:"last_recovered_at,omitempty"`
}

// GasAction names the GasKeeper operation that produced a GasResult.
type GasAction string

const (
	GasActionFund    GasAction = "FUND"
	GasActionRecover GasAction = "RECOVER"
)

// GasResult is the structured outcome of a GasKeeper operation.
type GasResult struct {
	Action  GasAction `json:"action"`
	Address string    `json:"address"`
	Success bool      `json:"success"`
	Reason  string    `json:"reason,omitempty"`
	Amount  *big.Int  `json:"amount,omitempty"`
	TxHash  *string   `json:"tx_hash,omitempty"`
}

// GasStatus describes the native balance of an address against policy.
type GasStatus struct {
	Address    string   `json:"address"`
	Balance    *big.Int `json:"balance"`
	MinBalance *big.Int `json:"min_balance"`
	NeedsGas   bool     `json:"needs_gas"`
}

// Gas failure reasons.
const (
	GasReasonInsufficientReservoir = "INSUFFICIENT_RESERVOIR"
	GasReasonOrderNotFound         = "ORDER_NOT_FOUND"
	GasReasonNotSettled            = "ORDER_NOT_SETTLED"
	GasReasonBelowDust             = "BELOW_DUST"
	GasReasonCannotCoverGas        = "CANNOT_COVER_GAS"
	GasReasonReservoirAddress      = "RESERVOIR_ADDRESS"
	GasReasonRPCError              = "RPC_ERROR"
	GasReasonInvalidAddress        = "INVALID_ADDRESS"
	GasReasonTxReverted            = "TX_REVERTED"
)
