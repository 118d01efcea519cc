package domain

import (
	"math/big"
	"time"

	"github.com/google/uuid"
)

// SettlementOutcome classifies a settlement attempt.
type SettlementOutcome string

const (
	SettlementSuccess SettlementOutcome = "SUCCESS"
	SettlementFailed  SettlementOutcome = "FAILED"
	// SettlementPartial means the merchant leg may have moved funds but the
	// platform leg did not complete. Never retried automatically.
	SettlementPartial SettlementOutcome = "PARTIAL"
	SettlementNoop    SettlementOutcome = "NOOP"
)

// SettlementReason is a machine-readable cause for a non-successful settlement.
type SettlementReason string

const (
	ReasonNone                     SettlementReason = ""
	ReasonOrderNotFound            SettlementReason = "ORDER_NOT_FOUND"
	ReasonAlreadySettled           SettlementReason = "ALREADY_SETTLED"
	ReasonInvalidStatus            SettlementReason = "INVALID_STATUS"
	ReasonRequiresReconciliation   SettlementReason = "REQUIRES_RECONCILIATION"
	ReasonTransactionNotConfirmed  SettlementReason = "TRANSACTION_NOT_CONFIRMED"
	ReasonInsufficientTokenBalance SettlementReason = "INSUFFICIENT_TOKEN_BALANCE"
	ReasonInsufficientGas          SettlementReason = "INSUFFICIENT_GAS"
	ReasonGasExceedsPayout         SettlementReason = "GAS_EXCEEDS_PAYOUT"
	ReasonMerchantNotFound         SettlementReason = "MERCHANT_NOT_FOUND"
	ReasonUnsupportedCurrency      SettlementReason = "UNSUPPORTED_CURRENCY"
	ReasonLocked                   SettlementReason = "SETTLEMENT_IN_PROGRESS"
	ReasonRPCError                 SettlementReason = "RPC_ERROR"
	ReasonMerchantTransferFailed   SettlementReason = "MERCHANT_TRANSFER_FAILED"
	ReasonPlatformTransferFailed   SettlementReason = "PLATFORM_TRANSFER_FAILED"
	ReasonStoreError               SettlementReason = "STORE_ERROR"
)

// SettlementRecord is the audit entry written for every settlement attempt.
type SettlementRecord struct {
	ID             uuid.UUID         `json:"id"`
	OrderID        uuid.UUID         `json:"order_id"`
	Outcome        SettlementOutcome `json:"outcome"`
	Reason         SettlementReason  `json:"reason,omitempty"`
	Detail         string            `json:"detail,omitempty"`
	MerchantAmount *big.Int          `json:"merchant_amount,omitempty"`
	PlatformAmount *big.Int          `json:"platform_amount,omitempty"`
	GasCostToken   *big.Int          `json:"gas_cost_token,omitempty"`
	MerchantTxHash *string           `json:"merchant_tx_hash,omitempty"`
	PlatformTxHash *string           `json:"platform_tx_hash,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// SettlementResult is returned by the settlement engine instead of an error so
// batch callers can continue past individual failures.
type SettlementResult struct {
	OrderID        uuid.UUID         `json:"order_id"`
	Outcome        SettlementOutcome `json:"outcome"`
	Reason         SettlementReason  `json:"reason,omitempty"`
	Detail         string            `json:"detail,omitempty"`
	MerchantAmount *big.Int          `json:"merchant_amount,omitempty"`
	PlatformAmount *big.Int          `json:"platform_amount,omitempty"`
	GasCostToken   *big.Int          `json:"gas_cost_token,omitempty"`
	MerchantTxHash *string           `json:"merchant_tx_hash,omitempty"`
	PlatformTxHash *string           `json:"platform_tx_hash,omitempty"`
}

// OK reports whether the order is settled after this call.
func (r *SettlementResult) OK() bool {
	return r.Outcome == SettlementSuccess || r.Outcome == SettlementNoop
}

// Record converts the result into its audit entry.
func (r *SettlementResult) Record(now time.Time) *SettlementRecord {
	return &SettlementRecord{
		ID:             uuid.New(),
		OrderID:        r.OrderID,
		Outcome:        r.Outcome,
		Reason:         r.Reason,
		Detail:         r.Detail,
		MerchantAmount: r.MerchantAmount,
		PlatformAmount: r.PlatformAmount,
		GasCostToken:   r.GasCostToken,
		MerchantTxHash: r.MerchantTxHash,
		PlatformTxHash: r.PlatformTxHash,
		CreatedAt:      now,
	}
}
