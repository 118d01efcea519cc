package domain

import (
	"math/big"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is a state of the payment-order lifecycle.
//
//	CREATED -> PENDING -> CONFIRMED -> SETTLED
//	CREATED|PENDING -> EXPIRED
//	any non-terminal -> FAILED
type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "CREATED"
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusSettled   OrderStatus = "SETTLED"
	OrderStatusExpired   OrderStatus = "EXPIRED"
	OrderStatusFailed    OrderStatus = "FAILED"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusCreated:   {OrderStatusPending, OrderStatusExpired, OrderStatusFailed},
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusExpired, OrderStatusFailed},
	OrderStatusConfirmed: {OrderStatusSettled, OrderStatusFailed},
}

// CanTransitionTo reports whether next is a legal forward move from s.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal returns true for states with no outgoing transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusSettled || s == OrderStatusExpired || s == OrderStatusFailed
}

// IsWatched returns true while the deposit address must be monitored for transfers.
func (s OrderStatus) IsWatched() bool {
	return s == OrderStatusCreated || s == OrderStatusPending
}

// MaxDerivationIndex is the last non-hardened child index a deposit address can use.
const MaxDerivationIndex = 1<<31 - 1

// PaymentOrder is one merchant request for a stablecoin payment.
// Amounts are token minor units; NetAmount + FeeAmount == Amount.
type PaymentOrder struct {
	ID              uuid.UUID      `json:"id"`
	MerchantID      uuid.UUID      `json:"merchant_id"`
	ExternalOrderID string         `json:"external_order_id"`
	Amount          *big.Int       `json:"amount"`
	FeeAmount       *big.Int       `json:"fee_amount"`
	NetAmount       *big.Int       `json:"net_amount"`
	Currency        string         `json:"currency"`
	DepositAddress  string         `json:"deposit_address"`
	DerivationIndex uint32         `json:"derivation_index"`
	Status          OrderStatus    `json:"status"`
	TxHash          *string        `json:"tx_hash,omitempty"`
	ExpiresAt       time.Time      `json:"expires_at"`
	CallbackURL     *string        `json:"callback_url,omitempty"`
	ReturnURL       *string        `json:"return_url,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	SettledAt       *time.Time     `json:"settled_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// IsExpired reports whether the payment window has closed at now.
func (o *PaymentOrder) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// OrderTransition describes a conditional status change. The update only
// applies if the stored status still equals From.
type OrderTransition struct {
	OrderID uuid.UUID
	From    OrderStatus
	To      OrderStatus
	TxHash  *string
	At      time.Time
}

// ExpiredOrder identifies an order moved to EXPIRED by the expiry sweep.
type ExpiredOrder struct {
	ID             uuid.UUID
	DepositAddress string
	PreviousStatus OrderStatus
}
