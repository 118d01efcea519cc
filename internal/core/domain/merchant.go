package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MerchantStatus represents the state of a merchant account.
type MerchantStatus string

const (
	MerchantStatusActive    MerchantStatus = "ACTIVE"
	MerchantStatusSuspended MerchantStatus = "SUSPENDED"
)

// Merchant is a registered payee. Merchants are never deleted, only suspended.
type Merchant struct {
	ID            uuid.UUID        `json:"id"`
	Name          string           `json:"name"`
	WalletAddress string           `json:"wallet_address"` // payout destination
	FeePercent    *decimal.Decimal `json:"fee_percent,omitempty"`
	Status        MerchantStatus   `json:"status"`
	WebhookURL    *string          `json:"webhook_url,omitempty"`
	AccessKey     string           `json:"access_key"`
	APIKeyHash    string           `json:"-"` // Argon2id, never expose
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// IsActive returns true if the merchant account is active.
func (m *Merchant) IsActive() bool {
	return m.Status == MerchantStatusActive
}

// EffectiveFee returns the merchant-specific fee or the platform default.
func (m *Merchant) EffectiveFee(platformDefault decimal.Decimal) decimal.Decimal {
	if m.FeePercent != nil {
		return *m.FeePercent
	}
	return platformDefault
}
