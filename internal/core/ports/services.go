package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"time"

	"cryptopay-gateway/internal/core/domain"

	"github.com/google/uuid"
)

// SignatureService handles HMAC-SHA256 signing and verification.
type SignatureService interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
}

// HashService handles credential hashing (Argon2id).
type HashService interface {
	Hash(secret string) (string, error)
	Verify(secret string, hash string) (bool, error)
}

// TokenService issues payer-facing checkout tokens bound to one order.
type TokenService interface {
	Generate(orderID uuid.UUID, expiresAt time.Time) (string, error)
	Validate(tokenString string) (uuid.UUID, error)
}

// IdempotencyCache is the Redis-layer idempotency check (fast path).
type IdempotencyCache interface {
	// Get returns the cached value, or nil when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// SettlementLock is a cross-process mutual exclusion on one order.
type SettlementLock interface {
	// Acquire returns a release token, or "" when the lock is held elsewhere.
	Acquire(ctx context.Context, orderID string, ttl time.Duration) (string, error)
	Release(ctx context.Context, orderID string, token string) error
}

// --- Core engine ports ---

// CreateOrderRequest holds validated input for order creation.
type CreateOrderRequest struct {
	MerchantID      uuid.UUID
	ExternalOrderID string
	Amount          string // decimal string in token units
	Currency        string
	CallbackURL     *string
	ReturnURL       *string
	Metadata        map[string]any
}

// OrderStore is the payment-order lifecycle manager.
type OrderStore interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.PaymentOrder, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.PaymentOrder, error)
	ListOpenOrders(ctx context.Context) ([]domain.PaymentOrder, error)
	RecordIncomingTransaction(ctx context.Context, transfer domain.IncomingTransfer) error
	// UpdateConfirmations returns true only on the call that moved the order to CONFIRMED.
	UpdateConfirmations(ctx context.Context, txHash string, confirmations uint64) (bool, error)
	ExpireStaleOrders(ctx context.Context) (int, error)
	MarkSettled(ctx context.Context, orderID uuid.UUID) (bool, error)
	FailOrder(ctx context.Context, orderID uuid.UUID, reason string) error
}

// AddressWatcher registers deposit addresses with the chain watcher.
type AddressWatcher interface {
	Watch(ctx context.Context, order *domain.PaymentOrder) error
	Unwatch(address string)
}

// SettlementEngine executes the dual payout for a confirmed order.
type SettlementEngine interface {
	Settle(ctx context.Context, orderID uuid.UUID) *domain.SettlementResult
	SettleBatch(ctx context.Context, orderIDs []uuid.UUID) []*domain.SettlementResult
	ListPending(ctx context.Context) ([]domain.PaymentOrder, error)
}

// SettlementSubmitter hands confirmed orders to the settlement worker without blocking.
type SettlementSubmitter interface {
	TrySubmit(orderID uuid.UUID) bool
}

// NotificationQueue is the durable webhook delivery queue.
type NotificationQueue interface {
	Enqueue(ctx context.Context, order *domain.PaymentOrder, event domain.WebhookEvent) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.WebhookDelivery, error)
	ProcessDue(ctx context.Context) (int, error)
	Retry(ctx context.Context, deliveryID uuid.UUID) error
}

// GasKeeper keeps deposit addresses solvent in native gas.
type GasKeeper interface {
	Status(ctx context.Context, address string) (*domain.GasStatus, error)
	NeedsGas(ctx context.Context, address string) (bool, error)
	FundAddress(ctx context.Context, address string) *domain.GasResult
	RecoverGas(ctx context.Context, index uint32) *domain.GasResult
}

// FundsSweeper recovers balances stranded in abandoned deposit addresses.
type FundsSweeper interface {
	FindSweepable(ctx context.Context) ([]domain.SweepCandidate, error)
	SweepOne(ctx context.Context, orderID uuid.UUID) (*domain.RecoveryRecord, error)
	SweepAll(ctx context.Context) (*domain.SweepReport, error)
	Summary(ctx context.Context) (*domain.RecoverySummary, error)
	ListRecoveries(ctx context.Context, limit int) ([]domain.RecoveryRecord, error)
}

// --- Operator ports ---

// CreateMerchantRequest holds input for merchant onboarding.
type CreateMerchantRequest struct {
	Name          string
	WalletAddress string
	FeePercent    *string
	WebhookURL    *string
}

// CreateMerchantResponse holds the credential shown once at creation.
type CreateMerchantResponse struct {
	Merchant *domain.Merchant
	APIKey   string // "<access_key>.<secret>", plaintext, shown only once
}

// MerchantService manages merchant accounts and API credentials.
type MerchantService interface {
	Create(ctx context.Context, req CreateMerchantRequest) (*CreateMerchantResponse, error)
	Suspend(ctx context.Context, id uuid.UUID) error
	Authenticate(ctx context.Context, apiKey string) (*domain.Merchant, error)
}

// CurrencyStats aggregates orders of one currency.
type CurrencyStats struct {
	Currency      string           `json:"currency"`
	Orders        int64            `json:"orders"`
	ByStatus      map[string]int64 `json:"by_status"`
	SettledVolume string           `json:"settled_volume"`
	FeesEarned    string           `json:"fees_earned"`
}

// DashboardStats is the admin overview.
type DashboardStats struct {
	TotalOrders       int64            `json:"total_orders"`
	Currencies        []CurrencyStats  `json:"currencies"`
	PendingSettlement int              `json:"pending_settlement"`
	WatchedAddresses  int              `json:"watched_addresses"`
	Webhooks          map[string]int64 `json:"webhooks"`
	ReservoirAddress  string           `json:"reservoir_address"`
	ReservoirBalance  string           `json:"reservoir_balance"`
	UsingSecondaryRPC bool             `json:"using_secondary_rpc"`
}

// ReportingService builds admin dashboards.
type ReportingService interface {
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

// AuditService records operator actions.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// WatchStats exposes watcher state for reporting.
type WatchStats interface {
	WatchedCount() int
}
