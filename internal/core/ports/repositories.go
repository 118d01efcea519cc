package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"
	"math/big"
	"time"

	"cryptopay-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MerchantRepository defines persistence operations for merchants.
type MerchantRepository interface {
	Create(ctx context.Context, merchant *domain.Merchant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error)
	GetByAccessKey(ctx context.Context, accessKey string) (*domain.Merchant, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MerchantStatus) error
}

// OrderRepository defines persistence operations for payment orders.
// Methods accepting pgx.Tx run inside a caller-owned transaction.
type OrderRepository interface {
	NextDerivationIndex(ctx context.Context) (int64, error)
	// Create inserts the order; returns false if the merchant already has an
	// order with the same external id.
	Create(ctx context.Context, order *domain.PaymentOrder) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentOrder, error)
	GetByAddress(ctx context.Context, address string) (*domain.PaymentOrder, error)
	GetByExternalID(ctx context.Context, merchantID uuid.UUID, externalOrderID string) (*domain.PaymentOrder, error)
	ListByStatus(ctx context.Context, statuses []domain.OrderStatus, limit int) ([]domain.PaymentOrder, error)
	ListCreatedBefore(ctx context.Context, statuses []domain.OrderStatus, before time.Time) ([]domain.PaymentOrder, error)
	// Transition applies the status change only if the stored status equals t.From.
	// Returns false when another writer already moved the order.
	Transition(ctx context.Context, tx pgx.Tx, t domain.OrderTransition) (bool, error)
	ExpireStale(ctx context.Context, now time.Time) ([]domain.ExpiredOrder, error)
	Stats(ctx context.Context) ([]OrderStatRow, error)
}

// OrderStatRow is one (status, currency) aggregate.
type OrderStatRow struct {
	Status      domain.OrderStatus
	Currency    string
	Count       int64
	TotalAmount *big.Int
	TotalFees   *big.Int
}

// TransactionRepository defines persistence for observed on-chain transfers.
type TransactionRepository interface {
	// Create inserts the transfer; returns false if the hash is already recorded.
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) (bool, error)
	GetByHash(ctx context.Context, hash string) (*domain.Transaction, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.Transaction, error)
	// ListUnconfirmed returns pending transfers whose order is still PENDING.
	ListUnconfirmed(ctx context.Context, limit int) ([]domain.Transaction, error)
	UpdateConfirmations(ctx context.Context, tx pgx.Tx, hash string, confirmations uint64, status domain.TransactionStatus) error
}

// ScanCursorRepository persists the last block a log scanner fully processed.
type ScanCursorRepository interface {
	// Get returns false when no cursor is stored under name.
	Get(ctx context.Context, name string) (uint64, bool, error)
	Save(ctx context.Context, name string, block uint64) error
}

// WebhookRepository defines persistence for webhook deliveries.
type WebhookRepository interface {
	Create(ctx context.Context, delivery *domain.WebhookDelivery) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WebhookDelivery, error)
	ListDue(ctx context.Context, now time.Time, limit int) ([]domain.WebhookDelivery, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.WebhookDelivery, error)
	Update(ctx context.Context, delivery *domain.WebhookDelivery) error
	CountByStatus(ctx context.Context) (map[domain.WebhookStatus]int64, error)
}

// SettlementRepository stores the settlement audit trail.
type SettlementRepository interface {
	Create(ctx context.Context, record *domain.SettlementRecord) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.SettlementRecord, error)
	HasPartial(ctx context.Context, orderID uuid.UUID) (bool, error)
}

// RecoveryRepository stores fund-recovery sweeps.
type RecoveryRepository interface {
	Create(ctx context.Context, record *domain.RecoveryRecord) error
	List(ctx context.Context, limit int) ([]domain.RecoveryRecord, error)
	Summary(ctx context.Context) (int, *time.Time, error)
}

// AuditRepository persists operator audit logs.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
