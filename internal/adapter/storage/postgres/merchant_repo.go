package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cryptopay-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const merchantColumnsSQL = `id, name, wallet_address, fee_percent::text, status, webhook_url, access_key, api_key_hash, created_at, updated_at`

// MerchantRepo implements ports.MerchantRepository.
type MerchantRepo struct {
	pool Pool
}

// NewMerchantRepo creates a new MerchantRepo.
func NewMerchantRepo(pool Pool) *MerchantRepo {
	return &MerchantRepo{pool: pool}
}

// Create inserts a new merchant into the database.
func (r *MerchantRepo) Create(ctx context.Context, m *domain.Merchant) error {
	query := `INSERT INTO merchants (id, name, wallet_address, fee_percent, status, webhook_url, access_key, api_key_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	var fee *string
	if m.FeePercent != nil {
		s := m.FeePercent.String()
		fee = &s
	}

	_, err := r.pool.Exec(ctx, query,
		m.ID, m.Name, m.WalletAddress, fee, m.Status,
		m.WebhookURL, m.AccessKey, m.APIKeyHash,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert merchant: %w", err)
	}
	return nil
}

// GetByID fetches a merchant by its UUID.
func (r *MerchantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error) {
	query := `SELECT ` + merchantColumnsSQL + ` FROM merchants WHERE id = $1`
	m, err := scanMerchant(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get merchant by id: %w", err)
	}
	return m, nil
}

// GetByAccessKey fetches a merchant by its public access key.
func (r *MerchantRepo) GetByAccessKey(ctx context.Context, accessKey string) (*domain.Merchant, error) {
	query := `SELECT ` + merchantColumnsSQL + ` FROM merchants WHERE access_key = $1`
	m, err := scanMerchant(r.pool.QueryRow(ctx, query, accessKey))
	if err != nil {
		return nil, fmt.Errorf("get merchant by access_key: %w", err)
	}
	return m, nil
}

// UpdateStatus changes a merchant's status.
func (r *MerchantRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MerchantStatus) error {
	query := `UPDATE merchants SET status = $1, updated_at = $2 WHERE id = $3`
	tag, err := r.pool.Exec(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update merchant status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("merchant not found: %s", id)
	}
	return nil
}

func scanMerchant(row pgx.Row) (*domain.Merchant, error) {
	m := &domain.Merchant{}
	var fee *string
	err := row.Scan(
		&m.ID, &m.Name, &m.WalletAddress, &fee, &m.Status,
		&m.WebhookURL, &m.AccessKey, &m.APIKeyHash,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if fee != nil {
		d, err := decimal.NewFromString(*fee)
		if err != nil {
			return nil, fmt.Errorf("parsing fee_percent: %w", err)
		}
		m.FeePercent = &d
	}
	return m, nil
}
