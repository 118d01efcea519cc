package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cryptopay-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const webhookColumnsSQL = `id, order_id, event, target_url, payload, signature, status, attempts,
		next_retry_at, last_response_code, last_error, delivered_at, created_at, updated_at`

// WebhookRepo implements ports.WebhookRepository.
type WebhookRepo struct {
	pool Pool
}

// NewWebhookRepo creates a new WebhookRepo.
func NewWebhookRepo(pool Pool) *WebhookRepo {
	return &WebhookRepo{pool: pool}
}

// Create persists a new delivery.
func (r *WebhookRepo) Create(ctx context.Context, d *domain.WebhookDelivery) error {
	query := `INSERT INTO webhook_deliveries (` + webhookColumnsSQL + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.pool.Exec(ctx, query,
		d.ID, d.OrderID, d.Event, d.TargetURL, d.Payload, d.Signature, d.Status, d.Attempts,
		d.NextRetryAt, d.LastResponseCode, d.LastError, d.DeliveredAt, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert webhook delivery: %w", err)
	}
	return nil
}

// GetByID fetches a delivery.
func (r *WebhookRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WebhookDelivery, error) {
	query := `SELECT ` + webhookColumnsSQL + ` FROM webhook_deliveries WHERE id = $1`
	d, err := scanWebhook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get webhook delivery: %w", err)
	}
	return d, nil
}

// ListDue returns pending deliveries whose retry time is unset or has passed.
func (r *WebhookRepo) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.WebhookDelivery, error) {
	query := `SELECT ` + webhookColumnsSQL + ` FROM webhook_deliveries
		WHERE status = 'PENDING' AND (next_retry_at IS NULL OR next_retry_at <= $1)
		ORDER BY created_at ASC LIMIT $2`
	return r.list(ctx, query, now, limit)
}

// ListByOrder returns the deliveries for one order, oldest first.
func (r *WebhookRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.WebhookDelivery, error) {
	query := `SELECT ` + webhookColumnsSQL + ` FROM webhook_deliveries
		WHERE order_id = $1 ORDER BY created_at ASC`
	return r.list(ctx, query, orderID)
}

// Update stores the outcome of a delivery attempt.
func (r *WebhookRepo) Update(ctx context.Context, d *domain.WebhookDelivery) error {
	query := `UPDATE webhook_deliveries
		SET status = $1, attempts = $2, next_retry_at = $3, last_response_code = $4,
			last_error = $5, delivered_at = $6, updated_at = $7
		WHERE id = $8`

	_, err := r.pool.Exec(ctx, query,
		d.Status, d.Attempts, d.NextRetryAt, d.LastResponseCode,
		d.LastError, d.DeliveredAt, d.UpdatedAt, d.ID,
	)
	if err != nil {
		return fmt.Errorf("update webhook delivery: %w", err)
	}
	return nil
}

// CountByStatus returns the number of deliveries per status.
func (r *WebhookRepo) CountByStatus(ctx context.Context) (map[domain.WebhookStatus]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM webhook_deliveries GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count webhooks: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.WebhookStatus]int64)
	for rows.Next() {
		var status domain.WebhookStatus
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan webhook count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *WebhookRepo) list(ctx context.Context, query string, args ...any) ([]domain.WebhookDelivery, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list webhook deliveries: %w", err)
	}
	defer rows.Close()

	var out []domain.WebhookDelivery
	for rows.Next() {
		d, err := scanWebhook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan webhook row: %w", err)
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate webhook rows: %w", err)
	}
	return out, nil
}

func scanWebhook(row pgx.Row) (*domain.WebhookDelivery, error) {
	d := &domain.WebhookDelivery{}
	err := row.Scan(
		&d.ID, &d.OrderID, &d.Event, &d.TargetURL, &d.Payload, &d.Signature, &d.Status, &d.Attempts,
		&d.NextRetryAt, &d.LastResponseCode, &d.LastError, &d.DeliveredAt, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}
