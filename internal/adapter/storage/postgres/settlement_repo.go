package postgres

import (
	"context"
	"fmt"

	"cryptopay-gateway/internal/core/domain"

	"github.com/google/uuid"
)

// SettlementRepo implements ports.SettlementRepository. Records are append-only.
type SettlementRepo struct {
	pool Pool
}

// NewSettlementRepo creates a new SettlementRepo.
func NewSettlementRepo(pool Pool) *SettlementRepo {
	return &SettlementRepo{pool: pool}
}

// Create appends a settlement attempt.
func (r *SettlementRepo) Create(ctx context.Context, rec *domain.SettlementRecord) error {
	query := `INSERT INTO settlement_records (id, order_id, outcome, reason, detail, merchant_amount,
		platform_amount, gas_cost_token, merchant_tx_hash, platform_tx_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.OrderID, rec.Outcome, rec.Reason, rec.Detail,
		nullableNumericText(rec.MerchantAmount), nullableNumericText(rec.PlatformAmount),
		nullableNumericText(rec.GasCostToken), rec.MerchantTxHash, rec.PlatformTxHash, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert settlement record: %w", err)
	}
	return nil
}

// ListByOrder returns every attempt for an order, oldest first.
func (r *SettlementRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.SettlementRecord, error) {
	query := `SELECT id, order_id, outcome, reason, detail, merchant_amount::text, platform_amount::text,
		gas_cost_token::text, merchant_tx_hash, platform_tx_hash, created_at
		FROM settlement_records WHERE order_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list settlement records: %w", err)
	}
	defer rows.Close()

	var out []domain.SettlementRecord
	for rows.Next() {
		var rec domain.SettlementRecord
		var merchant, platform, gas *string
		if err := rows.Scan(
			&rec.ID, &rec.OrderID, &rec.Outcome, &rec.Reason, &rec.Detail,
			&merchant, &platform, &gas, &rec.MerchantTxHash, &rec.PlatformTxHash, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan settlement record: %w", err)
		}
		if rec.MerchantAmount, err = parseNullableNumeric(merchant); err != nil {
			return nil, err
		}
		if rec.PlatformAmount, err = parseNullableNumeric(platform); err != nil {
			return nil, err
		}
		if rec.GasCostToken, err = parseNullableNumeric(gas); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// HasPartial reports whether any attempt for the order ended half-paid.
func (r *SettlementRepo) HasPartial(ctx context.Context, orderID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM settlement_records WHERE order_id = $1 AND outcome = 'PARTIAL')`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, orderID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check partial settlement: %w", err)
	}
	return exists, nil
}
