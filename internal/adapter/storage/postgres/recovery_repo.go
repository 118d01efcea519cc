package postgres

import (
	"context"
	"fmt"
	"time"

	"cryptopay-gateway/internal/core/domain"
)

// RecoveryRepo implements ports.RecoveryRepository.
type RecoveryRepo struct {
	pool Pool
}

// NewRecoveryRepo creates a new RecoveryRepo.
func NewRecoveryRepo(pool Pool) *RecoveryRepo {
	return &RecoveryRepo{pool: pool}
}

// Create records one sweep of a stranded address.
func (r *RecoveryRepo) Create(ctx context.Context, rec *domain.RecoveryRecord) error {
	query := `INSERT INTO recovery_records (id, order_id, address, token_amount, native_amount,
		token_tx_hash, native_tx_hash, status, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.OrderID, rec.Address, numericText(rec.TokenAmount), numericText(rec.NativeAmount),
		rec.TokenTxHash, rec.NativeTxHash, rec.Status, rec.Error, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert recovery record: %w", err)
	}
	return nil
}

// List returns the most recent recoveries.
func (r *RecoveryRepo) List(ctx context.Context, limit int) ([]domain.RecoveryRecord, error) {
	query := `SELECT id, order_id, address, token_amount::text, native_amount::text,
		token_tx_hash, native_tx_hash, status, error, created_at
		FROM recovery_records ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recovery records: %w", err)
	}
	defer rows.Close()

	var out []domain.RecoveryRecord
	for rows.Next() {
		var rec domain.RecoveryRecord
		var token, native string
		if err := rows.Scan(
			&rec.ID, &rec.OrderID, &rec.Address, &token, &native,
			&rec.TokenTxHash, &rec.NativeTxHash, &rec.Status, &rec.Error, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan recovery record: %w", err)
		}
		if rec.TokenAmount, err = parseNumeric(token); err != nil {
			return nil, err
		}
		if rec.NativeAmount, err = parseNumeric(native); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Summary returns how many sweeps moved funds and when the last one ran.
func (r *RecoveryRepo) Summary(ctx context.Context) (int, *time.Time, error) {
	query := `SELECT COUNT(*), MAX(created_at) FROM recovery_records WHERE status IN ('SUCCESS', 'PARTIAL')`

	var count int
	var last *time.Time
	if err := r.pool.QueryRow(ctx, query).Scan(&count, &last); err != nil {
		return 0, nil, fmt.Errorf("recovery summary: %w", err)
	}
	return count, last, nil
}
