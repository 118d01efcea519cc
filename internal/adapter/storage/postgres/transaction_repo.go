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

const transactionColumnsSQL = `id, tx_hash, order_id, from_address, to_address, amount::text,
		block_number, confirmations, status, created_at, updated_at`

// TransactionRepo implements ports.TransactionRepository over chain_transactions.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts an observed transfer. The hash is unique; a repeated
// observation returns false.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) (bool, error) {
	query := `INSERT INTO chain_transactions (id, tx_hash, order_id, from_address, to_address, amount,
		block_number, confirmations, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (tx_hash) DO NOTHING`

	tag, err := on(r.pool, tx).Exec(ctx, query,
		t.ID, t.TxHash, t.OrderID, t.FromAddress, t.ToAddress, numericText(t.Amount),
		int64(t.BlockNumber), int64(t.Confirmations), t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert chain transaction: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetByHash fetches a transaction by its on-chain hash.
func (r *TransactionRepo) GetByHash(ctx context.Context, hash string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumnsSQL + ` FROM chain_transactions WHERE tx_hash = $1`
	t, err := scanTransaction(r.pool.QueryRow(ctx, query, hash))
	if err != nil {
		return nil, fmt.Errorf("get transaction by hash: %w", err)
	}
	return t, nil
}

// ListByOrder returns every transfer recorded against an order.
func (r *TransactionRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumnsSQL + ` FROM chain_transactions
		WHERE order_id = $1 ORDER BY block_number ASC`
	return r.list(ctx, query, orderID)
}

// ListUnconfirmed returns pending transfers whose order is still PENDING.
func (r *TransactionRepo) ListUnconfirmed(ctx context.Context, limit int) ([]domain.Transaction, error) {
	query := `SELECT t.id, t.tx_hash, t.order_id, t.from_address, t.to_address, t.amount::text,
		t.block_number, t.confirmations, t.status, t.created_at, t.updated_at
		FROM chain_transactions t
		JOIN payment_orders o ON o.id = t.order_id
		WHERE t.status = 'PENDING' AND o.status = 'PENDING'
		ORDER BY t.block_number ASC LIMIT $1`
	return r.list(ctx, query, limit)
}

// UpdateConfirmations stores the latest depth of a transfer.
func (r *TransactionRepo) UpdateConfirmations(ctx context.Context, tx pgx.Tx, hash string, confirmations uint64, status domain.TransactionStatus) error {
	query := `UPDATE chain_transactions SET confirmations = $1, status = $2, updated_at = $3 WHERE tx_hash = $4`

	tag, err := on(r.pool, tx).Exec(ctx, query, int64(confirmations), status, time.Now().UTC(), hash)
	if err != nil {
		return fmt.Errorf("update confirmations: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found: %s", hash)
	}
	return nil
}

func (r *TransactionRepo) list(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		txns = append(txns, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txns, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	var amount string
	var block, confirmations int64
	err := row.Scan(
		&t.ID, &t.TxHash, &t.OrderID, &t.FromAddress, &t.ToAddress, &amount,
		&block, &confirmations, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if t.Amount, err = parseNumeric(amount); err != nil {
		return nil, err
	}
	t.BlockNumber = uint64(block)
	t.Confirmations = uint64(confirmations)
	return t, nil
}
