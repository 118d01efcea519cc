package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// CursorRepo implements ports.ScanCursorRepository.
type CursorRepo struct {
	pool Pool
}

// NewCursorRepo creates a new CursorRepo.
func NewCursorRepo(pool Pool) *CursorRepo {
	return &CursorRepo{pool: pool}
}

// Get returns the stored block for name.
func (r *CursorRepo) Get(ctx context.Context, name string) (uint64, bool, error) {
	query := `SELECT block_number FROM chain_cursors WHERE name = $1`

	var block int64
	if err := r.pool.QueryRow(ctx, query, name).Scan(&block); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get cursor %s: %w", name, err)
	}
	return uint64(block), true, nil
}

// Save stores block for name. A cursor never moves backwards.
func (r *CursorRepo) Save(ctx context.Context, name string, block uint64) error {
	query := `INSERT INTO chain_cursors (name, block_number, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
		SET block_number = GREATEST(chain_cursors.block_number, EXCLUDED.block_number),
			updated_at = EXCLUDED.updated_at`

	if _, err := r.pool.Exec(ctx, query, name, int64(block), time.Now().UTC()); err != nil {
		return fmt.Errorf("save cursor %s: %w", name, err)
	}
	return nil
}
