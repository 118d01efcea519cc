package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cryptopay-gateway/internal/core/domain"
	"cryptopay-gateway/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const orderColumnsSQL = `id, merchant_id, external_order_id, amount::text, fee_amount::text, net_amount::text,
		currency, deposit_address, derivation_index, status, tx_hash, expires_at,
		callback_url, return_url, metadata, settled_at, created_at, updated_at`

// OrderRepo implements ports.OrderRepository.
type OrderRepo struct {
	pool Pool
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(pool Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// NextDerivationIndex draws the next index from the sequence. Sequence values
// are never handed out twice, even when the surrounding insert fails.
func (r *OrderRepo) NextDerivationIndex(ctx context.Context) (int64, error) {
	var idx int64
	err := r.pool.QueryRow(ctx, `SELECT nextval('payment_orders_derivation_index_seq')`).Scan(&idx)
	if err != nil {
		return 0, fmt.Errorf("next derivation index: %w", err)
	}
	return idx, nil
}

// Create inserts a payment order. A duplicate (merchant_id, external_order_id)
// is reported as false without error.
func (r *OrderRepo) Create(ctx context.Context, o *domain.PaymentOrder) (bool, error) {
	query := `INSERT INTO payment_orders (id, merchant_id, external_order_id, amount, fee_amount, net_amount,
		currency, deposit_address, derivation_index, status, expires_at, callback_url, return_url, metadata,
		created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (merchant_id, external_order_id) DO NOTHING`

	meta, err := marshalMetadata(o.Metadata)
	if err != nil {
		return false, err
	}

	tag, err := r.pool.Exec(ctx, query,
		o.ID, o.MerchantID, o.ExternalOrderID,
		numericText(o.Amount), numericText(o.FeeAmount), numericText(o.NetAmount),
		o.Currency, o.DepositAddress, int64(o.DerivationIndex), o.Status, o.ExpiresAt,
		o.CallbackURL, o.ReturnURL, meta,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert payment order: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetByID fetches an order by its UUID.
func (r *OrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PaymentOrder, error) {
	query := `SELECT ` + orderColumnsSQL + ` FROM payment_orders WHERE id = $1`
	o, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	return o, nil
}

// GetByAddress fetches the order owning a deposit address.
func (r *OrderRepo) GetByAddress(ctx context.Context, address string) (*domain.PaymentOrder, error) {
	query := `SELECT ` + orderColumnsSQL + ` FROM payment_orders WHERE lower(deposit_address) = lower($1)`
	o, err := scanOrder(r.pool.QueryRow(ctx, query, address))
	if err != nil {
		return nil, fmt.Errorf("get order by address: %w", err)
	}
	return o, nil
}

// GetByExternalID fetches an order by the merchant's own order id.
func (r *OrderRepo) GetByExternalID(ctx context.Context, merchantID uuid.UUID, externalOrderID string) (*domain.PaymentOrder, error) {
	query := `SELECT ` + orderColumnsSQL + ` FROM payment_orders WHERE merchant_id = $1 AND external_order_id = $2`
	o, err := scanOrder(r.pool.QueryRow(ctx, query, merchantID, externalOrderID))
	if err != nil {
		return nil, fmt.Errorf("get order by external id: %w", err)
	}
	return o, nil
}

// ListByStatus returns the oldest orders in any of the given statuses.
func (r *OrderRepo) ListByStatus(ctx context.Context, statuses []domain.OrderStatus, limit int) ([]domain.PaymentOrder, error) {
	query := `SELECT ` + orderColumnsSQL + ` FROM payment_orders
		WHERE status = ANY($1) ORDER BY created_at ASC LIMIT $2`
	return r.list(ctx, query, statusStrings(statuses), limit)
}

// ListCreatedBefore returns orders in the given statuses created before the cutoff.
func (r *OrderRepo) ListCreatedBefore(ctx context.Context, statuses []domain.OrderStatus, before time.Time) ([]domain.PaymentOrder, error) {
	query := `SELECT ` + orderColumnsSQL + ` FROM payment_orders
		WHERE status = ANY($1) AND created_at < $2 ORDER BY created_at ASC`
	return r.list(ctx, query, statusStrings(statuses), before)
}

// Transition moves an order from t.From to t.To and appends the status
// history row in the same statement. It reports false when the stored status
// no longer equals t.From.
func (r *OrderRepo) Transition(ctx context.Context, tx pgx.Tx, t domain.OrderTransition) (bool, error) {
	query := `WITH updated AS (
			UPDATE payment_orders
			SET status = $1, updated_at = $2,
				tx_hash = COALESCE($3, tx_hash),
				settled_at = CASE WHEN $1 = 'SETTLED' THEN $2 ELSE settled_at END
			WHERE id = $4 AND status = $5
			RETURNING id
		)
		INSERT INTO order_status_history (order_id, from_status, to_status, tx_hash, created_at)
		SELECT id, $5, $1, $3, $2 FROM updated`

	tag, err := on(r.pool, tx).Exec(ctx, query, string(t.To), t.At, t.TxHash, t.OrderID, string(t.From))
	if err != nil {
		return false, fmt.Errorf("transition order %s %s->%s: %w", t.OrderID, t.From, t.To, err)
	}
	return tag.RowsAffected() == 1, nil
}

// ExpireStale moves every CREATED or PENDING order past its expiry to
// EXPIRED. Rows locked by a concurrent writer are skipped until the next run.
func (r *OrderRepo) ExpireStale(ctx context.Context, now time.Time) ([]domain.ExpiredOrder, error) {
	query := `WITH stale AS (
			SELECT id, status FROM payment_orders
			WHERE status IN ('CREATED', 'PENDING') AND expires_at < $1
			FOR UPDATE SKIP LOCKED
		), updated AS (
			UPDATE payment_orders o SET status = 'EXPIRED', updated_at = $1
			FROM stale WHERE o.id = stale.id
			RETURNING o.id, o.deposit_address, stale.status AS previous_status
		), history AS (
			INSERT INTO order_status_history (order_id, from_status, to_status, created_at)
			SELECT id, previous_status, 'EXPIRED', $1 FROM updated
		)
		SELECT id, deposit_address, previous_status FROM updated`

	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("expire stale orders: %w", err)
	}
	defer rows.Close()

	var out []domain.ExpiredOrder
	for rows.Next() {
		var e domain.ExpiredOrder
		if err := rows.Scan(&e.ID, &e.DepositAddress, &e.PreviousStatus); err != nil {
			return nil, fmt.Errorf("scan expired order: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expired orders: %w", err)
	}
	return out, nil
}

// Stats aggregates order counts and volumes by status and currency.
func (r *OrderRepo) Stats(ctx context.Context) ([]ports.OrderStatRow, error) {
	query := `SELECT status, currency, COUNT(*),
		COALESCE(SUM(amount), 0)::text, COALESCE(SUM(fee_amount), 0)::text
		FROM payment_orders GROUP BY status, currency ORDER BY status, currency`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("order stats: %w", err)
	}
	defer rows.Close()

	var out []ports.OrderStatRow
	for rows.Next() {
		var row ports.OrderStatRow
		var total, fees string
		if err := rows.Scan(&row.Status, &row.Currency, &row.Count, &total, &fees); err != nil {
			return nil, fmt.Errorf("scan order stats: %w", err)
		}
		if row.TotalAmount, err = parseNumeric(total); err != nil {
			return nil, err
		}
		if row.TotalFees, err = parseNumeric(fees); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]domain.PaymentOrder, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.PaymentOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}
	return orders, nil
}

func scanOrder(row pgx.Row) (*domain.PaymentOrder, error) {
	o := &domain.PaymentOrder{}
	var amount, fee, net string
	var meta []byte
	err := row.Scan(
		&o.ID, &o.MerchantID, &o.ExternalOrderID, &amount, &fee, &net,
		&o.Currency, &o.DepositAddress, &o.DerivationIndex, &o.Status, &o.TxHash, &o.ExpiresAt,
		&o.CallbackURL, &o.ReturnURL, &meta, &o.SettledAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if o.Amount, err = parseNumeric(amount); err != nil {
		return nil, err
	}
	if o.FeeAmount, err = parseNumeric(fee); err != nil {
		return nil, err
	}
	if o.NetAmount, err = parseNumeric(net); err != nil {
		return nil, err
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &o.Metadata); err != nil {
			return nil, fmt.Errorf("decoding metadata: %w", err)
		}
	}
	return o, nil
}

func marshalMetadata(meta map[string]any) ([]byte, error) {
	if len(meta) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encoding metadata: %w", err)
	}
	return b, nil
}

func statusStrings(statuses []domain.OrderStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
