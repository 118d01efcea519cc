package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cryptopay-gateway/internal/core/domain"
	"cryptopay-gateway/internal/core/ports/mocks"
	"cryptopay-gateway/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testWebhookSecret = "whsec_test"

// memWebhookRepo is an in-memory ports.WebhookRepository.
type memWebhookRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]domain.WebhookDelivery
}

func newMemWebhookRepo() *memWebhookRepo {
	return &memWebhookRepo{rows: make(map[uuid.UUID]domain.WebhookDelivery)}
}

func (r *memWebhookRepo) Create(_ context.Context, d *domain.WebhookDelivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[d.ID] = *d
	return nil
}

func (r *memWebhookRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.WebhookDelivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *memWebhookRepo) ListDue(_ context.Context, now time.Time, limit int) ([]domain.WebhookDelivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.WebhookDelivery
	for _, d := range r.rows {
		if d.IsDue(now) && len(out) < limit {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memWebhookRepo) ListByOrder(_ context.Context, orderID uuid.UUID) ([]domain.WebhookDelivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.WebhookDelivery
	for _, d := range r.rows {
		if d.OrderID == orderID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memWebhookRepo) Update(_ context.Context, d *domain.WebhookDelivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[d.ID] = *d
	return nil
}

func (r *memWebhookRepo) CountByStatus(_ context.Context) (map[domain.WebhookStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[domain.WebhookStatus]int64)
	for _, d := range r.rows {
		out[d.Status]++
	}
	return out, nil
}

func (r *memWebhookRepo) only(t *testing.T) domain.WebhookDelivery {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.Len(t, r.rows, 1)
	for _, d := range r.rows {
		return d
	}
	return domain.WebhookDelivery{}
}

type webhookTestDeps struct {
	svc   *webhookService
	repo  *memWebhookRepo
	txs   *mocks.MockTransactionRepository
	clock time.Time
}

func setupWebhookService(t *testing.T) *webhookTestDeps {
	ctrl := gomock.NewController(t)
	ledgers := mocks.NewMockLedgerRegistry(ctrl)
	ledger := mocks.NewMockTokenLedger(ctrl)
	ledgers.EXPECT().Ledger("USDT").Return(ledger, nil).AnyTimes()
	ledger.EXPECT().Token().Return(testUSDT).AnyTimes()

	d := &webhookTestDeps{
		repo:  newMemWebhookRepo(),
		txs:   mocks.NewMockTransactionRepository(ctrl),
		clock: testNow,
	}
	d.svc = NewWebhookService(d.repo, d.txs, ledgers, NewHMACSignatureService(), nil,
		WebhookConfig{Secret: testWebhookSecret, Timeout: 2 * time.Second},
		zerolog.New(io.Discard)).(*webhookService)
	d.svc.now = func() time.Time { return d.clock }
	return d
}

func orderWithCallback(url string) *domain.PaymentOrder {
	o := createdOrder()
	o.CallbackURL = &url
	o.Metadata = map[string]any{"cart": "42"}
	return o
}

func TestWebhookService_EnqueueAndDeliver(t *testing.T) {
	var (
		gotBody []byte
		gotHdr  http.Header
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotHdr = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := setupWebhookService(t)
	ctx := context.Background()
	order := orderWithCallback(srv.URL)

	require.NoError(t, d.svc.Enqueue(ctx, order, domain.EventPaymentCreated))

	n, err := d.svc.ProcessDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	row := d.repo.only(t)
	assert.Equal(t, domain.WebhookStatusDelivered, row.Status)
	assert.Equal(t, 1, row.Attempts)
	require.NotNil(t, row.DeliveredAt)

	assert.Equal(t, row.Payload, string(gotBody), "body is sent byte for byte as signed")
	assert.True(t, NewHMACSignatureService().Verify(testWebhookSecret, string(gotBody), gotHdr.Get(HeaderWebhookSignature)))
	assert.Equal(t, string(domain.EventPaymentCreated), gotHdr.Get(HeaderWebhookEvent))
	assert.Equal(t, row.ID.String(), gotHdr.Get(HeaderWebhookID))

	var payload WebhookPayload
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	assert.Equal(t, domain.EventPaymentCreated, payload.Event)
	assert.Equal(t, order.ID.String(), payload.Data.PaymentID)
	assert.Equal(t, "ORDER-1", payload.Data.OrderID)
	assert.Equal(t, "100", payload.Data.Amount)
	assert.Equal(t, "2.5", payload.Data.FeeAmount)
	assert.Equal(t, "97.5", payload.Data.NetAmount)
	assert.Equal(t, "CREATED", payload.Data.Status)
	assert.Nil(t, payload.Data.TxHash)
	assert.Nil(t, payload.Data.Confirmations)
	assert.Equal(t, "42", payload.Data.Metadata["cart"])
}

func TestWebhookService_PayloadIncludesConfirmations(t *testing.T) {
	d := setupWebhookService(t)
	ctx := context.Background()
	order := orderWithCallback("http://merchant.invalid/hook")
	hash := "0xabc"
	order.TxHash = &hash
	order.Status = domain.OrderStatusPending

	d.txs.EXPECT().ListByOrder(ctx, order.ID).Return([]domain.Transaction{{TxHash: "0xabc", Confirmations: 3}}, nil)

	require.NoError(t, d.svc.Enqueue(ctx, order, domain.EventPaymentPending))

	var payload WebhookPayload
	require.NoError(t, json.Unmarshal([]byte(d.repo.only(t).Payload), &payload))
	require.NotNil(t, payload.Data.Confirmations)
	assert.Equal(t, uint64(3), *payload.Data.Confirmations)
	assert.Equal(t, "0xabc", *payload.Data.TxHash)
}

func TestWebhookService_NoCallbackNeverEnqueues(t *testing.T) {
	d := setupWebhookService(t)

	require.NoError(t, d.svc.Enqueue(context.Background(), createdOrder(), domain.EventPaymentCreated))

	counts, _ := d.repo.CountByStatus(context.Background())
	assert.Empty(t, counts)
}

func TestWebhookService_FailsAfterFiveAttempts(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := setupWebhookService(t)
	ctx := context.Background()
	require.NoError(t, d.svc.Enqueue(ctx, orderWithCallback(srv.URL), domain.EventPaymentConfirmed))

	for i, delay := range domain.WebhookRetryLadder {
		_, err := d.svc.ProcessDue(ctx)
		require.NoError(t, err)

		row := d.repo.only(t)
		assert.Equal(t, i+1, row.Attempts)
		require.NotNil(t, row.LastResponseCode)
		assert.Equal(t, http.StatusInternalServerError, *row.LastResponseCode)

		if i < domain.WebhookMaxAttempts-1 {
			assert.Equal(t, domain.WebhookStatusPending, row.Status)
			require.NotNil(t, row.NextRetryAt)
			assert.Equal(t, d.clock.Add(delay), *row.NextRetryAt)

			// Not due one second early.
			d.clock = row.NextRetryAt.Add(-time.Second)
			n, err := d.svc.ProcessDue(ctx)
			require.NoError(t, err)
			assert.Zero(t, n)
			assert.Equal(t, int32(i+1), calls.Load())

			d.clock = *row.NextRetryAt
		}
	}

	row := d.repo.only(t)
	assert.Equal(t, domain.WebhookStatusFailed, row.Status)
	assert.Equal(t, 5, row.Attempts)
	assert.Nil(t, row.NextRetryAt)

	d.clock = d.clock.Add(24 * time.Hour)
	_, err := d.svc.ProcessDue(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(5), calls.Load(), "no sixth call")
}

func TestWebhookService_ManualRetry(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	d := setupWebhookService(t)
	ctx := context.Background()
	require.NoError(t, d.svc.Enqueue(ctx, orderWithCallback(srv.URL), domain.EventPaymentSettled))

	row := d.repo.only(t)
	row.Status = domain.WebhookStatusFailed
	row.Attempts = domain.WebhookMaxAttempts
	require.NoError(t, d.repo.Update(ctx, &row))

	fail.Store(false)
	require.NoError(t, d.svc.Retry(ctx, row.ID))

	row = d.repo.only(t)
	assert.Equal(t, domain.WebhookStatusDelivered, row.Status)
	assert.Equal(t, 6, row.Attempts)
	assert.Equal(t, http.StatusNoContent, *row.LastResponseCode)

	err := d.svc.Retry(ctx, row.ID)
	assert.ErrorIs(t, err, apperror.ErrInvalidStatus("DELIVERED", "FAILED"))

	err = d.svc.Retry(ctx, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound("webhook"))
}

func TestWebhookService_UnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	d := setupWebhookService(t)
	ctx := context.Background()
	require.NoError(t, d.svc.Enqueue(ctx, orderWithCallback(url), domain.EventPaymentCreated))

	n, err := d.svc.ProcessDue(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	row := d.repo.only(t)
	assert.Equal(t, domain.WebhookStatusPending, row.Status)
	assert.Nil(t, row.LastResponseCode)
	require.NotNil(t, row.LastError)
	assert.Equal(t, testNow.Add(10*time.Second), *row.NextRetryAt)
}

func TestWebhookService_RunDeliversOnKick(t *testing.T) {
	delivered := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		delivered <- struct{}{}
	}))
	defer srv.Close()

	d := setupWebhookService(t)
	d.svc.cfg.Interval = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		d.svc.Run(ctx)
		close(done)
	}()

	require.NoError(t, d.svc.Enqueue(context.Background(), orderWithCallback(srv.URL), domain.EventPaymentCreated))

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("webhook not delivered after enqueue")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}
