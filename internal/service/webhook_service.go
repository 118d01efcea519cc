package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cryptopay-gateway/internal/core/domain"
	"cryptopay-gateway/internal/core/ports"
	"cryptopay-gateway/internal/observability"
	"cryptopay-gateway/pkg/apperror"
	"cryptopay-gateway/pkg/money"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Webhook request headers.
const (
	HeaderWebhookSignature = "X-Webhook-Signature"
	HeaderWebhookEvent     = "X-Webhook-Event"
	HeaderWebhookID        = "X-Webhook-ID"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WebhookConfig holds the delivery policy.
type WebhookConfig struct {
	Secret    string
	Timeout   time.Duration
	Interval  time.Duration
	BatchSize int
}

// WebhookPayload is the JSON body POSTed to the order's callback URL.
type WebhookPayload struct {
	Event     domain.WebhookEvent `json:"event"`
	Timestamp string              `json:"timestamp"`
	Data      WebhookPayloadData  `json:"data"`
}

// WebhookPayloadData is a snapshot of the order when the event fired.
type WebhookPayloadData struct {
	PaymentID      string         `json:"paymentId"`
	OrderID        string         `json:"orderId"`
	Amount         string         `json:"amount"`
	FeeAmount      string         `json:"feeAmount"`
	NetAmount      string         `json:"netAmount"`
	Currency       string         `json:"currency"`
	Status         string         `json:"status"`
	PaymentAddress string         `json:"paymentAddress"`
	TxHash         *string        `json:"txHash,omitempty"`
	Confirmations  *uint64        `json:"confirmations,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// webhookService implements ports.NotificationQueue on top of durable rows.
type webhookService struct {
	repo       ports.WebhookRepository
	txs        ports.TransactionRepository
	ledgers    ports.LedgerRegistry
	sigSvc     ports.SignatureService
	httpClient HTTPClient
	cfg        WebhookConfig
	kick       chan struct{}
	metrics    *observability.GatewayMetrics
	now        func() time.Time
	log        zerolog.Logger
}

// WebhookService is the notification queue plus its delivery loop.
type WebhookService interface {
	ports.NotificationQueue
	Run(ctx context.Context)
}

// NewWebhookService creates the notification queue. A nil httpClient uses
// a client with cfg.Timeout.
func NewWebhookService(
	repo ports.WebhookRepository,
	txs ports.TransactionRepository,
	ledgers ports.LedgerRegistry,
	sigSvc ports.SignatureService,
	httpClient HTTPClient,
	cfg WebhookConfig,
	log zerolog.Logger,
) WebhookService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &webhookService{
		repo:       repo,
		txs:        txs,
		ledgers:    ledgers,
		sigSvc:     sigSvc,
		httpClient: httpClient,
		cfg:        cfg,
		kick:       make(chan struct{}, 1),
		metrics:    observability.Metrics(),
		now:        func() time.Time { return time.Now().UTC() },
		log:        log,
	}
}

// Enqueue snapshots the order, signs the body and stores a pending delivery.
// Orders without a callback URL are skipped.
func (s *webhookService) Enqueue(ctx context.Context, order *domain.PaymentOrder, event domain.WebhookEvent) error {
	if order.CallbackURL == nil || *order.CallbackURL == "" {
		return nil
	}

	body, err := s.buildPayload(ctx, order, event)
	if err != nil {
		return fmt.Errorf("build webhook payload: %w", err)
	}

	now := s.now()
	delivery := &domain.WebhookDelivery{
		ID:        uuid.New(),
		OrderID:   order.ID,
		Event:     event,
		TargetURL: *order.CallbackURL,
		Payload:   string(body),
		Signature: s.sigSvc.Sign(s.cfg.Secret, string(body)),
		Status:    domain.WebhookStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, delivery); err != nil {
		return apperror.ErrDatabaseError(err)
	}

	s.log.Debug().
		Str("delivery_id", delivery.ID.String()).
		Str("order_id", order.ID.String()).
		Str("event", string(event)).
		Msg("webhook enqueued")

	select {
	case s.kick <- struct{}{}:
	default:
	}
	return nil
}

func (s *webhookService) buildPayload(ctx context.Context, order *domain.PaymentOrder, event domain.WebhookEvent) ([]byte, error) {
	ledger, err := s.ledgers.Ledger(order.Currency)
	if err != nil {
		return nil, err
	}
	decimals := ledger.Token().Decimals

	data := WebhookPayloadData{
		PaymentID:      order.ID.String(),
		OrderID:        order.ExternalOrderID,
		Amount:         money.FormatUnits(order.Amount, decimals),
		FeeAmount:      money.FormatUnits(order.FeeAmount, decimals),
		NetAmount:      money.FormatUnits(order.NetAmount, decimals),
		Currency:       order.Currency,
		Status:         string(order.Status),
		PaymentAddress: order.DepositAddress,
		TxHash:         order.TxHash,
		Metadata:       order.Metadata,
	}
	if order.TxHash != nil {
		txns, err := s.txs.ListByOrder(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		for i := range txns {
			if txns[i].TxHash == *order.TxHash {
				c := txns[i].Confirmations
				data.Confirmations = &c
				break
			}
		}
	}

	return json.Marshal(WebhookPayload{
		Event:     event,
		Timestamp: s.now().Format(time.RFC3339),
		Data:      data,
	})
}

// ListByOrder returns every delivery of an order.
func (s *webhookService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.WebhookDelivery, error) {
	deliveries, err := s.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return deliveries, nil
}

// ProcessDue attempts every due delivery once and returns how many were delivered.
func (s *webhookService) ProcessDue(ctx context.Context) (int, error) {
	due, err := s.repo.ListDue(ctx, s.now(), s.cfg.BatchSize)
	if err != nil {
		return 0, apperror.ErrDatabaseError(err)
	}

	delivered := 0
	for i := range due {
		if ctx.Err() != nil {
			break
		}
		if s.attempt(ctx, &due[i]) {
			delivered++
		}
	}
	return delivered, nil
}

// Retry re-arms a delivery for an immediate attempt. Delivered rows are refused.
func (s *webhookService) Retry(ctx context.Context, deliveryID uuid.UUID) error {
	delivery, err := s.repo.GetByID(ctx, deliveryID)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	if delivery == nil {
		return apperror.ErrNotFound("webhook")
	}
	if delivery.Status == domain.WebhookStatusDelivered {
		return apperror.ErrInvalidStatus(string(delivery.Status), string(domain.WebhookStatusFailed))
	}

	delivery.Status = domain.WebhookStatusPending
	delivery.NextRetryAt = nil
	s.attempt(ctx, delivery)
	return nil
}

// attempt performs one POST and persists the outcome.
func (s *webhookService) attempt(ctx context.Context, d *domain.WebhookDelivery) bool {
	code, err := s.post(ctx, d)
	now := s.now()

	ok := err == nil
	if ok {
		d.RecordSuccess(now, *code)
	} else {
		d.RecordFailure(now, code, err.Error())
	}
	if uerr := s.repo.Update(ctx, d); uerr != nil {
		s.log.Error().Err(uerr).Str("delivery_id", d.ID.String()).Msg("failed to persist webhook attempt")
	}

	s.metrics.Webhook(string(d.Status))
	evt := s.log.Info()
	if !ok {
		evt = s.log.Warn().Err(err)
	}
	evt.Str("delivery_id", d.ID.String()).
		Str("order_id", d.OrderID.String()).
		Str("event", string(d.Event)).
		Int("attempt", d.Attempts).
		Str("status", string(d.Status)).
		Msg("webhook attempt")
	return ok
}

func (s *webhookService) post(ctx context.Context, d *domain.WebhookDelivery) (*int, error) {
	reqCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, d.TargetURL, bytes.NewReader([]byte(d.Payload)))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderWebhookSignature, d.Signature)
	req.Header.Set(HeaderWebhookEvent, string(d.Event))
	req.Header.Set(HeaderWebhookID, d.ID.String())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	code := resp.StatusCode
	if code < 200 || code >= 300 {
		return &code, fmt.Errorf("non-2xx response: %d", code)
	}
	return &code, nil
}

// Run drains due deliveries on every tick and whenever a delivery is enqueued.
func (s *webhookService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", s.cfg.Interval).Msg("webhook worker started")
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("webhook worker stopped")
			return
		case <-ticker.C:
		case <-s.kick:
		}
		if _, err := s.ProcessDue(ctx); err != nil {
			s.log.Warn().Err(err).Msg("webhook sweep failed")
		}
	}
}
