package domain

import (
	"time"

	"github.com/google/uuid"
)

// WebhookStatus represents the delivery state of a webhook.
type WebhookStatus string

const (
	WebhookStatusPending   WebhookStatus = "PENDING"
	WebhookStatusDelivered WebhookStatus = "DELIVERED"
	WebhookStatusFailed    WebhookStatus = "FAILED"
)

// WebhookEvent names an order lifecycle transition.
type WebhookEvent string

const (
	EventPaymentCreated   WebhookEvent = "payment.created"
	EventPaymentPending   WebhookEvent = "payment.pending"
	EventPaymentConfirmed WebhookEvent = "payment.confirmed"
	EventPaymentSettled   WebhookEvent = "payment.settled"
	EventPaymentExpired   WebhookEvent = "payment.expired"
	EventPaymentFailed    WebhookEvent = "payment.failed"
)

// WebhookMaxAttempts is the number of automatic delivery attempts before a delivery fails.
const WebhookMaxAttempts = 5

// WebhookRetryLadder is the delay before retry n (1-based) after a failed attempt n.
var WebhookRetryLadder = []time.Duration{
	10 * time.Second,
	30 * time.Second,
	1 * time.Minute,
	5 * time.Minute,
	15 * time.Minute,
}

// WebhookDelivery is one durable notification of an order event.
type WebhookDelivery struct {
	ID               uuid.UUID     `json:"id"`
	OrderID          uuid.UUID     `json:"order_id"`
	Event            WebhookEvent  `json:"event"`
	TargetURL        string        `json:"target_url"`
	Payload          string        `json:"payload"` // exact signed body
	Signature        string        `json:"signature"`
	Status           WebhookStatus `json:"status"`
	Attempts         int           `json:"attempts"`
	NextRetryAt      *time.Time    `json:"next_retry_at,omitempty"`
	LastResponseCode *int          `json:"last_response_code,omitempty"`
	LastError        *string       `json:"last_error,omitempty"`
	DeliveredAt      *time.Time    `json:"delivered_at,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// RecordFailure applies a failed attempt: the attempt counter grows, the next
// retry follows the ladder, and the fifth failure is terminal.
func (d *WebhookDelivery) RecordFailure(now time.Time, code *int, errMsg string) {
	d.Attempts++
	d.LastResponseCode = code
	if errMsg != "" {
		d.LastError = &errMsg
	}
	d.UpdatedAt = now
	if d.Attempts >= WebhookMaxAttempts {
		d.Status = WebhookStatusFailed
		d.NextRetryAt = nil
		return
	}
	next := now.Add(WebhookRetryLadder[d.Attempts-1])
	d.Status = WebhookStatusPending
	d.NextRetryAt = &next
}

// RecordSuccess marks the delivery as delivered.
func (d *WebhookDelivery) RecordSuccess(now time.Time, code int) {
	d.Attempts++
	d.Status = WebhookStatusDelivered
	d.LastResponseCode = &code
	d.LastError = nil
	d.NextRetryAt = nil
	d.DeliveredAt = &now
	d.UpdatedAt = now
}

// IsDue reports whether the delivery should be attempted at now.
func (d *WebhookDelivery) IsDue(now time.Time) bool {
	return d.Status == WebhookStatusPending && (d.NextRetryAt == nil || !d.NextRetryAt.After(now))
}
