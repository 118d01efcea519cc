package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited operator action.
type AuditAction string

const (
	AuditActionSettle          AuditAction = "SETTLE"
	AuditActionSettleBatch     AuditAction = "SETTLE_BATCH"
	AuditActionFundGas         AuditAction = "FUND_GAS"
	AuditActionRecoverGas      AuditAction = "RECOVER_GAS"
	AuditActionSweep           AuditAction = "SWEEP"
	AuditActionSweepAll        AuditAction = "SWEEP_ALL"
	AuditActionRetryWebhook    AuditAction = "RETRY_WEBHOOK"
	AuditActionFailOrder       AuditAction = "FAIL_ORDER"
	AuditActionCreateMerchant  AuditAction = "CREATE_MERCHANT"
	AuditActionSuspendMerchant AuditAction = "SUSPEND_MERCHANT"
	AuditActionResetProvider   AuditAction = "RESET_PROVIDER"
)

// AuditLog records a single operator action on the admin surface.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	MerchantID   *uuid.UUID  `json:"merchant_id,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
