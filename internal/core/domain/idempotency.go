package domain

import "github.com/google/uuid"

// BuildIdempotencyKey constructs the key identifying one logical purchase.
// Format: "merchant_id:external_order_id".
func BuildIdempotencyKey(merchantID uuid.UUID, externalOrderID string) string {
	return merchantID.String() + ":" + externalOrderID
}
