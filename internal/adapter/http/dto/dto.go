package dto

// CreatePaymentRequest is the body of POST /api/v1/payments.
type CreatePaymentRequest struct {
	OrderID     string         `json:"orderId" binding:"required,max=100,safe_id"`
	Amount      string         `json:"amount" binding:"required,max=40"`
	Currency    string         `json:"currency" binding:"required,min=2,max=10,alphanum"`
	CallbackURL *string        `json:"callbackUrl,omitempty" binding:"omitempty,max=2048,safe_url" sanitize:"-"`
	ReturnURL   *string        `json:"returnUrl,omitempty" binding:"omitempty,max=2048,safe_url" sanitize:"-"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// PaymentResponse is the merchant view of a payment order.
type PaymentResponse struct {
	ID             string         `json:"id"`
	OrderID        string         `json:"orderId"`
	Amount         string         `json:"amount"`
	FeeAmount      string         `json:"feeAmount"`
	NetAmount      string         `json:"netAmount"`
	Currency       string         `json:"currency"`
	Network        string         `json:"network"`
	TokenAddress   string         `json:"tokenAddress"`
	PaymentAddress string         `json:"paymentAddress"`
	Status         string         `json:"status"`
	TxHash         *string        `json:"txHash,omitempty"`
	ExpiresAt      string         `json:"expiresAt"`
	CallbackURL    *string        `json:"callbackUrl,omitempty"`
	ReturnURL      *string        `json:"returnUrl,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	CheckoutToken  string         `json:"checkoutToken,omitempty"`
	SettledAt      *string        `json:"settledAt,omitempty"`
	CreatedAt      string         `json:"createdAt"`
}

// CheckoutResponse is the payer-visible status behind a checkout token.
type CheckoutResponse struct {
	PaymentID      string  `json:"paymentId"`
	Amount         string  `json:"amount"`
	Currency       string  `json:"currency"`
	Network        string  `json:"network"`
	TokenAddress   string  `json:"tokenAddress"`
	PaymentAddress string  `json:"paymentAddress"`
	Status         string  `json:"status"`
	ExpiresAt      string  `json:"expiresAt"`
	ReturnURL      *string `json:"returnUrl,omitempty"`
}

// CreateMerchantRequest is the body of POST /admin/merchants.
type CreateMerchantRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=100"`
	WalletAddress string  `json:"wallet_address" binding:"required,len=42" sanitize:"-"`
	FeePercent    *string `json:"fee_percent,omitempty" binding:"omitempty,max=10" sanitize:"-"`
	WebhookURL    *string `json:"webhook_url,omitempty" binding:"omitempty,max=2048,safe_url" sanitize:"-"`
}

// CreateMerchantResponse carries the API key, shown only once.
type CreateMerchantResponse struct {
	MerchantID string `json:"merchant_id"`
	AccessKey  string `json:"access_key"`
	APIKey     string `json:"api_key"`
}

// SettleBatchRequest is the body of POST /admin/settlements. An empty list
// settles every pending order.
type SettleBatchRequest struct {
	OrderIDs []string `json:"order_ids" binding:"omitempty,max=100,dive,uuid"`
}

// FailOrderRequest is the body of POST /admin/orders/:id/fail.
type FailOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=3,max=500"`
}
