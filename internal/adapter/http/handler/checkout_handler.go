package handler

import (
	"time"

	"cryptopay-gateway/internal/adapter/http/dto"
	"cryptopay-gateway/pkg/apperror"
	"cryptopay-gateway/pkg/response"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler serves the payer-facing status page data.
type CheckoutHandler struct {
	payments *PaymentHandler
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(payments *PaymentHandler) *CheckoutHandler {
	return &CheckoutHandler{payments: payments}
}

// GetCheckout handles GET /api/v1/checkout/:token.
func (h *CheckoutHandler) GetCheckout(c *gin.Context) {
	orderID, err := h.payments.tokens.Validate(c.Param("token"))
	if err != nil {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	order, err := h.payments.orders.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	p := h.payments.toPaymentResponse(order)
	response.OK(c, dto.CheckoutResponse{
		PaymentID:      p.ID,
		Amount:         p.Amount,
		Currency:       p.Currency,
		Network:        p.Network,
		TokenAddress:   p.TokenAddress,
		PaymentAddress: p.PaymentAddress,
		Status:         p.Status,
		ExpiresAt:      order.ExpiresAt.Format(time.RFC3339),
		ReturnURL:      order.ReturnURL,
	})
}
