package handler

import (
	"time"

	"cryptopay-gateway/internal/adapter/http/dto"
	"cryptopay-gateway/internal/adapter/http/middleware"
	"cryptopay-gateway/internal/core/domain"
	"cryptopay-gateway/internal/core/ports"
	"cryptopay-gateway/pkg/apperror"
	"cryptopay-gateway/pkg/money"
	"cryptopay-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PaymentHandler handles the merchant payment API.
type PaymentHandler struct {
	orders   ports.OrderStore
	notifier ports.NotificationQueue
	ledgers  ports.LedgerRegistry
	tokens   ports.TokenService
	log      zerolog.Logger
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(
	orders ports.OrderStore,
	notifier ports.NotificationQueue,
	ledgers ports.LedgerRegistry,
	tokens ports.TokenService,
	log zerolog.Logger,
) *PaymentHandler {
	return &PaymentHandler{orders: orders, notifier: notifier, ledgers: ledgers, tokens: tokens, log: log}
}

// CreatePayment handles POST /api/v1/payments.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	merchantID, ok := merchantFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidAPIKey())
		return
	}

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	order, err := h.orders.CreateOrder(c.Request.Context(), ports.CreateOrderRequest{
		MerchantID:      merchantID,
		ExternalOrderID: req.OrderID,
		Amount:          req.Amount,
		Currency:        req.Currency,
		CallbackURL:     req.CallbackURL,
		ReturnURL:       req.ReturnURL,
		Metadata:        req.Metadata,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := h.toPaymentResponse(order)
	if order.Status == domain.OrderStatusCreated {
		token, err := h.tokens.Generate(order.ID, order.ExpiresAt)
		if err != nil {
			h.log.Warn().Err(err).Str("order_id", order.ID.String()).Msg("checkout token not issued")
		} else {
			resp.CheckoutToken = token
		}
	}

	response.Created(c, resp)
}

// GetPayment handles GET /api/v1/payments/:id.
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	order, ok := h.ownedOrder(c)
	if !ok {
		return
	}
	response.OK(c, h.toPaymentResponse(order))
}

// ListWebhooks handles GET /api/v1/payments/:id/webhooks.
func (h *PaymentHandler) ListWebhooks(c *gin.Context) {
	order, ok := h.ownedOrder(c)
	if !ok {
		return
	}
	deliveries, err := h.notifier.ListByOrder(c.Request.Context(), order.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, deliveries, len(deliveries))
}

// ownedOrder loads the :id order and hides orders of other merchants.
func (h *PaymentHandler) ownedOrder(c *gin.Context) (*domain.PaymentOrder, bool) {
	merchantID, ok := merchantFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidAPIKey())
		return nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.ErrNotFound("payment"))
		return nil, false
	}
	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	if order.MerchantID != merchantID {
		response.Error(c, apperror.ErrNotFound("payment"))
		return nil, false
	}
	return order, true
}

func (h *PaymentHandler) toPaymentResponse(order *domain.PaymentOrder) dto.PaymentResponse {
	token := h.token(order.Currency)
	resp := dto.PaymentResponse{
		ID:             order.ID.String(),
		OrderID:        order.ExternalOrderID,
		Amount:         money.FormatUnits(order.Amount, token.Decimals),
		FeeAmount:      money.FormatUnits(order.FeeAmount, token.Decimals),
		NetAmount:      money.FormatUnits(order.NetAmount, token.Decimals),
		Currency:       order.Currency,
		Network:        token.Network,
		TokenAddress:   token.Address,
		PaymentAddress: order.DepositAddress,
		Status:         string(order.Status),
		TxHash:         order.TxHash,
		ExpiresAt:      order.ExpiresAt.Format(time.RFC3339),
		CallbackURL:    order.CallbackURL,
		ReturnURL:      order.ReturnURL,
		Metadata:       order.Metadata,
		CreatedAt:      order.CreatedAt.Format(time.RFC3339),
	}
	if order.SettledAt != nil {
		s := order.SettledAt.Format(time.RFC3339)
		resp.SettledAt = &s
	}
	return resp
}

func (h *PaymentHandler) token(symbol string) domain.Token {
	ledger, err := h.ledgers.Ledger(symbol)
	if err != nil {
		return domain.Token{Symbol: symbol}
	}
	return ledger.Token()
}

func merchantFromContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(middleware.CtxMerchantID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
