package handler

import (
	"strconv"

	"cryptopay-gateway/internal/adapter/http/dto"
	"cryptopay-gateway/internal/core/domain"
	"cryptopay-gateway/internal/core/ports"
	"cryptopay-gateway/pkg/apperror"
	"cryptopay-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler exposes operator endpoints behind the admin secret.
type AdminHandler struct {
	reporting ports.ReportingService
	settler   ports.SettlementEngine
	gas       ports.GasKeeper
	sweeper   ports.FundsSweeper
	notifier  ports.NotificationQueue
	orders    ports.OrderStore
	merchants ports.MerchantService
	chain     ports.ChainAdmin
}

// AdminDeps groups the services behind the admin API.
type AdminDeps struct {
	Reporting ports.ReportingService
	Settler   ports.SettlementEngine
	Gas       ports.GasKeeper
	Sweeper   ports.FundsSweeper
	Notifier  ports.NotificationQueue
	Orders    ports.OrderStore
	Merchants ports.MerchantService
	Chain     ports.ChainAdmin
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(deps AdminDeps) *AdminHandler {
	return &AdminHandler{
		reporting: deps.Reporting,
		settler:   deps.Settler,
		gas:       deps.Gas,
		sweeper:   deps.Sweeper,
		notifier:  deps.Notifier,
		orders:    deps.Orders,
		merchants: deps.Merchants,
		chain:     deps.Chain,
	}
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.reporting.DashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// PendingSettlements handles GET /admin/settlements/pending.
func (h *AdminHandler) PendingSettlements(c *gin.Context) {
	orders, err := h.settler.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, orders, len(orders))
}

// SettleBatch handles POST /admin/settlements. An empty body settles every
// pending order.
func (h *AdminHandler) SettleBatch(c *gin.Context) {
	var req dto.SettleBatchRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
	}

	ids := make([]uuid.UUID, 0, len(req.OrderIDs))
	for _, raw := range req.OrderIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, apperror.Validation("invalid order id: "+raw))
			return
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		pending, err := h.settler.ListPending(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		for i := range pending {
			ids = append(ids, pending[i].ID)
		}
	}

	results := h.settler.SettleBatch(c.Request.Context(), ids)
	response.List(c, results, len(results))
}

// Settle handles POST /admin/settlements/:id.
func (h *AdminHandler) Settle(c *gin.Context) {
	id, ok := pathUUID(c, "id", "payment")
	if !ok {
		return
	}
	response.OK(c, h.settler.Settle(c.Request.Context(), id))
}

// GasStatus handles GET /admin/gas/:address.
func (h *AdminHandler) GasStatus(c *gin.Context) {
	status, err := h.gas.Status(c.Request.Context(), c.Param("address"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, status)
}

// FundGas handles POST /admin/gas/:address/fund.
func (h *AdminHandler) FundGas(c *gin.Context) {
	response.OK(c, h.gas.FundAddress(c.Request.Context(), c.Param("address")))
}

// RecoverGas handles POST /admin/gas/recover/:index.
func (h *AdminHandler) RecoverGas(c *gin.Context) {
	index, err := strconv.ParseUint(c.Param("index"), 10, 32)
	if err != nil {
		response.Error(c, apperror.Validation("index must be a non-negative 32-bit integer"))
		return
	}
	response.OK(c, h.gas.RecoverGas(c.Request.Context(), uint32(index)))
}

// RecoverySummary handles GET /admin/recovery/summary.
func (h *AdminHandler) RecoverySummary(c *gin.Context) {
	summary, err := h.sweeper.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}

// ListRecoveries handles GET /admin/recovery?limit=N.
func (h *AdminHandler) ListRecoveries(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	records, err := h.sweeper.ListRecoveries(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, records, len(records))
}

// SweepAll handles POST /admin/recovery/all.
func (h *AdminHandler) SweepAll(c *gin.Context) {
	report, err := h.sweeper.SweepAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

// SweepOne handles POST /admin/recovery/:id.
func (h *AdminHandler) SweepOne(c *gin.Context) {
	id, ok := pathUUID(c, "id", "payment")
	if !ok {
		return
	}
	record, err := h.sweeper.SweepOne(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, record)
}

// RetryWebhook handles POST /admin/webhooks/:id/retry.
func (h *AdminHandler) RetryWebhook(c *gin.Context) {
	id, ok := pathUUID(c, "id", "webhook")
	if !ok {
		return
	}
	if err := h.notifier.Retry(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"id": id, "retried": true})
}

// FailOrder handles POST /admin/orders/:id/fail.
func (h *AdminHandler) FailOrder(c *gin.Context) {
	id, ok := pathUUID(c, "id", "payment")
	if !ok {
		return
	}
	var req dto.FailOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)
	if err := h.orders.FailOrder(c.Request.Context(), id, req.Reason); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"id": id, "status": domain.OrderStatusFailed})
}

// CreateMerchant handles POST /admin/merchants.
func (h *AdminHandler) CreateMerchant(c *gin.Context) {
	var req dto.CreateMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	created, err := h.merchants.Create(c.Request.Context(), ports.CreateMerchantRequest{
		Name:          req.Name,
		WalletAddress: req.WalletAddress,
		FeePercent:    req.FeePercent,
		WebhookURL:    req.WebhookURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.CreateMerchantResponse{
		MerchantID: created.Merchant.ID.String(),
		AccessKey:  created.Merchant.AccessKey,
		APIKey:     created.APIKey,
	})
}

// SuspendMerchant handles POST /admin/merchants/:id/suspend.
func (h *AdminHandler) SuspendMerchant(c *gin.Context) {
	id, ok := pathUUID(c, "id", "merchant")
	if !ok {
		return
	}
	if err := h.merchants.Suspend(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"id": id, "status": domain.MerchantStatusSuspended})
}

// ResetProvider handles POST /admin/chain/primary.
func (h *AdminHandler) ResetProvider(c *gin.Context) {
	h.chain.ResetToPrimary()
	response.OK(c, gin.H{"using_secondary_rpc": h.chain.UsingSecondary()})
}

func pathUUID(c *gin.Context, param, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.Error(c, apperror.ErrNotFound(entity))
		return uuid.Nil, false
	}
	return id, true
}
