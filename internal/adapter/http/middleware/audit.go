package middleware

import (
	"encoding/json"
	"net/http"

	"cryptopay-gateway/internal/core/domain"
	"cryptopay-gateway/internal/core/ports"

	"github.com/gin-gonic/gin"
)

type auditRoute struct {
	action   domain.AuditAction
	resource string
	param    string
}

// auditRoutes maps admin write routes (gin route templates) to audit actions.
var auditRoutes = map[string]auditRoute{
	"POST /admin/settlements":           {domain.AuditActionSettleBatch, "payment", ""},
	"POST /admin/settlements/:id":       {domain.AuditActionSettle, "payment", "id"},
	"POST /admin/gas/:address/fund":     {domain.AuditActionFundGas, "address", "address"},
	"POST /admin/gas/recover/:index":    {domain.AuditActionRecoverGas, "derivation_index", "index"},
	"POST /admin/recovery/all":          {domain.AuditActionSweepAll, "recovery", ""},
	"POST /admin/recovery/:id":          {domain.AuditActionSweep, "payment", "id"},
	"POST /admin/webhooks/:id/retry":    {domain.AuditActionRetryWebhook, "webhook", "id"},
	"POST /admin/orders/:id/fail":       {domain.AuditActionFailOrder, "payment", "id"},
	"POST /admin/merchants":             {domain.AuditActionCreateMerchant, "merchant", ""},
	"POST /admin/merchants/:id/suspend": {domain.AuditActionSuspendMerchant, "merchant", "id"},
	"POST /admin/chain/primary":         {domain.AuditActionResetProvider, "provider", ""},
}

// AuditLog records every admin write that passed authentication, whatever
// its outcome.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead || c.Request.Method == http.MethodOptions {
			return
		}
		route, ok := auditRoutes[c.Request.Method+" "+c.FullPath()]
		if !ok {
			return
		}
		status := c.Writer.Status()
		if status == http.StatusUnauthorized || status == http.StatusTooManyRequests {
			return
		}

		entry := &domain.AuditLog{
			Action:       route.action,
			ResourceType: route.resource,
			IPAddress:    c.ClientIP(),
		}
		if route.param != "" {
			entry.ResourceID = c.Param(route.param)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"request_id": c.GetString(CtxRequestID),
		})
		entry.Details = string(details)

		auditSvc.Log(c.Request.Context(), entry)
	}
}
