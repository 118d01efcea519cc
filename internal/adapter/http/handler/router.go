package handler

import (
	"cryptopay-gateway/internal/adapter/http/middleware"
	redisStore "cryptopay-gateway/internal/adapter/storage/redis"
	"cryptopay-gateway/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Orders         ports.OrderStore
	Notifier       ports.NotificationQueue
	Ledgers        ports.LedgerRegistry
	TokenSvc       ports.TokenService
	MerchantSvc    ports.MerchantService
	Admin          AdminDeps
	AdminSecret    string
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	paymentHandler := NewPaymentHandler(deps.Orders, deps.Notifier, deps.Ledgers, deps.TokenSvc, deps.Logger)
	checkoutHandler := NewCheckoutHandler(paymentHandler)

	// --- Public routes (no auth) ---
	v1.GET("/checkout/:token", rl("checkout"), checkoutHandler.GetCheckout)

	// --- API-key authenticated routes (merchant API) ---
	payments := v1.Group("/payments", middleware.APIKeyAuth(deps.MerchantSvc, deps.Logger))
	{
		payments.POST("", rl("payments_create"), paymentHandler.CreatePayment)
		payments.GET("/:id", rl("payments_read"), paymentHandler.GetPayment)
		payments.GET("/:id/webhooks", rl("payments_read"), paymentHandler.ListWebhooks)
	}

	// --- Operator routes (admin secret) ---
	adminHandler := NewAdminHandler(deps.Admin)
	admin := r.Group("/admin", rl("admin"), middleware.AdminAuth(deps.AdminSecret))
	{
		admin.GET("/stats", adminHandler.Stats)

		admin.GET("/settlements/pending", adminHandler.PendingSettlements)
		admin.POST("/settlements", adminHandler.SettleBatch)
		admin.POST("/settlements/:id", adminHandler.Settle)

		admin.GET("/gas/:address", adminHandler.GasStatus)
		admin.POST("/gas/:address/fund", adminHandler.FundGas)
		admin.POST("/gas/recover/:index", adminHandler.RecoverGas)

		admin.GET("/recovery/summary", adminHandler.RecoverySummary)
		admin.GET("/recovery", adminHandler.ListRecoveries)
		admin.POST("/recovery/all", adminHandler.SweepAll)
		admin.POST("/recovery/:id", adminHandler.SweepOne)

		admin.POST("/webhooks/:id/retry", adminHandler.RetryWebhook)
		admin.POST("/orders/:id/fail", adminHandler.FailOrder)

		admin.POST("/merchants", adminHandler.CreateMerchant)
		admin.POST("/merchants/:id/suspend", adminHandler.SuspendMerchant)

		admin.POST("/chain/primary", adminHandler.ResetProvider)
	}

	return r
}
