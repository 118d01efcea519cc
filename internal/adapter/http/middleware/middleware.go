package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"cryptopay-gateway/internal/core/ports"
	"cryptopay-gateway/pkg/apperror"
	"cryptopay-gateway/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	HeaderAPIKey      = "X-API-Key"
	HeaderAdminSecret = "X-Admin-Secret"
	HeaderRequestID   = "X-Request-ID"

	// Context keys
	CtxMerchantID  = "merchant_id"
	CtxMerchantKey = "merchant"
	CtxRequestID   = "request_id"
)

// APIKeyAuth authenticates merchants by the "<access_key>.<secret>" API key.
func APIKeyAuth(merchantSvc ports.MerchantService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader(HeaderAPIKey)
		if apiKey == "" {
			response.Error(c, apperror.ErrInvalidAPIKey())
			c.Abort()
			return
		}

		merchant, err := merchantSvc.Authenticate(c.Request.Context(), apiKey)
		if err != nil {
			var appErr *apperror.AppError
			if !errors.As(err, &appErr) || appErr.HTTPStatus >= http.StatusInternalServerError {
				log.Error().Err(err).Msg("merchant authentication failed")
			}
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(CtxMerchantID, merchant.ID)
		c.Set(CtxMerchantKey, merchant)
		c.Next()
	}
}

// AdminAuth guards operator routes with a shared secret compared in constant time.
func AdminAuth(secret string) gin.HandlerFunc {
	want := []byte(secret)
	return func(c *gin.Context) {
		got := []byte(c.GetHeader(HeaderAdminSecret))
		if len(want) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
			response.Error(c, apperror.ErrInvalidAdminSecret())
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequestID propagates X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.New().String()
		}
		c.Set(CtxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(CtxRequestID)).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": "SYS_001",
					"message":    "Internal server error",
				})
			}
		}()
		c.Next()
	}
}
