package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cryptopay-gateway/internal/core/domain"
	"cryptopay-gateway/internal/core/ports/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestAuditLog_AdminSettle(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAudit := mocks.NewMockAuditService(ctrl)

	mockAudit.EXPECT().Log(gomock.Any(), gomock.Any()).Do(
		func(_ context.Context, entry *domain.AuditLog) {
			assert.Equal(t, domain.AuditActionSettle, entry.Action)
			assert.Equal(t, "payment", entry.ResourceType)
			assert.Equal(t, "abc", entry.ResourceID)
			assert.Contains(t, entry.Details, `"status":422`)
		})

	r := gin.New()
	r.Use(AuditLog(mockAudit))
	r.POST("/admin/settlements/:id", func(c *gin.Context) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"outcome": "FAILED"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/settlements/abc", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAuditLog_SkipsReadsAndUnknownRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAudit := mocks.NewMockAuditService(ctrl)

	r := gin.New()
	r.Use(AuditLog(mockAudit))
	r.GET("/admin/stats", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/api/v1/payments", func(c *gin.Context) { c.Status(http.StatusCreated) })

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/admin/stats", nil),
		httptest.NewRequest(http.MethodPost, "/api/v1/payments", nil),
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
	}
}

func TestAuditLog_SkipsUnauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAudit := mocks.NewMockAuditService(ctrl)

	r := gin.New()
	r.Use(AuditLog(mockAudit))
	r.POST("/admin/chain/primary", AdminAuth("secret"), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/chain/primary", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
