package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cryptopay-gateway/internal/core/domain"
	"cryptopay-gateway/internal/core/ports/mocks"
	"cryptopay-gateway/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func apiKeyRouter(t *testing.T) (*gin.Engine, *mocks.MockMerchantService) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockMerchantService(ctrl)

	r := gin.New()
	r.GET("/test", APIKeyAuth(svc, zerolog.Nop()), func(c *gin.Context) {
		id, _ := c.Get(CtxMerchantID)
		c.JSON(http.StatusOK, gin.H{"merchant_id": id})
	})
	return r, svc
}

func TestAPIKeyAuth_MissingHeader(t *testing.T) {
	r, _ := apiKeyRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_001")
}

func TestAPIKeyAuth_Valid(t *testing.T) {
	r, svc := apiKeyRouter(t)
	merchant := &domain.Merchant{ID: uuid.New(), Status: domain.MerchantStatusActive}

	svc.EXPECT().Authenticate(gomock.Any(), "ak_1.sk_2").Return(merchant, nil)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderAPIKey, "ak_1.sk_2")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), merchant.ID.String())
}

func TestAPIKeyAuth_Rejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"bad key", apperror.ErrInvalidAPIKey(), http.StatusUnauthorized},
		{"suspended", apperror.ErrMerchantSuspended(), http.StatusForbidden},
		{"store down", apperror.ErrDatabaseError(errors.New("timeout")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, svc := apiKeyRouter(t)
			svc.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set(HeaderAPIKey, "ak_1.wrong")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestAdminAuth(t *testing.T) {
	r := gin.New()
	r.GET("/admin", AdminAuth("s3cret"), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for header, want := range map[string]int{
		"s3cret":  http.StatusNoContent,
		"s3cret ": http.StatusUnauthorized,
		"":        http.StatusUnauthorized,
		"other":   http.StatusUnauthorized,
	} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if header != "" {
			req.Header.Set(HeaderAdminSecret, header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, "header %q", header)
	}
}

func TestAdminAuth_EmptySecretLocksEverythingOut(t *testing.T) {
	r := gin.New()
	r.GET("/admin", AdminAuth(""), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(HeaderAdminSecret, "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/id", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxRequestID)) })

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Body.String())
	assert.Equal(t, "req-123", w.Header().Get(HeaderRequestID))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/id", nil))
	_, err := uuid.Parse(w.Body.String())
	assert.NoError(t, err)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zerolog.Nop()))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SYS_001")
}
