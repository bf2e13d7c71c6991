package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind ErrorKind
	}{
		{"nil", nil, ""},
		{"app error", ErrForbidden("no"), KindForbidden},
		{"wrapped app error", fmt.Errorf("ctx: %w", ErrConflict("dup")), KindConflict},
		{"record not found", gorm.ErrRecordNotFound, KindNotFound},
		{"duplicated key", gorm.ErrDuplicatedKey, KindConflict},
		{"anything else", errors.New("disk full"), KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusFor(KindNotFound))
	assert.Equal(t, http.StatusForbidden, StatusFor(KindForbidden))
	assert.Equal(t, http.StatusBadRequest, StatusFor(KindValidation))
	assert.Equal(t, http.StatusConflict, StatusFor(KindConflict))
	assert.Equal(t, http.StatusUnauthorized, StatusFor(KindUnauthorized))
	assert.Equal(t, http.StatusTooManyRequests, StatusFor(KindThrottled))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(KindInternal))
}

func TestHandleErrorHidesInternalCause(t *testing.T) {
	gin.SetMode(gin.TestMode)
	InitLogger("panic")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/orders", nil)

	HandleError(c, Internal(errors.New("connection refused")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.Contains(t, w.Body.String(), `"kind":"internal"`)
}

func TestHandleErrorUsesAppMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/orders/1", nil)

	HandleError(c, ErrNotFound("Order not found."))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"status":false,"message":"Order not found.","kind":"not_found"}`, w.Body.String())
}
