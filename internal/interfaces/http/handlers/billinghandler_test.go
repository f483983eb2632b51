package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/skolar-inc/skolar/internal/domain/billing"
	"github.com/skolar-inc/skolar/internal/shared/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMapBillingError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantType errors.ErrorType
	}{
		{"not found", billing.ErrRequestNotFound, http.StatusNotFound, errors.ErrorTypeNotFound},
		{"already processed", billing.ErrAlreadyProcessed, http.StatusConflict, errors.ErrorTypeConflict},
		{"missing evidence", billing.ErrMissingEvidence, http.StatusUnprocessableEntity, errors.ErrorTypeUnprocessable},
		{"validation", billing.NewValidationError("bad input"), http.StatusBadRequest, errors.ErrorTypeValidation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mapped := mapBillingError(tc.err)
			appErr := errors.GetAppError(mapped)
			if assert.NotNil(t, appErr) {
				assert.Equal(t, tc.wantCode, appErr.Code)
				assert.Equal(t, tc.wantType, appErr.Type)
			}
		})
	}
}

func TestMapBillingError_PassesThroughUnknown(t *testing.T) {
	err := billing.NewPersistenceError("update request decision", assert.AnError)
	assert.Equal(t, err, mapBillingError(err))
}

func TestDecideRequest_InvalidID(t *testing.T) {
	handler := NewBillingHandler(nil, nil, nil)

	router := gin.New()
	router.POST("/requests/:id/decide", handler.DecideRequest)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/requests/abc/decide",
		strings.NewReader(`{"action":"approve_request"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDecideRequest_MissingAction(t *testing.T) {
	handler := NewBillingHandler(nil, nil, nil)

	router := gin.New()
	router.POST("/requests/:id/decide", handler.DecideRequest)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/requests/1/decide", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
