package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAppError_IsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("create membership: %w", ErrMembershipOverlap)

	assert.True(t, errors.Is(wrapped, ErrMembershipOverlap))
	assert.False(t, errors.Is(wrapped, ErrMembershipNotFound))

	appErr, ok := AsAppError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode)
}

func TestWithDetails_DoesNotMutatePredefined(t *testing.T) {
	withDetails := ErrInvalidPaymentAmount.WithDetails(map[string]string{"amount": "must be > 0"})

	assert.NotNil(t, withDetails.Details)
	assert.Nil(t, ErrInvalidPaymentAmount.Details)
}

func TestHandleError_HidesInternalMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleError(c, errors.New("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"INTERNAL_ERROR"`)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestHandleError_RendersAppError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleError(c, ErrMemberNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"domain":"member"`)
}

func TestFactories_HTTPCodes(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"not found", ErrNotFound(cause), http.StatusNotFound},
		{"conflict", ErrConflict(cause, "membership", "Already active"), http.StatusConflict},
		{"invalid operation", ErrInvalidOperation("payment", "Membership is cancelled"), http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("nope"), http.StatusUnauthorized},
		{"bad request", NewBadRequestError("bad id"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPCode)
		})
	}

	assert.ErrorIs(t, ErrConflict(cause, "membership", "Already active"), cause)
}
