package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	paymentdomain "github.com/railzwaylabs/railzway-stripe/internal/payment/domain"
)

type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *APIError) Error() string { return e.Message }

func newValidationError(field, code, message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: code, Message: message, Field: field}
}

func invalidRequestError() *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "invalid request"}
}

var errorStatus = []struct {
	err    error
	status int
}{
	{paymentdomain.ErrPaymentMethodNotFound, http.StatusNotFound},
	{paymentdomain.ErrPaymentNotFound, http.StatusNotFound},
	{paymentdomain.ErrOrderNotFound, http.StatusNotFound},
	{paymentdomain.ErrIntentNotFound, http.StatusNotFound},
	{paymentdomain.ErrInvalidName, http.StatusBadRequest},
	{paymentdomain.ErrInvalidSetupFutureUsage, http.StatusBadRequest},
	{paymentdomain.ErrInvalidIntentID, http.StatusBadRequest},
	{paymentdomain.ErrInvalidAmount, http.StatusBadRequest},
	{paymentdomain.ErrInvalidConfig, http.StatusUnprocessableEntity},
	{paymentdomain.ErrSlugAlreadyAssigned, http.StatusConflict},
	{paymentdomain.ErrSlugUnavailable, http.StatusServiceUnavailable},
	{paymentdomain.ErrRefundReasonNotFound, http.StatusInternalServerError},
	{paymentdomain.ErrGatewayNotFound, http.StatusInternalServerError},
}

// AbortWithError maps domain sentinels to HTTP responses. Unknown errors are
// reported as internal without leaking their text.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
		return
	}

	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			c.AbortWithStatusJSON(m.status, gin.H{"error": APIError{Code: m.err.Error(), Message: m.err.Error()}})
			return
		}
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": APIError{Code: "internal_error", Message: "internal error"}})
}
