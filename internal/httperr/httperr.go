package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func PaymentRequired(c *gin.Context, code, message string) {
	Write(c, http.StatusPaymentRequired, code, message)
}

// Validation writes the field-error envelope used by form submissions.
func Validation(c *gin.Context, message string, ve *ValidationError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error_code": "invalid_request",
		"message":    message,
		"success":    false,
		"errors":     ve.FieldMap(),
	})
}
