package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope of every API reply.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains error details.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes.
const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeInvalidSymbol   = "INVALID_SYMBOL"
	CodeInvalidAlphabet = "INVALID_ALPHABET"
	CodeEmptyInput      = "EMPTY_INPUT"
	CodeOverflow        = "OVERFLOW"
	CodeExhausted       = "SEQUENCE_EXHAUSTED"
	CodeInternal        = "INTERNAL_ERROR"
)

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, Response{
		Success: false,
		Error:   &ErrorInfo{Code: code, Message: message},
	})
}
