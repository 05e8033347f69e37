// Package response writes the JSON bodies the browser client expects.
// Errors are always `{"error": "..."}` plus optional diagnostic fields,
// matching the contract the front end was built against.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error writes an error body with the given status
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, gin.H{"error": message})
}

// ErrorWithFields writes an error body with extra diagnostic fields
func ErrorWithFields(c *gin.Context, httpStatus int, message string, fields gin.H) {
	body := gin.H{"error": message}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(httpStatus, body)
}

// BadRequest 400 error
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// InternalError 500 error
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// OK writes a 200 response with the payload as-is
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}
