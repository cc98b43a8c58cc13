package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// ValidationError reports the specific fields that failed validation.
func ValidationError(c *gin.Context, message string, missing []string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":           "VALIDATION_ERROR",
			"message":        message,
			"missing_fields": missing,
		},
	})
}

// RetryableError marks persistence failures the client may retry; validation
// and authorization failures never carry the retryable flag.
func RetryableError(c *gin.Context, message string) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"success": false,
		"error": gin.H{
			"code":      "PERSISTENCE_ERROR",
			"message":   message,
			"retryable": true,
		},
	})
}
