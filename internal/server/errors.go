package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// respondError writes a client-facing error in the API's envelope.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondInternal writes a server error with the original message attached
// and records the error for the request logger.
func respondInternal(c *gin.Context, message string, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}
