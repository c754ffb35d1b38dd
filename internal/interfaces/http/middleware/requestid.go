package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the correlation id header
const RequestIDHeader = "X-Request-ID"

// RequestIDKey is the gin context key for the correlation id
const RequestIDKey = "request_id"

// RequestID ensures every request carries a correlation id. A client-sent
// X-Request-ID is kept; otherwise a new one is generated. The id is echoed
// back on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.New().String()
		}
		c.Set(RequestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the correlation id for the current request
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
