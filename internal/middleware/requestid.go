package middleware

import (
	"mileage_mall/internal/utils" // Request id context helpers

	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"   // Request ids
)

// RequestIDHeader is echoed back on every response
const RequestIDHeader = "X-Request-ID"

// RequestID tags each request with an id, reusing the caller's when it sends one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(utils.WithRequestID(c.Request.Context(), id))
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
