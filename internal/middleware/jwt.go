package middleware

import (
	"mileage_mall/internal/domain" // Error taxonomy
	"mileage_mall/internal/utils"  // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// abortWith stops the chain with the standard error envelope
func abortWith(c *gin.Context, e *domain.Error) {
	c.AbortWithStatusJSON(e.Status, gin.H{"success": false, "code": e.Code, "error": e.Message})
}

// JWTAuthMiddleware resolves the bearer token into the request principal
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := utils.ResolveBearer(c.GetHeader("Authorization"), secret)
		if err != nil {
			de, ok := domain.AsError(err)
			if !ok {
				de = domain.ErrInvalidCredential
			}
			utils.Log(c.Request.Context()).WithField("path", c.FullPath()).Debug("Rejected credential: " + de.Code)
			abortWith(c, de)
			return
		}
		c.Set("userID", userID) // Store principal in context
		c.Next()                // Proceed to the next handler
	}
}
