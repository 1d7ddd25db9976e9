package middleware

import (
	"strconv" // Path id parsing

	"mileage_mall/internal/domain"  // Error taxonomy
	"mileage_mall/internal/service" // Ownership guard
	"mileage_mall/internal/utils"   // Logging

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// OwnerOnlyMiddleware lets the request through only when the JWT principal owns the
// account named by the param path segment. It runs before any body is read.
func OwnerOnlyMiddleware(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := c.GetUint("userID") // Set by JWTAuthMiddleware
		owner, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err != nil {
			owner = 0 // Unparseable ids belong to nobody
		}
		if err := service.Authorize(principal, uint(owner)); err != nil {
			utils.Log(c.Request.Context()).WithFields(logrus.Fields{
				"user_id": principal,      // Token principal
				"owner":   c.Param(param), // Path target as sent
				"path":    c.FullPath(),   // Route template
			}).Warn("Ownership check failed")
			de, ok := domain.AsError(err)
			if !ok {
				de = domain.ErrForbidden
			}
			abortWith(c, de)
			return
		}
		c.Next()
	}
}
