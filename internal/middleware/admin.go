package middleware

import (
	"mileage_mall/internal/domain" // Importing domain models
	"mileage_mall/internal/utils"  // Logging

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// AdminOnlyMiddleware checks the user's role from the database on each request
func AdminOnlyMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID") // Set by JWTAuthMiddleware
		if userID == 0 {
			abortWith(c, domain.ErrMalformedCredential)
			return
		}
		var user domain.User // Fetch user from database
		if err := db.WithContext(c.Request.Context()).Select("id", "role").First(&user, userID).Error; err != nil {
			abortWith(c, domain.ErrForbidden)
			return
		}
		if user.Role != domain.RoleAdmin {
			utils.Log(c.Request.Context()).WithFields(logrus.Fields{"user_id": userID, "path": c.FullPath()}).Warn("Admin access denied")
			abortWith(c, domain.ErrForbidden)
			return
		}
		c.Next()
	}
}
