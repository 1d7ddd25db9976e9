package api

import (
	"mileage_mall/internal/middleware" // Auth and request id middleware
	"mileage_mall/internal/service"    // Services behind the handlers

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Deps is everything the router hands to handlers
type Deps struct {
	DB        *gorm.DB
	JWTSecret string
	Account   *service.Account
	Auth      *service.Auth
	Admin     *service.Admin
}

// Routes mounts every endpoint on r
func Routes(r *gin.Engine, d Deps) {
	r.Use(middleware.RequestID())

	users := r.Group("/api/users")
	// Auth routes
	users.POST("/join", JoinHandler(d.Auth))                    // Registration endpoint
	users.POST("/login", LoginHandler(d.Auth))                  // Login endpoint
	users.POST("/email", SendEmailCodeHandler(d.Auth))          // Send verification code
	users.POST("/email/verify", VerifyEmailCodeHandler(d.Auth)) // Check verification code

	// Per-user routes (protected by JWT, then the ownership guard on the path id)
	mine := users.Group("/:userId", middleware.JWTAuthMiddleware(d.JWTSecret), middleware.OwnerOnlyMiddleware("userId"))
	NewAccountHandler(d.Account).Register(mine)

	// Admin routes (protected, admin only)
	admin := r.Group("/api/admin", middleware.JWTAuthMiddleware(d.JWTSecret), middleware.AdminOnlyMiddleware(d.DB))
	admin.GET("/users", ListUsersHandler(d.Admin))
	admin.POST("/order-details/:detailId/return-approval", ApproveReturnHandler(d.Admin))
	admin.POST("/users/:userId/mileage/debit", DebitMileageHandler(d.Admin))
	admin.POST("/users/:userId/mileage/reconcile", ReconcileMileageHandler(d.Admin))
}
