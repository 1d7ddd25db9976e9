package api

import (
	"net/http" // HTTP status codes

	"mileage_mall/internal/domain"  // Importing domain models
	"mileage_mall/internal/service" // Auth service

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"` // Login e-mail
	Password string `json:"password" binding:"required"`    // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token  string `json:"token"`   // JWT token
	UserID uint   `json:"user_id"` // Principal carried by the token
}

// EmailRequest asks for a verification code
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyRequest submits a verification code
type VerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

// JoinHandler registers a user whose e-mail was verified
func JoinHandler(auth *service.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.JoinRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		user, err := auth.Join(c.Request.Context(), req)
		if err != nil {
			fail(c, err)
			return
		}
		respond(c, http.StatusCreated, user)
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(auth *service.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, domain.ErrBadLogin) // Never hint which field was wrong
			return
		}
		token, user, err := auth.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			fail(c, err)
			return
		}
		respond(c, http.StatusOK, AuthResponse{Token: token, UserID: user.ID})
	}
}

// SendEmailCodeHandler mails a verification code
func SendEmailCodeHandler(auth *service.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EmailRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		if err := auth.SendEmailCode(c.Request.Context(), req.Email); err != nil {
			fail(c, err)
			return
		}
		respond(c, http.StatusOK, nil)
	}
}

// VerifyEmailCodeHandler checks a verification code
func VerifyEmailCodeHandler(auth *service.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		if err := auth.VerifyEmailCode(c.Request.Context(), req.Email, req.Code); err != nil {
			fail(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{"verified": true})
	}
}
