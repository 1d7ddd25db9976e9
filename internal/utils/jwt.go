package utils

import (
	"fmt"                          // Error formatting
	"mileage_mall/internal/domain" // Error taxonomy
	"strings"                      // Header splitting
	"time"                         // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// JWT Claims
type Claims struct {
	UserID               uint `json:"user_id"` // Custom claim for user ID
	jwt.RegisteredClaims      // Standard JWT claims
}

// GenerateJWT creates a JWT token for a given user ID
func GenerateJWT(userID uint, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	// Set token claims
	claims := Claims{
		UserID: userID, // Custom claim for user ID
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)), // Token expiry
			IssuedAt:  jwt.NewNumericDate(now),          // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a JWT token string
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		// Only HMAC-signed tokens are ours
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithExpirationRequired())
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrSignatureInvalid
}

// ResolveBearer turns a raw Authorization header value into the user id it carries.
// It never panics on a missing or oddly shaped header.
func ResolveBearer(header, secret string) (uint, error) {
	parts := strings.Split(header, " ") // Expect exactly "Bearer <token>"
	if header == "" || len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return 0, domain.ErrMalformedCredential
	}
	claims, err := ParseJWT(parts[1], secret) // Verify signature and expiry
	if err != nil || claims.UserID == 0 {
		return 0, domain.ErrInvalidCredential
	}
	return claims.UserID, nil
}
