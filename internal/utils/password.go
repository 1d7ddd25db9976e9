package utils

import (
	"regexp" // Password policy

	"golang.org/x/crypto/bcrypt" // Password hashing
)

var passwordPattern = regexp.MustCompile(`^[A-Za-z0-9!@#$%^&*()_+\-=\[\]{};':",./<>?]{8,20}$`)

// IsValidPassword checks the 8-20 character password policy
func IsValidPassword(password string) bool {
	return passwordPattern.MatchString(password)
}

// HashPassword hashes a plain password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
