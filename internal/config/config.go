package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For list values
	"time"    // For TTL durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort    string        // Application port
	DBUser     string        // Database user
	DBPassword string        // Database password
	DBHost     string        // Database host
	DBPort     string        // Database port
	DBName     string        // Database name
	JWTSecret  string        // JWT secret key
	JWTTTL     time.Duration // JWT lifetime
	RedisAddr  string        // Redis server address
	RedisPass  string        // Redis password
	RedisDB    int           // Redis database number
	CacheTTL   time.Duration // Read cache lifetime
	IsProd     bool          // Is production environment
	LogLevel   string        // logrus level name

	CORSOrigins []string // Browser origins allowed to call the API

	SMTPHost     string // SMTP relay used for verification codes
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	EmailCodeTTL     time.Duration // Lifetime of an e-mail verification code
	EmailSendPerHour int           // Max verification mails per address per hour
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:    getEnv("APP_PORT", "8080"),     // Application port
		DBUser:     os.Getenv("DB_USER"),           // Database user
		DBPassword: os.Getenv("DB_PASSWORD"),       // Database password
		DBHost:     getEnv("DB_HOST", "127.0.0.1"), // Database host
		DBPort:     getEnv("DB_PORT", "3306"),      // Database port
		DBName:     os.Getenv("DB_NAME"),           // Database name
		JWTSecret:  os.Getenv("JWT_SECRET"),        // JWT secret key
		JWTTTL:     time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,
		RedisAddr:  getEnv("REDIS_ADDR", "127.0.0.1:6379"), // Redis server address
		RedisPass:  os.Getenv("REDIS_PASS"),                // Redis password
		RedisDB:    getEnvInt("REDIS_DB", 0),               // Redis database number
		CacheTTL:   time.Duration(getEnvInt("CACHE_TTL_SECONDS", 60)) * time.Second,
		IsProd:     os.Getenv("IS_PROD") == "true", // Is production environment
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		CORSOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), ","),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@mileage-mall.local"),

		EmailCodeTTL:     time.Duration(getEnvInt("EMAIL_CODE_TTL_MINUTES", 5)) * time.Minute,
		EmailSendPerHour: getEnvInt("EMAIL_SEND_LIMIT_PER_HOUR", 5),
	}
}

// DSN builds the MySQL data source name shared by the server and the migrator
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&loc=Local"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
