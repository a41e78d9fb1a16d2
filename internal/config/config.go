package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenLifetime is the documented fallback for JWT_EXPIRES_IN.
// Tokens are stateless; expiry is their only invalidation path.
const DefaultTokenLifetime = 24 * time.Hour

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret     string
	TokenLifetime time.Duration
	JWTIssuer     string
	JWTAudience   string

	// Password hashing
	BcryptCost int

	// Admin seeding
	AdminEmail    string
	AdminPassword string

	// Server
	Port        string
	CORSOrigins string
	AppEnv      string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "user_management"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		TokenLifetime: parseDuration(getEnv("JWT_EXPIRES_IN", ""), DefaultTokenLifetime),
		JWTIssuer:     getEnv("JWT_ISSUER", "user-management-api"),
		JWTAudience:   getEnv("JWT_AUDIENCE", "user-management-client"),

		BcryptCost: parseBcryptCost(getEnv("BCRYPT_COST", "")),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		AppEnv:      getEnv("APP_ENV", "production"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		slog.Warn("invalid duration, using default", "value", s, "default", fallback)
		return fallback
	}
	return d
}

// parseBcryptCost never lets a cost outside bcrypt's accepted range through;
// a missing or garbage BCRYPT_COST falls back to bcrypt.DefaultCost rather
// than silently hashing with cost zero.
func parseBcryptCost(s string) int {
	if s == "" {
		return bcrypt.DefaultCost
	}
	cost, err := strconv.Atoi(s)
	if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		slog.Warn("invalid bcrypt cost, using default", "value", s, "default", bcrypt.DefaultCost)
		return bcrypt.DefaultCost
	}
	return cost
}
