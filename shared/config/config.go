package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT (sessions are issued by the identity provider; we only validate)
	JWTSecret string

	// API Gateway URL
	APIGatewayURL string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       string

	// Rate Limiting
	RateLimitMaxRequests          string
	RateLimitTimeWindowSeconds    string
	RateLimitBlockDurationMinutes string

	// Frontend URL
	FrontendURL string

	// Service URLs (Dynamic based on environment)
	ComplianceServiceURL   string
	SupervisionServiceURL  string
	CoreServiceURL         string
	NotificationServiceURL string

	// MinIO Configuration
	MinIOServerURL    string
	MinIORootUser     string
	MinIORootPassword string
	MinIOUseSSL       bool
	MinIOBucketName   string

	// Supervision attachment limits
	AttachmentMaxFileSize  string
	AttachmentAllowedTypes string

	// Supplier portal
	PortalTokenExpireDays string
}

var cfg *Config

// LoadConfig loads configuration from environment variables
func LoadConfig() {
	envPaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	envLoaded := false
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Printf("✅ Environment loaded from: %s", path)
			envLoaded = true
			break
		}
	}

	if !envLoaded {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg = &Config{
		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "caelex"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-this"),

		// API Gateway URL
		APIGatewayURL: getEnv("API_GATEWAY_URL", "http://localhost:8000"),

		// Redis
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnv("REDIS_DB", "0"),

		// Rate Limiting
		RateLimitMaxRequests:          getEnv("RATE_LIMIT_MAX_REQUESTS", "100"),
		RateLimitTimeWindowSeconds:    getEnv("RATE_LIMIT_TIME_WINDOW_SECONDS", "60"),
		RateLimitBlockDurationMinutes: getEnv("RATE_LIMIT_BLOCK_DURATION_MINUTES", "15"),

		// Frontend URL
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		// Service URLs - Environment-based configuration
		ComplianceServiceURL:   getEnv("COMPLIANCE_SERVICE_URL", "http://localhost:8001"),
		SupervisionServiceURL:  getEnv("SUPERVISION_SERVICE_URL", "http://localhost:8002"),
		CoreServiceURL:         getEnv("CORE_SERVICE_URL", "http://localhost:8003"),
		NotificationServiceURL: getEnv("NOTIFICATION_SERVICE_URL", "http://localhost:8004"),

		// MinIO Configuration
		MinIOServerURL:    getEnv("MINIO_SERVER_URL", "http://localhost:9000"),
		MinIORootUser:     getEnv("MINIO_ROOT_USER", "minioadmin"),
		MinIORootPassword: getEnv("MINIO_ROOT_PASSWORD", "minioadmin"),
		MinIOUseSSL:       getEnvAsBool("MINIO_USE_SSL", false),
		MinIOBucketName:   getEnv("MINIO_BUCKET_NAME", "caelex-supervision"),

		// Supervision attachment limits
		AttachmentMaxFileSize:  getEnv("ATTACHMENT_MAX_FILE_SIZE", "50MB"),
		AttachmentAllowedTypes: getEnv("ATTACHMENT_ALLOWED_TYPES", ".pdf,.doc,.docx,.xlsx,.txt,.zip"),

		// Supplier portal
		PortalTokenExpireDays: getEnv("PORTAL_TOKEN_EXPIRE_DAYS", "30"),
	}

	log.Println("✅ Configuration loaded successfully")
}

// GetConfig returns the current configuration
func GetConfig() *Config {
	if cfg == nil {
		LoadConfig()
	}
	return cfg
}

// GetRateLimitMaxRequests returns the rate limit max requests as integer
func (c *Config) GetRateLimitMaxRequests() int {
	if value, err := strconv.Atoi(c.RateLimitMaxRequests); err == nil {
		return value
	}
	return 100
}

// GetRateLimitTimeWindowSeconds returns the rate limit time window as integer
func (c *Config) GetRateLimitTimeWindowSeconds() int {
	if value, err := strconv.Atoi(c.RateLimitTimeWindowSeconds); err == nil {
		return value
	}
	return 60
}

// GetRateLimitBlockDurationMinutes returns the rate limit block duration as integer
func (c *Config) GetRateLimitBlockDurationMinutes() int {
	if value, err := strconv.Atoi(c.RateLimitBlockDurationMinutes); err == nil {
		return value
	}
	return 15
}

// GetPortalTokenExpireDays returns the supplier portal token lifetime as integer
func (c *Config) GetPortalTokenExpireDays() int {
	if value, err := strconv.Atoi(c.PortalTokenExpireDays); err == nil {
		return value
	}
	return 30
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
