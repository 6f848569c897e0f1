package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// PortalAPIConfig points at the upstream procurement REST API.
type PortalAPIConfig struct {
	BaseURL    string
	TimeoutSec int
}

// CacheConfig selects the query cache backend.
// Backend is "memory" (default) or "redis".
type CacheConfig struct {
	Backend       string
	TTLSec        int
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// UploadConfig bounds replace-uploads.
type UploadConfig struct {
	MaxBytes int64
}

// multipartOverhead is headroom for form fields and part headers around the file.
const multipartOverhead = 1024 * 1024

// BodyLimit is the HTTP request body ceiling for MaxBytes plus multipart overhead.
func (u UploadConfig) BodyLimit() int {
	return int(u.MaxBytes) + multipartOverhead
}

// LogConfig configures the zerolog global logger.
type LogConfig struct {
	Level  string
	Format string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost string
	Port    string
	// PublicBaseURL is how the portal reaches this service; it prefixes the fileUrl of uploaded documents.
	PublicBaseURL string
	Log           LogConfig
	Database      DatabaseConfig
	MinIO         MinIOConfig
	PortalAPI     PortalAPIConfig
	Cache         CacheConfig
	Upload        UploadConfig
}

// DefaultUploadMaxBytes is the replace-upload ceiling (10 MB).
const DefaultUploadMaxBytes = 10 * 1024 * 1024

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	appHost := getEnv("APP_HOST", "localhost:8080")
	maxBytes := int64(getEnvInt("UPLOAD_MAX_BYTES", DefaultUploadMaxBytes))
	if maxBytes <= 0 {
		maxBytes = DefaultUploadMaxBytes
	}

	return &AppConfig{
		AppHost:       appHost,
		Port:          getEnv("PORT", "8080"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://"+appHost),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		PortalAPI: PortalAPIConfig{
			BaseURL:    getEnv("PORTAL_API_BASE_URL", ""),
			TimeoutSec: getEnvInt("PORTAL_API_TIMEOUT_SEC", 30),
		},
		Cache: CacheConfig{
			Backend:       getEnv("CACHE_BACKEND", "memory"),
			TTLSec:        getEnvInt("CACHE_TTL_SEC", 60),
			RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("REDIS_DB", 0),
		},
		Upload: UploadConfig{
			MaxBytes: maxBytes,
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
