package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage backends understood by FILE_STORAGE_BACKEND.
const (
	StorageBackendLocal = "local"
	StorageBackendS3    = "s3"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// TimezoneOffsetHours is applied to audit and aging timestamps.
	TimezoneOffsetHours int
	CORSAllowedOrigins  []string
	LoginRateLimit      string

	// File storage
	FileStorageBackend string
	FileStorageRoot    string
	MaxUploadBytes     int64
	S3Bucket           string
	S3Region           string
	S3Endpoint         string
	S3AccessKeyID      string
	S3SecretAccessKey  string

	// Reminder digest, empty spec disables the job.
	ReminderDigestCron string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "docflow-backend")
	viper.SetDefault("TIMEZONE_OFFSET_HOURS", -5)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("FILE_STORAGE_BACKEND", StorageBackendLocal)
	viper.SetDefault("FILE_STORAGE_ROOT", "Archivos/Documentos")
	viper.SetDefault("MAX_UPLOAD_BYTES", 200<<20)
	viper.SetDefault("S3_BUCKET", "")
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("S3_ENDPOINT", "")
	viper.SetDefault("S3_ACCESS_KEY_ID", "")
	viper.SetDefault("S3_SECRET_ACCESS_KEY", "")
	viper.SetDefault("REMINDER_DIGEST_CRON", "0 8 * * 1-6")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// Load JWT Expiry Duration (e.g., "60m", "1h")
	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 1
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "docflow-backend"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.TimezoneOffsetHours = viper.GetInt("TIMEZONE_OFFSET_HOURS")
	if cfg.TimezoneOffsetHours < -12 || cfg.TimezoneOffsetHours > 14 {
		log.Printf("Warning: TIMEZONE_OFFSET_HOURS (%d) out of range. Defaulting to -5.\n", cfg.TimezoneOffsetHours)
		cfg.TimezoneOffsetHours = -5
	}

	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")

	cfg.FileStorageBackend = strings.ToLower(viper.GetString("FILE_STORAGE_BACKEND"))
	cfg.FileStorageRoot = viper.GetString("FILE_STORAGE_ROOT")
	cfg.MaxUploadBytes = viper.GetInt64("MAX_UPLOAD_BYTES")
	cfg.S3Bucket = viper.GetString("S3_BUCKET")
	cfg.S3Region = viper.GetString("S3_REGION")
	cfg.S3Endpoint = viper.GetString("S3_ENDPOINT")
	cfg.S3AccessKeyID = viper.GetString("S3_ACCESS_KEY_ID")
	cfg.S3SecretAccessKey = viper.GetString("S3_SECRET_ACCESS_KEY")
	if cfg.FileStorageBackend == StorageBackendS3 && cfg.S3Bucket == "" {
		log.Println("Warning: FILE_STORAGE_BACKEND is s3 but S3_BUCKET is not set. Falling back to local storage.")
		cfg.FileStorageBackend = StorageBackendLocal
	}

	cfg.ReminderDigestCron = viper.GetString("REMINDER_DIGEST_CRON")

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	return cfg, nil
}

// Location returns the fixed zone the workflow clock runs in.
func (c *Config) Location() *time.Location {
	return time.FixedZone("", c.TimezoneOffsetHours*3600)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
