package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName     string
	AppEnv      string
	Port        string
	ContentPath string
	Timezone    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret string
	JWTExpiry time.Duration

	// CORS allowed origins, comma separated ("*" allows any)
	CORSOrigins []string

	// AI (Gemini generateContent)
	AIAPIKey      string
	AIModel       string
	AIBaseURL     string
	AITemperature float64
	AITimeout     time.Duration
	AIRateLimit   int // requests per AIRateWindow, 0 disables
	AIRateWindow  time.Duration

	// Vision hints (optional, AWS Rekognition)
	RekognitionEnabled bool
	RekognitionRegion  string

	// Observability (optional)
	SentryDSN string

	// Storage (S3-compatible: MinIO, AWS S3, Cloudflare R2, DigitalOcean Spaces, etc.)
	S3Region              string
	S3Bucket              string
	S3AccessKey           string
	S3SecretKey           string
	S3Endpoint            string        // Optional: for S3-compatible services (MinIO, DO Spaces, R2, etc.)
	S3PresignExpiryPublic time.Duration // Expiry for meal image URLs - default: 7 days
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:     envString("APP_NAME", "Healthmate"),
		AppEnv:      envRequired("APP_ENV"), // Required: 'development' or 'production'
		Port:        envString("PORT", "8090"),
		ContentPath: envString("CONTENT_PATH", "content"),
		Timezone:    envString("APP_TIMEZONE", "Local"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/healthmate.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret: envRequired("JWT_SECRET"),
		JWTExpiry: envDuration("JWT_EXPIRY", 90*24*time.Hour), // 90 days, the app keeps one long-lived token

		CORSOrigins: envList("CORS_ORIGINS", "*"),

		// AI
		AIAPIKey:      envString("AI_API_KEY", ""),
		AIModel:       envString("AI_MODEL", "gemini-1.5-flash"),
		AIBaseURL:     envString("AI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		AITemperature: envFloat("AI_TEMPERATURE", 0.7),
		AITimeout:     envDuration("AI_TIMEOUT", 60*time.Second),
		AIRateLimit:   envInt("AI_RATE_LIMIT", 30),
		AIRateWindow:  envDuration("AI_RATE_WINDOW", time.Minute),

		RekognitionEnabled: envBool("REKOGNITION_ENABLED", false),
		RekognitionRegion:  envString("REKOGNITION_REGION", "us-east-1"),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage (S3-compatible - optional, scan-confirm keeps no image without it)
		S3Region:              envString("S3_REGION", ""),
		S3Bucket:              envString("S3_BUCKET", ""),
		S3AccessKey:           envString("S3_ACCESS_KEY", ""),
		S3SecretKey:           envString("S3_SECRET_KEY", ""),
		S3Endpoint:            envString("S3_ENDPOINT", ""),
		S3PresignExpiryPublic: envDuration("S3_PRESIGN_EXPIRY_PUBLIC", 168*time.Hour),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures the AI backend is configured for production deployments.
// Development runs without a key; AI flows then end in their error state.
func validateProduction(cfg *Config) {
	if cfg.AIAPIKey == "" {
		slog.Error("production deployment requires AI_API_KEY",
			"hint", "set APP_ENV=development to run without the AI features")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envList(key, def string) []string {
	var list []string
	for _, item := range strings.Split(envString(key, def), ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return i
}

func envFloat(key string, def float64) float64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		slog.Warn("config invalid float, using default", "key", key, "value", v, "default", def)
		return def
	}
	return f
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// HasStorage reports whether S3-compatible storage is configured.
func (c *Config) HasStorage() bool {
	return c.S3Bucket != "" && c.S3Region != ""
}

// Location returns the time zone used to derive calendar dates.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Warn("config invalid timezone, using local", "value", c.Timezone)
		return time.Local
	}
	return loc
}

// Sanitized returns a copy of the config with only public/safe fields.
// All secrets, credentials, and sensitive data are excluded.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:  c.AppName,
		AppEnv:   c.AppEnv,
		Port:     c.Port,
		Timezone: c.Timezone,

		AIModel:       c.AIModel,
		AITemperature: c.AITemperature,

		S3Endpoint: c.S3Endpoint,
	}
}
