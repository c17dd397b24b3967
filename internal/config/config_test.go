package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("AI_TEMPERATURE", "0.2")
	t.Setenv("AI_RATE_WINDOW", "not-a-duration")
	t.Setenv("CORS_ORIGINS", " https://a.example.com, ,https://b.example.com ")

	cfg := Load()

	if cfg.Port != "8090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.DBDriver != "sqlite" {
		t.Errorf("DBDriver = %q", cfg.DBDriver)
	}
	if cfg.AITemperature != 0.2 {
		t.Errorf("AITemperature = %v", cfg.AITemperature)
	}
	if cfg.AIRateWindow != time.Minute {
		t.Errorf("invalid duration should fall back, got %v", cfg.AIRateWindow)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if !cfg.IsDevelopment() || cfg.IsProduction() {
		t.Error("expected development env")
	}
	if cfg.HasStorage() {
		t.Error("storage should be off without bucket and region")
	}
}

func TestSanitizedDropsSecrets(t *testing.T) {
	cfg := &Config{
		AppName:     "Healthmate",
		JWTSecret:   "jwt",
		AIAPIKey:    "key",
		S3SecretKey: "s3",
		S3Endpoint:  "http://minio:9000",
	}

	s := cfg.Sanitized()
	if s.JWTSecret != "" || s.AIAPIKey != "" || s.S3SecretKey != "" {
		t.Errorf("secrets leaked: %+v", s)
	}
	if s.AppName != "Healthmate" || s.S3Endpoint != "http://minio:9000" {
		t.Errorf("public fields dropped: %+v", s)
	}
}

func TestLocation(t *testing.T) {
	cfg := &Config{Timezone: "UTC"}
	if got := cfg.Location().String(); got != "UTC" {
		t.Errorf("Location = %q", got)
	}

	cfg.Timezone = "Mars/Olympus"
	if cfg.Location() != time.Local {
		t.Error("unknown zone should fall back to local")
	}
}
