package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
	if cfg.JWTIssuer != "quizdesk-auth" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "quizdesk-auth")
	}
	if cfg.JWTAudience != "quizdesk-api" {
		t.Errorf("JWTAudience = %q, want %q", cfg.JWTAudience, "quizdesk-api")
	}
	if cfg.JWTAccessTTL != "30m" {
		t.Errorf("JWTAccessTTL = %q, want %q", cfg.JWTAccessTTL, "30m")
	}
	if cfg.JWTRefreshTTL != "720h" {
		t.Errorf("JWTRefreshTTL = %q, want %q", cfg.JWTRefreshTTL, "720h")
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if cfg.EventsKafkaTopic != "quizdesk-sessions" {
		t.Errorf("EventsKafkaTopic = %q, want default", cfg.EventsKafkaTopic)
	}
	if cfg.LoginRateLimit != 10 {
		t.Errorf("LoginRateLimit = %d, want 10", cfg.LoginRateLimit)
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":9090")
	os.Setenv("JWT_ISSUER", "custom-issuer")
	os.Setenv("BCRYPT_COST", "14")
	os.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9090")
	}
	if cfg.JWTIssuer != "custom-issuer" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "custom-issuer")
	}
	if cfg.BcryptCost != 14 {
		t.Errorf("BcryptCost = %d, want 14", cfg.BcryptCost)
	}
	brokers := cfg.KafkaBrokersList()
	if len(brokers) != 2 || brokers[0] != "kafka-1:9092" || brokers[1] != "kafka-2:9092" {
		t.Errorf("KafkaBrokersList = %v", brokers)
	}
}

func TestLoad_InvalidBcryptCost(t *testing.T) {
	os.Clearenv()
	os.Setenv("HTTP_ADDR", ":8080")
	os.Setenv("BCRYPT_COST", "50")

	if _, err := Load(); err == nil {
		t.Error("Load should reject BCRYPT_COST=50")
	}
}

func TestDurationAccessors(t *testing.T) {
	cfg := &Config{JWTAccessTTL: "5m", JWTRefreshTTL: "48h", LoginRateWindow: "30s"}
	if got := cfg.AccessTTL(); got != 5*time.Minute {
		t.Errorf("AccessTTL = %v", got)
	}
	if got := cfg.RefreshTTL(); got != 48*time.Hour {
		t.Errorf("RefreshTTL = %v", got)
	}
	if got := cfg.LoginWindow(); got != 30*time.Second {
		t.Errorf("LoginWindow = %v", got)
	}

	bad := &Config{JWTAccessTTL: "not-a-duration"}
	if got := bad.AccessTTL(); got != 30*time.Minute {
		t.Errorf("invalid AccessTTL should fall back to 30m, got %v", got)
	}
	if got := bad.RefreshTTL(); got != 720*time.Hour {
		t.Errorf("unset RefreshTTL should fall back to 720h, got %v", got)
	}
	if got := bad.LoginWindow(); got != time.Minute {
		t.Errorf("unset LoginWindow should fall back to 1m, got %v", got)
	}
}
