package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "MONGO_URI", "MONGO_DB", "JWT_SECRET", "JWT_TTL_HOURS",
		"STEAM_API_URL", "STEAM_MAX_RETRIES", "STEAM_RETRY_DELAY_MS",
		"CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.MongoDB != "gamerate" {
		t.Fatalf("MongoDB = %q", cfg.MongoDB)
	}
	if cfg.JWTTTL != 168*time.Hour {
		t.Fatalf("JWTTTL = %v", cfg.JWTTTL)
	}
	if cfg.SteamMaxRetries != 3 || cfg.SteamRetryDelay != 2*time.Second {
		t.Fatalf("retry policy = %d/%v", cfg.SteamMaxRetries, cfg.SteamRetryDelay)
	}
	if len(cfg.CORSOrigins) == 0 {
		t.Fatal("no default CORS origins")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL_HOURS", "24")
	t.Setenv("STEAM_MAX_RETRIES", "5")
	t.Setenv("STEAM_RETRY_DELAY_MS", "250")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()
	if cfg.Port != "9999" || cfg.JWTSecret != "s3cret" {
		t.Fatalf("basic overrides not applied: %+v", cfg)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Fatalf("JWTTTL = %v", cfg.JWTTTL)
	}
	if cfg.SteamMaxRetries != 5 || cfg.SteamRetryDelay != 250*time.Millisecond {
		t.Fatalf("retry policy = %d/%v", cfg.SteamMaxRetries, cfg.SteamRetryDelay)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("JWT_TTL_HOURS", "soon")
	t.Setenv("STEAM_MAX_RETRIES", "-")

	cfg := Load()
	if cfg.JWTTTL != 168*time.Hour {
		t.Fatalf("JWTTTL = %v", cfg.JWTTTL)
	}
	if cfg.SteamMaxRetries != 3 {
		t.Fatalf("SteamMaxRetries = %d", cfg.SteamMaxRetries)
	}
}
