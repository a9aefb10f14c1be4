package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port            string
	MongoURI        string
	MongoDB         string
	JWTSecret       string
	JWTTTL          time.Duration
	RedisAddr       string
	RedisPassword   string
	MinioEndpoint   string
	MinioAccessKey  string
	MinioSecretKey  string
	MinioBucket     string
	MinioUseSSL     bool
	SteamAPIURL     string
	SteamMaxRetries int
	SteamRetryDelay time.Duration
	CORSOrigins     []string
}

func Load() *Config {
	return &Config{
		Port:            getenv("PORT", "8080"),
		MongoURI:        getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getenv("MONGO_DB", "gamerate"),
		JWTSecret:       getenv("JWT_SECRET", ""),
		JWTTTL:          time.Duration(getint("JWT_TTL_HOURS", 168)) * time.Hour,
		RedisAddr:       getenv("REDIS_ADDR", "redis:6379"),
		RedisPassword:   getenv("REDIS_PASSWORD", ""),
		MinioEndpoint:   getenv("MINIO_ENDPOINT", "minio:9000"),
		MinioAccessKey:  getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey:  getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:     getenv("MINIO_BUCKET", "gamerate-avatars"),
		MinioUseSSL:     getenv("MINIO_USE_SSL", "false") == "true",
		SteamAPIURL:     getenv("STEAM_API_URL", "http://localhost:3001"),
		SteamMaxRetries: getint("STEAM_MAX_RETRIES", 3),
		SteamRetryDelay: time.Duration(getint("STEAM_RETRY_DELAY_MS", 2000)) * time.Millisecond,
		CORSOrigins:     getcsv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:8080"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getcsv(key, fallback string) []string {
	var out []string
	for _, part := range strings.Split(getenv(key, fallback), ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
