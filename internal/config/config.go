package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is loaded once at startup from the environment. Nothing in
// here is mutable mid-game; the engine depth and board geometry are
// fixed for the lifetime of the process.
type Config struct {
	Port                 string
	FrontendURL          string
	AllowedOrigins       []string
	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
	RedisAddr            string
	RedisPassword        string
	KafkaBrokers         []string
	KafkaTopic           string
	JWTSecret            string
	TokenTTLHours        int
	EngineDepth          int
	MatchmakingTimeout   time.Duration
	OAuth                OAuthConfig
}

func Load() *Config {
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")

	allowedOrigins := []string{frontendURL}
	if extra := GetEnv("ALLOWED_ORIGINS", ""); extra != "" {
		for _, origin := range strings.Split(extra, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	var brokers []string
	if raw := GetEnv("KAFKA_BROKERS", ""); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(b); trimmed != "" {
				brokers = append(brokers, trimmed)
			}
		}
	}

	return &Config{
		Port:                 GetEnv("PORT", "8080"),
		FrontendURL:          frontendURL,
		AllowedOrigins:       allowedOrigins,
		DatabaseURL:          GetEnv("DATABASE_URL", ""),
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),
		RedisAddr:            GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:        GetEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:         brokers,
		KafkaTopic:           GetEnv("KAFKA_TOPIC", "dropfour.events"),
		JWTSecret:            GetEnv("JWT_SECRET", "change-this-in-production"),
		TokenTTLHours:        GetEnvAsInt("TOKEN_TTL_HOURS", 24),
		EngineDepth:          GetEnvAsInt("ENGINE_DEPTH", 5),
		MatchmakingTimeout:   time.Duration(GetEnvAsInt("MATCHMAKING_TIMEOUT_SECONDS", 10)) * time.Second,
		OAuth:                LoadOAuthConfig(frontendURL),
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
