package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageFirestore = "firestore"
	StorageMemory    = "memory"
)

type Config struct {
	ServerPort      string
	Environment     string
	StorageDriver   string
	FirebaseProject string

	// Firebase credentials, JSON takes precedence over the file path
	ServiceAccountJSON string
	ServiceAccountPath string

	DevAdminToken string
	DevAdminUID   string

	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	DirectoryCacheTTL time.Duration

	AdminRateLimitRPS   float64
	AdminRateLimitBurst int

	// Complaints a single user may file per hour
	ComplaintsPerHour int

	DefaultPageLimit int
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		StorageDriver:   getEnv("STORAGE_DRIVER", StorageFirestore),
		FirebaseProject: getEnv("FIREBASE_PROJECT_ID", ""),

		ServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		ServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),

		DevAdminToken: getEnv("DEV_ADMIN_TOKEN", ""),
		DevAdminUID:   getEnv("DEV_ADMIN_UID", "dev-admin"),

		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           int(getEnvAsInt64("REDIS_DB", 0)),
		DirectoryCacheTTL: time.Duration(getEnvAsInt64("DIRECTORY_CACHE_TTL_SECONDS", 300)) * time.Second,

		AdminRateLimitRPS:   getEnvAsFloat("ADMIN_RATE_LIMIT_RPS", 5),
		AdminRateLimitBurst: int(getEnvAsInt64("ADMIN_RATE_LIMIT_BURST", 20)),
		ComplaintsPerHour:   int(getEnvAsInt64("COMPLAINTS_PER_HOUR", 10)),

		DefaultPageLimit: int(getEnvAsInt64("DEFAULT_PAGE_LIMIT", 10)),
	}

	return config, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		floatValue, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return floatValue
		}
	}
	return defaultValue
}
