package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverMongo     = "mongo"
	DriverFirestore = "firestore"
)

type Config struct {
	ServerPort      string
	DatabaseURI     string
	DatabaseName    string
	StoreDriver     string
	FirebaseProject string
	GoogleCredsJSON string
	StorageBucket   string
	UploadDir       string
	PublicBaseURL   string
	StaticDir       string
	Environment     string
	LogLevel        string
	JWTSecret       string
	JWTExpiry       int64
	RedisURL        string
	CacheTTL        int64
	RateLimitRPM    int
}

func Load() (*Config, error) {
	godotenv.Load()

	port := getEnv("PORT", "5000")

	config := &Config{
		ServerPort:      port,
		DatabaseURI:     getEnv("URI_DB", ""),
		DatabaseName:    getEnv("DB_NAME", "lugares_seguros"),
		StoreDriver:     strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		FirebaseProject: getEnv("FIREBASE_PROJECT_ID", ""),
		GoogleCredsJSON: getEnv("GOOGLE_APPLICATION_CREDENTIALS_JSON", ""),
		StorageBucket:   getEnv("STORAGE_BUCKET", ""),
		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		PublicBaseURL:   strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:"+port), "/"),
		StaticDir:       getEnv("STATIC_DIR", "public"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		JWTSecret:       getEnv("JWT_SECRET", "lugares-seguros-dev-secret"),
		JWTExpiry:       getEnvAsInt64("JWT_EXPIRY", 0), // 0 = tokens never expire
		RedisURL:        getEnv("REDIS_URL", ""),
		CacheTTL:        getEnvAsInt64("CACHE_TTL", 60),
		RateLimitRPM:    int(getEnvAsInt64("RATE_LIMIT_RPM", 0)),
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
