package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	MongoURI      string
	MongoDB       string
	JWTSecret     string
	TokenTTL      time.Duration
	SignedURLTTL  time.Duration
	PublicBaseURL string
	DocumentDir   string
	PackagesFile  string
	CORSOrigins   string
	LogLevel      string
	Development   bool
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: %s=%q is not a duration, using %s", key, v, fallback)
		return fallback
	}
	return d
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("config: .env file not found, using system environment variables")
	}
	return FromEnv()
}

// FromEnv reads configuration from the process environment only.
func FromEnv() Config {
	port := getEnv("PORT", "8000")
	return Config{
		Port:          port,
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "oneasy"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTL:      getDuration("TOKEN_TTL", 72*time.Hour),
		SignedURLTTL:  getDuration("SIGNED_URL_TTL", 15*time.Minute),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:"+port),
		DocumentDir:   getEnv("DOCUMENT_DIR", "./uploads"),
		PackagesFile:  os.Getenv("PACKAGES_FILE"),
		CORSOrigins:   getEnv("CORS_ORIGINS", "*"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Development:   getEnv("APP_ENV", "production") == "development",
	}
}
