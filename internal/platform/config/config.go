package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	APIPort string
	JWTKey  []byte
	JWTExp  time.Duration

	DBConnStr string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	// ExposePasswordHashes keeps the legacy behavior of /admin/all returning
	// bcrypt hashes. Off by default.
	ExposePasswordHashes bool
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, relying on environment variables")
	}

	dbConnStr := os.Getenv("DATABASE_URL")
	if dbConnStr == "" {
		logrus.Fatal("DATABASE_URL environment variable is missing")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logrus.Fatal("JWT_SECRET environment variable is missing")
	}

	AppConfig = &Config{
		APIPort:              getEnv("PORT", "4000"),
		JWTKey:               []byte(jwtSecret),
		JWTExp:               time.Duration(getEnvAsInt("JWT_EXPIRATION_MINUTES", 60)) * time.Minute,
		DBConnStr:            dbConnStr,
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:              getEnvAsInt("REDIS_DB", 0),
		CacheTTL:             time.Duration(getEnvAsInt("CACHE_TTL_SECONDS", 60)) * time.Second,
		ExposePasswordHashes: getEnvAsBool("EXPOSE_PASSWORD_HASHES", false),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}
