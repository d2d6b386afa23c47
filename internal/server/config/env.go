package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// parseEnv overlays Config with environment variables, after loading a
// dotenv file. The file never overrides variables that are already set.
// A missing default file is not an error; a missing file named with -env is.
func parseEnv(cfg *Config, args []string) {
	if path := flagx.EnvFileFlag(args); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else {
		_ = godotenv.Load(defaultEnvFile)
	}

	cfg.EndpointAddrHTTP = getEnv("HTTP_ADDRESS", cfg.EndpointAddrHTTP)
	cfg.EndpointAddrGRPC = getEnv("GRPC_ADDRESS", cfg.EndpointAddrGRPC)
	cfg.StoreKind = getEnv("STORE", cfg.StoreKind)
	cfg.MongoURI = getEnv("MONGODB_URI", cfg.MongoURI)
	cfg.MongoDatabase = getEnv("MONGODB_DATABASE", cfg.MongoDatabase)
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", cfg.DatabaseDSN)
	cfg.FirestoreProjectID = getEnv("FIRESTORE_PROJECT", cfg.FirestoreProjectID)
	cfg.SecretKey = getEnv("JWT_SECRET", cfg.SecretKey)
	cfg.TokenValidityDuration = getEnvAsDuration("TOKEN_VALIDITY", cfg.TokenValidityDuration)
	cfg.BcryptCost = getEnvAsInt("BCRYPT_COST", cfg.BcryptCost)
	cfg.OwnershipMode = getEnv("OWNERSHIP_MODE", cfg.OwnershipMode)
	cfg.CORSAllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", cfg.CORSAllowedOrigins)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.HealthCheckInterval = getEnvAsDuration("HEALTH_CHECK_INTERVAL", cfg.HealthCheckInterval)
}

func getEnv(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	return splitList(raw)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
