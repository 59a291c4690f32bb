package config

import (
	"os"
	"strconv"
	"time"

	infraconfig "inventory-admin/internal/infrastructure/config"
	"inventory-admin/internal/transaction"
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	// API
	Port            string
	ShutdownTimeout time.Duration
	// Storage
	Storage     string
	DatabaseURL string
	// Idempotency
	IdempotencyBackend string
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	RedisTTL           time.Duration
	// Retry
	RetryInitialDelay time.Duration
	RetryMultiplier   float64
	RetryMaxDelay     time.Duration
	RetryMaxAttempts  int
	// Worker
	ReorderScanEvery time.Duration
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func atofDef(s string, def float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

func msDef(key string, def int) time.Duration {
	return time.Duration(atoiDef(getEnv(key, ""), def)) * time.Millisecond
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		Env:                getEnv("ENV", "local"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Port:               getEnv("PORT", infraconfig.DefaultHTTPPort),
		ShutdownTimeout:    msDef("SHUTDOWN_TIMEOUT_MS", 10000),
		Storage:            getEnv("STORAGE", "pg"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		IdempotencyBackend: getEnv("IDEMPOTENCY_BACKEND", "none"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            atoiDef(getEnv("REDIS_DB", "0"), 0),
		RedisTTL:           msDef("IDEMPOTENCY_TTL_MS", 86400000),
		RetryInitialDelay:  msDef("RETRY_INITIAL_DELAY_MS", 5000),
		RetryMultiplier:    atofDef(getEnv("RETRY_MULTIPLIER", "2"), 2),
		RetryMaxDelay:      msDef("RETRY_MAX_DELAY_MS", 60000),
		RetryMaxAttempts:   atoiDef(getEnv("RETRY_MAX_ATTEMPTS", "4"), 4),
		ReorderScanEvery:   msDef("REORDER_SCAN_MS", 60000),
	}
}

// RetrySchedule builds the orchestrator schedule. It is checked by
// transaction.New.
func (c Config) RetrySchedule() transaction.Schedule {
	return transaction.Schedule{
		InitialDelay: c.RetryInitialDelay,
		Multiplier:   c.RetryMultiplier,
		MaxDelay:     c.RetryMaxDelay,
		MaxAttempts:  c.RetryMaxAttempts,
	}
}
