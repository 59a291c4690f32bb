package config

import "time"

const (
	DefaultHTTPPort        = "8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	// DefaultAttemptBudget is the time allowed for one transaction attempt
	// when sizing the server timeouts against the retry schedule.
	DefaultAttemptBudget = 5 * time.Second
	DefaultPGMaxConns    = 10
	DefaultPGMinConns    = 1
	DefaultReadyTimeout  = 2 * time.Second
	DefaultMaxBodyBytes  = 1 << 20
)
