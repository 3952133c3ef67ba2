package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config collects all process-wide settings. It is constructed once at
// startup and passed by reference into every component; nothing in the
// service reads the environment after this point.
type Config struct {
	ServerPort string
	Production bool

	JWTSecret  string
	SessionTTL time.Duration

	BcryptCost int

	// Account number that is promoted to admin on registration. Empty
	// disables the promotion path.
	InitialAdminAccount string
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:          os.Getenv("SERVER_PORT"),
		Production:          os.Getenv("APP_ENV") == "production",
		JWTSecret:           os.Getenv("JWT_SECRET_KEY"),
		SessionTTL:          time.Hour,
		BcryptCost:          12,
		InitialAdminAccount: os.Getenv("INITIAL_ADMIN_ACCOUNT"),
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}

	if v := os.Getenv("SESSION_TTL_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 {
			return nil, fmt.Errorf("invalid SESSION_TTL_MINUTES %q", v)
		}
		cfg.SessionTTL = time.Duration(minutes) * time.Minute
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil || cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, fmt.Errorf("invalid BCRYPT_COST %q", v)
		}
		cfg.BcryptCost = cost
	}

	return cfg, nil
}
