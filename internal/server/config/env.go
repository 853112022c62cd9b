package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays configuration from the process environment. A .env file
// in the working directory is loaded first if present; real environment
// variables win over it (godotenv.Load never overwrites).
//
// Recognized variables: ADDRESS, DATABASE_DSN, APP_ENV, ALLOWED_ORIGINS
// (comma-separated), SESSION_TTL, INVITE_TTL, SWEEP_INTERVAL (Go duration
// strings). Unparsable durations are ignored, keeping the previous layer's
// value.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("ADDRESS"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowedOrigins = origins
	}

	setDuration := func(name string, dst *time.Duration) {
		if v := os.Getenv(name); v != "" {
			if d, err := time.ParseDuration(v); err == nil {
				*dst = d
			}
		}
	}
	setDuration("SESSION_TTL", &cfg.SessionTTL)
	setDuration("INVITE_TTL", &cfg.InviteTTL)
	setDuration("SWEEP_INTERVAL", &cfg.SweepInterval)
}
