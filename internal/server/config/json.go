package config

import (
	"encoding/json"
	"os"

	"github.com/donorbase/donorbase/internal/flagx"
	"github.com/donorbase/donorbase/internal/timex"
)

// jsonConfig is the DTO for the optional JSON configuration file. Interval
// fields use timex.Duration so both "5m" strings and integer nanoseconds
// parse. Pointer fields distinguish "absent" from "zero" so the file only
// overrides what it mentions.
type jsonConfig struct {
	Addr           *string         `json:"addr"`
	DatabaseDSN    *string         `json:"database_dsn"`
	Env            *string         `json:"env"`
	AllowedOrigins []string        `json:"allowed_origins"`
	SessionTTL     *timex.Duration `json:"session_ttl"`
	InviteTTL      *timex.Duration `json:"invite_ttl"`
	SweepInterval  *timex.Duration `json:"sweep_interval"`
}

// parseJSON loads configuration values from the JSON file named by the
// -c/-config flags into cfg. If no flag is given, nothing is loaded.
// An unreadable or invalid file panics: a requested config file that cannot
// be honored should stop startup.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &jsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.Addr != nil {
		cfg.Addr = *c.Addr
	}
	if c.DatabaseDSN != nil {
		cfg.DatabaseDSN = *c.DatabaseDSN
	}
	if c.Env != nil {
		cfg.Env = *c.Env
	}
	if c.AllowedOrigins != nil {
		cfg.AllowedOrigins = c.AllowedOrigins
	}
	if c.SessionTTL != nil {
		cfg.SessionTTL = c.SessionTTL.Duration
	}
	if c.InviteTTL != nil {
		cfg.InviteTTL = c.InviteTTL.Duration
	}
	if c.SweepInterval != nil {
		cfg.SweepInterval = c.SweepInterval.Duration
	}
}
