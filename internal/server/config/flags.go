package config

import (
	"flag"
	"os"
	"strings"

	"github.com/donorbase/donorbase/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-e string   environment ("development" or "production")
//	-o string   comma-separated allowed CORS origins
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with the config-file flags.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-e", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "address and port to run server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.Env, "e", cfg.Env, "environment (development or production)")

	origins := fs.String("o", strings.Join(cfg.AllowedOrigins, ","), "comma-separated allowed CORS origins")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *origins != "" {
		var parsed []string
		for _, o := range strings.Split(*origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				parsed = append(parsed, o)
			}
		}
		cfg.AllowedOrigins = parsed
	}
}
