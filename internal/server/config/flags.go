package config

import (
	"flag"
	"io"
	"strings"
	"time"
)

type flagValues struct {
	set        map[string]bool
	configPath string
	addr       string
	driver     string
	dsn        string
	logLevel   string
	logFormat  string
	cors       string
	tokenTTL   time.Duration
	shutdown   time.Duration
	cost       int
	secure     bool
}

// parseFlags разбирает флаги до чтения остальных источников: путь к JSON
// нужен раньше всего, а значения флагов применяются последними через apply
func parseFlags(args []string, defaults *Config) (*flagValues, error) {
	fv := &flagValues{set: make(map[string]bool)}

	fs := flag.NewFlagSet("learnhub-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&fv.configPath, "config", "", "path to JSON config file")
	fs.StringVar(&fv.addr, "addr", defaults.Addr, "address and port to listen on")
	fs.StringVar(&fv.driver, "db-driver", defaults.DatabaseDriver, "database driver: sqlite or postgres")
	fs.StringVar(&fv.dsn, "db-dsn", defaults.DatabaseDSN, "database DSN or sqlite file path")
	fs.StringVar(&fv.logLevel, "log-level", defaults.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&fv.logFormat, "log-format", defaults.LogFormat, "log format: text or json")
	fs.StringVar(&fv.cors, "cors-origins", strings.Join(defaults.CORSOrigins, ","), "comma separated allowed origins")
	fs.DurationVar(&fv.tokenTTL, "token-ttl", defaults.TokenTTL, "token validity")
	fs.DurationVar(&fv.shutdown, "shutdown-timeout", defaults.ShutdownTimeout, "graceful shutdown timeout")
	fs.IntVar(&fv.cost, "bcrypt-cost", defaults.BcryptCost, "bcrypt cost")
	fs.BoolVar(&fv.secure, "cookie-secure", defaults.CookieSecure, "set Secure on the JWT cookie")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		fv.set[f.Name] = true
	})
	return fv, nil
}

// apply переносит в cfg только явно заданные флаги
func (fv *flagValues) apply(cfg *Config) {
	if fv.set["addr"] {
		cfg.Addr = fv.addr
	}
	if fv.set["db-driver"] {
		cfg.DatabaseDriver = fv.driver
	}
	if fv.set["db-dsn"] {
		cfg.DatabaseDSN = fv.dsn
	}
	if fv.set["log-level"] {
		cfg.LogLevel = fv.logLevel
	}
	if fv.set["log-format"] {
		cfg.LogFormat = fv.logFormat
	}
	if fv.set["cors-origins"] {
		cfg.CORSOrigins = splitList(fv.cors)
	}
	if fv.set["token-ttl"] {
		cfg.TokenTTL = fv.tokenTTL
	}
	if fv.set["shutdown-timeout"] {
		cfg.ShutdownTimeout = fv.shutdown
	}
	if fv.set["bcrypt-cost"] {
		cfg.BcryptCost = fv.cost
	}
	if fv.set["cookie-secure"] {
		cfg.CookieSecure = fv.secure
	}
}
