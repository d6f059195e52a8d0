package config

import (
	"fmt"
	"strconv"
	"time"
)

// loadEnv читает LEARNHUB_* переменные; JWT_SECRET и DATABASE_URL поддерживаются
// как общепринятые имена, но LEARNHUB_* имеют приоритет
func loadEnv(getenv func(string) string, cfg *Config) error {
	str := func(dst *string, names ...string) {
		for _, name := range names {
			if v := getenv(name); v != "" {
				*dst = v
				return
			}
		}
	}

	str(&cfg.Addr, "LEARNHUB_ADDR")
	str(&cfg.DatabaseDriver, "LEARNHUB_DB_DRIVER")
	str(&cfg.DatabaseDSN, "LEARNHUB_DB_DSN", "DATABASE_URL")
	str(&cfg.JWTSecret, "LEARNHUB_JWT_SECRET", "JWT_SECRET")
	str(&cfg.LogLevel, "LEARNHUB_LOG_LEVEL")
	str(&cfg.LogFormat, "LEARNHUB_LOG_FORMAT")
	str(&cfg.S3.Endpoint, "LEARNHUB_S3_ENDPOINT")
	str(&cfg.S3.Region, "LEARNHUB_S3_REGION")
	str(&cfg.S3.Bucket, "LEARNHUB_S3_BUCKET")
	str(&cfg.S3.AccessKey, "LEARNHUB_S3_ACCESS_KEY")
	str(&cfg.S3.SecretKey, "LEARNHUB_S3_SECRET_KEY")
	str(&cfg.S3.PublicURL, "LEARNHUB_S3_PUBLIC_URL")

	if v := getenv("LEARNHUB_CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}

	durations := []struct {
		dst  *time.Duration
		name string
	}{
		{&cfg.TokenTTL, "LEARNHUB_TOKEN_TTL"},
		{&cfg.ShutdownTimeout, "LEARNHUB_SHUTDOWN_TIMEOUT"},
	}
	for _, d := range durations {
		if v := getenv(d.name); v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", d.name, err)
			}
			*d.dst = parsed
		}
	}

	ints := []struct {
		dst  *int
		name string
	}{
		{&cfg.BcryptCost, "LEARNHUB_BCRYPT_COST"},
		{&cfg.AuthBurst, "LEARNHUB_AUTH_BURST"},
	}
	for _, i := range ints {
		if v := getenv(i.name); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", i.name, err)
			}
			*i.dst = parsed
		}
	}

	if v := getenv("LEARNHUB_AUTH_RATE"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("LEARNHUB_AUTH_RATE: %w", err)
		}
		cfg.AuthRate = parsed
	}
	if v := getenv("LEARNHUB_COOKIE_SECURE"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LEARNHUB_COOKIE_SECURE: %w", err)
		}
		cfg.CookieSecure = parsed
	}
	return nil
}
