package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration принимает в JSON как строку ("15m", "72h"), так и число наносекунд
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
	default:
		return fmt.Errorf("invalid duration %v", v)
	}
	return nil
}

// fileConfig is the JSON layout. Pointers tell absent keys from zero values.
type fileConfig struct {
	Addr            *string   `json:"addr"`
	DatabaseDriver  *string   `json:"database_driver"`
	DatabaseDSN     *string   `json:"database_dsn"`
	JWTSecret       *string   `json:"jwt_secret"`
	TokenTTL        *Duration `json:"token_ttl"`
	BcryptCost      *int      `json:"bcrypt_cost"`
	CookieSecure    *bool     `json:"cookie_secure"`
	CORSOrigins     []string  `json:"cors_origins"`
	AuthRate        *float64  `json:"auth_rate"`
	AuthBurst       *int      `json:"auth_burst"`
	LogLevel        *string   `json:"log_level"`
	LogFormat       *string   `json:"log_format"`
	ShutdownTimeout *Duration `json:"shutdown_timeout"`
	S3              *struct {
		Endpoint  *string `json:"endpoint"`
		Region    *string `json:"region"`
		Bucket    *string `json:"bucket"`
		AccessKey *string `json:"access_key"`
		SecretKey *string `json:"secret_key"`
		PublicURL *string `json:"public_url"`
	} `json:"s3"`
}

func loadJSON(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&cfg.Addr, fc.Addr)
	setString(&cfg.DatabaseDriver, fc.DatabaseDriver)
	setString(&cfg.DatabaseDSN, fc.DatabaseDSN)
	setString(&cfg.JWTSecret, fc.JWTSecret)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	if fc.TokenTTL != nil {
		cfg.TokenTTL = time.Duration(*fc.TokenTTL)
	}
	if fc.ShutdownTimeout != nil {
		cfg.ShutdownTimeout = time.Duration(*fc.ShutdownTimeout)
	}
	if fc.BcryptCost != nil {
		cfg.BcryptCost = *fc.BcryptCost
	}
	if fc.CookieSecure != nil {
		cfg.CookieSecure = *fc.CookieSecure
	}
	if fc.CORSOrigins != nil {
		cfg.CORSOrigins = fc.CORSOrigins
	}
	if fc.AuthRate != nil {
		cfg.AuthRate = *fc.AuthRate
	}
	if fc.AuthBurst != nil {
		cfg.AuthBurst = *fc.AuthBurst
	}
	if fc.S3 != nil {
		setString(&cfg.S3.Endpoint, fc.S3.Endpoint)
		setString(&cfg.S3.Region, fc.S3.Region)
		setString(&cfg.S3.Bucket, fc.S3.Bucket)
		setString(&cfg.S3.AccessKey, fc.S3.AccessKey)
		setString(&cfg.S3.SecretKey, fc.S3.SecretKey)
		setString(&cfg.S3.PublicURL, fc.S3.PublicURL)
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
