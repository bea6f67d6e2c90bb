package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// EnvProduction is the REPORT_ENV value that enables production behaviour.
const EnvProduction = "production"

// Config holds application configuration.
type Config struct {
	Addr string
	Env  string

	Store         string
	DBPath        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// CSRFKeyHex is the hex-encoded 32-byte CSRF secret. Empty means generate one (dev only).
	CSRFKeyHex     string
	TrustedOrigins []string

	SlowQueryMs   int
	SlowRequestMs int
	PageNote      string
	LogLevel      slog.Level
}

// Production reports whether the app runs with production settings.
func (c Config) Production() bool {
	return c.Env == EnvProduction
}

// Load reads a .env file when present, then the REPORT_* environment variables.
// PRE: none
// POST: Returns a validated Config or an error naming the offending variable
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:          envOrDefault("REPORT_ADDR", ":8080"),
		Env:           envOrDefault("REPORT_ENV", "development"),
		Store:         strings.ToLower(envOrDefault("REPORT_STORE", StoreSQLite)),
		DBPath:        envOrDefault("REPORT_DB_PATH", "coursereport.db"),
		RedisAddr:     envOrDefault("REPORT_REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REPORT_REDIS_PASSWORD"),
		CSRFKeyHex:    os.Getenv("REPORT_CSRF_KEY"),
		PageNote:      os.Getenv("REPORT_PAGE_NOTE"),
	}
	if origins := os.Getenv("REPORT_TRUSTED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.TrustedOrigins = append(cfg.TrustedOrigins, o)
			}
		}
	}

	var err error
	if cfg.RedisDB, err = envInt("REPORT_REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.SlowQueryMs, err = envInt("REPORT_SLOW_QUERY_MS", 50); err != nil {
		return Config{}, err
	}
	if cfg.SlowRequestMs, err = envInt("REPORT_SLOW_REQUEST_MS", 200); err != nil {
		return Config{}, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(envOrDefault("REPORT_LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("REPORT_LOG_LEVEL: %w", err)
	}

	if cfg.Store != StoreSQLite && cfg.Store != StoreRedis {
		return Config{}, fmt.Errorf("REPORT_STORE must be %q or %q, got %q", StoreSQLite, StoreRedis, cfg.Store)
	}
	if cfg.Production() && cfg.CSRFKeyHex == "" {
		return Config{}, errors.New("REPORT_CSRF_KEY is required in production")
	}
	return cfg, nil
}

// CSRFKey decodes REPORT_CSRF_KEY (hex-encoded, 32 bytes).
// In development an unset key is replaced by a random one per startup; generated reports true.
func (c Config) CSRFKey() (key []byte, generated bool, err error) {
	if c.CSRFKeyHex != "" {
		key, err := hex.DecodeString(c.CSRFKeyHex)
		if err != nil || len(key) != 32 {
			return nil, false, errors.New("REPORT_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key, false, nil
	}
	if c.Production() {
		return nil, false, errors.New("REPORT_CSRF_KEY is required in production")
	}
	key = make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, false, fmt.Errorf("generate CSRF key: %w", err)
	}
	return key, true, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
