package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var reportVars = []string{
	"REPORT_ADDR", "REPORT_ENV", "REPORT_STORE", "REPORT_DB_PATH",
	"REPORT_REDIS_ADDR", "REPORT_REDIS_PASSWORD", "REPORT_REDIS_DB",
	"REPORT_CSRF_KEY", "REPORT_TRUSTED_ORIGINS", "REPORT_SLOW_QUERY_MS",
	"REPORT_SLOW_REQUEST_MS", "REPORT_PAGE_NOTE", "REPORT_LOG_LEVEL",
}

// clearEnv blanks every REPORT_* variable for the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range reportVars {
		t.Setenv(k, "")
	}
}

// TestFromEnv_Defaults verifies the development defaults.
func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.Store != StoreSQLite || cfg.DBPath != "coursereport.db" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.SlowQueryMs != 50 || cfg.SlowRequestMs != 200 {
		t.Errorf("thresholds = %d/%d", cfg.SlowQueryMs, cfg.SlowRequestMs)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want INFO", cfg.LogLevel)
	}
	if cfg.Production() {
		t.Error("default env should not be production")
	}
}

// TestFromEnv_Overrides reads every variable.
func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("REPORT_ADDR", ":9000")
	t.Setenv("REPORT_STORE", "Redis")
	t.Setenv("REPORT_REDIS_ADDR", "cache:6379")
	t.Setenv("REPORT_REDIS_DB", "3")
	t.Setenv("REPORT_SLOW_QUERY_MS", "10")
	t.Setenv("REPORT_LOG_LEVEL", "debug")
	t.Setenv("REPORT_TRUSTED_ORIGINS", "admin.example.com, lms.example.com ,")
	t.Setenv("REPORT_PAGE_NOTE", "**hi**")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.Store != StoreRedis || cfg.RedisAddr != "cache:6379" || cfg.RedisDB != 3 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.SlowQueryMs != 10 || cfg.LogLevel != slog.LevelDebug || cfg.PageNote != "**hi**" {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.TrustedOrigins) != 2 || cfg.TrustedOrigins[1] != "lms.example.com" {
		t.Errorf("TrustedOrigins = %v", cfg.TrustedOrigins)
	}
}

// TestFromEnv_Invalid rejects malformed values.
func TestFromEnv_Invalid(t *testing.T) {
	cases := []struct {
		key, value, wantErr string
	}{
		{"REPORT_REDIS_DB", "zero", "REPORT_REDIS_DB"},
		{"REPORT_SLOW_REQUEST_MS", "fast", "REPORT_SLOW_REQUEST_MS"},
		{"REPORT_LOG_LEVEL", "chatty", "REPORT_LOG_LEVEL"},
		{"REPORT_STORE", "mysql", "REPORT_STORE"},
		{"REPORT_ENV", "production", "REPORT_CSRF_KEY"},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)
			_, err := FromEnv()
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("err = %v, want mention of %s", err, tc.wantErr)
			}
		})
	}
}

// TestCSRFKey covers explicit, generated and invalid keys.
func TestCSRFKey(t *testing.T) {
	explicit := Config{CSRFKeyHex: strings.Repeat("ab", 32)}
	key, generated, err := explicit.CSRFKey()
	if err != nil || generated || len(key) != 32 || key[0] != 0xab {
		t.Errorf("explicit: key=%x generated=%v err=%v", key, generated, err)
	}

	dev := Config{Env: "development"}
	key, generated, err = dev.CSRFKey()
	if err != nil || !generated || len(key) != 32 {
		t.Errorf("dev: len=%d generated=%v err=%v", len(key), generated, err)
	}

	if _, _, err := (Config{CSRFKeyHex: "abcd"}).CSRFKey(); err == nil {
		t.Error("short key accepted")
	}
	if _, _, err := (Config{Env: EnvProduction}).CSRFKey(); err == nil {
		t.Error("production without key accepted")
	}
}

// TestLoad_DotEnv reads variables from a .env file in the working directory.
func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("REPORT_ADDR")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("REPORT_ADDR=:7070\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("Addr = %q, want :7070", cfg.Addr)
	}
}

// TestLoad_NoDotEnv falls back to the environment.
func TestLoad_NoDotEnv(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	if _, err := Load(); err != nil {
		t.Fatalf("Load without .env: %v", err)
	}
}
