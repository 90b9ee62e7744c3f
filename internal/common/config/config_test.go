package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	commonerrors "github.com/AlibekovAA/movie-watchlist/internal/common/errors"
)

const testSecret = "test-secret-key-must-be-at-least-32-bytes-long"

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"JWT_SECRET", "DATABASE_DRIVER", "DATABASE_URL", "SQLITE_PATH", "HTTP_PORT",
		"TOKEN_TTL", "REQUEST_TIMEOUT", "CORS_ORIGIN", "RUN_MIGRATIONS", "LOG_DIR", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoadAPIConfig_MissingSecret(t *testing.T) {
	isolateEnv(t)

	_, err := LoadAPIConfig()
	if !errors.Is(err, commonerrors.ErrMissingRequiredEnv) {
		t.Fatalf("expected ErrMissingRequiredEnv, got %v", err)
	}
}

func TestLoadAPIConfig_ShortSecret(t *testing.T) {
	isolateEnv(t)
	t.Setenv("JWT_SECRET", "short")

	_, err := LoadAPIConfig()
	if !errors.Is(err, commonerrors.ErrInvalidJWTSecret) {
		t.Fatalf("expected ErrInvalidJWTSecret, got %v", err)
	}
}

func TestLoadAPIConfig_PostgresRequiresURL(t *testing.T) {
	isolateEnv(t)
	t.Setenv("JWT_SECRET", testSecret)

	_, err := LoadAPIConfig()
	if !errors.Is(err, commonerrors.ErrMissingRequiredEnv) {
		t.Fatalf("expected ErrMissingRequiredEnv for DATABASE_URL, got %v", err)
	}
}

func TestLoadAPIConfig_SQLiteDefaults(t *testing.T) {
	isolateEnv(t)
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DATABASE_DRIVER", "SQLite")

	cfg, err := LoadAPIConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.DatabaseDriver != DriverSQLite {
		t.Errorf("expected sqlite driver, got %s", cfg.DatabaseDriver)
	}
	if cfg.HTTPPort != "3000" {
		t.Errorf("expected default port 3000, got %s", cfg.HTTPPort)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected 24h token ttl, got %v", cfg.TokenTTL)
	}
	if cfg.CORSOrigin != "http://localhost:5173" {
		t.Errorf("unexpected cors origin %s", cfg.CORSOrigin)
	}
	if !cfg.RunMigrations {
		t.Error("expected migrations enabled by default")
	}
}

func TestLoadAPIConfig_UnsupportedDriver(t *testing.T) {
	isolateEnv(t)
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DATABASE_DRIVER", "oracle")

	_, err := LoadAPIConfig()
	if !errors.Is(err, commonerrors.ErrUnsupportedDriver) {
		t.Fatalf("expected ErrUnsupportedDriver, got %v", err)
	}
}

func TestLoadAPIConfig_DotEnvFile(t *testing.T) {
	isolateEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "JWT_SECRET=" + testSecret + "\nDATABASE_DRIVER=sqlite\nHTTP_PORT=4000\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("ENV_FILE", envFile)
	t.Cleanup(func() {
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("DATABASE_DRIVER")
		os.Unsetenv("HTTP_PORT")
	})

	cfg, err := LoadAPIConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "4000" {
		t.Errorf("expected port from .env, got %s", cfg.HTTPPort)
	}
	if cfg.JWTSecret != testSecret {
		t.Error("expected secret from .env")
	}
}

func TestGetDurationEnv(t *testing.T) {
	t.Setenv("SOME_TTL", "")
	got, err := getDurationEnv("SOME_TTL", time.Minute)
	if err != nil || got != time.Minute {
		t.Errorf("expected fallback for empty value, got %v, %v", got, err)
	}

	t.Setenv("SOME_TTL", "90s")
	got, err = getDurationEnv("SOME_TTL", time.Minute)
	if err != nil || got != 90*time.Second {
		t.Errorf("expected 90s, got %v, %v", got, err)
	}

	for _, bad := range []string{"garbage", "24", "-1h", "0s"} {
		t.Setenv("SOME_TTL", bad)
		if _, err := getDurationEnv("SOME_TTL", time.Minute); !errors.Is(err, commonerrors.ErrInvalidEnv) {
			t.Errorf("%q: expected ErrInvalidEnv, got %v", bad, err)
		}
	}
}

func TestLoadAPIConfig_InvalidDurationsAreFatal(t *testing.T) {
	for _, key := range []string{"TOKEN_TTL", "REQUEST_TIMEOUT"} {
		t.Run(key, func(t *testing.T) {
			isolateEnv(t)
			t.Setenv("JWT_SECRET", testSecret)
			t.Setenv("DATABASE_DRIVER", "sqlite")
			t.Setenv(key, "1 day")

			_, err := LoadAPIConfig()
			if !errors.Is(err, commonerrors.ErrInvalidEnv) {
				t.Fatalf("expected ErrInvalidEnv, got %v", err)
			}
		})
	}
}

func TestLoadAPIConfig_InvalidRunMigrations(t *testing.T) {
	isolateEnv(t)
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("RUN_MIGRATIONS", "sometimes")

	_, err := LoadAPIConfig()
	if !errors.Is(err, commonerrors.ErrInvalidEnv) {
		t.Fatalf("expected ErrInvalidEnv, got %v", err)
	}
}
