package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/AlibekovAA/movie-watchlist/internal/common/constants"
	commonerrors "github.com/AlibekovAA/movie-watchlist/internal/common/errors"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type APIConfig struct {
	HTTPPort       string
	DatabaseDriver string
	DatabaseURL    string
	SQLitePath     string
	JWTSecret      string
	TokenTTL       time.Duration
	RequestTimeout time.Duration
	CORSOrigin     string
	RunMigrations  bool
	LogDir         string
	LogLevel       string
}

// LoadAPIConfig reads the process environment, after merging an optional
// .env file (ENV_FILE overrides its location). Variables already present
// in the environment win over the file.
func LoadAPIConfig() (APIConfig, error) {
	if err := loadDotEnv(getEnv("ENV_FILE", ".env")); err != nil {
		return APIConfig{}, err
	}

	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return APIConfig{}, err
	}

	if err := validateJWTSecret(jwtSecret); err != nil {
		return APIConfig{}, err
	}

	tokenTTL, err := getDurationEnv("TOKEN_TTL", constants.DefaultTokenTTL)
	if err != nil {
		return APIConfig{}, err
	}

	requestTimeout, err := getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout)
	if err != nil {
		return APIConfig{}, err
	}

	runMigrations, err := getBoolEnv("RUN_MIGRATIONS", true)
	if err != nil {
		return APIConfig{}, err
	}

	driver := strings.ToLower(getEnv("DATABASE_DRIVER", constants.DefaultDatabaseDriver))

	cfg := APIConfig{
		HTTPPort:       getEnv("HTTP_PORT", constants.DefaultHTTPPort),
		DatabaseDriver: driver,
		SQLitePath:     getEnv("SQLITE_PATH", constants.DefaultSQLitePath),
		JWTSecret:      jwtSecret,
		TokenTTL:       tokenTTL,
		RequestTimeout: requestTimeout,
		CORSOrigin:     getEnv("CORS_ORIGIN", constants.DefaultCORSOrigin),
		RunMigrations:  runMigrations,
		LogDir:         getEnv("LOG_DIR", ""),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
	}

	switch driver {
	case DriverPostgres:
		cfg.DatabaseURL, err = mustEnv("DATABASE_URL")
		if err != nil {
			return APIConfig{}, err
		}
	case DriverSQLite:
	default:
		return APIConfig{}, fmt.Errorf("%w: %q", commonerrors.ErrUnsupportedDriver, driver)
	}

	return cfg, nil
}

func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func validateJWTSecret(secret string) error {
	if len(secret) < constants.JWTSecretMinLength {
		return fmt.Errorf("%w: got %d bytes", commonerrors.ErrInvalidJWTSecret, len(secret))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", commonerrors.ErrMissingRequiredEnv, key)
	}
	return v, nil
}

// getDurationEnv returns fallback when key is unset or empty. A value that
// does not parse as a positive duration is an error.
func getDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %v", commonerrors.ErrInvalidEnv, key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive, got %s", commonerrors.ErrInvalidEnv, key, v)
	}
	return d, nil
}

func getBoolEnv(key string, fallback bool) (bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q: %v", commonerrors.ErrInvalidEnv, key, v, err)
	}
	return b, nil
}
