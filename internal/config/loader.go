// loader.go implements the configuration loading lifecycle.
//
// The loading sequence is:
//  1. Enforce UTC timezone to prevent drift bugs.
//  2. Load dotenv files via godotenv (the default .env is optional).
//  3. Use envconfig to process struct tags and populate the Config struct.
//  4. Populate BuildInfo from linker-injected variables.
//  5. Validate the struct using go-playground/validator.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ConfigError is a diagnostic error type returned by LoadConfig to aid debugging.
// It wraps a ConfigErrorType and an underlying error message.
type ConfigError struct {
	Type    ConfigErrorType
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// localEnv is the APP_ENV value for local development.
const localEnv = "local"

// defaultDotenv is loaded when present; its absence is not an error.
const defaultDotenv = ".env"

// LoadConfig loads and validates the configuration. Extra dotenv files may
// be named; unlike the default .env they must exist. Dotenv values never
// override variables already set in the environment.
func LoadConfig(dotenvFiles ...string) (*Config, error) {
	// Step 1: Enforce UTC timezone to prevent drift bugs.
	time.Local = time.UTC

	// Step 2: Load dotenv files.
	if err := loadDotenv(dotenvFiles); err != nil {
		return nil, err
	}

	// Step 3: Process envconfig tags. The empty prefix means tags are read
	// verbatim (envconfig:"APP_ENV" reads APP_ENV).
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, &ConfigError{
			Type:    ErrParsing,
			Message: "failed to process environment configuration",
			Err:     err,
		}
	}

	// Step 4: Populate build metadata from linker-injected variables.
	cfg.Build = NewBuildInfo()

	// Step 5: Validate the populated struct.
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return &ConfigError{
			Type:    ErrValidation,
			Message: "configuration validation failed",
			Err:     err,
		}
	}
	return nil
}

func loadDotenv(files []string) error {
	if err := godotenv.Load(defaultDotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &ConfigError{
			Type:    ErrDotenv,
			Message: fmt.Sprintf("failed to parse %s", defaultDotenv),
			Err:     err,
		}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			return &ConfigError{
				Type:    ErrDotenv,
				Message: fmt.Sprintf("failed to load dotenv file %s", f),
				Err:     err,
			}
		}
	}
	return nil
}
