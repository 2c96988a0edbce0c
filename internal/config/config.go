// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// AppName names the configuration directory under the XDG config home.
const AppName = "checkhtml"

// DefaultConfigFile is the file looked up under $XDG_CONFIG_HOME/checkhtml.
const DefaultConfigFile = "config.yml"

// Config holds the settings that are not worth a CLI flag. Every field can be
// set from the environment; a YAML file provides the same keys.
// Environment variables win over the file.
type Config struct {
	// Environment selects the log encoding: development (console) or production (JSON)
	Environment string `env:"CHECKHTML_ENVIRONMENT" env-default:"development" yaml:"environment" validate:"oneof=development production"`

	Fetch struct {
		// Timeout bounds the whole HTTP request, body included
		Timeout time.Duration `env:"CHECKHTML_TIMEOUT" env-default:"30s" yaml:"timeout" validate:"gt=0"`
		// UserAgent is sent with every request
		UserAgent string `env:"CHECKHTML_USER_AGENT" env-default:"Mozilla/5.0 (compatible; checkhtml/1.0)" yaml:"userAgent" validate:"required"`
		// Headers are extra request headers, "Name:value,Name2:value2" in the environment
		Headers map[string]string `env:"CHECKHTML_HEADERS" yaml:"headers"`
		// RenderTimeout bounds a headless browser render (--render)
		RenderTimeout time.Duration `env:"CHECKHTML_RENDER_TIMEOUT" env-default:"30s" yaml:"renderTimeout" validate:"gt=0"`
	} `yaml:"fetch"`

	// TempDir receives the temporary copy of fetched pages; empty means the system default
	TempDir string `env:"CHECKHTML_TEMP_DIR" yaml:"tempDir" validate:"omitempty,dir"`
}

// LoadConfig reads configuration from the environment and, when path is not
// empty, from the YAML file at path.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from environment: %w", err)
		}
	} else {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindConfigFile returns the config file to load. An explicit path is returned
// as is; otherwise $XDG_CONFIG_HOME/checkhtml/config.yml (and the XDG config
// dirs) are searched. An empty string means no file is used.
func FindConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}

	path, err := xdg.SearchConfigFile(filepath.Join(AppName, DefaultConfigFile))
	if err != nil {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config error: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("'%s' failed '%s' (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
}
