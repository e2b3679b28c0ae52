// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	settingsDirectory = "decorctl"
	settingsFile      = "config.yaml"
	defaultAPIURL     = "http://localhost:8080/api/v1"
)

// Settings is the persisted CLI session. Environment variables override the
// file so scripts can run without logging in.
type Settings struct {
	APIURL string `yaml:"api_url" env:"DECOR_API_URL"`
	Token  string `yaml:"token"   env:"DECOR_TOKEN"`
	Email  string `yaml:"email,omitempty"`

	// DatabaseURL is only read by the migrate commands.
	DatabaseURL   string `yaml:"-" env:"DATABASE_URL"`
	MigrationPath string `yaml:"-" env:"MIGRATION_PATH" envDefault:"./migrations"`
}

// DefaultSettingsPath returns the per-user settings file location.
func DefaultSettingsPath() (string, error) {
	directory, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cli: locate config directory: %w", err)
	}
	return filepath.Join(directory, settingsDirectory, settingsFile), nil
}

// LoadSettings reads path if it exists, then applies the environment.
func LoadSettings(path string) (Settings, error) {
	settings := Settings{}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &settings); err != nil {
			return Settings{}, fmt.Errorf("cli: parse %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return Settings{}, fmt.Errorf("cli: read %s: %w", path, err)
	}

	if err := env.Parse(&settings); err != nil {
		return Settings{}, fmt.Errorf("cli: parse environment: %w", err)
	}
	if settings.APIURL == "" {
		settings.APIURL = defaultAPIURL
	}
	settings.APIURL = strings.TrimSuffix(settings.APIURL, "/")
	return settings, nil
}

// Save writes the session with owner-only permissions.
func (settings Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("cli: create config directory: %w", err)
	}

	raw, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("cli: encode settings: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("cli: write %s: %w", path, err)
	}
	return nil
}
