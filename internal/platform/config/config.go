// Copyright (c) 2026 JoycDecor. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, and 'joho/godotenv' to pre-load a local .env file during development.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, asset store) via constructors.
  - Cross-field rules: Backend-specific keys are checked with struct tags after parsing.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// # Asset Backends

const (
	// AssetBackendCloudinary stores media on Cloudinary (default, matches existing URLs).
	AssetBackendCloudinary = "cloudinary"

	// AssetBackendS3 stores media on an S3-compatible bucket (AWS, R2, MinIO).
	AssetBackendS3 = "s3"
)

// # Configuration Schema

// Config holds all runtime configuration for the JoycDecor API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development" validate:"oneof=development staging production"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Cryptographic keys for identity signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Asset store selection
	AssetBackend string `env:"ASSET_BACKEND" envDefault:"cloudinary" validate:"oneof=cloudinary s3"`

	// Cloudinary credentials (required when AssetBackend is cloudinary)
	CloudinaryCloudName    string `env:"CLOUDINARY_CLOUD_NAME"    validate:"required_if=AssetBackend cloudinary"`
	CloudinaryAPIKey       string `env:"CLOUDINARY_API_KEY"       validate:"required_if=AssetBackend cloudinary"`
	CloudinaryAPISecret    string `env:"CLOUDINARY_API_SECRET"    validate:"required_if=AssetBackend cloudinary"`
	CloudinaryUploadPreset string `env:"CLOUDINARY_UPLOAD_PRESET" envDefault:"event_decorations"`

	// Object Storage (Cloudflare R2 / S3-compatible, required when AssetBackend is s3)
	S3Bucket          string `env:"S3_BUCKET"     validate:"required_if=AssetBackend s3"`
	S3Region          string `env:"S3_REGION"     envDefault:"auto"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3PublicURL       string `env:"S3_PUBLIC_URL" validate:"required_if=AssetBackend s3,omitempty,url"`

	// Outbound mail (password reset)
	SMTPHost     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	// PublicSiteURL is the storefront origin used to build links in emails.
	PublicSiteURL string `env:"PUBLIC_SITE_URL" envDefault:"http://localhost:3000" validate:"url"`

	// WhatsAppNumber receives enquiries, in international format without '+'.
	WhatsAppNumber string `env:"WHATSAPP_NUMBER" envDefault:"918072287335" validate:"numeric"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
//
// A .env file in the working directory is loaded first when present. Variables
// already set in the process environment always win over the file.
func Load() (*Config, error) {

	// Optional .env for local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the cross-field rules declared in the `validate` struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: invalid configuration: %w", err)
	}
	return nil
}

// ListenPort returns the TCP port the HTTP server binds.
func (c *Config) ListenPort() string {
	return c.ServerPort
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the storefront origin plus any EXTRA_ORIGINS entries.
func (c *Config) AllowedOrigins() []string {
	origins := []string{strings.TrimRight(c.PublicSiteURL, "/")}
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// MailEnabled reports whether SMTP credentials are configured.
func (c *Config) MailEnabled() bool {
	return c.SMTPUser != "" && c.SMTPPassword != ""
}
