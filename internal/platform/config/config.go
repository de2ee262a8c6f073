// Copyright (c) 2026 Temple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, S3) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Temple API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// JWTPubKeyPath verifies access tokens issued by the identity service.
	JWTPubKeyPath string `env:"JWT_PUBLIC_KEY_PATH,required"`
	// JWTIssuer, when set, must match the "iss" claim.
	JWTIssuer string `env:"JWT_ISSUER"`

	// Object Storage (DigitalOcean Spaces / S3-compatible)
	S3Bucket    string `env:"S3_BUCKET"     envDefault:"b2b"`
	S3Region    string `env:"S3_REGION"     envDefault:"blr1"`
	S3Endpoint  string `env:"S3_ENDPOINT"   envDefault:"https://blr1.digitaloceanspaces.com"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`

	// CDNBaseURL is the public prefix under which uploaded objects are served.
	CDNBaseURL string `env:"CDN_BASE_URL" envDefault:"https://lmscontent-cdn.blr1.digitaloceanspaces.com/temple"`

	// Bulk import
	BulkImportConcurrency int   `env:"BULK_IMPORT_CONCURRENCY" envDefault:"8"`
	MaxUploadBytes        int64 `env:"MAX_UPLOAD_BYTES"        envDefault:"33554432"`

	// Cross-Origin Resource Sharing
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"lmscontent.in"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.BulkImportConcurrency < 1 {
		return nil, fmt.Errorf("config: BULK_IMPORT_CONCURRENCY must be at least 1, got %d", cfg.BulkImportConcurrency)
	}

	cfg.CDNBaseURL = strings.TrimSuffix(cfg.CDNBaseURL, "/")

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// OriginSuffix returns the domain suffix trusted by the CORS middleware.
func (c *Config) OriginSuffix() string {
	return c.AllowedOriginSuffix
}
