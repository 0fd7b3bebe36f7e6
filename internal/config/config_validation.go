// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strings"
	"time"
)

// Defaults applied to zero-valued fields after all sources are merged.
const (
	DefaultTokenIssuer     = "ontime"
	DefaultTokenDuration   = 30 * time.Minute
	DefaultBcryptCost      = 10
	DefaultHTTPAddress     = "localhost:8080"
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultPageMaxLimit    = 100

	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

func (cfg *StructuredConfig) setDefaults() {
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.App.BcryptCost == 0 {
		cfg.App.BcryptCost = DefaultBcryptCost
	}
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = inferDriver(cfg.Storage.DB.DSN)
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Pagination.MaxLimit == 0 {
		cfg.Pagination.MaxLimit = DefaultPageMaxLimit
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// invariants required by the server before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenDuration < 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.DB.Driver != DriverPostgres && cfg.Storage.DB.Driver != DriverSQLite {
		return ErrUnsupportedDriver
	}

	if cfg.Server.RequestTimeout < 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Pagination.MaxLimit > 1000 {
		return ErrInvalidPaginationConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}

// inferDriver picks the sqlite3 driver for file paths and SQLite URIs and
// pgx for everything else.
func inferDriver(dsn string) string {
	switch {
	case strings.HasPrefix(dsn, "file:"),
		strings.HasPrefix(dsn, ":memory:"),
		strings.HasSuffix(dsn, ".db"),
		strings.HasSuffix(dsn, ".sqlite"):
		return DriverSQLite
	default:
		return DriverPostgres
	}
}
