// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains example secrets that must never be used.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"NGL_DB_PATH" envDefault:"./data/ngl.db"`
	SessionSecret string `env:"NGL_SESSION_SECRET,required"`
	ServerHost    string `env:"NGL_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"NGL_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"NGL_ENV" envDefault:"development"`
	LogLevel      string `env:"NGL_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL     string `env:"NGL_REDIS_URL"`                        // Optional Redis URL for the render cache
	CachePrefix  string `env:"NGL_CACHE_PREFIX" envDefault:"ngl:"`   // Redis key prefix
	CacheTTL     int    `env:"NGL_CACHE_TTL" envDefault:"3600"`      // Rendered post TTL in seconds
	CacheMaxSize int    `env:"NGL_CACHE_MAX_SIZE" envDefault:"2000"` // Max memory cache entries

	// Seeded admin account, used only when the database has none
	AdminUsername string `env:"NGL_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"NGL_ADMIN_PASSWORD"`

	AuditRetentionDays int    `env:"NGL_AUDIT_RETENTION_DAYS" envDefault:"90"` // 0 keeps the audit log forever
	MapEmbedURL        string `env:"NGL_MAP_EMBED_URL" envDefault:"https://mapgenie.io/where-winds-meet/maps/world?embed=light"`

	// Public base URL used in robots.txt and sitemap.xml; derived from the request host when empty
	SiteURL string `env:"NGL_SITE_URL"`

	GeoIPDBPath string `env:"NGL_GEOIP_DB_PATH"` // GeoLite2-Country database for login audit entries

	// Outgoing notifications; disabled when WebhookURL is empty
	WebhookURL    string `env:"NGL_WEBHOOK_URL"`
	WebhookSecret string `env:"NGL_WEBHOOK_SECRET"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// CacheTTLDuration returns CacheTTL as a duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// AuditRetention returns how long audit entries are kept, or 0 to keep them forever.
func (c Config) AuditRetention() time.Duration {
	if c.AuditRetentionDays <= 0 {
		return 0
	}
	return time.Duration(c.AuditRetentionDays) * 24 * time.Hour
}

// SlogLevel maps LogLevel to a slog level. Unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("NGL_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("NGL_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if cfg.AuditRetentionDays < 0 {
		return nil, fmt.Errorf("NGL_AUDIT_RETENTION_DAYS must not be negative, got %d", cfg.AuditRetentionDays)
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("NGL_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret mixes at least 3 character classes.
func hasMinimumEntropy(s string) bool {
	classes := []string{
		"abcdefghijklmnopqrstuvwxyz",
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		"0123456789",
		"!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\",
	}
	n := 0
	for _, c := range classes {
		if strings.ContainsAny(s, c) {
			n++
		}
	}
	return n >= 3
}
