package config

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server  ServerConfig  `envPrefix:"SERVER_"`
	Spanner SpannerConfig `envPrefix:"SPANNER_"`
	Storage StorageConfig `envPrefix:"STORAGE_"`
	Local   LocalConfig   `envPrefix:"LOCAL_"`
	Admin   AdminConfig   `envPrefix:"ADMIN_"`
	Log     LogConfig     `envPrefix:"LOG_"`
}

type ServerConfig struct {
	Addr           string        `env:"ADDR" envDefault:":8080"`
	ReadTimeout    time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout   time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES" envDefault:"12582912"`
}

type SpannerConfig struct {
	Database string `env:"DATABASE"`
}

type StorageConfig struct {
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`
	Bucket        string `env:"BUCKET" envDefault:"product-images"`
}

// DatabasePath returns the database resource name without surrounding space.
func (s SpannerConfig) DatabasePath() string {
	return strings.TrimSpace(s.Database)
}

// BaseURL returns the public base URL without surrounding space.
func (s StorageConfig) BaseURL() string {
	return strings.TrimSpace(s.PublicBaseURL)
}

type LocalConfig struct {
	StorePath string `env:"STORE_PATH" envDefault:"./tahaperfume.db"`
}

type AdminConfig struct {
	Email        string        `env:"EMAIL" envDefault:"admin@tahaperfume.com"`
	PasswordHash string        `env:"PASSWORD_HASH"`
	JWTSecret    string        `env:"JWT_SECRET"`
	TokenTTL     time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}

type LogConfig struct {
	Mode       string `env:"MODE" envDefault:"development"`
	Level      string `env:"LEVEL" envDefault:"info"`
	FileEnable bool   `env:"FILE_ENABLE" envDefault:"false"`
	Filename   string `env:"FILENAME" envDefault:"./logs/catalog.log"`
}

var databasePath = regexp.MustCompile(`^projects/[^/]+/instances/[^/]+/databases/[^/]+$`)

// placeholders are values copied from sample env files that must never be
// treated as real credentials.
var placeholders = []string{"your-project", "your-instance", "your-database", "example", "changeme"}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that only matter once the remote backend is on.
func (c *Config) Validate() error {
	if !c.RemoteConfigured() {
		return nil
	}
	if c.Admin.JWTSecret == "" {
		return errors.New("ADMIN_JWT_SECRET is required when the remote backend is configured")
	}
	if c.Admin.PasswordHash == "" {
		return errors.New("ADMIN_PASSWORD_HASH is required when the remote backend is configured")
	}
	return nil
}

// RemoteConfigured reports whether the remote backend has usable settings:
// a well-formed database path and an absolute https public base URL.
func (c *Config) RemoteConfigured() bool {
	db := c.Spanner.DatabasePath()
	if !databasePath.MatchString(db) {
		return false
	}
	lower := strings.ToLower(db)
	for _, p := range placeholders {
		if strings.Contains(lower, p) {
			return false
		}
	}

	u, err := url.Parse(c.Storage.BaseURL())
	if err != nil {
		return false
	}
	return u.Scheme == "https" && u.Host != ""
}
