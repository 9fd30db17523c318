package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pixeldock/pixeldock/pkg/storage"

	"gopkg.in/yaml.v3"
)

// Config captures service level configuration loaded from config.yaml.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	CORS     CORSConfig     `yaml:"cors"`
	Redis    RedisConfig    `yaml:"redis"`
	Storage  storage.Config `yaml:"storage"`
	Auth     AuthConfig     `yaml:"auth"`
	PayPal   PayPalConfig   `yaml:"paypal"`
	Pricing  PricingConfig  `yaml:"pricing"`
	Upload   UploadConfig   `yaml:"upload"`
}

// ServerConfig defines HTTP server options.
type ServerConfig struct {
	Address string `yaml:"address"`
	// AppURL is the externally visible base URL, used to build the
	// payment gateway return and cancel links.
	AppURL string `yaml:"app_url"`
}

// DatabaseConfig defines the database backend configuration.
type DatabaseConfig struct {
	Driver   string         `yaml:"driver"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// SQLiteConfig contains SQLite specific settings.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// MySQLConfig contains MySQL specific connection details.
type MySQLConfig struct {
	DSN string `yaml:"dsn"`
}

// PostgresConfig contains PostgreSQL specific connection details.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// CORSConfig defines CORS middleware settings.
type CORSConfig struct {
	AllowOrigin      string `yaml:"allow_origin"`
	AllowMethods     string `yaml:"allow_methods"`
	AllowHeaders     string `yaml:"allow_headers"`
	AllowCredentials bool   `yaml:"allow_credentials"`
}

// RedisConfig defines Redis connection settings used for view invalidation
// and the optional purchase write lock.
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// AuthConfig points at the external auth provider that owns user identity.
// When Secret is set, session cookies are verified locally as HS256 JWTs;
// otherwise every request performs a get-session round trip to BaseURL.
type AuthConfig struct {
	BaseURL    string `yaml:"base_url"`
	CookieName string `yaml:"cookie_name"`
	Secret     string `yaml:"secret"`
}

// PayPalConfig holds payment gateway credentials.
type PayPalConfig struct {
	APIURL       string `yaml:"api_url"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

// PricingConfig controls marketplace pricing. The default price is stamped
// onto each asset at upload time so it stays editable per asset later.
type PricingConfig struct {
	DefaultPrice float64 `yaml:"default_price"`
	Currency     string  `yaml:"currency"`
}

// UploadConfig defines file upload constraints for the signed-upload flow.
type UploadConfig struct {
	MaxSize      int64    `yaml:"max_size"`
	AllowedTypes []string `yaml:"allowed_types"`
}

// Load reads a YAML configuration file from the provided path.
// It searches in the current working directory first, then next to the binary executable.
func Load(name string) (*Config, error) {
	cfg := defaultConfig()

	configPath := findConfigFile(name)
	if configPath == "" {
		log.Printf("Warning: config file %q not found, using defaults", name)
		return cfg, nil
	}

	log.Printf("Loading config from: %s", configPath)
	f, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	var parsed Config
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	applyDefaults(&parsed)
	return &parsed, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address: ":8080",
			AppURL:  "http://localhost:8080",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			SQLite: SQLiteConfig{
				Path: "data/marketplace.db",
			},
		},
		CORS: CORSConfig{
			AllowOrigin:      "*",
			AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
			AllowHeaders:     "*",
			AllowCredentials: false,
		},
		Storage: storage.DefaultConfig(),
		Auth: AuthConfig{
			BaseURL:    "http://localhost:3000",
			CookieName: "session_token",
		},
		PayPal: PayPalConfig{
			APIURL: "https://api-m.sandbox.paypal.com",
		},
		Pricing: PricingConfig{
			DefaultPrice: 5.00,
			Currency:     "USD",
		},
		Upload: UploadConfig{
			MaxSize: 10 * 1024 * 1024, // 10MB
			AllowedTypes: []string{
				"image/jpeg",
				"image/png",
				"image/gif",
				"image/webp",
				"image/svg+xml",
				"audio/mpeg",
				"audio/wav",
				"video/mp4",
				"video/webm",
				"video/quicktime",
				"application/zip",
				"application/pdf",
			},
		},
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.AppURL == "" {
		cfg.Server.AppURL = "http://localhost:8080"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.SQLite.Path == "" {
		cfg.Database.SQLite.Path = "data/marketplace.db"
	}
	if cfg.Auth.BaseURL == "" {
		cfg.Auth.BaseURL = "http://localhost:3000"
	}
	if cfg.Auth.CookieName == "" {
		cfg.Auth.CookieName = "session_token"
	}
	if cfg.PayPal.APIURL == "" {
		cfg.PayPal.APIURL = "https://api-m.sandbox.paypal.com"
	}
	if cfg.Pricing.DefaultPrice <= 0 {
		cfg.Pricing.DefaultPrice = 5.00
	}
	if cfg.Pricing.Currency == "" {
		cfg.Pricing.Currency = "USD"
	}
	if cfg.Upload.MaxSize <= 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024
	}
}

// findConfigFile searches for a config file in the current directory first,
// then next to the binary executable. Returns the full path or empty string.
func findConfigFile(name string) string {
	// 1. Current working directory
	if _, err := os.Stat(name); err == nil {
		abs, _ := filepath.Abs(name)
		return abs
	}

	// 2. Next to the binary executable
	exe, err := os.Executable()
	if err == nil {
		exeDir := filepath.Dir(exe)
		candidate := filepath.Join(exeDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}
