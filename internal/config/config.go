package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port              string   `yaml:"port" env:"SERVER_PORT"`
		Mode              string   `yaml:"mode" env:"SERVER_MODE"`
		StaticDir         string   `yaml:"static_dir" env:"SERVER_STATIC_DIR"`
		UploadDir         string   `yaml:"upload_dir" env:"SERVER_UPLOAD_DIR"`
		PublicURL         string   `yaml:"public_url" env:"SERVER_PUBLIC_URL"`
		AllowedOrigins    []string `yaml:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS"`
		TrustProxyHeaders bool     `yaml:"trust_proxy_headers" env:"SERVER_TRUST_PROXY_HEADERS"`
		ReadTimeout       string   `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout      string   `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		ShutdownTimeout   string   `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret                 string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration  string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		RefreshTokenExpiration string `yaml:"refresh_token_expiration" env:"JWT_REFRESH_TOKEN_EXPIRATION"`
		Issuer                 string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level      string `yaml:"level" env:"LOG_LEVEL"`
		Format     string `yaml:"format" env:"LOG_FORMAT"`
		File       string `yaml:"file" env:"LOG_FILE"`
		MaxSizeMB  int    `yaml:"max_size_mb" env:"LOG_MAX_SIZE_MB"`
		MaxBackups int    `yaml:"max_backups" env:"LOG_MAX_BACKUPS"`
		MaxAgeDays int    `yaml:"max_age_days" env:"LOG_MAX_AGE_DAYS"`
	} `yaml:"logging"`

	AuthBackend struct {
		BaseURL             string `yaml:"base_url" env:"AUTH_BACKEND_URL"`
		Timeout             string `yaml:"timeout" env:"AUTH_BACKEND_TIMEOUT"`
		TrainingPlatformURL string `yaml:"training_platform_url" env:"TRAINING_PLATFORM_URL"`
		RefreshSkew         string `yaml:"refresh_skew" env:"AUTH_REFRESH_SKEW"`
		SessionFile         string `yaml:"session_file" env:"AUTH_SESSION_FILE"`
	} `yaml:"auth_backend"`

	Mail struct {
		Host      string   `yaml:"host" env:"SMTP_HOST"`
		Port      int      `yaml:"port" env:"SMTP_PORT"`
		Username  string   `yaml:"username" env:"SMTP_USERNAME"`
		Password  string   `yaml:"password" env:"SMTP_PASSWORD"`
		FromName  string   `yaml:"from_name" env:"SMTP_FROM_NAME"`
		FromEmail string   `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
		UseTLS    bool     `yaml:"use_tls" env:"SMTP_USE_TLS"`
		NotifyTo  []string `yaml:"notify_to" env:"MAIL_NOTIFY_TO"`
		AdminURL  string   `yaml:"admin_url" env:"MAIL_ADMIN_URL"`
	} `yaml:"mail"`

	RateLimit struct {
		Window      string `yaml:"window" env:"RATE_LIMIT_WINDOW"`
		MaxRequests int    `yaml:"max_requests" env:"RATE_LIMIT_MAX_REQUESTS"`
	} `yaml:"rate_limit"`

	Metrics struct {
		Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
		Path    string `yaml:"path" env:"METRICS_PATH"`
	} `yaml:"metrics"`
}

// LoadConfig loads configuration from a file, an optional .env file and environment variables.
// Missing files are not an error; defaults apply.
func LoadConfig(configPath, envFile string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			file, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}

			if err := yaml.Unmarshal(file, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	// Override with environment variables
	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.UploadDir = "./uploads"
	config.Server.AllowedOrigins = []string{"http://localhost:5173"}
	config.Server.ReadTimeout = "15s"
	config.Server.WriteTimeout = "30s"
	config.Server.ShutdownTimeout = "10s"

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "academy"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"

	// JWT defaults
	config.JWT.AccessTokenExpiration = "15m"
	config.JWT.RefreshTokenExpiration = "168h"
	config.JWT.Issuer = "academy-admin"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.MaxSizeMB = 50
	config.Logging.MaxBackups = 5
	config.Logging.MaxAgeDays = 28

	// Auth backend defaults
	config.AuthBackend.BaseURL = "http://localhost:4000"
	config.AuthBackend.Timeout = "15s"
	config.AuthBackend.RefreshSkew = "30s"
	config.AuthBackend.SessionFile = defaultSessionFile()

	// Mail defaults
	config.Mail.Port = 587
	config.Mail.FromName = "Academy"
	config.Mail.UseTLS = false

	// Rate limit defaults
	config.RateLimit.Window = "1m"
	config.RateLimit.MaxRequests = 10

	// Metrics defaults
	config.Metrics.Enabled = true
	config.Metrics.Path = "/metrics"
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".academy-session.json"
	}
	return dir + string(os.PathSeparator) + "academy" + string(os.PathSeparator) + "session.json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return applyEnvOverrides(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return fmt.Errorf("server port must be numeric: %q", config.Server.Port)
	}

	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	durations := map[string]string{
		"server read timeout":          config.Server.ReadTimeout,
		"server write timeout":         config.Server.WriteTimeout,
		"server shutdown timeout":      config.Server.ShutdownTimeout,
		"database connection lifetime": config.Database.ConnMaxLifetime,
		"JWT access token expiration":  config.JWT.AccessTokenExpiration,
		"JWT refresh token expiration": config.JWT.RefreshTokenExpiration,
		"auth backend timeout":         config.AuthBackend.Timeout,
		"auth backend refresh skew":    config.AuthBackend.RefreshSkew,
		"rate limit window":            config.RateLimit.Window,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	if err := validateAbsoluteURL("auth backend URL", config.AuthBackend.BaseURL, true); err != nil {
		return err
	}
	if err := validateAbsoluteURL("training platform URL", config.AuthBackend.TrainingPlatformURL, false); err != nil {
		return err
	}

	if config.RateLimit.MaxRequests < 0 {
		return fmt.Errorf("rate limit max requests cannot be negative")
	}

	if config.Metrics.Enabled && !strings.HasPrefix(config.Metrics.Path, "/") {
		return fmt.Errorf("metrics path must start with /")
	}

	return nil
}

func validateAbsoluteURL(name, raw string, required bool) error {
	if raw == "" {
		if required {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL: %q", name, raw)
	}
	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     c.Database.Host + ":" + c.Database.Port,
		Path:     "/" + c.Database.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production") || strings.EqualFold(c.Server.Mode, "release")
}

// Duration parses one of the validated duration settings
func Duration(value string) time.Duration {
	d, _ := time.ParseDuration(value)
	return d
}
