package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Cooldown modes
const (
	CooldownModeCookie = "cookie"
	CooldownModeRedis  = "redis"
	CooldownModeNone   = "none"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment    string `env:"ENV" envDefault:"development"`
	Port           string `env:"API_PORT" envDefault:"8080"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`
	TrustedProxies string `env:"TRUSTED_PROXIES"`

	// Logging Configuration
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile       string `env:"LOG_FILE"`
	LogMaxSize    int    `env:"LOG_MAX_SIZE" envDefault:"100"`
	LogMaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	LogMaxAge     int    `env:"LOG_MAX_AGE" envDefault:"7"`
	LogRequests   bool   `env:"LOG_REQUESTS" envDefault:"false"`

	// Telegram Configuration
	Telegram TelegramConfig `envPrefix:"TELEGRAM_"`

	// Cooldown Configuration
	CooldownMode   string        `env:"COOLDOWN_MODE" envDefault:"cookie"`
	CooldownWindow time.Duration `env:"COOLDOWN_WINDOW" envDefault:"6h"`
	CookieSecure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	RedisURL       string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	// Rate limit for the relay route
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"1"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"5"`

	// Telemetry Configuration
	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	OTLPEndpoint   string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure   bool   `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
}

// TelegramConfig holds the bot credentials and destination chat
type TelegramConfig struct {
	BotToken   string        `env:"BOT_TOKEN"`
	ChatID     string        `env:"CHAT_ID"`
	APIBaseURL string        `env:"API_BASE" envDefault:"https://api.telegram.org"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// Configured reports whether both the bot token and chat ID are set
func (t TelegramConfig) Configured() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Origins returns the CORS allow list
func (c *Config) Origins() []string {
	return splitList(c.AllowedOrigins)
}

// Proxies returns the trusted proxy IPs and CIDRs; empty trusts none
func (c *Config) Proxies() []string {
	return splitList(c.TrustedProxies)
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Validate checks values that env parsing cannot
func (c *Config) Validate() error {
	switch c.CooldownMode {
	case CooldownModeCookie, CooldownModeRedis, CooldownModeNone:
	default:
		return fmt.Errorf("invalid COOLDOWN_MODE %q (want cookie, redis or none)", c.CooldownMode)
	}
	if c.CooldownWindow <= 0 {
		return fmt.Errorf("COOLDOWN_WINDOW must be positive, got %s", c.CooldownWindow)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	for _, p := range c.Proxies() {
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				return fmt.Errorf("invalid TRUSTED_PROXIES entry %q", p)
			}
		}
	}
	if c.Telegram.Timeout <= 0 {
		return fmt.Errorf("TELEGRAM_TIMEOUT must be positive, got %s", c.Telegram.Timeout)
	}
	return nil
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	envLocations := []string{
		"internal/config/env/.env.production",
		"internal/config/env/.env.development",
		".env",
	}

	// If ENV is set, try to load that specific file first
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf("internal/config/env/.env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		// godotenv.Load never overrides variables already set in the process
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	return Parse()
}

// Parse builds the configuration from the current process environment only
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Telegram.APIBaseURL = strings.TrimRight(cfg.Telegram.APIBaseURL, "/")

	// Set default log file if not set
	if cfg.LogFile == "" {
		if cfg.IsProduction() {
			cfg.LogFile = "/app/logs/relay.log"
		} else {
			cfg.LogFile = "./logs/relay.log"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Ensure log directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return cfg, nil
}
