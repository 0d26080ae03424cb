package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/joho/godotenv"

	"github.com/ndewijer/portfolio-vis/internal/apperrors"
)

// Supported market data providers.
const (
	ProviderAlpaca = "alpaca"
	ProviderYahoo  = "yahoo"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	Market    MarketConfig
	Portfolio PortfolioConfig
	Symbols   SymbolsConfig
	Log       LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// MarketConfig holds the market data provider selection and its credentials.
// It is built once at start-up and handed to the provider constructor.
type MarketConfig struct {
	Provider    string
	APIKey      string
	APISecret   string
	BaseURL     string
	Feed        string
	Timeout     time.Duration
	Concurrency int
}

// PortfolioConfig holds defaults applied to portfolio requests.
type PortfolioConfig struct {
	Benchmark    string
	LookbackDays int
}

// SymbolsConfig locates the symbol catalog and its reload schedule.
type SymbolsConfig struct {
	CSVPath     string
	RefreshCron string
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load reads configuration from environment variables, .env and keys.env.
// Files that don't exist are ignored; variables already set in the environment win.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env", "keys.env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}

	timeout, err := getEnvDuration("MARKET_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	concurrency, err := getEnvInt("MARKET_CONCURRENCY", 4)
	if err != nil {
		return nil, err
	}
	lookback, err := getEnvInt("LOOKBACK_DAYS", 30)
	if err != nil {
		return nil, err
	}
	pretty, err := getEnvBool("LOG_PRETTY", false)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5000"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Market: MarketConfig{
			Provider:    strings.ToLower(getEnv("MARKET_PROVIDER", ProviderAlpaca)),
			APIKey:      os.Getenv("ALPACA_API_KEY"),
			BaseURL:     os.Getenv("ALPACA_DATA_URL"),
			Feed:        getEnv("ALPACA_FEED", "iex"),
			Timeout:     timeout,
			Concurrency: concurrency,
		},
		Portfolio: PortfolioConfig{
			Benchmark:    strings.ToUpper(getEnv("BENCHMARK_SYMBOL", "SPY")),
			LookbackDays: lookback,
		},
		Symbols: SymbolsConfig{
			CSVPath:     getEnv("SYMBOLS_CSV", "./data/symbols.csv"),
			RefreshCron: getEnv("SYMBOLS_REFRESH_CRON", "@daily"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: pretty,
		},
	}

	secret, err := loadSecret()
	if err != nil {
		return nil, err
	}
	config.Market.APISecret = secret

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	switch c.Market.Provider {
	case ProviderAlpaca:
		if c.Market.APIKey == "" || c.Market.APISecret == "" {
			return fmt.Errorf("%w: set ALPACA_API_KEY and ALPACA_SECRET_KEY", apperrors.ErrMissingCredentials)
		}
	case ProviderYahoo:
	default:
		return fmt.Errorf("%w: %q", apperrors.ErrProviderNotSupported, c.Market.Provider)
	}

	if c.Portfolio.LookbackDays < 1 {
		return fmt.Errorf("LOOKBACK_DAYS must be positive, got %d", c.Portfolio.LookbackDays)
	}
	if c.Market.Concurrency < 1 {
		return fmt.Errorf("MARKET_CONCURRENCY must be positive, got %d", c.Market.Concurrency)
	}
	return nil
}

// loadSecret returns ALPACA_SECRET_KEY, or decrypts ALPACA_SECRET_KEY_ENCRYPTED with the
// fernet key in CREDENTIALS_KEY when the plain variable is unset.
func loadSecret() (string, error) {
	if plain := os.Getenv("ALPACA_SECRET_KEY"); plain != "" {
		return plain, nil
	}
	token := os.Getenv("ALPACA_SECRET_KEY_ENCRYPTED")
	if token == "" {
		return "", nil
	}
	return DecryptSecret(token, os.Getenv("CREDENTIALS_KEY"))
}

// secretTTL bounds the age of encrypted credentials; they are long-lived by nature.
const secretTTL = 100 * 365 * 24 * time.Hour

// DecryptSecret opens a fernet token with the given base64 key.
func DecryptSecret(token, key string) (string, error) {
	k, err := fernet.DecodeKey(key)
	if err != nil {
		return "", fmt.Errorf("%w: invalid CREDENTIALS_KEY: %v", apperrors.ErrInvalidCredentials, err)
	}
	msg := fernet.VerifyAndDecrypt([]byte(token), secretTTL, []*fernet.Key{k})
	if msg == nil {
		return "", apperrors.ErrInvalidCredentials
	}
	return string(msg), nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
