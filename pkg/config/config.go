package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Transports supported by EVM network adapters
const (
	TransportExplorer = "explorer"
	TransportJSONRPC  = "jsonrpc"
)

// DefaultRetryDelays is the backoff schedule used when none is configured
var DefaultRetryDelays = []time.Duration{30 * time.Second, 60 * time.Second, 90 * time.Second}

// Config represents the application configuration
type Config struct {
	Server    ServerConfig             `yaml:"server"`
	Database  DatabaseConfig           `yaml:"database"`
	Logging   LoggingConfig            `yaml:"logging"`
	Verifier  VerifierConfig           `yaml:"verifier"`
	Networks  map[string]NetworkConfig `yaml:"networks" validate:"dive"`
	Transfers TransferConfig           `yaml:"transfers"`
	Notify    NotifyConfig             `yaml:"notify"`
	Auth      AuthConfig               `yaml:"auth"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"330s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" default:"60s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" default:"300s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"30s"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host" default:"localhost" validate:"required"`
	Port     int    `yaml:"port" default:"5432" validate:"min=1,max=65535"`
	User     string `yaml:"user" default:"postgres" validate:"required"`
	Password string `yaml:"password"`
	Database string `yaml:"database" default:"payouts" validate:"required"`
	SSLMode  string `yaml:"ssl_mode" default:"disable" validate:"oneof=disable require verify-ca verify-full"`

	MaxOpenConns int           `yaml:"max_open_conns" default:"10" validate:"min=1"`
	DialTimeout  time.Duration `yaml:"dial_timeout" default:"5s"`
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info"`
	Format     string `yaml:"format" default:"json" validate:"oneof=json console"`
	OutputPath string `yaml:"output_path" default:"stdout"`
}

// VerifierConfig contains transaction verification engine settings
type VerifierConfig struct {
	CacheTTL        time.Duration   `yaml:"cache_ttl" default:"1h"`
	AmountTolerance decimal.Decimal `yaml:"amount_tolerance" default:"0.01"`
	Retry           RetryConfig     `yaml:"retry"`
}

// RetryConfig controls the verification retry loop
type RetryConfig struct {
	MaxAttempts int             `yaml:"max_attempts" default:"4" validate:"min=1,max=20"`
	Delays      []time.Duration `yaml:"delays"`
	// RetryRejections keeps retrying after a definitive policy rejection.
	RetryRejections bool `yaml:"retry_rejections"`
}

// NetworkConfig overrides the built-in settings of a single USDT network.
// Empty fields keep the built-in mainnet values.
type NetworkConfig struct {
	Transport      string        `yaml:"transport" default:"explorer" validate:"oneof=explorer jsonrpc"`
	APIURL         string        `yaml:"api_url" validate:"omitempty,url"`
	APIKey         string        `yaml:"api_key"`
	ChainID        int64         `yaml:"chain_id"`
	Contract       string        `yaml:"contract"`
	Decimals       int32         `yaml:"decimals" validate:"min=0,max=36"`
	MinInterval    time.Duration `yaml:"min_interval" default:"200ms"`
	Timeout        time.Duration `yaml:"timeout" default:"120s"`
	DepositAddress string        `yaml:"deposit_address"`
	Disabled       bool          `yaml:"disabled"`
}

// TransferConfig contains withdrawal limits, fees and exchange rates
type TransferConfig struct {
	FixedFeeThreshold decimal.Decimal            `yaml:"fixed_fee_threshold" default:"20"`
	FixedFeeAmount    decimal.Decimal            `yaml:"fixed_fee_amount" default:"1"`
	PercentageFee     decimal.Decimal            `yaml:"percentage_fee" default:"0.05"`
	MinWithdrawal     decimal.Decimal            `yaml:"min_withdrawal" default:"10"`
	MaxWithdrawal     decimal.Decimal            `yaml:"max_withdrawal" default:"1000"`
	ExchangeRates     map[string]decimal.Decimal `yaml:"exchange_rates"`
}

// NotifyConfig contains operator notification settings
type NotifyConfig struct {
	WebhookURL     string        `yaml:"webhook_url" validate:"omitempty,url"`
	WebhookToken   string        `yaml:"webhook_token"`
	WebhookTimeout time.Duration `yaml:"webhook_timeout" default:"10s"`
}

// AuthConfig contains operator API authentication settings
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" validate:"omitempty,min=32"`
	Issuer    string `yaml:"issuer"`
}

// Load reads the YAML configuration at configPath, expands ${ENV} references,
// applies defaults and validates the result.
func Load(configPath string) (*Config, error) {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a YAML document into a validated Config
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(raw))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) error {
	if err := defaults.Set(cfg); err != nil {
		return fmt.Errorf("failed to set defaults: %w", err)
	}

	networks := make(map[string]NetworkConfig, len(cfg.Networks))
	for name, nc := range cfg.Networks {
		if err := defaults.Set(&nc); err != nil {
			return fmt.Errorf("failed to set defaults for network %s: %w", name, err)
		}
		networks[strings.ToUpper(strings.TrimSpace(name))] = nc
	}
	cfg.Networks = networks

	if len(cfg.Verifier.Retry.Delays) == 0 {
		cfg.Verifier.Retry.Delays = append([]time.Duration(nil), DefaultRetryDelays...)
	}
	if len(cfg.Transfers.ExchangeRates) == 0 {
		cfg.Transfers.ExchangeRates = map[string]decimal.Decimal{"USD": decimal.NewFromInt(1)}
	}
	return nil
}

func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return err
	}

	for _, d := range cfg.Verifier.Retry.Delays {
		if d < 0 {
			return fmt.Errorf("verifier.retry.delays must not contain negative durations")
		}
	}
	if cfg.Verifier.AmountTolerance.IsNegative() {
		return fmt.Errorf("verifier.amount_tolerance must not be negative")
	}
	if cfg.Transfers.MinWithdrawal.GreaterThan(cfg.Transfers.MaxWithdrawal) {
		return fmt.Errorf("transfers.min_withdrawal must not exceed transfers.max_withdrawal")
	}
	for currency, rate := range cfg.Transfers.ExchangeRates {
		if !rate.IsPositive() {
			return fmt.Errorf("transfers.exchange_rates.%s must be positive", currency)
		}
	}
	return nil
}

// GetConnectionString returns the PostgreSQL connection string
func (c *DatabaseConfig) GetConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}
