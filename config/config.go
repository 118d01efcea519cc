package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Log        LogConfig        `mapstructure:"log"`
	Chain      ChainConfig      `mapstructure:"chain"`
	Wallet     WalletConfig     `mapstructure:"wallet"`
	Payments   PaymentsConfig   `mapstructure:"payments"`
	Settlement SettlementConfig `mapstructure:"settlement"`
	Gas        GasConfig        `mapstructure:"gas"`
	Recovery   RecoveryConfig   `mapstructure:"recovery"`
	Webhook    WebhookConfig    `mapstructure:"webhook"`
	Admin      AdminConfig      `mapstructure:"admin"`
	Checkout   CheckoutConfig   `mapstructure:"checkout"`
	Tokens     []TokenConfig    `mapstructure:"tokens"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LogConfig struct {
	Level      string `mapstructure:"level"`  // debug, info, warn, error
	Pretty     bool   `mapstructure:"pretty"` // human-readable output (dev only)
	File       string `mapstructure:"file"`   // optional rotating log file
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// ChainConfig selects the network and the RPC endpoints.
type ChainConfig struct {
	Network           string        `mapstructure:"network"` // bsc, bsc-testnet, ethereum, sepolia, polygon
	ChainID           int64         `mapstructure:"chain_id"`
	PrimaryRPC        string        `mapstructure:"primary_rpc"`
	SecondaryRPC      string        `mapstructure:"secondary_rpc"`
	RPCTimeout        time.Duration `mapstructure:"rpc_timeout"`
	RPCRateLimit      float64       `mapstructure:"rpc_rate_limit"` // requests per second, 0 = unlimited
	RPCBurst          int           `mapstructure:"rpc_burst"`
	BlockPollInterval time.Duration `mapstructure:"block_poll_interval"`
	LogLookback       uint64        `mapstructure:"log_lookback"` // blocks re-scanned when a subscription starts
	NativeTransferGas uint64        `mapstructure:"native_transfer_gas"`
	TokenTransferGas  uint64        `mapstructure:"token_transfer_gas"`
	// NativePrice is the price of one native coin expressed in the settlement token.
	NativePrice string `mapstructure:"native_price"`
}

// WalletConfig holds the master seed. Exactly one of Mnemonic or SeedHex is used.
type WalletConfig struct {
	Mnemonic   string `mapstructure:"mnemonic"`
	Passphrase string `mapstructure:"passphrase"`
	SeedHex    string `mapstructure:"seed_hex"`
}

type PaymentsConfig struct {
	OrderTTL              time.Duration `mapstructure:"order_ttl"`
	FeePercent            string        `mapstructure:"fee_percent"`
	ConfirmationThreshold uint64        `mapstructure:"confirmation_threshold"`
	ConfirmationInterval  time.Duration `mapstructure:"confirmation_interval"`
	ExpiryInterval        time.Duration `mapstructure:"expiry_interval"`
	IdempotencyTTL        time.Duration `mapstructure:"idempotency_ttl"`
}

type SettlementConfig struct {
	PlatformWallet string        `mapstructure:"platform_wallet"`
	QueueSize      int           `mapstructure:"queue_size"`
	AutoFundGas    bool          `mapstructure:"auto_fund_gas"`
	LockTTL        time.Duration `mapstructure:"lock_ttl"`
	BatchDelay     time.Duration `mapstructure:"batch_delay"`
	ReceiptTimeout time.Duration `mapstructure:"receipt_timeout"`
}

// GasConfig amounts are decimal strings in native coin units.
type GasConfig struct {
	MinBalance  string `mapstructure:"min_balance"`
	TopUpAmount string `mapstructure:"topup_amount"`
	Dust        string `mapstructure:"dust"`
}

type RecoveryConfig struct {
	GracePeriod    time.Duration `mapstructure:"grace_period"`
	SweepDelay     time.Duration `mapstructure:"sweep_delay"`
	IncludeExpired bool          `mapstructure:"include_expired"`
}

type WebhookConfig struct {
	Secret    string        `mapstructure:"secret"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Interval  time.Duration `mapstructure:"interval"`
	BatchSize int           `mapstructure:"batch_size"`
}

type AdminConfig struct {
	Secret string `mapstructure:"secret"`
}

type CheckoutConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// TokenConfig overrides or extends the built-in token table.
type TokenConfig struct {
	Network  string `mapstructure:"network"`
	Symbol   string `mapstructure:"symbol"`
	Address  string `mapstructure:"address"`
	Decimals uint8  `mapstructure:"decimals"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: CPG_.
// Nested keys use underscore: CPG_CHAIN_PRIMARY_RPC, CPG_WALLET_MNEMONIC, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "cryptopay")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 28)

	v.SetDefault("chain.network", "bsc-testnet")
	v.SetDefault("chain.chain_id", 0)
	v.SetDefault("chain.primary_rpc", "")
	v.SetDefault("chain.secondary_rpc", "")
	v.SetDefault("chain.rpc_timeout", "15s")
	v.SetDefault("chain.rpc_rate_limit", 10)
	v.SetDefault("chain.rpc_burst", 20)
	v.SetDefault("chain.block_poll_interval", "3s")
	v.SetDefault("chain.log_lookback", 50)
	v.SetDefault("chain.native_transfer_gas", 21000)
	v.SetDefault("chain.token_transfer_gas", 65000)
	v.SetDefault("chain.native_price", "600")

	v.SetDefault("payments.order_ttl", "15m")
	v.SetDefault("payments.fee_percent", "2.5")
	v.SetDefault("payments.confirmation_threshold", 12)
	v.SetDefault("payments.confirmation_interval", "15s")
	v.SetDefault("payments.expiry_interval", "60s")
	v.SetDefault("payments.idempotency_ttl", "24h")

	v.SetDefault("settlement.platform_wallet", "")
	v.SetDefault("settlement.queue_size", 64)
	v.SetDefault("settlement.auto_fund_gas", false)
	v.SetDefault("settlement.lock_ttl", "10m")
	v.SetDefault("settlement.batch_delay", "2s")
	v.SetDefault("settlement.receipt_timeout", "3m")

	v.SetDefault("gas.min_balance", "0.0008")
	v.SetDefault("gas.topup_amount", "0.0015")
	v.SetDefault("gas.dust", "0.0001")

	v.SetDefault("recovery.grace_period", "24h")
	v.SetDefault("recovery.sweep_delay", "2s")
	v.SetDefault("recovery.include_expired", false)

	v.SetDefault("webhook.secret", "")
	v.SetDefault("webhook.timeout", "10s")
	v.SetDefault("webhook.interval", "30s")
	v.SetDefault("webhook.batch_size", 50)

	v.SetDefault("admin.secret", "")
	v.SetDefault("checkout.secret", "")
	v.SetDefault("checkout.issuer", "cryptopay-gateway")

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: CPG_CHAIN_PRIMARY_RPC -> chain.primary_rpc
	v.SetEnvPrefix("CPG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the settings the gateway cannot start without.
func (c *Config) Validate() error {
	var errs []error

	if c.Wallet.Mnemonic == "" && c.Wallet.SeedHex == "" {
		errs = append(errs, errors.New("wallet.mnemonic or wallet.seed_hex is required"))
	}
	if c.Chain.PrimaryRPC == "" {
		errs = append(errs, errors.New("chain.primary_rpc is required"))
	}
	if c.Webhook.Secret == "" {
		errs = append(errs, errors.New("webhook.secret is required"))
	}
	if c.Admin.Secret == "" {
		errs = append(errs, errors.New("admin.secret is required"))
	}
	if c.Checkout.Secret == "" {
		errs = append(errs, errors.New("checkout.secret is required"))
	}
	if w := c.Settlement.PlatformWallet; w != "" && !common.IsHexAddress(w) {
		errs = append(errs, fmt.Errorf("settlement.platform_wallet is not a hex address: %q", w))
	}
	// Both settlement legs may each wait a full receipt timeout under the lock.
	if floor := 2*c.Settlement.ReceiptTimeout + time.Minute; c.Settlement.LockTTL < floor {
		errs = append(errs, fmt.Errorf("settlement.lock_ttl must be at least %s (2 x settlement.receipt_timeout + 1m), got %s",
			floor, c.Settlement.LockTTL))
	}
	if c.Payments.ConfirmationThreshold == 0 {
		errs = append(errs, errors.New("payments.confirmation_threshold must be positive"))
	}

	fee, err := decimal.NewFromString(c.Payments.FeePercent)
	if err != nil {
		errs = append(errs, fmt.Errorf("payments.fee_percent: %w", err))
	} else if fee.IsNegative() || fee.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		errs = append(errs, fmt.Errorf("payments.fee_percent must be in [0,100), got %s", c.Payments.FeePercent))
	}

	for name, val := range map[string]string{
		"gas.min_balance":    c.Gas.MinBalance,
		"gas.topup_amount":   c.Gas.TopUpAmount,
		"gas.dust":           c.Gas.Dust,
		"chain.native_price": c.Chain.NativePrice,
	} {
		d, err := decimal.NewFromString(val)
		if err != nil || d.IsNegative() {
			errs = append(errs, fmt.Errorf("%s must be a non-negative decimal, got %q", name, val))
		}
	}

	return errors.Join(errs...)
}
