// Package config 載入 bank CLI 的設定：先讀 YAML 檔，再以 .env / 環境變數覆寫。
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/JoeShih716/go-mem-bank/internal/app/core/domain"
	"github.com/JoeShih716/go-mem-bank/pkg/sqlite"
)

// DefaultPath 預設設定檔位置
const DefaultPath = "config/config.yaml"

// Backend 帳本實作
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendSQLite Backend = "sqlite"
)

type Config struct {
	Account AccountConfig `yaml:"account"`
	Ledger  LedgerConfig  `yaml:"ledger"`
	SQLite  sqlite.Config `yaml:"sqlite"`
	Log     LogConfig     `yaml:"log"`
}

// AccountConfig 帳戶規則
type AccountConfig struct {
	// Holder 持有人名稱，空白時由 CLI 詢問
	Holder               string          `yaml:"holder"`
	Currency             string          `yaml:"currency"`
	WithdrawalFee        decimal.Decimal `yaml:"withdrawal_fee"`
	DailyWithdrawalLimit decimal.Decimal `yaml:"daily_withdrawal_limit"`
}

type LedgerConfig struct {
	Backend Backend `yaml:"backend"`
	// Journal 交易日誌檔路徑 (JSON Lines)，空白表示不記錄
	Journal string `yaml:"journal"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default 回傳預設設定
func Default() Config {
	policy := domain.DefaultPolicy()
	return Config{
		Account: AccountConfig{
			Currency:             policy.Currency,
			WithdrawalFee:        policy.WithdrawalFee,
			DailyWithdrawalLimit: policy.DailyWithdrawalLimit,
		},
		Ledger: LedgerConfig{Backend: BackendMemory},
		SQLite: sqlite.Config{LogLevel: "silent"},
		Log:    LogConfig{Level: "warn"},
	}
}

// Load 載入設定
//
// path 為空時讀取 DefaultPath，檔案不存在則使用預設值；指定的檔案不存在則回傳錯誤。
// envPath 為空時嘗試載入目前目錄的 .env (不存在則忽略)。
func Load(path, envPath string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// 沒有設定檔，使用預設值
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	// 補全預設值 (如果 yaml 沒寫)
	if cfg.Ledger.Backend == "" {
		cfg.Ledger.Backend = BackendMemory
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	return &cfg, nil
}

// applyEnv 以環境變數覆寫設定
func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("BANK_HOLDER"); ok {
		c.Account.Holder = v
	}
	if v := os.Getenv("BANK_CURRENCY"); v != "" {
		c.Account.Currency = v
	}
	if err := decimalEnv("BANK_WITHDRAWAL_FEE", &c.Account.WithdrawalFee); err != nil {
		return err
	}
	if err := decimalEnv("BANK_DAILY_WITHDRAWAL_LIMIT", &c.Account.DailyWithdrawalLimit); err != nil {
		return err
	}
	if v := os.Getenv("BANK_LEDGER_BACKEND"); v != "" {
		c.Ledger.Backend = Backend(strings.ToLower(v))
	}
	if v, ok := os.LookupEnv("BANK_JOURNAL"); ok {
		c.Ledger.Journal = v
	}
	if v := os.Getenv("BANK_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("BANK_SQLITE_LOG_LEVEL"); v != "" {
		c.SQLite.LogLevel = strings.ToLower(v)
	}
	return nil
}

// decimalEnv 解析金額型別的環境變數，未設定時保留原值
func decimalEnv(key string, dst *decimal.Decimal) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return fmt.Errorf("invalid decimal value for %s: %s", key, value)
	}
	*dst = parsed
	return nil
}

// Policy 轉換為帳戶規則
func (c *Config) Policy() domain.Policy {
	return domain.Policy{
		Currency:             c.Account.Currency,
		WithdrawalFee:        c.Account.WithdrawalFee,
		DailyWithdrawalLimit: c.Account.DailyWithdrawalLimit,
	}
}

// Validate 檢查設定
func (c *Config) Validate() error {
	if err := c.Policy().Validate(); err != nil {
		return err
	}
	switch c.Ledger.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("unknown ledger backend %q (want %q or %q)", c.Ledger.Backend, BackendMemory, BackendSQLite)
	}
	if c.Ledger.Journal != "" && c.Ledger.Backend != BackendMemory {
		return fmt.Errorf("journal is only supported by the %q backend", BackendMemory)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}
